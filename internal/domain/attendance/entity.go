package attendance

type RecordType string

const (
	TypeCheckIn  RecordType = "check-in"
	TypeCheckOut RecordType = "check-out"
)

// Record is an attendance event. Records are immutable once created: no
// actor in the system edits or deletes them.
type Record struct {
	ID         string
	UserID     string
	UserName   string
	UserJob    string
	BranchID   string
	BranchName string
	Type       RecordType
	Timestamp  string // RFC3339, local clock at creation
	Latitude   float64
	Longitude  float64
}
