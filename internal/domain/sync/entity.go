package sync

import "time"

// Outbox actions mirror the sheet endpoint's write contract.
const (
	ActionSaveAttendance   = "saveAttendance"
	ActionRegisterUser     = "registerUser"
	ActionUpdateUserDevice = "updateUserDevice"
)

// OutboxEntry is a queued remote write. The local commit that produced it has
// already happened; dispatch is best-effort and never rolls the commit back.
type OutboxEntry struct {
	ID        int64
	Action    string
	Payload   []byte // JSON body for the sheet endpoint
	Attempts  int
	LastError *string
	CreatedAt time.Time
}

// Status is the coordinator state surfaced to the UI layer.
type Status struct {
	Syncing     bool       `json:"syncing"`
	SyncError   bool       `json:"sync_error"`
	LastUpdated *time.Time `json:"last_updated,omitempty"`
	Pending     int64      `json:"pending_outbox"`
	Records     int64      `json:"local_records"`
}
