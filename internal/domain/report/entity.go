package report

// Account scopes a third-party report viewer to attendance records whose
// user job is in AllowedJobs. Job titles, not ids, are the reference.
type Account struct {
	ID          string
	Username    string
	Password    string
	AllowedJobs []string
}
