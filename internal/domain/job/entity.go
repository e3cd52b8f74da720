package job

// Job is a catalog entry. Users and report accounts reference jobs by title,
// not id, so renaming a title does not cascade to entities holding the old
// string.
type Job struct {
	ID    string
	Title string
}
