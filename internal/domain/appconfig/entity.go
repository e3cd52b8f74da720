package appconfig

import "time"

// Config is the process-wide application configuration. Loaded at startup,
// overwritten by admin settings saves and successful pulls; never deleted.
type Config struct {
	SyncURL         string
	GoogleSheetLink string
	AdminUsername   string
	AdminPassword   string
	LastUpdated     *time.Time
}

// Connected reports whether the app has been linked to a sheet endpoint.
// Registration and employee login are refused until it has.
func (c *Config) Connected() bool {
	return c.SyncURL != ""
}
