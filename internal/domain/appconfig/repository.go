package appconfig

import (
	"context"
	"time"
)

// ConfigRepository persists the singleton config row.
type ConfigRepository interface {
	// Get returns the stored config, or the defaults when nothing has been
	// saved yet.
	Get(ctx context.Context) (Config, error)

	Save(ctx context.Context, config Config) error

	// TouchLastUpdated refreshes the staleness marker after a successful pull.
	TouchLastUpdated(ctx context.Context, at time.Time) error
}
