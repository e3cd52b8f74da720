package sync

import (
	"context"
)

// SyncService defines business logic for remote spreadsheet synchronization
type SyncService interface {
	// Pull fetches the remote dataset and replaces the local collections
	// wholesale; local data stays untouched when the fetch fails
	Pull(ctx context.Context) error

	// Push uploads the full local dataset to the remote endpoint
	Push(ctx context.Context) error

	// Bootstrap decodes a base64 setup link, persists the endpoint URL
	// and performs an initial pull
	Bootstrap(ctx context.Context, encodedLink string) error

	// DispatchOutbox delivers pending queued writes to the remote endpoint
	DispatchOutbox(ctx context.Context) error

	// Status reports the current synchronization state
	Status(ctx context.Context) (Status, error)
}
