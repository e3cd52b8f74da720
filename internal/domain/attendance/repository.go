package attendance

import "context"

// RecordRepository is append-only from the application's point of view:
// records are created once and never updated or deleted.
type RecordRepository interface {
	Create(ctx context.Context, record Record) (Record, error)

	// ListByUser returns the user's records, newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]Record, error)

	// List returns records matching the filter, newest first.
	List(ctx context.Context, filter RecordFilter) ([]Record, error)

	Count(ctx context.Context) (int64, error)
}
