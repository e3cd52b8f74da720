package sync

import "context"

type OutboxRepository interface {
	Enqueue(ctx context.Context, action string, payload []byte) error

	// ListPending returns the oldest undelivered entries, oldest first.
	ListPending(ctx context.Context, limit int) ([]OutboxEntry, error)

	// MarkDelivered removes a delivered entry.
	MarkDelivered(ctx context.Context, id int64) error

	// MarkFailed bumps the attempt counter and stores the error; the entry
	// stays queued for the next dispatch round.
	MarkFailed(ctx context.Context, id int64, reason string) error

	CountPending(ctx context.Context) (int64, error)
}
