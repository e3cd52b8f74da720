package postgresql

import (
	"context"
	"fmt"

	"github.com/uniteam-app/uniteam-backend-go/internal/domain/sync"
	"github.com/uniteam-app/uniteam-backend-go/internal/pkg/database"
)

type outboxRepositoryImpl struct {
	db *database.DB
}

func NewOutboxRepository(db *database.DB) sync.OutboxRepository {
	return &outboxRepositoryImpl{db: db}
}

// Enqueue implements sync.OutboxRepository.
func (r *outboxRepositoryImpl) Enqueue(ctx context.Context, action string, payload []byte) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO sync_outbox (action, payload, attempts, created_at)
		VALUES ($1, $2, 0, NOW())
	`, action, payload)
	if err != nil {
		return fmt.Errorf("failed to enqueue outbox entry: %w", err)
	}

	return nil
}

// ListPending implements sync.OutboxRepository.
func (r *outboxRepositoryImpl) ListPending(ctx context.Context, limit int) ([]sync.OutboxEntry, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, action, payload, attempts, last_error, created_at
		FROM sync_outbox
		ORDER BY created_at ASC, id ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending outbox entries: %w", err)
	}
	defer rows.Close()

	var entries []sync.OutboxEntry
	for rows.Next() {
		var e sync.OutboxEntry
		if err := rows.Scan(&e.ID, &e.Action, &e.Payload, &e.Attempts, &e.LastError, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan outbox entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return entries, nil
}

// MarkDelivered implements sync.OutboxRepository.
func (r *outboxRepositoryImpl) MarkDelivered(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM sync_outbox WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to mark outbox entry delivered: %w", err)
	}

	return nil
}

// MarkFailed implements sync.OutboxRepository.
func (r *outboxRepositoryImpl) MarkFailed(ctx context.Context, id int64, reason string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE sync_outbox SET attempts = attempts + 1, last_error = $1 WHERE id = $2
	`, reason, id)
	if err != nil {
		return fmt.Errorf("failed to mark outbox entry failed: %w", err)
	}

	return nil
}

// CountPending implements sync.OutboxRepository.
func (r *outboxRepositoryImpl) CountPending(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM sync_outbox`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending outbox entries: %w", err)
	}

	return count, nil
}
