package postgresql

import (
	"context"
	"fmt"

	"github.com/uniteam-app/uniteam-backend-go/internal/domain/attendance"
	"github.com/uniteam-app/uniteam-backend-go/internal/pkg/database"
)

type recordRepositoryImpl struct {
	db *database.DB
}

func NewRecordRepository(db *database.DB) attendance.RecordRepository {
	return &recordRepositoryImpl{db: db}
}

const recordColumns = `id, user_id, user_name, user_job, branch_id, branch_name, type, timestamp, latitude, longitude`

// Create implements attendance.RecordRepository. Records are insert-only;
// there is no update path.
func (r *recordRepositoryImpl) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (id, user_id, user_name, user_job, branch_id, branch_name, type, timestamp, latitude, longitude, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING ` + recordColumns

	var result attendance.Record
	err := q.QueryRow(ctx, query,
		rec.ID, rec.UserID, rec.UserName, rec.UserJob,
		rec.BranchID, rec.BranchName, rec.Type, rec.Timestamp,
		rec.Latitude, rec.Longitude,
	).Scan(
		&result.ID,
		&result.UserID,
		&result.UserName,
		&result.UserJob,
		&result.BranchID,
		&result.BranchName,
		&result.Type,
		&result.Timestamp,
		&result.Latitude,
		&result.Longitude,
	)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return result, nil
}

// ListByUser implements attendance.RecordRepository.
func (r *recordRepositoryImpl) ListByUser(ctx context.Context, userID string, limit int) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE user_id = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list records by user: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// List implements attendance.RecordRepository.
func (r *recordRepositoryImpl) List(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + recordColumns + ` FROM attendance_records WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != "" {
		query += fmt.Sprintf(" AND user_id = $%d", argIdx)
		args = append(args, filter.UserID)
		argIdx++
	}

	if filter.Jobs != nil {
		query += fmt.Sprintf(" AND user_job = ANY($%d)", argIdx)
		args = append(args, filter.Jobs)
		argIdx++
	}

	query += " ORDER BY timestamp DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, filter.Limit)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Count implements attendance.RecordRepository.
func (r *recordRepositoryImpl) Count(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM attendance_records`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}

	return count, nil
}

func scanRecords(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]attendance.Record, error) {
	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.UserName,
			&rec.UserJob,
			&rec.BranchID,
			&rec.BranchName,
			&rec.Type,
			&rec.Timestamp,
			&rec.Latitude,
			&rec.Longitude,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return records, nil
}
