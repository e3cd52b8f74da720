package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/job"
	"github.com/uniteam-app/uniteam-backend-go/internal/pkg/database"
)

type jobRepositoryImpl struct {
	db *database.DB
}

func NewJobRepository(db *database.DB) job.JobRepository {
	return &jobRepositoryImpl{db: db}
}

// Create implements job.JobRepository.
func (r *jobRepositoryImpl) Create(ctx context.Context, j job.Job) (job.Job, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO jobs (id, title, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, title
	`

	var result job.Job
	err := q.QueryRow(ctx, query, j.ID, j.Title).Scan(&result.ID, &result.Title)
	if err != nil {
		return job.Job{}, fmt.Errorf("failed to create job: %w", err)
	}

	return result, nil
}

// GetByID implements job.JobRepository.
func (r *jobRepositoryImpl) GetByID(ctx context.Context, id string) (job.Job, error) {
	q := GetQuerier(ctx, r.db)

	var result job.Job
	err := q.QueryRow(ctx, `SELECT id, title FROM jobs WHERE id = $1`, id).Scan(&result.ID, &result.Title)
	if err != nil {
		if err == pgx.ErrNoRows {
			return job.Job{}, job.ErrJobNotFound
		}
		return job.Job{}, fmt.Errorf("failed to get job: %w", err)
	}

	return result, nil
}

// List implements job.JobRepository.
func (r *jobRepositoryImpl) List(ctx context.Context) ([]job.Job, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, title FROM jobs ORDER BY title ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []job.Job
	for rows.Next() {
		var j job.Job
		if err := rows.Scan(&j.ID, &j.Title); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, j)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return jobs, nil
}

// Update implements job.JobRepository.
func (r *jobRepositoryImpl) Update(ctx context.Context, req job.UpdateJobRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE jobs SET updated_at = NOW()`
	args := []interface{}{}
	argIdx := 1

	if req.Title != nil {
		query += fmt.Sprintf(", title = $%d", argIdx)
		args = append(args, *req.Title)
		argIdx++
	}

	query += fmt.Sprintf(" WHERE id = $%d", argIdx)
	args = append(args, req.ID)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return job.ErrJobNotFound
	}

	return nil
}

// Delete implements job.JobRepository.
func (r *jobRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return job.ErrJobNotFound
	}

	return nil
}

// ReplaceAll implements job.JobRepository.
func (r *jobRepositoryImpl) ReplaceAll(ctx context.Context, jobs []job.Job) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM jobs`); err != nil {
		return fmt.Errorf("failed to clear jobs: %w", err)
	}

	for _, j := range jobs {
		_, err := q.Exec(ctx, `
			INSERT INTO jobs (id, title, created_at, updated_at)
			VALUES ($1, $2, NOW(), NOW())
		`, j.ID, j.Title)
		if err != nil {
			return fmt.Errorf("failed to insert job %s: %w", j.ID, err)
		}
	}

	return nil
}
