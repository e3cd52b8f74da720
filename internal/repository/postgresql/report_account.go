package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/report"
	"github.com/uniteam-app/uniteam-backend-go/internal/pkg/database"
)

type accountRepositoryImpl struct {
	db *database.DB
}

func NewReportAccountRepository(db *database.DB) report.AccountRepository {
	return &accountRepositoryImpl{db: db}
}

// Create implements report.AccountRepository.
func (r *accountRepositoryImpl) Create(ctx context.Context, a report.Account) (report.Account, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO report_accounts (id, username, password, allowed_jobs, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, username, password, allowed_jobs
	`

	var result report.Account
	err := q.QueryRow(ctx, query, a.ID, a.Username, a.Password, a.AllowedJobs).Scan(
		&result.ID,
		&result.Username,
		&result.Password,
		&result.AllowedJobs,
	)
	if err != nil {
		return report.Account{}, fmt.Errorf("failed to create report account: %w", err)
	}

	return result, nil
}

// GetByID implements report.AccountRepository.
func (r *accountRepositoryImpl) GetByID(ctx context.Context, id string) (report.Account, error) {
	q := GetQuerier(ctx, r.db)

	var result report.Account
	err := q.QueryRow(ctx, `
		SELECT id, username, password, allowed_jobs FROM report_accounts WHERE id = $1
	`, id).Scan(&result.ID, &result.Username, &result.Password, &result.AllowedJobs)
	if err != nil {
		if err == pgx.ErrNoRows {
			return report.Account{}, report.ErrAccountNotFound
		}
		return report.Account{}, fmt.Errorf("failed to get report account: %w", err)
	}

	return result, nil
}

// GetByUsername implements report.AccountRepository.
func (r *accountRepositoryImpl) GetByUsername(ctx context.Context, username string) (report.Account, error) {
	q := GetQuerier(ctx, r.db)

	var result report.Account
	err := q.QueryRow(ctx, `
		SELECT id, username, password, allowed_jobs FROM report_accounts WHERE username = $1
	`, username).Scan(&result.ID, &result.Username, &result.Password, &result.AllowedJobs)
	if err != nil {
		if err == pgx.ErrNoRows {
			return report.Account{}, report.ErrAccountNotFound
		}
		return report.Account{}, fmt.Errorf("failed to get report account by username: %w", err)
	}

	return result, nil
}

// List implements report.AccountRepository.
func (r *accountRepositoryImpl) List(ctx context.Context) ([]report.Account, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, username, password, allowed_jobs FROM report_accounts ORDER BY username ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list report accounts: %w", err)
	}
	defer rows.Close()

	var accounts []report.Account
	for rows.Next() {
		var a report.Account
		if err := rows.Scan(&a.ID, &a.Username, &a.Password, &a.AllowedJobs); err != nil {
			return nil, fmt.Errorf("failed to scan report account: %w", err)
		}
		accounts = append(accounts, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return accounts, nil
}

// Update implements report.AccountRepository.
func (r *accountRepositoryImpl) Update(ctx context.Context, req report.UpdateAccountRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE report_accounts SET updated_at = NOW()`
	args := []interface{}{}
	argIdx := 1

	if req.Username != nil {
		query += fmt.Sprintf(", username = $%d", argIdx)
		args = append(args, *req.Username)
		argIdx++
	}

	if req.Password != nil {
		query += fmt.Sprintf(", password = $%d", argIdx)
		args = append(args, *req.Password)
		argIdx++
	}

	if req.AllowedJobs != nil {
		query += fmt.Sprintf(", allowed_jobs = $%d", argIdx)
		args = append(args, req.AllowedJobs)
		argIdx++
	}

	query += fmt.Sprintf(" WHERE id = $%d", argIdx)
	args = append(args, req.ID)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update report account: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return report.ErrAccountNotFound
	}

	return nil
}

// Delete implements report.AccountRepository.
func (r *accountRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM report_accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete report account: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return report.ErrAccountNotFound
	}

	return nil
}

// ReplaceAll implements report.AccountRepository.
func (r *accountRepositoryImpl) ReplaceAll(ctx context.Context, accounts []report.Account) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM report_accounts`); err != nil {
		return fmt.Errorf("failed to clear report accounts: %w", err)
	}

	for _, a := range accounts {
		_, err := q.Exec(ctx, `
			INSERT INTO report_accounts (id, username, password, allowed_jobs, created_at, updated_at)
			VALUES ($1, $2, $3, $4, NOW(), NOW())
		`, a.ID, a.Username, a.Password, a.AllowedJobs)
		if err != nil {
			return fmt.Errorf("failed to insert report account %s: %w", a.ID, err)
		}
	}

	return nil
}
