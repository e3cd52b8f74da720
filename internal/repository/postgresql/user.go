package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/user"
	"github.com/uniteam-app/uniteam-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `id, full_name, national_id, password, role, device_id, job_title, default_branch_id, registration_date`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.FullName,
		&u.NationalID,
		&u.Password,
		&u.Role,
		&u.DeviceID,
		&u.JobTitle,
		&u.DefaultBranchID,
		&u.RegistrationDate,
	)
	return u, err
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (id, full_name, national_id, password, role, device_id, job_title, default_branch_id, registration_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING ` + userColumns

	result, err := scanUser(q.QueryRow(ctx, query,
		u.ID, u.FullName, u.NationalID, u.Password, u.Role,
		u.DeviceID, u.JobTitle, u.DefaultBranchID, u.RegistrationDate,
	))
	if err != nil {
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return result, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	result, err := scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return result, nil
}

// GetByNationalID implements user.UserRepository.
func (r *userRepositoryImpl) GetByNationalID(ctx context.Context, nationalID string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	result, err := scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE national_id = $1`, nationalID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by national id: %w", err)
	}

	return result, nil
}

// GetByDeviceID implements user.UserRepository.
func (r *userRepositoryImpl) GetByDeviceID(ctx context.Context, deviceID string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	result, err := scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE device_id = $1`, deviceID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by device id: %w", err)
	}

	return result, nil
}

// List implements user.UserRepository.
func (r *userRepositoryImpl) List(ctx context.Context) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY full_name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return users, nil
}

// Update implements user.UserRepository.
func (r *userRepositoryImpl) Update(ctx context.Context, req user.UpdateUserRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE users SET updated_at = NOW()`
	args := []interface{}{}
	argIdx := 1

	if req.FullName != nil {
		query += fmt.Sprintf(", full_name = $%d", argIdx)
		args = append(args, *req.FullName)
		argIdx++
	}

	if req.NationalID != nil {
		query += fmt.Sprintf(", national_id = $%d", argIdx)
		args = append(args, *req.NationalID)
		argIdx++
	}

	if req.JobTitle != nil {
		query += fmt.Sprintf(", job_title = $%d", argIdx)
		args = append(args, *req.JobTitle)
		argIdx++
	}

	if req.DefaultBranchID != nil {
		query += fmt.Sprintf(", default_branch_id = $%d", argIdx)
		args = append(args, *req.DefaultBranchID)
		argIdx++
	}

	query += fmt.Sprintf(" WHERE id = $%d", argIdx)
	args = append(args, req.ID)

	commandTag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// Delete implements user.UserRepository.
func (r *userRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// BindDevice implements user.UserRepository.
func (r *userRepositoryImpl) BindDevice(ctx context.Context, id string, deviceID string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `
		UPDATE users SET device_id = $1, updated_at = NOW()
		WHERE id = $2
	`, deviceID, id)
	if err != nil {
		return fmt.Errorf("failed to bind device: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// ClearDevice implements user.UserRepository.
func (r *userRepositoryImpl) ClearDevice(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `
		UPDATE users SET device_id = NULL, updated_at = NOW()
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("failed to clear device: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// ReplaceAll implements user.UserRepository.
func (r *userRepositoryImpl) ReplaceAll(ctx context.Context, users []user.User) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}

	for _, u := range users {
		_, err := q.Exec(ctx, `
			INSERT INTO users (id, full_name, national_id, password, role, device_id, job_title, default_branch_id, registration_date, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		`, u.ID, u.FullName, u.NationalID, u.Password, u.Role, u.DeviceID, u.JobTitle, u.DefaultBranchID, u.RegistrationDate)
		if err != nil {
			return fmt.Errorf("failed to insert user %s: %w", u.ID, err)
		}
	}

	return nil
}
