package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/uniteam-app/uniteam-backend-go/internal/domain/appconfig"
	"github.com/uniteam-app/uniteam-backend-go/internal/pkg/database"
)

// app_config is a singleton row keyed by a constant id.
const configRowID = 1

type configRepositoryImpl struct {
	db       *database.DB
	defaults appconfig.Config
}

func NewConfigRepository(db *database.DB, defaults appconfig.Config) appconfig.ConfigRepository {
	return &configRepositoryImpl{db: db, defaults: defaults}
}

// Get implements appconfig.ConfigRepository.
func (r *configRepositoryImpl) Get(ctx context.Context) (appconfig.Config, error) {
	q := GetQuerier(ctx, r.db)

	var cfg appconfig.Config
	err := q.QueryRow(ctx, `
		SELECT sync_url, google_sheet_link, admin_username, admin_password, last_updated
		FROM app_config WHERE id = $1
	`, configRowID).Scan(
		&cfg.SyncURL,
		&cfg.GoogleSheetLink,
		&cfg.AdminUsername,
		&cfg.AdminPassword,
		&cfg.LastUpdated,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return r.defaults, nil
		}
		return appconfig.Config{}, fmt.Errorf("failed to get app config: %w", err)
	}

	return cfg, nil
}

// Save implements appconfig.ConfigRepository.
func (r *configRepositoryImpl) Save(ctx context.Context, cfg appconfig.Config) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO app_config (id, sync_url, google_sheet_link, admin_username, admin_password, last_updated, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (id) DO UPDATE SET
			sync_url = EXCLUDED.sync_url,
			google_sheet_link = EXCLUDED.google_sheet_link,
			admin_username = EXCLUDED.admin_username,
			admin_password = EXCLUDED.admin_password,
			last_updated = EXCLUDED.last_updated,
			updated_at = NOW()
	`, configRowID, cfg.SyncURL, cfg.GoogleSheetLink, cfg.AdminUsername, cfg.AdminPassword, cfg.LastUpdated)
	if err != nil {
		return fmt.Errorf("failed to save app config: %w", err)
	}

	return nil
}

// TouchLastUpdated implements appconfig.ConfigRepository.
func (r *configRepositoryImpl) TouchLastUpdated(ctx context.Context, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `
		UPDATE app_config SET last_updated = $1, updated_at = NOW() WHERE id = $2
	`, at, configRowID)
	if err != nil {
		return fmt.Errorf("failed to touch last_updated: %w", err)
	}

	// No config saved yet: persist the defaults with the timestamp.
	if commandTag.RowsAffected() == 0 {
		cfg := r.defaults
		cfg.LastUpdated = &at
		return r.Save(ctx, cfg)
	}

	return nil
}
