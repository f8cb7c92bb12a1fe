package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"property-marketplace/internal/domain"
	"property-marketplace/internal/domain/model"
	"property-marketplace/internal/domain/ports/repository"
)

// Ensure interface compliance at compile time
var _ repository.SettingsRepository = (*settingsRepo)(nil)

// The settings document is a single JSONB row keyed by a fixed name.
const platformSettingsKey = "platform"

type settingsRepo struct{ pool *pgxpool.Pool }

func NewSettingsRepo(pool *pgxpool.Pool) *settingsRepo {
	return &settingsRepo{pool: pool}
}

func (r *settingsRepo) Get(ctx context.Context, tx repository.Tx) (model.PlatformSettings, error) {
	const q = `SELECT value FROM app_settings WHERE key=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, platformSettingsKey)
	if err != nil {
		return model.PlatformSettings{}, err
	}
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.PlatformSettings{}, domain.ErrNotFound
		}
		return model.PlatformSettings{}, domain.ErrReadDatabaseRow
	}
	// Start from defaults so stored documents written before a new field
	// existed still carry a sensible value for it.
	s := model.DefaultPlatformSettings()
	if err := json.Unmarshal(raw, &s); err != nil {
		return model.PlatformSettings{}, fmt.Errorf("unmarshal settings: %w", err)
	}
	return s, nil
}

func (r *settingsRepo) Put(ctx context.Context, tx repository.Tx, s model.PlatformSettings) error {
	value, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	const q = `
INSERT INTO app_settings (key, value, updated_at)
VALUES ($1,$2,NOW())
ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, updated_at=NOW();`
	if _, err := execSQL(ctx, r.pool, tx, q, platformSettingsKey, value); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
