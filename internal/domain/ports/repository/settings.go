package repository

import (
	"context"

	"property-marketplace/internal/domain/model"
)

// SettingsRepository stores the single platform settings document. Get
// returns domain.ErrNotFound when nothing has been saved yet; callers fall
// back to defaults.
type SettingsRepository interface {
	Get(ctx context.Context, tx Tx) (model.PlatformSettings, error)
	Put(ctx context.Context, tx Tx, s model.PlatformSettings) error
}
