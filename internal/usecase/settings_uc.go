package usecase

import (
	"context"
	"errors"

	"property-marketplace/internal/domain"
	"property-marketplace/internal/domain/model"
	"property-marketplace/internal/domain/ports/repository"
)

// Compile-time check
var _ SettingsUseCase = (*settingsUC)(nil)

// SettingsUseCase exposes the platform settings document to the admin
// surface. Get never fails on an empty store; it answers defaults instead.
type SettingsUseCase interface {
	Get(ctx context.Context) (model.PlatformSettings, error)
	Update(ctx context.Context, s model.PlatformSettings) error
}

type settingsUC struct {
	settings repository.SettingsRepository
}

func NewSettingsUseCase(settings repository.SettingsRepository) *settingsUC {
	return &settingsUC{settings: settings}
}

func (u *settingsUC) Get(ctx context.Context) (model.PlatformSettings, error) {
	s, err := u.settings.Get(ctx, nil)
	if errors.Is(err, domain.ErrNotFound) {
		return model.DefaultPlatformSettings(), nil
	}
	return s, err
}

func (u *settingsUC) Update(ctx context.Context, s model.PlatformSettings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	return u.settings.Put(ctx, nil, s)
}
