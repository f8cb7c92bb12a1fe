package usecase

import (
	"context"

	"property-marketplace/internal/domain/model"
	"property-marketplace/internal/domain/ports/repository"
)

// Compile-time check
var _ SavedSearchUseCase = (*savedSearchUC)(nil)

type SavedSearchUseCase interface {
	Save(ctx context.Context, userID, name string, filters map[string]string) (*model.SavedSearch, error)
	ListByUser(ctx context.Context, userID string) ([]*model.SavedSearch, error)
	Delete(ctx context.Context, id, userID string) error
}

type savedSearchUC struct {
	searches repository.SavedSearchRepository
}

func NewSavedSearchUseCase(searches repository.SavedSearchRepository) *savedSearchUC {
	return &savedSearchUC{searches: searches}
}

func (u *savedSearchUC) Save(ctx context.Context, userID, name string, filters map[string]string) (*model.SavedSearch, error) {
	s, err := model.NewSavedSearch(userID, name, filters)
	if err != nil {
		return nil, err
	}
	if err := u.searches.Save(ctx, nil, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (u *savedSearchUC) ListByUser(ctx context.Context, userID string) ([]*model.SavedSearch, error) {
	return u.searches.ListByUser(ctx, nil, userID)
}

func (u *savedSearchUC) Delete(ctx context.Context, id, userID string) error {
	return u.searches.Delete(ctx, nil, id, userID)
}
