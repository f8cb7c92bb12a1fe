package repository

import (
	"context"

	"property-marketplace/internal/domain/model"
)

type SavedSearchRepository interface {
	Save(ctx context.Context, tx Tx, s *model.SavedSearch) error
	ListByUser(ctx context.Context, tx Tx, userID string) ([]*model.SavedSearch, error)
	Delete(ctx context.Context, tx Tx, id, userID string) error
}
