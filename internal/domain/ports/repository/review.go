package repository

import (
	"context"

	"property-marketplace/internal/domain/model"
)

type ReviewRepository interface {
	Save(ctx context.Context, tx Tx, r *model.Review) error
	ListByProperty(ctx context.Context, tx Tx, propertyID string, limit int) ([]*model.Review, error)
}
