package repository

import (
	"context"

	"property-marketplace/internal/domain/model"
)

type UserRepository interface {
	Save(ctx context.Context, tx Tx, u *model.User) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.User, error)
	FindByEmail(ctx context.Context, tx Tx, email string) (*model.User, error)
	List(ctx context.Context, tx Tx, offset, limit int) ([]*model.User, error)
	UpdateSubscriptionStatus(ctx context.Context, tx Tx, id string, status model.SubscriptionStatus) error
	CountUsers(ctx context.Context, tx Tx) (int, error)
}
