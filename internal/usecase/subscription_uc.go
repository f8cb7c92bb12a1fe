package usecase

import (
	"context"
	"time"

	"property-marketplace/internal/domain/model"
	"property-marketplace/internal/domain/ports/repository"
)

// Compile-time check
var _ SubscriptionUseCase = (*subscriptionUC)(nil)

type SubscriptionUseCase interface {
	GetByUser(ctx context.Context, userID string) (*model.Subscription, error)
	// HasActive reports whether the user holds an unexpired active
	// subscription. Listing visibility for professional roles gates on it.
	HasActive(ctx context.Context, userID string) (bool, error)
	List(ctx context.Context, limit int) ([]*model.Subscription, error)
	CountActiveByPlan(ctx context.Context) (map[string]int, error)
}

type subscriptionUC struct {
	subs repository.SubscriptionRepository
	now  func() time.Time
}

func NewSubscriptionUseCase(subs repository.SubscriptionRepository) *subscriptionUC {
	return &subscriptionUC{subs: subs, now: time.Now}
}

func (u *subscriptionUC) GetByUser(ctx context.Context, userID string) (*model.Subscription, error) {
	return u.subs.FindByUser(ctx, nil, userID)
}

func (u *subscriptionUC) HasActive(ctx context.Context, userID string) (bool, error) {
	sub, err := u.subs.FindByUser(ctx, nil, userID)
	if err != nil {
		return false, err
	}
	return sub.IsActive(u.now()), nil
}

func (u *subscriptionUC) List(ctx context.Context, limit int) ([]*model.Subscription, error) {
	return u.subs.List(ctx, nil, limit)
}

func (u *subscriptionUC) CountActiveByPlan(ctx context.Context) (map[string]int, error) {
	return u.subs.CountActiveByPlan(ctx, nil)
}
