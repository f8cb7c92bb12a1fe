package repository

import (
	"context"

	"property-marketplace/internal/domain/model"
)

// SubscriptionRepository stores one subscription row per user.
type SubscriptionRepository interface {
	// Upsert atomically inserts or updates the row keyed by UserID
	// (INSERT .. ON CONFLICT (user_id) DO UPDATE). Concurrent settlements
	// for the same user must not lose payment rows; the subscription ends
	// up with whichever period-end committed last.
	Upsert(ctx context.Context, tx Tx, sub *model.Subscription) error
	FindByUser(ctx context.Context, tx Tx, userID string) (*model.Subscription, error)
	List(ctx context.Context, tx Tx, limit int) ([]*model.Subscription, error)
	CountActiveByPlan(ctx context.Context, tx Tx) (map[string]int, error)
}
