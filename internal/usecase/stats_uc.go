package usecase

import (
	"context"
	"time"

	"property-marketplace/internal/domain/ports/repository"
)

// StatsUseCase aggregates the numbers the admin dashboard shows.
type StatsUseCase interface {
	// Totals returns the user count and active subscriptions keyed by plan.
	Totals(ctx context.Context) (int, map[string]int, error)
	// Revenue returns completed-payment sums for the trailing week, month
	// and year.
	Revenue(ctx context.Context) (week, month, year float64, err error)
}

type statsUC struct {
	users    repository.UserRepository
	subs     repository.SubscriptionRepository
	payments repository.PaymentRepository
	now      func() time.Time
}

func NewStatsUseCase(users repository.UserRepository, subs repository.SubscriptionRepository, payments repository.PaymentRepository) *statsUC {
	return &statsUC{users: users, subs: subs, payments: payments, now: time.Now}
}

var _ StatsUseCase = (*statsUC)(nil)

func (u *statsUC) Totals(ctx context.Context) (int, map[string]int, error) {
	total, err := u.users.CountUsers(ctx, nil)
	if err != nil {
		return 0, nil, err
	}
	byPlan, err := u.subs.CountActiveByPlan(ctx, nil)
	if err != nil {
		return 0, nil, err
	}
	return total, byPlan, nil
}

func (u *statsUC) Revenue(ctx context.Context) (week, month, year float64, err error) {
	now := u.now()
	if week, err = u.payments.SumCompletedSince(ctx, nil, now.AddDate(0, 0, -7)); err != nil {
		return 0, 0, 0, err
	}
	if month, err = u.payments.SumCompletedSince(ctx, nil, now.AddDate(0, -1, 0)); err != nil {
		return 0, 0, 0, err
	}
	if year, err = u.payments.SumCompletedSince(ctx, nil, now.AddDate(-1, 0, 0)); err != nil {
		return 0, 0, 0, err
	}
	return week, month, year, nil
}
