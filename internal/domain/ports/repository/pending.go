package repository

import (
	"context"
	"time"

	"property-marketplace/internal/domain/model"
)

// PendingAttemptRepository parks checkouts awaiting out-of-band confirmation.
// Entries expire on their own (TTL) if the provider never settles them.
type PendingAttemptRepository interface {
	Save(ctx context.Context, a *model.PendingAttempt, ttl time.Duration) error
	ListOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]*model.PendingAttempt, error)
	Delete(ctx context.Context, reference string) error
}
