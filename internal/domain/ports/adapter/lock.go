package adapter

import (
	"context"
	"time"
)

// Locker is a distributed mutual-exclusion primitive. The payment flow holds
// a per-user lock across verify→record→upsert so concurrent attempts for the
// same user serialize instead of racing on the subscription row.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (token string, err error)
	Unlock(ctx context.Context, key, token string) error
}
