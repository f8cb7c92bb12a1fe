package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"property-marketplace/internal/domain"
	"property-marketplace/internal/domain/model"
	"property-marketplace/internal/domain/ports/repository"
)

// Ensure interface compliance at compile time
var _ repository.PendingAttemptRepository = (*PendingStore)(nil)

const pendingKeyPrefix = "payment:pending:"

// PendingStore parks checkout attempts awaiting out-of-band confirmation.
// Keys expire via TTL, so attempts the provider never settles vanish on
// their own instead of accumulating.
type PendingStore struct {
	cli *redis.Client
}

func NewPendingStore(c *Client) *PendingStore {
	return &PendingStore{cli: c.cli}
}

func (s *PendingStore) Save(ctx context.Context, a *model.PendingAttempt, ttl time.Duration) error {
	if a == nil || a.Reference == "" {
		return domain.ErrInvalidArgument
	}
	b, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return s.cli.Set(ctx, pendingKeyPrefix+a.Reference, b, ttl).Err()
}

func (s *PendingStore) ListOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]*model.PendingAttempt, error) {
	var (
		out    []*model.PendingAttempt
		cursor uint64
	)
	for {
		keys, next, err := s.cli.Scan(ctx, cursor, pendingKeyPrefix+"*", 100).Result()
		if err != nil {
			return nil, err
		}
		for _, key := range keys {
			raw, err := s.cli.Get(ctx, key).Result()
			if errors.Is(err, redis.Nil) {
				continue // expired between scan and get
			}
			if err != nil {
				return nil, err
			}
			var a model.PendingAttempt
			if err := json.Unmarshal([]byte(raw), &a); err != nil {
				continue // malformed entry, skip rather than wedge the sweep
			}
			if a.CreatedAt.Before(cutoff) {
				out = append(out, &a)
				if limit > 0 && len(out) >= limit {
					return out, nil
				}
			}
		}
		cursor = next
		if cursor == 0 {
			return out, nil
		}
	}
}

func (s *PendingStore) Delete(ctx context.Context, reference string) error {
	n, err := s.cli.Del(ctx, pendingKeyPrefix+reference).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
