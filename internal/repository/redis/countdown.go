package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	redisx "github.com/omysaju/saju-go/internal/redis"
)

// DeadlineStore persists the promo countdown deadline as unix milliseconds.
// A missing or corrupt value reads as zero; the live service decides when to
// re-arm.
type DeadlineStore struct {
	rdb *redis.Client
	key string
}

func NewDeadlineStore(rdb *redis.Client) *DeadlineStore {
	return &DeadlineStore{rdb: rdb, key: redisx.KeyEventDeadline()}
}

func (s *DeadlineStore) Get(ctx context.Context) (time.Time, error) {
	const op = "redis.DeadlineStore.Get"

	raw, err := s.rdb.Get(ctx, s.key).Result()
	if err == redis.Nil {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, wrapErr(op, err)
	}

	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || ms <= 0 {
		return time.Time{}, nil
	}

	return time.UnixMilli(ms), nil
}

func (s *DeadlineStore) Set(ctx context.Context, deadline time.Time) error {
	const op = "redis.DeadlineStore.Set"

	err := s.rdb.Set(ctx, s.key, strconv.FormatInt(deadline.UnixMilli(), 10), 0).Err()
	if err != nil {
		return wrapErr(op, err)
	}
	return nil
}
