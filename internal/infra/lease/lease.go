// Package lease provides the cross-instance lock periodic tasks take before
// running a tick.
package lease

import (
	"context"
	"time"

	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "facility-booking:lease:"

// releaseScript deletes the key only while it still holds our token, so an
// expired lease taken over by another instance is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisLease struct {
	rdb redis.Cmdable
}

func NewRedisLease(rdb redis.Cmdable) *RedisLease {
	return &RedisLease{rdb: rdb}
}

func (l *RedisLease) TryAcquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, bool, error) {
	k := keyPrefix + key
	token := uuid.NewString()

	ok, err := l.rdb.SetNX(ctx, k, token, ttl).Result()
	if err != nil {
		return nil, false, errs.Wrapf(err, "failed to acquire lease %s", key)
	}
	if !ok {
		return nil, false, nil
	}

	release := func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.rdb, []string{k}, token).Err(); err != nil {
			return errs.Wrapf(err, "failed to release lease %s", key)
		}
		return nil
	}
	return release, true, nil
}

// LocalLease always grants. Used when a single instance runs the worker.
type LocalLease struct{}

func (LocalLease) TryAcquire(context.Context, string, time.Duration) (func(context.Context) error, bool, error) {
	return func(context.Context) error { return nil }, true, nil
}

var (
	_ shared.Lease = (*RedisLease)(nil)
	_ shared.Lease = LocalLease{}
)
