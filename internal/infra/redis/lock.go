// File: internal/infra/redis/lock.go
package redis

import (
	"context"
	"time"

	"razorpay-checkout/internal/domain"
	"razorpay-checkout/internal/domain/ports/repository"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var _ repository.OrderLocker = (*RedisLocker)(nil)

// lockClient is the slice of the redis client the locker needs. *redis.Client
// satisfies it.
type lockClient interface {
	redis.Scripter
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

type RedisLocker struct {
	cli lockClient
}

func NewLocker(c *redClient) *RedisLocker {
	return &RedisLocker{cli: c.cli}
}

func (l *RedisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	var lastErr error
	for i := 0; i < 5; i++ { // 5 tries
		ok, err := l.cli.SetNX(ctx, key, token, ttl).Result()
		if err != nil {
			lastErr = err
			time.Sleep(50 * time.Millisecond)
			continue
		}
		if ok {
			return token, nil
		}
		lastErr = nil
		time.Sleep(50 * time.Millisecond) // wait before retrying
	}
	if lastErr != nil {
		// The backend failed, the lock may not be held at all. Contention
		// and outage must not look alike to the caller.
		return "", lastErr
	}
	return "", domain.ErrOrderLocked
}

var luaUnlock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end`)

func (l *RedisLocker) Unlock(ctx context.Context, key, token string) error {
	_, err := luaUnlock.Run(ctx, l.cli, []string{key}, token).Result()
	return err
}
