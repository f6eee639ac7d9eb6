package repository

import (
	"context"
	"time"
)

// OrderLocker serializes callback handling per local order so duplicate or
// concurrent callbacks cannot race the status transition.
type OrderLocker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (token string, err error)
	Unlock(ctx context.Context, key, token string) error
}
