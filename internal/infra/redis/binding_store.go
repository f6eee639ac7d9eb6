package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"razorpay-checkout/internal/domain"
	"razorpay-checkout/internal/domain/ports/repository"

	"github.com/go-redis/redis/v8"
)

var _ repository.BindingStore = (*BindingStore)(nil)

// BindingStore keeps the local-order -> remote-order binding in Redis for
// the lifetime of the checkout session. Keys are namespaced per local order
// so concurrent checkouts never collide; re-provisioning overwrites.
type BindingStore struct {
	client RedisClient
	ttl    time.Duration
}

func NewBindingStore(client RedisClient, ttl time.Duration) *BindingStore {
	return &BindingStore{client: client, ttl: ttl}
}

func (s *BindingStore) bindingKey(localOrderID string) string {
	return fmt.Sprintf("checkout_binding:%s", localOrderID)
}

func (s *BindingStore) Put(ctx context.Context, localOrderID, remoteOrderID string) error {
	return s.client.Set(ctx, s.bindingKey(localOrderID), remoteOrderID, s.ttl)
}

func (s *BindingStore) Get(ctx context.Context, localOrderID string) (string, error) {
	v, err := s.client.Get(ctx, s.bindingKey(localOrderID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrNoBinding
		}
		return "", err
	}
	return v, nil
}
