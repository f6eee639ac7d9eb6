package redis

import (
	"context"
	"fmt"

	"razorpay-checkout/internal/domain/ports/repository"
)

var _ repository.CartStore = (*CartStore)(nil)

// CartStore clears the platform cart entry tied to an order. The host
// platform owns cart contents; we only ever delete the key.
type CartStore struct {
	client RedisClient
}

func NewCartStore(client RedisClient) *CartStore {
	return &CartStore{client: client}
}

func (s *CartStore) cartKey(localOrderID string) string {
	return fmt.Sprintf("cart:%s", localOrderID)
}

func (s *CartStore) Clear(ctx context.Context, localOrderID string) error {
	return s.client.Del(ctx, s.cartKey(localOrderID))
}
