package repository

import "context"

// BindingStore is the session-scoped mapping from a local order id to the
// remote order id provisioned for it. Bindings expire with the checkout
// session; there is no delete. A missing binding is domain.ErrNoBinding.
type BindingStore interface {
	Put(ctx context.Context, localOrderID, remoteOrderID string) error
	Get(ctx context.Context, localOrderID string) (remoteOrderID string, err error)
}

// CartStore is the narrow slice of the host platform's cart we need:
// clearing it once after a verified payment.
type CartStore interface {
	Clear(ctx context.Context, localOrderID string) error
}
