package repository

import (
	"context"

	"razorpay-checkout/internal/domain/model"
)

// -----------------------------
// Orders
// -----------------------------

type OrderRepository interface {
	Save(ctx context.Context, qx Tx, o *model.LocalOrder) error
	FindByID(ctx context.Context, qx Tx, id string) (*model.LocalOrder, error)

	// TransitionFromPending applies the single allowed status transition
	// (pending -> publish|failed) as a compare-and-swap. It reports whether
	// the swap was applied; false means the order was already terminal.
	TransitionFromPending(ctx context.Context, qx Tx, id string, status model.OrderStatus) (bool, error)

	AppendNote(ctx context.Context, qx Tx, orderID, note string) error
	ListNotes(ctx context.Context, qx Tx, orderID string) ([]*model.OrderNote, error)
}
