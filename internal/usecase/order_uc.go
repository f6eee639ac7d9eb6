// File: internal/usecase/order_uc.go
package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"razorpay-checkout/internal/domain"
	"razorpay-checkout/internal/domain/model"
	"razorpay-checkout/internal/domain/ports/repository"
)

// Compile-time check
var _ OrderUseCase = (*orderUC)(nil)

// CreateOrderInput carries what the host platform sends when it opens a
// checkout attempt.
type CreateOrderInput struct {
	Price     float64
	Currency  string
	FirstName string
	LastName  string
	Email     string
}

type OrderUseCase interface {
	// Create seeds a pending local order. Stands in for the host platform's
	// order insertion; the reconciler is the only later writer of status.
	Create(ctx context.Context, in CreateOrderInput) (*model.LocalOrder, error)
	// Get returns an order with its audit trail.
	Get(ctx context.Context, id string) (*model.LocalOrder, []*model.OrderNote, error)
}

type orderUC struct {
	orders repository.OrderRepository
	log    *zerolog.Logger
}

func NewOrderUseCase(orders repository.OrderRepository, logger *zerolog.Logger) *orderUC {
	return &orderUC{orders: orders, log: logger}
}

func (u *orderUC) Create(ctx context.Context, in CreateOrderInput) (*model.LocalOrder, error) {
	if in.Price <= 0 || in.Currency == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	o := &model.LocalOrder{
		ID:            uuid.NewString(),
		Price:         in.Price,
		Currency:      strings.ToUpper(in.Currency),
		CustomerName:  model.CustomerDisplayName(in.FirstName, in.LastName),
		CustomerEmail: in.Email,
		Status:        model.OrderStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := u.orders.Save(ctx, nil, o); err != nil {
		return nil, err
	}
	u.log.Debug().Str("order_id", o.ID).Msg("local order created")
	return o, nil
}

func (u *orderUC) Get(ctx context.Context, id string) (*model.LocalOrder, []*model.OrderNote, error) {
	o, err := u.orders.FindByID(ctx, nil, id)
	if err != nil {
		return nil, nil, err
	}
	notes, err := u.orders.ListNotes(ctx, nil, id)
	if err != nil {
		return nil, nil, err
	}
	return o, notes, nil
}
