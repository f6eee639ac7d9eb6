// File: internal/usecase/provision_uc.go
package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"razorpay-checkout/internal/config"
	"razorpay-checkout/internal/domain"
	"razorpay-checkout/internal/domain/model"
	"razorpay-checkout/internal/domain/ports/adapter"
	"razorpay-checkout/internal/domain/ports/repository"
)

// Compile-time check
var _ ProvisionUseCase = (*provisionUC)(nil)

type ProvisionUseCase interface {
	// Provision creates a fresh remote order for the local order, binds the
	// two in the session store, and returns the checkout page parameters.
	// A retried checkout creates a new remote order and overwrites the
	// binding; remote orders are never reused.
	Provision(ctx context.Context, localOrderID string) (*model.CheckoutSession, error)
}

type provisionUC struct {
	orders   repository.OrderRepository
	bindings repository.BindingStore
	gateway  adapter.GatewayClient
	cfg      config.GatewayConfig
	log      *zerolog.Logger
}

func NewProvisionUseCase(
	orders repository.OrderRepository,
	bindings repository.BindingStore,
	gateway adapter.GatewayClient,
	cfg config.GatewayConfig,
	logger *zerolog.Logger,
) *provisionUC {
	return &provisionUC{orders: orders, bindings: bindings, gateway: gateway, cfg: cfg, log: logger}
}

func (u *provisionUC) Provision(ctx context.Context, localOrderID string) (*model.CheckoutSession, error) {
	order, err := u.orders.FindByID(ctx, nil, localOrderID)
	if err != nil {
		return nil, err
	}
	if order.Status.Terminal() {
		return nil, domain.ErrOrderFinalized
	}

	amount := model.MinorUnits(order.Price)
	remoteID, err := u.gateway.CreateOrder(ctx, adapter.CreateOrderRequest{
		Receipt:     order.ID,
		AmountMinor: amount,
		Currency:    order.Currency,
		AutoCapture: u.cfg.AutoCapture(),
		Notes:       map[string]string{"platform_order_id": order.ID},
	})
	if err != nil {
		u.log.Error().Err(err).Str("order_id", order.ID).Msg("remote order creation failed")
		return nil, fmt.Errorf("create remote order: %w", err)
	}

	if err := u.bindings.Put(ctx, order.ID, remoteID); err != nil {
		u.log.Error().Err(err).Str("order_id", order.ID).Msg("binding write failed")
		return nil, fmt.Errorf("bind remote order: %w", err)
	}

	u.log.Debug().
		Str("order_id", order.ID).
		Str("remote_order_id", remoteID).
		Int64("amount_minor", amount).
		Bool("auto_capture", u.cfg.AutoCapture()).
		Msg("remote order provisioned")

	return &model.CheckoutSession{
		KeyID:         u.cfg.KeyID,
		AmountMinor:   amount,
		Currency:      order.Currency,
		RemoteOrderID: remoteID,
		MerchantName:  u.cfg.MerchantName,
		LocalOrderID:  order.ID,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
	}, nil
}
