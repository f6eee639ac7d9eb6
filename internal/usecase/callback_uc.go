// File: internal/usecase/callback_uc.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"razorpay-checkout/internal/domain"
	"razorpay-checkout/internal/domain/model"
	"razorpay-checkout/internal/domain/ports/adapter"
	"razorpay-checkout/internal/domain/ports/repository"
)

// FailureMessage is the only text a customer ever sees for a rejected
// callback; detailed reasons stay in the audit trail.
const FailureMessage = "Payment failed. Please try again."

// callbackLockTTL bounds how long a crashed handler can keep an order locked.
const callbackLockTTL = 30 * time.Second

// Compile-time check
var _ CallbackUseCase = (*callbackUC)(nil)

// Outcome tells the web layer where to send the customer and what, if
// anything, to tell them.
type Outcome struct {
	RedirectURL string
	UserError   string // generic message; empty on success
	Status      model.OrderStatus
	Reason      model.RejectReason // empty on success
}

type CallbackUseCase interface {
	// Verify checks the callback's authenticity against the session binding.
	// It performs no mutation. A non-nil error means the binding could not
	// be read at all; the callback is neither verified nor rejected then and
	// must not finalize the order.
	Verify(ctx context.Context, cb model.CallbackPayload) (model.VerificationResult, error)

	// Reconcile applies a verification result to the local order: exactly one
	// status transition and one audit note, or domain.ErrOrderFinalized when
	// the order already left pending.
	Reconcile(ctx context.Context, localOrderID string, res model.VerificationResult) (Outcome, error)

	// HandleCallback runs Verify then Reconcile under a per-order lock.
	HandleCallback(ctx context.Context, cb model.CallbackPayload) (Outcome, error)
}

type callbackUC struct {
	orders   repository.OrderRepository
	bindings repository.BindingStore
	cart     repository.CartStore
	gateway  adapter.GatewayClient
	locker   repository.OrderLocker
	tm       repository.TransactionManager

	successURL  string
	checkoutURL string
	log         *zerolog.Logger
}

func NewCallbackUseCase(
	orders repository.OrderRepository,
	bindings repository.BindingStore,
	cart repository.CartStore,
	gateway adapter.GatewayClient,
	locker repository.OrderLocker,
	tm repository.TransactionManager,
	successURL, checkoutURL string,
	logger *zerolog.Logger,
) *callbackUC {
	return &callbackUC{
		orders:      orders,
		bindings:    bindings,
		cart:        cart,
		gateway:     gateway,
		locker:      locker,
		tm:          tm,
		successURL:  successURL,
		checkoutURL: checkoutURL,
		log:         logger,
	}
}

func (u *callbackUC) Verify(ctx context.Context, cb model.CallbackPayload) (model.VerificationResult, error) {
	if cb.PaymentID == "" || cb.LocalOrderID == "" {
		return model.Rejected(model.RejectMissingPaymentID, cb.PaymentID, "callback missing payment or order identifier"), nil
	}

	remoteID, err := u.bindings.Get(ctx, cb.LocalOrderID)
	if errors.Is(err, domain.ErrNoBinding) {
		// Expired sessions and forged order ids are indistinguishable from
		// here on; both reject without consulting the gateway.
		return model.Rejected(model.RejectNoBinding, cb.PaymentID, "no remote order bound for this order"), nil
	}
	if err != nil {
		// The store is unreachable, not empty. The callback may well be
		// authentic; leave the order pending for a retry.
		return model.VerificationResult{}, fmt.Errorf("read binding: %w", err)
	}

	if err := u.gateway.VerifyPaymentSignature(remoteID, cb.PaymentID, cb.Signature); err != nil {
		return model.Rejected(model.RejectSignatureInvalid, cb.PaymentID, err.Error()), nil
	}

	return model.Verified(cb.PaymentID), nil
}

func (u *callbackUC) Reconcile(ctx context.Context, localOrderID string, res model.VerificationResult) (Outcome, error) {
	status := model.OrderStatusFailed
	if res.OK {
		status = model.OrderStatusPublish
	}
	note := reconcileNote(res)

	// The swap and its note commit together; a second callback finds the
	// order terminal and writes nothing.
	var applied bool
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		var err error
		applied, err = u.orders.TransitionFromPending(ctx, tx, localOrderID, status)
		if err != nil || !applied {
			return err
		}
		return u.orders.AppendNote(ctx, tx, localOrderID, note)
	})
	if err != nil {
		return Outcome{}, err
	}
	if !applied {
		return Outcome{}, domain.ErrOrderFinalized
	}

	u.log.Info().
		Str("order_id", localOrderID).
		Str("status", string(status)).
		Str("reason", string(res.Reason)).
		Msg("order reconciled")

	if res.OK {
		if err := u.cart.Clear(ctx, localOrderID); err != nil {
			// The order is already settled; a lingering cart is an
			// inconvenience, not a correctness problem.
			u.log.Warn().Err(err).Str("order_id", localOrderID).Msg("cart clear failed")
		}
		return Outcome{RedirectURL: u.successURL, Status: status}, nil
	}
	return Outcome{RedirectURL: u.checkoutURL, UserError: FailureMessage, Status: status, Reason: res.Reason}, nil
}

func (u *callbackUC) HandleCallback(ctx context.Context, cb model.CallbackPayload) (Outcome, error) {
	if cb.LocalOrderID == "" {
		return Outcome{}, domain.ErrInvalidArgument
	}

	key := callbackLockKey(cb.LocalOrderID)
	token, err := u.locker.TryLock(ctx, key, callbackLockTTL)
	if err != nil {
		return Outcome{}, err
	}
	defer func() { _ = u.locker.Unlock(ctx, key, token) }()

	res, err := u.Verify(ctx, cb)
	if err != nil {
		return Outcome{}, err
	}
	return u.Reconcile(ctx, cb.LocalOrderID, res)
}

func callbackLockKey(localOrderID string) string {
	return "order_callback:" + localOrderID
}

func reconcileNote(res model.VerificationResult) string {
	if res.OK {
		return "Gateway Transaction ID: " + res.PaymentID + "\npublish"
	}
	var note string
	if res.PaymentID != "" {
		note = "Gateway Transaction ID: " + res.PaymentID + "\n"
	}
	note += "Payment verification failed: " + string(res.Reason)
	if res.Detail != "" {
		note += ": " + res.Detail
	}
	return note
}
