package adapter

import "context"

// CreateOrderRequest describes the remote order to provision on the gateway.
type CreateOrderRequest struct {
	Receipt     string // local order id, echoed back by the gateway dashboard
	AmountMinor int64  // minor units (paise/cents)
	Currency    string
	AutoCapture bool              // false = authorize only
	Notes       map[string]string // out-of-band reconciliation hints
}

// GatewayClient is the hex port for the hosted-checkout payment gateway.
type GatewayClient interface {
	// CreateOrder provisions a remote order and returns its gateway-assigned id.
	CreateOrder(ctx context.Context, req CreateOrderRequest) (remoteOrderID string, err error)

	// VerifyPaymentSignature checks that signature is a valid cryptographic
	// proof over the (remote order id, payment id) pair. nil means authentic.
	VerifyPaymentSignature(remoteOrderID, paymentID, signature string) error
}
