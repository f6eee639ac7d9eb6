package model

// CallbackPayload carries the fields the return form posts back once the
// hosted checkout finishes. It is single-use and never persisted beyond
// the audit note derived from it.
type CallbackPayload struct {
	LocalOrderID  string // merchant_order_id form field
	PaymentID     string // razorpay_payment_id
	RemoteOrderID string // razorpay_order_id as echoed by the gateway UI
	Signature     string // razorpay_signature
}

type RejectReason string

const (
	RejectMissingPaymentID RejectReason = "missing_payment_id"
	RejectNoBinding        RejectReason = "no_binding"
	RejectSignatureInvalid RejectReason = "signature_invalid"
)

// VerificationResult is the tagged outcome of callback verification.
// Either Verified (OK set, PaymentID present) or Rejected (Reason set).
type VerificationResult struct {
	OK        bool
	PaymentID string       // always set when OK; set on rejection if the callback carried one
	Reason    RejectReason // set only when !OK
	Detail    string       // internal detail; recorded in audit notes, never shown to the customer
}

func Verified(paymentID string) VerificationResult {
	return VerificationResult{OK: true, PaymentID: paymentID}
}

func Rejected(reason RejectReason, paymentID, detail string) VerificationResult {
	return VerificationResult{PaymentID: paymentID, Reason: reason, Detail: detail}
}

// CheckoutSession holds everything the hosted checkout page embeds for one
// provisioned order.
type CheckoutSession struct {
	KeyID         string
	AmountMinor   int64
	Currency      string
	RemoteOrderID string
	MerchantName  string
	LocalOrderID  string
	CustomerName  string
	CustomerEmail string
}
