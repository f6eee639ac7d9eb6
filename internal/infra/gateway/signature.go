package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
)

// SignPayment returns the lowercase hex HMAC-SHA256 over "orderID|paymentID",
// the proof the gateway attaches to its return form.
func SignPayment(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature recomputes the expected signature and compares it to the
// supplied one in constant time.
func VerifySignature(orderID, paymentID, provided, secret string) error {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := mac.Sum(nil)

	got, err := hex.DecodeString(provided)
	if err != nil {
		return fmt.Errorf("malformed signature: %w", err)
	}
	if !hmac.Equal(expected, got) {
		return errors.New("signature mismatch")
	}
	return nil
}
