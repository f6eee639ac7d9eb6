//go:build !integration

package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"razorpay-checkout/internal/config"
	"razorpay-checkout/internal/domain/ports/adapter"
)

func testClient(baseURL string) *RazorpayClient {
	return NewRazorpayClient(config.GatewayConfig{
		KeyID:     "rzp_test_key",
		KeySecret: "secret",
		BaseURL:   baseURL,
		Timeout:   2 * time.Second,
	})
}

func TestRazorpayClient_CreateOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("should post the order and return its id", func(t *testing.T) {
		// --- Arrange ---
		var gotPath, gotUser, gotPass string
		var gotBody map[string]interface{}
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotUser, gotPass, _ = r.BasicAuth()
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			_ = json.NewEncoder(w).Encode(map[string]string{"id": "order_srv1", "status": "created"})
		}))
		defer srv.Close()

		// --- Act ---
		id, err := testClient(srv.URL).CreateOrder(ctx, adapter.CreateOrderRequest{
			Receipt:     "ord-1",
			AmountMinor: 2000,
			Currency:    "USD",
			AutoCapture: true,
			Notes:       map[string]string{"platform_order_id": "ord-1"},
		})

		// --- Assert ---
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if id != "order_srv1" {
			t.Errorf("expected id 'order_srv1', got '%s'", id)
		}
		if gotPath != "/orders" {
			t.Errorf("expected POST /orders, got '%s'", gotPath)
		}
		if gotUser != "rzp_test_key" || gotPass != "secret" {
			t.Error("expected basic auth with the configured credentials")
		}
		if gotBody["amount"].(float64) != 2000 {
			t.Errorf("expected amount 2000, got %v", gotBody["amount"])
		}
		if gotBody["payment_capture"].(float64) != 1 {
			t.Errorf("expected payment_capture 1, got %v", gotBody["payment_capture"])
		}
		if gotBody["receipt"] != "ord-1" {
			t.Errorf("expected receipt 'ord-1', got %v", gotBody["receipt"])
		}
	})

	t.Run("should send payment_capture 0 for authorize", func(t *testing.T) {
		// --- Arrange ---
		var gotBody map[string]interface{}
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			_ = json.NewEncoder(w).Encode(map[string]string{"id": "order_srv2"})
		}))
		defer srv.Close()

		// --- Act ---
		_, err := testClient(srv.URL).CreateOrder(ctx, adapter.CreateOrderRequest{
			Receipt: "ord-2", AmountMinor: 100, Currency: "INR",
		})

		// --- Assert ---
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if gotBody["payment_capture"].(float64) != 0 {
			t.Errorf("expected payment_capture 0, got %v", gotBody["payment_capture"])
		}
	})

	t.Run("should surface the API error description", func(t *testing.T) {
		// --- Arrange ---
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"amount must be at least 100"}}`))
		}))
		defer srv.Close()

		// --- Act ---
		_, err := testClient(srv.URL).CreateOrder(ctx, adapter.CreateOrderRequest{
			Receipt: "ord-3", AmountMinor: 1, Currency: "INR",
		})

		// --- Assert ---
		if err == nil {
			t.Fatal("expected an error, but got nil")
		}
	})

	t.Run("should reject a response without an order id", func(t *testing.T) {
		// --- Arrange ---
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		// --- Act ---
		_, err := testClient(srv.URL).CreateOrder(ctx, adapter.CreateOrderRequest{
			Receipt: "ord-4", AmountMinor: 100, Currency: "INR",
		})

		// --- Assert ---
		if err == nil {
			t.Fatal("expected an error, but got nil")
		}
	})
}

func TestRazorpayClient_VerifyPaymentSignature(t *testing.T) {
	c := testClient("https://api.example")

	sig := SignPayment("order_srv1", "pay_123", "secret")
	if err := c.VerifyPaymentSignature("order_srv1", "pay_123", sig); err != nil {
		t.Fatalf("expected valid signature, got: %v", err)
	}
	if err := c.VerifyPaymentSignature("order_srv1", "pay_123", SignPayment("order_srv1", "pay_123", "wrong")); err == nil {
		t.Fatal("expected a signature signed with the wrong secret to fail")
	}
}
