package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"razorpay-checkout/internal/config"
	"razorpay-checkout/internal/domain/ports/adapter"
)

var _ adapter.GatewayClient = (*RazorpayClient)(nil)

// RazorpayClient implements the gateway port against the Razorpay v1 Orders
// API using direct HTTP calls with basic auth.
type RazorpayClient struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
}

// NewRazorpayClient creates a client bound to one set of credentials.
// Every call is bounded by cfg.Timeout.
func NewRazorpayClient(cfg config.GatewayConfig) *RazorpayClient {
	return &RazorpayClient{
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		client:    &http.Client{Timeout: cfg.Timeout},
	}
}

// orderResponse holds the fields we read from POST /orders.
type orderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// apiError mirrors Razorpay's error envelope.
type apiError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateOrder implements adapter.GatewayClient.CreateOrder.
func (c *RazorpayClient) CreateOrder(ctx context.Context, req adapter.CreateOrderRequest) (string, error) {
	capture := 1
	if !req.AutoCapture {
		capture = 0
	}
	payload := map[string]interface{}{
		"receipt":         req.Receipt,
		"amount":          req.AmountMinor,
		"currency":        req.Currency,
		"payment_capture": capture,
	}
	if len(req.Notes) > 0 {
		payload["notes"] = req.Notes
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request data: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.SetBasicAuth(c.keyID, c.keySecret)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Description != "" {
			return "", fmt.Errorf("razorpay error: %s (%s)", apiErr.Error.Description, apiErr.Error.Code)
		}
		return "", fmt.Errorf("razorpay: unexpected status %d, body: %s", resp.StatusCode, string(body))
	}

	var order orderResponse
	if err := json.Unmarshal(body, &order); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w, body: %s", err, string(body))
	}
	if order.ID == "" {
		return "", fmt.Errorf("razorpay: response carried no order id, body: %s", string(body))
	}

	return order.ID, nil
}

// VerifyPaymentSignature implements adapter.GatewayClient.VerifyPaymentSignature.
func (c *RazorpayClient) VerifyPaymentSignature(remoteOrderID, paymentID, signature string) error {
	return VerifySignature(remoteOrderID, paymentID, signature, c.keySecret)
}
