package web

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"razorpay-checkout/internal/domain"
	"razorpay-checkout/internal/domain/model"
	"razorpay-checkout/internal/infra/logging"
	"razorpay-checkout/internal/infra/metrics"
	"razorpay-checkout/internal/infra/redis"
	"razorpay-checkout/internal/usecase"
)

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// handleCreateOrder seeds a pending local order on behalf of the host
// platform and returns the checkout URL for it.
func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Price     float64 `json:"price"`
		Currency  string  `json:"currency"`
		FirstName string  `json:"first_name"`
		LastName  string  `json:"last_name"`
		Email     string  `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}
	o, err := s.orderUC.Create(r.Context(), usecase.CreateOrderInput{
		Price:     in.Price,
		Currency:  in.Currency,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			writeError(w, http.StatusBadRequest, "price and currency are required")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not create order")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":           o.ID,
		"status":       o.Status,
		"checkout_url": "/checkout/" + o.ID,
	})
}

// handleGetOrder returns an order and its audit trail for the merchant API.
func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "orderID")
	o, notes, err := s.orderUC.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not load order")
		return
	}

	type noteJSON struct {
		Note      string    `json:"note"`
		CreatedAt time.Time `json:"created_at"`
	}
	out := struct {
		ID            string     `json:"id"`
		Price         float64    `json:"price"`
		Currency      string     `json:"currency"`
		CustomerName  string     `json:"customer_name"`
		CustomerEmail string     `json:"customer_email"`
		Status        string     `json:"status"`
		Notes         []noteJSON `json:"notes"`
	}{
		ID:            o.ID,
		Price:         o.Price,
		Currency:      o.Currency,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		Status:        string(o.Status),
	}
	for _, n := range notes {
		out.Notes = append(out.Notes, noteJSON{Note: n.Note, CreatedAt: n.CreatedAt})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleLogin exchanges the configured API key for a merchant session token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.apiKey == "" {
		writeError(w, http.StatusForbidden, "merchant API is not configured")
		return
	}
	if s.limiter != nil {
		ok, err := s.limiter.Allow(r.Context(), redis.LoginKey(clientIP(r)), 10, time.Minute)
		switch {
		case err != nil:
			// Fail open: a dead limiter must not lock the merchant out, but
			// it has to show up in the logs.
			s.log.Warn().Err(err).Msg("login rate limiter unavailable")
		case !ok:
			writeError(w, http.StatusTooManyRequests, "too many attempts")
			return
		}
	}
	key := r.Header.Get("X-API-Key")
	if key == "" {
		var in struct {
			APIKey string `json:"api_key"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err == nil {
			key = in.APIKey
		}
	}
	if key != s.apiKey {
		writeError(w, http.StatusUnauthorized, "invalid api key")
		return
	}
	token, err := s.auth.Mint(w)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not mint session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// handleCheckoutPage provisions a remote order and renders the hosted
// checkout bootstrap page. A provisioning failure blocks checkout instead of
// rendering a payment UI with no valid order behind it.
func (s *Server) handleCheckoutPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "orderID")
	ctx := logging.WithOrderID(r.Context(), id)

	session, err := s.provisionUC.Provision(ctx, id)
	if err != nil {
		metrics.IncProvision("error")
		l := logging.With(ctx, s.log)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			http.Error(w, "order not found", http.StatusNotFound)
		case errors.Is(err, domain.ErrOrderFinalized):
			http.Error(w, "order is no longer payable", http.StatusConflict)
		default:
			l.Error().Err(err).Msg("checkout provisioning failed")
			http.Error(w, "checkout is temporarily unavailable", http.StatusBadGateway)
		}
		return
	}
	metrics.IncProvision("ok")

	s.renderCheckout(w, session, r.URL.Query().Get("payment_error") != "")
}

// handleCallback is the fixed return endpoint for the gateway's POST.
func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}

	// Not a gateway callback: leave unrelated form posts alone.
	if r.PostFormValue("gateway") != GatewayDiscriminator || r.PostFormValue("merchant_order_id") == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	cb := model.CallbackPayload{
		LocalOrderID:  r.PostFormValue("merchant_order_id"),
		PaymentID:     r.PostFormValue("razorpay_payment_id"),
		RemoteOrderID: r.PostFormValue("razorpay_order_id"),
		Signature:     r.PostFormValue("razorpay_signature"),
	}
	ctx := logging.WithOrderID(r.Context(), cb.LocalOrderID)
	l := logging.With(ctx, s.log)

	outcome, err := s.callbackUC.HandleCallback(ctx, cb)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderFinalized):
			// Duplicate callback; the first one already settled the order.
			// Send the customer wherever its terminal status points.
			metrics.ObserveCallbackDuration("duplicate", time.Since(start).Seconds())
			s.redirectFinalized(w, r, cb.LocalOrderID)
		case errors.Is(err, domain.ErrOrderLocked):
			metrics.ObserveCallbackDuration("locked", time.Since(start).Seconds())
			http.Error(w, "callback already in progress", http.StatusConflict)
		default:
			metrics.ObserveCallbackDuration("error", time.Since(start).Seconds())
			l.Error().Err(err).Msg("callback handling failed")
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	if outcome.Status == model.OrderStatusPublish {
		metrics.IncVerification("verified", "")
	} else {
		metrics.IncVerification("rejected", string(outcome.Reason))
	}
	metrics.IncReconciled(string(outcome.Status))
	metrics.ObserveCallbackDuration(string(outcome.Status), time.Since(start).Seconds())

	target := outcome.RedirectURL
	if outcome.UserError != "" {
		target = withPaymentError(target)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// redirectFinalized routes a duplicate callback by the order's terminal
// status without touching it.
func (s *Server) redirectFinalized(w http.ResponseWriter, r *http.Request, orderID string) {
	o, _, err := s.orderUC.Get(r.Context(), orderID)
	if err == nil && o.Status == model.OrderStatusPublish {
		http.Redirect(w, r, s.successURL, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, s.checkoutURL, http.StatusSeeOther)
}

func withPaymentError(target string) string {
	sep := "?"
	for i := 0; i < len(target); i++ {
		if target[i] == '?' {
			sep = "&"
			break
		}
	}
	return target + sep + "payment_error=1"
}
