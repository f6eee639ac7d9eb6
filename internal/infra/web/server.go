package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"razorpay-checkout/internal/usecase"
)

// LoginLimiter bounds merchant login attempts per client.
type LoginLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// CallbackPath is the fixed endpoint the hosted checkout's return form posts
// back to.
const CallbackPath = "/checkout/return"

// GatewayDiscriminator marks a POST as a gateway callback; posts without it
// are ignored so unrelated form submissions to the same URL pass through.
const GatewayDiscriminator = "razorpay_gateway"

type Server struct {
	orderUC     usecase.OrderUseCase
	provisionUC usecase.ProvisionUseCase
	callbackUC  usecase.CallbackUseCase
	auth        *AuthManager
	apiKey      string
	limiter     LoginLimiter // nil disables limiting
	successURL  string
	checkoutURL string
	log         *zerolog.Logger
}

func NewServer(
	orderUC usecase.OrderUseCase,
	provisionUC usecase.ProvisionUseCase,
	callbackUC usecase.CallbackUseCase,
	auth *AuthManager,
	apiKey string,
	limiter LoginLimiter,
	successURL, checkoutURL string,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		orderUC:     orderUC,
		provisionUC: provisionUC,
		callbackUC:  callbackUC,
		auth:        auth,
		apiKey:      apiKey,
		limiter:     limiter,
		successURL:  successURL,
		checkoutURL: checkoutURL,
		log:         logger,
	}
}

// Routes builds the service router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(Recover(s.log))
	r.Use(TraceID())
	r.Use(RequestLog(s.log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/checkout/{orderID}", s.handleCheckoutPage)
	r.Post(CallbackPath, s.handleCallback)

	r.Post("/api/v1/login", s.handleLogin)
	r.Post("/api/v1/orders", s.handleCreateOrder)
	r.Group(func(r chi.Router) {
		r.Use(s.requireMerchant)
		r.Get("/api/v1/orders/{orderID}", s.handleGetOrder)
	})

	return r
}

// requireMerchant guards the merchant read API with a session token.
func (s *Server) requireMerchant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.auth.ParseFromRequest(r); err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
