// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"razorpay-checkout/internal/config"
	pg "razorpay-checkout/internal/infra/db/postgres"
	"razorpay-checkout/internal/infra/gateway"
	"razorpay-checkout/internal/infra/logging"
	"razorpay-checkout/internal/infra/metrics"
	red "razorpay-checkout/internal/infra/redis"
	"razorpay-checkout/internal/infra/web"
	"razorpay-checkout/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, insecure cookies)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	logger.Info().
		Str("key_id", logging.Redact(cfg.Gateway.KeyID, cfg.Runtime.Dev)).
		Str("payment_action", cfg.Gateway.PaymentAction).
		Msg("starting checkout service")

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	defer redisClient.Close()

	bindings := red.NewBindingStore(redisClient, cfg.Checkout.SessionTTL)
	carts := red.NewCartStore(redisClient)
	locker := red.NewLocker(redisClient)

	// ---- Repositories & adapters ----
	orderRepo := pg.NewOrderRepo(pool)
	tm := pg.NewTxManager(pool)
	rzp := gateway.NewRazorpayClient(cfg.Gateway)

	// ---- Use cases ----
	orderUC := usecase.NewOrderUseCase(orderRepo, logger)
	provisionUC := usecase.NewProvisionUseCase(orderRepo, bindings, rzp, cfg.Gateway, logger)
	callbackUC := usecase.NewCallbackUseCase(
		orderRepo, bindings, carts, rzp, locker, tm,
		cfg.Checkout.SuccessURL, cfg.Checkout.CheckoutURL, logger,
	)

	metrics.MustRegister()

	// ---- HTTP ----
	auth := web.NewAuthManager(cfg.Admin.SessionSecret, !cfg.Runtime.Dev, cfg.Admin.SessionTTL)
	srv := web.NewServer(
		orderUC, provisionUC, callbackUC, auth,
		cfg.Admin.APIKey, red.NewRateLimiter(redisClient),
		cfg.Checkout.SuccessURL, cfg.Checkout.CheckoutURL, logger,
	)

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Routes(),
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("http server listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
}
