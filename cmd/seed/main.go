package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"razorpay-checkout/internal/config"
	pg "razorpay-checkout/internal/infra/db/postgres"
	"razorpay-checkout/internal/infra/logging"
	"razorpay-checkout/internal/usecase"
)

// Bootstraps the schema and, with -demo, inserts a sample pending order so
// the checkout flow can be exercised by hand.
func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	demo := flag.Bool("demo", false, "insert a sample pending order")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, true)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, pg.Schema); err != nil {
		log.Fatalf("apply schema: %v", err)
	}
	fmt.Println("schema up to date")

	if !*demo {
		return
	}

	logger := logging.New(cfg.Log, true)
	orderUC := usecase.NewOrderUseCase(pg.NewOrderRepo(pool), logger)
	o, err := orderUC.Create(ctx, usecase.CreateOrderInput{
		Price:     20.00,
		Currency:  "USD",
		FirstName: "Test",
		LastName:  "Customer",
		Email:     "customer@example.com",
	})
	if err != nil {
		log.Fatalf("seed order: %v", err)
	}
	fmt.Printf("seeded order %s -> /checkout/%s\n", o.ID, o.ID)
}
