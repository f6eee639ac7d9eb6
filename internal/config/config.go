// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	PaymentActionCapture   = "capture"
	PaymentActionAuthorize = "authorize"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GatewayConfig holds the Razorpay credentials and policy knobs. Passed
// explicitly to the provisioner/verifier constructors, never read from a
// process-wide global.
type GatewayConfig struct {
	KeyID         string        `yaml:"key_id"`
	KeySecret     string        `yaml:"key_secret"`
	PaymentAction string        `yaml:"payment_action"` // capture | authorize
	MerchantName  string        `yaml:"merchant_name"`  // display name on the checkout screen
	BaseURL       string        `yaml:"base_url"`
	Timeout       time.Duration `yaml:"timeout"`
}

// AutoCapture reports the one-way capture policy: everything except an
// explicit "authorize" means capture on payment.
func (g GatewayConfig) AutoCapture() bool {
	return g.PaymentAction != PaymentActionAuthorize
}

type CheckoutConfig struct {
	SuccessURL  string        `yaml:"success_url"`  // customer redirect after a verified payment
	CheckoutURL string        `yaml:"checkout_url"` // customer redirect to retry after a failure
	SessionTTL  time.Duration `yaml:"session_ttl"`  // lifetime of order bindings and carts
}

type AdminConfig struct {
	APIKey        string        `yaml:"api_key"`        // bootstrap credential for the merchant API
	SessionSecret string        `yaml:"session_secret"` // HMAC secret for merchant session tokens
	SessionTTL    time.Duration `yaml:"session_ttl"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Gateway  GatewayConfig  `yaml:"gateway"`
	Checkout CheckoutConfig `yaml:"checkout"`
	Admin    AdminConfig    `yaml:"admin"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Gateway.BaseURL == "" {
		cfg.Gateway.BaseURL = "https://api.razorpay.com/v1"
	}
	if cfg.Gateway.Timeout <= 0 {
		cfg.Gateway.Timeout = 10 * time.Second
	}
	if cfg.Gateway.PaymentAction == "" {
		cfg.Gateway.PaymentAction = PaymentActionCapture
	}
	if cfg.Checkout.SessionTTL <= 0 {
		cfg.Checkout.SessionTTL = 24 * time.Hour
	}
	if cfg.Admin.SessionTTL <= 0 {
		cfg.Admin.SessionTTL = 30 * time.Minute
	}

	// Minimal validation
	if cfg.Gateway.KeyID == "" || cfg.Gateway.KeySecret == "" {
		return nil, errors.New("gateway.key_id and gateway.key_secret are required")
	}
	if cfg.Gateway.PaymentAction != PaymentActionCapture && cfg.Gateway.PaymentAction != PaymentActionAuthorize {
		return nil, fmt.Errorf("gateway.payment_action must be %q or %q", PaymentActionCapture, PaymentActionAuthorize)
	}
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}
	if cfg.Checkout.SuccessURL == "" || cfg.Checkout.CheckoutURL == "" {
		return nil, errors.New("checkout.success_url and checkout.checkout_url are required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
