package model

import (
	"math"
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending" // created by the platform; awaiting gateway outcome
	OrderStatusPublish OrderStatus = "publish" // payment verified; order complete
	OrderStatusFailed  OrderStatus = "failed"  // callback rejected or signature invalid
)

// Terminal reports whether no further status transition is allowed.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusPublish || s == OrderStatusFailed
}

// LocalOrder is the order record owned by the host commerce platform.
// Status is mutated only by the reconciler; notes are append-only.
type LocalOrder struct {
	ID            string
	Price         float64 // major units, as the platform reports them
	Currency      string  // ISO-ish code, e.g. "USD", "INR"
	CustomerName  string
	CustomerEmail string
	Status        OrderStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderNote is a single entry of an order's audit trail.
type OrderNote struct {
	ID        string // ULID, sortable by insertion time
	OrderID   string
	Note      string
	CreatedAt time.Time
}

// MinorUnits converts a major-unit price to the gateway's minor-unit
// representation (paise, cents), rounding halves away from zero.
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// CustomerDisplayName joins first and last names the way the checkout
// prefill expects. When either part is missing, a two-word remainder is
// used as-is and a single-word name stands in for both parts.
func CustomerDisplayName(first, last string) string {
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	if first != "" && last != "" {
		return first + " " + last
	}
	name := strings.TrimSpace(first + last)
	if name == "" {
		return ""
	}
	if strings.ContainsRune(name, ' ') {
		return name
	}
	return name + " " + name
}
