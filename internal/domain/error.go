package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrNoBinding          = errors.New("no remote order bound to this order")
	ErrOrderFinalized     = errors.New("order status already finalized")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvalidExecContext = errors.New("invalid exec context")
	ErrOrderLocked        = errors.New("order is locked by another callback")
)
