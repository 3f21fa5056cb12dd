package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrBadCreds        = errors.New("invalid username or password")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrDuplicateReview = errors.New("product already reviewed")
)

// InsufficientStockError rejects a cart operation that asks for more units
// than are available; no state changes when it is returned.
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("only %d items available in stock", e.Available)
}

// ValidationError names the offending input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
