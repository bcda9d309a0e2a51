package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrForbidden        = errors.New("cart item belongs to another user")
	ErrEmptyCart        = errors.New("cart is empty, nothing to checkout")
	ErrCheckoutFailed   = errors.New("checkout could not be committed")
	ErrOrderNotFound    = errors.New("order not found")

	// ErrDuplicateOrderNumber is internal, checkout retries once with a
	// fresh number and never surfaces it.
	ErrDuplicateOrderNumber = errors.New("order number already exists")
)

// ValidationError is the caller's fault and is never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InsufficientStockError names the offending line so the buyer knows
// which quantity to adjust.
type InsufficientStockError struct {
	ProductID   uuid.UUID
	ProductName string
}

func (e InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q [%s]", e.ProductName, e.ProductID)
}

// ProductUnavailableError marks a cart line whose product is gone or no
// longer ACTIVE. Checkout treats it as a hard stop, never a silent skip.
type ProductUnavailableError struct {
	ProductID uuid.UUID
}

func (e ProductUnavailableError) Error() string {
	return fmt.Sprintf("product [%s] is not available for purchase", e.ProductID)
}
