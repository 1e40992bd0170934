// Package repository defines error values that are reused across
// multiple repositories.  These sentinels let handlers distinguish the
// anticipated failure scenarios (missing references, exhausted code
// generation, a code that cannot be redeemed) from generic storage
// errors, which always surface as HTTP 500.
package repository

import (
	"errors"
	"fmt"
)

// ErrProductNotFound is returned when a product reference does not
// resolve.  Handlers should translate this into an HTTP 404 response.
var ErrProductNotFound = errors.New("product not found")

// ErrAccountNotFound is returned when an account does not exist, does
// not belong to the expected product, or is no longer available for
// reservation.  Handlers should translate this into an HTTP 404.
var ErrAccountNotFound = errors.New("account not found or not available")

// ErrCodeNotFound is returned when a redemption code is unknown,
// already used, or points at a deleted account or product.  The join
// used by redemption makes these cases indistinguishable on purpose.
var ErrCodeNotFound = errors.New("invalid or used code")

// ErrCodeGenerationExhausted is returned when the bounded collision
// retry loop fails to produce an unused code.
var ErrCodeGenerationExhausted = errors.New("failed to generate unique code")

// InsufficientAccountsError is returned by batch code generation when a
// product has fewer available accounts than requested.  It names the
// actual count so the response can report it.
type InsufficientAccountsError struct {
	Available int
	Requested int
}

func (e *InsufficientAccountsError) Error() string {
	return fmt.Sprintf("only %d accounts available (requested: %d)", e.Available, e.Requested)
}
