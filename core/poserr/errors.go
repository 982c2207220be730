package poserr

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the ledger, reservation and coordinator layers.
var (
	// ErrNotFound: referenced sale/purchase/return/variant/location does not exist.
	ErrNotFound = errors.New("not found")

	// ErrLockConflict: item is held by another, non-expired holder.
	ErrLockConflict = errors.New("item is locked by another user")

	// ErrLockForbidden: caller tried to release a hold it does not own.
	ErrLockForbidden = errors.New("item is locked by a different user")

	// ErrBadAmount: zero or negative quantity passed to a ledger operation.
	ErrBadAmount = errors.New("amount must be a positive integer")
)

// InsufficientStockError reports a failed conditional decrement. Carries
// available vs. requested for display; always aborts the enclosing workflow.
type InsufficientStockError struct {
	VariantID uint
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for variant %d. Available: %d, Requested: %d",
		e.VariantID, e.Available, e.Requested)
}

// IsInsufficientStock reports whether err is an InsufficientStockError.
func IsInsufficientStock(err error) bool {
	var ise *InsufficientStockError
	return errors.As(err, &ise)
}
