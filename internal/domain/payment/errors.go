package payment

import (
	"errors"
	"fmt"

	"github.com/tillbook/tillbook-api/internal/domain/enum"
)

// Engine validation failures. All are detected before any write and are
// recoverable by the caller; match with errors.Is.
var (
	// ErrInvalidAmount indicates a non-positive or malformed amount.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrDuplicateCredit indicates a second Credit line in one split set.
	ErrDuplicateCredit = errors.New("split already has a credit component")

	// ErrOverAllocation indicates the contributing components would exceed the target total.
	ErrOverAllocation = errors.New("allocation exceeds bill total")

	// ErrInsufficientAdvance indicates an AdvanceUse beyond the customer's advance balance.
	ErrInsufficientAdvance = errors.New("insufficient advance balance")

	// ErrOverClearance indicates a credit clearance beyond the outstanding balance.
	ErrOverClearance = errors.New("clearance exceeds outstanding credit")

	// ErrInconsistentState indicates a stored balance that diverges from the settlement log.
	ErrInconsistentState = errors.New("balance inconsistent with settlement log")
)

// componentErr wraps a sentinel with the component that triggered it, so the
// caller can tell the user which line of the split to fix.
func componentErr(sentinel error, kind enum.PaymentKind, amount int64) error {
	return fmt.Errorf("%w: %s component of %d", sentinel, kind, amount)
}
