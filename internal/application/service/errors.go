package service

import (
	"errors"

	"github.com/tillbook/tillbook-api/internal/domain/entity"
	"github.com/tillbook/tillbook-api/internal/domain/payment"
	"github.com/tillbook/tillbook-api/pkg/apperror"
)

// paymentError maps reconciliation engine errors onto HTTP-facing
// application errors. Validation failures are the caller's fault;
// ErrInconsistentState means the stored log itself is corrupt.
func paymentError(err error) error {
	switch {
	case errors.Is(err, payment.ErrInvalidAmount),
		errors.Is(err, payment.ErrDuplicateCredit),
		errors.Is(err, payment.ErrOverAllocation),
		errors.Is(err, payment.ErrInsufficientAdvance),
		errors.Is(err, payment.ErrOverClearance):
		return apperror.NewUnprocessableError(err.Error())
	case errors.Is(err, payment.ErrInconsistentState):
		return apperror.NewConflictError(err.Error())
	default:
		return err
	}
}

// entriesOf projects settlement rows into engine entries
func entriesOf(settlements []entity.Settlement) []payment.Entry {
	entries := make([]payment.Entry, 0, len(settlements))
	for _, s := range settlements {
		entries = append(entries, payment.Entry{
			Kind:      s.Kind,
			Context:   s.Context,
			Amount:    s.Amount,
			CreatedAt: s.CreatedAt,
		})
	}
	return entries
}
