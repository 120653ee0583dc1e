package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/tillbook/tillbook-api/internal/domain/payment"
	"github.com/tillbook/tillbook-api/internal/domain/repository"
)

// customerLedgers recomputes a customer's credit and advance ledgers from
// the settlement log. Callers that are about to write settlements must call
// this inside the same transaction so the guard and the append commit
// together.
func customerLedgers(ctx context.Context, settlements repository.SettlementRepository, customerID uuid.UUID) (payment.CreditLedger, payment.AdvanceLedger, error) {
	rows, err := settlements.ListByCustomer(ctx, customerID)
	if err != nil {
		return payment.CreditLedger{}, payment.AdvanceLedger{}, err
	}
	entries := entriesOf(rows)

	credit, err := payment.CreditFromEntries(entries)
	if err != nil {
		return payment.CreditLedger{}, payment.AdvanceLedger{}, paymentError(err)
	}
	advance, err := payment.AdvanceFromEntries(entries)
	if err != nil {
		return payment.CreditLedger{}, payment.AdvanceLedger{}, paymentError(err)
	}
	return credit, advance, nil
}
