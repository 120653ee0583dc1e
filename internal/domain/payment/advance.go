package payment

import "github.com/tillbook/tillbook-api/internal/domain/enum"

// AdvanceLedger tracks money a customer has pre-paid and not yet applied
// to a bill. Balance = Deposited − Used and must never go negative.
type AdvanceLedger struct {
	Deposited int64
	Used      int64
}

// AdvanceFromEntries recomputes an advance ledger from settlement entries
func AdvanceFromEntries(entries []Entry) (AdvanceLedger, error) {
	var l AdvanceLedger
	for _, e := range entries {
		switch {
		case e.Kind.IsAdvanceTopUp():
			l.Deposited += e.Amount
		case e.Kind == enum.PaymentKindAdvanceUse:
			l.Used += e.Amount
		}
	}
	if err := l.Validate(); err != nil {
		return l, err
	}
	return l, nil
}

// Balance returns the unapplied advance amount
func (l AdvanceLedger) Balance() int64 {
	return l.Deposited - l.Used
}

// Validate checks the non-negative balance invariant
func (l AdvanceLedger) Validate() error {
	if l.Balance() < 0 {
		return ErrInconsistentState
	}
	return nil
}

// Deposit returns the ledger after a top-up via the given method
func (l AdvanceLedger) Deposit(amount int64, method enum.PaymentKind) (AdvanceLedger, error) {
	if amount <= 0 || !method.IsAdvanceTopUp() {
		return l, componentErr(ErrInvalidAmount, method, amount)
	}
	l.Deposited += amount
	return l, nil
}

// Use returns the ledger after consuming amount of advance. The check is
// against the balance at the moment of the call, so a concurrently depleted
// ledger fails here at commit time instead of going negative.
func (l AdvanceLedger) Use(amount int64) (AdvanceLedger, error) {
	if amount <= 0 {
		return l, componentErr(ErrInvalidAmount, enum.PaymentKindAdvanceUse, amount)
	}
	if amount > l.Balance() {
		return l, componentErr(ErrInsufficientAdvance, enum.PaymentKindAdvanceUse, amount)
	}
	l.Used += amount
	return l, nil
}
