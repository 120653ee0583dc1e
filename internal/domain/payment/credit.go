package payment

import (
	"time"

	"github.com/tillbook/tillbook-api/internal/domain/enum"
	"github.com/tillbook/tillbook-api/pkg/money"
)

// Entry is the engine's view of one settlement log row. Services map
// persisted settlements into entries before handing them to the ledgers.
type Entry struct {
	Kind      enum.PaymentKind
	Context   enum.SettlementContext
	Amount    int64 // paise
	CreatedAt time.Time
}

// CreditLedger tracks accrual and clearance of a customer's (or, for
// expenses, the business's payee) credit. Balance = Accrued − Cleared and
// must never go negative.
type CreditLedger struct {
	Accrued int64
	Cleared int64
}

// CreditFromEntries recomputes a credit ledger from settlement entries.
// Credit components accrue; any entry recorded in a clearance context
// clears. A log whose clearances exceed its accruals is corrupt.
func CreditFromEntries(entries []Entry) (CreditLedger, error) {
	var l CreditLedger
	for _, e := range entries {
		switch {
		case e.Context == enum.SettlementContextCreditClearance:
			l.Cleared += e.Amount
		case e.Kind == enum.PaymentKindCredit:
			l.Accrued += e.Amount
		}
	}
	if err := l.Validate(); err != nil {
		return l, err
	}
	return l, nil
}

// Balance returns the outstanding credit
func (l CreditLedger) Balance() int64 {
	return l.Accrued - l.Cleared
}

// Validate checks the non-negative balance invariant. A violation means the
// stored log itself is inconsistent, not that the caller passed bad input.
func (l CreditLedger) Validate() error {
	if l.Balance() < 0 {
		return ErrInconsistentState
	}
	return nil
}

// ApplyAccrual returns the ledger after recording a new credit accrual
func (l CreditLedger) ApplyAccrual(amount int64) (CreditLedger, error) {
	if amount <= 0 {
		return l, componentErr(ErrInvalidAmount, enum.PaymentKindCredit, amount)
	}
	l.Accrued += amount
	return l, nil
}

// CanClear checks whether amount can be cleared against the current
// balance. Clearing more than is owed is rejected, never capped: turning
// the excess into an advance deposit is a distinct, explicit action.
func (l CreditLedger) CanClear(amount int64) error {
	if amount <= 0 {
		return componentErr(ErrInvalidAmount, enum.PaymentKindCredit, amount)
	}
	if amount > l.Balance()+money.Tolerance {
		return ErrOverClearance
	}
	return nil
}

// ApplyClearance returns the ledger after clearing amount of credit
func (l CreditLedger) ApplyClearance(amount int64) (CreditLedger, error) {
	if err := l.CanClear(amount); err != nil {
		return l, err
	}
	l.Cleared += amount
	return l, nil
}

// ExpenseBreakdown is the derived settlement state of one expense,
// recomputed from its settlement entries on every read.
type ExpenseBreakdown struct {
	PaidAmount        int64              `json:"-"`
	CreditAccrued     int64              `json:"-"`
	CreditCleared     int64              `json:"-"`
	CreditOutstanding int64              `json:"-"`
	Status            enum.ExpenseStatus `json:"status"`
}

// BreakdownExpense computes an expense's paid/credit figures from the
// entries recorded against it (expense settlements plus later clearances).
func BreakdownExpense(entries []Entry) (ExpenseBreakdown, error) {
	ledger, err := CreditFromEntries(entries)
	if err != nil {
		return ExpenseBreakdown{}, err
	}

	var paid int64
	for _, e := range entries {
		if e.Context == enum.SettlementContextExpense && e.Kind.ContributesToTotal() && e.Kind != enum.PaymentKindCredit {
			paid += e.Amount
		}
	}

	b := ExpenseBreakdown{
		PaidAmount:        paid,
		CreditAccrued:     ledger.Accrued,
		CreditCleared:     ledger.Cleared,
		CreditOutstanding: ledger.Balance(),
	}
	switch {
	case b.CreditAccrued == 0 || b.CreditOutstanding == 0:
		b.Status = enum.ExpenseStatusPaid
	case b.CreditCleared > 0:
		b.Status = enum.ExpenseStatusPartiallyCredited
	default:
		b.Status = enum.ExpenseStatusOutstanding
	}
	return b, nil
}
