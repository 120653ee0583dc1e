// Package payment implements the payment and credit reconciliation engine:
// split payment validation, the customer credit ledger, and the advance
// balance ledger. Everything here is pure: operations take the current
// state as input and return new values, amounts are int64 minor units
// (paise), and persistence is the caller's concern.
package payment

import (
	"github.com/google/uuid"
	"github.com/tillbook/tillbook-api/internal/domain/enum"
	"github.com/tillbook/tillbook-api/pkg/money"
)

// Component is one allocation line in a split payment
type Component struct {
	ID     uuid.UUID        `json:"id"`
	Kind   enum.PaymentKind `json:"kind"`
	Amount int64            `json:"amount"` // paise, always > 0
}

// SplitSet is the ordered set of components attached to one bill, expense,
// or collection action. Order is display order only. Sets are values:
// Add/Remove return new sets and never mutate the receiver's backing array.
type SplitSet struct {
	Components []Component `json:"components"`
}

// InitSplit seeds a split for the given total with a single Credit line, so
// the set satisfies the total invariant before the user reallocates any of
// it. A zero total yields an empty set.
func InitSplit(total int64) SplitSet {
	if total <= 0 {
		return SplitSet{}
	}
	return SplitSet{Components: []Component{{
		ID:     uuid.New(),
		Kind:   enum.PaymentKindCredit,
		Amount: total,
	}}}
}

// Contributing returns the sum of components that count toward the settled
// total. Advance top-ups are excluded.
func (s SplitSet) Contributing() int64 {
	var sum int64
	for _, c := range s.Components {
		if c.Kind.ContributesToTotal() {
			sum += c.Amount
		}
	}
	return sum
}

// CreditAmount returns the amount of the single Credit line, or 0
func (s SplitSet) CreditAmount() int64 {
	for _, c := range s.Components {
		if c.Kind == enum.PaymentKindCredit {
			return c.Amount
		}
	}
	return 0
}

// AdvanceUsed returns the total AdvanceUse amount in the set
func (s SplitSet) AdvanceUsed() int64 {
	var sum int64
	for _, c := range s.Components {
		if c.Kind == enum.PaymentKindAdvanceUse {
			sum += c.Amount
		}
	}
	return sum
}

// AdvanceTopUp returns the total AdvanceAddCash/AdvanceAddUPI amount in the set
func (s SplitSet) AdvanceTopUp() int64 {
	var sum int64
	for _, c := range s.Components {
		if c.Kind.IsAdvanceTopUp() {
			sum += c.Amount
		}
	}
	return sum
}

// hasCredit reports whether the set already carries a Credit line
func (s SplitSet) hasCredit() bool {
	for _, c := range s.Components {
		if c.Kind == enum.PaymentKindCredit {
			return true
		}
	}
	return false
}

// Remaining returns the unallocated amount still to be covered. The result
// is clamped at zero: an over-allocated set yields (0, ErrOverAllocation)
// rather than a negative remainder.
func Remaining(s SplitSet, total int64) (int64, error) {
	allocated := s.Contributing()
	if allocated > total+money.Tolerance {
		return 0, ErrOverAllocation
	}
	remaining := total - allocated
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// Add validates and appends a component, returning a new set.
// advanceBalance is the customer's advance balance at the moment of the
// call; it caps AdvanceUse including amounts already staged in the set.
func Add(s SplitSet, total int64, kind enum.PaymentKind, amount int64, advanceBalance int64) (SplitSet, error) {
	if amount <= 0 || !kind.IsValid() {
		return s, componentErr(ErrInvalidAmount, kind, amount)
	}
	if kind == enum.PaymentKindCredit && s.hasCredit() {
		return s, componentErr(ErrDuplicateCredit, kind, amount)
	}
	if kind == enum.PaymentKindAdvanceUse && s.AdvanceUsed()+amount > advanceBalance {
		return s, componentErr(ErrInsufficientAdvance, kind, amount)
	}
	if kind.ContributesToTotal() {
		remaining, err := Remaining(s, total)
		if err != nil {
			return s, err
		}
		if amount > remaining {
			return s, componentErr(ErrOverAllocation, kind, amount)
		}
	}

	next := make([]Component, len(s.Components), len(s.Components)+1)
	copy(next, s.Components)
	next = append(next, Component{ID: uuid.New(), Kind: kind, Amount: amount})
	return SplitSet{Components: next}, nil
}

// Remove returns the set without the identified component. Removing an
// unknown id is a no-op.
func Remove(s SplitSet, id uuid.UUID) SplitSet {
	next := make([]Component, 0, len(s.Components))
	for _, c := range s.Components {
		if c.ID != id {
			next = append(next, c)
		}
	}
	return SplitSet{Components: next}
}

// ValidateTotal reports whether the contributing components cover the
// target total within the currency rounding tolerance.
func ValidateTotal(s SplitSet, total int64) bool {
	return money.WithinTolerance(s.Contributing(), total)
}

// Normalize absorbs a within-tolerance remainder into the first non-advance
// contributing component, so repeated settlements of the same amounts land
// on identical sets. Sets that are off by more than the tolerance are
// returned unchanged for the caller to reject.
func Normalize(s SplitSet, total int64) SplitSet {
	diff := total - s.Contributing()
	if diff == 0 || !money.WithinTolerance(s.Contributing(), total) {
		return s
	}
	next := make([]Component, len(s.Components))
	copy(next, s.Components)
	for i, c := range next {
		if !c.Kind.ContributesToTotal() || c.Kind == enum.PaymentKindAdvanceUse {
			continue
		}
		if c.Amount+diff > 0 {
			next[i].Amount += diff
			return SplitSet{Components: next}
		}
	}
	return s
}
