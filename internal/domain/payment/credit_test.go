package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tillbook/tillbook-api/internal/domain/enum"
)

func TestCreditFromEntries(t *testing.T) {
	t.Run("accrues credit lines and subtracts clearances", func(t *testing.T) {
		ledger, err := CreditFromEntries([]Entry{
			{Kind: enum.PaymentKindCredit, Context: enum.SettlementContextBill, Amount: 500},
			{Kind: enum.PaymentKindCredit, Context: enum.SettlementContextExpense, Amount: 300},
			{Kind: enum.PaymentKindCash, Context: enum.SettlementContextCreditClearance, Amount: 200},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(800), ledger.Accrued)
		assert.Equal(t, int64(200), ledger.Cleared)
		assert.Equal(t, int64(600), ledger.Balance())
	})

	t.Run("ignores non-credit payment lines", func(t *testing.T) {
		ledger, err := CreditFromEntries([]Entry{
			{Kind: enum.PaymentKindCash, Context: enum.SettlementContextBill, Amount: 300},
			{Kind: enum.PaymentKindUPI, Context: enum.SettlementContextBill, Amount: 200},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), ledger.Balance())
	})

	t.Run("rejects a log that clears more than it accrued", func(t *testing.T) {
		_, err := CreditFromEntries([]Entry{
			{Kind: enum.PaymentKindCredit, Context: enum.SettlementContextBill, Amount: 100},
			{Kind: enum.PaymentKindCash, Context: enum.SettlementContextCreditClearance, Amount: 300},
		})
		assert.ErrorIs(t, err, ErrInconsistentState)
	})
}

func TestCreditLedgerClearance(t *testing.T) {
	ledger := CreditLedger{Accrued: 500}

	t.Run("partial clearance leaves a balance", func(t *testing.T) {
		require.NoError(t, ledger.CanClear(300))
		out, err := ledger.ApplyClearance(300)
		require.NoError(t, err)
		assert.Equal(t, int64(200), out.Balance())
	})

	t.Run("over-clearance is rejected, not capped", func(t *testing.T) {
		out, err := ledger.ApplyClearance(300)
		require.NoError(t, err)

		_, err = out.ApplyClearance(500)
		assert.ErrorIs(t, err, ErrOverClearance)
		assert.Equal(t, int64(200), out.Balance())
	})

	t.Run("clearing within tolerance of the balance is allowed", func(t *testing.T) {
		out, err := ledger.ApplyClearance(300)
		require.NoError(t, err)
		assert.NoError(t, out.CanClear(201))
		assert.ErrorIs(t, out.CanClear(202), ErrOverClearance)
	})

	t.Run("non-positive clearance is invalid", func(t *testing.T) {
		assert.ErrorIs(t, ledger.CanClear(0), ErrInvalidAmount)
	})
}

func TestBreakdownExpense(t *testing.T) {
	t.Run("fully paid expense", func(t *testing.T) {
		b, err := BreakdownExpense([]Entry{
			{Kind: enum.PaymentKindCash, Context: enum.SettlementContextExpense, Amount: 600},
			{Kind: enum.PaymentKindUPI, Context: enum.SettlementContextExpense, Amount: 400},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1000), b.PaidAmount)
		assert.Equal(t, int64(0), b.CreditOutstanding)
		assert.Equal(t, enum.ExpenseStatusPaid, b.Status)
	})

	t.Run("cash 300 plus upi 200 plus credit 500", func(t *testing.T) {
		b, err := BreakdownExpense([]Entry{
			{Kind: enum.PaymentKindCash, Context: enum.SettlementContextExpense, Amount: 300},
			{Kind: enum.PaymentKindUPI, Context: enum.SettlementContextExpense, Amount: 200},
			{Kind: enum.PaymentKindCredit, Context: enum.SettlementContextExpense, Amount: 500},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(500), b.PaidAmount)
		assert.Equal(t, int64(500), b.CreditAccrued)
		assert.Equal(t, int64(500), b.CreditOutstanding)
		assert.Equal(t, enum.ExpenseStatusOutstanding, b.Status)
	})

	t.Run("partial clearance moves status to partially credited", func(t *testing.T) {
		b, err := BreakdownExpense([]Entry{
			{Kind: enum.PaymentKindCredit, Context: enum.SettlementContextExpense, Amount: 500},
			{Kind: enum.PaymentKindCash, Context: enum.SettlementContextCreditClearance, Amount: 300},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(300), b.CreditCleared)
		assert.Equal(t, int64(200), b.CreditOutstanding)
		assert.Equal(t, enum.ExpenseStatusPartiallyCredited, b.Status)
	})

	t.Run("full clearance settles the expense", func(t *testing.T) {
		b, err := BreakdownExpense([]Entry{
			{Kind: enum.PaymentKindCredit, Context: enum.SettlementContextExpense, Amount: 500},
			{Kind: enum.PaymentKindCash, Context: enum.SettlementContextCreditClearance, Amount: 300},
			{Kind: enum.PaymentKindUPI, Context: enum.SettlementContextCreditClearance, Amount: 200},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), b.CreditOutstanding)
		assert.Equal(t, enum.ExpenseStatusPaid, b.Status)
	})
}
