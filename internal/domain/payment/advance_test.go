package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tillbook/tillbook-api/internal/domain/enum"
)

func TestAdvanceFromEntries(t *testing.T) {
	t.Run("sums top-ups and subtracts uses", func(t *testing.T) {
		ledger, err := AdvanceFromEntries([]Entry{
			{Kind: enum.PaymentKindAdvanceAddCash, Context: enum.SettlementContextAdvanceTopUp, Amount: 1000},
			{Kind: enum.PaymentKindAdvanceAddUPI, Context: enum.SettlementContextAdvanceTopUp, Amount: 500},
			{Kind: enum.PaymentKindAdvanceUse, Context: enum.SettlementContextBill, Amount: 400},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1500), ledger.Deposited)
		assert.Equal(t, int64(400), ledger.Used)
		assert.Equal(t, int64(1100), ledger.Balance())
	})

	t.Run("rejects a log with more use than deposit", func(t *testing.T) {
		_, err := AdvanceFromEntries([]Entry{
			{Kind: enum.PaymentKindAdvanceAddCash, Context: enum.SettlementContextAdvanceTopUp, Amount: 100},
			{Kind: enum.PaymentKindAdvanceUse, Context: enum.SettlementContextBill, Amount: 300},
		})
		assert.ErrorIs(t, err, ErrInconsistentState)
	})
}

func TestAdvanceDeposit(t *testing.T) {
	t.Run("records cash and upi top-ups", func(t *testing.T) {
		ledger, err := AdvanceLedger{}.Deposit(150, enum.PaymentKindAdvanceAddCash)
		require.NoError(t, err)
		ledger, err = ledger.Deposit(50, enum.PaymentKindAdvanceAddUPI)
		require.NoError(t, err)
		assert.Equal(t, int64(200), ledger.Balance())
	})

	t.Run("rejects non top-up methods and bad amounts", func(t *testing.T) {
		_, err := AdvanceLedger{}.Deposit(100, enum.PaymentKindCash)
		assert.ErrorIs(t, err, ErrInvalidAmount)

		_, err = AdvanceLedger{}.Deposit(0, enum.PaymentKindAdvanceAddCash)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestAdvanceUse(t *testing.T) {
	t.Run("use beyond the balance is rejected", func(t *testing.T) {
		ledger, err := AdvanceLedger{}.Deposit(150, enum.PaymentKindAdvanceAddCash)
		require.NoError(t, err)

		_, err = ledger.Use(200)
		assert.ErrorIs(t, err, ErrInsufficientAdvance)
		assert.Equal(t, int64(150), ledger.Balance())
	})

	t.Run("use up to the exact balance is allowed", func(t *testing.T) {
		ledger, err := AdvanceLedger{}.Deposit(150, enum.PaymentKindAdvanceAddCash)
		require.NoError(t, err)

		ledger, err = ledger.Use(150)
		require.NoError(t, err)
		assert.Equal(t, int64(0), ledger.Balance())

		_, err = ledger.Use(1)
		assert.ErrorIs(t, err, ErrInsufficientAdvance)
	})
}
