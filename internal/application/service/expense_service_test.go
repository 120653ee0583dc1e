package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tillbook/tillbook-api/internal/domain/enum"
)

func TestCreateExpense_SplitWithCredit(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)
	payee := "Veggie supplier"

	// Rs 1000 paid as Rs 300 cash, Rs 200 UPI, Rs 500 owed
	view, err := env.Expenses.CreateExpense(context.Background(), &CreateExpenseInput{
		UserID:   user.ID,
		Category: "Groceries",
		Payee:    &payee,
		Amount:   100000,
		Components: []SplitComponentInput{
			{Kind: enum.PaymentKindCash, Amount: 30000},
			{Kind: enum.PaymentKindUPI, Amount: 20000},
			{Kind: enum.PaymentKindCredit, Amount: 50000},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50000), view.Breakdown.PaidAmount)
	assert.Equal(t, int64(50000), view.Breakdown.CreditAccrued)
	assert.Equal(t, int64(50000), view.Breakdown.CreditOutstanding)
	assert.Equal(t, enum.ExpenseStatusOutstanding, view.Breakdown.Status)
}

func TestCreateExpense_NoSplitIsFullyOnCredit(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)
	payee := "Gas agency"

	view, err := env.Expenses.CreateExpense(context.Background(), &CreateExpenseInput{
		UserID:   user.ID,
		Category: "Fuel",
		Payee:    &payee,
		Amount:   80000,
	})
	require.NoError(t, err)
	assert.Zero(t, view.Breakdown.PaidAmount)
	assert.Equal(t, int64(80000), view.Breakdown.CreditAccrued)
	assert.Equal(t, enum.ExpenseStatusOutstanding, view.Breakdown.Status)
}

func TestCreateExpense_CreditNeedsPayee(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	_, err := env.Expenses.CreateExpense(context.Background(), &CreateExpenseInput{
		UserID:   user.ID,
		Category: "Misc",
		Amount:   10000,
		Components: []SplitComponentInput{
			{Kind: enum.PaymentKindCredit, Amount: 10000},
		},
	})
	requireAppCode(t, err, http.StatusBadRequest)
}

func TestCreateExpense_AdvanceKindsRejected(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	_, err := env.Expenses.CreateExpense(context.Background(), &CreateExpenseInput{
		UserID:   user.ID,
		Category: "Misc",
		Amount:   10000,
		Components: []SplitComponentInput{
			{Kind: enum.PaymentKindAdvanceUse, Amount: 10000},
		},
	})
	requireAppCode(t, err, http.StatusBadRequest)
}

func TestCreateExpense_FullyPaid(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	view, err := env.Expenses.CreateExpense(context.Background(), &CreateExpenseInput{
		UserID:   user.ID,
		Category: "Repairs",
		Amount:   15000,
		Components: []SplitComponentInput{
			{Kind: enum.PaymentKindCash, Amount: 15000},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15000), view.Breakdown.PaidAmount)
	assert.Equal(t, enum.ExpenseStatusPaid, view.Breakdown.Status)
}

func TestClearExpenseCredit_PartialThenFull(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t)
	payee := "Dairy"

	view, err := env.Expenses.CreateExpense(ctx, &CreateExpenseInput{
		UserID:   user.ID,
		Category: "Groceries",
		Payee:    &payee,
		Amount:   100000,
		Components: []SplitComponentInput{
			{Kind: enum.PaymentKindCash, Amount: 50000},
			{Kind: enum.PaymentKindCredit, Amount: 50000},
		},
	})
	require.NoError(t, err)

	// Rs 300 of the Rs 500 owed
	view, err = env.Expenses.ClearExpenseCredit(ctx, view.Expense.ID, &ClearExpenseCreditInput{
		CashAmount: 30000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(30000), view.Breakdown.CreditCleared)
	assert.Equal(t, int64(20000), view.Breakdown.CreditOutstanding)
	assert.Equal(t, enum.ExpenseStatusPartiallyCredited, view.Breakdown.Status)

	// The rest over UPI
	view, err = env.Expenses.ClearExpenseCredit(ctx, view.Expense.ID, &ClearExpenseCreditInput{
		UPIAmount: 20000,
	})
	require.NoError(t, err)
	assert.Zero(t, view.Breakdown.CreditOutstanding)
	assert.Equal(t, enum.ExpenseStatusPaid, view.Breakdown.Status)
}

func TestClearExpenseCredit_OverClearanceRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t)
	payee := "Hardware store"

	view, err := env.Expenses.CreateExpense(ctx, &CreateExpenseInput{
		UserID:   user.ID,
		Category: "Repairs",
		Payee:    &payee,
		Amount:   30000,
		Components: []SplitComponentInput{
			{Kind: enum.PaymentKindCredit, Amount: 30000},
		},
	})
	require.NoError(t, err)

	// Rs 500 against Rs 300 owed is rejected, not capped
	_, err = env.Expenses.ClearExpenseCredit(ctx, view.Expense.ID, &ClearExpenseCreditInput{
		CashAmount: 50000,
	})
	requireAppCode(t, err, http.StatusUnprocessableEntity)

	refreshed, err := env.Expenses.GetExpense(ctx, view.Expense.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(30000), refreshed.Breakdown.CreditOutstanding)
}

func TestCreateExpense_OverAllocationRejected(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)

	_, err := env.Expenses.CreateExpense(context.Background(), &CreateExpenseInput{
		UserID:   user.ID,
		Category: "Misc",
		Amount:   10000,
		Components: []SplitComponentInput{
			{Kind: enum.PaymentKindCash, Amount: 10000},
			{Kind: enum.PaymentKindUPI, Amount: 5000},
		},
	})
	requireAppCode(t, err, http.StatusUnprocessableEntity)
}

func TestClearExpenseCredit_NegativeComponentRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t)
	payee := "Gas agency"

	view, err := env.Expenses.CreateExpense(ctx, &CreateExpenseInput{
		UserID:   user.ID,
		Category: "Fuel",
		Payee:    &payee,
		Amount:   20000,
		Components: []SplitComponentInput{
			{Kind: enum.PaymentKindCredit, Amount: 20000},
		},
	})
	require.NoError(t, err)

	// The sum is positive but the cash line is negative
	_, err = env.Expenses.ClearExpenseCredit(ctx, view.Expense.ID, &ClearExpenseCreditInput{
		CashAmount: -10000,
		UPIAmount:  30000,
	})
	requireAppCode(t, err, http.StatusUnprocessableEntity)

	refreshed, err := env.Expenses.GetExpense(ctx, view.Expense.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20000), refreshed.Breakdown.CreditOutstanding)
}
