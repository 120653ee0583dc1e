package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tillbook/tillbook-api/internal/domain/enum"
)

// settleOnCredit puts the given amount on a customer's tab through the
// real billing flow.
func settleOnCredit(t *testing.T, env *testEnv, customerID uuid.UUID, amount int64) {
	t.Helper()
	user := env.createUser(t)
	item := env.createMenuItem(t, "Tab item "+uuid.NewString()[:8], amount)
	bill := env.openBill(t, user.ID, &customerID, item, 1)
	_, err := env.Billing.SettleBill(context.Background(), bill.ID, &SettleBillInput{
		Components: []SplitComponentInput{{Kind: enum.PaymentKindCredit, Amount: amount}},
	})
	require.NoError(t, err)
}

func TestClearCredit_Partial(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := env.createCustomer(t, "Ramesh")
	settleOnCredit(t, env, customer.ID, 50000)

	statement, err := env.Customers.ClearCredit(ctx, customer.ID, &ClearCreditInput{
		CashAmount: 30000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(20000), statement.Credit.Balance())

	// The cache follows the log
	refreshed, err := env.customerRepo.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20000), refreshed.CreditBalance)
}

func TestClearCredit_OverClearanceRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := env.createCustomer(t, "Sita")
	settleOnCredit(t, env, customer.ID, 30000)

	// Rs 500 against a Rs 300 tab is rejected, not capped
	_, err := env.Customers.ClearCredit(ctx, customer.ID, &ClearCreditInput{
		CashAmount: 50000,
	})
	requireAppCode(t, err, http.StatusUnprocessableEntity)

	statement, err := env.Customers.GetStatement(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(30000), statement.Credit.Balance())
}

func TestClearCredit_WithAdvance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := env.createCustomer(t, "Gopal")
	settleOnCredit(t, env, customer.ID, 20000)

	_, err := env.Customers.DepositAdvance(ctx, customer.ID, &DepositAdvanceInput{
		Amount: 15000,
		Kind:   enum.PaymentKindAdvanceAddCash,
	})
	require.NoError(t, err)

	// More advance than the customer holds
	_, err = env.Customers.ClearCredit(ctx, customer.ID, &ClearCreditInput{
		AdvanceUseAmount: 20000,
	})
	requireAppCode(t, err, http.StatusUnprocessableEntity)

	// Advance plus cash clears the tab
	statement, err := env.Customers.ClearCredit(ctx, customer.ID, &ClearCreditInput{
		CashAmount:       10000,
		AdvanceUseAmount: 10000,
	})
	require.NoError(t, err)
	assert.Zero(t, statement.Credit.Balance())
	assert.Equal(t, int64(5000), statement.Advance.Balance())
}

func TestClearCredit_ZeroRejected(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "Nina")

	_, err := env.Customers.ClearCredit(context.Background(), customer.ID, &ClearCreditInput{})
	requireAppCode(t, err, http.StatusUnprocessableEntity)
}

func TestDepositAdvance_ShowsInStatement(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := env.createCustomer(t, "Vijay")

	statement, err := env.Customers.DepositAdvance(ctx, customer.ID, &DepositAdvanceInput{
		Amount: 25000,
		Kind:   enum.PaymentKindAdvanceAddUPI,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(25000), statement.Advance.Balance())
	require.Len(t, statement.Settlements, 1)
	assert.Equal(t, enum.SettlementContextAdvanceTopUp, statement.Settlements[0].Context)
}

func TestDeleteCustomer_BlockedWithBalances(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := env.createCustomer(t, "Asha")
	settleOnCredit(t, env, customer.ID, 10000)

	err := env.Customers.DeleteCustomer(ctx, customer.ID)
	requireAppCode(t, err, http.StatusBadRequest)
}

func TestCreateCustomer_DuplicatePhone(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	phone := "9876543210"

	_, err := env.Customers.CreateCustomer(ctx, &CreateCustomerInput{Name: "First", Phone: &phone})
	require.NoError(t, err)

	_, err = env.Customers.CreateCustomer(ctx, &CreateCustomerInput{Name: "Second", Phone: &phone})
	requireAppCode(t, err, http.StatusConflict)
}

func TestCreditLedger_RecentFirstAndBounded(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := env.createCustomer(t, "Meena")
	settleOnCredit(t, env, customer.ID, 30000)
	settleOnCredit(t, env, customer.ID, 20000)
	_, err := env.Customers.ClearCredit(ctx, customer.ID, &ClearCreditInput{CashAmount: 10000})
	require.NoError(t, err)

	// The page holds the newest entries, balance still covers the full log
	ledger, err := env.Customers.GetCreditLedger(ctx, customer.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(40000), ledger.Balance)
	require.Len(t, ledger.Entries, 2)
	assert.Equal(t, enum.SettlementContextCreditClearance, ledger.Entries[0].Context)
	assert.Equal(t, int64(10000), ledger.Entries[0].Amount)
	assert.Equal(t, enum.PaymentKindCredit, ledger.Entries[1].Kind)
	assert.Equal(t, int64(20000), ledger.Entries[1].Amount)

	// Re-querying yields the same page
	again, err := env.Customers.GetCreditLedger(ctx, customer.ID, 2)
	require.NoError(t, err)
	require.Len(t, again.Entries, 2)
	assert.Equal(t, ledger.Entries[0].ID, again.Entries[0].ID)
	assert.Equal(t, ledger.Entries[1].ID, again.Entries[1].ID)

	full, err := env.Customers.GetCreditLedger(ctx, customer.ID, 0)
	require.NoError(t, err)
	assert.Len(t, full.Entries, 3)
}

func TestAdvanceLedger_DepositsAndUsesOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t)
	customer := env.createCustomer(t, "Gopal")

	_, err := env.Customers.DepositAdvance(ctx, customer.ID, &DepositAdvanceInput{
		Amount: 15000,
		Kind:   enum.PaymentKindAdvanceAddCash,
	})
	require.NoError(t, err)
	_, err = env.Customers.DepositAdvance(ctx, customer.ID, &DepositAdvanceInput{
		Amount: 5000,
		Kind:   enum.PaymentKindAdvanceAddUPI,
	})
	require.NoError(t, err)

	// A credit sale and an advance-paid sale; only the latter belongs here
	settleOnCredit(t, env, customer.ID, 30000)
	item := env.createMenuItem(t, "Dosa", 8000)
	bill := env.openBill(t, user.ID, &customer.ID, item, 1)
	_, err = env.Billing.SettleBill(ctx, bill.ID, &SettleBillInput{
		Components: []SplitComponentInput{{Kind: enum.PaymentKindAdvanceUse, Amount: 8000}},
	})
	require.NoError(t, err)

	ledger, err := env.Customers.GetAdvanceLedger(ctx, customer.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(12000), ledger.Balance)
	require.Len(t, ledger.Entries, 3)
	assert.Equal(t, enum.PaymentKindAdvanceUse, ledger.Entries[0].Kind)
	for _, e := range ledger.Entries {
		assert.NotEqual(t, enum.PaymentKindCredit, e.Kind)
	}
}

func TestClearCredit_NegativeComponentRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := env.createCustomer(t, "Vikram")
	settleOnCredit(t, env, customer.ID, 20000)

	// The sum is positive but the cash line is negative
	_, err := env.Customers.ClearCredit(ctx, customer.ID, &ClearCreditInput{
		CashAmount: -10000,
		UPIAmount:  30000,
	})
	requireAppCode(t, err, http.StatusUnprocessableEntity)

	refreshed, err := env.customerRepo.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20000), refreshed.CreditBalance)
}
