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

func TestSettleBill_SplitAcrossCashUPICredit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t)
	customer := env.createCustomer(t, "Ravi")
	item := env.createMenuItem(t, "Thali", 100000) // Rs 1000

	bill := env.openBill(t, user.ID, &customer.ID, item, 1)
	require.Equal(t, int64(100000), bill.Total)

	settled, err := env.Billing.SettleBill(ctx, bill.ID, &SettleBillInput{
		Components: []SplitComponentInput{
			{Kind: enum.PaymentKindCash, Amount: 30000},
			{Kind: enum.PaymentKindUPI, Amount: 20000},
			{Kind: enum.PaymentKindCredit, Amount: 50000},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, enum.BillStatusSettled, settled.Status)
	assert.Equal(t, int64(50000), settled.Paid)
	assert.Equal(t, int64(50000), settled.CreditDue)
	require.NotNil(t, settled.SettledAt)
	assert.Len(t, settled.Settlements, 3)

	// The credit line lands on the customer's tab
	refreshed, err := env.customerRepo.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), refreshed.CreditBalance)
}

func TestSettleBill_SecondCreditLineRejected(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)
	customer := env.createCustomer(t, "Meena")
	item := env.createMenuItem(t, "Dosa", 40000)

	bill := env.openBill(t, user.ID, &customer.ID, item, 1)

	_, err := env.Billing.SettleBill(context.Background(), bill.ID, &SettleBillInput{
		Components: []SplitComponentInput{
			{Kind: enum.PaymentKindCredit, Amount: 20000},
			{Kind: enum.PaymentKindCredit, Amount: 20000},
		},
	})
	requireAppCode(t, err, http.StatusUnprocessableEntity)
}

func TestSettleBill_OverAllocationRejected(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)
	item := env.createMenuItem(t, "Chai", 2000)

	bill := env.openBill(t, user.ID, nil, item, 1)

	_, err := env.Billing.SettleBill(context.Background(), bill.ID, &SettleBillInput{
		Components: []SplitComponentInput{
			{Kind: enum.PaymentKindCash, Amount: 2000},
			{Kind: enum.PaymentKindUPI, Amount: 500},
		},
	})
	requireAppCode(t, err, http.StatusUnprocessableEntity)

	// Nothing was written
	refreshed, err2 := env.Billing.GetBill(context.Background(), bill.ID)
	require.NoError(t, err2)
	assert.Equal(t, enum.BillStatusOpen, refreshed.Status)
	assert.Empty(t, refreshed.Settlements)
}

func TestSettleBill_CreditNeedsCustomer(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t)
	item := env.createMenuItem(t, "Samosa", 3000)

	bill := env.openBill(t, user.ID, nil, item, 1)

	_, err := env.Billing.SettleBill(context.Background(), bill.ID, &SettleBillInput{
		Components: []SplitComponentInput{
			{Kind: enum.PaymentKindCredit, Amount: 3000},
		},
	})
	requireAppCode(t, err, http.StatusBadRequest)
}

func TestSettleBill_AdvanceTopUpNeedsCustomer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t)
	item := env.createMenuItem(t, "Chai", 2000)

	// A walk-in hands over Rs 70 for a Rs 20 bill and asks to keep the
	// change on account. With no customer there is no account to hold it.
	bill := env.openBill(t, user.ID, nil, item, 1)

	_, err := env.Billing.SettleBill(ctx, bill.ID, &SettleBillInput{
		Components: []SplitComponentInput{
			{Kind: enum.PaymentKindCash, Amount: 2000},
			{Kind: enum.PaymentKindAdvanceAddCash, Amount: 5000},
		},
	})
	requireAppCode(t, err, http.StatusBadRequest)

	refreshed, err := env.Billing.GetBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.BillStatusOpen, refreshed.Status)
	assert.Empty(t, refreshed.Settlements)
}

func TestSettleBill_InsufficientAdvance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t)
	customer := env.createCustomer(t, "Suresh")
	item := env.createMenuItem(t, "Biryani", 20000)

	// Customer holds Rs 150 in advance and tries to pay Rs 200 from it
	_, err := env.Customers.DepositAdvance(ctx, customer.ID, &DepositAdvanceInput{
		Amount: 15000,
		Kind:   enum.PaymentKindAdvanceAddCash,
	})
	require.NoError(t, err)

	bill := env.openBill(t, user.ID, &customer.ID, item, 1)
	_, err = env.Billing.SettleBill(ctx, bill.ID, &SettleBillInput{
		Components: []SplitComponentInput{
			{Kind: enum.PaymentKindAdvanceUse, Amount: 20000},
		},
	})
	requireAppCode(t, err, http.StatusUnprocessableEntity)

	// The advance is untouched
	statement, err := env.Customers.GetStatement(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(15000), statement.Advance.Balance())
}

func TestSettleBill_AdvanceUseConsumesBalance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t)
	customer := env.createCustomer(t, "Lata")
	item := env.createMenuItem(t, "Lunch", 10000)

	_, err := env.Customers.DepositAdvance(ctx, customer.ID, &DepositAdvanceInput{
		Amount: 15000,
		Kind:   enum.PaymentKindAdvanceAddUPI,
	})
	require.NoError(t, err)

	bill := env.openBill(t, user.ID, &customer.ID, item, 1)
	settled, err := env.Billing.SettleBill(ctx, bill.ID, &SettleBillInput{
		Components: []SplitComponentInput{
			{Kind: enum.PaymentKindAdvanceUse, Amount: 10000},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10000), settled.Paid)
	assert.Zero(t, settled.CreditDue)

	statement, err := env.Customers.GetStatement(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), statement.Advance.Balance())
}

func TestSettleBill_ChangeKeptAsAdvanceTopUp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t)
	customer := env.createCustomer(t, "Anil")
	item := env.createMenuItem(t, "Dinner", 10000)

	bill := env.openBill(t, user.ID, &customer.ID, item, 1)
	settled, err := env.Billing.SettleBill(ctx, bill.ID, &SettleBillInput{
		Components: []SplitComponentInput{
			{Kind: enum.PaymentKindCash, Amount: 10000},
			{Kind: enum.PaymentKindAdvanceAddCash, Amount: 5000},
		},
	})
	require.NoError(t, err)
	// The top-up never counts toward the bill itself
	assert.Equal(t, int64(10000), settled.Paid)

	statement, err := env.Customers.GetStatement(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), statement.Advance.Balance())
}

func TestSettleBill_AlreadySettled(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t)
	item := env.createMenuItem(t, "Coffee", 3000)

	bill := env.openBill(t, user.ID, nil, item, 1)
	input := &SettleBillInput{
		Components: []SplitComponentInput{{Kind: enum.PaymentKindCash, Amount: 3000}},
	}

	_, err := env.Billing.SettleBill(ctx, bill.ID, input)
	require.NoError(t, err)

	_, err = env.Billing.SettleBill(ctx, bill.ID, input)
	requireAppCode(t, err, http.StatusConflict)
}

func TestCancelBill_ReleasesTickets(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t)
	item := env.createMenuItem(t, "Juice", 4000)

	bill := env.openBill(t, user.ID, nil, item, 2)
	require.Len(t, bill.KOTs, 1)

	cancelled, err := env.Billing.CancelBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.BillStatusCancel, cancelled.Status)

	kot, err := env.Billing.GetKOT(ctx, bill.KOTs[0].ID)
	require.NoError(t, err)
	assert.Nil(t, kot.BillID)
}

func TestCreateBill_RejectsBilledTicket(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t)
	item := env.createMenuItem(t, "Paratha", 5000)

	bill := env.openBill(t, user.ID, nil, item, 1)

	_, err := env.Billing.CreateBill(ctx, &CreateBillInput{
		UserID: user.ID,
		KOTIDs: []uuid.UUID{bill.KOTs[0].ID},
	})
	requireAppCode(t, err, http.StatusConflict)
}
