package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tillbook/tillbook-api/internal/domain/entity"
	"github.com/tillbook/tillbook-api/internal/domain/enum"
)

func TestValidateConsistency_CleanTill(t *testing.T) {
	env := newTestEnv(t)
	customer := env.createCustomer(t, "Prakash")
	settleOnCredit(t, env, customer.ID, 40000)

	report, err := env.Audit.ValidateConsistency(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Consistent)
	assert.Equal(t, 1, report.CustomersChecked)
	assert.Empty(t, report.Discrepancies)
}

func TestReconcile_RewritesDriftedCaches(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := env.createCustomer(t, "Deepa")
	settleOnCredit(t, env, customer.ID, 40000)

	// Simulate a cache that drifted from the log
	require.NoError(t, env.customerRepo.UpdateBalances(ctx, customer.ID, 99900, 12300))

	check, err := env.Audit.ValidateConsistency(ctx)
	require.NoError(t, err)
	require.False(t, check.Consistent)
	require.Len(t, check.Discrepancies, 1)
	d := check.Discrepancies[0]
	assert.Equal(t, int64(99900), d.CachedCredit)
	assert.Equal(t, int64(40000), d.DerivedCredit)
	assert.Equal(t, int64(12300), d.CachedAdvance)
	assert.Zero(t, d.DerivedAdvance)
	assert.False(t, d.LogInconsistent)

	report, err := env.Audit.Reconcile(ctx)
	require.NoError(t, err)
	assert.Len(t, report.Corrected, 1)

	// The log won
	refreshed, err := env.customerRepo.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(40000), refreshed.CreditBalance)
	assert.Zero(t, refreshed.AdvanceBalance)

	check, err = env.Audit.ValidateConsistency(ctx)
	require.NoError(t, err)
	assert.True(t, check.Consistent)
}

func TestReconcile_CorruptLogAborts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := env.createCustomer(t, "Kiran")

	// A clearance with no accrual means the log itself is wrong
	cid := customer.ID
	require.NoError(t, env.settlementRepo.Append(ctx, &entity.Settlement{
		CustomerID: &cid,
		Context:    enum.SettlementContextCreditClearance,
		Kind:       enum.PaymentKindCash,
		Amount:     5000,
	}))

	check, err := env.Audit.ValidateConsistency(ctx)
	require.NoError(t, err)
	require.Len(t, check.Discrepancies, 1)
	assert.True(t, check.Discrepancies[0].LogInconsistent)

	_, err = env.Audit.Reconcile(ctx)
	requireAppCode(t, err, http.StatusConflict)
}

func TestMigrateLegacyModes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := env.createCustomer(t, "Old Till Customer")
	cid := customer.ID

	// Rows written by the old till: free-text labels, kind column unset
	legacy := []entity.Settlement{
		{CustomerID: &cid, Context: enum.SettlementContextBill, Kind: enum.PaymentKindCash, Mode: "gpay", Amount: 10000},
		{CustomerID: &cid, Context: enum.SettlementContextBill, Kind: enum.PaymentKindCash, Mode: "CASH", Amount: 5000},
		{CustomerID: &cid, Context: enum.SettlementContextBill, Kind: enum.PaymentKindCash, Mode: "barter", Amount: 2000},
	}
	for i := range legacy {
		require.NoError(t, env.settlementRepo.Append(ctx, &legacy[i]))
	}

	report, err := env.Audit.MigrateLegacyModes(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Scanned)
	assert.Equal(t, 2, report.Migrated)
	assert.Equal(t, []string{"barter"}, report.Unrecognized)

	// Migrated rows now carry canonical labels and kinds
	rows, err := env.settlementRepo.ListByCustomer(ctx, cid)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, enum.PaymentKindUPI, rows[0].Kind)
	assert.Equal(t, "UPI", rows[0].Mode)
	assert.Equal(t, enum.PaymentKindCash, rows[1].Kind)
	assert.Equal(t, "Cash", rows[1].Mode)
	assert.Equal(t, "barter", rows[2].Mode)

	// A second run touches nothing it already migrated
	report, err = env.Audit.MigrateLegacyModes(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Scanned)
	assert.Zero(t, report.Migrated)
	assert.Equal(t, []string{"barter"}, report.Unrecognized)
}

func TestMigrateLegacyModes_CallerMapping(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := env.createCustomer(t, "Paytm Customer")
	cid := customer.ID

	row := entity.Settlement{CustomerID: &cid, Context: enum.SettlementContextBill, Kind: enum.PaymentKindCash, Mode: "paytm", Amount: 7000}
	require.NoError(t, env.settlementRepo.Append(ctx, &row))

	// The parser alone does not know the label
	report, err := env.Audit.MigrateLegacyModes(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, report.Migrated)
	assert.Equal(t, []string{"paytm"}, report.Unrecognized)

	report, err = env.Audit.MigrateLegacyModes(ctx, map[string]enum.PaymentKind{"paytm": enum.PaymentKindUPI})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Migrated)
	assert.Empty(t, report.Unrecognized)

	rows, err := env.settlementRepo.ListByCustomer(ctx, cid)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, enum.PaymentKindUPI, rows[0].Kind)
	assert.Equal(t, "UPI", rows[0].Mode)
}

func TestMigrateLegacyModes_ReportSurvivesFailure(t *testing.T) {
	env := newTestEnv(t)
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := env.Audit.MigrateLegacyModes(cancelled, nil)
	require.Error(t, err)
	require.NotNil(t, report)
}
