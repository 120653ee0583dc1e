package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/tillbook/tillbook-api/internal/domain/entity"
	"github.com/tillbook/tillbook-api/internal/domain/enum"
	"github.com/tillbook/tillbook-api/internal/domain/payment"
	"github.com/tillbook/tillbook-api/internal/domain/repository"
)

// AuditService reconciles the denormalized balance caches against the
// settlement log and migrates data written by older versions of the till
type AuditService struct {
	customerRepo   repository.CustomerRepository
	settlementRepo repository.SettlementRepository
	uow            repository.UnitOfWork
}

// NewAuditService creates a new audit service
func NewAuditService(
	customerRepo repository.CustomerRepository,
	settlementRepo repository.SettlementRepository,
	uow repository.UnitOfWork,
) *AuditService {
	return &AuditService{
		customerRepo:   customerRepo,
		settlementRepo: settlementRepo,
		uow:            uow,
	}
}

// Discrepancy is one customer whose cached balances disagree with the log,
// or whose log itself violates an invariant.
type Discrepancy struct {
	CustomerID      uuid.UUID `json:"customer_id"`
	CustomerName    string    `json:"customer_name"`
	CachedCredit    int64     `json:"cached_credit"`
	DerivedCredit   int64     `json:"derived_credit"`
	CachedAdvance   int64     `json:"cached_advance"`
	DerivedAdvance  int64     `json:"derived_advance"`
	LogInconsistent bool      `json:"log_inconsistent"`
}

// ConsistencyReport summarizes a consistency check over all customers
type ConsistencyReport struct {
	CustomersChecked int           `json:"customers_checked"`
	Discrepancies    []Discrepancy `json:"discrepancies"`
	Consistent       bool          `json:"consistent"`
}

// ValidateConsistency recomputes every customer's balances from the
// settlement log and reports where the caches disagree. It never mutates.
func (s *AuditService) ValidateConsistency(ctx context.Context) (*ConsistencyReport, error) {
	return s.check(ctx, s.customerRepo, s.settlementRepo)
}

// ReconcileReport summarizes a reconciliation run
type ReconcileReport struct {
	CustomersChecked int           `json:"customers_checked"`
	Corrected        []Discrepancy `json:"corrected"`
}

// Reconcile overwrites every stale balance cache with the value derived
// from the settlement log. The whole run is one transaction: a reconcile
// that fails halfway leaves every cache as it was. The log always wins.
func (s *AuditService) Reconcile(ctx context.Context) (*ReconcileReport, error) {
	report := &ReconcileReport{}
	err := s.uow.InTx(ctx, func(r repository.Repositories) error {
		check, err := s.check(ctx, r.Customers, r.Settlements)
		if err != nil {
			return err
		}
		report.CustomersChecked = check.CustomersChecked

		for _, d := range check.Discrepancies {
			if d.LogInconsistent {
				// A corrupt log cannot be fixed by rewriting caches
				return paymentError(payment.ErrInconsistentState)
			}
			if err := r.Customers.UpdateBalances(ctx, d.CustomerID, d.DerivedCredit, d.DerivedAdvance); err != nil {
				return err
			}
			report.Corrected = append(report.Corrected, d)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Reconciled %d customers, corrected %d", report.CustomersChecked, len(report.Corrected))
	return report, nil
}

// MigrationReport summarizes a legacy mode migration run
type MigrationReport struct {
	Scanned      int      `json:"scanned"`
	Migrated     int      `json:"migrated"`
	Unrecognized []string `json:"unrecognized,omitempty"`
}

// MigrateLegacyModes canonicalizes free-text payment labels written by
// older versions of the till. A row is migrated by resolving its label,
// through the caller's mapping first and the built-in parser second, and
// rewriting kind and label together; already-canonical rows are never
// touched, so running the migration twice is a no-op. On failure the
// transaction rolls back and the report counts what would have been
// migrated.
func (s *AuditService) MigrateLegacyModes(ctx context.Context, mapping map[string]enum.PaymentKind) (*MigrationReport, error) {
	canonical := make([]string, 0, len(enum.PaymentKinds()))
	for _, k := range enum.PaymentKinds() {
		canonical = append(canonical, k.String())
	}

	report := &MigrationReport{}
	err := s.uow.InTx(ctx, func(r repository.Repositories) error {
		rows, err := r.Settlements.ListUnmigrated(ctx, canonical)
		if err != nil {
			return err
		}
		report.Scanned = len(rows)

		for _, row := range rows {
			kind, ok := mapping[row.Mode]
			if !ok {
				kind, ok = enum.ParsePaymentKind(row.Mode)
			}
			if !ok {
				report.Unrecognized = append(report.Unrecognized, row.Mode)
				continue
			}
			if err := r.Settlements.UpdateKindAndMode(ctx, row.ID, kind, kind.String()); err != nil {
				return err
			}
			report.Migrated++
		}
		return nil
	})
	if err != nil {
		return report, err
	}

	log.Printf("Legacy mode migration: %d scanned, %d migrated, %d unrecognized",
		report.Scanned, report.Migrated, len(report.Unrecognized))
	return report, nil
}

// check runs the consistency comparison over the union of customers that
// appear in the log and customers carrying a cached balance.
func (s *AuditService) check(ctx context.Context, customers repository.CustomerRepository, settlements repository.SettlementRepository) (*ConsistencyReport, error) {
	ids := map[uuid.UUID]struct{}{}

	fromLog, err := settlements.CustomerIDs(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range fromLog {
		ids[id] = struct{}{}
	}

	withBalance, err := customers.ListWithBalance(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range withBalance {
		ids[c.ID] = struct{}{}
	}

	report := &ConsistencyReport{CustomersChecked: len(ids)}
	for id := range ids {
		customer, err := customers.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			// soft-deleted customers keep their log entries; nothing to compare
			continue
		}

		d, ok, err := s.compare(ctx, settlements, customer)
		if err != nil {
			return nil, err
		}
		if ok {
			report.Discrepancies = append(report.Discrepancies, d)
		}
	}

	report.Consistent = len(report.Discrepancies) == 0
	return report, nil
}

func (s *AuditService) compare(ctx context.Context, settlements repository.SettlementRepository, customer *entity.Customer) (Discrepancy, bool, error) {
	rows, err := settlements.ListByCustomer(ctx, customer.ID)
	if err != nil {
		return Discrepancy{}, false, err
	}
	entries := entriesOf(rows)

	d := Discrepancy{
		CustomerID:    customer.ID,
		CustomerName:  customer.Name,
		CachedCredit:  customer.CreditBalance,
		CachedAdvance: customer.AdvanceBalance,
	}

	credit, err := payment.CreditFromEntries(entries)
	if err != nil && !errors.Is(err, payment.ErrInconsistentState) {
		return Discrepancy{}, false, err
	}
	if err != nil {
		d.LogInconsistent = true
	}
	advance, err := payment.AdvanceFromEntries(entries)
	if err != nil && !errors.Is(err, payment.ErrInconsistentState) {
		return Discrepancy{}, false, err
	}
	if err != nil {
		d.LogInconsistent = true
	}

	d.DerivedCredit = credit.Balance()
	d.DerivedAdvance = advance.Balance()

	mismatch := d.CachedCredit != d.DerivedCredit || d.CachedAdvance != d.DerivedAdvance
	return d, mismatch || d.LogInconsistent, nil
}
