package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tillbook/tillbook-api/internal/domain/entity"
	"github.com/tillbook/tillbook-api/internal/domain/enum"
)

// SettlementRepository defines the interface for the append-only settlement
// log. The log is the ground truth for every balance in the system, so the
// interface deliberately has no Update or Delete.
type SettlementRepository interface {
	Append(ctx context.Context, settlement *entity.Settlement) error
	AppendAll(ctx context.Context, settlements []entity.Settlement) error
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Settlement, error)
	// ListRecentCredit returns a customer's credit entries (accruals and
	// clearance receipts), newest first, at most limit rows.
	ListRecentCredit(ctx context.Context, customerID uuid.UUID, limit int) ([]entity.Settlement, error)
	// ListRecentAdvance returns a customer's advance entries (deposits
	// and uses), newest first, at most limit rows.
	ListRecentAdvance(ctx context.Context, customerID uuid.UUID, limit int) ([]entity.Settlement, error)
	ListByReference(ctx context.Context, context enum.SettlementContext, referenceID uuid.UUID) ([]entity.Settlement, error)
	ListByPeriod(ctx context.Context, context *enum.SettlementContext, from, to time.Time) ([]entity.Settlement, error)
	// CustomerIDs returns the distinct customers that appear in the log
	CustomerIDs(ctx context.Context) ([]uuid.UUID, error)
	// ListUnmigrated returns rows still carrying a legacy free-text mode
	// label, in insertion order.
	ListUnmigrated(ctx context.Context, canonicalModes []string) ([]entity.Settlement, error)
	// UpdateKindAndMode rewrites one row's payment kind and canonical mode
	// label. It is the single exception to append-only, reserved for the
	// legacy mode migration.
	UpdateKindAndMode(ctx context.Context, id uuid.UUID, kind enum.PaymentKind, mode string) error
}
