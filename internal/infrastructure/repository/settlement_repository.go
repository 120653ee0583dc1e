package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tillbook/tillbook-api/internal/domain/entity"
	"github.com/tillbook/tillbook-api/internal/domain/enum"
	domainRepo "github.com/tillbook/tillbook-api/internal/domain/repository"
	"gorm.io/gorm"
)

type settlementRepository struct {
	db *gorm.DB
}

// NewSettlementRepository creates a new settlement log repository
func NewSettlementRepository(db *gorm.DB) domainRepo.SettlementRepository {
	return &settlementRepository{db: db}
}

func (r *settlementRepository) Append(ctx context.Context, settlement *entity.Settlement) error {
	return r.db.WithContext(ctx).Create(settlement).Error
}

func (r *settlementRepository) AppendAll(ctx context.Context, settlements []entity.Settlement) error {
	if len(settlements) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&settlements).Error
}

func (r *settlementRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Settlement, error) {
	var settlements []entity.Settlement
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at ASC, id ASC").
		Find(&settlements).Error
	return settlements, err
}

func (r *settlementRepository) ListRecentCredit(ctx context.Context, customerID uuid.UUID, limit int) ([]entity.Settlement, error) {
	var settlements []entity.Settlement
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Where("kind = ? OR context = ?", enum.PaymentKindCredit, enum.SettlementContextCreditClearance).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&settlements).Error
	return settlements, err
}

func (r *settlementRepository) ListRecentAdvance(ctx context.Context, customerID uuid.UUID, limit int) ([]entity.Settlement, error) {
	var settlements []entity.Settlement
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Where("kind IN ?", []enum.PaymentKind{
			enum.PaymentKindAdvanceAddCash,
			enum.PaymentKindAdvanceAddUPI,
			enum.PaymentKindAdvanceUse,
		}).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&settlements).Error
	return settlements, err
}

func (r *settlementRepository) ListByReference(ctx context.Context, context enum.SettlementContext, referenceID uuid.UUID) ([]entity.Settlement, error) {
	var settlements []entity.Settlement
	err := r.db.WithContext(ctx).
		Where("context = ? AND reference_id = ?", context, referenceID).
		Order("created_at ASC, id ASC").
		Find(&settlements).Error
	return settlements, err
}

func (r *settlementRepository) ListByPeriod(ctx context.Context, context *enum.SettlementContext, from, to time.Time) ([]entity.Settlement, error) {
	var settlements []entity.Settlement
	query := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", from, to)
	if context != nil {
		query = query.Where("context = ?", *context)
	}
	err := query.Order("created_at ASC, id ASC").Find(&settlements).Error
	return settlements, err
}

func (r *settlementRepository) CustomerIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&entity.Settlement{}).
		Distinct("customer_id").
		Where("customer_id IS NOT NULL").
		Pluck("customer_id", &ids).Error
	return ids, err
}

func (r *settlementRepository) ListUnmigrated(ctx context.Context, canonicalModes []string) ([]entity.Settlement, error) {
	var settlements []entity.Settlement
	err := r.db.WithContext(ctx).
		Where("mode NOT IN ?", canonicalModes).
		Order("created_at ASC, id ASC").
		Find(&settlements).Error
	return settlements, err
}

func (r *settlementRepository) UpdateKindAndMode(ctx context.Context, id uuid.UUID, kind enum.PaymentKind, mode string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Settlement{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"kind": kind,
			"mode": mode,
		}).Error
}
