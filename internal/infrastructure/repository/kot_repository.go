package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/tillbook/tillbook-api/internal/domain/entity"
	"github.com/tillbook/tillbook-api/internal/domain/enum"
	domainRepo "github.com/tillbook/tillbook-api/internal/domain/repository"
	"github.com/tillbook/tillbook-api/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type kotRepository struct {
	db *gorm.DB
}

// NewKOTRepository creates a new kitchen order ticket repository
func NewKOTRepository(db *gorm.DB) domainRepo.KOTRepository {
	return &kotRepository{db: db}
}

func (r *kotRepository) Create(ctx context.Context, kot *entity.KOT) error {
	return r.db.WithContext(ctx).Create(kot).Error
}

func (r *kotRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.KOT, error) {
	var kot entity.KOT
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&kot, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &kot, err
}

// Update persists the ticket row only; line items are written at create
// time and never rewritten here.
func (r *kotRepository) Update(ctx context.Context, kot *entity.KOT) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(kot).Error
}

func (r *kotRepository) List(ctx context.Context, params *pagination.PaginationParams, status *enum.KOTStatus) ([]entity.KOT, int64, error) {
	var kots []entity.KOT
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.KOT{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Items").
		Order("kot_no DESC").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&kots).Error

	return kots, total, err
}

func (r *kotRepository) ListUnbilled(ctx context.Context, tableNo *string) ([]entity.KOT, error) {
	var kots []entity.KOT
	query := r.db.WithContext(ctx).
		Where("bill_id IS NULL AND status != ?", enum.KOTStatusCancel)
	if tableNo != nil {
		query = query.Where("table_no = ?", *tableNo)
	}
	err := query.
		Preload("Items").
		Order("kot_no ASC").
		Find(&kots).Error
	return kots, err
}

// NextNumber derives the next ticket sequence from the unscoped row count.
// Tickets are only ever soft-deleted, so the count never goes backwards.
func (r *kotRepository) NextNumber(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.KOT{}).
		Unscoped().
		Count(&count).Error
	return count + 1, err
}
