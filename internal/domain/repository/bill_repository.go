package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tillbook/tillbook-api/internal/domain/entity"
	"github.com/tillbook/tillbook-api/internal/domain/enum"
	"github.com/tillbook/tillbook-api/pkg/pagination"
)

// BillRepository defines the interface for bill data operations
type BillRepository interface {
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	Update(ctx context.Context, bill *entity.Bill) error
	List(ctx context.Context, params *pagination.PaginationParams, status *enum.BillStatus, customerID *uuid.UUID, from, to *time.Time) ([]entity.Bill, int64, error)
	NextNumber(ctx context.Context) (int64, error)
}
