package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tillbook/tillbook-api/internal/domain/entity"
	"github.com/tillbook/tillbook-api/internal/domain/enum"
	"github.com/tillbook/tillbook-api/pkg/pagination"
)

// KOTRepository defines the interface for kitchen order ticket operations
type KOTRepository interface {
	Create(ctx context.Context, kot *entity.KOT) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.KOT, error)
	Update(ctx context.Context, kot *entity.KOT) error
	List(ctx context.Context, params *pagination.PaginationParams, status *enum.KOTStatus) ([]entity.KOT, int64, error)
	// ListUnbilled returns served tickets not yet attached to a bill,
	// optionally filtered by table number.
	ListUnbilled(ctx context.Context, tableNo *string) ([]entity.KOT, error)
	NextNumber(ctx context.Context) (int64, error)
}
