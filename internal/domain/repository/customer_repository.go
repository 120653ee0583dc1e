package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tillbook/tillbook-api/internal/domain/entity"
	"github.com/tillbook/tillbook-api/pkg/pagination"
)

// CustomerRepository defines the interface for customer data operations.
// Customers are soft-deleted only: their settlement history must survive.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
	// ListWithBalance returns customers whose cached credit or advance
	// balance is non-zero, for the dues and advances views.
	ListWithBalance(ctx context.Context) ([]entity.Customer, error)
	// UpdateBalances writes only the cached balance columns
	UpdateBalances(ctx context.Context, id uuid.UUID, creditBalance, advanceBalance int64) error
}
