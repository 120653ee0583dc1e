package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tillbook/tillbook-api/internal/domain/entity"
	"github.com/tillbook/tillbook-api/pkg/pagination"
)

// ExpenseRepository defines the interface for expense data operations.
// Paid/credit breakdowns are never stored here: they are recomputed from
// the settlement log on every read.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)
	Update(ctx context.Context, expense *entity.Expense) error
	List(ctx context.Context, params *pagination.PaginationParams, category string, from, to *time.Time) ([]entity.Expense, int64, error)
	Categories(ctx context.Context) ([]string, error)
}
