package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tillbook/tillbook-api/internal/domain/entity"
	"github.com/tillbook/tillbook-api/internal/domain/enum"
	"github.com/tillbook/tillbook-api/internal/domain/payment"
	"github.com/tillbook/tillbook-api/internal/domain/repository"
	"github.com/tillbook/tillbook-api/pkg/apperror"
	"github.com/tillbook/tillbook-api/pkg/pagination"
)

// ExpenseService handles business expenses and the credit owed on them
type ExpenseService struct {
	expenseRepo    repository.ExpenseRepository
	settlementRepo repository.SettlementRepository
	uow            repository.UnitOfWork
}

// NewExpenseService creates a new expense service
func NewExpenseService(
	expenseRepo repository.ExpenseRepository,
	settlementRepo repository.SettlementRepository,
	uow repository.UnitOfWork,
) *ExpenseService {
	return &ExpenseService{
		expenseRepo:    expenseRepo,
		settlementRepo: settlementRepo,
		uow:            uow,
	}
}

// ExpenseView is an expense joined with its recomputed settlement figures
type ExpenseView struct {
	Expense   *entity.Expense
	Breakdown payment.ExpenseBreakdown
}

// CreateExpenseInput represents the create expense input. The components
// describe how the expense was paid; the credit line, if any, is the part
// still owed to the payee.
type CreateExpenseInput struct {
	UserID     uuid.UUID
	Category   string
	Payee      *string
	Note       *string
	Amount     int64 // paise
	Components []SplitComponentInput
}

// CreateExpense records an expense and its payment split atomically
func (s *ExpenseService) CreateExpense(ctx context.Context, input *CreateExpenseInput) (*ExpenseView, error) {
	if input.Amount <= 0 {
		return nil, paymentError(payment.ErrInvalidAmount)
	}

	// An expense with no explicit split is fully on credit
	components := input.Components
	if len(components) == 0 {
		components = []SplitComponentInput{{Kind: enum.PaymentKindCredit, Amount: input.Amount}}
	}

	set := payment.SplitSet{}
	var err error
	for _, c := range components {
		if c.Kind == enum.PaymentKindAdvanceUse || c.Kind.IsAdvanceTopUp() {
			return nil, apperror.NewBadRequestError("Advance components do not apply to expenses")
		}
		if set, err = payment.Add(set, input.Amount, c.Kind, c.Amount, 0); err != nil {
			return nil, paymentError(err)
		}
	}
	set = payment.Normalize(set, input.Amount)
	if !payment.ValidateTotal(set, input.Amount) {
		return nil, paymentError(payment.ErrOverAllocation)
	}
	if set.CreditAmount() > 0 && (input.Payee == nil || *input.Payee == "") {
		return nil, apperror.NewBadRequestError("Expense on credit needs a payee")
	}

	expense := &entity.Expense{
		UserID:   input.UserID,
		Category: input.Category,
		Payee:    input.Payee,
		Note:     input.Note,
		Amount:   input.Amount,
	}

	err = s.uow.InTx(ctx, func(r repository.Repositories) error {
		if err := r.Expenses.Create(ctx, expense); err != nil {
			return err
		}

		rows := make([]entity.Settlement, 0, len(set.Components))
		for _, c := range set.Components {
			refID := expense.ID
			rows = append(rows, entity.Settlement{
				Context:     enum.SettlementContextExpense,
				ReferenceID: &refID,
				Kind:        c.Kind,
				Amount:      c.Amount,
			})
		}
		return r.Settlements.AppendAll(ctx, rows)
	})
	if err != nil {
		return nil, err
	}

	return s.GetExpense(ctx, expense.ID)
}

// GetExpense retrieves an expense with its settlement breakdown
func (s *ExpenseService) GetExpense(ctx context.Context, id uuid.UUID) (*ExpenseView, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}
	return s.buildView(ctx, s.settlementRepo, expense)
}

// ListExpenses lists expenses with their breakdowns
func (s *ExpenseService) ListExpenses(ctx context.Context, params *pagination.PaginationParams, category string, from, to *time.Time) (*pagination.PaginatedResult[ExpenseView], error) {
	expenses, total, err := s.expenseRepo.List(ctx, params, category, from, to)
	if err != nil {
		return nil, err
	}

	views := make([]ExpenseView, 0, len(expenses))
	for i := range expenses {
		view, err := s.buildView(ctx, s.settlementRepo, &expenses[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(views, pag), nil
}

// ListCategories lists the distinct expense categories
func (s *ExpenseService) ListCategories(ctx context.Context) ([]string, error) {
	return s.expenseRepo.Categories(ctx)
}

// ClearExpenseCreditInput represents paying down the credit owed on an
// expense
type ClearExpenseCreditInput struct {
	CashAmount int64
	UPIAmount  int64
}

func (in *ClearExpenseCreditInput) total() int64 {
	return in.CashAmount + in.UPIAmount
}

// validate rejects negative components, not just a non-positive sum, so a
// negative line can never hide behind a larger positive one.
func (in *ClearExpenseCreditInput) validate() error {
	if in.CashAmount < 0 || in.UPIAmount < 0 {
		return payment.ErrInvalidAmount
	}
	if in.total() <= 0 {
		return payment.ErrInvalidAmount
	}
	return nil
}

// ClearExpenseCredit clears part or all of the credit owed on an expense.
// The outstanding figure is recomputed from the log inside the transaction,
// so paying more than is owed is rejected against the committed state.
func (s *ExpenseService) ClearExpenseCredit(ctx context.Context, id uuid.UUID, input *ClearExpenseCreditInput) (*ExpenseView, error) {
	if err := input.validate(); err != nil {
		return nil, paymentError(err)
	}

	err := s.uow.InTx(ctx, func(r repository.Repositories) error {
		expense, err := r.Expenses.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if expense == nil {
			return apperror.NewNotFoundError("Expense")
		}

		rows, err := r.Settlements.ListByReference(ctx, enum.SettlementContextExpense, expense.ID)
		if err != nil {
			return err
		}
		cleared, err := r.Settlements.ListByReference(ctx, enum.SettlementContextCreditClearance, expense.ID)
		if err != nil {
			return err
		}

		breakdown, err := payment.BreakdownExpense(entriesOf(append(rows, cleared...)))
		if err != nil {
			return paymentError(err)
		}

		ledger := payment.CreditLedger{Accrued: breakdown.CreditAccrued, Cleared: breakdown.CreditCleared}
		if err := ledger.CanClear(input.total()); err != nil {
			return paymentError(err)
		}

		refID := expense.ID
		var newRows []entity.Settlement
		appendRow := func(kind enum.PaymentKind, amount int64) {
			if amount <= 0 {
				return
			}
			newRows = append(newRows, entity.Settlement{
				Context:     enum.SettlementContextCreditClearance,
				ReferenceID: &refID,
				Kind:        kind,
				Amount:      amount,
			})
		}
		appendRow(enum.PaymentKindCash, input.CashAmount)
		appendRow(enum.PaymentKindUPI, input.UPIAmount)

		return r.Settlements.AppendAll(ctx, newRows)
	})
	if err != nil {
		return nil, err
	}

	return s.GetExpense(ctx, id)
}

func (s *ExpenseService) buildView(ctx context.Context, settlements repository.SettlementRepository, expense *entity.Expense) (*ExpenseView, error) {
	rows, err := settlements.ListByReference(ctx, enum.SettlementContextExpense, expense.ID)
	if err != nil {
		return nil, err
	}
	cleared, err := settlements.ListByReference(ctx, enum.SettlementContextCreditClearance, expense.ID)
	if err != nil {
		return nil, err
	}

	breakdown, err := payment.BreakdownExpense(entriesOf(append(rows, cleared...)))
	if err != nil {
		return nil, paymentError(err)
	}

	return &ExpenseView{Expense: expense, Breakdown: breakdown}, nil
}
