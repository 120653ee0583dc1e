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
	"github.com/tillbook/tillbook-api/pkg/utils"
)

// BillingService handles kitchen order tickets, bills, and settlement
type BillingService struct {
	kotRepo      repository.KOTRepository
	billRepo     repository.BillRepository
	menuRepo     repository.MenuItemRepository
	customerRepo repository.CustomerRepository
	settingsRepo repository.SettingsRepository
	uow          repository.UnitOfWork
}

// NewBillingService creates a new billing service
func NewBillingService(
	kotRepo repository.KOTRepository,
	billRepo repository.BillRepository,
	menuRepo repository.MenuItemRepository,
	customerRepo repository.CustomerRepository,
	settingsRepo repository.SettingsRepository,
	uow repository.UnitOfWork,
) *BillingService {
	return &BillingService{
		kotRepo:      kotRepo,
		billRepo:     billRepo,
		menuRepo:     menuRepo,
		customerRepo: customerRepo,
		settingsRepo: settingsRepo,
		uow:          uow,
	}
}

// KOTItemInput represents one line on a new ticket
type KOTItemInput struct {
	MenuItemID uuid.UUID
	Quantity   int
	Note       *string
}

// CreateKOTInput represents the create ticket input
type CreateKOTInput struct {
	UserID     uuid.UUID
	CustomerID *uuid.UUID
	TableNo    *string
	Items      []KOTItemInput
}

// CreateKOT creates a kitchen order ticket, pricing lines from the menu
func (s *BillingService) CreateKOT(ctx context.Context, input *CreateKOTInput) (*entity.KOT, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Ticket needs at least one item")
	}

	var items []entity.KOTItem
	var subTotal int64
	for _, in := range input.Items {
		if in.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Quantity must be positive")
		}
		menuItem, err := s.menuRepo.GetByID(ctx, in.MenuItemID)
		if err != nil {
			return nil, err
		}
		if menuItem == nil {
			return nil, apperror.NewNotFoundError("Menu item")
		}
		if !menuItem.Available {
			return nil, apperror.NewBadRequestError(menuItem.Name + " is not available")
		}

		total := menuItem.Price * int64(in.Quantity)
		items = append(items, entity.KOTItem{
			MenuItemID: menuItem.ID,
			Quantity:   in.Quantity,
			UnitPrice:  menuItem.Price,
			Total:      total,
			Note:       in.Note,
		})
		subTotal += total
	}

	next, err := s.kotRepo.NextNumber(ctx)
	if err != nil {
		return nil, err
	}

	kot := &entity.KOT{
		KOTNo:      utils.FormatDocNo("KOT", next),
		UserID:     input.UserID,
		CustomerID: input.CustomerID,
		TableNo:    input.TableNo,
		Status:     enum.KOTStatusPending,
		SubTotal:   subTotal,
		Items:      items,
	}
	if err := s.kotRepo.Create(ctx, kot); err != nil {
		return nil, err
	}
	return kot, nil
}

// GetKOT retrieves a ticket by ID
func (s *BillingService) GetKOT(ctx context.Context, id uuid.UUID) (*entity.KOT, error) {
	kot, err := s.kotRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if kot == nil {
		return nil, apperror.NewNotFoundError("KOT")
	}
	return kot, nil
}

// ListKOTs lists tickets with pagination and an optional status filter
func (s *BillingService) ListKOTs(ctx context.Context, params *pagination.PaginationParams, status *enum.KOTStatus) (*pagination.PaginatedResult[entity.KOT], error) {
	kots, total, err := s.kotRepo.List(ctx, params, status)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(kots, pag), nil
}

// ListUnbilledKOTs lists served tickets awaiting a bill
func (s *BillingService) ListUnbilledKOTs(ctx context.Context, tableNo *string) ([]entity.KOT, error) {
	return s.kotRepo.ListUnbilled(ctx, tableNo)
}

// UpdateKOTStatus moves a ticket through the kitchen flow. Billed tickets
// are frozen.
func (s *BillingService) UpdateKOTStatus(ctx context.Context, id uuid.UUID, status enum.KOTStatus) (*entity.KOT, error) {
	kot, err := s.GetKOT(ctx, id)
	if err != nil {
		return nil, err
	}
	if kot.BillID != nil {
		return nil, apperror.NewBadRequestError("KOT is already billed")
	}
	if kot.Status == enum.KOTStatusCancel {
		return nil, apperror.NewBadRequestError("KOT is cancelled")
	}

	kot.Status = status
	if err := s.kotRepo.Update(ctx, kot); err != nil {
		return nil, err
	}
	return kot, nil
}

// CreateBillInput represents the open-bill input
type CreateBillInput struct {
	UserID     uuid.UUID
	CustomerID *uuid.UUID
	KOTIDs     []uuid.UUID
}

// CreateBill opens a bill over the given unbilled tickets
func (s *BillingService) CreateBill(ctx context.Context, input *CreateBillInput) (*entity.Bill, error) {
	if len(input.KOTIDs) == 0 {
		return nil, apperror.NewBadRequestError("Bill needs at least one KOT")
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	var bill *entity.Bill
	err = s.uow.InTx(ctx, func(r repository.Repositories) error {
		var kots []entity.KOT
		var subTotal int64
		for _, id := range input.KOTIDs {
			kot, err := r.KOTs.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if kot == nil {
				return apperror.NewNotFoundError("KOT")
			}
			if kot.BillID != nil {
				return apperror.NewConflictError(kot.KOTNo + " is already billed")
			}
			if kot.Status == enum.KOTStatusCancel {
				return apperror.NewBadRequestError(kot.KOTNo + " is cancelled")
			}
			kots = append(kots, *kot)
			subTotal += kot.SubTotal
		}

		total := subTotal
		if settings != nil && settings.TaxPercent > 0 {
			total += subTotal * int64(settings.TaxPercent) / 100
		}

		next, err := r.Bills.NextNumber(ctx)
		if err != nil {
			return err
		}

		bill = &entity.Bill{
			BillNo:     utils.FormatDocNo("BILL", next),
			UserID:     input.UserID,
			CustomerID: input.CustomerID,
			Status:     enum.BillStatusOpen,
			SubTotal:   subTotal,
			Total:      total,
		}
		if err := r.Bills.Create(ctx, bill); err != nil {
			return err
		}

		for i := range kots {
			kots[i].BillID = &bill.ID
			if err := r.KOTs.Update(ctx, &kots[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetBill(ctx, bill.ID)
}

// GetBill retrieves a bill with its tickets and settlements
func (s *BillingService) GetBill(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// ListBills lists bills with pagination and filters
func (s *BillingService) ListBills(ctx context.Context, params *pagination.PaginationParams, status *enum.BillStatus, customerID *uuid.UUID, from, to *time.Time) (*pagination.PaginatedResult[entity.Bill], error) {
	bills, total, err := s.billRepo.List(ctx, params, status, customerID, from, to)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(bills, pag), nil
}

// SplitComponentInput is one payment line of a settlement request
type SplitComponentInput struct {
	Kind   enum.PaymentKind
	Amount int64 // paise
}

// SettleBillInput represents the settle request
type SettleBillInput struct {
	Components []SplitComponentInput
}

// SettleBill settles an open bill with a validated split. Everything runs
// in one transaction: the customer's ledgers are recomputed from the log
// inside it, the split is validated against them, and the settlement rows,
// bill update, and cached balances commit together or not at all.
func (s *BillingService) SettleBill(ctx context.Context, id uuid.UUID, input *SettleBillInput) (*entity.Bill, error) {
	if len(input.Components) == 0 {
		return nil, paymentError(payment.ErrInvalidAmount)
	}

	err := s.uow.InTx(ctx, func(r repository.Repositories) error {
		bill, err := r.Bills.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if bill == nil {
			return apperror.NewNotFoundError("Bill")
		}
		if bill.Status != enum.BillStatusOpen {
			return apperror.NewConflictError("Bill is not open")
		}

		var credit payment.CreditLedger
		var advance payment.AdvanceLedger
		if bill.CustomerID != nil {
			credit, advance, err = customerLedgers(ctx, r.Settlements, *bill.CustomerID)
			if err != nil {
				return err
			}
		}

		set := payment.SplitSet{}
		for _, c := range input.Components {
			if set, err = payment.Add(set, bill.Total, c.Kind, c.Amount, advance.Balance()); err != nil {
				return paymentError(err)
			}
		}
		set = payment.Normalize(set, bill.Total)
		if !payment.ValidateTotal(set, bill.Total) {
			return paymentError(payment.ErrOverAllocation)
		}

		creditAmount := set.CreditAmount()
		advanceUsed := set.AdvanceUsed()
		if creditAmount > 0 || advanceUsed > 0 || set.AdvanceTopUp() > 0 {
			if bill.CustomerID == nil {
				return apperror.NewBadRequestError("Credit and advance components need a customer on the bill")
			}
		}
		if creditAmount > 0 {
			settings, err := r.Settings.Get(ctx)
			if err != nil {
				return err
			}
			if settings != nil && !settings.AllowCustomerCredit {
				return apperror.NewBadRequestError("Customer credit is disabled")
			}
			if settings != nil && settings.CreditLimit > 0 && credit.Balance()+creditAmount > settings.CreditLimit {
				return apperror.NewBadRequestError("Credit limit exceeded")
			}
			if credit, err = credit.ApplyAccrual(creditAmount); err != nil {
				return paymentError(err)
			}
		}
		if advanceUsed > 0 {
			if advance, err = advance.Use(advanceUsed); err != nil {
				return paymentError(err)
			}
		}

		rows := make([]entity.Settlement, 0, len(set.Components))
		for _, c := range set.Components {
			ctxKind := enum.SettlementContextBill
			if c.Kind.IsAdvanceTopUp() {
				// change handed back as an advance top-up at the till
				ctxKind = enum.SettlementContextAdvanceTopUp
				if advance, err = advance.Deposit(c.Amount, c.Kind); err != nil {
					return paymentError(err)
				}
			}
			refID := bill.ID
			rows = append(rows, entity.Settlement{
				CustomerID:  bill.CustomerID,
				Context:     ctxKind,
				ReferenceID: &refID,
				Kind:        c.Kind,
				Amount:      c.Amount,
			})
		}
		if err := r.Settlements.AppendAll(ctx, rows); err != nil {
			return err
		}

		now := time.Now()
		bill.Status = enum.BillStatusSettled
		bill.Paid = set.Contributing() - creditAmount
		bill.CreditDue = creditAmount
		bill.SettledAt = &now
		if err := r.Bills.Update(ctx, bill); err != nil {
			return err
		}

		if bill.CustomerID != nil {
			return r.Customers.UpdateBalances(ctx, *bill.CustomerID, credit.Balance(), advance.Balance())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetBill(ctx, id)
}

// CancelBill voids an open bill and releases its tickets
func (s *BillingService) CancelBill(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	err := s.uow.InTx(ctx, func(r repository.Repositories) error {
		bill, err := r.Bills.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if bill == nil {
			return apperror.NewNotFoundError("Bill")
		}
		if bill.Status != enum.BillStatusOpen {
			return apperror.NewConflictError("Only open bills can be cancelled")
		}

		for i := range bill.KOTs {
			bill.KOTs[i].BillID = nil
			if err := r.KOTs.Update(ctx, &bill.KOTs[i]); err != nil {
				return err
			}
		}

		bill.Status = enum.BillStatusCancel
		return r.Bills.Update(ctx, bill)
	})
	if err != nil {
		return nil, err
	}
	return s.GetBill(ctx, id)
}
