package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/tillbook/tillbook-api/internal/domain/entity"
	"github.com/tillbook/tillbook-api/internal/domain/enum"
	"github.com/tillbook/tillbook-api/internal/domain/payment"
	"github.com/tillbook/tillbook-api/internal/domain/repository"
	"github.com/tillbook/tillbook-api/pkg/apperror"
	"github.com/tillbook/tillbook-api/pkg/pagination"
)

// CustomerService handles customers, their credit tabs, and their advances
type CustomerService struct {
	customerRepo   repository.CustomerRepository
	settlementRepo repository.SettlementRepository
	uow            repository.UnitOfWork
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	settlementRepo repository.SettlementRepository,
	uow repository.UnitOfWork,
) *CustomerService {
	return &CustomerService{
		customerRepo:   customerRepo,
		settlementRepo: settlementRepo,
		uow:            uow,
	}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name    string
	Phone   *string
	Address *string
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	if input.Phone != nil && *input.Phone != "" {
		existing, err := s.customerRepo.GetByPhone(ctx, *input.Phone)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("A customer with this phone already exists")
		}
	}

	customer := &entity.Customer{
		Name:    input.Name,
		Phone:   input.Phone,
		Address: input.Address,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers with pagination and optional search
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// ListWithBalance lists customers carrying credit dues or advances
func (s *CustomerService) ListWithBalance(ctx context.Context) ([]entity.Customer, error) {
	return s.customerRepo.ListWithBalance(ctx)
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	Name    *string
	Phone   *string
	Address *string
}

// UpdateCustomer updates a customer's details
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Address != nil {
		customer.Address = input.Address
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer soft-deletes a customer. Customers with an outstanding
// credit or advance balance cannot be removed.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return err
	}
	if customer.CreditBalance != 0 || customer.AdvanceBalance != 0 {
		return apperror.NewBadRequestError("Customer has an outstanding balance")
	}
	return s.customerRepo.Delete(ctx, id)
}

// Statement returns a customer's settlement history plus the ledgers
// recomputed from it.
type Statement struct {
	Customer    *entity.Customer
	Settlements []entity.Settlement
	Credit      payment.CreditLedger
	Advance     payment.AdvanceLedger
}

// GetStatement builds a customer's account statement from the log
func (s *CustomerService) GetStatement(ctx context.Context, id uuid.UUID) (*Statement, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := s.settlementRepo.ListByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	entries := entriesOf(rows)

	credit, err := payment.CreditFromEntries(entries)
	if err != nil {
		return nil, paymentError(err)
	}
	advance, err := payment.AdvanceFromEntries(entries)
	if err != nil {
		return nil, paymentError(err)
	}

	return &Statement{
		Customer:    customer,
		Settlements: rows,
		Credit:      credit,
		Advance:     advance,
	}, nil
}

// defaultLedgerLimit caps a ledger page when the caller sends no limit
const defaultLedgerLimit = 50

// LedgerView is one page of a customer's ledger, newest entry first.
// Re-querying with the same limit returns the same page unless new
// entries were written in between.
type LedgerView struct {
	Customer *entity.Customer    `json:"customer"`
	Balance  int64               `json:"balance"`
	Entries  []entity.Settlement `json:"entries"`
}

// GetCreditLedger returns a customer's recent credit activity, accruals
// and clearance receipts, with the tab balance recomputed from the full log
func (s *CustomerService) GetCreditLedger(ctx context.Context, id uuid.UUID, limit int) (*LedgerView, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultLedgerLimit
	}

	credit, _, err := customerLedgers(ctx, s.settlementRepo, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.settlementRepo.ListRecentCredit(ctx, id, limit)
	if err != nil {
		return nil, err
	}

	return &LedgerView{Customer: customer, Balance: credit.Balance(), Entries: rows}, nil
}

// GetAdvanceLedger returns a customer's recent deposits and uses, with the
// advance balance recomputed from the full log
func (s *CustomerService) GetAdvanceLedger(ctx context.Context, id uuid.UUID, limit int) (*LedgerView, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultLedgerLimit
	}

	_, advance, err := customerLedgers(ctx, s.settlementRepo, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.settlementRepo.ListRecentAdvance(ctx, id, limit)
	if err != nil {
		return nil, err
	}

	return &LedgerView{Customer: customer, Balance: advance.Balance(), Entries: rows}, nil
}

// ClearCreditInput represents a credit clearance collection. The amounts
// are how the customer pays down the tab; a credit line is meaningless here
// and advance top-ups belong to DepositAdvance.
type ClearCreditInput struct {
	CashAmount       int64
	UPIAmount        int64
	AdvanceUseAmount int64
}

func (in *ClearCreditInput) total() int64 {
	return in.CashAmount + in.UPIAmount + in.AdvanceUseAmount
}

// validate rejects negative components, not just a non-positive sum, so a
// negative line can never hide behind a larger positive one.
func (in *ClearCreditInput) validate() error {
	if in.CashAmount < 0 || in.UPIAmount < 0 || in.AdvanceUseAmount < 0 {
		return payment.ErrInvalidAmount
	}
	if in.total() <= 0 {
		return payment.ErrInvalidAmount
	}
	return nil
}

// ClearCredit collects payment against a customer's credit tab. The ledgers
// are recomputed from the log inside the transaction, so a clearance racing
// another writer is validated against the committed balance, not a stale
// cache.
func (s *CustomerService) ClearCredit(ctx context.Context, customerID uuid.UUID, input *ClearCreditInput) (*Statement, error) {
	if _, err := s.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, paymentError(err)
	}

	err := s.uow.InTx(ctx, func(r repository.Repositories) error {
		credit, advance, err := customerLedgers(ctx, r.Settlements, customerID)
		if err != nil {
			return err
		}

		if err := credit.CanClear(input.total()); err != nil {
			return paymentError(err)
		}
		if input.AdvanceUseAmount > 0 {
			if advance, err = advance.Use(input.AdvanceUseAmount); err != nil {
				return paymentError(err)
			}
		}
		if credit, err = credit.ApplyClearance(input.total()); err != nil {
			return paymentError(err)
		}

		cid := customerID
		var rows []entity.Settlement
		appendRow := func(kind enum.PaymentKind, amount int64) {
			if amount <= 0 {
				return
			}
			rows = append(rows, entity.Settlement{
				CustomerID: &cid,
				Context:    enum.SettlementContextCreditClearance,
				Kind:       kind,
				Amount:     amount,
			})
		}
		appendRow(enum.PaymentKindCash, input.CashAmount)
		appendRow(enum.PaymentKindUPI, input.UPIAmount)
		appendRow(enum.PaymentKindAdvanceUse, input.AdvanceUseAmount)

		if err := r.Settlements.AppendAll(ctx, rows); err != nil {
			return err
		}
		return r.Customers.UpdateBalances(ctx, customerID, credit.Balance(), advance.Balance())
	})
	if err != nil {
		return nil, err
	}

	return s.GetStatement(ctx, customerID)
}

// DepositAdvanceInput represents an advance top-up
type DepositAdvanceInput struct {
	Amount int64
	Kind   enum.PaymentKind // AdvanceAddCash or AdvanceAddUPI
}

// DepositAdvance records a customer pre-payment
func (s *CustomerService) DepositAdvance(ctx context.Context, customerID uuid.UUID, input *DepositAdvanceInput) (*Statement, error) {
	if _, err := s.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	err := s.uow.InTx(ctx, func(r repository.Repositories) error {
		credit, advance, err := customerLedgers(ctx, r.Settlements, customerID)
		if err != nil {
			return err
		}

		if advance, err = advance.Deposit(input.Amount, input.Kind); err != nil {
			return paymentError(err)
		}

		cid := customerID
		row := entity.Settlement{
			CustomerID: &cid,
			Context:    enum.SettlementContextAdvanceTopUp,
			Kind:       input.Kind,
			Amount:     input.Amount,
		}
		if err := r.Settlements.Append(ctx, &row); err != nil {
			return err
		}
		return r.Customers.UpdateBalances(ctx, customerID, credit.Balance(), advance.Balance())
	})
	if err != nil {
		return nil, err
	}

	return s.GetStatement(ctx, customerID)
}
