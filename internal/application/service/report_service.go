package service

import (
	"context"
	"time"

	"github.com/tillbook/tillbook-api/internal/domain/entity"
	"github.com/tillbook/tillbook-api/internal/domain/enum"
	"github.com/tillbook/tillbook-api/internal/domain/repository"
	"github.com/tillbook/tillbook-api/pkg/money"
)

// ReportService builds summaries over the settlement log
type ReportService struct {
	settlementRepo repository.SettlementRepository
	customerRepo   repository.CustomerRepository
}

// NewReportService creates a new report service
func NewReportService(
	settlementRepo repository.SettlementRepository,
	customerRepo repository.CustomerRepository,
) *ReportService {
	return &ReportService{
		settlementRepo: settlementRepo,
		customerRepo:   customerRepo,
	}
}

// Summary is the till summary for one period. Every figure is derived from
// the settlement log, not from cached columns.
type Summary struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`

	Sales            string `json:"sales"`              // settled bill components
	CashCollected    string `json:"cash_collected"`     // cash across all contexts
	UPICollected     string `json:"upi_collected"`      // upi across all contexts
	CreditExtended   string `json:"credit_extended"`    // new credit accrued
	CreditRecovered  string `json:"credit_recovered"`   // clearances received
	AdvanceDeposited string `json:"advance_deposited"`  // top-ups taken
	AdvanceConsumed  string `json:"advance_consumed"`   // advance applied to bills
	Expenses         string `json:"expenses"`           // expense components paid out
	CreditOwed       string `json:"credit_outstanding"` // customers' open tabs now
	AdvanceHeld      string `json:"advance_held"`       // customers' advances now
}

// GetSummary computes the summary for [from, to)
func (s *ReportService) GetSummary(ctx context.Context, from, to time.Time) (*Summary, error) {
	rows, err := s.settlementRepo.ListByPeriod(ctx, nil, from, to)
	if err != nil {
		return nil, err
	}

	var sales, cash, upi, creditOut, creditIn, advIn, advUsed, expenses int64
	for _, row := range rows {
		switch row.Context {
		case enum.SettlementContextBill:
			sales += row.Amount
		case enum.SettlementContextExpense:
			if row.Kind != enum.PaymentKindCredit {
				expenses += row.Amount
			}
		case enum.SettlementContextCreditClearance:
			creditIn += row.Amount
		}

		switch row.Kind {
		case enum.PaymentKindCash:
			if row.Context != enum.SettlementContextExpense {
				cash += row.Amount
			}
		case enum.PaymentKindUPI:
			if row.Context != enum.SettlementContextExpense {
				upi += row.Amount
			}
		case enum.PaymentKindCredit:
			if row.Context != enum.SettlementContextCreditClearance {
				creditOut += row.Amount
			}
		case enum.PaymentKindAdvanceUse:
			advUsed += row.Amount
		case enum.PaymentKindAdvanceAddCash, enum.PaymentKindAdvanceAddUPI:
			advIn += row.Amount
			if row.Kind == enum.PaymentKindAdvanceAddCash {
				cash += row.Amount
			} else {
				upi += row.Amount
			}
		}
	}

	var owed, held int64
	withBalance, err := s.customerRepo.ListWithBalance(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range withBalance {
		owed += c.CreditBalance
		held += c.AdvanceBalance
	}

	return &Summary{
		From:             from,
		To:               to,
		Sales:            money.Format(sales),
		CashCollected:    money.Format(cash),
		UPICollected:     money.Format(upi),
		CreditExtended:   money.Format(creditOut),
		CreditRecovered:  money.Format(creditIn),
		AdvanceDeposited: money.Format(advIn),
		AdvanceConsumed:  money.Format(advUsed),
		Expenses:         money.Format(expenses),
		CreditOwed:       money.Format(owed),
		AdvanceHeld:      money.Format(held),
	}, nil
}

// DuesEntry is one customer in the outstanding dues view
type DuesEntry struct {
	Customer entity.Customer `json:"customer"`
	Credit   string          `json:"credit_balance"`
	Advance  string          `json:"advance_balance"`
}

// GetDues lists customers carrying open tabs or advances
func (s *ReportService) GetDues(ctx context.Context) ([]DuesEntry, error) {
	customers, err := s.customerRepo.ListWithBalance(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]DuesEntry, 0, len(customers))
	for _, c := range customers {
		entries = append(entries, DuesEntry{
			Customer: c,
			Credit:   money.Format(c.CreditBalance),
			Advance:  money.Format(c.AdvanceBalance),
		})
	}
	return entries, nil
}
