package request

// ExpenseComponentRequest is one payment line of an expense.
// Amount is major units (rupees); the handler converts to paise.
type ExpenseComponentRequest struct {
	Kind   string  `json:"kind" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// CreateExpenseRequest represents an expense record request
type CreateExpenseRequest struct {
	Category   string                    `json:"category" binding:"required,max=100"`
	Payee      *string                   `json:"payee" binding:"omitempty,max=255"`
	Note       *string                   `json:"note"`
	Amount     float64                   `json:"amount" binding:"required,gt=0"`
	Components []ExpenseComponentRequest `json:"components" binding:"omitempty,dive"`
}

// ClearExpenseCreditRequest represents a payment against a pending expense
type ClearExpenseCreditRequest struct {
	CashAmount float64 `json:"cash_amount" binding:"omitempty,gte=0"`
	UPIAmount  float64 `json:"upi_amount" binding:"omitempty,gte=0"`
}

// ExpenseFilterRequest represents expense list filter parameters
type ExpenseFilterRequest struct {
	Category string `form:"category"`
	From     string `form:"from"`
	To       string `form:"to"`
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
}
