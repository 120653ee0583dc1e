package request

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	Name    string  `json:"name" binding:"required,min=2,max=255"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Address *string `json:"address"`
}

// UpdateCustomerRequest represents a customer update request
type UpdateCustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,min=2,max=255"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Address *string `json:"address"`
}

// ClearCreditRequest represents a credit clearance collection. Amounts are
// major units (rupees); the handler converts to paise.
type ClearCreditRequest struct {
	CashAmount       float64 `json:"cash_amount" binding:"min=0"`
	UPIAmount        float64 `json:"upi_amount" binding:"min=0"`
	AdvanceUseAmount float64 `json:"advance_use_amount" binding:"min=0"`
}

// DepositAdvanceRequest represents an advance top-up request
type DepositAdvanceRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Method string  `json:"method" binding:"required,oneof=cash upi"`
}
