package request

import "github.com/google/uuid"

// KOTItemRequest is one line on a new kitchen order ticket
type KOTItemRequest struct {
	MenuItemID uuid.UUID `json:"menu_item_id" binding:"required"`
	Quantity   int       `json:"quantity" binding:"required,gt=0"`
	Note       *string   `json:"note" binding:"omitempty,max=255"`
}

// CreateKOTRequest represents a ticket creation request
type CreateKOTRequest struct {
	CustomerID *uuid.UUID       `json:"customer_id"`
	TableNo    *string          `json:"table_no" binding:"omitempty,max=20"`
	Items      []KOTItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateKOTStatusRequest represents a ticket status change
type UpdateKOTStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Pending Served Cancel"`
}

// CreateBillRequest represents an open-bill request
type CreateBillRequest struct {
	CustomerID *uuid.UUID  `json:"customer_id"`
	KOTIDs     []uuid.UUID `json:"kot_ids" binding:"required,min=1"`
}

// SplitComponentRequest is one payment line of a settlement request.
// Amount is major units (rupees); the handler converts to paise.
type SplitComponentRequest struct {
	Kind   string  `json:"kind" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// SettleBillRequest represents a bill settlement request
type SettleBillRequest struct {
	Components []SplitComponentRequest `json:"components" binding:"required,min=1,dive"`
}

// BillFilterRequest represents bill list filter parameters
type BillFilterRequest struct {
	Status     string `form:"status"`
	CustomerID string `form:"customer_id"`
	From       string `form:"from"` // YYYY-MM-DD
	To         string `form:"to"`   // YYYY-MM-DD
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
