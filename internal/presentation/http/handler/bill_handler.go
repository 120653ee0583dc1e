package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tillbook/tillbook-api/internal/application/service"
	"github.com/tillbook/tillbook-api/internal/domain/enum"
	"github.com/tillbook/tillbook-api/internal/presentation/http/dto/request"
	"github.com/tillbook/tillbook-api/internal/presentation/http/dto/response"
	"github.com/tillbook/tillbook-api/pkg/money"
	"github.com/tillbook/tillbook-api/pkg/pagination"
)

// BillHandler handles bill HTTP requests
type BillHandler struct {
	billingService *service.BillingService
	printerService *service.PrinterService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billingService *service.BillingService, printerService *service.PrinterService) *BillHandler {
	return &BillHandler{billingService: billingService, printerService: printerService}
}

// Create handles opening a bill over unbilled tickets
func (h *BillHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	bill, err := h.billingService.CreateBill(c.Request.Context(), &service.CreateBillInput{
		UserID:     *userID,
		CustomerID: req.CustomerID,
		KOTIDs:     req.KOTIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bill created successfully", bill)
}

// List handles listing bills
func (h *BillHandler) List(c *gin.Context) {
	var filter request.BillFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid filter parameters")
		return
	}

	params := &pagination.PaginationParams{
		Page:    filter.Page,
		PerPage: filter.PerPage,
	}

	var status *enum.BillStatus
	if filter.Status != "" {
		parsed, ok := enum.ParseBillStatus(filter.Status)
		if !ok {
			response.BadRequest(c, "Invalid bill status")
			return
		}
		status = &parsed
	}

	var customerID *uuid.UUID
	if filter.CustomerID != "" {
		id, err := uuid.Parse(filter.CustomerID)
		if err != nil {
			response.BadRequest(c, "Invalid customer ID")
			return
		}
		customerID = &id
	}

	from, err := parseDate(filter.From)
	if err != nil {
		response.BadRequest(c, "Invalid from date")
		return
	}
	to, err := parseDate(filter.To)
	if err != nil {
		response.BadRequest(c, "Invalid to date")
		return
	}

	result, err := h.billingService.ListBills(c.Request.Context(), params, status, customerID, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Bills retrieved successfully", result)
}

// Get handles getting a single bill
func (h *BillHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	bill, err := h.billingService.GetBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill retrieved successfully", bill)
}

// Settle handles settling an open bill with a split payment
func (h *BillHandler) Settle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	var req request.SettleBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	components := make([]service.SplitComponentInput, 0, len(req.Components))
	for _, comp := range req.Components {
		kind, ok := enum.ParsePaymentKind(comp.Kind)
		if !ok {
			response.BadRequest(c, "Unknown payment kind: "+comp.Kind)
			return
		}
		amount, err := money.FromFloat(comp.Amount)
		if err != nil {
			response.BadRequest(c, "Invalid amount for "+comp.Kind)
			return
		}
		components = append(components, service.SplitComponentInput{
			Kind:   kind,
			Amount: amount,
		})
	}

	bill, err := h.billingService.SettleBill(c.Request.Context(), id, &service.SettleBillInput{
		Components: components,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill settled successfully", bill)
}

// Cancel handles cancelling an open bill, releasing its tickets
func (h *BillHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	bill, err := h.billingService.CancelBill(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill cancelled successfully", bill)
}

// Print handles printing a bill receipt
func (h *BillHandler) Print(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid bill ID")
		return
	}

	receipt, err := h.printerService.PrintBillReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", receipt)
}
