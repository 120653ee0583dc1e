package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tillbook/tillbook-api/internal/application/service"
	"github.com/tillbook/tillbook-api/internal/domain/enum"
	"github.com/tillbook/tillbook-api/internal/presentation/http/dto/request"
	"github.com/tillbook/tillbook-api/internal/presentation/http/dto/response"
	"github.com/tillbook/tillbook-api/pkg/money"
	"github.com/tillbook/tillbook-api/pkg/pagination"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List handles listing customers
func (h *CustomerHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	search := c.Query("search")

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	result, err := h.customerService.ListCustomers(c.Request.Context(), params, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Customers retrieved successfully", result)
}

// Create handles creating a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), &service.CreateCustomerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// Get handles getting a single customer
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// Update handles updating a customer
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req request.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), id, &service.UpdateCustomerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully", customer)
}

// Delete handles deleting a customer
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer deleted successfully", nil)
}

// Statement handles retrieving a customer's settlement history and balances
func (h *CustomerHandler) Statement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	statement, err := h.customerService.GetStatement(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Statement retrieved successfully", statement)
}

// CreditLedger handles retrieving a customer's recent credit activity
func (h *CustomerHandler) CreditLedger(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	ledger, err := h.customerService.GetCreditLedger(c.Request.Context(), id, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Credit ledger retrieved successfully", ledger)
}

// AdvanceLedger handles retrieving a customer's recent advance activity
func (h *CustomerHandler) AdvanceLedger(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	ledger, err := h.customerService.GetAdvanceLedger(c.Request.Context(), id, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Advance ledger retrieved successfully", ledger)
}

// ClearCredit handles collecting payment against a customer's credit tab
func (h *CustomerHandler) ClearCredit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req request.ClearCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cash, err := money.FromFloat(req.CashAmount)
	if err != nil {
		response.BadRequest(c, "Invalid cash amount")
		return
	}
	upi, err := money.FromFloat(req.UPIAmount)
	if err != nil {
		response.BadRequest(c, "Invalid UPI amount")
		return
	}
	advance, err := money.FromFloat(req.AdvanceUseAmount)
	if err != nil {
		response.BadRequest(c, "Invalid advance amount")
		return
	}

	statement, err := h.customerService.ClearCredit(c.Request.Context(), id, &service.ClearCreditInput{
		CashAmount:       cash,
		UPIAmount:        upi,
		AdvanceUseAmount: advance,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Credit cleared successfully", statement)
}

// DepositAdvance handles recording a customer pre-payment
func (h *CustomerHandler) DepositAdvance(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	var req request.DepositAdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	amount, err := money.FromFloat(req.Amount)
	if err != nil {
		response.BadRequest(c, "Invalid amount")
		return
	}

	kind := enum.PaymentKindAdvanceAddCash
	if req.Method == "upi" {
		kind = enum.PaymentKindAdvanceAddUPI
	}

	statement, err := h.customerService.DepositAdvance(c.Request.Context(), id, &service.DepositAdvanceInput{
		Amount: amount,
		Kind:   kind,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Advance deposited successfully", statement)
}
