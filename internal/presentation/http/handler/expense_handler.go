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

// ExpenseHandler handles expense HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// Create handles recording an expense with its payment split
func (h *ExpenseHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	amount, err := money.FromFloat(req.Amount)
	if err != nil {
		response.BadRequest(c, "Invalid amount")
		return
	}

	components := make([]service.SplitComponentInput, 0, len(req.Components))
	for _, comp := range req.Components {
		kind, ok := enum.ParsePaymentKind(comp.Kind)
		if !ok {
			response.BadRequest(c, "Unknown payment kind: "+comp.Kind)
			return
		}
		paise, err := money.FromFloat(comp.Amount)
		if err != nil {
			response.BadRequest(c, "Invalid amount for "+comp.Kind)
			return
		}
		components = append(components, service.SplitComponentInput{
			Kind:   kind,
			Amount: paise,
		})
	}

	view, err := h.expenseService.CreateExpense(c.Request.Context(), &service.CreateExpenseInput{
		UserID:     *userID,
		Category:   req.Category,
		Payee:      req.Payee,
		Note:       req.Note,
		Amount:     amount,
		Components: components,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Expense recorded successfully", view)
}

// List handles listing expenses
func (h *ExpenseHandler) List(c *gin.Context) {
	var filter request.ExpenseFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid filter parameters")
		return
	}

	params := &pagination.PaginationParams{
		Page:    filter.Page,
		PerPage: filter.PerPage,
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

	result, err := h.expenseService.ListExpenses(c.Request.Context(), params, filter.Category, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Expenses retrieved successfully", result)
}

// Categories handles listing distinct expense categories
func (h *ExpenseHandler) Categories(c *gin.Context) {
	categories, err := h.expenseService.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Categories retrieved successfully", categories)
}

// Get handles getting a single expense with its payment breakdown
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid expense ID")
		return
	}

	view, err := h.expenseService.GetExpense(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense retrieved successfully", view)
}

// ClearCredit handles paying down the credit owed on an expense
func (h *ExpenseHandler) ClearCredit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid expense ID")
		return
	}

	var req request.ClearExpenseCreditRequest
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

	view, err := h.expenseService.ClearExpenseCredit(c.Request.Context(), id, &service.ClearExpenseCreditInput{
		CashAmount: cash,
		UPIAmount:  upi,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense credit cleared successfully", view)
}
