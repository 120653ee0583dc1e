package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tillbook/tillbook-api/internal/application/service"
	"github.com/tillbook/tillbook-api/internal/domain/enum"
	"github.com/tillbook/tillbook-api/internal/presentation/http/dto/request"
	"github.com/tillbook/tillbook-api/internal/presentation/http/dto/response"
	"github.com/tillbook/tillbook-api/pkg/pagination"
)

// KOTHandler handles kitchen order ticket HTTP requests
type KOTHandler struct {
	billingService *service.BillingService
	printerService *service.PrinterService
}

// NewKOTHandler creates a new ticket handler
func NewKOTHandler(billingService *service.BillingService, printerService *service.PrinterService) *KOTHandler {
	return &KOTHandler{billingService: billingService, printerService: printerService}
}

// Create handles creating a kitchen order ticket
func (h *KOTHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateKOTRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]service.KOTItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, service.KOTItemInput{
			MenuItemID: it.MenuItemID,
			Quantity:   it.Quantity,
			Note:       it.Note,
		})
	}

	kot, err := h.billingService.CreateKOT(c.Request.Context(), &service.CreateKOTInput{
		UserID:     *userID,
		CustomerID: req.CustomerID,
		TableNo:    req.TableNo,
		Items:      items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "KOT created successfully", kot)
}

// List handles listing tickets
func (h *KOTHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	var status *enum.KOTStatus
	if s := c.Query("status"); s != "" {
		parsed, ok := enum.ParseKOTStatus(s)
		if !ok {
			response.BadRequest(c, "Invalid KOT status")
			return
		}
		status = &parsed
	}

	result, err := h.billingService.ListKOTs(c.Request.Context(), params, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "KOTs retrieved successfully", result)
}

// ListUnbilled handles listing tickets not yet attached to a bill
func (h *KOTHandler) ListUnbilled(c *gin.Context) {
	var tableNo *string
	if t := c.Query("table_no"); t != "" {
		tableNo = &t
	}

	kots, err := h.billingService.ListUnbilledKOTs(c.Request.Context(), tableNo)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Unbilled KOTs retrieved successfully", kots)
}

// Get handles getting a single ticket
func (h *KOTHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid KOT ID")
		return
	}

	kot, err := h.billingService.GetKOT(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "KOT retrieved successfully", kot)
}

// UpdateStatus handles changing a ticket's status
func (h *KOTHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid KOT ID")
		return
	}

	var req request.UpdateKOTStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	status, ok := enum.ParseKOTStatus(req.Status)
	if !ok {
		response.BadRequest(c, "Invalid KOT status")
		return
	}

	kot, err := h.billingService.UpdateKOTStatus(c.Request.Context(), id, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "KOT status updated successfully", kot)
}

// Print handles printing a kitchen copy of a ticket
func (h *KOTHandler) Print(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid KOT ID")
		return
	}

	if err := h.printerService.PrintKOT(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "KOT sent to printer", nil)
}
