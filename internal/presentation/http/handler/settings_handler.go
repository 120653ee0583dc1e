package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tillbook/tillbook-api/internal/application/service"
	"github.com/tillbook/tillbook-api/internal/presentation/http/dto/request"
	"github.com/tillbook/tillbook-api/internal/presentation/http/dto/response"
	"github.com/tillbook/tillbook-api/pkg/money"
)

// SettingsHandler handles business settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get handles retrieving business settings
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", settings)
}

// Update handles a partial business settings update
func (h *SettingsHandler) Update(c *gin.Context) {
	var req request.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.UpdateSettingsInput{
		ShopName:            req.ShopName,
		Address:             req.Address,
		Phone:               req.Phone,
		Currency:            req.Currency,
		Timezone:            req.Timezone,
		GSTIN:               req.GSTIN,
		TaxPercent:          req.TaxPercent,
		ReceiptHeader:       req.ReceiptHeader,
		ReceiptFooter:       req.ReceiptFooter,
		AllowCustomerCredit: req.AllowCustomerCredit,
	}
	if req.CreditLimit != nil {
		limit, err := money.FromFloat(*req.CreditLimit)
		if err != nil {
			response.BadRequest(c, "Invalid credit limit")
			return
		}
		input.CreditLimit = &limit
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", settings)
}
