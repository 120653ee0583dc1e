package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tillbook/tillbook-api/internal/application/service"
	"github.com/tillbook/tillbook-api/internal/domain/enum"
	"github.com/tillbook/tillbook-api/internal/presentation/http/dto/request"
	"github.com/tillbook/tillbook-api/internal/presentation/http/dto/response"
)

// AuditHandler handles ledger audit HTTP requests
type AuditHandler struct {
	auditService *service.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// Consistency handles checking cached balances against the settlement log
func (h *AuditHandler) Consistency(c *gin.Context) {
	report, err := h.auditService.ValidateConsistency(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Consistency check complete", report)
}

// Reconcile handles rewriting cached balances from the settlement log
func (h *AuditHandler) Reconcile(c *gin.Context) {
	report, err := h.auditService.Reconcile(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Reconciliation complete", report)
}

// MigrateModes handles normalizing legacy payment-mode labels. The body
// may carry extra label-to-kind mappings for labels the parser does not
// know.
func (h *AuditHandler) MigrateModes(c *gin.Context) {
	var req request.MigrateModesRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body")
			return
		}
	}

	mapping := make(map[string]enum.PaymentKind, len(req.Mapping))
	for label, kindName := range req.Mapping {
		kind, ok := enum.ParsePaymentKind(kindName)
		if !ok {
			response.BadRequest(c, "Unknown payment kind: "+kindName)
			return
		}
		mapping[label] = kind
	}

	report, err := h.auditService.MigrateLegacyModes(c.Request.Context(), mapping)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Mode migration complete", report)
}
