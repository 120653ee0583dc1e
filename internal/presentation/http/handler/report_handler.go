package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tillbook/tillbook-api/internal/application/service"
	"github.com/tillbook/tillbook-api/internal/presentation/http/dto/response"
)

// ReportHandler handles reporting HTTP requests
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Summary handles the period summary report. Defaults to today when no
// range is given; "to" is treated as inclusive and extended to midnight.
func (h *ReportHandler) Summary(c *gin.Context) {
	from, err := parseDate(c.Query("from"))
	if err != nil {
		response.BadRequest(c, "Invalid from date")
		return
	}
	to, err := parseDate(c.Query("to"))
	if err != nil {
		response.BadRequest(c, "Invalid to date")
		return
	}

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)
	if from != nil {
		start = *from
	}
	if to != nil {
		end = to.AddDate(0, 0, 1)
	}
	if !end.After(start) {
		response.BadRequest(c, "Date range is empty")
		return
	}

	summary, err := h.reportService.GetSummary(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Summary retrieved successfully", summary)
}

// Dues handles listing customers with outstanding credit or held advances
func (h *ReportHandler) Dues(c *gin.Context) {
	dues, err := h.reportService.GetDues(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dues retrieved successfully", dues)
}
