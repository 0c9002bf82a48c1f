package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	reportapp "github.com/dispensary/backend/internal/application/report"
)

// ReportHandler handles read-only inventory reporting endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.InventoryReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.InventoryReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes registers the reporting routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports/inventory")
	{
		reports.GET("/stock-by-category", h.StockByCategory)
		reports.GET("/stock-status", h.StockStatus)
		reports.GET("/rotation", h.Rotation)
	}
}

// StockByCategory returns on-hand quantities grouped by product category
func (h *ReportHandler) StockByCategory(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	rows, err := h.reportService.StockByCategory(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, rows)
}

// StockStatus returns counts of products per stock classification bucket
func (h *ReportHandler) StockStatus(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	dist, err := h.reportService.StockStatusDistribution(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, dist)
}

// RotationRequest captures the optional reporting window
type RotationRequest struct {
	StartDate string `form:"start_date" binding:"omitempty"`
	EndDate   string `form:"end_date" binding:"omitempty"`
}

// Rotation returns per-type movement totals over an optional period
func (h *ReportHandler) Rotation(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req RotationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var start, end *time.Time
	if req.StartDate != "" {
		t, err := parseTimestamp(req.StartDate)
		if err != nil {
			h.BadRequest(c, "Invalid start_date, expected RFC 3339 or YYYY-MM-DD")
			return
		}
		start = &t
	}
	if req.EndDate != "" {
		t, err := parseTimestamp(req.EndDate)
		if err != nil {
			h.BadRequest(c, "Invalid end_date, expected RFC 3339 or YYYY-MM-DD")
			return
		}
		end = &t
	}

	summary, err := h.reportService.RotationSummary(c.Request.Context(), tenantID, start, end)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}
