package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"atelierdesk/internal/core/apperror"
	"atelierdesk/internal/domain/reports"
	"atelierdesk/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles HTTP requests for reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// GetRevenue handles GET /reports/revenue
func (h *ReportsHandler) GetRevenue(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RevenueReportRequest
	if !h.BindQuery(c, &req) {
		return
	}

	period := reports.Period(c.DefaultQuery("period", string(reports.PeriodMonthly)))

	start, err := parseDateParam(req.StartDate)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid startDate format"))
		return
	}
	end, err := parseDateParam(req.EndDate)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid endDate format"))
		return
	}

	report, err := h.service.Revenue(ctx, period, start, end)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetRevenueByType handles GET /reports/revenue-by-type
func (h *ReportsHandler) GetRevenueByType(c *gin.Context) {
	ctx := c.Request.Context()

	start, end, ok := h.requireRange(c)
	if !ok {
		return
	}

	rows, err := h.service.RevenueByProductType(ctx, start, end)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": rows})
}

// GetRevenueByProduct handles GET /reports/revenue-by-product
func (h *ReportsHandler) GetRevenueByProduct(c *gin.Context) {
	ctx := c.Request.Context()

	start, end, ok := h.requireRange(c)
	if !ok {
		return
	}

	rows, err := h.service.RevenueByProduct(ctx, start, end)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": rows})
}

// GetProfitsByPeriod handles GET /reports/profits-by-period
// Both date bounds are optional; without them the whole journal is used.
func (h *ReportsHandler) GetProfitsByPeriod(c *gin.Context) {
	ctx := c.Request.Context()

	period := reports.Period(c.DefaultQuery("period", string(reports.PeriodMonthly)))

	start, end, ok := h.optionalRange(c)
	if !ok {
		return
	}

	rows, err := h.service.ProfitsByPeriod(ctx, period, start, end)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": rows})
}

// GetProductMargins handles GET /reports/product-margins
func (h *ReportsHandler) GetProductMargins(c *gin.Context) {
	ctx := c.Request.Context()

	rows, err := h.service.ProductMargins(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": rows})
}

// GetStatistics handles GET /reports/statistics
func (h *ReportsHandler) GetStatistics(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.service.Statistics(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetTotalCreations handles GET /reports/total-creations
func (h *ReportsHandler) GetTotalCreations(c *gin.Context) {
	ctx := c.Request.Context()

	start, end, ok := h.optionalRange(c)
	if !ok {
		return
	}

	total, err := h.service.TotalCreations(ctx, start, end)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TotalCreationsResponse{TotalCreations: total})
}

// requireRange parses the mandatory startDate/endDate query params.
func (h *ReportsHandler) requireRange(c *gin.Context) (time.Time, time.Time, bool) {
	startStr := c.Query("startDate")
	endStr := c.Query("endDate")
	if startStr == "" || endStr == "" {
		h.Error(c, apperror.NewValidation("startDate and endDate are required"))
		return time.Time{}, time.Time{}, false
	}

	start, err := parseDateParam(startStr)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid startDate format"))
		return time.Time{}, time.Time{}, false
	}
	end, err := parseDateParam(endStr)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid endDate format"))
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// optionalRange parses startDate/endDate when present.
func (h *ReportsHandler) optionalRange(c *gin.Context) (*time.Time, *time.Time, bool) {
	var start, end *time.Time

	if startStr := c.Query("startDate"); startStr != "" {
		parsed, err := parseDateParam(startStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid startDate format"))
			return nil, nil, false
		}
		start = &parsed
	}
	if endStr := c.Query("endDate"); endStr != "" {
		parsed, err := parseDateParam(endStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid endDate format"))
			return nil, nil, false
		}
		end = &parsed
	}
	return start, end, true
}

// RegisterRoutes registers report routes.
func (h *ReportsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/revenue", h.GetRevenue)
	rg.GET("/revenue-by-type", h.GetRevenueByType)
	rg.GET("/revenue-by-product", h.GetRevenueByProduct)
	rg.GET("/profits-by-period", h.GetProfitsByPeriod)
	rg.GET("/product-margins", h.GetProductMargins)
	rg.GET("/statistics", h.GetStatistics)
	rg.GET("/total-creations", h.GetTotalCreations)
}
