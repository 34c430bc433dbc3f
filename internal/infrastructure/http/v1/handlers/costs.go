package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"atelierdesk/internal/core/apperror"
	"atelierdesk/internal/core/types"
	"atelierdesk/internal/domain/costs"
	"atelierdesk/internal/infrastructure/http/v1/dto"
)

// CostsHandler handles HTTP requests for monthly fixed costs.
type CostsHandler struct {
	*BaseHandler
	service *costs.Service
}

// NewCostsHandler creates a new monthly cost handler.
func NewCostsHandler(base *BaseHandler, service *costs.Service) *CostsHandler {
	return &CostsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Upsert handles PUT /costs/monthly
// One row per month; a second submission for the same month replaces it.
func (h *CostsHandler) Upsert(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpsertMonthlyCostRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cost := req.ToMonthlyCost()
	if err := h.service.Upsert(ctx, cost); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromMonthlyCost(cost))
}

// GetByMonth handles GET /costs/monthly/:month
func (h *CostsHandler) GetByMonth(c *gin.Context) {
	ctx := c.Request.Context()

	month, err := types.ParseMonthKey(c.Param("month"))
	if err != nil {
		h.Error(c, apperror.NewValidation("month must be a valid YYYY-MM key").
			WithDetail("field", "month").
			WithDetail("value", c.Param("month")))
		return
	}

	cost, err := h.service.GetByMonth(ctx, month)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromMonthlyCost(cost))
}

// ListRange handles GET /costs/monthly?startDate=...&endDate=...
// Months without a stored row are absent from the result.
func (h *CostsHandler) ListRange(c *gin.Context) {
	ctx := c.Request.Context()

	startStr := c.Query("startDate")
	endStr := c.Query("endDate")
	if startStr == "" || endStr == "" {
		h.Error(c, apperror.NewValidation("startDate and endDate are required"))
		return
	}

	start, err := parseDateParam(startStr)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid startDate format"))
		return
	}
	end, err := parseDateParam(endStr)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid endDate format"))
		return
	}

	rows, err := h.service.ListInRange(ctx, start, end)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.MonthlyCostResponse, len(rows))
	for i, row := range rows {
		items[i] = dto.FromMonthlyCost(row)
	}

	c.JSON(http.StatusOK, dto.MonthlyCostListResponse{Items: items})
}

// RegisterRoutes registers monthly cost routes.
func (h *CostsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.ListRange)
	rg.PUT("", h.Upsert)
	rg.GET("/:month", h.GetByMonth)
}

// parseDateParam accepts RFC3339 timestamps and bare dates.
func parseDateParam(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
