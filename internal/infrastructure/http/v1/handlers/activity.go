package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"atelierdesk/internal/core/apperror"
	"atelierdesk/internal/core/id"
	"atelierdesk/internal/domain/documents/activity"
	"atelierdesk/internal/infrastructure/http/v1/dto"
)

// ActivityHandler handles HTTP requests for the activity journal.
type ActivityHandler struct {
	*BaseHandler
	service *activity.Service
}

// NewActivityHandler creates a new journal handler.
func NewActivityHandler(base *BaseHandler, service *activity.Service) *ActivityHandler {
	return &ActivityHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /journal/activities
// The journal is append-only; there is no update or delete.
func (h *ActivityHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ActivityFormRequest
	if !h.BindJSON(c, &req) {
		return
	}

	a, err := h.service.CreateFromForm(ctx, req.ToForm())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromActivity(a))
}

// Get handles GET /journal/activities/:id
func (h *ActivityHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	activityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	a, err := h.service.GetByID(ctx, activityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromActivity(a))
}

// List handles GET /journal/activities
func (h *ActivityHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := activity.ListFilter{
		OrderBy: c.Query("orderBy"),
		Limit:   h.ParseIntQuery(c, "limit", 50),
		Offset:  h.ParseIntQuery(c, "offset", 0),
	}

	for _, t := range c.QueryArray("type") {
		if !activity.IsValidType(activity.Type(t)) {
			h.Error(c, apperror.NewValidation("invalid activity type").
				WithDetail("field", "type").
				WithDetail("value", t))
			return
		}
		filter.Types = append(filter.Types, activity.Type(t))
	}

	if pStr := c.Query("productId"); pStr != "" {
		productID, err := id.Parse(pStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid productId format"))
			return
		}
		filter.ProductID = &productID
	}

	if fromStr := c.Query("fromDate"); fromStr != "" {
		parsed, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid fromDate format, expected RFC3339"))
			return
		}
		filter.FromDate = &parsed
	}

	if toStr := c.Query("toDate"); toStr != "" {
		parsed, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid toDate format, expected RFC3339"))
			return
		}
		filter.ToDate = &parsed
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, a := range result.Items {
		items[i] = dto.FromActivity(a)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// RegisterRoutes registers journal routes.
func (h *ActivityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET(":id", h.Get)
}
