package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"atelierdesk/internal/core/apperror"
	"atelierdesk/internal/core/id"
	"atelierdesk/internal/domain/catalogs/product"
	"atelierdesk/internal/domain/registers/stock"
	"atelierdesk/internal/infrastructure/http/v1/dto"
)

// StockHandler handles HTTP requests for the stock register.
type StockHandler struct {
	*BaseHandler
	service  *stock.Service
	products product.Repository
}

// NewStockHandler creates a new stock register handler.
func NewStockHandler(base *BaseHandler, service *stock.Service, products product.Repository) *StockHandler {
	return &StockHandler{
		BaseHandler: base,
		service:     service,
		products:    products,
	}
}

// GetMovements handles GET /registers/stock/movements
func (h *StockHandler) GetMovements(c *gin.Context) {
	ctx := c.Request.Context()

	productIDStr := c.Query("productId")
	if productIDStr == "" {
		h.Error(c, apperror.NewValidation("productId is required"))
		return
	}

	productID, err := id.Parse(productIDStr)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}

	filter := stock.MovementFilter{
		Limit:  h.ParseIntQuery(c, "limit", 100),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}

	if srcStr := c.Query("source"); srcStr != "" {
		src := stock.Source(srcStr)
		filter.Source = &src
	}

	if fromStr := c.Query("fromDate"); fromStr != "" {
		if parsed, err := time.Parse(time.RFC3339, fromStr); err == nil {
			filter.FromDate = &parsed
		}
	}

	if toStr := c.Query("toDate"); toStr != "" {
		if parsed, err := time.Parse(time.RFC3339, toStr); err == nil {
			filter.ToDate = &parsed
		}
	}

	movements, err := h.service.History(ctx, productID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.MovementResponse, len(movements))
	for i, m := range movements {
		items[i] = dto.FromMovement(m)
	}

	c.JSON(http.StatusOK, dto.MovementListResponse{Items: items})
}

// GetDerivedStock handles GET /registers/stock/derived/:productId
// Recomputes stock from the movement history and reports it next to the
// stored value. The clamp-at-zero on writes means the two can diverge.
func (h *StockHandler) GetDerivedStock(c *gin.Context) {
	ctx := c.Request.Context()

	productID, err := id.Parse(c.Param("productId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid productId format"))
		return
	}

	derived, err := h.service.DerivedStock(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	p, err := h.products.GetByID(ctx, productID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DerivedStockResponse{
		ProductID:    productID.String(),
		DerivedStock: derived,
		StoredStock:  p.Stock,
		InSync:       derived == p.Stock,
	})
}

// RegisterRoutes registers stock register routes.
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/movements", h.GetMovements)
	rg.GET("/derived/:productId", h.GetDerivedStock)
}
