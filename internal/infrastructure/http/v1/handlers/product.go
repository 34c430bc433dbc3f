package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atelierdesk/internal/core/types"
	"atelierdesk/internal/domain"
	"atelierdesk/internal/domain/catalogs/product"
	"atelierdesk/internal/infrastructure/http/v1/dto"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	*CatalogHandler[*product.Product, dto.CreateProductRequest, dto.UpdateProductRequest]
	service *product.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(base *BaseHandler, service *product.Service) *ProductHandler {
	catalogHandler := NewCatalogHandler(base, CatalogHandlerConfig[*product.Product, dto.CreateProductRequest, dto.UpdateProductRequest]{
		Service:    service.CatalogService,
		EntityName: "product",
		MapCreateDTO: func(req dto.CreateProductRequest) *product.Product {
			return req.ToProduct()
		},
		MapUpdateDTO: func(req dto.UpdateProductRequest, existing *product.Product) *product.Product {
			return req.ApplyTo(existing)
		},
		MapToDTO: func(p *product.Product) any {
			return dto.FromProduct(p)
		},
	})

	return &ProductHandler{
		CatalogHandler: catalogHandler,
		service:        service,
	}
}

// CreateFromForm handles POST /catalog/products/form
// Accepts the raw submitted form with string-typed numeric fields.
func (h *ProductHandler) CreateFromForm(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ProductFormRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.service.CreateFromForm(ctx, req.ToForm())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromProduct(p))
}

// LowStock handles GET /catalog/products/low-stock
// Lists products with stock at or below the threshold (default 1).
func (h *ProductHandler) LowStock(c *gin.Context) {
	ctx := c.Request.Context()

	threshold := types.NewQuantityFromInt(int64(h.ParseIntQuery(c, "threshold", 1)))

	filter := domain.DefaultListFilter()
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)

	result, err := h.service.FindLowStock(ctx, threshold, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, p := range result.Items {
		items[i] = dto.FromProduct(p)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
