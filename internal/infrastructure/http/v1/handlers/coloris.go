package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atelierdesk/internal/core/apperror"
	"atelierdesk/internal/core/id"
	"atelierdesk/internal/domain/catalogs/product"
	"atelierdesk/internal/infrastructure/http/v1/dto"
)

// ColorisHandler handles HTTP requests for colorways.
type ColorisHandler struct {
	*CatalogHandler[*product.Coloris, dto.CreateColorisRequest, dto.UpdateColorisRequest]
	service *product.ColorisService
}

// NewColorisHandler creates a new coloris handler.
func NewColorisHandler(base *BaseHandler, service *product.ColorisService) *ColorisHandler {
	catalogHandler := NewCatalogHandler(base, CatalogHandlerConfig[*product.Coloris, dto.CreateColorisRequest, dto.UpdateColorisRequest]{
		Service:    service.CatalogService,
		EntityName: "coloris",
		MapCreateDTO: func(req dto.CreateColorisRequest) *product.Coloris {
			return req.ToColoris()
		},
		MapUpdateDTO: func(req dto.UpdateColorisRequest, existing *product.Coloris) *product.Coloris {
			return req.ApplyTo(existing)
		},
		MapToDTO: func(c *product.Coloris) any {
			return dto.FromColoris(c)
		},
	})

	return &ColorisHandler{
		CatalogHandler: catalogHandler,
		service:        service,
	}
}

// ListByModel handles GET /catalog/models/:id/colorways
func (h *ColorisHandler) ListByModel(c *gin.Context) {
	ctx := c.Request.Context()

	modelID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	colorways, err := h.service.ListByModel(ctx, modelID)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.ColorisResponse, len(colorways))
	for i, cw := range colorways {
		items[i] = dto.FromColoris(cw)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}
