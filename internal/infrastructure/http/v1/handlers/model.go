package handlers

import (
	"atelierdesk/internal/domain/catalogs/product"
	"atelierdesk/internal/infrastructure/http/v1/dto"
)

// ModelHandler handles HTTP requests for product models.
type ModelHandler struct {
	*CatalogHandler[*product.Model, dto.CreateModelRequest, dto.UpdateModelRequest]
}

// NewModelHandler creates a new model handler.
func NewModelHandler(base *BaseHandler, service *product.ModelService) *ModelHandler {
	catalogHandler := NewCatalogHandler(base, CatalogHandlerConfig[*product.Model, dto.CreateModelRequest, dto.UpdateModelRequest]{
		Service:    service.CatalogService,
		EntityName: "product model",
		MapCreateDTO: func(req dto.CreateModelRequest) *product.Model {
			return req.ToModel()
		},
		MapUpdateDTO: func(req dto.UpdateModelRequest, existing *product.Model) *product.Model {
			return req.ApplyTo(existing)
		},
		MapToDTO: func(m *product.Model) any {
			return dto.FromModel(m)
		},
	})

	return &ModelHandler{CatalogHandler: catalogHandler}
}
