package dto

import (
	"atelierdesk/internal/core/entity"
	"atelierdesk/internal/core/id"
	"atelierdesk/internal/core/types"
	"atelierdesk/internal/domain/catalogs/product"
)

// --- Product ---

// ProductResponse is the API representation of a product.
type ProductResponse struct {
	CatalogResponse
	Representation string         `json:"representation"`
	ModelID        *string        `json:"modelId,omitempty"`
	ColorisID      *string        `json:"colorisId,omitempty"`
	LegacyType     *string        `json:"legacyType,omitempty"`
	LegacyColoris  *string        `json:"legacyColoris,omitempty"`
	UnitCost       types.Money    `json:"unitCost"`
	SalePrice      types.Money    `json:"salePrice"`
	Stock          types.Quantity `json:"stock"`
	WeightGrams    *int64         `json:"weightGrams,omitempty"`
}

// FromProduct creates ProductResponse from a product.
func FromProduct(p *product.Product) ProductResponse {
	resp := ProductResponse{
		CatalogResponse: FromCatalog(p.Catalog),
		Representation:  string(p.Representation()),
		LegacyType:      p.LegacyType,
		LegacyColoris:   p.LegacyColoris,
		UnitCost:        p.UnitCost,
		SalePrice:       p.SalePrice,
		Stock:           p.Stock,
		WeightGrams:     p.WeightGrams,
	}
	if p.ModelID != nil {
		s := p.ModelID.String()
		resp.ModelID = &s
	}
	if p.ColorisID != nil {
		s := p.ColorisID.String()
		resp.ColorisID = &s
	}
	return resp
}

// CreateProductRequest for creating products. Either the model/coloris
// reference pair or the legacy free-text pair must be present.
type CreateProductRequest struct {
	Code          string         `json:"code"`
	Name          string         `json:"name" binding:"required"`
	ModelID       *id.ModelID    `json:"modelId"`
	ColorisID     *id.ColorisID  `json:"colorisId"`
	LegacyType    *string        `json:"legacyType"`
	LegacyColoris *string        `json:"legacyColoris"`
	UnitCost      types.Money    `json:"unitCost"`
	SalePrice     types.Money    `json:"salePrice"`
	Stock         types.Quantity `json:"stock"`
	WeightGrams   *int64         `json:"weightGrams"`
}

// ToProduct maps the request to a domain product.
func (r CreateProductRequest) ToProduct() *product.Product {
	return &product.Product{
		Catalog:       entity.NewCatalog(r.Code, r.Name),
		ModelID:       r.ModelID,
		ColorisID:     r.ColorisID,
		LegacyType:    r.LegacyType,
		LegacyColoris: r.LegacyColoris,
		UnitCost:      r.UnitCost,
		SalePrice:     r.SalePrice,
		Stock:         r.Stock,
		WeightGrams:   r.WeightGrams,
	}
}

// UpdateProductRequest for updating products. Nil fields keep their
// current values; Version drives optimistic locking.
type UpdateProductRequest struct {
	Name        *string       `json:"name"`
	ModelID     *id.ModelID   `json:"modelId"`
	ColorisID   *id.ColorisID `json:"colorisId"`
	UnitCost    *types.Money  `json:"unitCost"`
	SalePrice   *types.Money  `json:"salePrice"`
	WeightGrams *int64        `json:"weightGrams"`
	Version     int           `json:"version" binding:"required,min=1"`
}

// ApplyTo maps non-nil fields onto the existing product.
func (r UpdateProductRequest) ApplyTo(p *product.Product) *product.Product {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.ModelID != nil {
		p.ModelID = r.ModelID
	}
	if r.ColorisID != nil {
		p.ColorisID = r.ColorisID
	}
	if r.UnitCost != nil {
		p.UnitCost = *r.UnitCost
	}
	if r.SalePrice != nil {
		p.SalePrice = *r.SalePrice
	}
	if r.WeightGrams != nil {
		p.WeightGrams = r.WeightGrams
	}
	p.Version = r.Version
	return p
}

// ProductFormRequest is the raw submitted product form. Numeric fields
// arrive as strings and are validated before any entity is built.
type ProductFormRequest struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	ModelID   string `json:"modelId"`
	ColorisID string `json:"colorisId"`
	UnitCost  string `json:"unitCost"`
	SalePrice string `json:"salePrice"`
	Stock     string `json:"stock"`
	Weight    string `json:"weight"`
}

// ToForm converts to the domain form.
func (r ProductFormRequest) ToForm() *product.Form {
	return &product.Form{
		Name:      r.Name,
		Type:      r.Type,
		ModelID:   r.ModelID,
		ColorisID: r.ColorisID,
		UnitCost:  r.UnitCost,
		SalePrice: r.SalePrice,
		Stock:     r.Stock,
		Weight:    r.Weight,
	}
}

// --- Product Model ---

// ModelResponse is the API representation of a product model.
type ModelResponse struct {
	CatalogResponse
	Type string `json:"type"`
}

// FromModel creates ModelResponse from a product model.
func FromModel(m *product.Model) ModelResponse {
	return ModelResponse{
		CatalogResponse: FromCatalog(m.Catalog),
		Type:            string(m.Type),
	}
}

// CreateModelRequest for creating product models.
type CreateModelRequest struct {
	Code string `json:"code"`
	Name string `json:"name" binding:"required"`
	Type string `json:"type" binding:"required"`
}

// ToModel maps the request to a domain model.
func (r CreateModelRequest) ToModel() *product.Model {
	return product.NewModel(r.Code, r.Name, product.Category(r.Type))
}

// UpdateModelRequest for updating product models.
type UpdateModelRequest struct {
	Name    *string `json:"name"`
	Type    *string `json:"type"`
	Version int     `json:"version" binding:"required,min=1"`
}

// ApplyTo maps non-nil fields onto the existing model.
func (r UpdateModelRequest) ApplyTo(m *product.Model) *product.Model {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.Type != nil {
		m.Type = product.Category(*r.Type)
	}
	m.Version = r.Version
	return m
}

// --- Coloris ---

// ColorisResponse is the API representation of a colorway.
type ColorisResponse struct {
	CatalogResponse
	ModelID string `json:"modelId"`
}

// FromColoris creates ColorisResponse from a colorway.
func FromColoris(c *product.Coloris) ColorisResponse {
	return ColorisResponse{
		CatalogResponse: FromCatalog(c.Catalog),
		ModelID:         c.ModelID.String(),
	}
}

// CreateColorisRequest for creating colorways.
type CreateColorisRequest struct {
	Code    string     `json:"code"`
	Name    string     `json:"name" binding:"required"`
	ModelID id.ModelID `json:"modelId" binding:"required"`
}

// ToColoris maps the request to a domain colorway.
func (r CreateColorisRequest) ToColoris() *product.Coloris {
	return product.NewColoris(r.Code, r.Name, r.ModelID)
}

// UpdateColorisRequest for updating colorways.
type UpdateColorisRequest struct {
	Name    *string `json:"name"`
	Version int     `json:"version" binding:"required,min=1"`
}

// ApplyTo maps non-nil fields onto the existing colorway.
func (r UpdateColorisRequest) ApplyTo(c *product.Coloris) *product.Coloris {
	if r.Name != nil {
		c.Name = *r.Name
	}
	c.Version = r.Version
	return c
}
