// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"atelierdesk/internal/core/entity"
	"atelierdesk/internal/core/id"
)

// --- List Response ---

// ListResponse wraps list results with pagination.
type ListResponse struct {
	Items      any   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// --- Base DTOs ---

// BaseResponse contains common response fields.
type BaseResponse struct {
	ID           string `json:"id"`
	DeletionMark bool   `json:"deletionMark"`
	Version      int    `json:"version"`
}

// FromBaseEntity creates BaseResponse from entity.BaseEntity.
func FromBaseEntity(b entity.BaseEntity) BaseResponse {
	return BaseResponse{
		ID:           b.ID.String(),
		DeletionMark: b.DeletionMark,
		Version:      b.Version,
	}
}

// CatalogResponse contains catalog fields.
type CatalogResponse struct {
	BaseResponse
	Code string `json:"code"`
	Name string `json:"name"`
}

// FromCatalog creates CatalogResponse from entity.Catalog.
func FromCatalog(c entity.Catalog) CatalogResponse {
	return CatalogResponse{
		BaseResponse: FromBaseEntity(c.BaseEntity),
		Code:         c.Code,
		Name:         c.Name,
	}
}

// --- ID Response ---

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// NewIDResponse creates ID response.
func NewIDResponse(i id.ID) IDResponse {
	return IDResponse{ID: i.String()}
}

// --- Success Response ---

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// --- Error Response ---

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// --- Deletion ---

type SetDeletionMarkRequest struct {
	Marked bool `json:"marked"`
}
