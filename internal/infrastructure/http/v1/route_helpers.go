package v1

import (
	"github.com/gin-gonic/gin"

	"atelierdesk/internal/infrastructure/http/v1/middleware"
)

// CatalogRouteHandler is the route surface shared by all catalog handlers.
type CatalogRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	SetDeletionMark(c *gin.Context)
}

// RegisterCatalogRoutes registers standard CRUD routes for a catalog.
// Delete and deletion-mark changes are restricted to admin users.
func RegisterCatalogRoutes(group *gin.RouterGroup, handler CatalogRouteHandler) {
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.GET(":id", handler.Get)
	group.PUT(":id", handler.Update)
	group.DELETE(":id", middleware.RequireAdmin(), handler.Delete)
	group.POST(":id/deletion-mark", middleware.RequireAdmin(), handler.SetDeletionMark)
}
