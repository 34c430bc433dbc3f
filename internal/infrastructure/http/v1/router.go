// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"atelierdesk/internal/domain/audit"
	"atelierdesk/internal/domain/auth"
	"atelierdesk/internal/domain/catalogs/product"
	"atelierdesk/internal/domain/costs"
	"atelierdesk/internal/domain/documents/activity"
	"atelierdesk/internal/domain/registers/stock"
	"atelierdesk/internal/domain/reports"
	"atelierdesk/internal/infrastructure/http/v1/handlers"
	"atelierdesk/internal/infrastructure/http/v1/middleware"
	"atelierdesk/internal/infrastructure/storage/postgres"
	"atelierdesk/internal/infrastructure/storage/postgres/catalog_repo"
	"atelierdesk/internal/infrastructure/storage/postgres/cost_repo"
	"atelierdesk/internal/infrastructure/storage/postgres/document_repo"
	"atelierdesk/internal/infrastructure/storage/postgres/register_repo"
	"atelierdesk/internal/infrastructure/storage/postgres/report_repo"
	"atelierdesk/pkg/logger"
	"atelierdesk/pkg/numerator"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (health checks)
	Pool *postgres.Pool

	// TxManager drives all repository transactions
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service

	// Numerator for journal number generation
	Numerator numerator.Generator

	// Auditor records the journal audit trail (optional)
	Auditor audit.Recorder
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, cfg)

		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		registerCatalogRoutes(protected, cfg)
		registerJournalRoutes(protected, cfg)
		registerRegisterRoutes(protected, cfg)
		registerCostRoutes(protected, cfg)
		registerReportRoutes(protected, cfg)
	}

	return router
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}

	baseHandler := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)

	publicAuth := rg.Group("/auth")

	protectedAuth := rg.Group("/auth")
	protectedAuth.Use(middleware.Auth(cfg.JWTValidator))

	authHandler.RegisterRoutes(publicAuth, protectedAuth)
}

// registerCatalogRoutes registers catalog endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	productRepo := catalog_repo.NewProductRepo(cfg.TxManager)
	modelRepo := catalog_repo.NewModelRepo(cfg.TxManager)
	colorisRepo := catalog_repo.NewColorisRepo(cfg.TxManager)

	// --- PRODUCTS ---
	{
		service := product.NewService(productRepo, modelRepo, colorisRepo, cfg.TxManager, cfg.Numerator)
		handler := handlers.NewProductHandler(baseHandler, service)

		group := catalogs.Group("/products")
		group.POST("/form", handler.CreateFromForm)
		group.GET("/low-stock", handler.LowStock)
		RegisterCatalogRoutes(group, handler)
	}

	// --- PRODUCT MODELS ---
	{
		service := product.NewModelService(modelRepo, cfg.TxManager, cfg.Numerator)
		handler := handlers.NewModelHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/models"), handler)
	}

	// --- COLORWAYS ---
	{
		service := product.NewColorisService(colorisRepo, modelRepo, cfg.TxManager, cfg.Numerator)
		handler := handlers.NewColorisHandler(baseHandler, service)

		RegisterCatalogRoutes(catalogs.Group("/colorways"), handler)
		catalogs.GET("/models/:id/colorways", handler.ListByModel)
	}
}

// registerJournalRoutes registers activity journal endpoints.
func registerJournalRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	journal := rg.Group("/journal")
	baseHandler := handlers.NewBaseHandler()

	activityRepo := document_repo.NewActivityRepo(cfg.TxManager)
	stockRepo := register_repo.NewStockRepo(cfg.TxManager)
	service := activity.NewService(activityRepo, stockRepo, cfg.Numerator, cfg.TxManager, cfg.Auditor)
	handler := handlers.NewActivityHandler(baseHandler, service)

	handler.RegisterRoutes(journal.Group("/activities"))
}

// registerRegisterRoutes registers stock register endpoints.
func registerRegisterRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	registers := rg.Group("/registers")
	baseHandler := handlers.NewBaseHandler()

	stockRepo := register_repo.NewStockRepo(cfg.TxManager)
	productRepo := catalog_repo.NewProductRepo(cfg.TxManager)
	stockService := stock.NewService(stockRepo, cfg.TxManager)
	stockHandler := handlers.NewStockHandler(baseHandler, stockService, productRepo)

	stockHandler.RegisterRoutes(registers.Group("/stock"))
}

// registerCostRoutes registers monthly cost endpoints.
func registerCostRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	costRepo := cost_repo.NewMonthlyCostRepo(cfg.TxManager)
	service := costs.NewService(costRepo, cfg.TxManager)
	handler := handlers.NewCostsHandler(baseHandler, service)

	handler.RegisterRoutes(rg.Group("/costs/monthly"))
}

// registerReportRoutes registers report endpoints.
func registerReportRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	reportRepo := report_repo.NewReportRepo(cfg.TxManager)
	service := reports.NewService(reportRepo)
	handler := handlers.NewReportsHandler(baseHandler, service)

	handler.RegisterRoutes(rg.Group("/reports"))
}
