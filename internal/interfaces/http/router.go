package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/techinventory-api/internal/application/analytics"
	"github.com/jhoicas/techinventory-api/internal/application/audit"
	"github.com/jhoicas/techinventory-api/internal/application/auth"
	"github.com/jhoicas/techinventory-api/internal/application/catalog"
	"github.com/jhoicas/techinventory-api/internal/application/inventory"
	"github.com/jhoicas/techinventory-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC    *catalog.UseCase
	MovementUC   *inventory.RecordMovementUseCase
	AuditSvc     *audit.Service
	KPIUC        *analytics.KPIUseCase
	StatisticsUC *analytics.StatisticsUseCase
	ReportUC     *analytics.ReportUseCase
	AuthUC       *auth.UseCase
	Health       *HealthHandler
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Health != nil {
		app.Get("/health", deps.Health.Health)
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// Catálogo
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC)
	products.Get("/", productHandler.Find)
	products.Post("/", productHandler.Register)
	products.Get("/:sku/stock", productHandler.Stock)

	// Libro de movimientos
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.MovementUC)
	invGroup.Post("/movements", inventoryHandler.RecordMovement)
	invGroup.Get("/movements", inventoryHandler.Recent)

	// Bitácora
	protected.Get("/audit", NewAuditHandler(deps.AuditSvc).Recent)

	// Analítica
	an := protected.Group("/analytics")
	analyticsHandler := NewAnalyticsHandler(deps.KPIUC, deps.StatisticsUC)
	an.Get("/kpis", analyticsHandler.KPIs)
	an.Get("/categories", analyticsHandler.Categories)
	an.Get("/report", analyticsHandler.Report)
	an.Get("/prices", analyticsHandler.Prices)
	an.Get("/outliers", analyticsHandler.Outliers)
	an.Get("/correlations", analyticsHandler.Correlations)
	an.Get("/discounts", analyticsHandler.Discounts)
	an.Get("/critical", analyticsHandler.Critical)
	an.Get("/value", analyticsHandler.Value)

	// Reportes
	protected.Get("/reports/inventory.pdf", NewReportHandler(deps.ReportUC).InventoryPDF)

	// Usuarios (solo admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.AuthUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
}
