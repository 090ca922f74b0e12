package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-stock-api/internal/application/analytics"
	"github.com/jhoicas/gestion-stock-api/internal/application/inventory"
	"github.com/jhoicas/gestion-stock-api/internal/application/usecase"
	"github.com/jhoicas/gestion-stock-api/internal/domain/entity"
	"github.com/jhoicas/gestion-stock-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	Ledger      *inventory.LedgerUseCase
	StatsUC     *analytics.StatsUseCase
	ReportUC    *analytics.ReportUseCase
	Restock     *inventory.ReplenishmentUseCase // opcional
	JWTSecret   string
	ServiceName string
	DB          Pinger
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", RequestLogger(deps.Log))

	// Público
	api.Get("/health", Health(deps.ServiceName, deps.DB))

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	writers := RequireRole(entity.RoleAdmin, entity.RoleManager)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Stock: las rutas literales van antes de /:id
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.Ledger, deps.StatsUC, deps.ReportUC)
	stock.Get("/", stockHandler.List)
	stock.Get("/stats/movements", stockHandler.MovementStats)
	stock.Get("/stats/report", stockHandler.MovementReport)
	if deps.Restock != nil {
		stock.Get("/replenishment", NewReplenishmentHandler(deps.Restock).List)
	}
	stock.Get("/product/:productId", stockHandler.History)
	stock.Get("/:id", stockHandler.GetByID)
	stock.Post("/", writers, stockHandler.Record)
	stock.Put("/:id", adminOnly, stockHandler.UpdateAnnotations)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/stats/overview", productHandler.Overview)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", writers, productHandler.Create)
	products.Put("/:id", writers, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)
}
