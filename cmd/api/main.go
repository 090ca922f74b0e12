// @title                       Gestion Stock API
// @version                     1.0
// @description                 Libro de movimientos de stock y catálogo de productos.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Bearer <token>
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/swaggo/swag"

	"github.com/jhoicas/gestion-stock-api/docs"
	"github.com/jhoicas/gestion-stock-api/internal/application/analytics"
	"github.com/jhoicas/gestion-stock-api/internal/application/inventory"
	"github.com/jhoicas/gestion-stock-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/gestion-stock-api/internal/infrastructure/pdf"
	"github.com/jhoicas/gestion-stock-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/gestion-stock-api/internal/interfaces/http"
	"github.com/jhoicas/gestion-stock-api/pkg/config"
	"github.com/jhoicas/gestion-stock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a la base de datos")
	}
	defer store.Close()

	ledger := inventory.NewLedgerUseCase(store.TxRunner, store.Movements, store.Users, log.Component("ledger"), inventory.Options{
		HistoryLimit: cfg.Stock.HistoryLimit,
		PageSize:     cfg.Stock.PageSize,
	})
	productUC := usecase.NewProductUseCase(store.Products, store.Stats, store.TxRunner, ledger, cfg.Stock.PageSize)
	statsUC := analytics.NewStatsUseCase(store.Stats, cfg.Stock.StatsWindowDays)
	reportUC := analytics.NewReportUseCase(statsUC, infrapdf.NewMarotoPDFGenerator(), "Mouvements de stock - "+cfg.App.Name)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.DocsPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.DocsPath,
			Path:     "docs",
			Title:    docs.SwaggerInfo.Title,
		}))
	} else {
		log.Warn().Str("path", cfg.HTTP.DocsPath).Msg("swagger.json no encontrado; se sirve la copia embebida en /docs/doc.json")
		app.Get("/docs/doc.json", func(c *fiber.Ctx) error {
			doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
			if err != nil {
				return err
			}
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
			return c.SendString(doc)
		})
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   productUC,
		Ledger:      ledger,
		StatsUC:     statsUC,
		ReportUC:    reportUC,
		Restock:     inventory.NewReplenishmentUseCase(store.Products, store.Stats, cfg.Stock.StatsWindowDays),
		JWTSecret:   cfg.JWT.Secret,
		ServiceName: cfg.App.Name,
		DB:          store.DB,
		Log:         log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
