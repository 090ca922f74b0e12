// seed crea el usuario de sistema y carga un catálogo CSV a través del libro de movimientos.
//
// Uso: go run ./cmd/seed -csv catalogue.csv [-email admin@local] [-token]
// El CSV puede venir en UTF-8 o ISO-8859-1 (exportaciones de hoja de cálculo).
// Columnas: sku, nom, description, prix, quantite, categorie, seuilMinimum (sku y nom obligatorias).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/gestion-stock-api/internal/application/inventory"
	"github.com/jhoicas/gestion-stock-api/internal/application/usecase"
	"github.com/jhoicas/gestion-stock-api/internal/domain/entity"
	"github.com/jhoicas/gestion-stock-api/internal/domain/repository"
	"github.com/jhoicas/gestion-stock-api/internal/infrastructure/storage"
	"github.com/jhoicas/gestion-stock-api/pkg/config"
	"github.com/jhoicas/gestion-stock-api/pkg/jwt"
	"github.com/jhoicas/gestion-stock-api/pkg/logger"
)

func main() {
	csvPath := flag.String("csv", "", "catálogo CSV a importar (opcional)")
	email := flag.String("email", "systeme@gestion-stock.local", "email del usuario administrador de sistema")
	printToken := flag.Bool("token", false, "imprimir un JWT de administrador para pruebas locales")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, App: "seed"})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	store, err := storage.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a la base de datos")
	}
	defer store.Close()

	admin, err := ensureAdmin(ctx, store.Users, *email)
	if err != nil {
		log.Fatal().Err(err).Msg("usuario de sistema")
	}
	log.Info().Str("user_id", admin.ID).Str("email", admin.Email).Msg("usuario de sistema listo")

	if *csvPath != "" {
		f, err := os.Open(*csvPath)
		if err != nil {
			log.Fatal().Err(err).Msg("abrir CSV")
		}
		defer f.Close()

		ledger := inventory.NewLedgerUseCase(store.TxRunner, store.Movements, store.Users, log.Component("ledger"), inventory.Options{})
		products := usecase.NewProductUseCase(store.Products, store.Stats, store.TxRunner, ledger, cfg.Stock.PageSize)
		importer := usecase.NewCatalogImportUseCase(products, store.Products, ledger, log.Component("import"))

		report, err := importer.Import(ctx, admin.ID, f)
		if err != nil {
			log.Fatal().Err(err).Msg("importar catálogo")
		}
		for _, r := range report.Rejected {
			log.Warn().Int("line", r.Line).Str("sku", r.SKU).Err(r.Err).Msg("línea rechazada")
		}
		fmt.Printf("Creados: %d, ajustados: %d, sin cambios: %d, rechazados: %d\n",
			report.Created, report.Adjusted, report.Unchanged, len(report.Rejected))
	}

	if *printToken {
		if cfg.JWT.Secret == "" {
			log.Fatal().Msg("JWT_SECRET es obligatorio para -token")
		}
		tok, err := jwt.Generate(cfg.JWT.Secret, admin.ID, admin.Role, cfg.JWT.Issuer, cfg.JWT.Expiration)
		if err != nil {
			log.Fatal().Err(err).Msg("generar token")
		}
		fmt.Println(tok)
	}
}

func ensureAdmin(ctx context.Context, users repository.UserRepository, email string) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	existing, err := users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if !existing.IsActive() {
			return nil, fmt.Errorf("el usuario %s está inactivo", email)
		}
		return existing, nil
	}
	now := time.Now().UTC()
	u := &entity.User{
		ID:        uuid.New().String(),
		Name:      "Système",
		Email:     email,
		Role:      entity.RoleAdmin,
		Status:    entity.UserStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
