// Package storage elige el adaptador de persistencia según DB_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/gestion-stock-api/internal/application/inventory"
	"github.com/jhoicas/gestion-stock-api/internal/domain/repository"
	"github.com/jhoicas/gestion-stock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/gestion-stock-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/gestion-stock-api/pkg/config"
	"github.com/jhoicas/gestion-stock-api/pkg/logger"
)

// Pinger verificación de conectividad para /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Storage repositorios y runner transaccional de un mismo backend.
type Storage struct {
	Products  repository.ProductRepository
	Movements repository.StockMovementRepository
	Users     repository.UserRepository
	Stats     repository.StatsRepository
	TxRunner  inventory.TxRunner
	DB        Pinger
	Driver    string

	close func()
}

// Close libera conexiones.
func (s *Storage) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open conecta con PostgreSQL o SQLite y aplica migraciones si cfg.AutoMigrate.
func Open(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*Storage, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := store.Migrate(ctx); err != nil {
				_ = store.Close()
				return nil, err
			}
		}
		log.Info().Str("driver", cfg.Driver).Str("path", cfg.SQLitePath).Msg("base de datos lista")
		return &Storage{
			Products:  store.Products(),
			Movements: store.Movements(),
			Users:     store.Users(),
			Stats:     store.Stats(),
			TxRunner:  store.TxRunner(),
			DB:        store,
			Driver:    cfg.Driver,
			close:     func() { _ = store.Close() },
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
		}
		log.Info().Str("driver", cfg.Driver).Str("host", cfg.Host).Msg("base de datos lista")
		return &Storage{
			Products:  postgres.NewProductRepository(pool),
			Movements: postgres.NewStockMovementRepository(pool),
			Users:     postgres.NewUserRepository(pool),
			Stats:     postgres.NewStatsRepository(pool),
			TxRunner:  postgres.NewTxRunner(pool),
			DB:        pool,
			Driver:    cfg.Driver,
			close:     pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Driver)
	}
}
