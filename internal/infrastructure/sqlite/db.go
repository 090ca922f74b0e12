// Package sqlite implementa los repositorios sobre SQLite con GORM (modo embebido y tests).
// La conexión se limita a una sola: las transacciones del libro quedan serializadas.
package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ── Modelos GORM ──────────────────────────────────────────────────────────────

// Los decimales se guardan como TEXT: la afinidad NUMERIC de SQLite los pasaría a REAL y perdería
// dígitos. Toda comparación o agregado en SQL pasa por num().

type productModel struct {
	ID           string          `gorm:"primaryKey"`
	SKU          string          `gorm:"uniqueIndex;not null"`
	Name         string          `gorm:"not null"`
	Description  string          `gorm:"not null;default:''"`
	Price        decimal.Decimal `gorm:"type:text;not null"`
	Quantity     decimal.Decimal `gorm:"type:text;not null;check:chk_products_quantity,CAST(quantity AS NUMERIC) >= 0"`
	Category     string          `gorm:"index;not null"`
	MinThreshold decimal.Decimal `gorm:"type:text;not null"`
	Active       bool            `gorm:"not null;index"`
	CreatedAt    time.Time       `gorm:"index"`
	UpdatedAt    time.Time
}

func (productModel) TableName() string { return "products" }

type movementModel struct {
	ID             string          `gorm:"primaryKey"`
	ProductID      string          `gorm:"index:idx_movements_product;not null"`
	Type           string          `gorm:"not null"`
	Quantity       decimal.Decimal `gorm:"type:text;not null"`
	QuantityBefore decimal.Decimal `gorm:"type:text;not null"`
	QuantityAfter  decimal.Decimal `gorm:"type:text;not null"`
	Reason         string          `gorm:"not null;default:''"`
	UserID         string          `gorm:"not null"`
	OrderNumber    string          `gorm:"not null;default:''"`
	Supplier       string          `gorm:"not null;default:''"`
	CreatedAt      time.Time       `gorm:"index"`
	UpdatedAt      time.Time
}

func (movementModel) TableName() string { return "stock_movements" }

type userModel struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"uniqueIndex;not null"`
	Role      string `gorm:"not null"`
	Status    string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (userModel) TableName() string { return "users" }

// ── Store ─────────────────────────────────────────────────────────────────────

// Store agrupa la conexión y construye los repositorios.
type Store struct {
	db *gorm.DB
}

// Open abre (o crea) la base SQLite. dsn puede ser una ruta o un URI "file:...".
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: abrir %s: %w", dsn, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite: pool: %w", err)
	}
	// Un único escritor: serializa transacciones y mantiene viva una base en memoria.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)
	return &Store{db: db}, nil
}

// OpenInMemory abre una base en memoria con nombre propio y la migra (tests, demo).
func OpenInMemory(ctx context.Context, name string) (*Store, error) {
	name = strings.NewReplacer("/", "_", " ", "_").Replace(name)
	store, err := Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// Migrate crea o actualiza las tablas.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&userModel{}, &productModel{}, &movementModel{}); err != nil {
		return fmt.Errorf("sqlite: migrar: %w", err)
	}
	return nil
}

// Close libera la conexión.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping verifica la conexión.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Products() *ProductRepo        { return NewProductRepository(s.db) }
func (s *Store) Movements() *StockMovementRepo { return NewStockMovementRepository(s.db) }
func (s *Store) Users() *UserRepo              { return NewUserRepository(s.db) }
func (s *Store) Stats() *StatsRepo             { return NewStatsRepository(s.db) }
func (s *Store) TxRunner() *TxRunner           { return NewTxRunner(s.db) }
