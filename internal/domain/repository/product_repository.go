package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-stock-api/internal/domain/entity"
)

// ProductFilter filtros cerrados del listado de productos. Solo incluye productos activos.
type ProductFilter struct {
	Search       string          // subcadena sin distinguir mayúsculas sobre nombre, descripción y SKU
	Category     entity.Category // vacío = todas
	LowStockOnly bool
	Limit        int
	Offset       int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetBySKU devuelven (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, f ProductFilter) ([]*entity.Product, int, error)
	SoftDelete(ctx context.Context, id string) error
}

// LedgerProductRepository repositorio de productos atado a la transacción del libro de movimientos.
// Es el único punto que modifica la cantidad disponible.
type LedgerProductRepository interface {
	ProductRepository
	// GetForUpdate lee el producto bloqueando la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	SetQuantity(ctx context.Context, id string, qty decimal.Decimal) error
}
