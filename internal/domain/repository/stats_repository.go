package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-stock-api/internal/domain/entity"
)

// MovementTypeStat agregado por tipo de movimiento.
type MovementTypeStat struct {
	Type          entity.MovementType
	Count         int
	TotalQuantity decimal.Decimal // suma de |cantidad|
}

// DailyMovementStat agregado por día (UTC).
type DailyMovementStat struct {
	Date     time.Time // medianoche UTC
	Count    int
	Inbound  decimal.Decimal // entrée + retour
	Outbound decimal.Decimal // sortie
}

// ProductOutboundStat volumen de salidas de un producto en un rango.
type ProductOutboundStat struct {
	ProductID string
	Outbound  decimal.Decimal // suma de |cantidad| de las sortie
}

// CategoryStat número de productos activos por categoría.
type CategoryStat struct {
	Category entity.Category
	Count    int
}

// CatalogueOverview resumen del catálogo activo.
type CatalogueOverview struct {
	TotalProducts    int
	LowStockProducts int
	TotalValue       decimal.Decimal // Σ prix × quantite
	Categories       []CategoryStat  // orden descendente por Count
}

// StatsRepository consultas de lectura para reportes. Las implementaciones son read-only.
type StatsRepository interface {
	// MovementsByType agrupa los movimientos del rango [from, to] por tipo.
	MovementsByType(ctx context.Context, from, to time.Time) ([]MovementTypeStat, error)

	// DailyMovements agrupa por día UTC, orden ascendente.
	DailyMovements(ctx context.Context, from, to time.Time) ([]DailyMovementStat, error)

	// OutboundByProduct suma las salidas del rango [from, to] por producto.
	OutboundByProduct(ctx context.Context, from, to time.Time) ([]ProductOutboundStat, error)

	// Overview resume los productos activos.
	Overview(ctx context.Context) (*CatalogueOverview, error)
}
