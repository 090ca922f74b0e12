package repository

import (
	"context"
	"time"

	"github.com/jhoicas/gestion-stock-api/internal/domain/entity"
)

// MovementFilter filtros cerrados del listado de movimientos; cada campo vacío no filtra.
type MovementFilter struct {
	ProductID string
	Type      entity.MovementType
	From      *time.Time // inclusivo
	To        *time.Time // inclusivo
	Limit     int
	Offset    int
}

// StockMovementRepository define el puerto de persistencia para el libro de movimientos (DIP).
// No expone borrado: el libro es de solo inserción.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	GetByID(ctx context.Context, id string) (*entity.StockMovement, error)
	// List ordena del más reciente al más antiguo y devuelve el total sin paginar.
	List(ctx context.Context, f MovementFilter) ([]*entity.StockMovement, int, error)
	ListByProduct(ctx context.Context, productID string, limit int) ([]*entity.StockMovement, error)
	UpdateAnnotations(ctx context.Context, id string, a entity.MovementAnnotations) (*entity.StockMovement, error)
}
