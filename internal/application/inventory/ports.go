package inventory

import (
	"context"

	"github.com/jhoicas/gestion-stock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza que el movimiento y la nueva cantidad del producto se confirmen juntos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.LedgerProductRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}
