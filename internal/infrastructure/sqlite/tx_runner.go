package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/jhoicas/gestion-stock-api/internal/application/inventory"
	"github.com/jhoicas/gestion-stock-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción GORM.
type TxRunner struct {
	db *gorm.DB
}

func NewTxRunner(db *gorm.DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run hace Commit si fn devuelve nil y Rollback en caso contrario.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.LedgerProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewProductRepository(tx), NewStockMovementRepository(tx))
	})
}
