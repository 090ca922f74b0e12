package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jhoicas/gestion-stock-api/internal/domain/entity"
	"github.com/jhoicas/gestion-stock-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos sobre GORM.
type StockMovementRepo struct {
	db *gorm.DB
}

func NewStockMovementRepository(db *gorm.DB) *StockMovementRepo {
	return &StockMovementRepo{db: db}
}

func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if err := r.db.WithContext(ctx).Create(toMovementModel(m)).Error; err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	var m movementModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m.toEntity(), nil
}

func movementFilter(f repository.MovementFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.ProductID != "" {
			db = db.Where("product_id = ?", f.ProductID)
		}
		if f.Type != "" {
			db = db.Where("type = ?", string(f.Type))
		}
		if f.From != nil {
			db = db.Where("created_at >= ?", f.From.UTC())
		}
		if f.To != nil {
			db = db.Where("created_at <= ?", f.To.UTC())
		}
		return db
	}
}

// List lista movimientos filtrados, del más reciente al más antiguo.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&movementModel{}).Scopes(movementFilter(f)).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}
	list, err := r.find(r.db.WithContext(ctx).Scopes(movementFilter(f)).Limit(f.Limit).Offset(f.Offset))
	if err != nil {
		return nil, 0, err
	}
	return list, int(total), nil
}

func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string, limit int) ([]*entity.StockMovement, error) {
	return r.find(r.db.WithContext(ctx).Where("product_id = ?", productID).Limit(limit))
}

func (r *StockMovementRepo) find(q *gorm.DB) ([]*entity.StockMovement, error) {
	var rows []movementModel
	if err := q.Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	list := make([]*entity.StockMovement, 0, len(rows))
	for i := range rows {
		list = append(list, rows[i].toEntity())
	}
	return list, nil
}

// UpdateAnnotations modifica solo motivo, número de pedido y proveedor. (nil, nil) si no existe.
func (r *StockMovementRepo) UpdateAnnotations(ctx context.Context, id string, a entity.MovementAnnotations) (*entity.StockMovement, error) {
	fields := map[string]any{"updated_at": time.Now().UTC()}
	if a.Reason != nil {
		fields["reason"] = *a.Reason
	}
	if a.OrderNumber != nil {
		fields["order_number"] = *a.OrderNumber
	}
	if a.Supplier != nil {
		fields["supplier"] = *a.Supplier
	}
	res := r.db.WithContext(ctx).Model(&movementModel{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("update movement annotations: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}
