package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/gestion-stock-api/internal/domain"
	"github.com/jhoicas/gestion-stock-api/internal/domain/entity"
	"github.com/jhoicas/gestion-stock-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del libro de movimientos sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, product_id, type, quantity, quantity_before, quantity_after, reason, user_id, order_number, supplier, created_at, updated_at`

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var typ string
	if err := row.Scan(&m.ID, &m.ProductID, &typ, &m.Quantity, &m.QuantityBefore, &m.QuantityAfter,
		&m.Reason, &m.UserID, &m.OrderNumber, &m.Supplier, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	m.Type = entity.MovementType(typ)
	return &m, nil
}

// Create persiste un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, string(m.Type), m.Quantity, m.QuantityBefore, m.QuantityAfter,
		m.Reason, m.UserID, m.OrderNumber, m.Supplier, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		switch {
		case isCheckViolation(err):
			return domain.ErrInvalidAmount
		case isNumericOverflow(err):
			return domain.Invalid("quantiteMouvement", "hors limites")
		}
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM stock_movements WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

func movementWhere(f repository.MovementFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.ProductID != "" {
		add("product_id = $%d", f.ProductID)
	}
	if f.Type != "" {
		add("type = $%d", string(f.Type))
	}
	if f.From != nil {
		add("created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("created_at <= $%d", *f.To)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List lista movimientos filtrados, del más reciente al más antiguo.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	where, args := movementWhere(f)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_movements`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM stock_movements%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		movementColumns, where, len(args)+1, len(args)+2)
	list, err := r.query(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListByProduct devuelve los últimos limit movimientos de un producto.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string, limit int) ([]*entity.StockMovement, error) {
	return r.query(ctx,
		`SELECT `+movementColumns+` FROM stock_movements WHERE product_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2`,
		productID, limit)
}

func (r *StockMovementRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// UpdateAnnotations modifica solo motivo, número de pedido y proveedor. (nil, nil) si no existe.
func (r *StockMovementRepo) UpdateAnnotations(ctx context.Context, id string, a entity.MovementAnnotations) (*entity.StockMovement, error) {
	query := `
		UPDATE stock_movements SET
		    reason       = COALESCE($2, reason),
		    order_number = COALESCE($3, order_number),
		    supplier     = COALESCE($4, supplier),
		    updated_at   = now()
		WHERE id = $1
		RETURNING ` + movementColumns
	m, err := scanMovement(r.q.QueryRow(ctx, query, id, a.Reason, a.OrderNumber, a.Supplier))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update movement annotations: %w", err)
	}
	return m, nil
}
