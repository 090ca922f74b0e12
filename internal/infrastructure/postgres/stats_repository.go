package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-stock-api/internal/domain/entity"
	"github.com/jhoicas/gestion-stock-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas de solo lectura sobre el libro de movimientos y el catálogo.
type StatsRepo struct {
	pool *pgxpool.Pool
}

// NewStatsRepository construye el adaptador de estadísticas.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

// MovementsByType agrupa por tipo: número de movimientos y suma de |cantidad|.
func (r *StatsRepo) MovementsByType(ctx context.Context, from, to time.Time) ([]repository.MovementTypeStat, error) {
	const query = `
	SELECT type, COUNT(*), COALESCE(SUM(ABS(quantity)), 0)
	FROM stock_movements
	WHERE created_at BETWEEN $1 AND $2
	GROUP BY type
	ORDER BY type`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("stats.MovementsByType: %w", err)
	}
	defer rows.Close()

	results := []repository.MovementTypeStat{}
	for rows.Next() {
		var s repository.MovementTypeStat
		var typ string
		if err := rows.Scan(&typ, &s.Count, &s.TotalQuantity); err != nil {
			return nil, fmt.Errorf("stats.MovementsByType scan: %w", err)
		}
		s.Type = entity.MovementType(typ)
		results = append(results, s)
	}
	return results, rows.Err()
}

// DailyMovements agrupa por día UTC. Entradas = entrée + retour; salidas = sortie (en magnitud).
func (r *StatsRepo) DailyMovements(ctx context.Context, from, to time.Time) ([]repository.DailyMovementStat, error) {
	const query = `
	SELECT
	    to_char((created_at AT TIME ZONE 'UTC')::date, 'YYYY-MM-DD')               AS day,
	    COUNT(*)                                                                   AS total,
	    COALESCE(SUM(ABS(quantity)) FILTER (WHERE type IN ('entrée', 'retour')), 0) AS inbound,
	    COALESCE(SUM(ABS(quantity)) FILTER (WHERE type = 'sortie'), 0)              AS outbound
	FROM stock_movements
	WHERE created_at BETWEEN $1 AND $2
	GROUP BY day
	ORDER BY day`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("stats.DailyMovements: %w", err)
	}
	defer rows.Close()

	results := []repository.DailyMovementStat{}
	for rows.Next() {
		var s repository.DailyMovementStat
		var day string
		if err := rows.Scan(&day, &s.Count, &s.Inbound, &s.Outbound); err != nil {
			return nil, fmt.Errorf("stats.DailyMovements scan: %w", err)
		}
		if s.Date, err = time.Parse("2006-01-02", day); err != nil {
			return nil, fmt.Errorf("stats.DailyMovements día %q: %w", day, err)
		}
		results = append(results, s)
	}
	return results, rows.Err()
}

// OutboundByProduct suma las salidas (en magnitud) por producto dentro del rango.
func (r *StatsRepo) OutboundByProduct(ctx context.Context, from, to time.Time) ([]repository.ProductOutboundStat, error) {
	rows, err := r.pool.Query(ctx, `
	SELECT product_id, COALESCE(SUM(ABS(quantity)), 0)
	FROM stock_movements
	WHERE type = 'sortie' AND created_at BETWEEN $1 AND $2
	GROUP BY product_id`, from, to)
	if err != nil {
		return nil, fmt.Errorf("stats.OutboundByProduct: %w", err)
	}
	defer rows.Close()

	results := []repository.ProductOutboundStat{}
	for rows.Next() {
		var s repository.ProductOutboundStat
		if err := rows.Scan(&s.ProductID, &s.Outbound); err != nil {
			return nil, fmt.Errorf("stats.OutboundByProduct scan: %w", err)
		}
		results = append(results, s)
	}
	return results, rows.Err()
}

// Overview resume los productos activos: totales, stock bajo, valor y conteo por categoría.
func (r *StatsRepo) Overview(ctx context.Context) (*repository.CatalogueOverview, error) {
	const totals = `
	SELECT
	    COUNT(*),
	    COUNT(*) FILTER (WHERE quantity <= min_threshold),
	    COALESCE(SUM(price * quantity), 0)
	FROM products
	WHERE active = TRUE`

	ov := &repository.CatalogueOverview{TotalValue: decimal.Zero}
	if err := r.pool.QueryRow(ctx, totals).Scan(&ov.TotalProducts, &ov.LowStockProducts, &ov.TotalValue); err != nil {
		return nil, fmt.Errorf("stats.Overview: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
	SELECT category, COUNT(*) AS n
	FROM products
	WHERE active = TRUE
	GROUP BY category
	ORDER BY n DESC, category`)
	if err != nil {
		return nil, fmt.Errorf("stats.Overview categorías: %w", err)
	}
	defer rows.Close()

	ov.Categories = []repository.CategoryStat{}
	for rows.Next() {
		var c repository.CategoryStat
		var name string
		if err := rows.Scan(&name, &c.Count); err != nil {
			return nil, fmt.Errorf("stats.Overview scan: %w", err)
		}
		c.Category = entity.Category(name)
		ov.Categories = append(ov.Categories, c)
	}
	return ov, rows.Err()
}
