package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jhoicas/gestion-stock-api/internal/domain/entity"
	"github.com/jhoicas/gestion-stock-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

type StatsRepo struct {
	db *gorm.DB
}

// Filas intermedias de las consultas agregadas.
type (
	typeRow struct {
		Type  string
		Count int
		Total decimal.Decimal
	}
	dayRow struct {
		Day      string
		Count    int
		Inbound  decimal.Decimal
		Outbound decimal.Decimal
	}
	outboundRow struct {
		ProductID string
		Outbound  decimal.Decimal
	}
	overviewRow struct {
		Total int
		Low   int
		Value decimal.Decimal
	}
	categoryRow struct {
		Category string
		N        int
	}
)

func NewStatsRepository(db *gorm.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

func (r *StatsRepo) MovementsByType(ctx context.Context, from, to time.Time) ([]repository.MovementTypeStat, error) {
	var rows []typeRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT type AS type, COUNT(*) AS count, COALESCE(SUM(ABS(`+num("quantity")+`)), 0) AS total
		FROM stock_movements
		WHERE created_at >= ? AND created_at <= ?
		GROUP BY type
		ORDER BY type`, from.UTC(), to.UTC()).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("stats.MovementsByType: %w", err)
	}
	results := make([]repository.MovementTypeStat, 0, len(rows))
	for _, row := range rows {
		results = append(results, repository.MovementTypeStat{
			Type:          entity.MovementType(row.Type),
			Count:         row.Count,
			TotalQuantity: row.Total,
		})
	}
	return results, nil
}

// DailyMovements agrupa por día UTC (date() normaliza el desfase almacenado).
func (r *StatsRepo) DailyMovements(ctx context.Context, from, to time.Time) ([]repository.DailyMovementStat, error) {
	var rows []dayRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
		    date(created_at) AS day,
		    COUNT(*) AS count,
		    COALESCE(SUM(CASE WHEN type IN (?, ?) THEN ABS(`+num("quantity")+`) ELSE 0 END), 0) AS inbound,
		    COALESCE(SUM(CASE WHEN type = ? THEN ABS(`+num("quantity")+`) ELSE 0 END), 0) AS outbound
		FROM stock_movements
		WHERE created_at >= ? AND created_at <= ?
		GROUP BY day
		ORDER BY day`,
		string(entity.MovementTypeIn), string(entity.MovementTypeReturn), string(entity.MovementTypeOut),
		from.UTC(), to.UTC()).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("stats.DailyMovements: %w", err)
	}
	results := make([]repository.DailyMovementStat, 0, len(rows))
	for _, row := range rows {
		day, err := time.Parse("2006-01-02", row.Day)
		if err != nil {
			return nil, fmt.Errorf("stats.DailyMovements día %q: %w", row.Day, err)
		}
		results = append(results, repository.DailyMovementStat{
			Date: day, Count: row.Count, Inbound: row.Inbound, Outbound: row.Outbound,
		})
	}
	return results, nil
}

func (r *StatsRepo) OutboundByProduct(ctx context.Context, from, to time.Time) ([]repository.ProductOutboundStat, error) {
	var rows []outboundRow
	err := r.db.WithContext(ctx).Model(&movementModel{}).
		Select("product_id, COALESCE(SUM(ABS("+num("quantity")+")), 0) AS outbound").
		Where("type = ? AND created_at >= ? AND created_at <= ?", string(entity.MovementTypeOut), from.UTC(), to.UTC()).
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("stats.OutboundByProduct: %w", err)
	}
	results := make([]repository.ProductOutboundStat, 0, len(rows))
	for _, row := range rows {
		results = append(results, repository.ProductOutboundStat{ProductID: row.ProductID, Outbound: row.Outbound})
	}
	return results, nil
}

func (r *StatsRepo) Overview(ctx context.Context) (*repository.CatalogueOverview, error) {
	var totals overviewRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
		    COUNT(*) AS total,
		    COALESCE(SUM(CASE WHEN `+num("quantity")+` <= `+num("min_threshold")+` THEN 1 ELSE 0 END), 0) AS low,
		    COALESCE(SUM(`+num("price")+` * `+num("quantity")+`), 0) AS value
		FROM products
		WHERE active = ?`, true).Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("stats.Overview: %w", err)
	}

	var cats []categoryRow
	err = r.db.WithContext(ctx).Model(&productModel{}).
		Select("category, COUNT(*) AS n").
		Where("active = ?", true).
		Group("category").
		Order("n DESC, category").
		Scan(&cats).Error
	if err != nil {
		return nil, fmt.Errorf("stats.Overview categorías: %w", err)
	}

	ov := &repository.CatalogueOverview{
		TotalProducts:    totals.Total,
		LowStockProducts: totals.Low,
		// SQLite multiplica en coma flotante.
		TotalValue: totals.Value.Round(4),
		Categories: make([]repository.CategoryStat, 0, len(cats)),
	}
	for _, c := range cats {
		ov.Categories = append(ov.Categories, repository.CategoryStat{Category: entity.Category(c.Category), Count: c.N})
	}
	return ov, nil
}
