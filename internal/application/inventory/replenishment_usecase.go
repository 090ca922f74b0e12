package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-stock-api/internal/application/dto"
	"github.com/jhoicas/gestion-stock-api/internal/domain/repository"
)

const (
	// DefaultReplenishmentWindow días de historial de salidas usados para priorizar.
	DefaultReplenishmentWindow = 30
	replenishmentPage          = 100
)

var idealStockFactor = decimal.NewFromFloat(1.5)

// ReplenishmentUseCase genera la lista de reposición de los productos en stock bajo.
// Prioriza con el volumen de salidas registrado en el libro de movimientos.
type ReplenishmentUseCase struct {
	products   repository.ProductRepository
	statsRepo  repository.StatsRepository
	windowDays int
	now        func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso. windowDays <= 0 usa DefaultReplenishmentWindow.
func NewReplenishmentUseCase(
	products repository.ProductRepository,
	statsRepo repository.StatsRepository,
	windowDays int,
) *ReplenishmentUseCase {
	if windowDays <= 0 {
		windowDays = DefaultReplenishmentWindow
	}
	return &ReplenishmentUseCase{
		products:   products,
		statsRepo:  statsRepo,
		windowDays: windowDays,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// GenerateReplenishmentList devuelve los productos activos en o bajo su umbral con la
// cantidad sugerida de pedido (umbral × 1,5 menos el stock actual, redondeada hacia arriba).
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) (*dto.ReplenishmentResponse, error) {
	end := uc.now()
	start := end.AddDate(0, 0, -uc.windowDays)
	resp := &dto.ReplenishmentResponse{
		WindowDays:  uc.windowDays,
		Suggestions: []dto.ReplenishmentSuggestionDTO{},
	}

	// 1. Productos en stock bajo, página a página
	filter := repository.ProductFilter{LowStockOnly: true, Limit: replenishmentPage}
	var low []dto.ReplenishmentSuggestionDTO
	for {
		page, total, err := uc.products.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		for _, p := range page {
			ideal := p.MinThreshold.Mul(idealStockFactor)
			suggested := ideal.Sub(p.Quantity).Ceil()
			if suggested.IsNegative() {
				suggested = decimal.Zero
			}
			low = append(low, dto.ReplenishmentSuggestionDTO{
				ProductID:         p.ID,
				SKU:               p.SKU,
				ProductName:       p.Name,
				Category:          string(p.Category),
				CurrentStock:      p.Quantity,
				MinThreshold:      p.MinThreshold,
				IdealStock:        ideal,
				SuggestedOrderQty: suggested,
				UnitPrice:         p.Price,
				EstimatedCost:     suggested.Mul(p.Price),
				Outbound:          decimal.Zero,
			})
		}
		filter.Offset += len(page)
		if len(page) == 0 || filter.Offset >= total {
			break
		}
	}
	if len(low) == 0 {
		return resp, nil
	}

	// 2. Salidas del periodo por producto
	outbound, err := uc.statsRepo.OutboundByProduct(ctx, start, end)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]decimal.Decimal, len(outbound))
	for _, o := range outbound {
		byID[o.ProductID] = o.Outbound
	}
	for i := range low {
		if v, ok := byID[low[i].ProductID]; ok {
			low[i].Outbound = v
		}
	}

	// 3. Orden: mayor salida, luego mayor déficit bajo el umbral, luego SKU
	sort.SliceStable(low, func(i, j int) bool {
		a, b := low[i], low[j]
		if !a.Outbound.Equal(b.Outbound) {
			return a.Outbound.GreaterThan(b.Outbound)
		}
		defA := a.MinThreshold.Sub(a.CurrentStock)
		defB := b.MinThreshold.Sub(b.CurrentStock)
		if !defA.Equal(defB) {
			return defA.GreaterThan(defB)
		}
		return a.SKU < b.SKU
	})

	// 4. Prioridad (1 = más urgente) y coste total
	total := decimal.Zero
	for i := range low {
		low[i].Priority = i + 1
		total = total.Add(low[i].EstimatedCost)
	}
	resp.Suggestions = low
	resp.TotalEstimatedCost = total
	return resp, nil
}
