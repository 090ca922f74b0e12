package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementTypeStatDTO agregado por tipo de movimiento.
type MovementTypeStatDTO struct {
	Type          string          `json:"typeMouvement"`
	Count         int             `json:"totalMouvements"`
	TotalQuantity decimal.Decimal `json:"quantiteTotale"`
}

// DailyStatDTO agregado diario; Date en formato YYYY-MM-DD (UTC).
type DailyStatDTO struct {
	Date     string          `json:"date"`
	Count    int             `json:"totalMouvements"`
	Inbound  decimal.Decimal `json:"entrees"`
	Outbound decimal.Decimal `json:"sorties"`
}

// PeriodDTO ventana consultada.
type PeriodDTO struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// MovementStatsResponse respuesta de GET /api/stock/stats/movements.
type MovementStatsResponse struct {
	MovementStats []MovementTypeStatDTO `json:"movementStats"`
	DailyStats    []DailyStatDTO        `json:"dailyStats"`
	Period        PeriodDTO             `json:"period"`
}
