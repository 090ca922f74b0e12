package pdf_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-stock-api/internal/application/dto"
	"github.com/jhoicas/gestion-stock-api/internal/infrastructure/pdf"
)

func TestGenerateMovementReport(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	stats := &dto.MovementStatsResponse{
		MovementStats: []dto.MovementTypeStatDTO{
			{Type: "entrée", Count: 2, TotalQuantity: decimal.NewFromInt(30)},
			{Type: "sortie", Count: 1, TotalQuantity: decimal.NewFromInt(7)},
		},
		DailyStats: []dto.DailyStatDTO{
			{Date: "2026-01-02", Count: 3, Inbound: decimal.NewFromInt(30), Outbound: decimal.NewFromInt(7)},
		},
		Period: dto.PeriodDTO{StartDate: from, EndDate: from.AddDate(0, 0, 30)},
	}

	b, err := pdf.NewMarotoPDFGenerator().GenerateMovementReport(context.Background(), "Gestion Stock", stats)
	require.NoError(t, err)
	require.NotEmpty(t, b)
	assert.Equal(t, "%PDF", string(b[:4]))
}

func TestGenerateMovementReport_SinDatos(t *testing.T) {
	b, err := pdf.NewMarotoPDFGenerator().GenerateMovementReport(context.Background(), "Gestion Stock", &dto.MovementStatsResponse{})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(b[:4]))

	_, err = pdf.NewMarotoPDFGenerator().GenerateMovementReport(context.Background(), "x", nil)
	assert.Error(t, err)
}
