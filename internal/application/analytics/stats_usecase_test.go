package analytics_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-stock-api/internal/application/analytics"
	"github.com/jhoicas/gestion-stock-api/internal/application/dto"
	"github.com/jhoicas/gestion-stock-api/internal/application/inventory"
	"github.com/jhoicas/gestion-stock-api/internal/domain"
	"github.com/jhoicas/gestion-stock-api/internal/domain/entity"
	"github.com/jhoicas/gestion-stock-api/internal/infrastructure/sqlite"
)

func seedLedger(t *testing.T) (*sqlite.Store, *inventory.LedgerUseCase, string, string) {
	t.Helper()
	ctx := context.Background()
	store, err := sqlite.OpenInMemory(ctx, t.Name())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	now := time.Now().UTC()
	user := &entity.User{ID: uuid.New().String(), Name: "U", Email: "u@stock.test", Role: entity.RoleManager,
		Status: entity.UserStatusActive, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Users().Create(ctx, user))
	product := &entity.Product{ID: uuid.New().String(), SKU: "P1", Name: "P", Price: decimal.NewFromInt(1),
		Quantity: decimal.Zero, Category: entity.CategoryOther, MinThreshold: entity.DefaultMinThreshold,
		Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Products().Create(ctx, product))

	ledger := inventory.NewLedgerUseCase(store.TxRunner(), store.Movements(), store.Users(), nil, inventory.Options{})
	return store, ledger, user.ID, product.ID
}

func TestMovements_AgrupaPorTipoYPorDia(t *testing.T) {
	store, ledger, userID, productID := seedLedger(t)
	ctx := context.Background()

	for _, m := range []struct {
		typ string
		qty int64
	}{{"entrée", 10}, {"sortie", 4}, {"retour", 1}, {"sortie", 2}, {"ajustement", 8}} {
		_, err := ledger.Record(ctx, inventory.RecordMovementInput{
			ProductID: productID, UserID: userID, Type: m.typ, Quantity: decimal.NewFromInt(m.qty),
		})
		require.NoError(t, err)
	}

	uc := analytics.NewStatsUseCase(store.Stats(), 30)
	from, to, err := uc.Period("", "")
	require.NoError(t, err)
	res, err := uc.Movements(ctx, from, to)
	require.NoError(t, err)

	byType := map[string]dto.MovementTypeStatDTO{}
	for _, s := range res.MovementStats {
		byType[s.Type] = s
	}
	require.Len(t, byType, 4)
	assert.Equal(t, 2, byType["sortie"].Count)
	assert.True(t, byType["sortie"].TotalQuantity.Equal(decimal.NewFromInt(6)), "magnitudes, no valores con signo")
	assert.True(t, byType["entrée"].TotalQuantity.Equal(decimal.NewFromInt(10)))

	require.Len(t, res.DailyStats, 1)
	day := res.DailyStats[0]
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), day.Date)
	assert.Equal(t, 5, day.Count)
	assert.True(t, day.Inbound.Equal(decimal.NewFromInt(11)))
	assert.True(t, day.Outbound.Equal(decimal.NewFromInt(6)))
}

func TestMovements_RangoVacio(t *testing.T) {
	store, _, _, _ := seedLedger(t)
	uc := analytics.NewStatsUseCase(store.Stats(), 30)

	from, to, err := uc.Period("2020-01-01", "2020-01-31")
	require.NoError(t, err)
	res, err := uc.Movements(context.Background(), from, to)
	require.NoError(t, err)
	assert.NotNil(t, res.MovementStats)
	assert.Empty(t, res.MovementStats)
	assert.Empty(t, res.DailyStats)
}

func TestPeriod_Validaciones(t *testing.T) {
	uc := analytics.NewStatsUseCase(nil, 7)

	from, to, err := uc.Period("", "2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 10, 23, 59, 59, 999999999, time.UTC), to)
	assert.Equal(t, to.AddDate(0, 0, -7), from)

	_, _, err = uc.Period("2024-03-11", "2024-03-10")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = uc.Period("10/03/2024", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

type fakeGenerator struct {
	title string
	stats *dto.MovementStatsResponse
}

func (g *fakeGenerator) GenerateMovementReport(_ context.Context, title string, stats *dto.MovementStatsResponse) ([]byte, error) {
	g.title, g.stats = title, stats
	return []byte("%PDF-fake"), nil
}

func TestMovementReport_NombreDeArchivo(t *testing.T) {
	store, _, _, _ := seedLedger(t)
	gen := &fakeGenerator{}
	report := analytics.NewReportUseCase(analytics.NewStatsUseCase(store.Stats(), 30), gen, "Mouvements de stock")

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)
	pdf, name, err := report.MovementReport(context.Background(), from, to)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"))
	assert.Equal(t, "mouvements_2024-01-01_2024-01-31.pdf", name)
	assert.Equal(t, "Mouvements de stock", gen.title)
	require.NotNil(t, gen.stats)
	assert.Equal(t, from, gen.stats.Period.StartDate)
}
