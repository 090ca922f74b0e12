package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-stock-api/internal/application/dto"
	"github.com/jhoicas/gestion-stock-api/internal/application/inventory"
	"github.com/jhoicas/gestion-stock-api/internal/application/usecase"
	"github.com/jhoicas/gestion-stock-api/internal/domain"
	"github.com/jhoicas/gestion-stock-api/internal/domain/entity"
	"github.com/jhoicas/gestion-stock-api/internal/infrastructure/sqlite"
)

func newProductUseCase(t *testing.T) (*usecase.ProductUseCase, *inventory.LedgerUseCase, string) {
	t.Helper()
	ctx := context.Background()
	store, err := sqlite.OpenInMemory(ctx, t.Name())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	now := time.Now().UTC()
	admin := &entity.User{
		ID: uuid.New().String(), Name: "Admin", Email: "admin@stock.test",
		Role: entity.RoleAdmin, Status: entity.UserStatusActive, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, store.Users().Create(ctx, admin))

	ledger := inventory.NewLedgerUseCase(store.TxRunner(), store.Movements(), store.Users(), nil, inventory.Options{})
	uc := usecase.NewProductUseCase(store.Products(), store.Stats(), store.TxRunner(), ledger, 10)
	return uc, ledger, admin.ID
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestCreate_ConStockInicialRegistraEntrada(t *testing.T) {
	uc, ledger, admin := newProductUseCase(t)
	ctx := context.Background()

	p, err := uc.Create(ctx, admin, dto.CreateProductRequest{
		SKU: " kb-01 ", Name: "Clavier", Price: dec(30), Quantity: dec(12), Category: "électronique",
	})
	require.NoError(t, err)
	assert.Equal(t, "KB-01", p.SKU)
	assert.Equal(t, "Électronique", p.Category)
	assert.True(t, p.Quantity.Equal(dec(12)))
	assert.True(t, p.MinThreshold.Equal(entity.DefaultMinThreshold))
	assert.False(t, p.LowStock)
	assert.True(t, p.Active)

	history, err := ledger.History(ctx, p.ID, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "entrée", history[0].Type)
	assert.Equal(t, usecase.InitialStockReason, history[0].Reason)
	assert.True(t, history[0].QuantityBefore.IsZero())
	assert.True(t, history[0].QuantityAfter.Equal(dec(12)))
	assert.Equal(t, admin, history[0].UserID)
}

func TestCreate_SinStockNoCreaMovimiento(t *testing.T) {
	uc, ledger, admin := newProductUseCase(t)
	ctx := context.Background()

	p, err := uc.Create(ctx, admin, dto.CreateProductRequest{SKU: "A1", Name: "Chaise", Price: dec(40)})
	require.NoError(t, err)
	assert.Equal(t, "Autre", p.Category)
	assert.True(t, p.Quantity.IsZero())
	assert.True(t, p.LowStock)

	history, err := ledger.History(ctx, p.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestCreate_Validaciones(t *testing.T) {
	uc, _, admin := newProductUseCase(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		in    dto.CreateProductRequest
		field string
	}{
		{"sin sku", dto.CreateProductRequest{Name: "X"}, "sku"},
		{"sin nombre", dto.CreateProductRequest{SKU: "X"}, "nom"},
		{"precio negativo", dto.CreateProductRequest{SKU: "X", Name: "X", Price: dec(-1)}, "prix"},
		{"cantidad negativa", dto.CreateProductRequest{SKU: "X", Name: "X", Quantity: dec(-1)}, "quantite"},
		{"categoría desconocida", dto.CreateProductRequest{SKU: "X", Name: "X", Category: "Jouets"}, "categorie"},
		{"precio con cinco decimales", dto.CreateProductRequest{SKU: "X", Name: "X", Price: decimal.RequireFromString("0.00001")}, "prix"},
		{"cantidad de 10^14", dto.CreateProductRequest{SKU: "X", Name: "X", Quantity: decimal.New(1, 14)}, "quantite"},
		{"umbral fuera de rango", dto.CreateProductRequest{SKU: "X", Name: "X", MinThreshold: decimalPtr("1.23456")}, "seuilMinimum"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, admin, tc.in)
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr), "se esperaba ValidationError, se obtuvo %v", err)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestCreate_SKUDuplicadoInclusoInactivo(t *testing.T) {
	uc, _, admin := newProductUseCase(t)
	ctx := context.Background()

	p, err := uc.Create(ctx, admin, dto.CreateProductRequest{SKU: "dup", Name: "Lampe"})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, p.ID))

	_, err = uc.Create(ctx, admin, dto.CreateProductRequest{SKU: "DUP", Name: "Lampe 2"})
	assert.ErrorIs(t, err, domain.ErrDuplicateSKU)
}

func TestCreate_StockInicialConActorInvalido(t *testing.T) {
	uc, _, _ := newProductUseCase(t)

	_, err := uc.Create(context.Background(), uuid.New().String(), dto.CreateProductRequest{
		SKU: "Z9", Name: "Table", Quantity: dec(3),
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdate_NoTocaCantidadYRevalidaSKU(t *testing.T) {
	uc, _, admin := newProductUseCase(t)
	ctx := context.Background()

	a, err := uc.Create(ctx, admin, dto.CreateProductRequest{SKU: "A", Name: "A", Quantity: dec(5)})
	require.NoError(t, err)
	_, err = uc.Create(ctx, admin, dto.CreateProductRequest{SKU: "B", Name: "B"})
	require.NoError(t, err)

	name := "  Nouveau nom "
	threshold := dec(2)
	updated, err := uc.Update(ctx, a.ID, dto.UpdateProductRequest{Name: &name, MinThreshold: &threshold})
	require.NoError(t, err)
	assert.Equal(t, "Nouveau nom", updated.Name)
	assert.True(t, updated.Quantity.Equal(dec(5)))
	assert.False(t, updated.LowStock)

	taken := "b"
	_, err = uc.Update(ctx, a.ID, dto.UpdateProductRequest{SKU: &taken})
	assert.ErrorIs(t, err, domain.ErrDuplicateSKU)

	_, err = uc.Update(ctx, uuid.New().String(), dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	huge := decimal.New(1, 14)
	_, err = uc.Update(ctx, a.ID, dto.UpdateProductRequest{Price: &huge})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "se esperaba ValidationError, se obtuvo %v", err)
	assert.Equal(t, "prix", verr.Field)

	edge := decimal.RequireFromString("99999999999999.9999")
	updated, err = uc.Update(ctx, a.ID, dto.UpdateProductRequest{Price: &edge})
	require.NoError(t, err)
	assert.Equal(t, "99999999999999.9999", updated.Price.String())
}

func decimalPtr(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func TestList_BusquedaCategoriaYStockBajo(t *testing.T) {
	uc, _, admin := newProductUseCase(t)
	ctx := context.Background()

	mk := func(sku, name, cat string, qty int64) string {
		p, err := uc.Create(ctx, admin, dto.CreateProductRequest{SKU: sku, Name: name, Category: cat, Quantity: dec(qty), Price: dec(2)})
		require.NoError(t, err)
		return p.ID
	}
	mk("L1", "Roman policier", "Livres", 50)
	mk("L2", "Atlas", "Livres", 1)
	gone := mk("V1", "Veste", "Vêtements", 30)
	require.NoError(t, uc.Delete(ctx, gone))

	res, err := uc.List(ctx, dto.ProductListRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Pagination.TotalProducts, "los inactivos no se listan")

	res, err = uc.List(ctx, dto.ProductListRequest{Search: "POLICIER"})
	require.NoError(t, err)
	require.Len(t, res.Products, 1)
	assert.Equal(t, "L1", res.Products[0].SKU)

	res, err = uc.List(ctx, dto.ProductListRequest{Category: "livres", LowStockOnly: true})
	require.NoError(t, err)
	require.Len(t, res.Products, 1)
	assert.Equal(t, "L2", res.Products[0].SKU)

	_, err = uc.List(ctx, dto.ProductListRequest{Category: "Jouets"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	deleted, err := uc.GetByID(ctx, gone)
	require.NoError(t, err)
	assert.False(t, deleted.Active, "un producto desactivado sigue siendo legible")
}

func TestOverview_ResumenDelCatalogo(t *testing.T) {
	uc, _, admin := newProductUseCase(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, admin, dto.CreateProductRequest{SKU: "E1", Name: "Souris", Category: "Électronique", Price: dec(10), Quantity: dec(20)})
	require.NoError(t, err)
	_, err = uc.Create(ctx, admin, dto.CreateProductRequest{SKU: "E2", Name: "Câble", Category: "Électronique", Price: dec(5), Quantity: dec(2)})
	require.NoError(t, err)
	_, err = uc.Create(ctx, admin, dto.CreateProductRequest{SKU: "F1", Name: "Pâtes", Category: "Alimentaire", Price: dec(1), Quantity: dec(100)})
	require.NoError(t, err)

	ov, err := uc.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, ov.TotalProducts)
	assert.Equal(t, 1, ov.LowStockProducts)
	assert.True(t, ov.TotalValue.Equal(dec(310)), "10*20 + 5*2 + 1*100, obtenido %s", ov.TotalValue)
	require.Len(t, ov.CategoryStats, 2)
	assert.Equal(t, "Électronique", ov.CategoryStats[0].Category)
	assert.Equal(t, 2, ov.CategoryStats[0].Count)
}
