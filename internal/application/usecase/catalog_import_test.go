package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/gestion-stock-api/internal/application/dto"
	"github.com/jhoicas/gestion-stock-api/internal/application/inventory"
	"github.com/jhoicas/gestion-stock-api/internal/application/usecase"
	"github.com/jhoicas/gestion-stock-api/internal/domain"
	"github.com/jhoicas/gestion-stock-api/internal/domain/entity"
	"github.com/jhoicas/gestion-stock-api/internal/infrastructure/sqlite"
)

type importFixture struct {
	products *usecase.ProductUseCase
	ledger   *inventory.LedgerUseCase
	importer *usecase.CatalogImportUseCase
	store    *sqlite.Store
	admin    string
}

func newImportFixture(t *testing.T) *importFixture {
	t.Helper()
	ctx := context.Background()
	store, err := sqlite.OpenInMemory(ctx, t.Name())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	now := time.Now().UTC()
	admin := &entity.User{ID: uuid.New().String(), Name: "Système", Email: "systeme@stock.test",
		Role: entity.RoleAdmin, Status: entity.UserStatusActive, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Users().Create(ctx, admin))

	ledger := inventory.NewLedgerUseCase(store.TxRunner(), store.Movements(), store.Users(), nil, inventory.Options{})
	products := usecase.NewProductUseCase(store.Products(), store.Stats(), store.TxRunner(), ledger, 10)
	return &importFixture{
		products: products,
		ledger:   ledger,
		importer: usecase.NewCatalogImportUseCase(products, store.Products(), ledger, nil),
		store:    store,
		admin:    admin.ID,
	}
}

func (f *importFixture) bySKU(t *testing.T, sku string) *entity.Product {
	t.Helper()
	p, err := f.store.Products().GetBySKU(context.Background(), sku)
	require.NoError(t, err)
	require.NotNil(t, p, "producto %s", sku)
	return p
}

func TestImport_CreaAjustaYRechaza(t *testing.T) {
	f := newImportFixture(t)
	ctx := context.Background()

	_, err := f.products.Create(ctx, f.admin, dto.CreateProductRequest{SKU: "EX-1", Name: "Existant", Quantity: dec(4)})
	require.NoError(t, err)
	_, err = f.products.Create(ctx, f.admin, dto.CreateProductRequest{SKU: "EX-2", Name: "Vide", Quantity: dec(3)})
	require.NoError(t, err)
	_, err = f.products.Create(ctx, f.admin, dto.CreateProductRequest{SKU: "EX-3", Name: "Stable", Quantity: dec(1)})
	require.NoError(t, err)

	csv := strings.Join([]string{
		"sku;nom;prix;quantite;categorie;seuilMinimum",
		"new-1;Bureau;120,50;2;mobilier;1",
		"EX-1;Existant;1;9;;",
		"EX-2;Vide;1;0;;",
		"EX-3;Stable;1;1;;",
		"new-2;Jouet;5;1;Jouets;",
		"new-3;Prix faux;x;1;;",
	}, "\n")

	report, err := f.importer.Import(ctx, f.admin, strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 2, report.Adjusted)
	assert.Equal(t, 1, report.Unchanged)
	require.Len(t, report.Rejected, 2)
	assert.Equal(t, 6, report.Rejected[0].Line)
	assert.ErrorIs(t, report.Rejected[0].Err, domain.ErrInvalidInput)
	assert.Equal(t, "new-3", report.Rejected[1].SKU)

	bureau := f.bySKU(t, "NEW-1")
	assert.True(t, bureau.Price.Equal(dec(241).Div(dec(2))))
	assert.True(t, bureau.Quantity.Equal(dec(2)))
	assert.Equal(t, entity.CategoryFurniture, bureau.Category)
	assert.True(t, bureau.MinThreshold.Equal(dec(1)))

	assert.True(t, f.bySKU(t, "EX-1").Quantity.Equal(dec(9)))
	assert.True(t, f.bySKU(t, "EX-2").Quantity.IsZero())

	history, err := f.ledger.History(ctx, f.bySKU(t, "EX-1").ID, 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "ajustement", history[0].Type)
	assert.Equal(t, usecase.ImportReason, history[0].Reason)
}

func TestImport_Latin1(t *testing.T) {
	f := newImportFixture(t)

	utf := "sku,nom,categorie,quantite\nTV-1,Téléviseur,Électronique,3\n"
	latin1, err := charmap.ISO8859_1.NewEncoder().String(utf)
	require.NoError(t, err)

	report, err := f.importer.Import(context.Background(), f.admin, strings.NewReader(latin1))
	require.NoError(t, err)
	require.Equal(t, 1, report.Created)

	tv := f.bySKU(t, "TV-1")
	assert.Equal(t, "Téléviseur", tv.Name)
	assert.Equal(t, entity.CategoryElectronics, tv.Category)
}

func TestImport_CabeceraIncompletaYActor(t *testing.T) {
	f := newImportFixture(t)
	ctx := context.Background()

	_, err := f.importer.Import(ctx, f.admin, strings.NewReader("code,libelle\nA,B\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.importer.Import(ctx, uuid.New().String(), strings.NewReader("sku,nom\nA,B\n"))
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
