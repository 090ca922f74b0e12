package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-stock-api/internal/application/inventory"
	"github.com/jhoicas/gestion-stock-api/internal/domain"
	"github.com/jhoicas/gestion-stock-api/internal/domain/entity"
	"github.com/jhoicas/gestion-stock-api/internal/infrastructure/sqlite"
)

type ledgerTestContext struct {
	store    *sqlite.Store
	ledger   *inventory.LedgerUseCase
	user     *entity.User
	products map[string]string // sku -> id
	last     *entity.StockMovement
	err      error
	results  []error
}

var errorsByName = map[string]error{
	"insufficient stock":    domain.ErrInsufficientStock,
	"invalid movement type": domain.ErrInvalidMovementType,
	"invalid amount":        domain.ErrInvalidAmount,
	"not found":             domain.ErrNotFound,
	"forbidden":             domain.ErrForbidden,
	"unknown user":          domain.ErrUserNotFound,
}

func (c *ledgerTestContext) reset() error {
	store, err := sqlite.OpenInMemory(context.Background(), "feature_"+uuid.New().String())
	if err != nil {
		return err
	}
	c.store = store
	c.ledger = inventory.NewLedgerUseCase(store.TxRunner(), store.Movements(), store.Users(), nil, inventory.Options{})
	c.products = map[string]string{}
	c.user, c.last, c.err, c.results = nil, nil, nil, nil
	return nil
}

func (c *ledgerTestContext) anActiveUser() error {
	now := time.Now().UTC()
	c.user = &entity.User{ID: uuid.New().String(), Name: "Gestionnaire", Email: "g@stock.test",
		Role: entity.RoleManager, Status: entity.UserStatusActive, CreatedAt: now, UpdatedAt: now}
	return c.store.Users().Create(context.Background(), c.user)
}

func (c *ledgerTestContext) theUserIsInactive() error {
	now := time.Now().UTC()
	inactive := &entity.User{ID: uuid.New().String(), Name: "Ancien", Email: "ancien@stock.test",
		Role: entity.RoleManager, Status: entity.UserStatusInactive, CreatedAt: now, UpdatedAt: now}
	if err := c.store.Users().Create(context.Background(), inactive); err != nil {
		return err
	}
	c.user = inactive
	return nil
}

func (c *ledgerTestContext) aProductWithQuantity(sku string, qty int) error {
	now := time.Now().UTC()
	p := &entity.Product{ID: uuid.New().String(), SKU: sku, Name: "Produit " + sku, Price: decimal.NewFromInt(1),
		Quantity: decimal.NewFromInt(int64(qty)), Category: entity.CategoryOther,
		MinThreshold: entity.DefaultMinThreshold, Active: true, CreatedAt: now, UpdatedAt: now}
	if err := c.store.Products().Create(context.Background(), p); err != nil {
		return err
	}
	c.products[sku] = p.ID
	return nil
}

func (c *ledgerTestContext) record(productID, typ string, amount int) error {
	mov, err := c.ledger.Record(context.Background(), inventory.RecordMovementInput{
		ProductID: productID, UserID: c.user.ID, Type: typ, Quantity: decimal.NewFromInt(int64(amount)),
	})
	c.err = err
	c.last = nil
	if mov != nil {
		c.last = &entity.StockMovement{Quantity: mov.Quantity, QuantityBefore: mov.QuantityBefore, QuantityAfter: mov.QuantityAfter}
	}
	return nil
}

func (c *ledgerTestContext) iRecordOn(typ string, amount int, sku string) error {
	id, ok := c.products[sku]
	if !ok {
		return fmt.Errorf("producto %s no definido", sku)
	}
	return c.record(id, typ, amount)
}

func (c *ledgerTestContext) iRecordOnUnknownProduct(typ string, amount int) error {
	return c.record(uuid.New().String(), typ, amount)
}

func (c *ledgerTestContext) concurrentRecords(n int, typ string, amount int, sku string) error {
	id := c.products[sku]
	c.results = make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, c.results[i] = c.ledger.Record(context.Background(), inventory.RecordMovementInput{
				ProductID: id, UserID: c.user.ID, Type: typ, Quantity: decimal.NewFromInt(int64(amount)),
			})
		}(i)
	}
	wg.Wait()
	return nil
}

func (c *ledgerTestContext) exactlyNSucceed(n int) error {
	ok := 0
	for _, err := range c.results {
		switch {
		case err == nil:
			ok++
		case !errors.Is(err, domain.ErrInsufficientStock):
			return fmt.Errorf("error inesperado: %w", err)
		}
	}
	if ok != n {
		return fmt.Errorf("se esperaban %d éxitos, hubo %d", n, ok)
	}
	return nil
}

func (c *ledgerTestContext) movementStored(stored, before, after int) error {
	if c.err != nil {
		return fmt.Errorf("el movimiento falló: %w", c.err)
	}
	checks := []struct {
		name      string
		got, want decimal.Decimal
	}{
		{"quantity", c.last.Quantity, decimal.NewFromInt(int64(stored))},
		{"before", c.last.QuantityBefore, decimal.NewFromInt(int64(before))},
		{"after", c.last.QuantityAfter, decimal.NewFromInt(int64(after))},
	}
	for _, ch := range checks {
		if !ch.got.Equal(ch.want) {
			return fmt.Errorf("%s: se esperaba %s, se obtuvo %s", ch.name, ch.want, ch.got)
		}
	}
	return nil
}

func (c *ledgerTestContext) movementRejected(reason string) error {
	want, ok := errorsByName[reason]
	if !ok {
		return fmt.Errorf("motivo desconocido %q", reason)
	}
	if !errors.Is(c.err, want) {
		return fmt.Errorf("se esperaba %v, se obtuvo %v", want, c.err)
	}
	return nil
}

func (c *ledgerTestContext) product(sku string) (*entity.Product, error) {
	p, err := c.store.Products().GetByID(context.Background(), c.products[sku])
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("producto %s no encontrado", sku)
	}
	return p, nil
}

func (c *ledgerTestContext) productHasQuantity(sku string, qty int) error {
	p, err := c.product(sku)
	if err != nil {
		return err
	}
	if !p.Quantity.Equal(decimal.NewFromInt(int64(qty))) {
		return fmt.Errorf("cantidad %s, se esperaba %d", p.Quantity, qty)
	}
	return nil
}

func (c *ledgerTestContext) productIsLowOnStock(sku string) error {
	p, err := c.product(sku)
	if err != nil {
		return err
	}
	if !p.LowStock() {
		return fmt.Errorf("%s no está en stock bajo (%s > %s)", sku, p.Quantity, p.MinThreshold)
	}
	return nil
}

func (c *ledgerTestContext) productHasMovements(sku string, n int) error {
	history, err := c.ledger.History(context.Background(), c.products[sku], 0)
	if err != nil {
		return err
	}
	if len(history) != n {
		return fmt.Errorf("se esperaban %d movimientos, hay %d", n, len(history))
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &ledgerTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, tc.reset()
	})
	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc.store != nil {
			_ = tc.store.Close()
		}
		return ctx, nil
	})

	ctx.Step(`^an active user$`, tc.anActiveUser)
	ctx.Step(`^the user is inactive$`, tc.theUserIsInactive)
	ctx.Step(`^a product "([^"]*)" with quantity (-?\d+)$`, tc.aProductWithQuantity)
	ctx.Step(`^I record a "([^"]*)" of (-?\d+) on "([^"]*)"$`, tc.iRecordOn)
	ctx.Step(`^I record a "([^"]*)" of (-?\d+) on an unknown product$`, tc.iRecordOnUnknownProduct)
	ctx.Step(`^(\d+) concurrent "([^"]*)" of (\d+) are recorded on "([^"]*)"$`, tc.concurrentRecords)
	ctx.Step(`^exactly (\d+) of them succeeds?$`, tc.exactlyNSucceed)
	ctx.Step(`^the movement is stored with quantity (-?\d+), before (-?\d+) and after (-?\d+)$`, tc.movementStored)
	ctx.Step(`^the movement is rejected with "([^"]*)"$`, tc.movementRejected)
	ctx.Step(`^product "([^"]*)" has quantity (-?\d+)$`, tc.productHasQuantity)
	ctx.Step(`^product "([^"]*)" is low on stock$`, tc.productIsLowOnStock)
	ctx.Step(`^product "([^"]*)" has (\d+) movements$`, tc.productHasMovements)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
