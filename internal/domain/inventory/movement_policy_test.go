package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-stock-api/internal/domain"
	"github.com/jhoicas/gestion-stock-api/internal/domain/entity"
	"github.com/jhoicas/gestion-stock-api/internal/domain/inventory"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestApplyMovement(t *testing.T) {
	cases := []struct {
		name   string
		before int64
		typ    entity.MovementType
		amount int64
		after  int64
		stored int64
	}{
		{"entrée suma", 10, entity.MovementTypeIn, 5, 15, 5},
		{"entrée con cantidad negativa usa magnitud", 10, entity.MovementTypeIn, -5, 15, 5},
		{"retour suma", 3, entity.MovementTypeReturn, 2, 5, 2},
		{"sortie resta y guarda negativo", 10, entity.MovementTypeOut, 7, 3, -7},
		{"sortie hasta cero", 4, entity.MovementTypeOut, -4, 0, -4},
		{"ajustement fija el valor absoluto", 3, entity.MovementTypeAdjust, 20, 20, 20},
		{"ajustement a la baja guarda el valor final", 30, entity.MovementTypeAdjust, -8, 8, 8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := inventory.ApplyMovement(d(tc.before), tc.typ, d(tc.amount))
			require.NoError(t, err)
			assert.True(t, out.Before.Equal(d(tc.before)))
			assert.True(t, out.After.Equal(d(tc.after)), "after=%s", out.After)
			assert.True(t, out.Stored.Equal(d(tc.stored)), "stored=%s", out.Stored)
		})
	}
}

func TestApplyMovement_SalidaInsuficiente(t *testing.T) {
	_, err := inventory.ApplyMovement(d(3), entity.MovementTypeOut, d(5))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestApplyMovement_CantidadCero(t *testing.T) {
	_, err := inventory.ApplyMovement(d(3), entity.MovementTypeIn, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyMovement_TipoDesconocido(t *testing.T) {
	_, err := inventory.ApplyMovement(d(3), entity.MovementType("transfer"), d(1))
	assert.ErrorIs(t, err, domain.ErrInvalidMovementType)
}

// La invariante after = before + stored se cumple salvo en ajuste.
func TestApplyMovement_Invariante(t *testing.T) {
	for _, typ := range []entity.MovementType{entity.MovementTypeIn, entity.MovementTypeOut, entity.MovementTypeReturn} {
		out, err := inventory.ApplyMovement(d(50), typ, d(12))
		require.NoError(t, err)
		assert.True(t, out.After.Equal(out.Before.Add(out.Stored)), string(typ))
	}
}

func TestParseMovementType(t *testing.T) {
	// "e" + acento combinado (forma descompuesta)
	decomposed := "Entre\u0301e"
	typ, ok := entity.ParseMovementType(decomposed)
	require.True(t, ok)
	assert.Equal(t, entity.MovementTypeIn, typ)

	typ, ok = entity.ParseMovementType(" SORTIE ")
	require.True(t, ok)
	assert.Equal(t, entity.MovementTypeOut, typ)

	_, ok = entity.ParseMovementType("entree")
	assert.False(t, ok)
}

func TestParseCategory(t *testing.T) {
	c, ok := entity.ParseCategory("")
	require.True(t, ok)
	assert.Equal(t, entity.CategoryOther, c)

	c, ok = entity.ParseCategory("électronique")
	require.True(t, ok)
	assert.Equal(t, entity.CategoryElectronics, c)

	_, ok = entity.ParseCategory("Jouets")
	assert.False(t, ok)
}

func TestProduct_LowStock(t *testing.T) {
	p := entity.Product{Quantity: d(5), MinThreshold: d(5)}
	assert.True(t, p.LowStock())
	p.Quantity = d(6)
	assert.False(t, p.LowStock())
	assert.Equal(t, "ABC-1", entity.NormalizeSKU("  abc-1 "))
}

func TestApplyMovement_LimitesDecimales(t *testing.T) {
	cases := []struct {
		name   string
		before string
		typ    entity.MovementType
		amount string
		ok     bool
	}{
		{"cuatro decimales aceptados", "0", entity.MovementTypeIn, "0.0001", true},
		{"ceros a la derecha no cuentan", "0", entity.MovementTypeIn, "1.50000", true},
		{"quinto decimal rechazado", "0", entity.MovementTypeIn, "0.00001", false},
		{"magnitud 10^14 rechazada", "0", entity.MovementTypeIn, "100000000000000", false},
		{"ajustement fuera de rango rechazado", "0", entity.MovementTypeAdjust, "-100000000000000", false},
		{"resultado fuera de rango rechazado", "99999999999999.9999", entity.MovementTypeIn, "1", false},
		{"resultado en el límite aceptado", "99999999999998.9999", entity.MovementTypeIn, "1", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := inventory.ApplyMovement(decimal.RequireFromString(tc.before), tc.typ, decimal.RequireFromString(tc.amount))
			if tc.ok {
				require.NoError(t, err)
				assert.True(t, entity.WithinDecimalBounds(out.After))
				return
			}
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
