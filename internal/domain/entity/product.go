package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// DefaultMinThreshold umbral de stock bajo cuando no se indica otro.
var DefaultMinThreshold = decimal.NewFromInt(10)

// Product representa un artículo del inventario.
// Quantity solo cambia a través del libro de movimientos (StockMovement).
type Product struct {
	ID           string
	SKU          string // único, normalizado con NormalizeSKU
	Name         string
	Description  string
	Price        decimal.Decimal
	Quantity     decimal.Decimal
	Category     Category
	MinThreshold decimal.Decimal
	Active       bool // false = eliminado lógicamente
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// LowStock indica si la cantidad disponible está en o por debajo del umbral.
func (p *Product) LowStock() bool {
	return p.Quantity.LessThanOrEqual(p.MinThreshold)
}

var skuCaser = cases.Upper(language.Und)

// NormalizeSKU recorta espacios y pasa a mayúsculas (mapeo Unicode completo).
func NormalizeSKU(sku string) string {
	return skuCaser.String(norm.NFC.String(strings.TrimSpace(sku)))
}
