package entity

import "github.com/shopspring/decimal"

// Límites de las columnas NUMERIC(18,4): cantidades y precios se guardan con 4 decimales
// y magnitud menor que 10^14.
const DecimalScale = 4

var MaxDecimal = decimal.New(1, 14)

// WithinDecimalBounds indica si d cabe sin redondeo en una columna NUMERIC(18,4).
func WithinDecimalBounds(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(DecimalScale)) && d.Abs().LessThan(MaxDecimal)
}
