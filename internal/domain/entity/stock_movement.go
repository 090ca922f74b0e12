package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// MovementType tipo de movimiento de stock.
type MovementType string

const (
	MovementTypeIn     MovementType = "entrée"     // entrada
	MovementTypeOut    MovementType = "sortie"     // salida
	MovementTypeAdjust MovementType = "ajustement" // ajuste absoluto
	MovementTypeReturn MovementType = "retour"     // devolución (entrada)
)

// MovementTypes devuelve los tipos válidos.
func MovementTypes() []MovementType {
	return []MovementType{MovementTypeIn, MovementTypeOut, MovementTypeAdjust, MovementTypeReturn}
}

// ParseMovementType normaliza (NFC, minúsculas) y valida el tipo recibido.
func ParseMovementType(s string) (MovementType, bool) {
	t := MovementType(strings.ToLower(norm.NFC.String(strings.TrimSpace(s))))
	if !t.Valid() {
		return "", false
	}
	return t, true
}

// Valid indica si el tipo pertenece al conjunto cerrado.
func (t MovementType) Valid() bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjust, MovementTypeReturn:
		return true
	}
	return false
}

// Inbound indica si el tipo cuenta como entrada en las estadísticas diarias.
func (t MovementType) Inbound() bool {
	return t == MovementTypeIn || t == MovementTypeReturn
}

// StockMovement entrada del libro de movimientos. Inmutable salvo Reason, OrderNumber y Supplier.
type StockMovement struct {
	ID             string
	ProductID      string
	Type           MovementType
	Quantity       decimal.Decimal // con signo; en ajuste es el valor absoluto final
	QuantityBefore decimal.Decimal
	QuantityAfter  decimal.Decimal
	Reason         string
	UserID         string
	OrderNumber    string
	Supplier       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// MovementAnnotations campos modificables de un movimiento ya registrado.
type MovementAnnotations struct {
	Reason      *string
	OrderNumber *string
	Supplier    *string
}
