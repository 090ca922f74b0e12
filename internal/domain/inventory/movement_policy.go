package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-stock-api/internal/domain"
	"github.com/jhoicas/gestion-stock-api/internal/domain/entity"
)

// Outcome resultado de aplicar un movimiento sobre la cantidad disponible.
type Outcome struct {
	Before decimal.Decimal
	After  decimal.Decimal
	Stored decimal.Decimal // cantidad con signo que se guarda en el movimiento
}

// ApplyMovement calcula la cantidad resultante según el tipo de movimiento.
// Se trabaja siempre con la magnitud de amount:
//   - entrée / retour: before + |amount|
//   - sortie: before - |amount|, ErrInsufficientStock si queda negativo
//   - ajustement: |amount|; se guarda el valor final, no la diferencia
func ApplyMovement(before decimal.Decimal, t entity.MovementType, amount decimal.Decimal) (Outcome, error) {
	if !t.Valid() {
		return Outcome{}, domain.ErrInvalidMovementType
	}
	if amount.IsZero() {
		return Outcome{}, domain.ErrInvalidAmount
	}
	if !entity.WithinDecimalBounds(amount) {
		return Outcome{}, domain.Invalid("quantiteMouvement", "4 décimales maximum et inférieure à 10^14")
	}
	mag := amount.Abs()
	out := Outcome{Before: before}

	switch t {
	case entity.MovementTypeIn, entity.MovementTypeReturn:
		out.After = before.Add(mag)
		out.Stored = mag
	case entity.MovementTypeOut:
		after := before.Sub(mag)
		if after.IsNegative() {
			return Outcome{}, domain.ErrInsufficientStock
		}
		out.After = after
		out.Stored = mag.Neg()
	case entity.MovementTypeAdjust:
		out.After = mag
		out.Stored = mag
	}
	if !entity.WithinDecimalBounds(out.After) {
		return Outcome{}, domain.Invalid("quantiteMouvement", "le stock résultant dépasse 10^14")
	}
	return out, nil
}
