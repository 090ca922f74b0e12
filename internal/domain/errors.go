package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicateSKU      = errors.New("ya existe un producto con este SKU")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente para esta salida")

	// Ambos son errores de validación: errors.Is(err, ErrInvalidInput) es verdadero.
	ErrInvalidMovementType = fmt.Errorf("tipo de movimiento inválido: %w", ErrInvalidInput)
	ErrInvalidAmount       = fmt.Errorf("la cantidad del movimiento no puede ser cero: %w", ErrInvalidInput)
)

// ValidationError describe un campo inválido. Se compara contra ErrInvalidInput.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Invalid construye un ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
