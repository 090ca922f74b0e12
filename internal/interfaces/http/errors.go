package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-stock-api/internal/application/dto"
	"github.com/jhoicas/gestion-stock-api/internal/domain"
)

// LocalErrorCause guarda la causa de un 500 para que RequestLogger la registre.
const LocalErrorCause = "error_cause"

// respondError traduce errores de dominio a status + código estable.
// La causa de un error inesperado se registra, nunca se devuelve al cliente.
func respondError(c *fiber.Ctx, err error) error {
	status, body := mapError(err)
	if status == fiber.StatusInternalServerError {
		c.Locals(LocalErrorCause, err)
	}
	return c.Status(status).JSON(body)
}

func mapError(err error) (int, dto.ErrorResponse) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest, dto.Fail("VALIDATION", fmt.Sprintf("%s : %s", verr.Field, verr.Reason))
	case errors.Is(err, domain.ErrInvalidMovementType):
		return fiber.StatusBadRequest, dto.Fail("INVALID_MOVEMENT_TYPE", "type de mouvement invalide (entrée, sortie, ajustement, retour)")
	case errors.Is(err, domain.ErrInvalidAmount):
		return fiber.StatusBadRequest, dto.Fail("INVALID_AMOUNT", "la quantité du mouvement ne peut pas être nulle")
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusBadRequest, dto.Fail("INSUFFICIENT_STOCK", "stock insuffisant pour cette sortie")
	case errors.Is(err, domain.ErrDuplicateSKU):
		return fiber.StatusBadRequest, dto.Fail("DUPLICATE_SKU", "un produit avec ce SKU existe déjà")
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.Fail("VALIDATION", "données invalides")
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.Fail("NOT_FOUND", "ressource introuvable")
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.Fail("UNAUTHORIZED", "utilisateur inconnu")
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.Fail("FORBIDDEN", "utilisateur inactif ou accès refusé")
	default:
		return fiber.StatusInternalServerError, dto.Fail("INTERNAL", "erreur interne du serveur")
	}
}

// ErrorHandler para fiber.Config: errores no tratados por los handlers (404 de ruta, pánicos recuperados).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "INTERNAL"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "NOT_FOUND"
		case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
			code = "VALIDATION"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		}
		if fe.Code >= fiber.StatusInternalServerError {
			c.Locals(LocalErrorCause, err)
			return c.Status(fe.Code).JSON(dto.Fail(code, "erreur interne du serveur"))
		}
		return c.Status(fe.Code).JSON(dto.Fail(code, fe.Message))
	}
	return respondError(c, err)
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", "corps de requête invalide"))
}
