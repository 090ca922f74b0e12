package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-stock-api/internal/application/dto"
)

// Pinger lo implementan el pool pgx y el store SQLite.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health responde el estado del servicio y de la base de datos.
func Health(service string, db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := fiber.Map{"status": "ok", "service": service}
		if db != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				c.Locals(LocalErrorCause, err)
				status["status"] = "degraded"
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.Response{Success: false, Data: status})
			}
		}
		return c.JSON(dto.OK(status, ""))
	}
}
