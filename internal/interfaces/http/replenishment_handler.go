package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-stock-api/internal/application/dto"
	"github.com/jhoicas/gestion-stock-api/internal/application/inventory"
)

// ReplenishmentHandler expone la lista de reposición.
type ReplenishmentHandler struct {
	uc *inventory.ReplenishmentUseCase
}

func NewReplenishmentHandler(uc *inventory.ReplenishmentUseCase) *ReplenishmentHandler {
	return &ReplenishmentHandler{uc: uc}
}

// List godoc
// @Summary      Lista de reposición
// @Description  Productos activos en stock bajo con la cantidad sugerida, ordenados por salidas recientes.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response{data=dto.ReplenishmentResponse}
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/stock/replenishment [get]
func (h *ReplenishmentHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.GenerateReplenishmentList(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out, "Liste de réapprovisionnement"))
}
