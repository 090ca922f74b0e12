package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-stock-api/internal/application/analytics"
	"github.com/jhoicas/gestion-stock-api/internal/application/dto"
	"github.com/jhoicas/gestion-stock-api/internal/application/inventory"
)

// StockHandler maneja el libro de movimientos y sus estadísticas (protegido).
type StockHandler struct {
	ledger *inventory.LedgerUseCase
	stats  *analytics.StatsUseCase
	report *analytics.ReportUseCase
}

// NewStockHandler construye el handler. report puede ser nil (ruta PDF deshabilitada).
func NewStockHandler(ledger *inventory.LedgerUseCase, stats *analytics.StatsUseCase, report *analytics.ReportUseCase) *StockHandler {
	return &StockHandler{ledger: ledger, stats: stats, report: report}
}

// Record godoc
// @Summary      Registrar movimiento de stock
// @Description  entrée y retour suman |quantiteMouvement|, sortie resta (rechazada si deja stock negativo),
//
//	ajustement fija la cantidad a |quantiteMouvement|. El actor es el usuario del token.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "produitId, typeMouvement, quantiteMouvement, motif"
// @Success      201   {object}  dto.Response{data=dto.MovementResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock [post]
func (h *StockHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ledger.RecordFromRequest(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out, "Mouvement de stock enregistré"))
}

// List godoc
// @Summary      Listar movimientos
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        page           query  int     false  "Página"  default(1)
// @Param        limit          query  int     false  "Límite"  default(10)
// @Param        produitId      query  string  false  "Producto"
// @Param        typeMouvement  query  string  false  "entrée | sortie | ajustement | retour"
// @Param        dateDebut      query  string  false  "YYYY-MM-DD o RFC 3339"
// @Param        dateFin        query  string  false  "YYYY-MM-DD o RFC 3339"
// @Success      200  {object}  dto.Response{data=dto.MovementListResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	var in dto.MovementListRequest
	if err := c.QueryParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ledger.List(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out, ""))
}

// GetByID godoc
// @Summary      Obtener movimiento
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.Response{data=dto.MovementResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [get]
func (h *StockHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.ledger.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out, ""))
}

// History godoc
// @Summary      Historial de un producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        productId  path   string  true   "ID del producto"
// @Param        limit      query  int     false  "Máximo de movimientos"  default(50)
// @Success      200  {object}  dto.Response{data=[]dto.MovementResponse}
// @Router       /api/stock/product/{productId} [get]
func (h *StockHandler) History(c *fiber.Ctx) error {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("VALIDATION", "limit : entier attendu"))
		}
		limit = n
	}
	out, err := h.ledger.History(c.UserContext(), c.Params("productId"), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out, ""))
}

// UpdateAnnotations godoc
// @Summary      Modificar anotaciones de un movimiento
// @Description  Solo motif, numeroCommande y fournisseur; tipo y cantidades son inmutables.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del movimiento"
// @Param        body  body  dto.UpdateMovementRequest  true  "Anotaciones"
// @Success      200   {object}  dto.Response{data=dto.MovementResponse}
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [put]
func (h *StockHandler) UpdateAnnotations(c *fiber.Ctx) error {
	var in dto.UpdateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ledger.UpdateAnnotations(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out, "Mouvement mis à jour"))
}

// MovementStats godoc
// @Summary      Estadísticas de movimientos
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        dateDebut  query  string  false  "Inicio (por defecto: hace 30 días)"
// @Param        dateFin    query  string  false  "Fin (por defecto: ahora)"
// @Success      200  {object}  dto.Response{data=dto.MovementStatsResponse}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/stats/movements [get]
func (h *StockHandler) MovementStats(c *fiber.Ctx) error {
	from, to, err := h.stats.Period(c.Query("dateDebut"), c.Query("dateFin"))
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.stats.Movements(c.UserContext(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OK(out, ""))
}

// MovementReport godoc
// @Summary      Reporte PDF de movimientos
// @Tags         stock
// @Security     Bearer
// @Produce      application/pdf
// @Param        dateDebut  query  string  false  "Inicio"
// @Param        dateFin    query  string  false  "Fin"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/stats/report [get]
func (h *StockHandler) MovementReport(c *fiber.Ctx) error {
	if h.report == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("NOT_FOUND", "rapport indisponible"))
	}
	from, to, err := h.stats.Period(c.Query("dateDebut"), c.Query("dateFin"))
	if err != nil {
		return respondError(c, err)
	}
	pdf, filename, err := h.report.MovementReport(c.UserContext(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Attachment(filename)
	return c.Send(pdf)
}
