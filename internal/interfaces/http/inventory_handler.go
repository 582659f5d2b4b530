package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/provenderie/ledger/internal/application/dto"
	"github.com/provenderie/ledger/internal/application/inventory"
	"github.com/rs/zerolog"
)

// InventoryHandler maneja las peticiones HTTP del libro de movimientos y los ajustes.
type InventoryHandler struct {
	uc  *inventory.RegisterMovementUseCase
	log zerolog.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.RegisterMovementUseCase, log zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, log: log}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  Con qty_kg se guarda tal cual; sin qty_kg se valoriza desde bags + kg.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, shop_id, type, qty_kg o bags/kg, precios, cost, note"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.RegisterMovementFromRequest(c.Context(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Listar movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        type       query  string  false  "IN | OUT | ADJ"
// @Param        shop_id    query  int     false  "Tienda"
// @Param        q          query  string  false  "Subcadena en producto o código"
// @Param        date_from  query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        date_to    query  string  false  "YYYY-MM-DD (inclusive)"
// @Success      200  {array}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var q dto.MovementQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c)
	}
	filter, err := q.ToFilter()
	if err != nil {
		return writeError(c, h.log, err)
	}
	views, err := h.uc.ListMovements(c.Context(), filter)
	if err != nil {
		return writeError(c, h.log, err)
	}
	out := make([]*dto.MovementResponse, 0, len(views))
	for _, v := range views {
		out = append(out, inventory.ToMovementResponse(v))
	}
	return c.JSON(out)
}

// GetMovement GET /api/movements/:id.
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c, "id")
	}
	v, err := h.uc.GetMovement(c.Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if v == nil {
		return notFound(c, "movimiento no encontrado")
	}
	return c.JSON(inventory.ToMovementResponse(v))
}

// UpdateMovement corrige un movimiento. PUT /api/movements/:id.
// Responde 405 LEDGER_IMMUTABLE salvo que LEDGER_ALLOW_MOVEMENT_EDIT esté activo.
func (h *InventoryHandler) UpdateMovement(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c, "id")
	}
	var in dto.UpdateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.UpdateMovementFromRequest(c.Context(), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Adjust godoc
// @Summary      Ajustar stock a un objetivo
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "product_id, shop_id, target, unit (kg|sac)"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.AdjustFromRequest(c.Context(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
