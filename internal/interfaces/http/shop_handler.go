package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/provenderie/ledger/internal/application/dto"
	"github.com/provenderie/ledger/internal/application/usecase"
	"github.com/rs/zerolog"
)

// ShopHandler maneja las peticiones HTTP de tiendas.
type ShopHandler struct {
	uc  *usecase.ShopUseCase
	log zerolog.Logger
}

// NewShopHandler construye el handler.
func NewShopHandler(uc *usecase.ShopUseCase, log zerolog.Logger) *ShopHandler {
	return &ShopHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear tienda
// @Tags         shops
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShopRequest  true  "label"
// @Success      201   {object}  dto.ShopResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/shops [post]
func (h *ShopHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShopRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar tiendas
// @Tags         shops
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ShopResponse
// @Router       /api/shops [get]
func (h *ShopHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener tienda
// @Tags         shops
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la tienda"
// @Success      200  {object}  dto.ShopResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shops/{id} [get]
func (h *ShopHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c, "id")
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "tienda no encontrada")
	}
	return c.JSON(out)
}

// Rename godoc
// @Summary      Renombrar tienda
// @Tags         shops
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la tienda"
// @Param        body  body  dto.RenameShopRequest  true  "label"
// @Success      200   {object}  dto.ShopResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/shops/{id} [put]
func (h *ShopHandler) Rename(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c, "id")
	}
	var in dto.RenameShopRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Rename(c.Context(), id, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete borra una tienda sin movimientos.
// DELETE /api/shops/:id → 204; 409 SHOP_IN_USE si algún movimiento la referencia.
func (h *ShopHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badID(c, "id")
	}
	deleted, err := h.uc.Delete(c.Context(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if !deleted {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SHOP_IN_USE", Message: "la tienda tiene movimientos y no puede borrarse"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
