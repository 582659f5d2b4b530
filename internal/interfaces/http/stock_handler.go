package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/provenderie/ledger/internal/application/dto"
	"github.com/provenderie/ledger/internal/application/inventory"
	"github.com/rs/zerolog"
)

// StockHandler consultas de stock derivado. shop_id ausente usa la tienda por defecto.
type StockHandler struct {
	uc            *inventory.StockUseCase
	defaultShopID int64
	log           zerolog.Logger
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockUseCase, defaultShopID int64, log zerolog.Logger) *StockHandler {
	return &StockHandler{uc: uc, defaultShopID: defaultShopID, log: log}
}

// List GET /api/stock: una línea por producto activo.
func (h *StockHandler) List(c *fiber.Ctx) error {
	shopID, ok := shopQuery(c, h.defaultShopID)
	if !ok {
		return badShop(c)
	}
	lines, err := h.uc.AllStocks(c.Context(), shopID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(inventory.ToStockLineResponses(lines))
}

// Low GET /api/stock/low: productos activos con stock <= umbral.
func (h *StockHandler) Low(c *fiber.Ctx) error {
	shopID, ok := shopQuery(c, h.defaultShopID)
	if !ok {
		return badShop(c)
	}
	lines, err := h.uc.LowStockProducts(c.Context(), shopID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(inventory.ToStockLineResponses(lines))
}

// Total GET /api/stock/total.
func (h *StockHandler) Total(c *fiber.Ctx) error {
	shopID, ok := shopQuery(c, h.defaultShopID)
	if !ok {
		return badShop(c)
	}
	kg, err := h.uc.TotalStockKg(c.Context(), shopID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.TotalStockResponse{ShopID: shopID, TotalKg: kg})
}

// Product GET /api/stock/:product_id.
func (h *StockHandler) Product(c *fiber.Ctx) error {
	productID, ok := paramID(c, "product_id")
	if !ok {
		return badID(c, "product_id")
	}
	shopID, ok := shopQuery(c, h.defaultShopID)
	if !ok {
		return badShop(c)
	}
	out, err := h.uc.ProductStock(c.Context(), productID, shopID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	if out == nil {
		return notFound(c, "producto no encontrado")
	}
	return c.JSON(out)
}
