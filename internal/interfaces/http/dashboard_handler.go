package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/provenderie/ledger/internal/application/analytics"
	"github.com/rs/zerolog"
)

// DashboardHandler maneja el endpoint del tablero.
type DashboardHandler struct {
	uc            *appanalytics.DashboardUseCase
	defaultShopID int64
	log           zerolog.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, defaultShopID int64, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, defaultShopID: defaultShopID, log: log}
}

// GetSummary devuelve los indicadores de la tienda.
// GET /api/dashboard?shop_id=
//
// Respuesta: DashboardSummary (stock total, productos activos, tiendas,
// productos bajo umbral, ventas/COGS/margen del mes en curso).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	shopID, ok := shopQuery(c, h.defaultShopID)
	if !ok {
		return badShop(c)
	}
	summary, err := h.uc.GetSummary(c.Context(), shopID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(summary)
}
