package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/provenderie/ledger/internal/application/analytics"
	"github.com/provenderie/ledger/internal/application/dto"
	"github.com/provenderie/ledger/internal/application/report"
	"github.com/rs/zerolog"
)

// ReportHandler reportes de ventas y exports de stock.
type ReportHandler struct {
	sales         *analytics.SalesUseCase
	export        *report.ExportUseCase
	csvCharset    string
	defaultShopID int64
	log           zerolog.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(sales *analytics.SalesUseCase, export *report.ExportUseCase, csvCharset string, defaultShopID int64, log zerolog.Logger) *ReportHandler {
	if csvCharset == "" {
		csvCharset = report.EncodingUTF8
	}
	return &ReportHandler{sales: sales, export: export, csvCharset: csvCharset, defaultShopID: defaultShopID, log: log}
}

// Sales godoc
// @Summary      Ventas, COGS y margen
// @Description  Costo de lo vendido por promedio ponderado de las entradas de la ventana. El filtro type se ignora.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        shop_id    query  int     false  "Tienda"
// @Param        q          query  string  false  "Subcadena en producto o código"
// @Param        date_from  query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        date_to    query  string  false  "YYYY-MM-DD (inclusive)"
// @Success      200  {object}  dto.SalesReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	var q dto.MovementQuery
	if err := c.QueryParser(&q); err != nil {
		return invalidBody(c)
	}
	q.Type = ""
	filter, err := q.ToFilter()
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.sales.Report(c.Context(), filter)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// StockCSV GET /api/reports/stock.csv: descarga del snapshot de stock separado por ';'.
func (h *ReportHandler) StockCSV(c *fiber.Ctx) error {
	shopID, ok := shopQuery(c, h.defaultShopID)
	if !ok {
		return badShop(c)
	}
	data, name, err := h.export.StockCSV(c.Context(), shopID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset="+h.csvCharset)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(data)
}

// StockPDF GET /api/reports/stock.pdf.
func (h *ReportHandler) StockPDF(c *fiber.Ctx) error {
	shopID, ok := shopQuery(c, h.defaultShopID)
	if !ok {
		return badShop(c)
	}
	data, name, err := h.export.StockPDF(c.Context(), shopID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, name))
	return c.Send(data)
}
