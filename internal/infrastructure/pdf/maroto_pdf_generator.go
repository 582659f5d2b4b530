// Package pdf implementa el reporte PDF del inventario de una tienda.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda             │  Fecha de generación          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: stock total / productos / bajo umbral             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: ID | Produit | Stock kg | Sacs+kg | Seuil | 1 sac   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SOUS SEUIL: misma tabla, solo líneas bajo umbral           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/provenderie/ledger/internal/application/report"
	"github.com/provenderie/ledger/internal/domain/entity"
	inv "github.com/provenderie/ledger/internal/domain/inventory"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 34, Green: 102, Blue: 51}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa report.StockPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

var _ report.StockPDFGenerator = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateStockPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateStockPDF(_ context.Context, snap *report.StockSnapshot) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Etat des stocks", true).
		WithAuthor(snap.ShopLabel, true).
		Build()

	m := maroto.New(cfg)

	low := snap.Low()

	m.AddRows(headerRow(snap))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(snap, len(low)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionRow("STOCKS", colorPrimary))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(snap.Lines)...)

	if len(low) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(sectionRow("SOUS SEUIL", colorAlert))
		m.AddRows(tableHeaderRow())
		m.AddRows(tableRows(low)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: tienda (izq) y fecha (der).
func headerRow(snap *report.StockSnapshot) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(snap.ShopLabel, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Etat des stocks", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Généré le "+snap.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// summaryRow: totales del snapshot.
func summaryRow(snap *report.StockSnapshot, lowCount int) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 5}),
		)
	}
	return row.New(14).Add(
		cell("Stock total", fmt.Sprintf("%.2f kg", snap.TotalKg)),
		cell("Produits actifs", strconv.Itoa(len(snap.Lines))),
		cell("Sous seuil", strconv.Itoa(lowCount)),
	)
}

func sectionRow(title string, color *props.Color) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: color, Top: 2}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("ID", 1, align.Center),
		h("Produit", 4, align.Left),
		h("Stock (kg)", 2, align.Right),
		h("Stock (sacs+kg)", 3, align.Left),
		h("Seuil (kg)", 1, align.Right),
		h("1 sac (kg)", 1, align.Right),
	)
}

// tableRows: una fila por producto; las líneas bajo umbral en rojo.
func tableRows(lines []*entity.StockLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		style := props.Text{Size: 8, Top: 1, Left: 1, Right: 1}
		if l.IsLow() {
			style.Color = colorAlert
		}
		cell := func(s string, size int, a align.Type) core.Col {
			p := style
			p.Align = a
			return col.New(size).Add(text.New(s, p))
		}
		result = append(result, row.New(6).Add(
			cell(strconv.FormatInt(l.Product.ID, 10), 1, align.Center),
			cell(l.Product.Label, 4, align.Left),
			cell(fmt.Sprintf("%.2f", l.StockKg), 2, align.Right),
			cell(inv.KgToBagRepr(l.StockKg, l.Product.BagWeightKg), 3, align.Left),
			cell(fmt.Sprintf("%.2f", l.Product.ThresholdKg), 1, align.Right),
			cell(fmt.Sprintf("%.2f", l.Product.BagWeightKg), 1, align.Right),
		))
	}
	return result
}
