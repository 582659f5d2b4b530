package inventory

import "github.com/shopspring/decimal"

// WindowTotals sumas de un producto en una ventana de movimientos filtrada.
// Las cantidades son valores absolutos; los ADJ no entran en ninguna suma.
type WindowTotals struct {
	RevenueOut decimal.Decimal // suma de cost de los OUT
	QtyOut     decimal.Decimal // suma de |qty_kg| de los OUT
	CostIn     decimal.Decimal // suma de cost de los IN
	QtyIn      decimal.Decimal // suma de |qty_kg| de los IN
}

// AverageCostPerKg costo promedio ponderado de las entradas de la ventana.
// CostoMedio = CostoEntradas / KilosEntrados; 0 si no hubo entradas.
func (t WindowTotals) AverageCostPerKg() decimal.Decimal {
	if t.QtyIn.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return t.CostIn.Div(t.QtyIn)
}

// COGS costo de lo vendido: CostoMedio * KilosVendidos.
// Sin entradas en la ventana no hay base de costo y el COGS es 0, haya o no ventas.
func (t WindowTotals) COGS() decimal.Decimal {
	if t.QtyIn.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return t.CostIn.Mul(t.QtyOut).Div(t.QtyIn)
}

// Profit ingreso por ventas menos COGS del producto.
func (t WindowTotals) Profit() decimal.Decimal {
	return t.RevenueOut.Sub(t.COGS())
}
