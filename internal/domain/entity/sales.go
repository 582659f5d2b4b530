package entity

// ProductSales resultado de ventas/costo de un producto en una ventana.
type ProductSales struct {
	ProductID    int64
	ProductLabel string
	Revenue      float64 // suma de cost de los OUT
	QtyOutKg     float64
	CostIn       float64
	QtyInKg      float64
	AvgCostPerKg float64 // costo medio ponderado de las entradas de la ventana
	COGS         float64
	Profit       float64
}

// SalesSummary totales de ventas y costo de lo vendido en una ventana.
type SalesSummary struct {
	TotalSales float64
	TotalCOGS  float64
	Profit     float64
	Products   []ProductSales
}
