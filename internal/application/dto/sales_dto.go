package dto

// ProductSalesResponse ventas y costo de lo vendido de un producto en la ventana.
type ProductSalesResponse struct {
	ProductID    int64   `json:"product_id"`
	ProductLabel string  `json:"product_label"`
	Revenue      float64 `json:"revenue"`
	QtyOutKg     float64 `json:"qty_out_kg"`
	QtyInKg      float64 `json:"qty_in_kg"`
	AvgCostPerKg float64 `json:"avg_cost_per_kg"`
	COGS         float64 `json:"cogs"`
	Profit       float64 `json:"profit"`
}

// SalesReportResponse totales de ventas, COGS y margen de la ventana filtrada.
type SalesReportResponse struct {
	TotalSales float64                `json:"total_sales"`
	TotalCOGS  float64                `json:"total_cogs"`
	Profit     float64                `json:"profit"`
	Products   []ProductSalesResponse `json:"products"`
}
