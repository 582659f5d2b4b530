package dto

// DashboardSummary indicadores del tablero para una tienda.
type DashboardSummary struct {
	ShopID         int64   `json:"shop_id"`
	TotalStockKg   float64 `json:"total_stock_kg"`
	ActiveProducts int     `json:"active_products"`
	Shops          int     `json:"shops"`
	LowStockCount  int     `json:"low_stock_count"`
	Period         string  `json:"period"` // YYYY-MM-DD..YYYY-MM-DD (mes en curso)
	MonthSales     float64 `json:"month_sales"`
	MonthCOGS      float64 `json:"month_cogs"`
	MonthProfit    float64 `json:"month_profit"`
}
