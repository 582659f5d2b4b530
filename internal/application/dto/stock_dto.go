package dto

// StockLineResponse stock derivado de un producto en una tienda.
type StockLineResponse struct {
	ProductID    int64   `json:"product_id"`
	ProductCode  *string `json:"product_code"`
	ProductLabel string  `json:"product_label"`
	StockKg      float64 `json:"stock_kg"`
	StockDisplay string  `json:"stock_display"`
	ThresholdKg  float64 `json:"threshold_kg"`
	BagWeightKg  float64 `json:"bag_weight_kg"`
	Low          bool    `json:"low"`
}

// ProductStockResponse stock de un producto en una tienda.
type ProductStockResponse struct {
	ProductID    int64   `json:"product_id"`
	ShopID       int64   `json:"shop_id"`
	StockKg      float64 `json:"stock_kg"`
	StockDisplay string  `json:"stock_display"`
}

// TotalStockResponse stock total (kg) de una tienda.
type TotalStockResponse struct {
	ShopID  int64   `json:"shop_id"`
	TotalKg float64 `json:"total_kg"`
}
