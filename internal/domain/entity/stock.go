package entity

// StockLine stock derivado de un producto en una tienda (suma de movimientos, nunca almacenado).
type StockLine struct {
	Product Product
	StockKg float64
}

// IsLow indica si el stock está en o por debajo del umbral del producto.
func (l StockLine) IsLow() bool {
	return l.StockKg <= l.Product.ThresholdKg
}
