package entity

// Shop representa un punto de venta o depósito. El stock siempre se mide por tienda.
type Shop struct {
	ID    int64
	Label string
}
