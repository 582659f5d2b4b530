package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// ProductTotals resultado crudo agrupado por producto; el use case calcula COGS.
type ProductTotals struct {
	ProductID    int64
	ProductLabel string
	RevenueOut   decimal.Decimal
	QtyOut       decimal.Decimal
	CostIn       decimal.Decimal
	QtyIn        decimal.Decimal
}

// SalesRepository lectura agregada para ventas y costo de lo vendido.
// Usa los filtros de MovementFilter salvo Type, que se ignora.
type SalesRepository interface {
	TotalsByProduct(ctx context.Context, filter MovementFilter) ([]ProductTotals, error)
}
