package repository

import (
	"context"

	"github.com/provenderie/ledger/internal/domain/entity"
)

// StockRepository consultas de stock derivado. El stock nunca se almacena:
// siempre es la suma de qty_kg de los movimientos.
type StockRepository interface {
	StockKg(ctx context.Context, productID, shopID int64) (float64, error)
	TotalStockKg(ctx context.Context, shopID int64) (float64, error)
	// ListStocks una línea por producto activo (mismo orden que ProductRepository.List).
	ListStocks(ctx context.Context, shopID int64) ([]*entity.StockLine, error)
}
