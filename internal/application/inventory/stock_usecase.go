package inventory

import (
	"context"

	"github.com/provenderie/ledger/internal/application/dto"
	"github.com/provenderie/ledger/internal/domain/entity"
	inv "github.com/provenderie/ledger/internal/domain/inventory"
	"github.com/provenderie/ledger/internal/domain/repository"
)

// StockUseCase stock derivado del libro. Solo lectura: se recalcula en cada llamada.
type StockUseCase struct {
	stock    repository.StockRepository
	products repository.ProductRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(stock repository.StockRepository, products repository.ProductRepository) *StockUseCase {
	return &StockUseCase{stock: stock, products: products}
}

// StockKg stock de un producto en una tienda (0 sin movimientos).
func (uc *StockUseCase) StockKg(ctx context.Context, productID, shopID int64) (float64, error) {
	return uc.stock.StockKg(ctx, productID, shopID)
}

// TotalStockKg stock total de una tienda, todos los productos.
func (uc *StockUseCase) TotalStockKg(ctx context.Context, shopID int64) (float64, error) {
	return uc.stock.TotalStockKg(ctx, shopID)
}

// AllStocks una línea por producto activo. Un producto archivado no aparece aunque tenga stock.
func (uc *StockUseCase) AllStocks(ctx context.Context, shopID int64) ([]*entity.StockLine, error) {
	return uc.stock.ListStocks(ctx, shopID)
}

// LowStockProducts productos activos con stock <= umbral (inclusive).
func (uc *StockUseCase) LowStockProducts(ctx context.Context, shopID int64) ([]*entity.StockLine, error) {
	lines, err := uc.stock.ListStocks(ctx, shopID)
	if err != nil {
		return nil, err
	}
	low := make([]*entity.StockLine, 0)
	for _, l := range lines {
		if l.IsLow() {
			low = append(low, l)
		}
	}
	return low, nil
}

// ProductStock stock de un producto con su representación en sacos; nil si el producto no existe.
func (uc *StockUseCase) ProductStock(ctx context.Context, productID, shopID int64) (*dto.ProductStockResponse, error) {
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil || product == nil {
		return nil, err
	}
	kg, err := uc.stock.StockKg(ctx, productID, shopID)
	if err != nil {
		return nil, err
	}
	return &dto.ProductStockResponse{
		ProductID:    productID,
		ShopID:       shopID,
		StockKg:      kg,
		StockDisplay: inv.KgToBagRepr(kg, product.BagWeightKg),
	}, nil
}

// ToStockLineResponses convierte líneas de stock en DTOs.
func ToStockLineResponses(lines []*entity.StockLine) []dto.StockLineResponse {
	out := make([]dto.StockLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.StockLineResponse{
			ProductID:    l.Product.ID,
			ProductCode:  l.Product.Code,
			ProductLabel: l.Product.Label,
			StockKg:      l.StockKg,
			StockDisplay: inv.KgToBagRepr(l.StockKg, l.Product.BagWeightKg),
			ThresholdKg:  l.Product.ThresholdKg,
			BagWeightKg:  l.Product.BagWeightKg,
			Low:          l.IsLow(),
		})
	}
	return out
}
