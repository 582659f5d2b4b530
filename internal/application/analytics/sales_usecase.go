package analytics

import (
	"context"
	"fmt"

	"github.com/provenderie/ledger/internal/application/dto"
	"github.com/provenderie/ledger/internal/domain/entity"
	inv "github.com/provenderie/ledger/internal/domain/inventory"
	"github.com/provenderie/ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// SalesUseCase ventas, costo de lo vendido (COGS) y margen sobre una ventana del libro.
//
// El costo usa el promedio ponderado de las entradas de la misma ventana:
//
//	COGS = CostoEntradas / KilosEntrados * KilosVendidos
//
// Los ajustes (ADJ) no cuentan ni como venta ni como compra.
type SalesUseCase struct {
	salesRepo repository.SalesRepository
}

// NewSalesUseCase construye el caso de uso.
func NewSalesUseCase(salesRepo repository.SalesRepository) *SalesUseCase {
	return &SalesUseCase{salesRepo: salesRepo}
}

// Summary agrega la ventana indicada por el filtro. El filtro de tipo se ignora.
func (uc *SalesUseCase) Summary(ctx context.Context, filter repository.MovementFilter) (*entity.SalesSummary, error) {
	filter.Type = ""
	rows, err := uc.salesRepo.TotalsByProduct(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("ventas: totales por producto: %w", err)
	}

	totalSales, totalCOGS := decimal.Zero, decimal.Zero
	products := make([]entity.ProductSales, 0, len(rows))
	for _, r := range rows {
		w := inv.WindowTotals{RevenueOut: r.RevenueOut, QtyOut: r.QtyOut, CostIn: r.CostIn, QtyIn: r.QtyIn}
		cogs := w.COGS()
		totalSales = totalSales.Add(r.RevenueOut)
		totalCOGS = totalCOGS.Add(cogs)
		products = append(products, entity.ProductSales{
			ProductID:    r.ProductID,
			ProductLabel: r.ProductLabel,
			Revenue:      r.RevenueOut.InexactFloat64(),
			QtyOutKg:     r.QtyOut.InexactFloat64(),
			CostIn:       r.CostIn.InexactFloat64(),
			QtyInKg:      r.QtyIn.InexactFloat64(),
			AvgCostPerKg: w.AverageCostPerKg().Round(4).InexactFloat64(),
			COGS:         cogs.Round(2).InexactFloat64(),
			Profit:       w.Profit().Round(2).InexactFloat64(),
		})
	}

	return &entity.SalesSummary{
		TotalSales: totalSales.Round(2).InexactFloat64(),
		TotalCOGS:  totalCOGS.Round(2).InexactFloat64(),
		Profit:     totalSales.Sub(totalCOGS).Round(2).InexactFloat64(),
		Products:   products,
	}, nil
}

// Report igual que Summary pero en forma de DTO.
func (uc *SalesUseCase) Report(ctx context.Context, filter repository.MovementFilter) (*dto.SalesReportResponse, error) {
	s, err := uc.Summary(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToSalesReportResponse(s), nil
}

// ToSalesReportResponse convierte el resumen en DTO.
func ToSalesReportResponse(s *entity.SalesSummary) *dto.SalesReportResponse {
	out := &dto.SalesReportResponse{
		TotalSales: s.TotalSales,
		TotalCOGS:  s.TotalCOGS,
		Profit:     s.Profit,
		Products:   make([]dto.ProductSalesResponse, 0, len(s.Products)),
	}
	for _, p := range s.Products {
		out.Products = append(out.Products, dto.ProductSalesResponse{
			ProductID:    p.ProductID,
			ProductLabel: p.ProductLabel,
			Revenue:      p.Revenue,
			QtyOutKg:     p.QtyOutKg,
			QtyInKg:      p.QtyInKg,
			AvgCostPerKg: p.AvgCostPerKg,
			COGS:         p.COGS,
			Profit:       p.Profit,
		})
	}
	return out
}
