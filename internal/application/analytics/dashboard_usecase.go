// Package analytics contiene los casos de uso de reportes: ventas con costo de lo
// vendido y el tablero de la tienda.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/provenderie/ledger/internal/application/dto"
	"github.com/provenderie/ledger/internal/domain/entity"
	"github.com/provenderie/ledger/internal/domain/repository"
)

// DashboardUseCase genera los indicadores del tablero para una tienda.
type DashboardUseCase struct {
	stock repository.StockRepository
	shops repository.ShopRepository
	sales *SalesUseCase
	now   func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(stock repository.StockRepository, shops repository.ShopRepository, sales *SalesUseCase) *DashboardUseCase {
	return &DashboardUseCase{stock: stock, shops: shops, sales: sales, now: time.Now}
}

// GetSummary construye el DashboardSummary de la tienda indicada.
//
// Cuatro llamadas en paralelo:
//  1. TotalStockKg(tienda)
//  2. ListStocks(tienda)      → productos activos + stock bajo
//  3. List tiendas            → cantidad de tiendas
//  4. Summary(mes en curso)   → ventas, COGS y margen
func (uc *DashboardUseCase) GetSummary(ctx context.Context, shopID int64) (*dto.DashboardSummary, error) {
	now := uc.now()

	// Mes en curso: día 1 – hoy (ambos inclusive, por fecha)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	type totalResult struct {
		kg  float64
		err error
	}
	type linesResult struct {
		lines []*entity.StockLine
		err   error
	}
	type shopsResult struct {
		n   int
		err error
	}
	type salesResult struct {
		summary *entity.SalesSummary
		err     error
	}

	totalCh := make(chan totalResult, 1)
	linesCh := make(chan linesResult, 1)
	shopsCh := make(chan shopsResult, 1)
	salesCh := make(chan salesResult, 1)

	go func() {
		kg, err := uc.stock.TotalStockKg(ctx, shopID)
		totalCh <- totalResult{kg, err}
	}()
	go func() {
		lines, err := uc.stock.ListStocks(ctx, shopID)
		linesCh <- linesResult{lines, err}
	}()
	go func() {
		shops, err := uc.shops.List(ctx)
		shopsCh <- shopsResult{len(shops), err}
	}()
	go func() {
		s, err := uc.sales.Summary(ctx, repository.MovementFilter{
			ShopID:   shopID,
			DateFrom: &monthStart,
			DateTo:   &today,
		})
		salesCh <- salesResult{s, err}
	}()

	total := <-totalCh
	lines := <-linesCh
	shops := <-shopsCh
	sales := <-salesCh

	if total.err != nil {
		return nil, fmt.Errorf("dashboard: stock total: %w", total.err)
	}
	if lines.err != nil {
		return nil, fmt.Errorf("dashboard: stock por producto: %w", lines.err)
	}
	if shops.err != nil {
		return nil, fmt.Errorf("dashboard: tiendas: %w", shops.err)
	}
	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: ventas del mes: %w", sales.err)
	}

	low := 0
	for _, l := range lines.lines {
		if l.IsLow() {
			low++
		}
	}

	return &dto.DashboardSummary{
		ShopID:         shopID,
		TotalStockKg:   total.kg,
		ActiveProducts: len(lines.lines),
		Shops:          shops.n,
		LowStockCount:  low,
		Period:         monthStart.Format(dto.DateLayout) + ".." + today.Format(dto.DateLayout),
		MonthSales:     sales.summary.TotalSales,
		MonthCOGS:      sales.summary.TotalCOGS,
		MonthProfit:    sales.summary.Profit,
	}, nil
}
