package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/provenderie/ledger/internal/domain/entity"
	"github.com/provenderie/ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type salesRepoStub struct {
	rows []repository.ProductTotals
	err  error
	got  repository.MovementFilter
}

func (s *salesRepoStub) TotalsByProduct(_ context.Context, f repository.MovementFilter) ([]repository.ProductTotals, error) {
	s.got = f
	return s.rows, s.err
}

type stockStub struct {
	total float64
	lines []*entity.StockLine
}

func (s stockStub) StockKg(context.Context, int64, int64) (float64, error) { return 0, nil }

func (s stockStub) TotalStockKg(context.Context, int64) (float64, error) { return s.total, nil }

func (s stockStub) ListStocks(context.Context, int64) ([]*entity.StockLine, error) {
	return s.lines, nil
}

type shopsStub struct{ n int }

func (s shopsStub) Create(context.Context, *entity.Shop) error { return nil }

func (s shopsStub) GetByID(context.Context, int64) (*entity.Shop, error) { return nil, nil }

func (s shopsStub) GetByLabel(context.Context, string) (*entity.Shop, error) { return nil, nil }

func (s shopsStub) Rename(context.Context, int64, string) error { return nil }

func (s shopsStub) DeleteIfUnused(context.Context, int64) (bool, error) { return true, nil }

func (s shopsStub) List(context.Context) ([]*entity.Shop, error) {
	out := make([]*entity.Shop, s.n)
	for i := range out {
		out[i] = &entity.Shop{ID: int64(i + 1)}
	}
	return out, nil
}

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func TestSalesSummary_WeightedAverage(t *testing.T) {
	repo := &salesRepoStub{rows: []repository.ProductTotals{
		{ProductID: 1, ProductLabel: "Maïs", RevenueOut: d(4500), QtyOut: d(30), CostIn: d(12000), QtyIn: d(120)},
	}}
	uc := NewSalesUseCase(repo)

	s, err := uc.Summary(context.Background(), repository.MovementFilter{Type: entity.MovementOut, ShopID: 1})
	require.NoError(t, err)

	assert.Equal(t, entity.MovementType(""), repo.got.Type, "el filtro de tipo no aplica a ventas")
	assert.Equal(t, int64(1), repo.got.ShopID)
	assert.Equal(t, 4500.0, s.TotalSales)
	assert.Equal(t, 3000.0, s.TotalCOGS)
	assert.Equal(t, 1500.0, s.Profit)
	require.Len(t, s.Products, 1)
	assert.Equal(t, 100.0, s.Products[0].AvgCostPerKg)
}

func TestSalesSummary_NoInboundMeansZeroCOGS(t *testing.T) {
	repo := &salesRepoStub{rows: []repository.ProductTotals{
		{ProductID: 1, ProductLabel: "Son", RevenueOut: d(800), QtyOut: d(20)},
		{ProductID: 2, ProductLabel: "Tourteau", RevenueOut: d(1000), QtyOut: d(10), CostIn: d(3000), QtyIn: d(40)},
	}}
	s, err := NewSalesUseCase(repo).Summary(context.Background(), repository.MovementFilter{})
	require.NoError(t, err)

	assert.Equal(t, 1800.0, s.TotalSales)
	assert.Equal(t, 750.0, s.TotalCOGS)
	assert.Equal(t, 1050.0, s.Profit)
	assert.Equal(t, 0.0, s.Products[0].COGS)
	assert.Equal(t, 800.0, s.Products[0].Profit)

	report := ToSalesReportResponse(s)
	assert.Len(t, report.Products, 2)
	assert.Equal(t, 1050.0, report.Profit)
}

func TestSalesSummary_RepositoryError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewSalesUseCase(&salesRepoStub{err: boom}).Summary(context.Background(), repository.MovementFilter{})
	assert.ErrorIs(t, err, boom)
}

func TestDashboard_GetSummary(t *testing.T) {
	sales := &salesRepoStub{rows: []repository.ProductTotals{
		{ProductID: 1, RevenueOut: d(4500), QtyOut: d(30), CostIn: d(12000), QtyIn: d(120)},
	}}
	stock := stockStub{total: 140, lines: []*entity.StockLine{
		{Product: entity.Product{ID: 1, ThresholdKg: 100}, StockKg: 90},
		{Product: entity.Product{ID: 2, ThresholdKg: 10}, StockKg: 50},
		{Product: entity.Product{ID: 3, ThresholdKg: 0}, StockKg: 0},
	}}
	uc := NewDashboardUseCase(stock, shopsStub{n: 2}, NewSalesUseCase(sales))
	uc.now = func() time.Time { return time.Date(2024, 3, 17, 15, 30, 0, 0, time.Local) }

	sum, err := uc.GetSummary(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 140.0, sum.TotalStockKg)
	assert.Equal(t, 3, sum.ActiveProducts)
	assert.Equal(t, 2, sum.Shops)
	assert.Equal(t, 2, sum.LowStockCount)
	assert.Equal(t, "2024-03-01..2024-03-17", sum.Period)
	assert.Equal(t, 4500.0, sum.MonthSales)
	assert.Equal(t, 3000.0, sum.MonthCOGS)
	assert.Equal(t, 1500.0, sum.MonthProfit)

	require.NotNil(t, sales.got.DateFrom)
	require.NotNil(t, sales.got.DateTo)
	assert.Equal(t, 1, sales.got.DateFrom.Day())
	assert.Equal(t, 17, sales.got.DateTo.Day())
	assert.Equal(t, int64(1), sales.got.ShopID)
}
