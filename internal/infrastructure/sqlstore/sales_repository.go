package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/provenderie/ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.SalesRepository = (*SalesRepo)(nil)

// SalesRepo lectura agregada de entradas y salidas por producto.
type SalesRepo struct {
	q Querier
}

// NewSalesRepository construye el adaptador de lectura de ventas.
func NewSalesRepository(db *DB) *SalesRepo {
	return &SalesRepo{q: db.x}
}

type totalsRow struct {
	ProductID    int64   `db:"product_id"`
	ProductLabel string  `db:"product_label"`
	RevenueOut   float64 `db:"revenue_out"`
	QtyOut       float64 `db:"qty_out"`
	CostIn       float64 `db:"cost_in"`
	QtyIn        float64 `db:"qty_in"`
}

// TotalsByProduct sumas de IN y OUT por producto en la ventana; los ADJ quedan fuera.
// El filtro de tipo se ignora: el cálculo necesita ambos lados.
func (r *SalesRepo) TotalsByProduct(ctx context.Context, f repository.MovementFilter) ([]repository.ProductTotals, error) {
	conds, args := movementConditions(f)
	conds = append([]string{"m.type IN ('IN', 'OUT')"}, conds...)
	query := `
		SELECT p.id AS product_id, p.label AS product_label,
		       COALESCE(SUM(CASE WHEN m.type = 'OUT' THEN COALESCE(m.cost, 0) ELSE 0 END), 0) AS revenue_out,
		       COALESCE(SUM(CASE WHEN m.type = 'OUT' THEN ABS(m.qty_kg) ELSE 0 END), 0) AS qty_out,
		       COALESCE(SUM(CASE WHEN m.type = 'IN' THEN COALESCE(m.cost, 0) ELSE 0 END), 0) AS cost_in,
		       COALESCE(SUM(CASE WHEN m.type = 'IN' THEN ABS(m.qty_kg) ELSE 0 END), 0) AS qty_in
		FROM movement m
		JOIN product p ON p.id = m.product_id` + where(conds) + `
		GROUP BY p.id, p.label
		ORDER BY p.label, p.id`

	var rows []totalsRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, r.q.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("sales totals: %w", err)
	}
	out := make([]repository.ProductTotals, 0, len(rows))
	for _, row := range rows {
		out = append(out, repository.ProductTotals{
			ProductID:    row.ProductID,
			ProductLabel: row.ProductLabel,
			RevenueOut:   decimal.NewFromFloat(row.RevenueOut),
			QtyOut:       decimal.NewFromFloat(row.QtyOut),
			CostIn:       decimal.NewFromFloat(row.CostIn),
			QtyIn:        decimal.NewFromFloat(row.QtyIn),
		})
	}
	return out, nil
}
