package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/provenderie/ledger/internal/domain/entity"
	"github.com/provenderie/ledger/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo stock derivado por suma de movimientos; no hay tabla de saldos.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de lectura de stock.
func NewStockRepository(db *DB) *StockRepo {
	return &StockRepo{q: db.x}
}

// StockKg suma qty_kg de un producto en una tienda; 0 si no hay movimientos.
func (r *StockRepo) StockKg(ctx context.Context, productID, shopID int64) (float64, error) {
	var kg float64
	query := "SELECT COALESCE(SUM(qty_kg), 0) FROM movement WHERE product_id = ? AND shop_id = ?"
	if err := sqlx.GetContext(ctx, r.q, &kg, r.q.Rebind(query), productID, shopID); err != nil {
		return 0, fmt.Errorf("stock kg: %w", err)
	}
	return kg, nil
}

// TotalStockKg suma qty_kg de todos los productos de una tienda.
func (r *StockRepo) TotalStockKg(ctx context.Context, shopID int64) (float64, error) {
	var kg float64
	query := "SELECT COALESCE(SUM(qty_kg), 0) FROM movement WHERE shop_id = ?"
	if err := sqlx.GetContext(ctx, r.q, &kg, r.q.Rebind(query), shopID); err != nil {
		return 0, fmt.Errorf("total stock kg: %w", err)
	}
	return kg, nil
}

type stockRow struct {
	productRow
	StockKg float64 `db:"stock_kg"`
}

// ListStocks una línea por producto activo, en una sola consulta agrupada.
func (r *StockRepo) ListStocks(ctx context.Context, shopID int64) ([]*entity.StockLine, error) {
	query := `
		SELECT p.id, p.code, p.label, p.bag_weight_kg, p.price_per_kg, p.price_per_bag, p.threshold_kg, p.active,
		       COALESCE(s.stock_kg, 0) AS stock_kg
		FROM product p
		LEFT JOIN (
			SELECT product_id, SUM(qty_kg) AS stock_kg
			FROM movement
			WHERE shop_id = ?
			GROUP BY product_id
		) s ON s.product_id = p.id
		WHERE p.active = 1
		ORDER BY p.label, p.id`
	var rows []stockRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, r.q.Rebind(query), shopID); err != nil {
		return nil, fmt.Errorf("list stocks: %w", err)
	}
	out := make([]*entity.StockLine, 0, len(rows))
	for _, row := range rows {
		out = append(out, &entity.StockLine{Product: row.toEntity(), StockKg: row.StockKg})
	}
	return out, nil
}
