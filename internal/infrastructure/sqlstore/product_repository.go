package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/provenderie/ledger/internal/domain/entity"
	"github.com/provenderie/ledger/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = "id, code, label, bag_weight_kg, price_per_kg, price_per_bag, threshold_kg, active"

// ProductRepo implementación del puerto ProductRepository.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(db *DB) *ProductRepo {
	return &ProductRepo{q: db.x}
}

type productRow struct {
	ID          int64          `db:"id"`
	Code        sql.NullString `db:"code"`
	Label       string         `db:"label"`
	BagWeightKg float64        `db:"bag_weight_kg"`
	PricePerKg  float64        `db:"price_per_kg"`
	PricePerBag float64        `db:"price_per_bag"`
	ThresholdKg float64        `db:"threshold_kg"`
	Active      int64          `db:"active"`
}

func (r productRow) toEntity() entity.Product {
	p := entity.Product{
		ID:          r.ID,
		Label:       r.Label,
		BagWeightKg: r.BagWeightKg,
		PricePerKg:  r.PricePerKg,
		PricePerBag: r.PricePerBag,
		ThresholdKg: r.ThresholdKg,
		Active:      r.Active != 0,
	}
	if r.Code.Valid {
		code := r.Code.String
		p.Code = &code
	}
	return p
}

// Create persiste un producto activo y asigna su ID. Código repetido => ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO product (code, label, bag_weight_kg, price_per_kg, price_per_bag, threshold_kg, active)
		VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`
	err := r.q.QueryRowxContext(ctx, r.q.Rebind(query),
		nullableCode(product.Code), product.Label, product.BagWeightKg,
		product.PricePerKg, product.PricePerBag, product.ThresholdKg, boolToInt(product.Active),
	).Scan(&product.ID)
	if err != nil {
		return classify("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID (activo o no).
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.getOne(ctx, "SELECT "+productColumns+" FROM product WHERE id = ?", id)
}

// GetByLabel primer producto (por ID) con esa etiqueta exacta.
func (r *ProductRepo) GetByLabel(ctx context.Context, label string) (*entity.Product, error) {
	return r.getOne(ctx, "SELECT "+productColumns+" FROM product WHERE label = ? ORDER BY id LIMIT 1", label)
}

// GetByCode obtiene un producto por código.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	return r.getOne(ctx, "SELECT "+productColumns+" FROM product WHERE code = ?", code)
}

func (r *ProductRepo) getOne(ctx context.Context, query string, arg any) (*entity.Product, error) {
	var row productRow
	if err := sqlx.GetContext(ctx, r.q, &row, r.q.Rebind(query), arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	p := row.toEntity()
	return &p, nil
}

// Update reemplaza todos los campos editables, incluido Active.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE product
		SET code = ?, label = ?, bag_weight_kg = ?, price_per_kg = ?, price_per_bag = ?, threshold_kg = ?, active = ?
		WHERE id = ?`
	res, err := r.q.ExecContext(ctx, r.q.Rebind(query),
		nullableCode(product.Code), product.Label, product.BagWeightKg,
		product.PricePerKg, product.PricePerBag, product.ThresholdKg, boolToInt(product.Active),
		product.ID,
	)
	if err != nil {
		return classify("update product", err)
	}
	return requireAffected(res, "update product")
}

// Archive marca el producto como inactivo. Idempotente.
func (r *ProductRepo) Archive(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind("UPDATE product SET active = 0 WHERE id = ?"), id)
	if err != nil {
		return classify("archive product", err)
	}
	return requireAffected(res, "archive product")
}

// List filtra por subcadena en label o code sin distinguir mayúsculas; solo activos salvo includeInactive.
func (r *ProductRepo) List(ctx context.Context, query string, includeInactive bool) ([]*entity.Product, error) {
	var (
		conds []string
		args  []any
	)
	if !includeInactive {
		conds = append(conds, "active = 1")
	}
	if q := strings.TrimSpace(query); q != "" {
		like := likePattern(q)
		conds = append(conds, "(LOWER(label) LIKE ? OR LOWER(COALESCE(code, '')) LIKE ?)")
		args = append(args, like, like)
	}
	sqlText := "SELECT " + productColumns + " FROM product" + where(conds) + " ORDER BY label, id"

	var rows []productRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, r.q.Rebind(sqlText), args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	out := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		p := row.toEntity()
		out = append(out, &p)
	}
	return out, nil
}

// nullableCode guarda NULL para código ausente o vacío (la unicidad solo aplica a códigos reales).
func nullableCode(code *string) any {
	if code == nil {
		return nil
	}
	c := strings.TrimSpace(*code)
	if c == "" {
		return nil
	}
	return c
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func likePattern(q string) string {
	return "%" + strings.ToLower(q) + "%"
}

func where(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(conds, " AND ")
}
