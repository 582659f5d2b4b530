package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/provenderie/ledger/internal/domain"
	"github.com/provenderie/ledger/internal/domain/entity"
	"github.com/provenderie/ledger/internal/domain/repository"
)

var (
	_ repository.MovementRepository = (*MovementRepo)(nil)
	_ repository.MovementEditor     = (*MovementRepo)(nil)
)

const movementSelect = `
	SELECT m.id, m.product_id, m.shop_id, m.type, m.qty_kg,
	       m.unit_price_kg, m.unit_price_bag, m.cost, m.note, m.created_at,
	       p.label AS product_label, p.code AS product_code, p.bag_weight_kg,
	       s.label AS shop_label
	FROM movement m
	JOIN product p ON p.id = m.product_id
	JOIN shop s ON s.id = m.shop_id`

// MovementRepo implementación del libro de movimientos.
type MovementRepo struct {
	q   Querier
	now func() time.Time
}

// NewMovementRepository construye el adaptador del libro; usa el reloj del almacén.
func NewMovementRepository(db *DB) *MovementRepo {
	return &MovementRepo{q: db.x, now: db.now}
}

type movementRow struct {
	ID           int64           `db:"id"`
	ProductID    int64           `db:"product_id"`
	ShopID       int64           `db:"shop_id"`
	Type         string          `db:"type"`
	QtyKg        float64         `db:"qty_kg"`
	UnitPriceKg  sql.NullFloat64 `db:"unit_price_kg"`
	UnitPriceBag sql.NullFloat64 `db:"unit_price_bag"`
	Cost         sql.NullFloat64 `db:"cost"`
	Note         sql.NullString  `db:"note"`
	CreatedAt    string          `db:"created_at"`
	ProductLabel string          `db:"product_label"`
	ProductCode  sql.NullString  `db:"product_code"`
	BagWeightKg  float64         `db:"bag_weight_kg"`
	ShopLabel    string          `db:"shop_label"`
}

func (r movementRow) toView() (*entity.MovementView, error) {
	createdAt, err := parseTime(r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &entity.MovementView{
		Movement: entity.Movement{
			ID:           r.ID,
			ProductID:    r.ProductID,
			ShopID:       r.ShopID,
			Type:         entity.MovementType(r.Type),
			QtyKg:        r.QtyKg,
			UnitPriceKg:  floatPtr(r.UnitPriceKg),
			UnitPriceBag: floatPtr(r.UnitPriceBag),
			Cost:         floatPtr(r.Cost),
			Note:         r.Note.String,
			CreatedAt:    createdAt,
		},
		ProductLabel: r.ProductLabel,
		ProductCode:  r.ProductCode.String,
		BagWeightKg:  r.BagWeightKg,
		ShopLabel:    r.ShopLabel,
	}, nil
}

// Create agrega un movimiento al libro; asigna ID y CreatedAt (segundos, hora local).
// Producto o tienda inexistentes, o un tipo fuera de IN/OUT/ADJ => ErrConstraint.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	if !m.Type.Valid() {
		return fmt.Errorf("insert movement: %w: tipo %q", domain.ErrConstraint, m.Type)
	}
	stamp := formatTime(r.now())
	createdAt, err := parseTime(stamp)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO movement (product_id, shop_id, type, qty_kg, unit_price_kg, unit_price_bag, cost, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`
	err = r.q.QueryRowxContext(ctx, r.q.Rebind(query),
		m.ProductID, m.ShopID, string(m.Type), m.QtyKg,
		m.UnitPriceKg, m.UnitPriceBag, m.Cost, nullableText(m.Note), stamp,
	).Scan(&m.ID)
	if err != nil {
		return classify("insert movement", err)
	}
	m.CreatedAt = createdAt
	return nil
}

// Update corrige un movimiento en sitio (extensión opcional). created_at no se toca.
func (r *MovementRepo) Update(ctx context.Context, m *entity.Movement) error {
	if !m.Type.Valid() {
		return fmt.Errorf("update movement: %w: tipo %q", domain.ErrConstraint, m.Type)
	}
	query := `
		UPDATE movement
		SET product_id = ?, shop_id = ?, type = ?, qty_kg = ?,
		    unit_price_kg = ?, unit_price_bag = ?, cost = ?, note = ?
		WHERE id = ?`
	res, err := r.q.ExecContext(ctx, r.q.Rebind(query),
		m.ProductID, m.ShopID, string(m.Type), m.QtyKg,
		m.UnitPriceKg, m.UnitPriceBag, m.Cost, nullableText(m.Note), m.ID,
	)
	if err != nil {
		return classify("update movement", err)
	}
	return requireAffected(res, "update movement")
}

// GetByID obtiene un movimiento con etiquetas de producto y tienda.
func (r *MovementRepo) GetByID(ctx context.Context, id int64) (*entity.MovementView, error) {
	var row movementRow
	if err := sqlx.GetContext(ctx, r.q, &row, r.q.Rebind(movementSelect+" WHERE m.id = ?"), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return row.toView()
}

// List aplica los filtros (AND) y ordena del más reciente al más antiguo.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.MovementView, error) {
	conds, args := movementConditions(f)
	if f.Type != "" {
		conds = append(conds, "m.type = ?")
		args = append(args, string(f.Type))
	}
	query := movementSelect + where(conds) + " ORDER BY m.created_at DESC, m.id DESC"

	var rows []movementRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, r.q.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	out := make([]*entity.MovementView, 0, len(rows))
	for _, row := range rows {
		v, err := row.toView()
		if err != nil {
			return nil, fmt.Errorf("list movements: %w", err)
		}
		out = append(out, v)
	}
	return out, nil
}

// movementConditions filtros comunes a listados y ventas (todo salvo el tipo).
// Requiere los alias m (movement) y p (product) en la consulta.
func movementConditions(f repository.MovementFilter) ([]string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.ShopID > 0 {
		conds = append(conds, "m.shop_id = ?")
		args = append(args, f.ShopID)
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		like := likePattern(q)
		conds = append(conds, "(LOWER(p.label) LIKE ? OR LOWER(COALESCE(p.code, '')) LIKE ?)")
		args = append(args, like, like)
	}
	// created_at empieza por YYYY-MM-DD: la comparación de texto sobre el día es inclusiva
	if f.DateFrom != nil {
		conds = append(conds, "substr(m.created_at, 1, 10) >= ?")
		args = append(args, f.DateFrom.Format(dateLayout))
	}
	if f.DateTo != nil {
		conds = append(conds, "substr(m.created_at, 1, 10) <= ?")
		args = append(args, f.DateTo.Format(dateLayout))
	}
	return conds, args
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return s
}
