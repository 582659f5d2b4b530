package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/provenderie/ledger/internal/domain"
	"github.com/provenderie/ledger/internal/domain/entity"
	"github.com/provenderie/ledger/internal/domain/repository"
)

var _ repository.ShopRepository = (*ShopRepo)(nil)

// ShopRepo implementación del puerto ShopRepository.
type ShopRepo struct {
	q Querier
}

// NewShopRepository construye el adaptador de persistencia para tiendas.
func NewShopRepository(db *DB) *ShopRepo {
	return &ShopRepo{q: db.x}
}

type shopRow struct {
	ID    int64  `db:"id"`
	Label string `db:"label"`
}

func (r shopRow) toEntity() *entity.Shop {
	return &entity.Shop{ID: r.ID, Label: r.Label}
}

// Create persiste una tienda y asigna su ID. Etiqueta repetida => ErrDuplicate.
func (r *ShopRepo) Create(ctx context.Context, shop *entity.Shop) error {
	err := r.q.QueryRowxContext(ctx, r.q.Rebind("INSERT INTO shop (label) VALUES (?) RETURNING id"), shop.Label).
		Scan(&shop.ID)
	if err != nil {
		return classify("insert shop", err)
	}
	return nil
}

// GetByID obtiene una tienda por ID.
func (r *ShopRepo) GetByID(ctx context.Context, id int64) (*entity.Shop, error) {
	return r.getOne(ctx, "SELECT id, label FROM shop WHERE id = ?", id)
}

// GetByLabel obtiene una tienda por etiqueta exacta.
func (r *ShopRepo) GetByLabel(ctx context.Context, label string) (*entity.Shop, error) {
	return r.getOne(ctx, "SELECT id, label FROM shop WHERE label = ?", label)
}

func (r *ShopRepo) getOne(ctx context.Context, query string, arg any) (*entity.Shop, error) {
	var row shopRow
	if err := sqlx.GetContext(ctx, r.q, &row, r.q.Rebind(query), arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shop: %w", err)
	}
	return row.toEntity(), nil
}

// Rename cambia la etiqueta en sitio.
func (r *ShopRepo) Rename(ctx context.Context, id int64, label string) error {
	res, err := r.q.ExecContext(ctx, r.q.Rebind("UPDATE shop SET label = ? WHERE id = ?"), label, id)
	if err != nil {
		return classify("rename shop", err)
	}
	return requireAffected(res, "rename shop")
}

// List devuelve todas las tiendas ordenadas por ID.
func (r *ShopRepo) List(ctx context.Context) ([]*entity.Shop, error) {
	var rows []shopRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, "SELECT id, label FROM shop ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	out := make([]*entity.Shop, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

// DeleteIfUnused borra la tienda si ningún movimiento la referencia; si no, false sin error.
func (r *ShopRepo) DeleteIfUnused(ctx context.Context, id int64) (bool, error) {
	var used int
	if err := sqlx.GetContext(ctx, r.q, &used, r.q.Rebind("SELECT COUNT(*) FROM movement WHERE shop_id = ?"), id); err != nil {
		return false, fmt.Errorf("count shop movements: %w", err)
	}
	if used > 0 {
		return false, nil
	}
	if _, err := r.q.ExecContext(ctx, r.q.Rebind("DELETE FROM shop WHERE id = ?"), id); err != nil {
		return false, classify("delete shop", err)
	}
	return true, nil
}

// requireAffected convierte un UPDATE sin filas en ErrNotFound.
func requireAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	return nil
}
