package repository

import (
	"context"

	"github.com/provenderie/ledger/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los productos no se borran: Archive los marca inactivos.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetByLabel(ctx context.Context, label string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Archive(ctx context.Context, id int64) error
	// List filtra por subcadena (sin distinguir mayúsculas) en label o code, ordenado por label.
	List(ctx context.Context, query string, includeInactive bool) ([]*entity.Product, error)
}
