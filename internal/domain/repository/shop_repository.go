package repository

import (
	"context"

	"github.com/provenderie/ledger/internal/domain/entity"
)

// ShopRepository define el puerto de persistencia para Shop (DIP).
// Los Get devuelven nil, nil cuando no existe.
type ShopRepository interface {
	Create(ctx context.Context, shop *entity.Shop) error
	GetByID(ctx context.Context, id int64) (*entity.Shop, error)
	GetByLabel(ctx context.Context, label string) (*entity.Shop, error)
	Rename(ctx context.Context, id int64, label string) error
	List(ctx context.Context) ([]*entity.Shop, error)
	// DeleteIfUnused borra la tienda solo si ningún movimiento la referencia.
	// Devuelve false (sin error) cuando está en uso.
	DeleteIfUnused(ctx context.Context, id int64) (bool, error)
}
