package repository

import (
	"context"
	"time"

	"github.com/provenderie/ledger/internal/domain/entity"
)

// MovementFilter filtros combinados (AND) sobre el libro de movimientos.
// Valores cero = sin filtro. Las fechas se comparan por día, ambos extremos inclusive.
type MovementFilter struct {
	Type     entity.MovementType
	ShopID   int64
	Query    string // subcadena en label o code del producto
	DateFrom *time.Time
	DateTo   *time.Time
}

// MovementRepository define el puerto de persistencia del libro (solo alta y lectura).
type MovementRepository interface {
	// Create asigna ID y CreatedAt (precisión de segundos).
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id int64) (*entity.MovementView, error)
	// List ordena por created_at DESC, id DESC.
	List(ctx context.Context, filter MovementFilter) ([]*entity.MovementView, error)
}

// MovementEditor extensión opcional que permite corregir un movimiento en sitio.
// CreatedAt nunca cambia. Solo se expone cuando la configuración lo habilita.
type MovementEditor interface {
	Update(ctx context.Context, movement *entity.Movement) error
}
