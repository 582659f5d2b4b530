package dto

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/provenderie/ledger/internal/domain"
	"github.com/provenderie/ledger/internal/domain/entity"
	"github.com/provenderie/ledger/internal/domain/repository"
)

// RegisterMovementRequest entrada para registrar un movimiento.
// Con qty_kg se guarda tal cual (firmada por el llamador). Sin qty_kg se valoriza desde
// bags + kg con los precios unitarios (o los del producto) y el signo lo da el tipo.
type RegisterMovementRequest struct {
	ProductID    int64    `json:"product_id" validate:"required,gt=0"`
	ShopID       int64    `json:"shop_id" validate:"gte=0"`
	Type         string   `json:"type" validate:"required"`
	QtyKg        *float64 `json:"qty_kg"`
	Bags         float64  `json:"bags" validate:"gte=0"`
	Kg           float64  `json:"kg" validate:"gte=0"`
	UnitPriceKg  *float64 `json:"unit_price_kg" validate:"omitempty,gte=0"`
	UnitPriceBag *float64 `json:"unit_price_bag" validate:"omitempty,gte=0"`
	Cost         *float64 `json:"cost"`
	Note         string   `json:"note" validate:"max=500"`
}

// UpdateMovementRequest corrección de un movimiento (extensión opcional).
type UpdateMovementRequest struct {
	ProductID    int64    `json:"product_id" validate:"required,gt=0"`
	ShopID       int64    `json:"shop_id" validate:"required,gt=0"`
	Type         string   `json:"type" validate:"required"`
	QtyKg        float64  `json:"qty_kg"`
	UnitPriceKg  *float64 `json:"unit_price_kg" validate:"omitempty,gte=0"`
	UnitPriceBag *float64 `json:"unit_price_bag" validate:"omitempty,gte=0"`
	Cost         *float64 `json:"cost"`
	Note         string   `json:"note" validate:"max=500"`
}

// AdjustStockRequest ajuste de inventario hacia un stock objetivo.
type AdjustStockRequest struct {
	ProductID int64   `json:"product_id" validate:"required,gt=0"`
	ShopID    int64   `json:"shop_id" validate:"gte=0"`
	Target    float64 `json:"target" validate:"gte=0"`
	Unit      string  `json:"unit" validate:"omitempty,oneof=kg sac"`
}

// AdjustStockResponse resultado del ajuste. Adjusted=false cuando el stock ya era el objetivo.
type AdjustStockResponse struct {
	Adjusted   bool              `json:"adjusted"`
	PreviousKg float64           `json:"previous_kg"`
	TargetKg   float64           `json:"target_kg"`
	DeltaKg    float64           `json:"delta_kg"`
	Movement   *MovementResponse `json:"movement,omitempty"`
}

// MovementResponse salida de un movimiento con etiquetas de producto y tienda.
type MovementResponse struct {
	ID           int64     `json:"id"`
	ProductID    int64     `json:"product_id"`
	ProductLabel string    `json:"product_label,omitempty"`
	ProductCode  string    `json:"product_code,omitempty"`
	ShopID       int64     `json:"shop_id"`
	ShopLabel    string    `json:"shop_label,omitempty"`
	Type         string    `json:"type"`
	QtyKg        float64   `json:"qty_kg"`
	QtyDisplay   string    `json:"qty_display,omitempty"`
	UnitPriceKg  *float64  `json:"unit_price_kg"`
	UnitPriceBag *float64  `json:"unit_price_bag"`
	Cost         *float64  `json:"cost"`
	Note         string    `json:"note"`
	CreatedAt    time.Time `json:"created_at"`
}

// MovementQuery filtros de listado recibidos como texto (query string o flags de CLI).
type MovementQuery struct {
	Type     string `query:"type"`
	ShopID   string `query:"shop_id"`
	Q        string `query:"q"`
	DateFrom string `query:"date_from"`
	DateTo   string `query:"date_to"`
}

// ToFilter valida y convierte los filtros. Texto inválido => ErrInvalidInput.
func (q MovementQuery) ToFilter() (repository.MovementFilter, error) {
	var f repository.MovementFilter
	if strings.TrimSpace(q.Type) != "" {
		t, ok := entity.ParseMovementType(q.Type)
		if !ok {
			return f, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, q.Type)
		}
		f.Type = t
	}
	if s := strings.TrimSpace(q.ShopID); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id < 0 {
			return f, fmt.Errorf("%w: shop_id %q", domain.ErrInvalidInput, q.ShopID)
		}
		f.ShopID = id
	}
	f.Query = strings.TrimSpace(q.Q)

	var err error
	if f.DateFrom, err = ParseDate(q.DateFrom); err != nil {
		return f, err
	}
	if f.DateTo, err = ParseDate(q.DateTo); err != nil {
		return f, err
	}
	if f.DateFrom != nil && f.DateTo != nil && f.DateTo.Before(*f.DateFrom) {
		return f, fmt.Errorf("%w: date_to anterior a date_from", domain.ErrInvalidInput)
	}
	return f, nil
}
