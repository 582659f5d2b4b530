package inventory

import (
	"context"
	"fmt"

	"github.com/provenderie/ledger/internal/application/dto"
	"github.com/provenderie/ledger/internal/domain"
	"github.com/provenderie/ledger/internal/domain/entity"
	inv "github.com/provenderie/ledger/internal/domain/inventory"
)

// RegisterMovementFromRequest adapta el request HTTP/CLI al caso de uso.
// Con qty_kg se registra tal cual; sin qty_kg se valoriza desde bags + kg.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	t, ok := entity.ParseMovementType(in.Type)
	if !ok {
		return nil, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, in.Type)
	}

	var (
		m   *entity.Movement
		err error
	)
	if in.QtyKg != nil {
		m, err = uc.RegisterMovement(ctx, MovementInput{
			ProductID:    in.ProductID,
			ShopID:       in.ShopID,
			Type:         t,
			QtyKg:        *in.QtyKg,
			UnitPriceKg:  in.UnitPriceKg,
			UnitPriceBag: in.UnitPriceBag,
			Cost:         in.Cost,
			Note:         in.Note,
		})
	} else {
		m, err = uc.RegisterPricedMovement(ctx, PricedInput{
			ProductID:    in.ProductID,
			ShopID:       in.ShopID,
			Type:         t,
			Bags:         in.Bags,
			Kg:           in.Kg,
			UnitPriceKg:  in.UnitPriceKg,
			UnitPriceBag: in.UnitPriceBag,
			Cost:         in.Cost,
			Note:         in.Note,
		})
	}
	if err != nil {
		return nil, err
	}
	return uc.describe(ctx, m)
}

// UpdateMovementFromRequest adapta la corrección de un movimiento.
func (uc *RegisterMovementUseCase) UpdateMovementFromRequest(ctx context.Context, id int64, in dto.UpdateMovementRequest) (*dto.MovementResponse, error) {
	t, ok := entity.ParseMovementType(in.Type)
	if !ok {
		return nil, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, in.Type)
	}
	m, err := uc.UpdateMovement(ctx, id, MovementInput{
		ProductID:    in.ProductID,
		ShopID:       in.ShopID,
		Type:         t,
		QtyKg:        in.QtyKg,
		UnitPriceKg:  in.UnitPriceKg,
		UnitPriceBag: in.UnitPriceBag,
		Cost:         in.Cost,
		Note:         in.Note,
	})
	if err != nil {
		return nil, err
	}
	return uc.describe(ctx, m)
}

// AdjustFromRequest adapta el ajuste de inventario.
func (uc *RegisterMovementUseCase) AdjustFromRequest(ctx context.Context, in dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	res, err := uc.AdjustToTarget(ctx, AdjustInput{
		ProductID: in.ProductID,
		ShopID:    in.ShopID,
		Target:    in.Target,
		Unit:      in.Unit,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.AdjustStockResponse{
		Adjusted:   res.Adjusted,
		PreviousKg: res.PreviousKg,
		TargetKg:   res.TargetKg,
		DeltaKg:    res.DeltaKg,
	}
	if res.Movement != nil {
		if out.Movement, err = uc.describe(ctx, res.Movement); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// describe relee el movimiento con etiquetas para la respuesta.
func (uc *RegisterMovementUseCase) describe(ctx context.Context, m *entity.Movement) (*dto.MovementResponse, error) {
	view, err := uc.movements.GetByID(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	if view == nil {
		view = &entity.MovementView{Movement: *m}
	}
	return ToMovementResponse(view), nil
}

// ToMovementResponse convierte la vista del libro en DTO, con la cantidad en sacos + kg.
func ToMovementResponse(v *entity.MovementView) *dto.MovementResponse {
	out := &dto.MovementResponse{
		ID:           v.ID,
		ProductID:    v.ProductID,
		ProductLabel: v.ProductLabel,
		ProductCode:  v.ProductCode,
		ShopID:       v.ShopID,
		ShopLabel:    v.ShopLabel,
		Type:         string(v.Type),
		QtyKg:        v.QtyKg,
		UnitPriceKg:  v.UnitPriceKg,
		UnitPriceBag: v.UnitPriceBag,
		Cost:         v.Cost,
		Note:         v.Note,
		CreatedAt:    v.CreatedAt,
	}
	if v.ProductLabel != "" {
		out.QtyDisplay = inv.KgToBagRepr(v.QtyKg, v.BagWeightKg)
	}
	return out
}
