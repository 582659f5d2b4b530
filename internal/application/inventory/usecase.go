package inventory

import (
	"context"
	"fmt"
	"math"

	"github.com/provenderie/ledger/internal/domain"
	"github.com/provenderie/ledger/internal/domain/entity"
	inv "github.com/provenderie/ledger/internal/domain/inventory"
	"github.com/provenderie/ledger/internal/domain/repository"
	"github.com/rs/zerolog"
)

// adjustEpsilon por debajo de esta diferencia (kg) el ajuste no registra nada.
const adjustEpsilon = 1e-9

// RegisterMovementUseCase alta de movimientos en el libro, ajustes de inventario y,
// solo si se configura un editor, corrección de movimientos existentes.
type RegisterMovementUseCase struct {
	movements     repository.MovementRepository
	products      repository.ProductRepository
	stock         repository.StockRepository
	editor        repository.MovementEditor
	defaultShopID int64
	log           zerolog.Logger
}

// Option configura el caso de uso.
type Option func(*RegisterMovementUseCase)

// WithEditor habilita la corrección de movimientos (extensión fuera del libro append-only).
func WithEditor(editor repository.MovementEditor) Option {
	return func(uc *RegisterMovementUseCase) { uc.editor = editor }
}

// WithDefaultShop tienda usada cuando la entrada no indica ninguna.
func WithDefaultShop(id int64) Option {
	return func(uc *RegisterMovementUseCase) { uc.defaultShopID = id }
}

// WithLogger registra las altas y ajustes.
func WithLogger(l zerolog.Logger) Option {
	return func(uc *RegisterMovementUseCase) { uc.log = l }
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	movements repository.MovementRepository,
	products repository.ProductRepository,
	stock repository.StockRepository,
	opts ...Option,
) *RegisterMovementUseCase {
	uc := &RegisterMovementUseCase{
		movements:     movements,
		products:      products,
		stock:         stock,
		defaultShopID: 1,
		log:           zerolog.Nop(),
	}
	for _, o := range opts {
		o(uc)
	}
	return uc
}

// MovementInput entrada ya resuelta de un movimiento. QtyKg es firmada por el llamador;
// Cost nil se guarda como 0.
type MovementInput struct {
	ProductID    int64
	ShopID       int64
	Type         entity.MovementType
	QtyKg        float64
	UnitPriceKg  *float64
	UnitPriceBag *float64
	Cost         *float64
	Note         string
}

// RegisterMovement valida la entrada y la agrega al libro. Producto o tienda inexistentes
// los rechaza el almacén con ErrConstraint.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, in MovementInput) (*entity.Movement, error) {
	m, err := uc.build(in)
	if err != nil {
		return nil, err
	}
	if err := uc.movements.Create(ctx, m); err != nil {
		return nil, err
	}
	uc.log.Debug().
		Int64("movement_id", m.ID).
		Int64("product_id", m.ProductID).
		Int64("shop_id", m.ShopID).
		Str("type", string(m.Type)).
		Float64("qty_kg", m.QtyKg).
		Msg("movimiento registrado")
	return m, nil
}

// PricedInput movimiento capturado en sacos + kilos sueltos. Los precios nil toman los del producto.
type PricedInput struct {
	ProductID    int64
	ShopID       int64
	Type         entity.MovementType
	Bags         float64
	Kg           float64
	UnitPriceKg  *float64
	UnitPriceBag *float64
	Cost         *float64 // si se indica, reemplaza el costo calculado
	Note         string
}

// RegisterPricedMovement valoriza la entrada con el peso de saco del producto y la registra.
func (uc *RegisterMovementUseCase) RegisterPricedMovement(ctx context.Context, in PricedInput) (*entity.Movement, error) {
	product, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %d: %w", in.ProductID, domain.ErrNotFound)
	}

	priceBag, priceKg := product.PricePerBag, product.PricePerKg
	if in.UnitPriceBag != nil {
		priceBag = *in.UnitPriceBag
	}
	if in.UnitPriceKg != nil {
		priceKg = *in.UnitPriceKg
	}
	p, err := inv.PriceMovement(in.Type, in.Bags, in.Kg, product.BagWeightKg, priceBag, priceKg)
	if err != nil {
		return nil, err
	}
	cost := p.Cost
	if in.Cost != nil {
		cost = *in.Cost
	}
	return uc.RegisterMovement(ctx, MovementInput{
		ProductID:    in.ProductID,
		ShopID:       in.ShopID,
		Type:         in.Type,
		QtyKg:        p.QtyKg,
		UnitPriceKg:  p.UnitPriceKg,
		UnitPriceBag: p.UnitPriceBag,
		Cost:         &cost,
		Note:         in.Note,
	})
}

// AdjustInput ajuste hacia un stock objetivo expresado en kg o en sacos ("sac").
type AdjustInput struct {
	ProductID int64
	ShopID    int64
	Target    float64
	Unit      string
}

// AdjustResult resultado de AdjustToTarget. Movement es nil cuando no hubo diferencia.
type AdjustResult struct {
	Adjusted   bool
	PreviousKg float64
	TargetKg   float64
	DeltaKg    float64
	Movement   *entity.Movement
}

// AdjustToTarget registra un ADJ por la diferencia entre el objetivo y el stock actual.
func (uc *RegisterMovementUseCase) AdjustToTarget(ctx context.Context, in AdjustInput) (*AdjustResult, error) {
	if in.Target < 0 || math.IsNaN(in.Target) || math.IsInf(in.Target, 0) {
		return nil, fmt.Errorf("%w: objetivo %v", domain.ErrInvalidInput, in.Target)
	}
	product, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("producto %d: %w", in.ProductID, domain.ErrNotFound)
	}
	shopID := uc.shopOrDefault(in.ShopID)

	targetKg := in.Target
	switch in.Unit {
	case "", "kg":
	case "sac":
		targetKg = inv.BagsToKg(in.Target, product.BagWeightKg)
	default:
		return nil, fmt.Errorf("%w: unidad %q", domain.ErrInvalidInput, in.Unit)
	}

	current, err := uc.stock.StockKg(ctx, product.ID, shopID)
	if err != nil {
		return nil, err
	}
	res := &AdjustResult{PreviousKg: current, TargetKg: targetKg, DeltaKg: targetKg - current}
	if math.Abs(res.DeltaKg) < adjustEpsilon {
		res.DeltaKg = 0
		return res, nil
	}

	zero := 0.0
	m, err := uc.RegisterMovement(ctx, MovementInput{
		ProductID: product.ID,
		ShopID:    shopID,
		Type:      entity.MovementAdj,
		QtyKg:     res.DeltaKg,
		Cost:      &zero,
		Note:      fmt.Sprintf("Ajustement inventaire -> cible %.2f kg (delta %+.2f kg)", targetKg, res.DeltaKg),
	})
	if err != nil {
		return nil, err
	}
	res.Adjusted = true
	res.Movement = m
	uc.log.Info().Int64("product_id", product.ID).Int64("shop_id", shopID).Float64("delta_kg", res.DeltaKg).Msg("inventario ajustado")
	return res, nil
}

// EditEnabled indica si la corrección de movimientos está habilitada.
func (uc *RegisterMovementUseCase) EditEnabled() bool {
	return uc.editor != nil
}

// UpdateMovement corrige un movimiento existente conservando su fecha de alta.
// Sin editor configurado el libro es append-only y devuelve ErrImmutable.
func (uc *RegisterMovementUseCase) UpdateMovement(ctx context.Context, id int64, in MovementInput) (*entity.Movement, error) {
	if uc.editor == nil {
		return nil, domain.ErrImmutable
	}
	existing, err := uc.movements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("movimiento %d: %w", id, domain.ErrNotFound)
	}
	m, err := uc.build(in)
	if err != nil {
		return nil, err
	}
	m.ID = id
	m.CreatedAt = existing.CreatedAt
	if err := uc.editor.Update(ctx, m); err != nil {
		return nil, err
	}
	uc.log.Warn().Int64("movement_id", id).Msg("movimiento corregido")
	return m, nil
}

// GetMovement obtiene un movimiento; nil si no existe.
func (uc *RegisterMovementUseCase) GetMovement(ctx context.Context, id int64) (*entity.MovementView, error) {
	return uc.movements.GetByID(ctx, id)
}

// ListMovements lista el libro con los filtros dados, del más reciente al más antiguo.
func (uc *RegisterMovementUseCase) ListMovements(ctx context.Context, f repository.MovementFilter) ([]*entity.MovementView, error) {
	return uc.movements.List(ctx, f)
}

func (uc *RegisterMovementUseCase) build(in MovementInput) (*entity.Movement, error) {
	if !in.Type.Valid() {
		return nil, fmt.Errorf("%w: tipo %q", domain.ErrInvalidInput, in.Type)
	}
	if in.ProductID <= 0 {
		return nil, fmt.Errorf("%w: product_id requerido", domain.ErrInvalidInput)
	}
	if math.IsNaN(in.QtyKg) || math.IsInf(in.QtyKg, 0) {
		return nil, fmt.Errorf("%w: cantidad %v", domain.ErrInvalidInput, in.QtyKg)
	}
	cost := 0.0
	if in.Cost != nil {
		cost = *in.Cost
	}
	return &entity.Movement{
		ProductID:    in.ProductID,
		ShopID:       uc.shopOrDefault(in.ShopID),
		Type:         in.Type,
		QtyKg:        in.QtyKg,
		UnitPriceKg:  in.UnitPriceKg,
		UnitPriceBag: in.UnitPriceBag,
		Cost:         &cost,
		Note:         in.Note,
	}, nil
}

func (uc *RegisterMovementUseCase) shopOrDefault(id int64) int64 {
	if id > 0 {
		return id
	}
	return uc.defaultShopID
}
