package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/provenderie/ledger/internal/application/dto"
	"github.com/provenderie/ledger/internal/domain"
	"github.com/provenderie/ledger/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func TestRegisterMovement_DefaultsShopAndCost(t *testing.T) {
	l := newLedgerFake()
	p := l.addProduct(entity.Product{Label: "Maïs", BagWeightKg: 50, Active: true})
	uc := newUseCase(l)

	m, err := uc.RegisterMovement(context.Background(), MovementInput{ProductID: p.ID, Type: entity.MovementIn, QtyKg: 120})
	require.NoError(t, err)

	assert.Equal(t, int64(1), m.ShopID)
	require.NotNil(t, m.Cost)
	assert.Equal(t, 0.0, *m.Cost)
	assert.Equal(t, 120.0, m.QtyKg)
}

func TestRegisterMovement_Rejections(t *testing.T) {
	l := newLedgerFake()
	p := l.addProduct(entity.Product{Label: "Maïs", BagWeightKg: 50, Active: true})
	uc := newUseCase(l)
	ctx := context.Background()

	_, err := uc.RegisterMovement(ctx, MovementInput{ProductID: p.ID, Type: "GIFT", QtyKg: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterMovement(ctx, MovementInput{ProductID: 77, Type: entity.MovementIn, QtyKg: 1})
	assert.ErrorIs(t, err, domain.ErrConstraint)

	_, err = uc.RegisterMovement(ctx, MovementInput{ProductID: p.ID, ShopID: 9, Type: entity.MovementIn, QtyKg: 1})
	assert.ErrorIs(t, err, domain.ErrConstraint)
	assert.Empty(t, l.movements)
}

func TestRegisterMovementFromRequest_Priced(t *testing.T) {
	l := newLedgerFake()
	p := l.addProduct(entity.Product{Label: "Tourteau", BagWeightKg: 25, PricePerKg: 180, PricePerBag: 4200, Active: true})
	uc := newUseCase(l)

	res, err := uc.RegisterMovementFromRequest(context.Background(), dto.RegisterMovementRequest{
		ProductID: p.ID, Type: "out", Bags: 2, Kg: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, "OUT", res.Type)
	assert.Equal(t, -55.0, res.QtyKg)
	require.NotNil(t, res.Cost)
	assert.Equal(t, 2*4200.0+5*180.0, *res.Cost)
	assert.Equal(t, "Tourteau", res.ProductLabel)
	// -55 kg con sacos de 25 kg
	assert.Equal(t, "-2 sac(s) + 5.00 kg", res.QtyDisplay)
}

func TestRegisterMovementFromRequest_RawQuantityKeepsCallerSign(t *testing.T) {
	l := newLedgerFake()
	p := l.addProduct(entity.Product{Label: "Son", BagWeightKg: 40, Active: true})
	uc := newUseCase(l)

	res, err := uc.RegisterMovementFromRequest(context.Background(), dto.RegisterMovementRequest{
		ProductID: p.ID, Type: "OUT", QtyKg: f64(12), Cost: f64(600),
	})
	require.NoError(t, err)
	assert.Equal(t, 12.0, res.QtyKg, "el signo es responsabilidad del llamador")
	assert.Equal(t, 600.0, *res.Cost)

	_, err = uc.RegisterMovementFromRequest(context.Background(), dto.RegisterMovementRequest{
		ProductID: p.ID, Type: "IN",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin qty_kg ni sacos/kilos no hay cantidad")
}

func TestAdjustToTarget(t *testing.T) {
	l := newLedgerFake()
	p := l.addProduct(entity.Product{Label: "Blé", BagWeightKg: 50, Active: true})
	uc := newUseCase(l)
	ctx := context.Background()

	_, err := uc.RegisterMovement(ctx, MovementInput{ProductID: p.ID, Type: entity.MovementIn, QtyKg: 130})
	require.NoError(t, err)

	res, err := uc.AdjustToTarget(ctx, AdjustInput{ProductID: p.ID, Target: 2, Unit: "sac"})
	require.NoError(t, err)
	assert.True(t, res.Adjusted)
	assert.Equal(t, 130.0, res.PreviousKg)
	assert.Equal(t, 100.0, res.TargetKg)
	assert.Equal(t, -30.0, res.DeltaKg)
	require.NotNil(t, res.Movement)
	assert.Equal(t, entity.MovementAdj, res.Movement.Type)
	assert.Equal(t, "Ajustement inventaire -> cible 100.00 kg (delta -30.00 kg)", res.Movement.Note)

	again, err := uc.AdjustToTarget(ctx, AdjustInput{ProductID: p.ID, Target: 100})
	require.NoError(t, err)
	assert.False(t, again.Adjusted)
	assert.Nil(t, again.Movement)
	assert.Len(t, l.movements, 2)

	_, err = uc.AdjustToTarget(ctx, AdjustInput{ProductID: p.ID, Target: 1, Unit: "tonne"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AdjustToTarget(ctx, AdjustInput{ProductID: 99, Target: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateMovement_ImmutableByDefault(t *testing.T) {
	l := newLedgerFake()
	p := l.addProduct(entity.Product{Label: "Orge", BagWeightKg: 50, Active: true})
	uc := newUseCase(l)
	ctx := context.Background()

	m, err := uc.RegisterMovement(ctx, MovementInput{ProductID: p.ID, Type: entity.MovementIn, QtyKg: 10})
	require.NoError(t, err)

	assert.False(t, uc.EditEnabled())
	_, err = uc.UpdateMovement(ctx, m.ID, MovementInput{ProductID: p.ID, Type: entity.MovementIn, QtyKg: 11})
	assert.ErrorIs(t, err, domain.ErrImmutable)
	assert.Equal(t, 10.0, l.movements[0].QtyKg)
}

func TestUpdateMovement_WithEditorKeepsCreatedAt(t *testing.T) {
	l := newLedgerFake()
	p := l.addProduct(entity.Product{Label: "Orge", BagWeightKg: 50, Active: true})
	uc := newUseCase(l, WithEditor(editorFake{l}))
	ctx := context.Background()

	m, err := uc.RegisterMovement(ctx, MovementInput{ProductID: p.ID, Type: entity.MovementIn, QtyKg: 10})
	require.NoError(t, err)
	created := m.CreatedAt
	l.now = l.now.Add(72 * time.Hour)

	upd, err := uc.UpdateMovement(ctx, m.ID, MovementInput{ProductID: p.ID, Type: entity.MovementIn, QtyKg: 12.5, Note: "pesée"})
	require.NoError(t, err)
	assert.Equal(t, created, upd.CreatedAt)
	assert.Equal(t, 12.5, l.movements[0].QtyKg)
	assert.Equal(t, created, l.movements[0].CreatedAt)

	_, err = uc.UpdateMovement(ctx, 404, MovementInput{ProductID: p.ID, Type: entity.MovementIn, QtyKg: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
