package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/provenderie/ledger/internal/domain"
	"github.com/provenderie/ledger/internal/domain/entity"
	"github.com/provenderie/ledger/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptyFilter() repository.MovementFilter { return repository.MovementFilter{} }

func ids(vs []*entity.MovementView) []int64 {
	out := make([]int64, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.ID)
	}
	return out
}

func TestMovementRepo_CreateAssignsIDAndTimestamp(t *testing.T) {
	clock := &testClock{t: time.Date(2024, 5, 14, 9, 30, 15, 987654321, time.Local)}
	db := openTestDB(t, WithClock(clock.now))
	repo := NewMovementRepository(db)
	ctx := context.Background()

	p := mustProduct(t, db, "Maïs", 50, 0)
	price := 100.0
	cost := 12000.0
	m := &entity.Movement{ProductID: p.ID, ShopID: 1, Type: entity.MovementIn, QtyKg: 120, UnitPriceKg: &price, Cost: &cost, Note: "livraison"}
	require.NoError(t, repo.Create(ctx, m))

	assert.NotZero(t, m.ID)
	assert.Equal(t, time.Date(2024, 5, 14, 9, 30, 15, 0, time.Local), m.CreatedAt)

	got, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, m.CreatedAt, got.CreatedAt)
	assert.Equal(t, "Maïs", got.ProductLabel)
	assert.Equal(t, DefaultShopLabel, got.ShopLabel)
	assert.Equal(t, 50.0, got.BagWeightKg)
	assert.Equal(t, "livraison", got.Note)
	require.NotNil(t, got.UnitPriceKg)
	assert.Equal(t, 100.0, *got.UnitPriceKg)
	assert.Nil(t, got.UnitPriceBag)
	assert.Equal(t, 12000.0, got.CostOrZero())

	var raw string
	require.NoError(t, db.x.GetContext(ctx, &raw, "SELECT created_at FROM movement WHERE id = ?", m.ID))
	assert.Equal(t, "2024-05-14T09:30:15", raw)
}

func TestMovementRepo_ConstraintViolations(t *testing.T) {
	db := openTestDB(t)
	repo := NewMovementRepository(db)
	ctx := context.Background()
	p := mustProduct(t, db, "Avoine", 40, 0)

	err := repo.Create(ctx, &entity.Movement{ProductID: 999, ShopID: 1, Type: entity.MovementIn, QtyKg: 1})
	assert.ErrorIs(t, err, domain.ErrConstraint)

	err = repo.Create(ctx, &entity.Movement{ProductID: p.ID, ShopID: 999, Type: entity.MovementIn, QtyKg: 1})
	assert.ErrorIs(t, err, domain.ErrConstraint)

	err = repo.Create(ctx, &entity.Movement{ProductID: p.ID, ShopID: 1, Type: "XFER", QtyKg: 1})
	assert.ErrorIs(t, err, domain.ErrConstraint)

	// la columna type también lo impide a nivel de esquema
	_, err = db.x.ExecContext(ctx,
		"INSERT INTO movement (product_id, shop_id, type, qty_kg, created_at) VALUES (?, 1, 'XFER', 1, '2024-01-01T00:00:00')", p.ID)
	require.Error(t, err)
	assert.ErrorIs(t, classify("raw insert", err), domain.ErrConstraint)

	list, err := repo.List(ctx, emptyFilter())
	require.NoError(t, err)
	assert.Empty(t, list, "un alta fallida no deja rastro")
}

func TestMovementRepo_ListOrderAndFilters(t *testing.T) {
	clock := &testClock{}
	db := openTestDB(t, WithClock(clock.now))
	repo := NewMovementRepository(db)
	ctx := context.Background()

	annex := mustShop(t, db, "Annexe")
	mais := mustProduct(t, db, "Maïs", 50, 0)
	soja := mustProduct(t, db, "Tourteau soja", 25, 0)
	require.NoError(t, NewProductRepository(db).Update(ctx, &entity.Product{ID: soja.ID, Code: strPtr("SJ-44"), Label: soja.Label, BagWeightKg: 25, Active: true}))

	clock.set(day(2024, 3, 1, 23))
	m1 := mustMove(t, db, mais.ID, 1, entity.MovementIn, 100, 0)
	clock.set(day(2024, 3, 2, 0))
	m2 := mustMove(t, db, soja.ID, 1, entity.MovementOut, -10, 0)
	m3 := mustMove(t, db, mais.ID, annex.ID, entity.MovementAdj, -2, 0) // mismo segundo que m2
	clock.set(day(2024, 3, 5, 12))
	m4 := mustMove(t, db, mais.ID, 1, entity.MovementOut, -20, 0)

	all, err := repo.List(ctx, emptyFilter())
	require.NoError(t, err)
	assert.Equal(t, []int64{m4.ID, m3.ID, m2.ID, m1.ID}, ids(all))

	outs, err := repo.List(ctx, repository.MovementFilter{Type: entity.MovementOut})
	require.NoError(t, err)
	assert.Equal(t, []int64{m4.ID, m2.ID}, ids(outs))

	annexOnly, err := repo.List(ctx, repository.MovementFilter{ShopID: annex.ID})
	require.NoError(t, err)
	assert.Equal(t, []int64{m3.ID}, ids(annexOnly))

	byCode, err := repo.List(ctx, repository.MovementFilter{Query: "sj-"})
	require.NoError(t, err)
	assert.Equal(t, []int64{m2.ID}, ids(byCode))

	combined, err := repo.List(ctx, repository.MovementFilter{Query: "MAÏS", ShopID: 1, Type: entity.MovementIn})
	require.NoError(t, err)
	assert.Equal(t, []int64{m1.ID}, ids(combined))
}

func TestMovementRepo_DateWindowInclusive(t *testing.T) {
	clock := &testClock{}
	db := openTestDB(t, WithClock(clock.now))
	repo := NewMovementRepository(db)
	ctx := context.Background()
	p := mustProduct(t, db, "Son", 40, 0)

	clock.set(time.Date(2024, 2, 29, 23, 59, 59, 0, time.Local))
	before := mustMove(t, db, p.ID, 1, entity.MovementIn, 1, 0)
	clock.set(time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local))
	first := mustMove(t, db, p.ID, 1, entity.MovementIn, 1, 0)
	clock.set(time.Date(2024, 3, 31, 23, 59, 59, 0, time.Local))
	last := mustMove(t, db, p.ID, 1, entity.MovementIn, 1, 0)
	clock.set(time.Date(2024, 4, 1, 0, 0, 0, 0, time.Local))
	after := mustMove(t, db, p.ID, 1, entity.MovementIn, 1, 0)

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.Local)
	got, err := repo.List(ctx, repository.MovementFilter{DateFrom: &from, DateTo: &to})
	require.NoError(t, err)
	assert.Equal(t, []int64{last.ID, first.ID}, ids(got))
	assert.NotContains(t, ids(got), before.ID)
	assert.NotContains(t, ids(got), after.ID)

	onlyFrom, err := repo.List(ctx, repository.MovementFilter{DateFrom: &to})
	require.NoError(t, err)
	assert.Equal(t, []int64{after.ID, last.ID}, ids(onlyFrom))
}

func TestMovementRepo_UpdateKeepsCreatedAt(t *testing.T) {
	clock := &testClock{t: day(2024, 6, 1, 10)}
	db := openTestDB(t, WithClock(clock.now))
	repo := NewMovementRepository(db)
	ctx := context.Background()
	p := mustProduct(t, db, "Orge", 50, 0)

	m := mustMove(t, db, p.ID, 1, entity.MovementOut, -5, 500)
	clock.advance(48 * time.Hour)

	fixed := 750.0
	m.QtyKg = -7.5
	m.Cost = &fixed
	m.Note = "corrigé"
	require.NoError(t, repo.Update(ctx, m))

	got, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, -7.5, got.QtyKg)
	assert.Equal(t, 750.0, got.CostOrZero())
	assert.Equal(t, "corrigé", got.Note)
	assert.Equal(t, day(2024, 6, 1, 10), got.CreatedAt)

	m.ID = 999
	assert.ErrorIs(t, repo.Update(ctx, m), domain.ErrNotFound)
}
