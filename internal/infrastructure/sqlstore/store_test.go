package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/provenderie/ledger/internal/domain/entity"
	"github.com/provenderie/ledger/pkg/config"
	"github.com/stretchr/testify/require"
)

// testClock reloj manual para fijar created_at.
type testClock struct{ t time.Time }

func (c *testClock) now() time.Time          { return c.t }
func (c *testClock) set(t time.Time)         { c.t = t }
func (c *testClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func day(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.Local)
}

func openTestDB(t *testing.T, opts ...Option) *DB {
	t.Helper()
	ctx := context.Background()
	db, err := Open(ctx, config.DBConfig{Driver: DriverSQLite, Path: ":memory:"}, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate(ctx))
	return db
}

func mustProduct(t *testing.T, db *DB, label string, bagWeight, threshold float64) *entity.Product {
	t.Helper()
	p := &entity.Product{Label: label, BagWeightKg: bagWeight, ThresholdKg: threshold, Active: true}
	require.NoError(t, NewProductRepository(db).Create(context.Background(), p))
	return p
}

func mustShop(t *testing.T, db *DB, label string) *entity.Shop {
	t.Helper()
	s := &entity.Shop{Label: label}
	require.NoError(t, NewShopRepository(db).Create(context.Background(), s))
	return s
}

func mustMove(t *testing.T, db *DB, productID, shopID int64, typ entity.MovementType, qty, cost float64) *entity.Movement {
	t.Helper()
	m := &entity.Movement{ProductID: productID, ShopID: shopID, Type: typ, QtyKg: qty, Cost: &cost}
	require.NoError(t, NewMovementRepository(db).Create(context.Background(), m))
	return m
}
