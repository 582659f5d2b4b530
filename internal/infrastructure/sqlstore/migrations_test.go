package sqlstore

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/provenderie/ledger/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_FreshStore(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	v, err := db.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(migrations), v)

	shops, err := NewShopRepository(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, shops, 1)
	assert.Equal(t, int64(1), shops[0].ID)
	assert.Equal(t, DefaultShopLabel, shops[0].Label)

	for _, col := range []string{"unit_price_bag", "cost"} {
		ok, err := db.columnExists(ctx, db.x, "movement", col)
		require.NoError(t, err)
		assert.True(t, ok, col)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Migrate(ctx))
	require.NoError(t, db.Migrate(ctx))

	var n int
	require.NoError(t, sqlx.GetContext(ctx, db.x, &n, "SELECT COUNT(*) FROM shop"))
	assert.Equal(t, 1, n)
	require.NoError(t, sqlx.GetContext(ctx, db.x, &n, "SELECT COUNT(*) FROM schema_version"))
	assert.Equal(t, len(migrations), n)
}

func TestMigrate_SeedOnlyWhenEmpty(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	shops := NewShopRepository(db)

	require.NoError(t, shops.Rename(ctx, 1, "Dépôt"))
	require.NoError(t, db.Migrate(ctx))

	list, err := shops.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Dépôt", list[0].Label)
}

func TestMigrate_LegacyMovementTable(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, config.DBConfig{Driver: DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	defer db.Close()

	legacy := []string{
		"CREATE TABLE shop (id INTEGER PRIMARY KEY AUTOINCREMENT, label TEXT NOT NULL UNIQUE)",
		`CREATE TABLE product (id INTEGER PRIMARY KEY AUTOINCREMENT, code TEXT UNIQUE, label TEXT NOT NULL,
			bag_weight_kg REAL NOT NULL DEFAULT 50, price_per_kg REAL NOT NULL DEFAULT 0,
			price_per_bag REAL NOT NULL DEFAULT 0, threshold_kg REAL NOT NULL DEFAULT 0,
			active INTEGER NOT NULL DEFAULT 1)`,
		`CREATE TABLE movement (id INTEGER PRIMARY KEY AUTOINCREMENT,
			product_id INTEGER NOT NULL REFERENCES product(id), shop_id INTEGER NOT NULL REFERENCES shop(id),
			type TEXT NOT NULL CHECK (type IN ('IN','OUT','ADJ')), qty_kg REAL NOT NULL,
			unit_price_kg REAL, note TEXT, created_at TEXT NOT NULL)`,
		"INSERT INTO shop (id, label) VALUES (1, 'Boutique')",
		"INSERT INTO product (id, label) VALUES (1, 'Maïs')",
		"INSERT INTO movement (product_id, shop_id, type, qty_kg, created_at) VALUES (1, 1, 'IN', 75, '2024-03-01T08:00:00')",
	}
	for _, s := range legacy {
		_, err := db.x.ExecContext(ctx, s)
		require.NoError(t, err)
	}

	require.NoError(t, db.Migrate(ctx))
	require.NoError(t, db.Migrate(ctx))

	for _, col := range []string{"unit_price_bag", "cost"} {
		ok, err := db.columnExists(ctx, db.x, "movement", col)
		require.NoError(t, err)
		assert.True(t, ok, col)
	}

	moves, err := NewMovementRepository(db).List(ctx, emptyFilter())
	require.NoError(t, err)
	require.Len(t, moves, 1)
	assert.Nil(t, moves[0].Cost)
	assert.Nil(t, moves[0].UnitPriceBag)
	assert.Equal(t, 75.0, moves[0].QtyKg)

	// la tienda existente no se reemplaza por la sembrada
	shops, err := NewShopRepository(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, shops, 1)
	assert.Equal(t, "Boutique", shops[0].Label)
}

func TestOpen_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)
	var on int
	require.NoError(t, sqlx.GetContext(context.Background(), db.x, &on, "PRAGMA foreign_keys"))
	assert.Equal(t, 1, on)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.DBConfig{Driver: "oracle"})
	assert.Error(t, err)
}
