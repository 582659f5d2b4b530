package sqlstore

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// DefaultShopLabel tienda sembrada (id 1) cuando la tabla está vacía.
const DefaultShopLabel = "Main Shop"

// dialect diferencias de DDL e introspección entre SQLite y PostgreSQL.
type dialect struct {
	serialPK string
	fk       string
	real     string
}

var (
	sqliteDialect   = dialect{serialPK: "INTEGER PRIMARY KEY AUTOINCREMENT", fk: "INTEGER", real: "REAL"}
	postgresDialect = dialect{serialPK: "BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY", fk: "BIGINT", real: "DOUBLE PRECISION"}
)

func (db *DB) dialect() dialect {
	if db.driver == DriverPostgres {
		return postgresDialect
	}
	return sqliteDialect
}

// migration paso versionado. up consulta el esquema real antes de actuar,
// así un almacén creado por una versión anterior converge sin errores tragados.
type migration struct {
	version int
	name    string
	up      func(ctx context.Context, db *DB, tx *sqlx.Tx) error
}

var migrations = []migration{
	{1, "create_core_tables", createCoreTables},
	{2, "movement_unit_price_bag", addColumnIfMissing("movement", "unit_price_bag")},
	{3, "movement_cost", addColumnIfMissing("movement", "cost")},
	{4, "movement_indexes", createMovementIndexes},
}

// Migrate aplica en orden los pasos pendientes, cada uno en su transacción, registra la
// versión en schema_version y siembra la tienda por defecto si no hay ninguna. Idempotente.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.x.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_version (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TEXT NOT NULL
		)`); err != nil {
		return fmt.Errorf("create schema_version: %w", err)
	}

	var done []int
	if err := sqlx.SelectContext(ctx, db.x, &done, "SELECT version FROM schema_version"); err != nil {
		return fmt.Errorf("read schema_version: %w", err)
	}
	applied := make(map[int]bool, len(done))
	for _, v := range done {
		applied[v] = true
	}

	for _, m := range migrations {
		if applied[m.version] {
			continue
		}
		err := db.withTx(ctx, func(tx *sqlx.Tx) error {
			if err := m.up(ctx, db, tx); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx,
				tx.Rebind("INSERT INTO schema_version (version, name, applied_at) VALUES (?, ?, ?)"),
				m.version, m.name, formatTime(db.now()))
			return err
		})
		if err != nil {
			return fmt.Errorf("migración %d (%s): %w", m.version, m.name, err)
		}
		db.log.Info().Int("version", m.version).Str("name", m.name).Msg("migración aplicada")
	}

	return db.ensureDefaultShop(ctx)
}

// SchemaVersion devuelve la última versión aplicada (0 si ninguna).
func (db *DB) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	err := sqlx.GetContext(ctx, db.x, &v, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
	if err != nil {
		return 0, fmt.Errorf("schema version: %w", err)
	}
	return v, nil
}

func createCoreTables(ctx context.Context, db *DB, tx *sqlx.Tx) error {
	d := db.dialect()
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS shop (
			id    ` + d.serialPK + `,
			label TEXT NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS product (
			id            ` + d.serialPK + `,
			code          TEXT UNIQUE,
			label         TEXT NOT NULL,
			bag_weight_kg ` + d.real + ` NOT NULL DEFAULT 50,
			price_per_kg  ` + d.real + ` NOT NULL DEFAULT 0,
			price_per_bag ` + d.real + ` NOT NULL DEFAULT 0,
			threshold_kg  ` + d.real + ` NOT NULL DEFAULT 0,
			active        INTEGER NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE IF NOT EXISTS movement (
			id             ` + d.serialPK + `,
			product_id     ` + d.fk + ` NOT NULL REFERENCES product(id),
			shop_id        ` + d.fk + ` NOT NULL REFERENCES shop(id),
			type           TEXT NOT NULL CHECK (type IN ('IN', 'OUT', 'ADJ')),
			qty_kg         ` + d.real + ` NOT NULL,
			unit_price_kg  ` + d.real + `,
			unit_price_bag ` + d.real + `,
			cost           ` + d.real + `,
			note           TEXT,
			created_at     TEXT NOT NULL
		)`,
	}
	for _, s := range stmts {
		if _, err := tx.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// addColumnIfMissing añade una columna numérica nullable solo si no existe.
func addColumnIfMissing(table, column string) func(context.Context, *DB, *sqlx.Tx) error {
	return func(ctx context.Context, db *DB, tx *sqlx.Tx) error {
		ok, err := db.columnExists(ctx, tx, table, column)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, db.dialect().real)
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("add column %s.%s: %w", table, column, err)
		}
		db.log.Info().Str("table", table).Str("column", column).Msg("columna añadida")
		return nil
	}
}

func createMovementIndexes(ctx context.Context, _ *DB, tx *sqlx.Tx) error {
	for _, s := range []string{
		"CREATE INDEX IF NOT EXISTS idx_movement_product_shop ON movement (product_id, shop_id)",
		"CREATE INDEX IF NOT EXISTS idx_movement_created_at ON movement (created_at)",
	} {
		if _, err := tx.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}

// columnExists introspección del esquema vivo (PRAGMA en SQLite, information_schema en PostgreSQL).
func (db *DB) columnExists(ctx context.Context, q sqlx.QueryerContext, table, column string) (bool, error) {
	var (
		n     int
		query string
	)
	if db.driver == DriverPostgres {
		query = `SELECT COUNT(*) FROM information_schema.columns
			WHERE table_schema = current_schema() AND table_name = $1 AND column_name = $2`
	} else {
		query = "SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?"
	}
	if err := sqlx.GetContext(ctx, q, &n, query, table, column); err != nil {
		return false, fmt.Errorf("introspect %s.%s: %w", table, column, err)
	}
	return n > 0, nil
}

func (db *DB) ensureDefaultShop(ctx context.Context) error {
	var n int
	if err := sqlx.GetContext(ctx, db.x, &n, "SELECT COUNT(*) FROM shop"); err != nil {
		return fmt.Errorf("count shops: %w", err)
	}
	if n > 0 {
		return nil
	}
	return db.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, tx.Rebind("INSERT INTO shop (id, label) VALUES (1, ?)"), DefaultShopLabel); err != nil {
			return fmt.Errorf("seed shop: %w", err)
		}
		if db.driver == DriverPostgres {
			// la identidad no avanza con un id explícito
			if _, err := tx.ExecContext(ctx, "SELECT setval(pg_get_serial_sequence('shop', 'id'), (SELECT MAX(id) FROM shop))"); err != nil {
				return fmt.Errorf("sync shop sequence: %w", err)
			}
		}
		db.log.Info().Str("label", DefaultShopLabel).Msg("tienda por defecto creada")
		return nil
	})
}
