package sqlstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // driver "pgx"
	"github.com/jmoiron/sqlx"
	"github.com/provenderie/ledger/pkg/config"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // driver "sqlite"
)

// Drivers soportados (valor de DB_DRIVER).
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	// timeLayout formato de created_at: ISO-8601 con precisión de segundos, hora local.
	timeLayout = "2006-01-02T15:04:05"
	dateLayout = "2006-01-02"
)

func init() {
	// sqlx no conoce el nombre del driver de modernc.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// Querier lo que los repositorios necesitan de la conexión (usable con *sqlx.DB o *sqlx.Tx).
type Querier interface {
	sqlx.ExtContext
}

// DB almacén del libro. Es un recurso explícito: quien lo abre lo cierra con Close.
type DB struct {
	x      *sqlx.DB
	driver string
	log    zerolog.Logger
	now    func() time.Time
}

// Option personaliza el almacén al abrirlo.
type Option func(*DB)

// WithLogger registra migraciones y errores con el logger dado.
func WithLogger(l zerolog.Logger) Option {
	return func(db *DB) { db.log = l }
}

// WithClock fija el reloj usado para created_at (tests).
func WithClock(now func() time.Time) Option {
	return func(db *DB) { db.now = now }
}

// Open abre el almacén según cfg.Driver y verifica la conexión. No migra: ver Migrate.
// SQLite se limita a una conexión: un solo escritor, sin bloqueos internos.
func Open(ctx context.Context, cfg config.DBConfig, opts ...Option) (*DB, error) {
	var (
		x   *sqlx.DB
		err error
	)
	switch cfg.Driver {
	case DriverSQLite:
		x, err = sqlx.Open("sqlite", sqliteDSN(cfg.Path))
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		x.SetMaxOpenConns(1)
		x.SetMaxIdleConns(1)
		x.SetConnMaxLifetime(0)
	case DriverPostgres:
		x, err = sqlx.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		x.SetMaxOpenConns(5)
		x.SetMaxIdleConns(2)
		x.SetConnMaxIdleTime(30 * time.Minute)
	default:
		return nil, fmt.Errorf("driver desconocido %q", cfg.Driver)
	}

	db := newDB(x, cfg.Driver, opts...)
	if err := x.PingContext(ctx); err != nil {
		_ = x.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	if cfg.Driver == DriverSQLite && !isMemoryPath(cfg.Path) {
		if _, err := x.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
			db.log.Warn().Err(err).Msg("no se pudo activar WAL")
		}
	}
	return db, nil
}

func newDB(x *sqlx.DB, driver string, opts ...Option) *DB {
	db := &DB{x: x, driver: driver, log: zerolog.Nop(), now: time.Now}
	for _, o := range opts {
		o(db)
	}
	return db
}

// sqliteDSN añade los pragmas por conexión: claves foráneas activas y espera ante bloqueo.
func sqliteDSN(path string) string {
	params := url.Values{}
	params.Add("_pragma", "foreign_keys(1)")
	params.Add("_pragma", "busy_timeout(5000)")
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + params.Encode()
}

func isMemoryPath(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory")
}

// Close libera la conexión.
func (db *DB) Close() error {
	return db.x.Close()
}

// Driver devuelve "sqlite" o "postgres".
func (db *DB) Driver() string {
	return db.driver
}

// Ping verifica que el almacén responde (health check).
func (db *DB) Ping(ctx context.Context) error {
	return db.x.PingContext(ctx)
}

// withTx ejecuta fn dentro de una transacción y hace Commit o Rollback.
func (db *DB) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.x.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.Local().Format(timeLayout)
}

// parseTime lee created_at; tolera filas antiguas con zona o fracción de segundo.
func parseTime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(timeLayout, s, time.Local); err == nil {
		return t, nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02T15:04:05.999999"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t.Truncate(time.Second), nil
		}
	}
	return time.Time{}, fmt.Errorf("created_at inválido %q", s)
}
