package sqlstore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/provenderie/ledger/internal/domain"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// isUniqueViolation verifica si un error es una violación de constraint único
// (SQLSTATE 23505 en PostgreSQL, SQLITE_CONSTRAINT_UNIQUE en SQLite).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var sqlErr *sqlite.Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			sqlErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY ||
			strings.Contains(sqlErr.Error(), "UNIQUE constraint failed")
	}
	return false
}

// isConstraintViolation clave foránea, CHECK o NOT NULL.
func isConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503", "23514", "23502":
			return true
		}
		return false
	}
	var sqlErr *sqlite.Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	return false
}

// classify envuelve el error del driver con el sentinela de dominio que corresponda.
// errors.Is ve el sentinela y errors.As sigue alcanzando el error original.
func classify(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w: %w", op, domain.ErrDuplicate, err)
	case isConstraintViolation(err):
		return fmt.Errorf("%s: %w: %w", op, domain.ErrConstraint, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
