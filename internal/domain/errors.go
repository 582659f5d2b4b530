package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los adaptadores envuelven el error del driver con uno de estos sentinelas para
// que las capas superiores decidan con errors.Is.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConstraint   = errors.New("restricción de integridad violada")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrImmutable    = errors.New("los movimientos no se pueden modificar")
)
