package entity

import (
	"strings"
	"time"
)

// MovementType tipo de movimiento del libro.
type MovementType string

const (
	MovementIn  MovementType = "IN"  // entrada (compra, recepción)
	MovementOut MovementType = "OUT" // salida (venta)
	MovementAdj MovementType = "ADJ" // ajuste de inventario
)

// Valid indica si el tipo pertenece al conjunto cerrado IN/OUT/ADJ.
func (t MovementType) Valid() bool {
	switch t {
	case MovementIn, MovementOut, MovementAdj:
		return true
	}
	return false
}

// ParseMovementType normaliza mayúsculas/espacios. ok=false si no es un tipo conocido.
func ParseMovementType(s string) (MovementType, bool) {
	t := MovementType(strings.ToUpper(strings.TrimSpace(s)))
	return t, t.Valid()
}

// Movement es una línea del libro: inmutable una vez registrada.
// QtyKg es firmada: positiva suma stock, negativa resta. El signo lo fija quien registra.
// Cost es el importe total de la línea (ingreso para OUT, costo de compra para IN);
// nil en filas antiguas anteriores a la columna.
type Movement struct {
	ID           int64
	ProductID    int64
	ShopID       int64
	Type         MovementType
	QtyKg        float64
	UnitPriceKg  *float64
	UnitPriceBag *float64
	Cost         *float64
	Note         string
	CreatedAt    time.Time
}

// MovementView movimiento con los datos de producto y tienda para listados.
type MovementView struct {
	Movement
	ProductLabel string
	ProductCode  string
	BagWeightKg  float64
	ShopLabel    string
}

// CostOrZero devuelve el importe o 0 si la fila no lo tiene.
func (m *Movement) CostOrZero() float64 {
	if m.Cost == nil {
		return 0
	}
	return *m.Cost
}
