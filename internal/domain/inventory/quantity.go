package inventory

import (
	"fmt"
	"strings"

	"github.com/provenderie/ledger/internal/domain"
	"github.com/shopspring/decimal"
)

// ParseAmount interpreta una cantidad o precio tecleado por el operador.
// Acepta coma o punto decimal ("12,5" == "12.5"); vacío o basura es ErrInvalidInput.
func ParseAmount(s string) (decimal.Decimal, error) {
	raw := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	raw = strings.ReplaceAll(raw, ",", ".")
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%w: cantidad vacía", domain.ErrInvalidInput)
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: cantidad %q no es un número", domain.ErrInvalidInput, s)
	}
	return v, nil
}

// ParseAmountOr devuelve def cuando s está vacío; sigue fallando con texto inválido.
func ParseAmountOr(s string, def float64) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	v, err := ParseAmount(s)
	if err != nil {
		return 0, err
	}
	return v.InexactFloat64(), nil
}
