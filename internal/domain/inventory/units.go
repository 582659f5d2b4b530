package inventory

import (
	"fmt"
	"math"
)

// kgTolerance absorbe el ruido de coma flotante al partir kilos en sacos.
const kgTolerance = 1e-9

// BagsToKg convierte un número de sacos a kilos.
func BagsToKg(numBags, bagWeightKg float64) float64 {
	return numBags * bagWeightKg
}

// KgToBags descompone una cantidad en sacos enteros (piso) y el resto en kilos.
// Con peso de saco <= 0 no hay sacos: devuelve (0, qtyKg).
func KgToBags(qtyKg, bagWeightKg float64) (int, float64) {
	if bagWeightKg <= 0 {
		return 0, qtyKg
	}
	bags := math.Floor(qtyKg/bagWeightKg + kgTolerance)
	rest := qtyKg - bags*bagWeightKg
	if math.Abs(rest) < kgTolerance*math.Max(1, bagWeightKg) {
		rest = 0
	}
	return int(bags), rest
}

// KgToBagRepr representación legible, p. ej. "1 sac(s) + 4.00 kg".
// Se omite el término de sacos si no hay ninguno y el de kilos si el resto es cero;
// si ambos son cero devuelve "0 kg". Las cantidades negativas llevan "-" delante
// de la representación del valor absoluto.
func KgToBagRepr(totalKg, bagWeightKg float64) string {
	if totalKg < -kgTolerance {
		return "-" + KgToBagRepr(-totalKg, bagWeightKg)
	}
	if bagWeightKg <= 0 {
		return fmt.Sprintf("%.2f kg", math.Max(totalKg, 0))
	}
	bags, rest := KgToBags(totalKg, bagWeightKg)
	switch {
	case bags > 0 && rest > 0:
		return fmt.Sprintf("%d sac(s) + %.2f kg", bags, rest)
	case bags > 0:
		return fmt.Sprintf("%d sac(s)", bags)
	case rest > 0:
		return fmt.Sprintf("%.2f kg", rest)
	default:
		return "0 kg"
	}
}
