package entity

// DefaultBagWeightKg peso de saco usado cuando el operador no indica otro.
const DefaultBagWeightKg = 50.0

// Product representa un alimento o grano vendido a granel o por saco.
// Code es opcional y único cuando está presente; Label no es único.
type Product struct {
	ID          int64
	Code        *string
	Label       string
	BagWeightKg float64
	PricePerKg  float64
	PricePerBag float64
	ThresholdKg float64 // alerta de stock bajo cuando stock <= umbral
	Active      bool
}

// CodeOrEmpty devuelve el código o "" si no tiene.
func (p *Product) CodeOrEmpty() string {
	if p.Code == nil {
		return ""
	}
	return *p.Code
}
