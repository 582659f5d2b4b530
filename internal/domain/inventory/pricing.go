package inventory

import (
	"fmt"

	"github.com/provenderie/ledger/internal/domain"
	"github.com/provenderie/ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Pricing resultado de valorizar una entrada en sacos + kilos.
type Pricing struct {
	QtyKg        float64 // firmada según el tipo (OUT negativa)
	Cost         float64
	UnitPriceKg  *float64
	UnitPriceBag *float64
}

// PriceMovement calcula kilos totales y costo de un movimiento capturado en sacos y kilos sueltos.
// Costo = sacos*precioSaco + kilos*precioKg, cada término solo si ambos factores son positivos.
// Los precios no positivos no se guardan. Un OUT niega la cantidad.
func PriceMovement(t entity.MovementType, bags, kg, bagWeightKg, priceBag, priceKg float64) (Pricing, error) {
	if !t.Valid() {
		return Pricing{}, fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidInput, t)
	}
	if bags < 0 || kg < 0 {
		return Pricing{}, fmt.Errorf("%w: sacos y kilos deben ser positivos", domain.ErrInvalidInput)
	}

	qty := decimal.NewFromFloat(bags).Mul(decimal.NewFromFloat(bagWeightKg)).Add(decimal.NewFromFloat(kg))
	if bagWeightKg <= 0 {
		qty = decimal.NewFromFloat(kg)
	}
	if !qty.IsPositive() {
		return Pricing{}, fmt.Errorf("%w: la cantidad total debe ser mayor que 0", domain.ErrInvalidInput)
	}

	cost := decimal.Zero
	var p Pricing
	if priceBag > 0 {
		v := priceBag
		p.UnitPriceBag = &v
		if bags > 0 {
			cost = cost.Add(decimal.NewFromFloat(bags).Mul(decimal.NewFromFloat(priceBag)))
		}
	}
	if priceKg > 0 {
		v := priceKg
		p.UnitPriceKg = &v
		if kg > 0 {
			cost = cost.Add(decimal.NewFromFloat(kg).Mul(decimal.NewFromFloat(priceKg)))
		}
	}

	if t == entity.MovementOut {
		qty = qty.Neg()
	}
	p.QtyKg = qty.InexactFloat64()
	p.Cost = cost.Round(2).InexactFloat64()
	return p, nil
}
