package inventory

import (
	"testing"

	"github.com/provenderie/ledger/internal/domain"
	"github.com/provenderie/ledger/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceMovement_BagsAndKg(t *testing.T) {
	p, err := PriceMovement(entity.MovementIn, 2, 4, 50, 5000, 110)
	require.NoError(t, err)

	assert.Equal(t, 104.0, p.QtyKg)
	assert.Equal(t, 10440.0, p.Cost)
	require.NotNil(t, p.UnitPriceBag)
	require.NotNil(t, p.UnitPriceKg)
	assert.Equal(t, 5000.0, *p.UnitPriceBag)
	assert.Equal(t, 110.0, *p.UnitPriceKg)
}

func TestPriceMovement_OutIsNegative(t *testing.T) {
	p, err := PriceMovement(entity.MovementOut, 0, 30, 50, 0, 150)
	require.NoError(t, err)

	assert.Equal(t, -30.0, p.QtyKg)
	assert.Equal(t, 4500.0, p.Cost)
	assert.Nil(t, p.UnitPriceBag)
}

func TestPriceMovement_TermOnlyWhenBothPositive(t *testing.T) {
	// precio por saco sin sacos: no suma al costo
	p, err := PriceMovement(entity.MovementIn, 0, 10, 50, 4000, 0)
	require.NoError(t, err)
	assert.Equal(t, 10.0, p.QtyKg)
	assert.Equal(t, 0.0, p.Cost)
}

func TestPriceMovement_Invalid(t *testing.T) {
	_, err := PriceMovement(entity.MovementIn, 0, 0, 50, 10, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = PriceMovement(entity.MovementIn, -1, 5, 50, 10, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = PriceMovement(entity.MovementType("XFER"), 1, 0, 50, 10, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseAmount(t *testing.T) {
	v, err := ParseAmount("12,5")
	require.NoError(t, err)
	assert.Equal(t, "12.5", v.String())

	v, err = ParseAmount(" 1 250.75 ")
	require.NoError(t, err)
	assert.Equal(t, "1250.75", v.String())

	_, err = ParseAmount("douze")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ParseAmount("  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseAmountOr(t *testing.T) {
	v, err := ParseAmountOr("", 50)
	require.NoError(t, err)
	assert.Equal(t, 50.0, v)

	v, err = ParseAmountOr("2,5", 50)
	require.NoError(t, err)
	assert.Equal(t, 2.5, v)

	_, err = ParseAmountOr("x", 50)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
