package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"juicepos/internal/models"
	"juicepos/internal/pricing"
)

func TestPriceByCupType(t *testing.T) {
	flavours := []models.Flavour{models.FlavourMango}

	assert.Equal(t, 10.00, pricing.Price(models.CupPlain, nil, flavours))
	assert.Equal(t, 12.00, pricing.Price(models.CupPineappleShell, nil, flavours))
	assert.Equal(t, 15.00, pricing.Price(models.CupWatermelonShell, nil, flavours))
}

func TestPriceUnknownCupTypeIsZero(t *testing.T) {
	assert.Equal(t, 0.00, pricing.Price(models.CupType("bucket"), nil, []models.Flavour{models.FlavourMango}))
}

func TestPriceAddOnsAreCurrentlyFree(t *testing.T) {
	flavours := []models.Flavour{models.FlavourTaro}
	withAll := pricing.Price(models.CupPlain, models.AllAddOns, flavours)
	without := pricing.Price(models.CupPlain, nil, flavours)

	assert.Equal(t, without, withAll)
}

func TestPriceIgnoresFlavourComposition(t *testing.T) {
	single := pricing.Price(models.CupPlain, nil, []models.Flavour{models.FlavourMango})
	mix := pricing.Price(models.CupPlain, nil, []models.Flavour{models.FlavourMango, models.FlavourPineapple})

	assert.Equal(t, single, mix)
}

func TestPriceDeterministicAndNonNegative(t *testing.T) {
	for _, cup := range []models.CupType{models.CupPlain, models.CupPineappleShell, models.CupWatermelonShell, models.CupType("unknown")} {
		first := pricing.Price(cup, models.AllAddOns, models.AllFlavours)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, pricing.Price(cup, models.AllAddOns, models.AllFlavours))
		}
		assert.GreaterOrEqual(t, first, 0.00)
	}
}

func TestBuildDrinkFreezesPrice(t *testing.T) {
	d := pricing.BuildDrink(models.CupPineappleShell, []models.AddOn{models.AddOnBoba}, []models.Flavour{models.FlavourPineapple})

	assert.Equal(t, 12.00, d.Price)
	assert.Equal(t, models.CupPineappleShell, d.CupType)
	assert.Equal(t, []models.Flavour{models.FlavourPineapple}, d.Selection)
}
