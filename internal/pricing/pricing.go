package pricing

import "juicepos/internal/models"

// Base prices keyed by cup type. An unrecognized cup type prices at 0
// rather than failing; the engine is total.
var baseByCup = map[models.CupType]float64{
	models.CupPlain:           10.00,
	models.CupPineappleShell:  12.00,
	models.CupWatermelonShell: 15.00,
}

// AddOnPrice returns the fixed extra for one add-on. Everything on the
// menu is currently free, but non-zero prices only need a change here.
func AddOnPrice(addOn models.AddOn) float64 {
	switch addOn {
	case models.AddOnBoba:
		return 0.00
	case models.AddOnLessSugar, models.AddOnNoSugar, models.AddOnLessIce, models.AddOnNoIce:
		return 0.00
	}
	return 0.00
}

// Price computes the unit price for a drink configuration. Flavours do
// not affect the price yet; the parameter is part of the contract so
// future flavour rules slot in without touching callers.
func Price(cup models.CupType, addOns []models.AddOn, flavours []models.Flavour) float64 {
	base := baseByCup[cup]
	extras := 0.0
	for _, a := range addOns {
		extras += AddOnPrice(a)
	}
	return base + extras
}

// BuildDrink constructs a drink, pricing it at current rules.
func BuildDrink(cup models.CupType, addOns []models.AddOn, flavours []models.Flavour) models.Drink {
	return models.Drink{
		Selection: flavours,
		CupType:   cup,
		AddOns:    addOns,
		Price:     Price(cup, addOns, flavours),
	}
}
