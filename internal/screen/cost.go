package screen

import (
	"math"

	"github.com/screenlux/screenlux-backend/internal/catalog"
)

// CalculateCost computes the raw cost of a screen in minor currency units.
// Returns 0 for a configuration whose dimensions fail validation; callers
// must treat 0 as "not priceable", never as a free screen.
//
// The cost is built up from independent additive terms, each rounded on its
// own: flat base, fabric material by area, cassette hardware by linear
// dimension, flat motor surcharge. Rates are looked up by the selected option
// id; an unselected option contributes nothing.
func CalculateCost(c Config, rules catalog.PricingRules, b catalog.Bounds) int {
	if ok, _ := ValidateDimensions(c.WidthMM, c.HeightMM, b); !ok {
		return 0
	}

	total := rules.BasePrice

	widthM := float64(c.WidthMM) / 1000
	heightM := float64(c.HeightMM) / 1000
	area := widthM * heightM

	if rate, ok := rules.FabricRates[c.FabricType]; ok {
		total += int(math.Round(area * float64(rate)))
	}

	widthRate := rules.CassetteWidthRates[c.CassetteSize]
	heightRate := rules.CassetteHeightRates[c.CassetteSize]
	if widthRate != 0 || heightRate != 0 {
		total += int(math.Round(widthM*float64(widthRate) + heightM*float64(heightRate)))
	}

	total += rules.MotorSurcharges[c.Motor]

	return total
}
