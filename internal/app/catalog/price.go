package catalog

import (
	"github.com/HovVathana/shoppink-backend/internal/app/model"
)

// CalculatePrice computes the effective price of a selection by pricing rule,
// independent of variants.
//
// The pass is ordered: groups by stored sort order, then the selected options
// inside each group by their stored sort order. PERCENTAGE applies to the
// running total at the time it is reached, so the order is semantically
// significant, not a tie-break. A BASE option sets the running total; further
// BASE options accumulate instead of overwriting (a size base price and an
// engraving base price both contribute). If no BASE option was selected the
// result is the product's own base price.
func CalculatePrice(groups []model.OptionGroup, selected Selection, basePrice float64) float64 {
	total := 0.0
	hasBase := false

	for _, group := range sortedGroups(groups) {
		for _, opt := range selectedInOrder(group, selected) {
			switch opt.PriceType {
			case model.PriceTypeBase:
				if hasBase {
					total += opt.PriceValue
				} else {
					total = opt.PriceValue
					hasBase = true
				}
			case model.PriceTypeFixed:
				total += opt.PriceValue
			case model.PriceTypePercentage:
				total += total * (opt.PriceValue / 100)
			case model.PriceTypeFree:
				// contributes nothing
			}
		}
	}

	if !hasBase {
		return basePrice
	}
	return total
}
