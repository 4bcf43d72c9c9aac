package catalog

import (
	"github.com/HovVathana/shoppink-backend/internal/app/model"
)

// MissingRequiredGroups returns the required groups with no selected option,
// in sort order. A non-empty result blocks add-to-cart and checkout.
func MissingRequiredGroups(groups []model.OptionGroup, selected Selection) []model.OptionGroup {
	var missing []model.OptionGroup
	for _, g := range sortedGroups(groups) {
		if g.IsRequired && len(selected[g.ID]) == 0 {
			missing = append(missing, g)
		}
	}
	return missing
}

// IsOrderable reports whether every required group has at least one selection.
// Price computation succeeding is not enough; gating is checked separately.
func IsOrderable(groups []model.OptionGroup, selected Selection) bool {
	return len(MissingRequiredGroups(groups, selected)) == 0
}

// OverfilledSingleGroups returns the single-selection groups holding more than
// one distinct selected option id, in sort order. CalculatePrice prices
// whatever it is handed, so callers reject these before resolving.
func OverfilledSingleGroups(groups []model.OptionGroup, selected Selection) []model.OptionGroup {
	var over []model.OptionGroup
	for _, g := range sortedGroups(groups) {
		if g.SelectionType != model.SelectionSingle {
			continue
		}
		distinct := make(map[uint]bool)
		for _, id := range selected[g.ID] {
			if id != 0 {
				distinct[id] = true
			}
		}
		if len(distinct) > 1 {
			over = append(over, g)
		}
	}
	return over
}

// ProductOrderable reports whether any valid configuration of the product can
// be ordered at all. A required group whose options are all unavailable or out
// of stock makes the product effectively unorderable regardless of what the
// shopper picks elsewhere.
func ProductOrderable(groups []model.OptionGroup, variants []model.Variant) bool {
	for _, g := range groups {
		if !g.IsRequired {
			continue
		}
		if !GroupHasSelectableOption(g, variants, Selection{}) {
			return false
		}
	}
	return true
}
