package catalog

import (
	"github.com/HovVathana/shoppink-backend/internal/app/model"
)

// OptionAvailableStock computes how many units are available if the candidate
// option were added to the current partial selection.
//
// Unlike the resolver's exact match this is a superset match on purpose: it
// sums the stock of every active variant compatible with what has been chosen
// so far, answering "how much is left" while other groups are still
// unselected. With no variants at all the option's own stock is the answer.
func OptionAvailableStock(variants []model.Variant, selected Selection, groupID uint, option model.Option) int {
	if len(variants) == 0 {
		return option.StockQuantity
	}

	idsToMatch := selected.Without(groupID).OptionIDSet()
	idsToMatch[option.ID] = true

	total := 0
	for i := range variants {
		v := &variants[i]
		if !v.IsActive {
			continue
		}
		have := make(map[uint]bool, len(v.Options))
		for _, id := range v.OptionIDs() {
			have[id] = true
		}
		compatible := true
		for id := range idsToMatch {
			if !have[id] {
				compatible = false
				break
			}
		}
		if compatible {
			total += v.StockQuantity
		}
	}
	return total
}

// GroupHasSelectableOption reports whether at least one option in the group
// can still be chosen: available, and with stock left under the current
// selection of the other groups.
func GroupHasSelectableOption(group model.OptionGroup, variants []model.Variant, selected Selection) bool {
	for _, opt := range group.Options {
		if !opt.IsAvailable {
			continue
		}
		if OptionAvailableStock(variants, selected, group.ID, opt) > 0 {
			return true
		}
	}
	return false
}

// TotalVariantStock sums the stock of all active variants.
func TotalVariantStock(variants []model.Variant) int {
	total := 0
	for i := range variants {
		if variants[i].IsActive {
			total += variants[i].StockQuantity
		}
	}
	return total
}
