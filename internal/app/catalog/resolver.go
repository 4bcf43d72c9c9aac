package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/HovVathana/shoppink-backend/internal/app/model"
)

type IntegrityIssueCode string

const (
	// IssueDuplicateCombination: two or more variants share an identical
	// option-id set, which the data model forbids.
	IssueDuplicateCombination IntegrityIssueCode = "duplicate_combination"
	// IssueUnknownOptionRef: a variant references an option id that exists in
	// none of the product's option groups.
	IssueUnknownOptionRef IntegrityIssueCode = "unknown_option_reference"
	// IssueMissingOptionRef: a variant link row carries no option id. The whole
	// variant is excluded from matching; a partial set must never match.
	IssueMissingOptionRef IntegrityIssueCode = "missing_option_reference"
)

// IntegrityIssue describes corrupt catalog data found during resolution. It is
// surfaced to the caller for logging, never silently swallowed into a price.
type IntegrityIssue struct {
	Code       IntegrityIssueCode `json:"code"`
	VariantIDs []uint             `json:"variant_ids,omitempty"`
	OptionID   uint               `json:"option_id,omitempty"`
}

func (i IntegrityIssue) String() string {
	ids := make([]string, len(i.VariantIDs))
	for n, id := range i.VariantIDs {
		ids[n] = fmt.Sprint(id)
	}
	return fmt.Sprintf("%s variants=[%s] option=%d", i.Code, strings.Join(ids, ","), i.OptionID)
}

// Resolution is the outcome of resolving a selection against a product.
type Resolution struct {
	Price float64 `json:"price"`
	// Variant is the exactly matching variant, nil when the price came from
	// the compositional calculator.
	Variant *model.Variant `json:"variant,omitempty"`
	// Issues holds data-integrity problems detected along the way.
	Issues []IntegrityIssue `json:"issues,omitempty"`
}

// ResolveVariant finds the variant whose option set equals the selection
// exactly (same size, same members) and prices it. When the selection matches
// no variant, or the matched combination turns out to be duplicated, the price
// falls back to CalculatePrice so a data problem never breaks the storefront.
//
// An empty selection never attempts a match and yields the raw product price.
func ResolveVariant(product *model.Product, selected Selection) Resolution {
	selectedSet := selected.OptionIDSet()

	if len(selectedSet) == 0 {
		return Resolution{Price: product.Price}
	}
	if len(product.Variants) == 0 {
		return Resolution{Price: CalculatePrice(product.OptionGroups, selected, product.Price)}
	}

	issues := inspectVariants(product)

	var matched []*model.Variant
	for i := range product.Variants {
		v := &product.Variants[i]
		if variantMalformed(v) {
			// excluded from matching; inspectVariants reports broken links
			continue
		}
		ids := v.OptionIDs()
		if len(ids) != len(selectedSet) {
			continue
		}
		exact := true
		for _, id := range ids {
			if !selectedSet[id] {
				exact = false
				break
			}
		}
		if exact {
			matched = append(matched, v)
		}
	}

	switch len(matched) {
	case 0:
		return Resolution{
			Price:  CalculatePrice(product.OptionGroups, selected, product.Price),
			Issues: issues,
		}
	case 1:
		return Resolution{
			Price:   variantPrice(product, matched[0]),
			Variant: matched[0],
			Issues:  issues,
		}
	default:
		// The matched combination itself is duplicated; resolving to either
		// variant would be arbitrary, so price compositionally instead.
		return Resolution{
			Price:  CalculatePrice(product.OptionGroups, selected, product.Price),
			Issues: issues,
		}
	}
}

// variantPrice prices an exactly matched variant. A variant containing any
// BASE-typed option carries an absolute price in its adjustment; otherwise the
// adjustment is a delta on the product base price.
func variantPrice(product *model.Product, v *model.Variant) float64 {
	byID := optionIndex(product.OptionGroups)
	for _, id := range v.OptionIDs() {
		if opt, ok := byID[id]; ok && opt.PriceType == model.PriceTypeBase {
			return v.PriceAdjustment
		}
	}
	return product.Price + v.PriceAdjustment
}

// variantMalformed reports whether the variant's option set is unusable for
// matching: no links at all, or a link missing its option id. Dropping only
// the bad link would shrink the set and let a partial variant match exactly.
func variantMalformed(v *model.Variant) bool {
	if len(v.Options) == 0 {
		return true
	}
	for _, vo := range v.Options {
		if vo.OptionID == 0 {
			return true
		}
	}
	return false
}

// inspectVariants reports duplicate combinations, references to options that
// exist in no group, and links with no option id at all.
func inspectVariants(product *model.Product) []IntegrityIssue {
	var issues []IntegrityIssue

	byID := optionIndex(product.OptionGroups)
	bySignature := make(map[string][]uint)
	for i := range product.Variants {
		v := &product.Variants[i]
		if len(v.Options) == 0 {
			continue
		}
		if variantMalformed(v) {
			issues = append(issues, IntegrityIssue{
				Code:       IssueMissingOptionRef,
				VariantIDs: []uint{v.ID},
			})
			continue
		}
		ids := v.OptionIDs()
		for _, id := range ids {
			if _, ok := byID[id]; !ok {
				issues = append(issues, IntegrityIssue{
					Code:       IssueUnknownOptionRef,
					VariantIDs: []uint{v.ID},
					OptionID:   id,
				})
			}
		}
		sig := signature(ids)
		bySignature[sig] = append(bySignature[sig], v.ID)
	}

	sigs := make([]string, 0, len(bySignature))
	for sig := range bySignature {
		sigs = append(sigs, sig)
	}
	sort.Strings(sigs)
	for _, sig := range sigs {
		if dupes := bySignature[sig]; len(dupes) > 1 {
			issues = append(issues, IntegrityIssue{
				Code:       IssueDuplicateCombination,
				VariantIDs: dupes,
			})
		}
	}
	return issues
}

func optionIndex(groups []model.OptionGroup) map[uint]model.Option {
	byID := make(map[uint]model.Option)
	for _, g := range groups {
		for _, opt := range g.Options {
			byID[opt.ID] = opt
		}
	}
	return byID
}

// SameOptionSet reports whether two option-id slices describe the same
// combination, ignoring order and duplicates.
func SameOptionSet(a, b []uint) bool {
	return signature(a) == signature(b)
}

func signature(ids []uint) string {
	sorted := make([]uint, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = fmt.Sprint(id)
	}
	return strings.Join(parts, "/")
}
