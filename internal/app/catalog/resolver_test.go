package catalog

import (
	"testing"

	"github.com/HovVathana/shoppink-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func variant(id uint, stock int, adjustment float64, optionIDs ...uint) model.Variant {
	v := model.Variant{ID: id, StockQuantity: stock, PriceAdjustment: adjustment, IsActive: true}
	for _, oid := range optionIDs {
		v.Options = append(v.Options, model.VariantOption{VariantID: id, OptionID: oid})
	}
	return v
}

func testProduct() *model.Product {
	return &model.Product{
		ID:    1,
		Name:  "Hoodie",
		Price: 30,
		OptionGroups: []model.OptionGroup{
			singleGroup(1, 0,
				model.Option{ID: 101, Name: "S", PriceType: model.PriceTypeFree, IsAvailable: true},
				model.Option{ID: 102, Name: "M", PriceType: model.PriceTypeFree, IsAvailable: true},
			),
			singleGroup(2, 1,
				model.Option{ID: 201, Name: "Black", PriceType: model.PriceTypeFree, IsAvailable: true},
				model.Option{ID: 202, Name: "White", PriceType: model.PriceTypeFree, IsAvailable: true},
			),
		},
	}
}

func TestResolveVariant_ExactMatch(t *testing.T) {
	product := testProduct()
	product.Variants = []model.Variant{
		variant(1, 3, 5, 101, 201), // {S, Black}
		variant(2, 5, 8, 101, 202), // {S, White}
	}

	res := ResolveVariant(product, Selection{1: {101}, 2: {201}})

	require.NotNil(t, res.Variant)
	assert.Equal(t, uint(1), res.Variant.ID)
	assert.InDelta(t, 35, res.Price, 1e-9) // base 30 + adjustment 5
	assert.Empty(t, res.Issues)
}

func TestResolveVariant_SharedOptionIsNotAMatch(t *testing.T) {
	// {A} alone matches neither {A,B} nor {A,C}: same members AND same size.
	product := testProduct()
	product.Variants = []model.Variant{
		variant(1, 3, 5, 101, 201),
		variant(2, 5, 8, 101, 202),
	}

	res := ResolveVariant(product, Selection{1: {101}})

	assert.Nil(t, res.Variant)
	assert.InDelta(t, 30, res.Price, 1e-9) // compositional fallback, no BASE -> product price
}

func TestResolveVariant_BaseOptionMakesAdjustmentAbsolute(t *testing.T) {
	product := testProduct()
	product.OptionGroups[0].Options[0].PriceType = model.PriceTypeBase
	product.OptionGroups[0].Options[0].PriceValue = 45
	product.Variants = []model.Variant{
		variant(1, 3, 120, 101, 201),
	}

	res := ResolveVariant(product, Selection{1: {101}, 2: {201}})

	require.NotNil(t, res.Variant)
	assert.InDelta(t, 120, res.Price, 1e-9) // absolute, not 30+120
}

func TestResolveVariant_EmptySelectionReturnsProductPrice(t *testing.T) {
	product := testProduct()
	product.Variants = []model.Variant{variant(1, 3, 5, 101, 201)}

	res := ResolveVariant(product, Selection{})

	assert.Nil(t, res.Variant)
	assert.InDelta(t, 30, res.Price, 1e-9)
	assert.Empty(t, res.Issues)

	// groups present but nothing picked in them behaves the same
	res = ResolveVariant(product, Selection{1: {}, 2: {}})
	assert.Nil(t, res.Variant)
	assert.InDelta(t, 30, res.Price, 1e-9)
}

func TestResolveVariant_NoVariantsUsesCalculator(t *testing.T) {
	product := testProduct()
	product.OptionGroups[0].Options[0].PriceType = model.PriceTypeBase
	product.OptionGroups[0].Options[0].PriceValue = 45

	res := ResolveVariant(product, Selection{1: {101}})

	assert.Nil(t, res.Variant)
	assert.InDelta(t, 45, res.Price, 1e-9)
}

func TestResolveVariant_DuplicateCombinationFallsBack(t *testing.T) {
	product := testProduct()
	product.Variants = []model.Variant{
		variant(1, 3, 5, 101, 201),
		variant(2, 9, 50, 101, 201), // duplicate of variant 1's combination
	}

	res := ResolveVariant(product, Selection{1: {101}, 2: {201}})

	// neither duplicate wins; price is computed compositionally and the
	// corruption is surfaced
	assert.Nil(t, res.Variant)
	assert.InDelta(t, 30, res.Price, 1e-9)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, IssueDuplicateCombination, res.Issues[0].Code)
	assert.ElementsMatch(t, []uint{1, 2}, res.Issues[0].VariantIDs)
}

func TestResolveVariant_UnknownOptionReferenceReported(t *testing.T) {
	product := testProduct()
	product.Variants = []model.Variant{
		variant(1, 3, 5, 101, 999), // 999 exists in no group
	}

	res := ResolveVariant(product, Selection{1: {101}})

	assert.Nil(t, res.Variant)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, IssueUnknownOptionRef, res.Issues[0].Code)
	assert.Equal(t, uint(999), res.Issues[0].OptionID)
}

func TestResolveVariant_MalformedVariantSkipped(t *testing.T) {
	product := testProduct()
	product.Variants = []model.Variant{
		{ID: 1, StockQuantity: 3, IsActive: true}, // no variant options at all
		variant(2, 5, 8, 101, 201),
	}

	res := ResolveVariant(product, Selection{1: {101}, 2: {201}})

	require.NotNil(t, res.Variant)
	assert.Equal(t, uint(2), res.Variant.ID)
}

func TestResolveVariant_PartiallyMalformedVariantNeverMatches(t *testing.T) {
	// A zero option id malforms the whole variant. {101, 0} must not collapse
	// to {101} and exact-match a one-option selection.
	product := testProduct()
	product.Variants = []model.Variant{
		variant(1, 3, 50, 101, 0),
	}

	res := ResolveVariant(product, Selection{1: {101}})

	assert.Nil(t, res.Variant)
	assert.InDelta(t, 30, res.Price, 1e-9) // compositional fallback
	require.Len(t, res.Issues, 1)
	assert.Equal(t, IssueMissingOptionRef, res.Issues[0].Code)
	assert.Equal(t, []uint{1}, res.Issues[0].VariantIDs)
}
