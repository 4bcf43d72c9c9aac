package catalog

import (
	"testing"

	"github.com/HovVathana/shoppink-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsOrderable_RequiredGroupGating(t *testing.T) {
	required := singleGroup(1, 0, model.Option{ID: 10, PriceType: model.PriceTypeBase, PriceValue: 100, IsAvailable: true, StockQuantity: 5})
	required.IsRequired = true
	optional := singleGroup(2, 1, model.Option{ID: 20, PriceType: model.PriceTypeFree, IsAvailable: true, StockQuantity: 5})
	groups := []model.OptionGroup{required, optional}

	// price computation succeeding is irrelevant: the required group is empty
	assert.InDelta(t, 50, CalculatePrice(groups, Selection{2: {20}}, 50), 1e-9)
	assert.False(t, IsOrderable(groups, Selection{2: {20}}))

	missing := MissingRequiredGroups(groups, Selection{2: {20}})
	require.Len(t, missing, 1)
	assert.Equal(t, uint(1), missing[0].ID)

	assert.True(t, IsOrderable(groups, Selection{1: {10}}))
	assert.True(t, IsOrderable(groups, Selection{1: {10}, 2: {20}}))
}

func TestIsOrderable_NoRequiredGroups(t *testing.T) {
	groups := []model.OptionGroup{
		singleGroup(1, 0, model.Option{ID: 10, IsAvailable: true}),
	}

	assert.True(t, IsOrderable(groups, Selection{}))
}

func TestOverfilledSingleGroups(t *testing.T) {
	size := singleGroup(1, 0,
		model.Option{ID: 10, PriceType: model.PriceTypeBase, PriceValue: 100, IsAvailable: true},
		model.Option{ID: 11, PriceType: model.PriceTypeFixed, PriceValue: 40, IsAvailable: true},
	)
	toppings := singleGroup(2, 1,
		model.Option{ID: 20, IsAvailable: true},
		model.Option{ID: 21, IsAvailable: true},
	)
	toppings.SelectionType = model.SelectionMultiple
	groups := []model.OptionGroup{size, toppings}

	// both options of a single-selection group picked: the calculator would
	// happily fold both (100 base + 40 fixed), so the group must be flagged
	over := OverfilledSingleGroups(groups, Selection{1: {10, 11}})
	require.Len(t, over, 1)
	assert.Equal(t, uint(1), over[0].ID)

	// one option, a repeated id, or many picks in a multiple group are all fine
	assert.Empty(t, OverfilledSingleGroups(groups, Selection{1: {10}}))
	assert.Empty(t, OverfilledSingleGroups(groups, Selection{1: {10, 10}}))
	assert.Empty(t, OverfilledSingleGroups(groups, Selection{1: {10}, 2: {20, 21}}))
	assert.Empty(t, OverfilledSingleGroups(groups, Selection{}))
}

func TestProductOrderable_ExhaustedRequiredGroup(t *testing.T) {
	required := singleGroup(1, 0,
		model.Option{ID: 10, IsAvailable: false, StockQuantity: 9},
		model.Option{ID: 11, IsAvailable: true, StockQuantity: 0},
	)
	required.IsRequired = true
	groups := []model.OptionGroup{required}

	assert.False(t, ProductOrderable(groups, nil))

	// restock one available option and the product is orderable again
	groups[0].Options[1].StockQuantity = 1
	assert.True(t, ProductOrderable(groups, nil))
}

func TestProductOrderable_VariantBackedStock(t *testing.T) {
	required := singleGroup(1, 0, model.Option{ID: 101, IsAvailable: true, StockQuantity: 0})
	required.IsRequired = true
	groups := []model.OptionGroup{required}

	// with variants present the option's own stock is ignored; variant stock
	// decides selectability
	assert.True(t, ProductOrderable(groups, []model.Variant{variant(1, 2, 0, 101)}))
	assert.False(t, ProductOrderable(groups, []model.Variant{variant(1, 0, 0, 101)}))
}
