package catalog

import (
	"testing"

	"github.com/HovVathana/shoppink-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
)

func TestOptionAvailableStock_SupersetMatch(t *testing.T) {
	variants := []model.Variant{
		variant(1, 3, 0, 101, 201), // {A,B} stock 3
		variant(2, 5, 0, 101, 202), // {A,C} stock 5
	}

	optionB := model.Option{ID: 201, GroupID: 2, IsAvailable: true}
	optionA := model.Option{ID: 101, GroupID: 1, IsAvailable: true}

	// With nothing else selected, only variants containing B count.
	assert.Equal(t, 3, OptionAvailableStock(variants, Selection{}, 2, optionB))

	// A is in both variants, so both contribute.
	assert.Equal(t, 8, OptionAvailableStock(variants, Selection{}, 1, optionA))

	// Selecting C narrows A down to the {A,C} variant.
	assert.Equal(t, 5, OptionAvailableStock(variants, Selection{2: {202}}, 1, optionA))
}

func TestOptionAvailableStock_QueriedGroupExcluded(t *testing.T) {
	variants := []model.Variant{
		variant(1, 3, 0, 101, 201),
		variant(2, 5, 0, 102, 201),
	}
	optionM := model.Option{ID: 102, GroupID: 1, IsAvailable: true}

	// A stale selection in the queried group must not pin the answer to the
	// currently selected option.
	got := OptionAvailableStock(variants, Selection{1: {101}, 2: {201}}, 1, optionM)
	assert.Equal(t, 5, got)
}

func TestOptionAvailableStock_InactiveVariantsIgnored(t *testing.T) {
	inactive := variant(1, 30, 0, 101, 201)
	inactive.IsActive = false
	variants := []model.Variant{
		inactive,
		variant(2, 4, 0, 101, 202),
	}
	optionA := model.Option{ID: 101, GroupID: 1, IsAvailable: true}

	assert.Equal(t, 4, OptionAvailableStock(variants, Selection{}, 1, optionA))
}

func TestOptionAvailableStock_FlatFallbackWithoutVariants(t *testing.T) {
	option := model.Option{ID: 101, GroupID: 1, StockQuantity: 7, IsAvailable: true}

	assert.Equal(t, 7, OptionAvailableStock(nil, Selection{}, 1, option))
	// hierarchy is ignored in the fallback; other selections don't narrow it
	assert.Equal(t, 7, OptionAvailableStock(nil, Selection{2: {202}}, 1, option))
}

func TestGroupHasSelectableOption(t *testing.T) {
	group := singleGroup(1, 0,
		model.Option{ID: 101, IsAvailable: false, StockQuantity: 10},
		model.Option{ID: 102, IsAvailable: true, StockQuantity: 0},
	)

	// unavailable or out of stock on every option -> nothing selectable
	assert.False(t, GroupHasSelectableOption(group, nil, Selection{}))

	group.Options[1].StockQuantity = 2
	assert.True(t, GroupHasSelectableOption(group, nil, Selection{}))
}

func TestTotalVariantStock(t *testing.T) {
	inactive := variant(3, 100, 0, 102, 202)
	inactive.IsActive = false
	variants := []model.Variant{
		variant(1, 3, 0, 101, 201),
		variant(2, 5, 0, 101, 202),
		inactive,
	}

	assert.Equal(t, 8, TotalVariantStock(variants))
}
