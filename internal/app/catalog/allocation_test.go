package catalog

import (
	"testing"

	"github.com/HovVathana/shoppink-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parentWithChildren(parentOptionStock, childStockA, childStockB int) []model.OptionGroup {
	parentID := uint(1)
	return []model.OptionGroup{
		{
			ID:       parentID,
			Name:     "Size",
			IsParent: true,
			Options: []model.Option{
				{ID: 10, GroupID: parentID, Name: "Large", StockQuantity: parentOptionStock, IsAvailable: true},
			},
		},
		{
			ID:            2,
			Name:          "Color A",
			ParentGroupID: &parentID,
			StockQuantity: childStockA,
			Options: []model.Option{
				{ID: 20, GroupID: 2, Name: "Red", StockQuantity: 2, IsAvailable: true},
			},
		},
		{
			ID:            3,
			Name:          "Color B",
			ParentGroupID: &parentID,
			StockQuantity: childStockB,
			Options: []model.Option{
				{ID: 30, GroupID: 3, Name: "Blue", StockQuantity: 2, IsAvailable: true},
			},
		},
	}
}

func TestValidateAllocations_ParentOptionOverallocated(t *testing.T) {
	// two child groups claiming 6+6 against a parent option holding 10
	groups := parentWithChildren(10, 6, 6)

	violations := ValidateAllocations(groups)

	require.Len(t, violations, 1)
	assert.Equal(t, ViolationParentOption, violations[0].Kind)
	assert.Equal(t, uint(10), violations[0].OptionID)
	assert.Equal(t, 12, violations[0].Allocated)
	assert.Equal(t, 10, violations[0].Available)
}

func TestValidateAllocations_ReducedChildClearsViolation(t *testing.T) {
	groups := parentWithChildren(10, 6, 4)

	assert.Empty(t, ValidateAllocations(groups))
}

func TestValidateAllocations_ChildGroupOverallocated(t *testing.T) {
	parentID := uint(1)
	groups := []model.OptionGroup{
		{ID: parentID, Name: "Size", IsParent: true, Options: []model.Option{
			{ID: 10, GroupID: parentID, StockQuantity: 100, IsAvailable: true},
		}},
		{
			ID:            2,
			Name:          "Color",
			ParentGroupID: &parentID,
			StockQuantity: 5,
			Options: []model.Option{
				{ID: 20, GroupID: 2, Name: "Red", StockQuantity: 3, IsAvailable: true},
				{ID: 21, GroupID: 2, Name: "Blue", StockQuantity: 4, IsAvailable: true},
			},
		},
	}

	violations := ValidateAllocations(groups)

	require.Len(t, violations, 1)
	assert.Equal(t, ViolationChildGroup, violations[0].Kind)
	assert.Equal(t, uint(2), violations[0].GroupID)
	assert.Equal(t, 7, violations[0].Allocated)
	assert.Equal(t, 5, violations[0].Available)
}

func TestValidateAllocations_ExactAllocationIsFine(t *testing.T) {
	// boundary: allocated == available is not a violation
	groups := parentWithChildren(12, 6, 6)

	assert.Empty(t, ValidateAllocations(groups))
}

func TestValidateAllocations_StandaloneGroupsIgnored(t *testing.T) {
	groups := []model.OptionGroup{
		{ID: 1, Name: "Topping", StockQuantity: 1, Options: []model.Option{
			{ID: 10, GroupID: 1, StockQuantity: 500, IsAvailable: true},
		}},
	}

	assert.Empty(t, ValidateAllocations(groups))
}
