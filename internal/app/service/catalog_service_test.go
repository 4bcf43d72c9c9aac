package service

import (
	"testing"

	"github.com/HovVathana/shoppink-backend/internal/app/catalog"
	"github.com/HovVathana/shoppink-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDeleteGroupWithChildrenRejected(t *testing.T) {
	gdb := newTestDB(t)
	product := seedSimpleProduct(t, gdb, 10)
	svc := newCatalogService(gdb)

	parent := &model.OptionGroup{ProductID: product.ID, Name: "Material", IsParent: true, StockQuantity: 20}
	require.NoError(t, svc.CreateGroup(parent))
	child := &model.OptionGroup{ProductID: product.ID, Name: "Color", ParentGroupID: &parent.ID, StockQuantity: 10}
	require.NoError(t, svc.CreateGroup(child))

	assert.ErrorIs(t, svc.DeleteGroup(parent.ID), ErrGroupHasChildren)

	require.NoError(t, svc.DeleteGroup(child.ID))
	assert.NoError(t, svc.DeleteGroup(parent.ID))
}

func TestCreateGroupRejectsForeignParent(t *testing.T) {
	gdb := newTestDB(t)
	product := seedSimpleProduct(t, gdb, 10)
	otherProduct := seedSimpleProduct(t, gdb, 10)
	svc := newCatalogService(gdb)

	parent := &model.OptionGroup{ProductID: otherProduct.ID, Name: "Material", IsParent: true}
	require.NoError(t, svc.CreateGroup(parent))

	err := svc.CreateGroup(&model.OptionGroup{
		ProductID:     product.ID,
		Name:          "Color",
		ParentGroupID: &parent.ID,
	})
	assert.ErrorIs(t, err, ErrInvalidParentGroup)
}

func TestDeleteOptionReferencedByVariant(t *testing.T) {
	gdb := newTestDB(t)
	f := seedCatalogProduct(t, gdb)
	svc := newCatalogService(gdb)

	assert.ErrorIs(t, svc.DeleteOption(f.small.ID), ErrOptionInUse)

	// the add-on option appears in no variant, so it can go
	assert.NoError(t, svc.DeleteOption(f.extraShot.ID))
}

func TestCreateVariantRejectsDuplicateCombination(t *testing.T) {
	gdb := newTestDB(t)
	f := seedCatalogProduct(t, gdb)
	svc := newCatalogService(gdb)

	err := svc.CreateVariant(&model.Variant{
		ProductID:       f.product.ID,
		StockQuantity:   3,
		PriceAdjustment: 30,
		IsActive:        true,
		Options:         []model.VariantOption{{OptionID: f.small.ID}},
	})
	assert.ErrorIs(t, err, ErrDuplicateVariant)

	// a new combination is fine
	err = svc.CreateVariant(&model.Variant{
		ProductID:       f.product.ID,
		StockQuantity:   3,
		PriceAdjustment: 35,
		IsActive:        true,
		Options: []model.VariantOption{
			{OptionID: f.small.ID},
			{OptionID: f.extraShot.ID},
		},
	})
	assert.NoError(t, err)
}

func TestCreateVariantRejectsUnknownOption(t *testing.T) {
	gdb := newTestDB(t)
	f := seedCatalogProduct(t, gdb)
	svc := newCatalogService(gdb)

	err := svc.CreateVariant(&model.Variant{
		ProductID: f.product.ID,
		IsActive:  true,
		Options:   []model.VariantOption{{OptionID: 9999}},
	})
	assert.ErrorIs(t, err, ErrInvalidOptionRef)
}

func TestAdjustOptionStock(t *testing.T) {
	gdb := newTestDB(t)
	f := seedCatalogProduct(t, gdb)
	svc := newCatalogService(gdb)

	assert.ErrorIs(t, svc.AdjustOptionStock(f.small.ID, -11), ErrInsufficientStock)

	require.NoError(t, svc.AdjustOptionStock(f.small.ID, -3))

	var option model.Option
	require.NoError(t, gdb.First(&option, f.small.ID).Error)
	assert.Equal(t, 7, option.StockQuantity)
}

func TestSingleGroupKeepsOneDefaultOption(t *testing.T) {
	gdb := newTestDB(t)
	f := seedCatalogProduct(t, gdb)
	svc := newCatalogService(gdb)

	// size is single-selection; small starts as the default
	small := f.small
	small.IsDefault = true
	require.NoError(t, svc.UpdateOption(&small))

	// promoting large demotes small
	large := f.large
	large.IsDefault = true
	require.NoError(t, svc.UpdateOption(&large))

	var options []model.Option
	require.NoError(t, gdb.Where("group_id = ? AND is_default = ?", f.size.ID, true).Find(&options).Error)
	require.Len(t, options, 1)
	assert.Equal(t, f.large.ID, options[0].ID)

	// a new default option in the same group wins again
	require.NoError(t, svc.CreateOption(&model.Option{
		GroupID:     f.size.ID,
		Name:        "Medium",
		PriceType:   model.PriceTypeBase,
		PriceValue:  35,
		IsDefault:   true,
		IsAvailable: true,
	}))
	require.NoError(t, gdb.Where("group_id = ? AND is_default = ?", f.size.ID, true).Find(&options).Error)
	require.Len(t, options, 1)
	assert.Equal(t, "Medium", options[0].Name)
}

func TestGetGroupTree(t *testing.T) {
	gdb := newTestDB(t)
	product := seedSimpleProduct(t, gdb, 10)
	svc := newCatalogService(gdb)

	parent := &model.OptionGroup{ProductID: product.ID, Name: "Material", IsParent: true, SortOrder: 1}
	require.NoError(t, svc.CreateGroup(parent))
	child := &model.OptionGroup{ProductID: product.ID, Name: "Color", ParentGroupID: &parent.ID, SortOrder: 2}
	require.NoError(t, svc.CreateGroup(child))
	standalone := &model.OptionGroup{ProductID: product.ID, Name: "Wrapping", SortOrder: 3}
	require.NoError(t, svc.CreateGroup(standalone))

	tree, err := svc.GetGroupTree(product.ID)
	require.NoError(t, err)
	require.Len(t, tree, 2)

	byName := map[string]model.OptionGroup{}
	for _, g := range tree {
		byName[g.Name] = g
	}
	require.Contains(t, byName, "Material")
	require.Len(t, byName["Material"].ChildGroups, 1)
	assert.Equal(t, "Color", byName["Material"].ChildGroups[0].Name)
	assert.Empty(t, byName["Wrapping"].ChildGroups)
}

// seedAllocations builds a parent group with a single option holding
// parentStock, plus one child group per entry in childGroupStocks. Each child
// group gets one option consuming exactly the group's stock.
func seedAllocations(t *testing.T, gdb *gorm.DB, parentStock int, childGroupStocks ...int) (*model.Product, CatalogService) {
	t.Helper()
	product := seedSimpleProduct(t, gdb, 10)
	svc := newCatalogService(gdb)

	parent := &model.OptionGroup{ProductID: product.ID, Name: "Material", IsParent: true}
	require.NoError(t, svc.CreateGroup(parent))
	require.NoError(t, svc.CreateOption(&model.Option{
		GroupID:       parent.ID,
		Name:          "Cotton",
		PriceType:     model.PriceTypeFree,
		IsAvailable:   true,
		StockQuantity: parentStock,
	}))

	for i, stock := range childGroupStocks {
		child := &model.OptionGroup{
			ProductID:     product.ID,
			Name:          []string{"Red", "Blue", "Green"}[i],
			ParentGroupID: &parent.ID,
			StockQuantity: stock,
		}
		require.NoError(t, svc.CreateGroup(child))
		require.NoError(t, svc.CreateOption(&model.Option{
			GroupID:       child.ID,
			Name:          "Default",
			PriceType:     model.PriceTypeFree,
			IsAvailable:   true,
			StockQuantity: stock,
		}))
	}
	return product, svc
}

func TestAuditAllocationsOverAllocatedParent(t *testing.T) {
	gdb := newTestDB(t)
	product, svc := seedAllocations(t, gdb, 10, 6, 6)

	violations, err := svc.AuditAllocations(product.ID)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, catalog.ViolationParentOption, violations[0].Kind)
	assert.Equal(t, 12, violations[0].Allocated)
	assert.Equal(t, 10, violations[0].Available)
}

func TestAuditAllocationsOverAllocatedChildGroup(t *testing.T) {
	gdb := newTestDB(t)
	product, svc := seedAllocations(t, gdb, 10, 5)

	// bump the child group's option past the group allocation
	var child model.OptionGroup
	require.NoError(t, gdb.Where("name = ?", "Red").First(&child).Error)
	require.NoError(t, gdb.Model(&model.Option{}).
		Where("group_id = ?", child.ID).
		Update("stock_quantity", 7).Error)

	violations, err := svc.AuditAllocations(product.ID)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, catalog.ViolationChildGroup, violations[0].Kind)
}

func TestAuditAllocationsClean(t *testing.T) {
	gdb := newTestDB(t)
	product, svc := seedAllocations(t, gdb, 10, 6, 4)

	violations, err := svc.AuditAllocations(product.ID)
	require.NoError(t, err)
	assert.Empty(t, violations)
}
