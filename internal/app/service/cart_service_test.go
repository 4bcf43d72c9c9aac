package service

import (
	"testing"

	"github.com/HovVathana/shoppink-backend/internal/app/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCartRequiresSelection(t *testing.T) {
	gdb := newTestDB(t)
	f := seedCatalogProduct(t, gdb)
	user := createTestUser(t, gdb, "shopper@example.com", "customer")
	svc := newCartService(gdb)

	_, err := svc.AddToCart(user.ID, AddToCartInput{
		ProductID: f.product.ID,
		Quantity:  1,
	})
	assert.ErrorIs(t, err, ErrRequiredGroupEmpty)
}

func TestAddToCartResolvesVariant(t *testing.T) {
	gdb := newTestDB(t)
	f := seedCatalogProduct(t, gdb)
	user := createTestUser(t, gdb, "shopper@example.com", "customer")
	svc := newCartService(gdb)

	item, err := svc.AddToCart(user.ID, AddToCartInput{
		ProductID: f.product.ID,
		Quantity:  2,
		Selected:  catalog.Selection{f.size.ID: {f.small.ID}},
	})
	require.NoError(t, err)

	assert.Equal(t, 30.0, item.UnitPrice)
	require.NotNil(t, item.VariantID)
	assert.Equal(t, f.smallVariant.ID, *item.VariantID)
	assert.NotEmpty(t, item.OptionSnapshot)
}

func TestAddToCartCompositionalPrice(t *testing.T) {
	gdb := newTestDB(t)
	f := seedCatalogProduct(t, gdb)
	user := createTestUser(t, gdb, "shopper@example.com", "customer")
	svc := newCartService(gdb)

	// without variants the selection prices compositionally and stock comes
	// from the options' own counters
	require.NoError(t, gdb.Delete(&f.smallVariant).Error)
	require.NoError(t, gdb.Delete(&f.largeVariant).Error)

	item, err := svc.AddToCart(user.ID, AddToCartInput{
		ProductID: f.product.ID,
		Quantity:  1,
		Selected: catalog.Selection{
			f.size.ID:  {f.small.ID},
			f.addon.ID: {f.extraShot.ID},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 35.0, item.UnitPrice)
	assert.Nil(t, item.VariantID)
}

func TestAddToCartRejectsMultiSelectInSingleGroup(t *testing.T) {
	gdb := newTestDB(t)
	f := seedCatalogProduct(t, gdb)
	user := createTestUser(t, gdb, "shopper@example.com", "customer")
	svc := newCartService(gdb)

	// size is single-selection; picking both sizes must never reach pricing
	_, err := svc.AddToCart(user.ID, AddToCartInput{
		ProductID: f.product.ID,
		Quantity:  1,
		Selected:  catalog.Selection{f.size.ID: {f.small.ID, f.large.ID}},
	})
	assert.ErrorIs(t, err, ErrSingleGroupConflict)

	summary, err := svc.GetCart(user.ID)
	require.NoError(t, err)
	assert.Empty(t, summary.Items)
}

func TestAddToCartInsufficientStock(t *testing.T) {
	gdb := newTestDB(t)
	f := seedCatalogProduct(t, gdb)
	user := createTestUser(t, gdb, "shopper@example.com", "customer")
	svc := newCartService(gdb)

	_, err := svc.AddToCart(user.ID, AddToCartInput{
		ProductID: f.product.ID,
		Quantity:  6, // small variant holds 5
		Selected:  catalog.Selection{f.size.ID: {f.small.ID}},
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestAddToCartMergesIdenticalSelection(t *testing.T) {
	gdb := newTestDB(t)
	f := seedCatalogProduct(t, gdb)
	user := createTestUser(t, gdb, "shopper@example.com", "customer")
	svc := newCartService(gdb)

	selected := catalog.Selection{f.size.ID: {f.small.ID}}
	_, err := svc.AddToCart(user.ID, AddToCartInput{ProductID: f.product.ID, Quantity: 2, Selected: selected})
	require.NoError(t, err)
	_, err = svc.AddToCart(user.ID, AddToCartInput{ProductID: f.product.ID, Quantity: 2, Selected: selected})
	require.NoError(t, err)

	summary, err := svc.GetCart(user.ID)
	require.NoError(t, err)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, 4, summary.Items[0].Quantity)
	assert.Equal(t, 120.0, summary.TotalPrice)
}

func TestAddToCartUnpublishedProduct(t *testing.T) {
	gdb := newTestDB(t)
	f := seedCatalogProduct(t, gdb)
	user := createTestUser(t, gdb, "shopper@example.com", "customer")
	require.NoError(t, gdb.Model(&f.product).Update("is_published", false).Error)
	svc := newCartService(gdb)

	_, err := svc.AddToCart(user.ID, AddToCartInput{
		ProductID: f.product.ID,
		Quantity:  1,
		Selected:  catalog.Selection{f.size.ID: {f.small.ID}},
	})
	assert.ErrorIs(t, err, ErrProductNotPublished)
}

func TestUpdateQuantityChecksStock(t *testing.T) {
	gdb := newTestDB(t)
	f := seedCatalogProduct(t, gdb)
	user := createTestUser(t, gdb, "shopper@example.com", "customer")
	svc := newCartService(gdb)

	item, err := svc.AddToCart(user.ID, AddToCartInput{
		ProductID: f.product.ID,
		Quantity:  1,
		Selected:  catalog.Selection{f.size.ID: {f.small.ID}},
	})
	require.NoError(t, err)

	_, err = svc.UpdateQuantity(user.ID, item.ID, 6)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	updated, err := svc.UpdateQuantity(user.ID, item.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)
}

func TestRemoveItemOwnership(t *testing.T) {
	gdb := newTestDB(t)
	f := seedCatalogProduct(t, gdb)
	owner := createTestUser(t, gdb, "owner@example.com", "customer")
	other := createTestUser(t, gdb, "other@example.com", "customer")
	svc := newCartService(gdb)

	item, err := svc.AddToCart(owner.ID, AddToCartInput{
		ProductID: f.product.ID,
		Quantity:  1,
		Selected:  catalog.Selection{f.size.ID: {f.small.ID}},
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.RemoveItem(other.ID, item.ID), ErrCartItemForbidden)
	assert.NoError(t, svc.RemoveItem(owner.ID, item.ID))
}

func TestClearCart(t *testing.T) {
	gdb := newTestDB(t)
	f := seedCatalogProduct(t, gdb)
	user := createTestUser(t, gdb, "shopper@example.com", "customer")
	svc := newCartService(gdb)

	_, err := svc.AddToCart(user.ID, AddToCartInput{
		ProductID: f.product.ID,
		Quantity:  1,
		Selected:  catalog.Selection{f.size.ID: {f.small.ID}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(user.ID))

	summary, err := svc.GetCart(user.ID)
	require.NoError(t, err)
	assert.Empty(t, summary.Items)
}
