package service

import (
	"testing"

	"github.com/HovVathana/shoppink-backend/internal/app/model"
	"github.com/HovVathana/shoppink-backend/internal/app/repository"
	appdb "github.com/HovVathana/shoppink-backend/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := appdb.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { appdb.CleanupTestDB(gdb) })
	return gdb
}

func createTestUser(t *testing.T, gdb *gorm.DB, email string, role model.UserRole) *model.User {
	t.Helper()
	user := &model.User{
		Email:        email,
		PasswordHash: "x",
		Name:         "Test User",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, gdb.Create(user).Error)
	return user
}

// catalogFixture is a drink with two option groups: a required BASE-priced
// Size group backed by per-size variants, and an optional flat-priced add-on.
type catalogFixture struct {
	product      model.Product
	size         model.OptionGroup
	addon        model.OptionGroup
	small        model.Option
	large        model.Option
	extraShot    model.Option
	smallVariant model.Variant
	largeVariant model.Variant
}

func seedCatalogProduct(t *testing.T, gdb *gorm.DB) *catalogFixture {
	t.Helper()
	f := &catalogFixture{}

	f.product = model.Product{
		Name:          "Iced Latte",
		Price:         30,
		Category:      model.CategoryDrink,
		StockQuantity: 100,
		IsPublished:   true,
	}
	require.NoError(t, gdb.Create(&f.product).Error)

	f.size = model.OptionGroup{
		ProductID:     f.product.ID,
		Name:          "Size",
		SelectionType: model.SelectionSingle,
		IsRequired:    true,
		SortOrder:     1,
	}
	f.addon = model.OptionGroup{
		ProductID:     f.product.ID,
		Name:          "Add-ons",
		SelectionType: model.SelectionMultiple,
		SortOrder:     2,
	}
	require.NoError(t, gdb.Create(&f.size).Error)
	require.NoError(t, gdb.Create(&f.addon).Error)

	f.small = model.Option{
		GroupID:       f.size.ID,
		Name:          "Small",
		PriceType:     model.PriceTypeBase,
		PriceValue:    30,
		IsAvailable:   true,
		StockQuantity: 10,
		SortOrder:     1,
	}
	f.large = model.Option{
		GroupID:       f.size.ID,
		Name:          "Large",
		PriceType:     model.PriceTypeBase,
		PriceValue:    40,
		IsAvailable:   true,
		StockQuantity: 8,
		SortOrder:     2,
	}
	f.extraShot = model.Option{
		GroupID:       f.addon.ID,
		Name:          "Extra Shot",
		PriceType:     model.PriceTypeFixed,
		PriceValue:    5,
		IsAvailable:   true,
		StockQuantity: 20,
		SortOrder:     1,
	}
	require.NoError(t, gdb.Create(&f.small).Error)
	require.NoError(t, gdb.Create(&f.large).Error)
	require.NoError(t, gdb.Create(&f.extraShot).Error)

	// BASE constituents make the adjustment an absolute price
	f.smallVariant = model.Variant{
		ProductID:       f.product.ID,
		Name:            "Small",
		StockQuantity:   5,
		PriceAdjustment: 30,
		IsActive:        true,
		Options:         []model.VariantOption{{OptionID: f.small.ID}},
	}
	f.largeVariant = model.Variant{
		ProductID:       f.product.ID,
		Name:            "Large",
		StockQuantity:   4,
		PriceAdjustment: 40,
		IsActive:        true,
		Options:         []model.VariantOption{{OptionID: f.large.ID}},
	}
	require.NoError(t, gdb.Create(&f.smallVariant).Error)
	require.NoError(t, gdb.Create(&f.largeVariant).Error)

	return f
}

// seedSimpleProduct has no option groups; stock lives on the product row.
func seedSimpleProduct(t *testing.T, gdb *gorm.DB, stock int) *model.Product {
	t.Helper()
	product := &model.Product{
		Name:          "Gift Box",
		Price:         12.5,
		Category:      model.CategoryGift,
		StockQuantity: stock,
		IsPublished:   true,
	}
	require.NoError(t, gdb.Create(product).Error)
	return product
}

func newProductService(gdb *gorm.DB) ProductService {
	return NewProductService(repository.NewProductRepository(gdb))
}

func newCartService(gdb *gorm.DB) CartService {
	return NewCartService(repository.NewCartRepository(gdb), repository.NewProductRepository(gdb))
}

func newCatalogService(gdb *gorm.DB) CatalogService {
	return NewCatalogService(
		repository.NewOptionGroupRepository(gdb),
		repository.NewVariantRepository(gdb),
		repository.NewProductRepository(gdb),
	)
}

// recordingNotifier captures order events for assertions.
type recordingNotifier struct {
	created []string
	updated []string
}

func (n *recordingNotifier) NotifyOrderCreated(order *model.Order) {
	n.created = append(n.created, order.OrderNumber)
}

func (n *recordingNotifier) NotifyOrderUpdated(order *model.Order) {
	n.updated = append(n.updated, order.OrderNumber)
}

func newOrderService(gdb *gorm.DB, notifier OrderNotifier) OrderService {
	return NewOrderService(
		gdb,
		repository.NewOrderRepository(gdb),
		repository.NewCartRepository(gdb),
		repository.NewDriverRepository(gdb),
		notifier,
	)
}
