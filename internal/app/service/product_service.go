package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/HovVathana/shoppink-backend/internal/app/catalog"
	"github.com/HovVathana/shoppink-backend/internal/app/model"
	"github.com/HovVathana/shoppink-backend/internal/app/repository"
	"github.com/HovVathana/shoppink-backend/pkg/logger"
	"github.com/HovVathana/shoppink-backend/pkg/redis"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

const stockSummaryTTL = 5 * time.Minute

func stockSummaryCacheKey(productID uint) string {
	return fmt.Sprintf("product:stock_summary:%d", productID)
}

type ProductSort string

const (
	ProductSortPrice     ProductSort = "price"
	ProductSortCreatedAt ProductSort = "created_at"
	ProductSortViews     ProductSort = "views"
)

type ProductListOptions struct {
	Category      *model.ProductCategory
	Search        string
	PublishedOnly bool
	Sort          ProductSort
	SortAscending bool
	Limit         int
	Offset        int
}

// ProductDetail is a product with its option-group tree built and its
// overall orderability precomputed for the storefront.
type ProductDetail struct {
	Product   model.Product       `json:"product"`
	GroupTree []model.OptionGroup `json:"group_tree"`
	Orderable bool                `json:"orderable"`
}

// QuoteResult prices a selection against a product.
type QuoteResult struct {
	Price          float64                  `json:"price"`
	VariantID      *uint                    `json:"variant_id,omitempty"`
	Orderable      bool                     `json:"orderable"`
	MissingGroups  []string                 `json:"missing_groups,omitempty"`
	ConflictGroups []string                 `json:"conflict_groups,omitempty"` // single-selection groups with more than one option picked
	AvailableStock int                      `json:"available_stock"`
	Issues         []catalog.IntegrityIssue `json:"issues,omitempty"`
}

// OptionStockSummary and friends form the hierarchical stock report.
type OptionStockSummary struct {
	OptionID    uint   `json:"option_id"`
	Name        string `json:"name"`
	Stock       int    `json:"stock"`
	Available   int    `json:"available"` // across active variants, or flat stock
	IsAvailable bool   `json:"is_available"`
}

type GroupStockSummary struct {
	GroupID     uint                 `json:"group_id"`
	Name        string               `json:"name"`
	IsParent    bool                 `json:"is_parent"`
	Stock       int                  `json:"stock"`
	Options     []OptionStockSummary `json:"options"`
	ChildGroups []GroupStockSummary  `json:"child_groups,omitempty"`
}

type StockSummary struct {
	ProductID  uint                `json:"product_id"`
	TotalStock int                 `json:"total_stock"`
	Groups     []GroupStockSummary `json:"groups"`
	Violations []catalog.Violation `json:"violations,omitempty"`
}

type ProductService interface {
	ListProducts(opts ProductListOptions) ([]model.Product, error)
	GetProductByID(id uint) (*model.Product, error)
	GetProductDetail(id uint) (*ProductDetail, error)
	QuoteSelection(productID uint, selected catalog.Selection) (*QuoteResult, error)
	GetOptionAvailability(productID, groupID, optionID uint, selected catalog.Selection) (int, error)
	GetStockSummary(ctx context.Context, productID uint) (*StockSummary, error)
	CreateProduct(product *model.Product) error
	UpdateProduct(product *model.Product) error
	DeleteProduct(id uint) error
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) ListProducts(opts ProductListOptions) ([]model.Product, error) {
	logger.Debug("Listing products", map[string]interface{}{
		"category": opts.Category,
		"search":   opts.Search,
		"sort":     opts.Sort,
		"limit":    opts.Limit,
		"offset":   opts.Offset,
	})

	filter := repository.ProductFilter{
		Category:      opts.Category,
		Search:        opts.Search,
		PublishedOnly: opts.PublishedOnly,
		SortAscending: opts.SortAscending,
		Limit:         opts.Limit,
		Offset:        opts.Offset,
	}
	switch opts.Sort {
	case ProductSortPrice:
		filter.SortBy = repository.ProductSortPrice
	case ProductSortViews:
		filter.SortBy = repository.ProductSortViewCount
	default:
		filter.SortBy = repository.ProductSortCreatedAt
	}

	products, err := s.productRepo.FindWithFilter(filter)
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, err
	}

	logger.Info("Products listed", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return product, nil
}

func (s *productService) GetProductDetail(id uint) (*ProductDetail, error) {
	product, err := s.productRepo.FindDetail(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product detail", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	if err := s.productRepo.IncrementViewCount(id); err != nil {
		// view counting is best effort
		logger.Warn("Failed to increment view count", map[string]interface{}{
			"product_id": id,
		})
	}

	return &ProductDetail{
		Product:   *product,
		GroupTree: catalog.BuildGroupTree(product.OptionGroups),
		Orderable: catalog.ProductOrderable(product.OptionGroups, product.Variants),
	}, nil
}

// QuoteSelection resolves a shopper's current selection into an effective
// price, available stock and gating state. Integrity issues found during
// resolution are logged here and surfaced to the caller.
func (s *productService) QuoteSelection(productID uint, selected catalog.Selection) (*QuoteResult, error) {
	product, err := s.productRepo.FindDetail(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	res := catalog.ResolveVariant(product, selected)
	for _, issue := range res.Issues {
		logger.Warn("Catalog integrity issue detected during resolution", map[string]interface{}{
			"product_id": productID,
			"issue":      issue.String(),
		})
	}

	quote := &QuoteResult{
		Price:     res.Price,
		Orderable: catalog.IsOrderable(product.OptionGroups, selected),
		Issues:    res.Issues,
	}
	for _, g := range catalog.MissingRequiredGroups(product.OptionGroups, selected) {
		quote.MissingGroups = append(quote.MissingGroups, g.Name)
	}
	for _, g := range catalog.OverfilledSingleGroups(product.OptionGroups, selected) {
		quote.ConflictGroups = append(quote.ConflictGroups, g.Name)
	}
	if len(quote.ConflictGroups) > 0 {
		quote.Orderable = false
	}

	if res.Variant != nil {
		id := res.Variant.ID
		quote.VariantID = &id
		quote.AvailableStock = res.Variant.StockQuantity
	} else if len(product.Variants) > 0 {
		quote.AvailableStock = catalog.TotalVariantStock(product.Variants)
	} else {
		quote.AvailableStock = product.StockQuantity
	}

	return quote, nil
}

// GetOptionAvailability answers "how many units if this option were added to
// the current selection", for live availability in the storefront.
func (s *productService) GetOptionAvailability(productID, groupID, optionID uint, selected catalog.Selection) (int, error) {
	product, err := s.productRepo.FindDetail(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrProductNotFound
		}
		return 0, err
	}

	for _, g := range product.OptionGroups {
		if g.ID != groupID {
			continue
		}
		for _, opt := range g.Options {
			if opt.ID == optionID {
				return catalog.OptionAvailableStock(product.Variants, selected, groupID, opt), nil
			}
		}
	}
	return 0, ErrOptionNotFound
}

func (s *productService) GetStockSummary(ctx context.Context, productID uint) (*StockSummary, error) {
	cacheKey := stockSummaryCacheKey(productID)
	if payload, found, _ := redis.CacheGet(ctx, cacheKey); found {
		var cached StockSummary
		if err := json.Unmarshal(payload, &cached); err == nil {
			logger.Debug("Stock summary served from cache", map[string]interface{}{
				"product_id": productID,
			})
			return &cached, nil
		}
	}

	product, err := s.productRepo.FindDetail(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	summary := buildStockSummary(product)

	if payload, err := json.Marshal(summary); err == nil {
		_ = redis.CacheSet(ctx, cacheKey, payload, stockSummaryTTL)
	}
	return summary, nil
}

func buildStockSummary(product *model.Product) *StockSummary {
	summary := &StockSummary{
		ProductID:  product.ID,
		Violations: catalog.ValidateAllocations(product.OptionGroups),
	}

	if len(product.Variants) > 0 {
		summary.TotalStock = catalog.TotalVariantStock(product.Variants)
	} else {
		summary.TotalStock = product.StockQuantity
	}

	for _, root := range catalog.BuildGroupTree(product.OptionGroups) {
		summary.Groups = append(summary.Groups, groupSummary(root, product.Variants))
	}
	return summary
}

func groupSummary(group model.OptionGroup, variants []model.Variant) GroupStockSummary {
	gs := GroupStockSummary{
		GroupID:  group.ID,
		Name:     group.Name,
		IsParent: group.IsParent,
		Stock:    group.StockQuantity,
	}
	for _, opt := range group.Options {
		gs.Options = append(gs.Options, OptionStockSummary{
			OptionID:    opt.ID,
			Name:        opt.Name,
			Stock:       opt.StockQuantity,
			Available:   catalog.OptionAvailableStock(variants, catalog.Selection{}, group.ID, opt),
			IsAvailable: opt.IsAvailable,
		})
	}
	for _, child := range group.ChildGroups {
		gs.ChildGroups = append(gs.ChildGroups, groupSummary(child, variants))
	}
	return gs
}

func (s *productService) CreateProduct(product *model.Product) error {
	if product.Category == "" {
		product.Category = model.CategoryOther
	}

	logger.Info("Creating new product", map[string]interface{}{
		"name":     product.Name,
		"category": product.Category,
	})

	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"name": product.Name,
		})
		return err
	}

	logger.Info("Product created successfully", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

func (s *productService) UpdateProduct(product *model.Product) error {
	existing, err := s.productRepo.FindByID(product.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	if product.Category == "" {
		product.Category = existing.Category
	}

	if err := s.productRepo.Update(product); err != nil {
		return err
	}
	invalidateStockSummary(product.ID)

	logger.Info("Product updated successfully", map[string]interface{}{
		"product_id": product.ID,
		"name":       product.Name,
	})
	return nil
}

func (s *productService) DeleteProduct(id uint) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	invalidateStockSummary(id)

	logger.Info("Product deleted successfully", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

func invalidateStockSummary(productID uint) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = redis.CacheDelete(ctx, stockSummaryCacheKey(productID))
}
