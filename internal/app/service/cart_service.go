package service

import (
	"errors"

	"github.com/HovVathana/shoppink-backend/internal/app/catalog"
	"github.com/HovVathana/shoppink-backend/internal/app/model"
	"github.com/HovVathana/shoppink-backend/internal/app/repository"
	"github.com/HovVathana/shoppink-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound     = errors.New("cart item not found")
	ErrCartItemForbidden    = errors.New("cart item belongs to another user")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrRequiredGroupEmpty   = errors.New("a required option group has no selection")
	ErrSingleGroupConflict  = errors.New("multiple options selected in a single-selection group")
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrProductNotPublished  = errors.New("product is not published")
	ErrSelectionNotResolved = errors.New("selection could not be priced")
)

type AddToCartInput struct {
	ProductID uint              `json:"product_id" binding:"required"`
	Quantity  int               `json:"quantity" binding:"required,min=1"`
	Selected  catalog.Selection `json:"selected"`
}

type CartSummary struct {
	Items      []model.CartItem `json:"items"`
	ItemCount  int              `json:"item_count"`
	TotalPrice float64          `json:"total_price"`
}

type CartService interface {
	GetCart(userID uint) (*CartSummary, error)
	AddToCart(userID uint, input AddToCartInput) (*model.CartItem, error)
	UpdateQuantity(userID, itemID uint, quantity int) (*model.CartItem, error)
	RemoveItem(userID, itemID uint) error
	ClearCart(userID uint) error
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{cartRepo: cartRepo, productRepo: productRepo}
}

func (s *cartService) GetCart(userID uint) (*CartSummary, error) {
	items, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to load cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	summary := &CartSummary{Items: items}
	for _, item := range items {
		summary.ItemCount += item.Quantity
		summary.TotalPrice += item.UnitPrice * float64(item.Quantity)
	}
	return summary, nil
}

// AddToCart validates the shopper's selection against the product's catalog
// before anything is persisted: every required group must be selected, the
// resolved price is frozen into the item, and the available stock (variant or
// option level) must cover the requested quantity.
func (s *cartService) AddToCart(userID uint, input AddToCartInput) (*model.CartItem, error) {
	if input.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.FindDetail(input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	if !product.IsPublished {
		return nil, ErrProductNotPublished
	}

	if missing := catalog.MissingRequiredGroups(product.OptionGroups, input.Selected); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, g := range missing {
			names[i] = g.Name
		}
		logger.Debug("Cart add rejected, required groups unselected", map[string]interface{}{
			"user_id":    userID,
			"product_id": input.ProductID,
			"groups":     names,
		})
		return nil, ErrRequiredGroupEmpty
	}

	if over := catalog.OverfilledSingleGroups(product.OptionGroups, input.Selected); len(over) > 0 {
		names := make([]string, len(over))
		for i, g := range over {
			names[i] = g.Name
		}
		logger.Debug("Cart add rejected, multiple options in single-selection groups", map[string]interface{}{
			"user_id":    userID,
			"product_id": input.ProductID,
			"groups":     names,
		})
		return nil, ErrSingleGroupConflict
	}

	res := catalog.ResolveVariant(product, input.Selected)
	for _, issue := range res.Issues {
		logger.Warn("Catalog integrity issue detected during cart add", map[string]interface{}{
			"product_id": input.ProductID,
			"issue":      issue.String(),
		})
	}

	available := availableForSelection(product, res, input.Selected)
	if available < input.Quantity {
		logger.Debug("Cart add rejected, insufficient stock", map[string]interface{}{
			"user_id":    userID,
			"product_id": input.ProductID,
			"available":  available,
			"requested":  input.Quantity,
		})
		return nil, ErrInsufficientStock
	}

	snapshot, err := input.Selected.MarshalSnapshot()
	if err != nil {
		return nil, ErrSelectionNotResolved
	}

	item := &model.CartItem{
		UserID:         userID,
		ProductID:      input.ProductID,
		Quantity:       input.Quantity,
		UnitPrice:      res.Price,
		OptionSnapshot: snapshot,
	}
	if res.Variant != nil {
		id := res.Variant.ID
		item.VariantID = &id
	}

	// identical selection already in the cart just bumps the quantity
	existing, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if existing[i].ProductID == item.ProductID && existing[i].OptionSnapshot == snapshot {
			existing[i].Quantity += input.Quantity
			if available < existing[i].Quantity {
				return nil, ErrInsufficientStock
			}
			existing[i].UnitPrice = res.Price
			if err := s.cartRepo.Update(&existing[i]); err != nil {
				return nil, err
			}
			return &existing[i], nil
		}
	}

	if err := s.cartRepo.Create(item); err != nil {
		logger.Error("Failed to add item to cart", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": input.ProductID,
		})
		return nil, err
	}

	logger.Info("Item added to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": input.ProductID,
		"quantity":   input.Quantity,
		"unit_price": res.Price,
	})
	return item, nil
}

// availableForSelection picks the stock figure that constrains the selection:
// the variant's own count when one matched, otherwise the tightest option-level
// availability across the selected options, falling back to the product count.
func availableForSelection(product *model.Product, res catalog.Resolution, selected catalog.Selection) int {
	if res.Variant != nil {
		return res.Variant.StockQuantity
	}
	if selected.IsEmpty() || len(product.OptionGroups) == 0 {
		return product.StockQuantity
	}

	tightest := -1
	for _, g := range product.OptionGroups {
		ids, ok := selected[g.ID]
		if !ok {
			continue
		}
		for _, optID := range ids {
			for _, opt := range g.Options {
				if opt.ID != optID {
					continue
				}
				avail := catalog.OptionAvailableStock(product.Variants, selected, g.ID, opt)
				if tightest < 0 || avail < tightest {
					tightest = avail
				}
			}
		}
	}
	if tightest < 0 {
		return product.StockQuantity
	}
	return tightest
}

func (s *cartService) UpdateQuantity(userID, itemID uint, quantity int) (*model.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindDetail(item.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	selected, err := catalog.ParseSnapshot(item.OptionSnapshot)
	if err != nil {
		return nil, ErrSelectionNotResolved
	}
	res := catalog.ResolveVariant(product, selected)
	if availableForSelection(product, res, selected) < quantity {
		return nil, ErrInsufficientStock
	}

	item.Quantity = quantity
	if err := s.cartRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *cartService) RemoveItem(userID, itemID uint) error {
	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return err
	}
	return s.cartRepo.Delete(item.ID)
}

func (s *cartService) ClearCart(userID uint) error {
	if err := s.cartRepo.DeleteByUserID(userID); err != nil {
		logger.Error("Failed to clear cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}
	return nil
}

func (s *cartService) ownedItem(userID, itemID uint) (*model.CartItem, error) {
	item, err := s.cartRepo.FindByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	if item.UserID != userID {
		return nil, ErrCartItemForbidden
	}
	return item, nil
}
