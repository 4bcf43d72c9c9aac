package service

import (
	"errors"
	"time"

	"github.com/HovVathana/shoppink-backend/internal/app/catalog"
	"github.com/HovVathana/shoppink-backend/internal/app/model"
	"github.com/HovVathana/shoppink-backend/internal/app/repository"
	"github.com/HovVathana/shoppink-backend/pkg/logger"
	"github.com/HovVathana/shoppink-backend/pkg/util"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrOrderNotFound          = errors.New("order not found")
	ErrOrderForbidden         = errors.New("order belongs to another user")
	ErrEmptyCart              = errors.New("cart is empty")
	ErrInvalidStatusChange    = errors.New("invalid order status transition")
	ErrOrderNotCancellable    = errors.New("order can no longer be cancelled")
	ErrDriverNotFound         = errors.New("driver not found")
	ErrDriverInactive         = errors.New("driver is not active")
	ErrDriverNotAssignable    = errors.New("driver can only be assigned to delivery orders")
	ErrMissingShippingAddress = errors.New("shipping address is required for delivery")
)

// OrderNotifier receives order lifecycle events; the realtime hub implements
// it to push updates to connected operator dashboards.
type OrderNotifier interface {
	NotifyOrderCreated(order *model.Order)
	NotifyOrderUpdated(order *model.Order)
}

type CheckoutInput struct {
	FulfillmentType model.FulfillmentType `json:"fulfillment_type" binding:"required,oneof=delivery pickup"`
	ShippingAddress string                `json:"shipping_address"`
	PaymentMethod   string                `json:"payment_method"`
	CustomerNote    string                `json:"customer_note"`
}

type OrderListOptions struct {
	Status   *model.OrderStatus
	DriverID *uint
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

type OrderService interface {
	Checkout(userID uint, input CheckoutInput) (*model.Order, error)
	GetOrder(id uint) (*model.Order, error)
	GetOrderForUser(userID, orderID uint) (*model.Order, error)
	GetUserOrders(userID uint) ([]model.Order, error)
	ListOrders(opts OrderListOptions) ([]model.Order, error)
	UpdateStatus(orderID uint, status model.OrderStatus) (*model.Order, error)
	CancelOrder(userID, orderID uint) (*model.Order, error)
	AssignDriver(orderID, driverID uint) (*model.Order, error)
	MarkPaid(orderID uint) (*model.Order, error)
	Dashboard() (map[model.OrderStatus]int64, error)
}

type orderService struct {
	db         *gorm.DB
	orderRepo  repository.OrderRepository
	cartRepo   repository.CartRepository
	driverRepo repository.DriverRepository
	notifier   OrderNotifier
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	driverRepo repository.DriverRepository,
	notifier OrderNotifier,
) OrderService {
	return &orderService{
		db:         db,
		orderRepo:  orderRepo,
		cartRepo:   cartRepo,
		driverRepo: driverRepo,
		notifier:   notifier,
	}
}

// Checkout turns the user's cart into an order inside one transaction. Each
// product row is locked, the selection is re-resolved against current catalog
// data so stale cart prices cannot leak through, and stock is decremented at
// whichever level tracks it (variant, option, or flat product count).
func (s *orderService) Checkout(userID uint, input CheckoutInput) (*model.Order, error) {
	if input.FulfillmentType == model.FulfillmentDelivery && input.ShippingAddress == "" {
		return nil, ErrMissingShippingAddress
	}

	items, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	order := &model.Order{
		OrderNumber:     util.GenerateOrderNumber(),
		UserID:          userID,
		Status:          model.OrderStatusPending,
		PaymentStatus:   model.PaymentStatusPending,
		PaymentMethod:   input.PaymentMethod,
		FulfillmentType: input.FulfillmentType,
		ShippingAddress: input.ShippingAddress,
		CustomerNote:    input.CustomerNote,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			query := tx.Preload("OptionGroups.Options").Preload("Variants.Options")
			if tx.Dialector.Name() == "postgres" {
				// SQLite has no row locks; its writes are serialized anyway
				query = query.Clauses(clause.Locking{Strength: "UPDATE"})
			}

			var product model.Product
			if err := query.First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotFound
				}
				return err
			}
			if !product.IsPublished {
				return ErrProductNotPublished
			}

			selected, err := catalog.ParseSnapshot(item.OptionSnapshot)
			if err != nil {
				return ErrSelectionNotResolved
			}
			if len(catalog.MissingRequiredGroups(product.OptionGroups, selected)) > 0 {
				return ErrRequiredGroupEmpty
			}

			res := catalog.ResolveVariant(&product, selected)
			for _, issue := range res.Issues {
				logger.Warn("Catalog integrity issue detected during checkout", map[string]interface{}{
					"product_id": product.ID,
					"issue":      issue.String(),
				})
			}

			if err := deductStock(tx, &product, res, selected, item.Quantity); err != nil {
				return err
			}

			orderItem := model.OrderItem{
				ProductID:      item.ProductID,
				Quantity:       item.Quantity,
				UnitPrice:      res.Price,
				OptionSnapshot: item.OptionSnapshot,
			}
			if res.Variant != nil {
				id := res.Variant.ID
				orderItem.VariantID = &id
			}
			order.OrderItems = append(order.OrderItems, orderItem)
			order.TotalAmount += res.Price * float64(item.Quantity)
		}

		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&model.CartItem{}).Error
	})
	if err != nil {
		logger.Error("Checkout failed", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("Order created", map[string]interface{}{
		"order_id":     order.ID,
		"order_number": order.OrderNumber,
		"user_id":      userID,
		"total_amount": order.TotalAmount,
		"item_count":   len(order.OrderItems),
	})

	for _, item := range order.OrderItems {
		invalidateStockSummary(item.ProductID)
	}
	if s.notifier != nil {
		s.notifier.NotifyOrderCreated(order)
	}
	return order, nil
}

// deductStock decrements the count that tracks the resolved selection. With a
// matched variant that is the variant row; otherwise every selected option's
// counter goes down, and products without option groups use the flat count.
func deductStock(tx *gorm.DB, product *model.Product, res catalog.Resolution, selected catalog.Selection, quantity int) error {
	if res.Variant != nil {
		if res.Variant.StockQuantity < quantity {
			return ErrInsufficientStock
		}
		return tx.Model(&model.Variant{}).Where("id = ?", res.Variant.ID).
			Update("stock_quantity", gorm.Expr("stock_quantity - ?", quantity)).Error
	}

	if len(product.OptionGroups) == 0 || selected.IsEmpty() {
		if product.StockQuantity < quantity {
			return ErrInsufficientStock
		}
		return tx.Model(&model.Product{}).Where("id = ?", product.ID).
			Update("stock_quantity", gorm.Expr("stock_quantity - ?", quantity)).Error
	}

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
				if catalog.OptionAvailableStock(product.Variants, selected, g.ID, opt) < quantity {
					return ErrInsufficientStock
				}
				if err := tx.Model(&model.Option{}).Where("id = ?", optID).
					Update("stock_quantity", gorm.Expr("stock_quantity - ?", quantity)).Error; err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (s *orderService) GetOrder(id uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetOrderForUser(userID, orderID uint) (*model.Order, error) {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrOrderForbidden
	}
	return order, nil
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	return s.orderRepo.FindByUserID(userID)
}

func (s *orderService) ListOrders(opts OrderListOptions) ([]model.Order, error) {
	return s.orderRepo.FindWithFilter(repository.OrderFilter{
		Status:   opts.Status,
		DriverID: opts.DriverID,
		From:     opts.From,
		To:       opts.To,
		Limit:    opts.Limit,
		Offset:   opts.Offset,
	})
}

// validTransitions encodes the forward-only order lifecycle. Cancellation is
// handled separately because it has its own ownership rules.
var validTransitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPending:   {model.OrderStatusConfirmed, model.OrderStatusCancelled},
	model.OrderStatusConfirmed: {model.OrderStatusPreparing, model.OrderStatusCancelled},
	model.OrderStatusPreparing: {model.OrderStatusShipping, model.OrderStatusDelivered},
	model.OrderStatusShipping:  {model.OrderStatusDelivered},
}

func canTransition(from, to model.OrderStatus) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func (s *orderService) UpdateStatus(orderID uint, status model.OrderStatus) (*model.Order, error) {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if !canTransition(order.Status, status) {
		logger.Warn("Rejected order status transition", map[string]interface{}{
			"order_id": orderID,
			"from":     order.Status,
			"to":       status,
		})
		return nil, ErrInvalidStatusChange
	}

	order.Status = status
	if status == model.OrderStatusDelivered {
		now := time.Now()
		order.DeliveredAt = &now
	}

	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	logger.Info("Order status updated", map[string]interface{}{
		"order_id":     orderID,
		"order_number": order.OrderNumber,
		"status":       status,
	})
	if s.notifier != nil {
		s.notifier.NotifyOrderUpdated(order)
	}
	return order, nil
}

// CancelOrder lets a customer cancel their own order while it is still
// pending or confirmed. Stock taken at checkout is returned.
func (s *orderService) CancelOrder(userID, orderID uint) (*model.Order, error) {
	order, err := s.GetOrderForUser(userID, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != model.OrderStatusPending && order.Status != model.OrderStatusConfirmed {
		return nil, ErrOrderNotCancellable
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range order.OrderItems {
			if err := restoreStock(tx, item); err != nil {
				return err
			}
		}
		order.Status = model.OrderStatusCancelled
		return tx.Save(order).Error
	})
	if err != nil {
		logger.Error("Order cancellation failed", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, err
	}

	logger.Info("Order cancelled", map[string]interface{}{
		"order_id":     orderID,
		"order_number": order.OrderNumber,
	})
	for _, item := range order.OrderItems {
		invalidateStockSummary(item.ProductID)
	}
	if s.notifier != nil {
		s.notifier.NotifyOrderUpdated(order)
	}
	return order, nil
}

func restoreStock(tx *gorm.DB, item model.OrderItem) error {
	if item.VariantID != nil {
		return tx.Model(&model.Variant{}).Where("id = ?", *item.VariantID).
			Update("stock_quantity", gorm.Expr("stock_quantity + ?", item.Quantity)).Error
	}

	selected, err := catalog.ParseSnapshot(item.OptionSnapshot)
	if err != nil || selected.IsEmpty() {
		return tx.Model(&model.Product{}).Where("id = ?", item.ProductID).
			Update("stock_quantity", gorm.Expr("stock_quantity + ?", item.Quantity)).Error
	}

	for _, ids := range selected {
		for _, optID := range ids {
			if err := tx.Model(&model.Option{}).Where("id = ?", optID).
				Update("stock_quantity", gorm.Expr("stock_quantity + ?", item.Quantity)).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *orderService) AssignDriver(orderID, driverID uint) (*model.Order, error) {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	if order.FulfillmentType != model.FulfillmentDelivery {
		return nil, ErrDriverNotAssignable
	}

	driver, err := s.driverRepo.FindByID(driverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDriverNotFound
		}
		return nil, err
	}
	if !driver.IsActive {
		return nil, ErrDriverInactive
	}

	order.DriverID = &driverID
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}

	logger.Info("Driver assigned to order", map[string]interface{}{
		"order_id":     orderID,
		"order_number": order.OrderNumber,
		"driver_id":    driverID,
		"driver_name":  driver.Name,
	})
	if s.notifier != nil {
		s.notifier.NotifyOrderUpdated(order)
	}
	return order, nil
}

func (s *orderService) MarkPaid(orderID uint) (*model.Order, error) {
	order, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	order.PaymentStatus = model.PaymentStatusCompleted
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	logger.Info("Order marked paid", map[string]interface{}{
		"order_id":       orderID,
		"payment_method": order.PaymentMethod,
	})
	return order, nil
}

func (s *orderService) Dashboard() (map[model.OrderStatus]int64, error) {
	return s.orderRepo.CountByStatus()
}
