package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/HovVathana/shoppink-backend/internal/app/model"
	"github.com/HovVathana/shoppink-backend/internal/app/service"
	apperrors "github.com/HovVathana/shoppink-backend/internal/errors"
	"github.com/HovVathana/shoppink-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

func respondOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
	case errors.Is(err, service.ErrOrderForbidden):
		apperrors.Forbidden(c, "This order belongs to another user")
	case errors.Is(err, service.ErrEmptyCart):
		apperrors.UnprocessableEntity(c, apperrors.CartEmpty, "Your cart is empty")
	case errors.Is(err, service.ErrMissingShippingAddress):
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Shipping address is required for delivery")
	case errors.Is(err, service.ErrInsufficientStock):
		apperrors.UnprocessableEntity(c, apperrors.StockInsufficient, "An item in your cart is no longer in stock")
	case errors.Is(err, service.ErrRequiredGroupEmpty):
		apperrors.UnprocessableEntity(c, apperrors.CartRequiredGroupEmpty, "An item in your cart is missing a required option")
	case errors.Is(err, service.ErrProductNotFound), errors.Is(err, service.ErrProductNotPublished):
		apperrors.UnprocessableEntity(c, apperrors.CatalogProductNotFound, "An item in your cart is no longer available")
	case errors.Is(err, service.ErrInvalidStatusChange):
		apperrors.UnprocessableEntity(c, apperrors.OrderInvalidTransition, "Order status cannot change that way")
	case errors.Is(err, service.ErrOrderNotCancellable):
		apperrors.UnprocessableEntity(c, apperrors.OrderNotCancellable, "Order can no longer be cancelled")
	case errors.Is(err, service.ErrDriverNotFound):
		apperrors.NotFound(c, apperrors.DriverNotFound, "Driver not found")
	case errors.Is(err, service.ErrDriverInactive):
		apperrors.UnprocessableEntity(c, apperrors.DriverInactive, "Driver is not active")
	case errors.Is(err, service.ErrDriverNotAssignable):
		apperrors.UnprocessableEntity(c, apperrors.OrderInvalidStatus, "Drivers are only assigned to delivery orders")
	default:
		apperrors.InternalError(c, "Order operation failed")
	}
}

// Checkout handles POST /api/v1/orders
func (ctrl *OrderController) Checkout(c *gin.Context) {
	var input service.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid checkout payload")
		return
	}

	order, err := ctrl.orderService.Checkout(middleware.CurrentUserID(c), input)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// GetMyOrders handles GET /api/v1/orders
func (ctrl *OrderController) GetMyOrders(c *gin.Context) {
	orders, err := ctrl.orderService.GetUserOrders(middleware.CurrentUserID(c))
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// GetMyOrder handles GET /api/v1/orders/:id
func (ctrl *OrderController) GetMyOrder(c *gin.Context) {
	orderID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	order, err := ctrl.orderService.GetOrderForUser(middleware.CurrentUserID(c), orderID)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// CancelMyOrder handles POST /api/v1/orders/:id/cancel
func (ctrl *OrderController) CancelMyOrder(c *gin.Context) {
	orderID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	order, err := ctrl.orderService.CancelOrder(middleware.CurrentUserID(c), orderID)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// ListOrders handles GET /api/v1/admin/orders
func (ctrl *OrderController) ListOrders(c *gin.Context) {
	opts := service.OrderListOptions{}
	if status := c.Query("status"); status != "" {
		s := model.OrderStatus(status)
		opts.Status = &s
	}
	if driver := c.Query("driver_id"); driver != "" {
		if id, err := strconv.ParseUint(driver, 10, 64); err == nil {
			driverID := uint(id)
			opts.DriverID = &driverID
		}
	}
	if from := c.Query("from"); from != "" {
		if ts, err := time.Parse(time.RFC3339, from); err == nil {
			opts.From = &ts
		}
	}
	if to := c.Query("to"); to != "" {
		if ts, err := time.Parse(time.RFC3339, to); err == nil {
			opts.To = &ts
		}
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		opts.Limit = limit
	}
	if offset, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil {
		opts.Offset = offset
	}

	orders, err := ctrl.orderService.ListOrders(opts)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

// GetOrder handles GET /api/v1/admin/orders/:id
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	orderID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	order, err := ctrl.orderService.GetOrder(orderID)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// UpdateStatus handles PATCH /api/v1/admin/orders/:id/status
func (ctrl *OrderController) UpdateStatus(c *gin.Context) {
	orderID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		Status model.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Status is required")
		return
	}

	order, err := ctrl.orderService.UpdateStatus(orderID, input.Status)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// AssignDriver handles PATCH /api/v1/admin/orders/:id/driver
func (ctrl *OrderController) AssignDriver(c *gin.Context) {
	orderID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		DriverID uint `json:"driver_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Driver id is required")
		return
	}

	order, err := ctrl.orderService.AssignDriver(orderID, input.DriverID)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// MarkPaid handles PATCH /api/v1/admin/orders/:id/paid
func (ctrl *OrderController) MarkPaid(c *gin.Context) {
	orderID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	order, err := ctrl.orderService.MarkPaid(orderID)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// Dashboard handles GET /api/v1/admin/orders/dashboard
func (ctrl *OrderController) Dashboard(c *gin.Context) {
	counts, err := ctrl.orderService.Dashboard()
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status_counts": counts})
}
