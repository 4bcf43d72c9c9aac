package controller

import (
	"errors"
	"net/http"

	"github.com/HovVathana/shoppink-backend/internal/app/service"
	apperrors "github.com/HovVathana/shoppink-backend/internal/errors"
	"github.com/HovVathana/shoppink-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CartController struct {
	cartService service.CartService
}

func NewCartController(cartService service.CartService) *CartController {
	return &CartController{cartService: cartService}
}

func respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
	case errors.Is(err, service.ErrProductNotPublished):
		apperrors.UnprocessableEntity(c, apperrors.CatalogProductNotFound, "Product is not available")
	case errors.Is(err, service.ErrRequiredGroupEmpty):
		apperrors.UnprocessableEntity(c, apperrors.CartRequiredGroupEmpty, "Select an option in every required group first")
	case errors.Is(err, service.ErrSingleGroupConflict):
		apperrors.UnprocessableEntity(c, apperrors.CartSingleGroupConflict, "Only one option may be selected in this group")
	case errors.Is(err, service.ErrInsufficientStock):
		apperrors.UnprocessableEntity(c, apperrors.StockInsufficient, "Not enough stock for this selection")
	case errors.Is(err, service.ErrInvalidQuantity):
		apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Quantity must be positive")
	case errors.Is(err, service.ErrSelectionNotResolved):
		apperrors.UnprocessableEntity(c, apperrors.CatalogInvalidSelection, "Selection could not be priced")
	case errors.Is(err, service.ErrCartItemNotFound):
		apperrors.NotFound(c, apperrors.CartItemNotFound, "Cart item not found")
	case errors.Is(err, service.ErrCartItemForbidden):
		apperrors.Forbidden(c, "This cart item belongs to another user")
	default:
		apperrors.InternalError(c, "Cart operation failed")
	}
}

// GetCart handles GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	summary, err := ctrl.cartService.GetCart(middleware.CurrentUserID(c))
	if err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// AddToCart handles POST /api/v1/cart/items
func (ctrl *CartController) AddToCart(c *gin.Context) {
	var input service.AddToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid cart payload")
		return
	}

	item, err := ctrl.cartService.AddToCart(middleware.CurrentUserID(c), input)
	if err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// UpdateQuantity handles PUT /api/v1/cart/items/:itemId
func (ctrl *CartController) UpdateQuantity(c *gin.Context) {
	itemID, ok := parseUintParam(c, "itemId")
	if !ok {
		return
	}

	var input struct {
		Quantity int `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Quantity must be at least 1")
		return
	}

	item, err := ctrl.cartService.UpdateQuantity(middleware.CurrentUserID(c), itemID, input.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// RemoveItem handles DELETE /api/v1/cart/items/:itemId
func (ctrl *CartController) RemoveItem(c *gin.Context) {
	itemID, ok := parseUintParam(c, "itemId")
	if !ok {
		return
	}

	if err := ctrl.cartService.RemoveItem(middleware.CurrentUserID(c), itemID); err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed"})
}

// ClearCart handles DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	if err := ctrl.cartService.ClearCart(middleware.CurrentUserID(c)); err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
