package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/HovVathana/shoppink-backend/internal/app/catalog"
	"github.com/HovVathana/shoppink-backend/internal/app/model"
	"github.com/HovVathana/shoppink-backend/internal/app/service"
	apperrors "github.com/HovVathana/shoppink-backend/internal/errors"
	"github.com/gin-gonic/gin"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid "+name)
		return 0, false
	}
	return uint(value), true
}

// ListProducts handles GET /api/v1/products
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	opts := service.ProductListOptions{
		Search:        c.Query("search"),
		Sort:          service.ProductSort(c.DefaultQuery("sort", "created_at")),
		SortAscending: c.Query("order") == "asc",
		PublishedOnly: true,
	}
	if category := c.Query("category"); category != "" {
		cat := model.ProductCategory(category)
		opts.Category = &cat
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		opts.Limit = limit
	}
	if offset, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil {
		opts.Offset = offset
	}

	products, err := ctrl.productService.ListProducts(opts)
	if err != nil {
		apperrors.InternalError(c, "Failed to list products")
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

// GetProduct handles GET /api/v1/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	detail, err := ctrl.productService.GetProductDetail(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
			return
		}
		apperrors.InternalError(c, "Failed to load product")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// QuoteSelection handles POST /api/v1/products/:id/quote
func (ctrl *ProductController) QuoteSelection(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		Selected catalog.Selection `json:"selected"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid selection payload")
		return
	}

	quote, err := ctrl.productService.QuoteSelection(id, input.Selected)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
			return
		}
		apperrors.InternalError(c, "Failed to price selection")
		return
	}
	c.JSON(http.StatusOK, quote)
}

// GetOptionAvailability handles GET /api/v1/products/:id/groups/:groupId/options/:optionId/availability
// The current selection rides in as a query parameter, e.g. ?selected=1:3,2:5
func (ctrl *ProductController) GetOptionAvailability(c *gin.Context) {
	productID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	groupID, ok := parseUintParam(c, "groupId")
	if !ok {
		return
	}
	optionID, ok := parseUintParam(c, "optionId")
	if !ok {
		return
	}

	selected, err := catalog.ParseQuerySelection(c.Query("selected"))
	if err != nil {
		apperrors.BadRequest(c, apperrors.CatalogInvalidSelection, "Invalid selection parameter")
		return
	}

	stock, err := ctrl.productService.GetOptionAvailability(productID, groupID, optionID, selected)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
		case errors.Is(err, service.ErrOptionNotFound):
			apperrors.NotFound(c, apperrors.CatalogOptionNotFound, "Option not found")
		default:
			apperrors.InternalError(c, "Failed to compute availability")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"option_id": optionID, "available_stock": stock})
}

// GetStockSummary handles GET /api/v1/products/:id/stock-summary
func (ctrl *ProductController) GetStockSummary(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	summary, err := ctrl.productService.GetStockSummary(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
			return
		}
		apperrors.InternalError(c, "Failed to load stock summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// CreateProduct handles POST /api/v1/admin/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	var product model.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product payload")
		return
	}

	if err := ctrl.productService.CreateProduct(&product); err != nil {
		apperrors.InternalError(c, "Failed to create product")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// UpdateProduct handles PUT /api/v1/admin/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var product model.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product payload")
		return
	}
	product.ID = id

	if err := ctrl.productService.UpdateProduct(&product); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
			return
		}
		apperrors.InternalError(c, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// DeleteProduct handles DELETE /api/v1/admin/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.productService.DeleteProduct(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
			return
		}
		apperrors.InternalError(c, "Failed to delete product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
