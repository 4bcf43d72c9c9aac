package controller

import (
	"errors"
	"net/http"

	"github.com/HovVathana/shoppink-backend/internal/app/model"
	"github.com/HovVathana/shoppink-backend/internal/app/service"
	apperrors "github.com/HovVathana/shoppink-backend/internal/errors"
	"github.com/HovVathana/shoppink-backend/internal/scheduler"
	"github.com/gin-gonic/gin"
)

// CatalogController serves the dashboard's option group, option and variant
// management endpoints.
type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(catalogService service.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

func respondCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.CatalogProductNotFound, "Product not found")
	case errors.Is(err, service.ErrGroupNotFound):
		apperrors.NotFound(c, apperrors.CatalogGroupNotFound, "Option group not found")
	case errors.Is(err, service.ErrOptionNotFound):
		apperrors.NotFound(c, apperrors.CatalogOptionNotFound, "Option not found")
	case errors.Is(err, service.ErrVariantNotFound):
		apperrors.NotFound(c, apperrors.CatalogVariantNotFound, "Variant not found")
	case errors.Is(err, service.ErrGroupHasChildren):
		apperrors.Conflict(c, apperrors.CatalogGroupHasChildren, "Delete or re-parent the child groups first")
	case errors.Is(err, service.ErrOptionInUse):
		apperrors.Conflict(c, apperrors.CatalogOptionInUse, "Option is referenced by variants")
	case errors.Is(err, service.ErrDuplicateVariant):
		apperrors.Conflict(c, apperrors.CatalogDuplicateVariant, "A variant with this option combination already exists")
	case errors.Is(err, service.ErrInvalidParentGroup):
		apperrors.UnprocessableEntity(c, apperrors.ValidationInvalidInput, "Parent group belongs to a different product")
	case errors.Is(err, service.ErrInvalidOptionRef):
		apperrors.UnprocessableEntity(c, apperrors.CatalogInvalidSelection, "Variant references an unknown option")
	case errors.Is(err, service.ErrInsufficientStock):
		apperrors.UnprocessableEntity(c, apperrors.StockInsufficient, "Stock cannot go negative")
	default:
		apperrors.InternalError(c, "Catalog operation failed")
	}
}

// GetGroupTree handles GET /api/v1/admin/products/:id/groups
func (ctrl *CatalogController) GetGroupTree(c *gin.Context) {
	productID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	tree, err := ctrl.catalogService.GetGroupTree(productID)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": tree})
}

// CreateGroup handles POST /api/v1/admin/products/:id/groups
func (ctrl *CatalogController) CreateGroup(c *gin.Context) {
	productID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var group model.OptionGroup
	if err := c.ShouldBindJSON(&group); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid option group payload")
		return
	}
	group.ProductID = productID

	if err := ctrl.catalogService.CreateGroup(&group); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"group": group})
}

// UpdateGroup handles PUT /api/v1/admin/groups/:groupId
func (ctrl *CatalogController) UpdateGroup(c *gin.Context) {
	groupID, ok := parseUintParam(c, "groupId")
	if !ok {
		return
	}

	var group model.OptionGroup
	if err := c.ShouldBindJSON(&group); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid option group payload")
		return
	}
	group.ID = groupID

	if err := ctrl.catalogService.UpdateGroup(&group); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"group": group})
}

// DeleteGroup handles DELETE /api/v1/admin/groups/:groupId
func (ctrl *CatalogController) DeleteGroup(c *gin.Context) {
	groupID, ok := parseUintParam(c, "groupId")
	if !ok {
		return
	}

	if err := ctrl.catalogService.DeleteGroup(groupID); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Option group deleted"})
}

// CreateOption handles POST /api/v1/admin/groups/:groupId/options
func (ctrl *CatalogController) CreateOption(c *gin.Context) {
	groupID, ok := parseUintParam(c, "groupId")
	if !ok {
		return
	}

	var option model.Option
	if err := c.ShouldBindJSON(&option); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid option payload")
		return
	}
	option.GroupID = groupID

	if err := ctrl.catalogService.CreateOption(&option); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"option": option})
}

// UpdateOption handles PUT /api/v1/admin/options/:optionId
func (ctrl *CatalogController) UpdateOption(c *gin.Context) {
	optionID, ok := parseUintParam(c, "optionId")
	if !ok {
		return
	}

	var option model.Option
	if err := c.ShouldBindJSON(&option); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid option payload")
		return
	}
	option.ID = optionID

	if err := ctrl.catalogService.UpdateOption(&option); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"option": option})
}

// DeleteOption handles DELETE /api/v1/admin/options/:optionId
func (ctrl *CatalogController) DeleteOption(c *gin.Context) {
	optionID, ok := parseUintParam(c, "optionId")
	if !ok {
		return
	}

	if err := ctrl.catalogService.DeleteOption(optionID); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Option deleted"})
}

// AdjustOptionStock handles PATCH /api/v1/admin/options/:optionId/stock
func (ctrl *CatalogController) AdjustOptionStock(c *gin.Context) {
	optionID, ok := parseUintParam(c, "optionId")
	if !ok {
		return
	}

	var input struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "A non-zero delta is required")
		return
	}

	if err := ctrl.catalogService.AdjustOptionStock(optionID, input.Delta); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Stock adjusted"})
}

// ListVariants handles GET /api/v1/admin/products/:id/variants
func (ctrl *CatalogController) ListVariants(c *gin.Context) {
	productID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	variants, err := ctrl.catalogService.GetVariantsByProduct(productID)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"variants": variants})
}

// CreateVariant handles POST /api/v1/admin/products/:id/variants
func (ctrl *CatalogController) CreateVariant(c *gin.Context) {
	productID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var variant model.Variant
	if err := c.ShouldBindJSON(&variant); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid variant payload")
		return
	}
	variant.ProductID = productID

	if err := ctrl.catalogService.CreateVariant(&variant); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"variant": variant})
}

// UpdateVariant handles PUT /api/v1/admin/variants/:variantId
func (ctrl *CatalogController) UpdateVariant(c *gin.Context) {
	variantID, ok := parseUintParam(c, "variantId")
	if !ok {
		return
	}

	var variant model.Variant
	if err := c.ShouldBindJSON(&variant); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid variant payload")
		return
	}
	variant.ID = variantID

	if err := ctrl.catalogService.UpdateVariant(&variant); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"variant": variant})
}

// DeleteVariant handles DELETE /api/v1/admin/variants/:variantId
func (ctrl *CatalogController) DeleteVariant(c *gin.Context) {
	variantID, ok := parseUintParam(c, "variantId")
	if !ok {
		return
	}

	if err := ctrl.catalogService.DeleteVariant(variantID); err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Variant deleted"})
}

// AuditAllocations handles GET /api/v1/admin/products/:id/allocations
func (ctrl *CatalogController) AuditAllocations(c *gin.Context) {
	productID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	violations, err := ctrl.catalogService.AuditAllocations(productID)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"product_id": productID,
		"violations": violations,
		"clean":      len(violations) == 0,
	})
}

// GetAllocationReport handles GET /api/v1/admin/allocations/report and serves
// the latest catalog-wide sweep cached by the nightly auditor.
func (ctrl *CatalogController) GetAllocationReport(c *gin.Context) {
	report, err := scheduler.LatestReport(c.Request.Context())
	if err != nil {
		apperrors.InternalError(c, "Failed to load allocation report")
		return
	}
	if report == nil {
		apperrors.NotFound(c, apperrors.ResourceNotFound, "No allocation report has been generated yet")
		return
	}
	c.JSON(http.StatusOK, report)
}
