package controller

import (
	"errors"
	"net/http"

	"github.com/HovVathana/shoppink-backend/internal/app/service"
	apperrors "github.com/HovVathana/shoppink-backend/internal/errors"
	"github.com/gin-gonic/gin"
)

type StaffController struct {
	staffService service.StaffService
}

func NewStaffController(staffService service.StaffService) *StaffController {
	return &StaffController{staffService: staffService}
}

func respondStaffError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		apperrors.NotFound(c, apperrors.ResourceNotFound, "Staff member not found")
	case errors.Is(err, service.ErrEmailAlreadyExists):
		apperrors.Conflict(c, apperrors.AuthEmailAlreadyExists, "Email is already registered")
	case errors.Is(err, service.ErrCannotModifyAdmin):
		apperrors.Forbidden(c, "Admin accounts cannot be modified here")
	default:
		apperrors.InternalError(c, "Staff operation failed")
	}
}

// ListStaff handles GET /api/v1/admin/staff
func (ctrl *StaffController) ListStaff(c *gin.Context) {
	staff, err := ctrl.staffService.ListStaff()
	if err != nil {
		respondStaffError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": staff})
}

// CreateStaff handles POST /api/v1/admin/staff
func (ctrl *StaffController) CreateStaff(c *gin.Context) {
	var input service.CreateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid staff payload")
		return
	}

	user, err := ctrl.staffService.CreateStaff(input)
	if err != nil {
		respondStaffError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// SetActive handles PATCH /api/v1/admin/staff/:staffId/active
func (ctrl *StaffController) SetActive(c *gin.Context) {
	staffID, ok := parseUintParam(c, "staffId")
	if !ok {
		return
	}

	var input struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Active flag is required")
		return
	}

	user, err := ctrl.staffService.SetActive(staffID, *input.Active)
	if err != nil {
		respondStaffError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// RemoveStaff handles DELETE /api/v1/admin/staff/:staffId
func (ctrl *StaffController) RemoveStaff(c *gin.Context) {
	staffID, ok := parseUintParam(c, "staffId")
	if !ok {
		return
	}

	if err := ctrl.staffService.RemoveStaff(staffID); err != nil {
		respondStaffError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Staff member removed"})
}
