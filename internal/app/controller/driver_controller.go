package controller

import (
	"errors"
	"net/http"

	"github.com/HovVathana/shoppink-backend/internal/app/model"
	"github.com/HovVathana/shoppink-backend/internal/app/service"
	apperrors "github.com/HovVathana/shoppink-backend/internal/errors"
	"github.com/gin-gonic/gin"
)

type DriverController struct {
	driverService service.DriverService
}

func NewDriverController(driverService service.DriverService) *DriverController {
	return &DriverController{driverService: driverService}
}

// ListDrivers handles GET /api/v1/admin/drivers
func (ctrl *DriverController) ListDrivers(c *gin.Context) {
	drivers, err := ctrl.driverService.ListDrivers(c.Query("active") == "true")
	if err != nil {
		apperrors.InternalError(c, "Failed to list drivers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"drivers": drivers})
}

// CreateDriver handles POST /api/v1/admin/drivers
func (ctrl *DriverController) CreateDriver(c *gin.Context) {
	var driver model.Driver
	if err := c.ShouldBindJSON(&driver); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid driver payload")
		return
	}

	if err := ctrl.driverService.CreateDriver(&driver); err != nil {
		apperrors.InternalError(c, "Failed to create driver")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"driver": driver})
}

// UpdateDriver handles PUT /api/v1/admin/drivers/:driverId
func (ctrl *DriverController) UpdateDriver(c *gin.Context) {
	driverID, ok := parseUintParam(c, "driverId")
	if !ok {
		return
	}

	var driver model.Driver
	if err := c.ShouldBindJSON(&driver); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid driver payload")
		return
	}
	driver.ID = driverID

	if err := ctrl.driverService.UpdateDriver(&driver); err != nil {
		if errors.Is(err, service.ErrDriverNotFound) {
			apperrors.NotFound(c, apperrors.DriverNotFound, "Driver not found")
			return
		}
		apperrors.InternalError(c, "Failed to update driver")
		return
	}
	c.JSON(http.StatusOK, gin.H{"driver": driver})
}

// DeleteDriver handles DELETE /api/v1/admin/drivers/:driverId
func (ctrl *DriverController) DeleteDriver(c *gin.Context) {
	driverID, ok := parseUintParam(c, "driverId")
	if !ok {
		return
	}

	if err := ctrl.driverService.DeleteDriver(driverID); err != nil {
		if errors.Is(err, service.ErrDriverNotFound) {
			apperrors.NotFound(c, apperrors.DriverNotFound, "Driver not found")
			return
		}
		apperrors.InternalError(c, "Failed to delete driver")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Driver deleted"})
}
