package repository

import (
	"github.com/HovVathana/shoppink-backend/internal/app/model"
	"github.com/HovVathana/shoppink-backend/pkg/logger"
	"gorm.io/gorm"
)

type DriverRepository interface {
	Create(driver *model.Driver) error
	FindByID(id uint) (*model.Driver, error)
	FindAll() ([]model.Driver, error)
	FindActive() ([]model.Driver, error)
	Update(driver *model.Driver) error
	Delete(id uint) error
}

type driverRepository struct {
	db *gorm.DB
}

func NewDriverRepository(db *gorm.DB) DriverRepository {
	return &driverRepository{db: db}
}

func (r *driverRepository) Create(driver *model.Driver) error {
	if err := r.db.Create(driver).Error; err != nil {
		logger.Error("Failed to create driver", err, map[string]interface{}{
			"name": driver.Name,
		})
		return err
	}
	return nil
}

func (r *driverRepository) FindByID(id uint) (*model.Driver, error) {
	var driver model.Driver
	if err := r.db.First(&driver, id).Error; err != nil {
		return nil, err
	}
	return &driver, nil
}

func (r *driverRepository) FindAll() ([]model.Driver, error) {
	var drivers []model.Driver
	if err := r.db.Order("name ASC").Find(&drivers).Error; err != nil {
		logger.Error("Failed to list drivers", err, nil)
		return nil, err
	}
	return drivers, nil
}

func (r *driverRepository) FindActive() ([]model.Driver, error) {
	var drivers []model.Driver
	if err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&drivers).Error; err != nil {
		logger.Error("Failed to list active drivers", err, nil)
		return nil, err
	}
	return drivers, nil
}

func (r *driverRepository) Update(driver *model.Driver) error {
	if err := r.db.Save(driver).Error; err != nil {
		logger.Error("Failed to update driver", err, map[string]interface{}{
			"driver_id": driver.ID,
		})
		return err
	}
	return nil
}

func (r *driverRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Driver{}, id).Error; err != nil {
		logger.Error("Failed to delete driver", err, map[string]interface{}{
			"driver_id": id,
		})
		return err
	}
	return nil
}
