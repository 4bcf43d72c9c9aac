package service

import (
	"errors"

	"github.com/HovVathana/shoppink-backend/internal/app/model"
	"github.com/HovVathana/shoppink-backend/internal/app/repository"
	"github.com/HovVathana/shoppink-backend/pkg/logger"
	"gorm.io/gorm"
)

type DriverService interface {
	ListDrivers(activeOnly bool) ([]model.Driver, error)
	GetDriver(id uint) (*model.Driver, error)
	CreateDriver(driver *model.Driver) error
	UpdateDriver(driver *model.Driver) error
	DeleteDriver(id uint) error
}

type driverService struct {
	driverRepo repository.DriverRepository
}

func NewDriverService(driverRepo repository.DriverRepository) DriverService {
	return &driverService{driverRepo: driverRepo}
}

func (s *driverService) ListDrivers(activeOnly bool) ([]model.Driver, error) {
	if activeOnly {
		return s.driverRepo.FindActive()
	}
	return s.driverRepo.FindAll()
}

func (s *driverService) GetDriver(id uint) (*model.Driver, error) {
	driver, err := s.driverRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDriverNotFound
		}
		return nil, err
	}
	return driver, nil
}

func (s *driverService) CreateDriver(driver *model.Driver) error {
	driver.IsActive = true
	if err := s.driverRepo.Create(driver); err != nil {
		return err
	}
	logger.Info("Driver created", map[string]interface{}{
		"driver_id": driver.ID,
		"name":      driver.Name,
	})
	return nil
}

func (s *driverService) UpdateDriver(driver *model.Driver) error {
	if _, err := s.GetDriver(driver.ID); err != nil {
		return err
	}
	return s.driverRepo.Update(driver)
}

func (s *driverService) DeleteDriver(id uint) error {
	if _, err := s.GetDriver(id); err != nil {
		return err
	}
	if err := s.driverRepo.Delete(id); err != nil {
		return err
	}
	logger.Info("Driver deleted", map[string]interface{}{
		"driver_id": id,
	})
	return nil
}
