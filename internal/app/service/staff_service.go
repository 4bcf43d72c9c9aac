package service

import (
	"errors"

	"github.com/HovVathana/shoppink-backend/internal/app/model"
	"github.com/HovVathana/shoppink-backend/internal/app/repository"
	"github.com/HovVathana/shoppink-backend/pkg/logger"
	"github.com/HovVathana/shoppink-backend/pkg/util"
	"gorm.io/gorm"
)

var ErrCannotModifyAdmin = errors.New("admin accounts cannot be modified here")

type CreateStaffInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
}

// StaffService manages operator accounts; admin only.
type StaffService interface {
	ListStaff() ([]model.User, error)
	CreateStaff(input CreateStaffInput) (*model.User, error)
	SetActive(userID uint, active bool) (*model.User, error)
	RemoveStaff(userID uint) error
}

type staffService struct {
	userRepo repository.UserRepository
}

func NewStaffService(userRepo repository.UserRepository) StaffService {
	return &staffService{userRepo: userRepo}
}

func (s *staffService) ListStaff() ([]model.User, error) {
	return s.userRepo.FindByRoles(model.RoleStaff, model.RoleAdmin)
}

func (s *staffService) CreateStaff(input CreateStaffInput) (*model.User, error) {
	if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := util.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        input.Email,
		PasswordHash: hash,
		Name:         input.Name,
		Phone:        input.Phone,
		Role:         model.RoleStaff,
		IsActive:     true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Info("Staff account created", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return user, nil
}

func (s *staffService) SetActive(userID uint, active bool) (*model.User, error) {
	user, err := s.staffUser(userID)
	if err != nil {
		return nil, err
	}

	user.IsActive = active
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	logger.Info("Staff account state changed", map[string]interface{}{
		"user_id": userID,
		"active":  active,
	})
	return user, nil
}

func (s *staffService) RemoveStaff(userID uint) error {
	if _, err := s.staffUser(userID); err != nil {
		return err
	}
	return s.userRepo.Delete(userID)
}

func (s *staffService) staffUser(userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.Role == model.RoleAdmin {
		return nil, ErrCannotModifyAdmin
	}
	if user.Role != model.RoleStaff {
		return nil, ErrUserNotFound
	}
	return user, nil
}
