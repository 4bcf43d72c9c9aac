package repository

import (
	"github.com/HovVathana/shoppink-backend/internal/app/model"
	"github.com/HovVathana/shoppink-backend/pkg/logger"
	"gorm.io/gorm"
)

type OptionGroupRepository interface {
	CreateGroup(group *model.OptionGroup) error
	FindGroupByID(id uint) (*model.OptionGroup, error)
	FindGroupsByProductID(productID uint) ([]model.OptionGroup, error)
	UpdateGroup(group *model.OptionGroup) error
	DeleteGroup(id uint) error
	CountChildGroups(groupID uint) (int64, error)

	CreateOption(option *model.Option) error
	FindOptionByID(id uint) (*model.Option, error)
	UpdateOption(option *model.Option) error
	DeleteOption(id uint) error
	UpdateOptionStock(id uint, delta int) error
	ClearDefaultOptions(groupID uint) error
	CountVariantReferences(optionID uint) (int64, error)
}

type optionGroupRepository struct {
	db *gorm.DB
}

func NewOptionGroupRepository(db *gorm.DB) OptionGroupRepository {
	return &optionGroupRepository{db: db}
}

func (r *optionGroupRepository) CreateGroup(group *model.OptionGroup) error {
	if err := r.db.Create(group).Error; err != nil {
		logger.Error("Failed to create option group", err, map[string]interface{}{
			"product_id": group.ProductID,
			"name":       group.Name,
		})
		return err
	}
	logger.Debug("Option group created", map[string]interface{}{
		"group_id": group.ID,
	})
	return nil
}

func (r *optionGroupRepository) FindGroupByID(id uint) (*model.OptionGroup, error) {
	var group model.OptionGroup
	err := r.db.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("options.sort_order ASC")
		}).
		First(&group, id).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// FindGroupsByProductID returns the product's flat group list with ordered
// options; callers wanting the hierarchy build the tree from it.
func (r *optionGroupRepository) FindGroupsByProductID(productID uint) ([]model.OptionGroup, error) {
	var groups []model.OptionGroup
	err := r.db.
		Where("product_id = ?", productID).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("options.sort_order ASC")
		}).
		Order("sort_order ASC").
		Find(&groups).Error
	if err != nil {
		logger.Error("Failed to find option groups", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return groups, nil
}

func (r *optionGroupRepository) UpdateGroup(group *model.OptionGroup) error {
	if err := r.db.Save(group).Error; err != nil {
		logger.Error("Failed to update option group", err, map[string]interface{}{
			"group_id": group.ID,
		})
		return err
	}
	return nil
}

func (r *optionGroupRepository) DeleteGroup(id uint) error {
	if err := r.db.Delete(&model.OptionGroup{}, id).Error; err != nil {
		logger.Error("Failed to delete option group", err, map[string]interface{}{
			"group_id": id,
		})
		return err
	}
	return nil
}

func (r *optionGroupRepository) CountChildGroups(groupID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.OptionGroup{}).
		Where("parent_group_id = ?", groupID).
		Count(&count).Error
	return count, err
}

func (r *optionGroupRepository) CreateOption(option *model.Option) error {
	if err := r.db.Create(option).Error; err != nil {
		logger.Error("Failed to create option", err, map[string]interface{}{
			"group_id": option.GroupID,
			"name":     option.Name,
		})
		return err
	}
	return nil
}

func (r *optionGroupRepository) FindOptionByID(id uint) (*model.Option, error) {
	var option model.Option
	if err := r.db.First(&option, id).Error; err != nil {
		return nil, err
	}
	return &option, nil
}

func (r *optionGroupRepository) UpdateOption(option *model.Option) error {
	if err := r.db.Save(option).Error; err != nil {
		logger.Error("Failed to update option", err, map[string]interface{}{
			"option_id": option.ID,
		})
		return err
	}
	return nil
}

func (r *optionGroupRepository) DeleteOption(id uint) error {
	if err := r.db.Delete(&model.Option{}, id).Error; err != nil {
		logger.Error("Failed to delete option", err, map[string]interface{}{
			"option_id": id,
		})
		return err
	}
	return nil
}

func (r *optionGroupRepository) UpdateOptionStock(id uint, delta int) error {
	if err := r.db.Model(&model.Option{}).Where("id = ?", id).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", delta)).Error; err != nil {
		logger.Error("Failed to update option stock", err, map[string]interface{}{
			"option_id": id,
			"delta":     delta,
		})
		return err
	}
	return nil
}

// ClearDefaultOptions unsets is_default on every option in the group.
func (r *optionGroupRepository) ClearDefaultOptions(groupID uint) error {
	if err := r.db.Model(&model.Option{}).
		Where("group_id = ? AND is_default = ?", groupID, true).
		Update("is_default", false).Error; err != nil {
		logger.Error("Failed to clear default options", err, map[string]interface{}{
			"group_id": groupID,
		})
		return err
	}
	return nil
}

// CountVariantReferences counts live variant links to an option; deleting an
// option with references is rejected at the service layer.
func (r *optionGroupRepository) CountVariantReferences(optionID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.VariantOption{}).
		Where("option_id = ?", optionID).
		Count(&count).Error
	return count, err
}
