package repository

import (
	"github.com/HovVathana/shoppink-backend/internal/app/model"
	"github.com/HovVathana/shoppink-backend/pkg/logger"
	"gorm.io/gorm"
)

type VariantRepository interface {
	Create(variant *model.Variant) error
	FindByID(id uint) (*model.Variant, error)
	FindByProductID(productID uint) ([]model.Variant, error)
	Update(variant *model.Variant) error
	Delete(id uint) error
	UpdateStock(id uint, delta int) error
}

type variantRepository struct {
	db *gorm.DB
}

func NewVariantRepository(db *gorm.DB) VariantRepository {
	return &variantRepository{db: db}
}

func (r *variantRepository) Create(variant *model.Variant) error {
	if err := r.db.Create(variant).Error; err != nil {
		logger.Error("Failed to create variant", err, map[string]interface{}{
			"product_id": variant.ProductID,
			"name":       variant.Name,
		})
		return err
	}
	logger.Debug("Variant created", map[string]interface{}{
		"variant_id": variant.ID,
		"options":    len(variant.Options),
	})
	return nil
}

func (r *variantRepository) FindByID(id uint) (*model.Variant, error) {
	var variant model.Variant
	if err := r.db.Preload("Options").First(&variant, id).Error; err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *variantRepository) FindByProductID(productID uint) ([]model.Variant, error) {
	var variants []model.Variant
	err := r.db.
		Where("product_id = ?", productID).
		Preload("Options").
		Order("id ASC").
		Find(&variants).Error
	if err != nil {
		logger.Error("Failed to find variants", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}
	return variants, nil
}

func (r *variantRepository) Update(variant *model.Variant) error {
	if err := r.db.Save(variant).Error; err != nil {
		logger.Error("Failed to update variant", err, map[string]interface{}{
			"variant_id": variant.ID,
		})
		return err
	}
	return nil
}

func (r *variantRepository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("variant_id = ?", id).Delete(&model.VariantOption{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Variant{}, id).Error
	})
	if err != nil {
		logger.Error("Failed to delete variant", err, map[string]interface{}{
			"variant_id": id,
		})
	}
	return err
}

func (r *variantRepository) UpdateStock(id uint, delta int) error {
	if err := r.db.Model(&model.Variant{}).Where("id = ?", id).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", delta)).Error; err != nil {
		logger.Error("Failed to update variant stock", err, map[string]interface{}{
			"variant_id": id,
			"delta":      delta,
		})
		return err
	}
	return nil
}
