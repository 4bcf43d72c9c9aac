package model

import (
	"time"

	"gorm.io/gorm"
)

// Variant is a stock-tracked combination of one option per relevant group.
// No two variants of a product may carry an identical option-id set.
type Variant struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	ProductID       uint           `gorm:"index;not null" json:"product_id"`
	Name            string         `json:"name,omitempty"`
	StockQuantity   int            `gorm:"default:0" json:"stock_quantity"` // authoritative count for this exact combination
	PriceAdjustment float64        `gorm:"default:0" json:"price_adjustment"`
	IsActive        bool           `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Product Product         `gorm:"foreignKey:ProductID" json:"-"`
	Options []VariantOption `gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
}

func (Variant) TableName() string {
	return "variants"
}

// OptionIDs returns the variant's option-id set in stored order.
func (v *Variant) OptionIDs() []uint {
	ids := make([]uint, 0, len(v.Options))
	for _, vo := range v.Options {
		if vo.OptionID != 0 {
			ids = append(ids, vo.OptionID)
		}
	}
	return ids
}

type VariantOption struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	VariantID uint           `gorm:"index;not null" json:"variant_id"`
	OptionID  uint           `gorm:"index;not null" json:"option_id"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Variant Variant `gorm:"foreignKey:VariantID" json:"-"`
	Option  Option  `gorm:"foreignKey:OptionID" json:"-"`
}

func (VariantOption) TableName() string {
	return "variant_options"
}
