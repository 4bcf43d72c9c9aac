package model

import (
	"time"

	"gorm.io/gorm"
)

type CartItem struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	ProductID      uint           `gorm:"not null;index" json:"product_id"`
	VariantID      *uint          `gorm:"index" json:"variant_id,omitempty"` // set when the selection resolved to an exact variant
	Quantity       int            `gorm:"not null;default:1" json:"quantity"`
	UnitPrice      float64        `gorm:"not null" json:"unit_price"`       // effective price at the time the item was added
	OptionSnapshot string         `gorm:"type:text" json:"option_snapshot"` // JSON of the selected option ids per group
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	User    User     `gorm:"foreignKey:UserID" json:"-"`
	Product Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Variant *Variant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
