package model

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ProductCategory string

const (
	CategoryFood    ProductCategory = "food"
	CategoryDrink   ProductCategory = "drink"
	CategoryApparel ProductCategory = "apparel"
	CategoryGift    ProductCategory = "gift"
	CategoryOther   ProductCategory = "other"
)

type Product struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	Name          string          `gorm:"not null" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	Price         float64         `gorm:"not null" json:"price"` // base price; acts as the implicit BASE when no option overrides it
	Category      ProductCategory `gorm:"type:varchar(50)" json:"category"`
	StockQuantity int             `gorm:"default:0" json:"stock_quantity"` // flat stock for products without options
	ImageURL      string          `json:"image_url"`
	Images        pq.StringArray  `gorm:"type:text" json:"images"`
	IsPublished   bool            `gorm:"default:true" json:"is_published"`
	ViewCount     int             `gorm:"default:0" json:"view_count"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	OptionGroups []OptionGroup `gorm:"foreignKey:ProductID" json:"option_groups,omitempty"`
	Variants     []Variant     `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
	OrderItems   []OrderItem   `gorm:"foreignKey:ProductID" json:"-"`
	CartItems    []CartItem    `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// HasOptions reports whether the product is configurable.
func (p *Product) HasOptions() bool {
	return len(p.OptionGroups) > 0
}
