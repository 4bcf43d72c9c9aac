package model

import (
	"time"

	"gorm.io/gorm"
)

type SelectionType string

const (
	SelectionSingle   SelectionType = "single"   // at most one option selected
	SelectionMultiple SelectionType = "multiple" // zero or more options selected
)

// PriceType is the closed set of option pricing rules. Adding a rule means
// touching every switch over this type.
type PriceType string

const (
	PriceTypeBase       PriceType = "base"       // sets the running price
	PriceTypeFixed      PriceType = "fixed"      // flat amount added to the running price
	PriceTypePercentage PriceType = "percentage" // percent of the running price at time of application
	PriceTypeFree       PriceType = "free"       // contributes nothing
)

// OptionGroup is one axis of product configuration (e.g. Size). Parent groups
// allocate stock top-down to child groups joined by ParentGroupID; the child
// list is derived at load time, never stored.
type OptionGroup struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	ProductID     uint           `gorm:"index;not null" json:"product_id"`
	Name          string         `gorm:"not null" json:"name"`
	Description   string         `json:"description,omitempty"`
	SelectionType SelectionType  `gorm:"type:varchar(20);default:'single'" json:"selection_type"`
	IsRequired    bool           `gorm:"default:false" json:"is_required"`
	IsParent      bool           `gorm:"default:false" json:"is_parent"`
	ParentGroupID *uint          `gorm:"index" json:"parent_group_id,omitempty"`
	StockQuantity int            `gorm:"default:0" json:"stock_quantity"` // meaningful for standalone and child groups only
	SortOrder     int            `gorm:"default:0" json:"sort_order"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Product Product  `gorm:"foreignKey:ProductID" json:"-"`
	Options []Option `gorm:"foreignKey:GroupID" json:"options,omitempty"`

	// ChildGroups is derived by BuildGroupTree, not persisted.
	ChildGroups []OptionGroup `gorm:"-" json:"child_groups,omitempty"`
}

func (OptionGroup) TableName() string {
	return "option_groups"
}

type Option struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	GroupID       uint           `gorm:"index;not null" json:"group_id"`
	Name          string         `gorm:"not null" json:"name"`
	Description   string         `json:"description,omitempty"`
	PriceType     PriceType      `gorm:"type:varchar(20);default:'free'" json:"price_type"`
	PriceValue    float64        `gorm:"default:0" json:"price_value"` // ignored for free
	IsDefault     bool           `gorm:"default:false" json:"is_default"`
	IsAvailable   bool           `gorm:"default:true" json:"is_available"`
	StockQuantity int            `gorm:"default:0" json:"stock_quantity"`
	SortOrder     int            `gorm:"default:0" json:"sort_order"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Group OptionGroup `gorm:"foreignKey:GroupID" json:"-"`
}

func (Option) TableName() string {
	return "options"
}
