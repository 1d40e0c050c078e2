package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Slug          string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description   string         `gorm:"type:text" json:"description"`
	Price         float64        `gorm:"not null" json:"price"`     // whole rupees
	OriginalPrice *float64       `json:"original_price,omitempty"`  // pre-discount price, if discounted
	Discount      int            `gorm:"default:0" json:"discount"` // percentage off, 0 when not on sale
	CategoryID    uint           `gorm:"not null;index" json:"category_id"`
	ImageURL      string         `json:"image_url"`
	Images        []string       `gorm:"serializer:json" json:"images"`
	Sizes         []string       `gorm:"serializer:json" json:"sizes"`
	Colors        []string       `gorm:"serializer:json" json:"colors"`
	Inventory     int            `gorm:"default:0" json:"inventory"`
	Rating        float64        `gorm:"default:0" json:"rating"`
	ReviewCount   int            `gorm:"default:0" json:"review_count"`
	Featured      bool           `gorm:"default:false;index" json:"featured"`
	Trending      bool           `gorm:"default:false;index" json:"trending"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category      Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CartItems     []CartItem     `gorm:"foreignKey:ProductID" json:"-"`
	WishlistItems []WishlistItem `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}
