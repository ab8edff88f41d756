// internal/domain/catalog/entity.go
package catalog

import (
	"strings"
	"time"

	"github.com/gearup-sports/storefront-backend/internal/pkg/currency"
	"gorm.io/gorm"
)

// Product represents a sports-equipment product
type Product struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	SKU           string         `gorm:"uniqueIndex;not null;size:100" json:"sku"`
	Name          string         `gorm:"not null;size:255" json:"name"`
	Slug          string         `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Description   string         `gorm:"type:text" json:"description"`
	Price         int64          `gorm:"not null" json:"price"` // Price in paise
	ComparePrice  int64          `json:"compare_price"`         // Original price for discounts
	CategoryID    uint           `gorm:"not null;index" json:"category_id"`
	Brand         string         `gorm:"size:100;index" json:"brand"`
	Sport         string         `gorm:"size:100;index" json:"sport"`
	Image         string         `gorm:"size:500" json:"image"`
	Features      string         `gorm:"type:text" json:"features"` // Newline-separated bullet points
	Sizes         string         `gorm:"size:255" json:"sizes"`     // Comma-separated size options
	Colors        string         `gorm:"size:255" json:"colors"`    // Comma-separated color options
	Rating        float64        `gorm:"default:0" json:"rating"`
	ReviewCount   int            `gorm:"default:0" json:"review_count"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	IsFeatured    bool           `gorm:"default:false" json:"is_featured"`
	TrackQuantity bool           `gorm:"default:true" json:"track_quantity"`
	Quantity      int            `gorm:"default:0" json:"quantity"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Computed on read, not stored
	DisplayPrice    string `gorm:"-" json:"display_price"`
	DiscountPercent int    `gorm:"-" json:"discount_percent"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`
}

// Category represents a sport category
type Category struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null;size:255" json:"name"`
	Slug        string         `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Sport       string         `gorm:"size:100" json:"sport"`
	Description string         `gorm:"size:500" json:"description"`
	Image       string         `gorm:"size:500" json:"image"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

// TableName overrides
func (Product) TableName() string  { return "products" }
func (Category) TableName() string { return "categories" }

// IsInStock reports whether the product can be added to a cart
func (p *Product) IsInStock() bool {
	return p.Quantity > 0 || !p.TrackQuantity
}

// Decorate fills the computed presentation fields
func (p *Product) Decorate() {
	p.DisplayPrice = currency.FormatINRWhole(p.Price)
	p.DiscountPercent = currency.DiscountPercent(p.ComparePrice, p.Price)
}

// SizeOptions returns the product's size options
func (p *Product) SizeOptions() []string {
	return splitOptions(p.Sizes)
}

// ColorOptions returns the product's color options
func (p *Product) ColorOptions() []string {
	return splitOptions(p.Colors)
}

// HasSize reports whether size is a valid option; the empty size is
// valid only for products without size options
func (p *Product) HasSize(size string) bool {
	return hasOption(p.SizeOptions(), size)
}

// HasColor reports whether color is a valid option
func (p *Product) HasColor(color string) bool {
	return hasOption(p.ColorOptions(), color)
}

func splitOptions(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	options := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			options = append(options, trimmed)
		}
	}
	return options
}

func hasOption(options []string, value string) bool {
	if value == "" {
		return len(options) == 0
	}
	for _, option := range options {
		if strings.EqualFold(option, value) {
			return true
		}
	}
	return false
}
