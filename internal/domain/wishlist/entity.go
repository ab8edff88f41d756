// internal/domain/wishlist/entity.go
package wishlist

import (
	"time"

	"gorm.io/gorm"
)

// WishlistItem represents a saved product. One row per (user, product);
// size and color are chosen later when the item moves to the cart.
type WishlistItem struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;index:idx_wishlist_entry,unique" json:"user_id"`
	ProductID  uint           `gorm:"not null;index:idx_wishlist_entry,unique" json:"product_id"`
	PriceAtAdd int64          `gorm:"not null" json:"price_at_add"` // For price drop detection
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (WishlistItem) TableName() string {
	return "wishlist_items"
}
