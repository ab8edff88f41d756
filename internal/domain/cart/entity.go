// internal/domain/cart/entity.go
package cart

import (
	"time"

	"gorm.io/gorm"
)

// LineKey identifies a cart line. A product with size or color options
// produces one line per distinct (product, size, color) combination.
type LineKey struct {
	ProductID uint   `json:"product_id"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
}

// LineItem is one row of a cart. Name, brand and image are denormalized
// from the catalog at add time; Price is the unit price snapshot in paise.
type LineItem struct {
	ProductID uint      `json:"product_id"`
	Size      string    `json:"size,omitempty"`
	Color     string    `json:"color,omitempty"`
	Name      string    `json:"name"`
	Brand     string    `json:"brand"`
	Image     string    `json:"image"`
	Price     int64     `json:"price"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// Key returns the line's identity
func (li LineItem) Key() LineKey {
	return LineKey{ProductID: li.ProductID, Size: li.Size, Color: li.Color}
}

// Lines is an ordered collection of cart line items
type Lines []LineItem

// Totals holds the derived cart aggregates. They are always recomputed
// from the lines, never mutated independently.
type Totals struct {
	ItemCount int   `json:"item_count"` // Sum of all quantities
	LineCount int   `json:"line_count"` // Number of distinct lines
	Subtotal  int64 `json:"subtotal"`   // Sum of price * quantity in paise
}

func (l Lines) indexOf(key LineKey) int {
	for i := range l {
		if l[i].Key() == key {
			return i
		}
	}
	return -1
}

// Add merges the item into the lines: an existing line with the same
// (product, size, color) key has its quantity incremented, otherwise
// the item is appended.
func (l Lines) Add(item LineItem) Lines {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	if i := l.indexOf(item.Key()); i >= 0 {
		l[i].Quantity += item.Quantity
		l[i].Price = item.Price // Refresh snapshot in case the price changed
		return l
	}
	return append(l, item)
}

// SetQuantity sets the quantity of the line matching key. A quantity of
// zero or less removes the line. Returns false when no line matches.
func (l Lines) SetQuantity(key LineKey, quantity int) (Lines, bool) {
	i := l.indexOf(key)
	if i < 0 {
		return l, false
	}
	if quantity <= 0 {
		return append(l[:i], l[i+1:]...), true
	}
	l[i].Quantity = quantity
	return l, true
}

// Remove deletes the line matching key. Removing an absent line is a no-op.
func (l Lines) Remove(key LineKey) Lines {
	i := l.indexOf(key)
	if i < 0 {
		return l
	}
	return append(l[:i], l[i+1:]...)
}

// Totals recomputes the aggregates from scratch
func (l Lines) Totals() Totals {
	var totals Totals
	totals.LineCount = len(l)
	for i := range l {
		totals.ItemCount += l[i].Quantity
		totals.Subtotal += l[i].Price * int64(l[i].Quantity)
	}
	return totals
}

// CartItem is a cart line stored in the database for authenticated users
type CartItem struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index:idx_cart_line,unique" json:"user_id"`
	ProductID uint           `gorm:"not null;index:idx_cart_line,unique" json:"product_id"`
	Size      string         `gorm:"size:50;default:'';index:idx_cart_line,unique" json:"size"`
	Color     string         `gorm:"size:50;default:'';index:idx_cart_line,unique" json:"color"`
	Name      string         `gorm:"size:255" json:"name"`
	Brand     string         `gorm:"size:100" json:"brand"`
	Image     string         `gorm:"size:500" json:"image"`
	Price     int64          `gorm:"not null" json:"price"` // Unit price at time of adding
	Quantity  int            `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (CartItem) TableName() string {
	return "cart_items"
}

// Line converts a stored cart item to a line item
func (ci CartItem) Line() LineItem {
	return LineItem{
		ProductID: ci.ProductID,
		Size:      ci.Size,
		Color:     ci.Color,
		Name:      ci.Name,
		Brand:     ci.Brand,
		Image:     ci.Image,
		Price:     ci.Price,
		Quantity:  ci.Quantity,
		AddedAt:   ci.CreatedAt,
	}
}

// SessionCart is a guest cart stored as a JSON document in Redis
type SessionCart struct {
	SessionID string    `json:"session_id"`
	Items     Lines     `json:"items"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
