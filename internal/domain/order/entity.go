// internal/domain/order/entity.go
package order

import (
	"time"

	"gorm.io/gorm"
)

// OrderStatus represents the order lifecycle status
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// PaymentStatus represents payment status
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// validStatusTransitions defines the allowed lifecycle moves. Cancellation
// is allowed from any non-terminal status; delivered and cancelled are
// terminal.
var validStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// ValidTransition reports whether an order may move from one status to
// another
func ValidTransition(from, to OrderStatus) bool {
	for _, allowed := range validStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions
func (s OrderStatus) IsTerminal() bool {
	return len(validStatusTransitions[s]) == 0
}

// Address represents a shipping address
type Address struct {
	FirstName  string `gorm:"size:100" json:"first_name" binding:"required"`
	LastName   string `gorm:"size:100" json:"last_name" binding:"required"`
	Email      string `gorm:"size:255" json:"email" binding:"required,email"`
	Phone      string `gorm:"size:20" json:"phone" binding:"required"`
	Street     string `gorm:"size:255" json:"street" binding:"required"`
	City       string `gorm:"size:100" json:"city" binding:"required"`
	State      string `gorm:"size:100" json:"state" binding:"required"`
	PostalCode string `gorm:"size:20" json:"postal_code" binding:"required"`
	Country    string `gorm:"size:100;default:'India'" json:"country"`
}

// Order represents a placed order. All amounts are in paise and are
// frozen at creation time; later catalog changes never affect them.
type Order struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	OrderNumber   string        `gorm:"uniqueIndex;not null;size:50" json:"order_number"`
	UserID        uint          `gorm:"not null;index" json:"user_id"`
	Status        OrderStatus   `gorm:"not null;default:'pending'" json:"status"`
	PaymentStatus PaymentStatus `gorm:"not null;default:'pending'" json:"payment_status"`
	PaymentMethod string        `gorm:"size:50" json:"payment_method"`

	Subtotal int64 `gorm:"not null" json:"subtotal"`
	Shipping int64 `gorm:"not null" json:"shipping"`
	Tax      int64 `gorm:"not null" json:"tax"`
	Total    int64 `gorm:"not null" json:"total"`

	ShippingAddress Address `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`

	TrackingNumber    string     `gorm:"size:100" json:"tracking_number,omitempty"`
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`
	DeliveredAt       *time.Time `json:"delivered_at,omitempty"`
	CancelledAt       *time.Time `json:"cancelled_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items    []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
	Payments []Payment   `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"payments,omitempty"`
}

// OrderItem is a frozen copy of a cart line at order time
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Size      string    `gorm:"size:50" json:"size,omitempty"`
	Color     string    `gorm:"size:50" json:"color,omitempty"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Brand     string    `gorm:"size:100" json:"brand"`
	Image     string    `gorm:"size:500" json:"image"`
	Price     int64     `gorm:"not null" json:"price"` // Unit price in paise
	Quantity  int       `gorm:"not null" json:"quantity"`
	Total     int64     `gorm:"not null" json:"total"` // Price * Quantity
	CreatedAt time.Time `json:"created_at"`
}

// Payment represents a payment attempt against an order
type Payment struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	OrderID       uint          `gorm:"not null;index" json:"order_id"`
	Method        string        `gorm:"not null;size:50" json:"method"` // gpay, phonepe, razorpay, cod
	TransactionID string        `gorm:"size:100" json:"transaction_id"`
	ProviderRef   string        `gorm:"size:255" json:"provider_ref,omitempty"`
	Amount        int64         `gorm:"not null" json:"amount"`
	Status        PaymentStatus `gorm:"not null" json:"status"`
	FailureReason string        `gorm:"size:255" json:"failure_reason,omitempty"`
	ProcessedAt   *time.Time    `json:"processed_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }
func (Payment) TableName() string   { return "payments" }

// CanBeCancelled reports whether the order may still be cancelled
func (o *Order) CanBeCancelled() bool {
	return ValidTransition(o.Status, OrderStatusCancelled)
}

// ItemCount returns the total quantity across all order items
func (o *Order) ItemCount() int {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}
	return count
}
