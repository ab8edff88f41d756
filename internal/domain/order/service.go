// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gearup-sports/storefront-backend/internal/config"
	"github.com/gearup-sports/storefront-backend/internal/domain/cart"
	"github.com/gearup-sports/storefront-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

var (
	// ErrEmptyCart is returned when order creation is attempted with no cart items
	ErrEmptyCart = errors.New("cannot create order from an empty cart")

	// ErrOrderNotFound is returned when an order does not exist or does not
	// belong to the requesting user
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidTransition is returned for a disallowed status change
	ErrInvalidTransition = errors.New("invalid order status transition")

	// ErrNotCancellable is returned when cancelling a shipped or terminal order
	ErrNotCancellable = errors.New("order can no longer be cancelled")
)

// Service handles order business logic
type Service struct {
	db          *gorm.DB
	config      *config.Config
	cartService *cart.Service
	sequencer   NumberSequencer
	pricing     PricingRules
	now         func() time.Time
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config, cartService *cart.Service, sequencer NumberSequencer) *Service {
	return &Service{
		db:          db,
		config:      cfg,
		cartService: cartService,
		sequencer:   sequencer,
		pricing: PricingRules{
			FreeShippingThreshold: cfg.Pricing.FreeShippingThreshold,
			FlatShippingFee:       cfg.Pricing.FlatShippingFee,
			TaxRateBps:            cfg.Pricing.TaxRateBps,
		},
		now: time.Now,
	}
}

// CreateOrderRequest represents order creation data
type CreateOrderRequest struct {
	ShippingAddress Address `json:"shipping_address" binding:"required"`
	PaymentMethod   string  `json:"payment_method" binding:"required"`
}

// OrderListRequest represents order list query parameters
type OrderListRequest struct {
	Page      int         `form:"page,default=1"`
	Limit     int         `form:"limit,default=20"`
	Status    OrderStatus `form:"status"`
	SortOrder string      `form:"sort_order,default=desc"`
}

// OrderListResponse represents a paginated order list
type OrderListResponse struct {
	Orders     []Order            `json:"orders"`
	Pagination catalog.Pagination `json:"pagination"`
}

// UpdateStatusRequest represents an admin status update
type UpdateStatusRequest struct {
	Status            OrderStatus `json:"status" binding:"required"`
	TrackingNumber    string      `json:"tracking_number,omitempty"`
	EstimatedDelivery *time.Time  `json:"estimated_delivery,omitempty"`
}

// PricingRules exposes the rules the service prices with, for checkout
// previews
func (s *Service) PricingRules() PricingRules {
	return s.pricing
}

// CreateOrder creates an order from the user's cart. The order rows, the
// item snapshots and the cart clear all commit in one transaction, so a
// failure at any point leaves the cart untouched.
func (s *Service) CreateOrder(ctx context.Context, userID uint, req *CreateOrderRequest) (*Order, error) {
	cartResponse, err := s.cartService.GetCart(ctx, &userID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}
	if len(cartResponse.Items) == 0 {
		return nil, ErrEmptyCart
	}

	if err := s.validateInventory(cartResponse.Items); err != nil {
		return nil, err
	}

	createdAt := s.now().UTC()
	seq, err := s.sequencer.Next(ctx, createdAt.Year())
	if err != nil {
		return nil, err
	}

	quote := s.pricing.Quote(cartResponse.Totals.Subtotal)
	estimatedDelivery := createdAt.AddDate(0, 0, 5)

	order := Order{
		OrderNumber:       FormatOrderNumber(createdAt.Year(), seq),
		UserID:            userID,
		Status:            OrderStatusPending,
		PaymentStatus:     PaymentStatusPending,
		PaymentMethod:     req.PaymentMethod,
		Subtotal:          quote.Subtotal,
		Shipping:          quote.Shipping,
		Tax:               quote.Tax,
		Total:             quote.Total,
		ShippingAddress:   req.ShippingAddress,
		EstimatedDelivery: &estimatedDelivery,
	}

	for _, line := range cartResponse.Items {
		order.Items = append(order.Items, OrderItem{
			ProductID: line.ProductID,
			Size:      line.Size,
			Color:     line.Color,
			Name:      line.Name,
			Brand:     line.Brand,
			Image:     line.Image,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Total:     line.Price * int64(line.Quantity),
		})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		if err := s.decrementInventory(tx, order.Items); err != nil {
			return err
		}

		return s.cartService.ClearUserCartTx(tx, userID)
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// GetOrders retrieves the user's orders, newest first
func (s *Service) GetOrders(userID uint, req *OrderListRequest) (*OrderListResponse, error) {
	var orders []Order
	var total int64

	query := s.db.Model(&Order{}).Where("user_id = ?", userID)
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	sortOrder := "DESC"
	if req.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	offset := (req.Page - 1) * req.Limit
	err := query.Preload("Items").
		Order("created_at " + sortOrder).
		Offset(offset).Limit(req.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &OrderListResponse{
		Orders: orders,
		Pagination: catalog.Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    req.Page < totalPages,
			HasPrev:    req.Page > 1,
		},
	}, nil
}

// GetOrder retrieves one of the user's orders by ID
func (s *Service) GetOrder(userID, orderID uint) (*Order, error) {
	var order Order
	result := s.db.Preload("Items").Preload("Payments").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}

	return &order, nil
}

// GetOrderByNumber retrieves one of the user's orders by order number
func (s *Service) GetOrderByNumber(userID uint, orderNumber string) (*Order, error) {
	var order Order
	result := s.db.Preload("Items").Preload("Payments").
		Where("order_number = ? AND user_id = ?", orderNumber, userID).
		First(&order)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}

	return &order, nil
}

// UpdateOrderStatus moves an order through its lifecycle (admin). The
// delivered and cancelled timestamps are stamped on entry to those
// statuses.
func (s *Service) UpdateOrderStatus(orderID uint, req *UpdateStatusRequest) (*Order, error) {
	var order Order
	if err := s.db.Preload("Items").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}

	if !ValidTransition(order.Status, req.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, req.Status)
	}

	updates := map[string]interface{}{"status": req.Status}
	if req.TrackingNumber != "" {
		updates["tracking_number"] = req.TrackingNumber
	}
	if req.EstimatedDelivery != nil {
		updates["estimated_delivery"] = req.EstimatedDelivery
	}

	now := s.now().UTC()
	switch req.Status {
	case OrderStatusDelivered:
		updates["delivered_at"] = now
	case OrderStatusCancelled:
		updates["cancelled_at"] = now
	}

	if err := s.db.Model(&order).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	return &order, nil
}

// CancelOrder cancels one of the user's own orders while it is still
// cancellable
func (s *Service) CancelOrder(userID, orderID uint) (*Order, error) {
	order, err := s.GetOrder(userID, orderID)
	if err != nil {
		return nil, err
	}

	if !order.CanBeCancelled() {
		return nil, fmt.Errorf("%w: status is %s", ErrNotCancellable, order.Status)
	}

	now := s.now().UTC()
	updates := map[string]interface{}{
		"status":       OrderStatusCancelled,
		"cancelled_at": now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(order).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to cancel order: %w", err)
		}
		return s.restoreInventory(tx, order.Items)
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// RecordPayment appends a payment attempt and, on success, confirms the
// order
func (s *Service) RecordPayment(orderID uint, payment *Payment) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var order Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		payment.OrderID = orderID
		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("failed to record payment: %w", err)
		}

		updates := map[string]interface{}{}
		switch payment.Status {
		case PaymentStatusPaid:
			updates["payment_status"] = PaymentStatusPaid
			if ValidTransition(order.Status, OrderStatusConfirmed) {
				updates["status"] = OrderStatusConfirmed
			}
		case PaymentStatusFailed:
			updates["payment_status"] = PaymentStatusFailed
		}

		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&order).Updates(updates).Error
	})
}

// Private helper methods

func (s *Service) validateInventory(lines cart.Lines) error {
	for _, line := range lines {
		var prod catalog.Product
		if err := s.db.Where("id = ? AND is_active = ?", line.ProductID, true).First(&prod).Error; err != nil {
			return fmt.Errorf("product %q is no longer available", line.Name)
		}
		if prod.TrackQuantity && prod.Quantity < line.Quantity {
			return fmt.Errorf("insufficient inventory for %q. Available: %d", prod.Name, prod.Quantity)
		}
	}
	return nil
}

func (s *Service) decrementInventory(tx *gorm.DB, items []OrderItem) error {
	for _, item := range items {
		result := tx.Model(&catalog.Product{}).
			Where("id = ? AND track_quantity = ? AND quantity >= ?", item.ProductID, true, item.Quantity).
			Update("quantity", gorm.Expr("quantity - ?", item.Quantity))
		if result.Error != nil {
			return fmt.Errorf("failed to reserve inventory: %w", result.Error)
		}

		var prod catalog.Product
		if err := tx.Select("track_quantity").First(&prod, item.ProductID).Error; err != nil {
			return fmt.Errorf("failed to verify inventory: %w", err)
		}
		if prod.TrackQuantity && result.RowsAffected == 0 {
			return fmt.Errorf("insufficient inventory for %q", item.Name)
		}
	}
	return nil
}

func (s *Service) restoreInventory(tx *gorm.DB, items []OrderItem) error {
	for _, item := range items {
		err := tx.Model(&catalog.Product{}).
			Where("id = ? AND track_quantity = ?", item.ProductID, true).
			Update("quantity", gorm.Expr("quantity + ?", item.Quantity)).Error
		if err != nil {
			return fmt.Errorf("failed to restore inventory: %w", err)
		}
	}
	return nil
}
