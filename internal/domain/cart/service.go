// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gearup-sports/storefront-backend/internal/config"
	"github.com/gearup-sports/storefront-backend/internal/domain/catalog"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const guestCartTTL = 24 * time.Hour

// Service handles cart business logic. Authenticated carts live in the
// database, guest carts live in Redis keyed by session ID.
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
}

// NewService creates a new cart service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
	}
}

// CartResponse represents a shopping cart with items and totals
type CartResponse struct {
	SessionID string `json:"session_id,omitempty"`
	UserID    *uint  `json:"user_id,omitempty"`
	Items     Lines  `json:"items"`
	Totals    Totals `json:"totals"`
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartItemRequest represents update cart item request
type UpdateCartItemRequest struct {
	Size     string `json:"size"`
	Color    string `json:"color"`
	Quantity int    `json:"quantity" binding:"min=0"`
}

// GetCart retrieves the cart for a user or guest session
func (s *Service) GetCart(ctx context.Context, userID *uint, sessionID string) (*CartResponse, error) {
	lines, err := s.loadLines(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	return &CartResponse{
		SessionID: sessionID,
		UserID:    userID,
		Items:     lines,
		Totals:    lines.Totals(),
	}, nil
}

// AddToCart adds an item to the cart, merging with an existing line for
// the same (product, size, color). The unit price and display fields are
// snapshotted from the catalog at add time.
func (s *Service) AddToCart(ctx context.Context, userID *uint, sessionID string, req *AddToCartRequest) (*CartResponse, error) {
	var prod catalog.Product
	result := s.db.Where("id = ? AND is_active = ?", req.ProductID, true).First(&prod)
	if result.Error != nil {
		return nil, fmt.Errorf("product not found or inactive")
	}

	if !prod.HasSize(req.Size) {
		return nil, fmt.Errorf("invalid size %q for product %q", req.Size, prod.Name)
	}
	if !prod.HasColor(req.Color) {
		return nil, fmt.Errorf("invalid color %q for product %q", req.Color, prod.Name)
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	if prod.TrackQuantity && prod.Quantity < quantity {
		return nil, fmt.Errorf("insufficient inventory for %q. Available: %d", prod.Name, prod.Quantity)
	}

	item := LineItem{
		ProductID: prod.ID,
		Size:      req.Size,
		Color:     req.Color,
		Name:      prod.Name,
		Brand:     prod.Brand,
		Image:     prod.Image,
		Price:     prod.Price,
		Quantity:  quantity,
		AddedAt:   time.Now().UTC(),
	}

	if userID != nil {
		if err := s.addToUserCart(*userID, item, prod.Quantity, prod.TrackQuantity); err != nil {
			return nil, err
		}
	} else {
		if err := s.addToGuestCart(ctx, sessionID, item, prod.Quantity, prod.TrackQuantity); err != nil {
			return nil, err
		}
	}

	return s.GetCart(ctx, userID, sessionID)
}

// UpdateCartItem sets the quantity of a cart line. A quantity of zero
// removes the line. Matching is by the full (product, size, color) key.
func (s *Service) UpdateCartItem(ctx context.Context, userID *uint, sessionID string, key LineKey, quantity int) (*CartResponse, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("quantity cannot be negative")
	}

	if quantity > 0 {
		var prod catalog.Product
		if err := s.db.Where("id = ?", key.ProductID).First(&prod).Error; err == nil {
			if prod.TrackQuantity && prod.Quantity < quantity {
				return nil, fmt.Errorf("insufficient inventory for %q. Available: %d", prod.Name, prod.Quantity)
			}
		}
	}

	if userID != nil {
		if err := s.updateUserCartItem(*userID, key, quantity); err != nil {
			return nil, err
		}
	} else {
		if err := s.updateGuestCartItem(ctx, sessionID, key, quantity); err != nil {
			return nil, err
		}
	}

	return s.GetCart(ctx, userID, sessionID)
}

// RemoveFromCart removes a cart line. Removing an absent line leaves the
// cart unchanged.
func (s *Service) RemoveFromCart(ctx context.Context, userID *uint, sessionID string, key LineKey) (*CartResponse, error) {
	if userID != nil {
		err := s.db.Where("user_id = ? AND product_id = ? AND size = ? AND color = ?",
			*userID, key.ProductID, key.Size, key.Color).Delete(&CartItem{}).Error
		if err != nil {
			return nil, fmt.Errorf("failed to remove cart item: %w", err)
		}
	} else {
		sessionCart, err := s.getGuestCart(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		sessionCart.Items = sessionCart.Items.Remove(key)
		sessionCart.UpdatedAt = time.Now().UTC()
		if err := s.saveGuestCart(ctx, sessionID, sessionCart); err != nil {
			return nil, err
		}
	}

	return s.GetCart(ctx, userID, sessionID)
}

// ClearCart removes all items from the cart
func (s *Service) ClearCart(ctx context.Context, userID *uint, sessionID string) error {
	if userID != nil {
		return s.db.Where("user_id = ?", *userID).Delete(&CartItem{}).Error
	}
	return s.redisClient.Del(ctx, guestCartKey(sessionID)).Err()
}

// ClearUserCartTx removes a user's cart rows inside an existing
// transaction, so checkout can commit the order and the cart clear
// atomically.
func (s *Service) ClearUserCartTx(tx *gorm.DB, userID uint) error {
	return tx.Where("user_id = ?", userID).Delete(&CartItem{}).Error
}

// GetCartItemCount returns the total quantity across all lines
func (s *Service) GetCartItemCount(ctx context.Context, userID *uint, sessionID string) (int, error) {
	cartResponse, err := s.GetCart(ctx, userID, sessionID)
	if err != nil {
		return 0, nil // Treat a missing cart as empty
	}
	return cartResponse.Totals.ItemCount, nil
}

// MergeGuestCartToUser merges the guest cart into the user cart when a
// user logs in, then discards the guest cart.
func (s *Service) MergeGuestCartToUser(ctx context.Context, userID uint, sessionID string) error {
	guestCart, err := s.getGuestCart(ctx, sessionID)
	if err != nil || len(guestCart.Items) == 0 {
		return nil // Nothing to merge
	}

	for _, item := range guestCart.Items {
		if err := s.addToUserCart(userID, item, 0, false); err != nil {
			return fmt.Errorf("failed to merge guest cart: %w", err)
		}
	}

	return s.ClearCart(ctx, nil, sessionID)
}

// Private helper methods

func (s *Service) loadLines(ctx context.Context, userID *uint, sessionID string) (Lines, error) {
	if userID != nil {
		var dbItems []CartItem
		err := s.db.Where("user_id = ?", *userID).Order("created_at ASC").Find(&dbItems).Error
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve user cart: %w", err)
		}

		lines := make(Lines, len(dbItems))
		for i, item := range dbItems {
			lines[i] = item.Line()
		}
		return lines, nil
	}

	sessionCart, err := s.getGuestCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return sessionCart.Items, nil
}

func (s *Service) addToUserCart(userID uint, item LineItem, available int, trackQuantity bool) error {
	var existing CartItem
	result := s.db.Where("user_id = ? AND product_id = ? AND size = ? AND color = ?",
		userID, item.ProductID, item.Size, item.Color).First(&existing)

	if result.Error == gorm.ErrRecordNotFound {
		newItem := CartItem{
			UserID:    userID,
			ProductID: item.ProductID,
			Size:      item.Size,
			Color:     item.Color,
			Name:      item.Name,
			Brand:     item.Brand,
			Image:     item.Image,
			Price:     item.Price,
			Quantity:  item.Quantity,
		}
		return s.db.Create(&newItem).Error
	} else if result.Error != nil {
		return fmt.Errorf("failed to look up cart item: %w", result.Error)
	}

	newQuantity := existing.Quantity + item.Quantity
	if trackQuantity && available < newQuantity {
		return fmt.Errorf("insufficient inventory for total quantity. Available: %d", available)
	}

	existing.Quantity = newQuantity
	existing.Price = item.Price
	return s.db.Save(&existing).Error
}

func (s *Service) addToGuestCart(ctx context.Context, sessionID string, item LineItem, available int, trackQuantity bool) error {
	sessionCart, err := s.getGuestCart(ctx, sessionID)
	if err != nil {
		return err
	}

	if i := sessionCart.Items.indexOf(item.Key()); i >= 0 {
		newQuantity := sessionCart.Items[i].Quantity + item.Quantity
		if trackQuantity && available < newQuantity {
			return fmt.Errorf("insufficient inventory for total quantity. Available: %d", available)
		}
	}

	sessionCart.Items = sessionCart.Items.Add(item)
	sessionCart.UpdatedAt = time.Now().UTC()
	return s.saveGuestCart(ctx, sessionID, sessionCart)
}

func (s *Service) updateUserCartItem(userID uint, key LineKey, quantity int) error {
	query := s.db.Where("user_id = ? AND product_id = ? AND size = ? AND color = ?",
		userID, key.ProductID, key.Size, key.Color)

	if quantity == 0 {
		return query.Delete(&CartItem{}).Error
	}

	result := query.Model(&CartItem{}).Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("item not found in cart")
	}
	return nil
}

func (s *Service) updateGuestCartItem(ctx context.Context, sessionID string, key LineKey, quantity int) error {
	sessionCart, err := s.getGuestCart(ctx, sessionID)
	if err != nil {
		return err
	}

	items, found := sessionCart.Items.SetQuantity(key, quantity)
	if !found {
		return fmt.Errorf("item not found in cart")
	}

	sessionCart.Items = items
	sessionCart.UpdatedAt = time.Now().UTC()
	return s.saveGuestCart(ctx, sessionID, sessionCart)
}

func (s *Service) getGuestCart(ctx context.Context, sessionID string) (*SessionCart, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required for guest cart")
	}

	cartData, err := s.redisClient.Get(ctx, guestCartKey(sessionID)).Result()
	if err == redis.Nil {
		now := time.Now().UTC()
		return &SessionCart{
			SessionID: sessionID,
			Items:     Lines{},
			CreatedAt: now,
			UpdatedAt: now,
			ExpiresAt: now.Add(guestCartTTL),
		}, nil
	} else if err != nil {
		return nil, err
	}

	var sessionCart SessionCart
	if err := json.Unmarshal([]byte(cartData), &sessionCart); err != nil {
		return nil, err
	}

	return &sessionCart, nil
}

func (s *Service) saveGuestCart(ctx context.Context, sessionID string, sessionCart *SessionCart) error {
	cartData, err := json.Marshal(sessionCart)
	if err != nil {
		return err
	}

	return s.redisClient.Set(ctx, guestCartKey(sessionID), cartData, guestCartTTL).Err()
}

func guestCartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}
