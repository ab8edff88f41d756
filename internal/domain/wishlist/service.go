// internal/domain/wishlist/service.go
package wishlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/gearup-sports/storefront-backend/internal/config"
	"github.com/gearup-sports/storefront-backend/internal/domain/cart"
	"github.com/gearup-sports/storefront-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// Service handles wishlist business logic
type Service struct {
	db          *gorm.DB
	config      *config.Config
	cartService *cart.Service
}

// NewService creates a new wishlist service
func NewService(db *gorm.DB, cfg *config.Config, cartService *cart.Service) *Service {
	return &Service{
		db:          db,
		config:      cfg,
		cartService: cartService,
	}
}

// WishlistItemResponse represents a wishlist item with current product
// state: availability and whether the price moved since it was saved.
type WishlistItemResponse struct {
	ID           uint             `json:"id"`
	ProductID    uint             `json:"product_id"`
	Product      *catalog.Product `json:"product,omitempty"`
	IsAvailable  bool             `json:"is_available"`
	PriceAtAdd   int64            `json:"price_at_add"`
	CurrentPrice int64            `json:"current_price"`
	PriceChanged bool             `json:"price_changed"`
}

// WishlistResponse represents a user's wishlist
type WishlistResponse struct {
	Items []WishlistItemResponse `json:"items"`
	Count int                    `json:"count"`
}

// MoveToCartRequest selects the variant when moving a saved product to
// the cart
type MoveToCartRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// GetWishlist retrieves the user's wishlist with current product state
func (s *Service) GetWishlist(userID uint) (*WishlistResponse, error) {
	var items []WishlistItem
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve wishlist: %w", err)
	}

	response := &WishlistResponse{
		Items: make([]WishlistItemResponse, 0, len(items)),
		Count: len(items),
	}

	for _, item := range items {
		entry := WishlistItemResponse{
			ID:         item.ID,
			ProductID:  item.ProductID,
			PriceAtAdd: item.PriceAtAdd,
		}

		var prod catalog.Product
		if err := s.db.Where("id = ? AND is_active = ?", item.ProductID, true).First(&prod).Error; err == nil {
			entry.Product = &prod
			entry.IsAvailable = prod.IsInStock()
			entry.CurrentPrice = prod.Price
			entry.PriceChanged = prod.Price != item.PriceAtAdd
		}

		response.Items = append(response.Items, entry)
	}

	return response, nil
}

// AddToWishlist saves a product. Adding an already saved product is a
// no-op.
func (s *Service) AddToWishlist(userID, productID uint) error {
	var prod catalog.Product
	if err := s.db.Where("id = ? AND is_active = ?", productID, true).First(&prod).Error; err != nil {
		return fmt.Errorf("product not found or inactive")
	}

	var existing WishlistItem
	err := s.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check wishlist: %w", err)
	}

	item := WishlistItem{
		UserID:     userID,
		ProductID:  productID,
		PriceAtAdd: prod.Price,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return fmt.Errorf("failed to add to wishlist: %w", err)
	}
	return nil
}

// RemoveFromWishlist removes a saved product. Removing an absent product
// is a no-op.
func (s *Service) RemoveFromWishlist(userID, productID uint) error {
	err := s.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&WishlistItem{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove from wishlist: %w", err)
	}
	return nil
}

// IsInWishlist reports whether the product is saved
func (s *Service) IsInWishlist(userID, productID uint) (bool, error) {
	var count int64
	err := s.db.Model(&WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check wishlist: %w", err)
	}
	return count > 0, nil
}

// MoveToCart adds a saved product to the cart with the chosen variant
// and removes it from the wishlist
func (s *Service) MoveToCart(ctx context.Context, userID uint, req *MoveToCartRequest) error {
	var item WishlistItem
	err := s.db.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product not in wishlist")
		}
		return fmt.Errorf("failed to retrieve wishlist item: %w", err)
	}

	_, err = s.cartService.AddToCart(ctx, &userID, "", &cart.AddToCartRequest{
		ProductID: req.ProductID,
		Size:      req.Size,
		Color:     req.Color,
		Quantity:  1,
	})
	if err != nil {
		return err
	}

	return s.RemoveFromWishlist(userID, req.ProductID)
}
