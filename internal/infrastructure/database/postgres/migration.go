// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/gearup-sports/storefront-backend/internal/domain/cart"
	"github.com/gearup-sports/storefront-backend/internal/domain/catalog"
	"github.com/gearup-sports/storefront-backend/internal/domain/order"
	"github.com/gearup-sports/storefront-backend/internal/domain/user"
	"github.com/gearup-sports/storefront-backend/internal/domain/wishlist"
	"github.com/gearup-sports/storefront-backend/internal/pkg/currency"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		&user.User{},

		&catalog.Category{},
		&catalog.Product{},

		&cart.CartItem{},

		&order.Order{},
		&order.OrderItem{},
		&order.Payment{},

		&wishlist.WishlistItem{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for common query paths
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_users_email_active ON users(email, is_active)",

		"CREATE INDEX IF NOT EXISTS idx_products_category_active ON products(category_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_featured ON products(is_featured, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_sport_active ON products(sport, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",

		"CREATE INDEX IF NOT EXISTS idx_cart_items_user ON cart_items(user_id, created_at)",

		"CREATE INDEX IF NOT EXISTS idx_orders_user_status ON orders(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_payment_status ON orders(payment_status)",

		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id)",

		"CREATE INDEX IF NOT EXISTS idx_payments_order_status ON payments(order_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_payments_transaction ON payments(transaction_id)",
	}

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
		}
	}

	log.Println("✅ Database indexes ensured")
	return nil
}

// SeedInitialData loads the development catalog. It is idempotent and
// only inserts when the tables are empty.
func (m *Migration) SeedInitialData() error {
	var categoryCount int64
	if err := m.db.Model(&catalog.Category{}).Count(&categoryCount).Error; err != nil {
		return fmt.Errorf("failed to check categories: %w", err)
	}
	if categoryCount > 0 {
		return nil
	}

	log.Println("🌱 Seeding development catalog...")

	categories := []catalog.Category{
		{Name: "Cricket", Slug: "cricket", Sport: "cricket", Description: "Bats, balls, pads and protective gear", IsActive: true},
		{Name: "Football", Slug: "football", Sport: "football", Description: "Balls, boots and training equipment", IsActive: true},
		{Name: "Badminton", Slug: "badminton", Sport: "badminton", Description: "Racquets, shuttles and shoes", IsActive: true},
		{Name: "Fitness", Slug: "fitness", Sport: "fitness", Description: "Weights, mats and accessories", IsActive: true},
	}
	if err := m.db.Create(&categories).Error; err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	bysport := map[string]uint{}
	for _, c := range categories {
		bysport[c.Sport] = c.ID
	}

	products := []catalog.Product{
		{
			SKU: "CRK-BAT-001", Name: "GM Diamond English Willow Bat", Slug: "gm-diamond-english-willow-bat",
			Description: "Grade 2 English willow with a mid-to-low sweet spot", Price: currency.FromRupees(12999), ComparePrice: currency.FromRupees(14999),
			CategoryID: bysport["cricket"], Brand: "GM", Sport: "cricket",
			Sizes: "SH,H,Harrow", Rating: 4.7, ReviewCount: 112,
			IsActive: true, IsFeatured: true, TrackQuantity: true, Quantity: 25,
		},
		{
			SKU: "CRK-BLL-002", Name: "SG Club Leather Ball", Slug: "sg-club-leather-ball",
			Description: "Four-piece leather ball for club matches", Price: currency.FromRupees(499),
			CategoryID: bysport["cricket"], Brand: "SG", Sport: "cricket",
			Rating: 4.4, ReviewCount: 310, IsActive: true, TrackQuantity: true, Quantity: 200,
		},
		{
			SKU: "FTB-BLL-001", Name: "Nivia Storm Football", Slug: "nivia-storm-football",
			Description: "Hand-stitched 32-panel ball for grass pitches", Price: currency.FromRupees(799), ComparePrice: currency.FromRupees(999),
			CategoryID: bysport["football"], Brand: "Nivia", Sport: "football",
			Sizes: "3,4,5", Rating: 4.3, ReviewCount: 540,
			IsActive: true, IsFeatured: true, TrackQuantity: true, Quantity: 80,
		},
		{
			SKU: "FTB-BOT-002", Name: "Vector X Fusion Boots", Slug: "vector-x-fusion-boots",
			Description: "Moulded studs for firm ground", Price: currency.FromRupees(1899),
			CategoryID: bysport["football"], Brand: "Vector X", Sport: "football",
			Sizes: "6,7,8,9,10,11", Colors: "Black,Blue,Red", Rating: 4.1, ReviewCount: 89,
			IsActive: true, TrackQuantity: true, Quantity: 60,
		},
		{
			SKU: "BDM-RKT-001", Name: "Yonex Nanoray Light 18i", Slug: "yonex-nanoray-light-18i",
			Description: "77g head-light graphite racquet", Price: currency.FromRupees(2999), ComparePrice: currency.FromRupees(3499),
			CategoryID: bysport["badminton"], Brand: "Yonex", Sport: "badminton",
			Colors: "Lime,Red,Black", Rating: 4.6, ReviewCount: 1520,
			IsActive: true, IsFeatured: true, TrackQuantity: true, Quantity: 45,
		},
		{
			SKU: "FIT-DBL-001", Name: "Kore PVC Dumbbell Set 20kg", Slug: "kore-pvc-dumbbell-set-20kg",
			Description: "Adjustable set with two 14in rods", Price: currency.FromRupees(1599),
			CategoryID: bysport["fitness"], Brand: "Kore", Sport: "fitness",
			Rating: 4.2, ReviewCount: 4210, IsActive: true, TrackQuantity: true, Quantity: 120,
		},
		{
			SKU: "FIT-MAT-002", Name: "Boldfit Yoga Mat 6mm", Slug: "boldfit-yoga-mat-6mm",
			Description: "Anti-slip EVA mat with carry strap", Price: currency.FromRupees(599),
			CategoryID: bysport["fitness"], Brand: "Boldfit", Sport: "fitness",
			Colors: "Blue,Purple,Green", Rating: 4.3, ReviewCount: 980,
			IsActive: true, TrackQuantity: true, Quantity: 300,
		},
	}
	if err := m.db.Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	log.Printf("✅ Seeded %d categories and %d products", len(categories), len(products))
	return nil
}
