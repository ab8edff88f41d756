// internal/interfaces/http/routes/routes.go
package routes

import (
	"time"

	"github.com/gearup-sports/storefront-backend/internal/config"
	"github.com/gearup-sports/storefront-backend/internal/domain/cart"
	"github.com/gearup-sports/storefront-backend/internal/domain/checkout"
	"github.com/gearup-sports/storefront-backend/internal/domain/order"
	"github.com/gearup-sports/storefront-backend/internal/domain/payment"
	"github.com/gearup-sports/storefront-backend/internal/domain/wishlist"
	"github.com/gearup-sports/storefront-backend/internal/interfaces/http/handlers"
	"github.com/gearup-sports/storefront-backend/internal/interfaces/http/middleware"
	"github.com/gearup-sports/storefront-backend/internal/pkg/email"
	"github.com/gearup-sports/storefront-backend/internal/pkg/pdf"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupRoutes wires services, handlers and all API routes
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	logger := newLogger(cfg)

	// Shared services
	cartService := cart.NewService(db, redisClient, cfg)
	sequencer := order.NewRedisSequencer(redisClient)
	orderService := order.NewService(db, cfg, cartService, sequencer)
	wishlistService := wishlist.NewService(db, cfg, cartService)
	upiGateway := payment.NewUPIGateway(&cfg.External.UPI)
	razorpayClient := payment.NewRazorpayClient(&cfg.External.Razorpay)
	emailService := email.NewService(cfg)
	pdfService := pdf.NewService(cfg)
	checkoutService := checkout.NewService(cfg, cartService, orderService,
		upiGateway, razorpayClient, emailService, logger)

	// Handlers
	authHandler := handlers.NewAuthHandler(db, redisClient, cfg, emailService, logger)
	productHandler := handlers.NewProductHandler(db, cfg)
	cartHandler := handlers.NewCartHandler(db, redisClient, cfg)
	orderHandler := handlers.NewOrderHandler(orderService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	wishlistHandler := handlers.NewWishlistHandler(wishlistService)
	invoiceHandler := handlers.NewInvoiceHandler(orderService, pdfService)

	// Auth routes
	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/profile", authHandler.GetProfile)
			protected.PUT("/profile", authHandler.UpdateProfile)
		}
	}

	// Catalog routes (public)
	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/search", productHandler.SearchProducts)
		products.GET("/slug/:slug", productHandler.GetProductBySlug)
		products.GET("/:id", productHandler.GetProduct)
	}
	rg.GET("/categories", productHandler.GetCategories)

	// Cart routes work for guests and signed-in users alike
	cartRoutes := rg.Group("/cart")
	cartRoutes.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		cartRoutes.GET("", cartHandler.GetCart)
		cartRoutes.DELETE("", cartHandler.ClearCart)
		cartRoutes.GET("/count", cartHandler.GetCartCount)
		cartRoutes.POST("/items", cartHandler.AddToCart)
		cartRoutes.PUT("/items/:productId", cartHandler.UpdateCartItem)
		cartRoutes.DELETE("/items/:productId", cartHandler.RemoveFromCart)
	}

	// Checkout requires a signed-in user
	checkoutRoutes := rg.Group("/checkout")
	checkoutRoutes.Use(middleware.AuthMiddleware(cfg))
	{
		checkoutRoutes.GET("/summary", checkoutHandler.GetSummary)
		checkoutRoutes.GET("/payment-methods", checkoutHandler.GetPaymentMethods)
		checkoutRoutes.POST("/validate-address", checkoutHandler.ValidateAddress)
		checkoutRoutes.POST("", checkoutHandler.PlaceOrder)
		checkoutRoutes.POST("/razorpay/confirm", checkoutHandler.ConfirmRazorpay)
	}

	// Order routes
	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.GET("", orderHandler.GetOrders)
		orders.GET("/number/:orderNumber", orderHandler.GetOrderByNumber)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.POST("/:id/cancel", orderHandler.CancelOrder)
		orders.GET("/:id/invoice", invoiceHandler.DownloadInvoice)
	}

	// Wishlist routes
	wishlistRoutes := rg.Group("/wishlist")
	wishlistRoutes.Use(middleware.AuthMiddleware(cfg))
	{
		wishlistRoutes.GET("", wishlistHandler.GetWishlist)
		wishlistRoutes.POST("/move-to-cart", wishlistHandler.MoveToCart)
		wishlistRoutes.GET("/:productId", wishlistHandler.CheckWishlist)
		wishlistRoutes.POST("/:productId", wishlistHandler.AddToWishlist)
		wishlistRoutes.DELETE("/:productId", wishlistHandler.RemoveFromWishlist)
	}

	// Admin routes
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
	{
		admin.POST("/products", productHandler.CreateProduct)
		admin.PUT("/products/:id", productHandler.UpdateProduct)
		admin.DELETE("/products/:id", productHandler.DeleteProduct)
		admin.PUT("/products/:id/inventory", productHandler.UpdateInventory)

		admin.PUT("/orders/:id/status", orderHandler.UpdateOrderStatus)
	}
}

// newLogger builds the application logger from config
func newLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
	}

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
