// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/javajoker/store-platform/internal/config"
	"github.com/javajoker/store-platform/internal/handlers"
	"github.com/javajoker/store-platform/internal/metrics"
	"github.com/javajoker/store-platform/internal/middleware"
	"github.com/javajoker/store-platform/internal/services"
	"github.com/javajoker/store-platform/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config, log logrus.FieldLogger, m *metrics.Metrics) *gin.Engine {
	// Initialize services
	referralService := services.NewReferralService(db, cfg, log)
	authService := services.NewAuthService(db, cfg, log, referralService, m)
	catalogService := services.NewCatalogService(db, cfg, log, m)
	storeService := services.NewStoreService(db, log, catalogService)
	orderService := services.NewOrderService(db, log, m)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	referralHandler := handlers.NewReferralHandler(referralService)
	productHandler := handlers.NewProductHandler(catalogService)
	storeHandler := handlers.NewStoreHandler(storeService)
	orderHandler := handlers.NewOrderHandler(orderService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Metrics(m))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))

	var authLimit gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if cfg.RateLimit.Enabled {
		r.Use(middleware.NewRateLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst).Middleware())
		authLimit = middleware.NewRateLimiter(rate.Limit(cfg.RateLimit.AuthRPS), cfg.RateLimit.AuthBurst).Middleware()
	}
	r.Use(middleware.AuditLogMiddleware(db, log))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		status, code := "healthy", http.StatusOK
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status, code = "unhealthy", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authLimit, authHandler.Register)
			auth.POST("/login", authLimit, authHandler.Login)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
		}

		// Referral routes
		referrals := v1.Group("/referrals")
		{
			referrals.GET("/me", middleware.AuthRequired(), referralHandler.Summary)
			referrals.GET("/leaderboard", referralHandler.Leaderboard)
		}

		// Public catalog
		products := v1.Group("/products")
		{
			products.GET("", productHandler.ListProducts)
			products.GET("/:product_id", productHandler.GetProduct)
		}

		// Storefront routes
		userStore := v1.Group("/user-store")
		{
			userStore.POST("/products", middleware.AuthRequired(), storeHandler.AddProduct)
			userStore.GET("/products", middleware.AuthRequired(), storeHandler.ListOwnProducts)
			userStore.DELETE("/products/:product_id", middleware.AuthRequired(), storeHandler.RemoveProduct)
			userStore.POST("/stores", middleware.AuthRequired(), storeHandler.CreateStore)
			userStore.GET("/:user_id/products", storeHandler.ListUserProducts)
		}

		// Order routes
		orders := v1.Group("/orders")
		{
			orders.POST("", middleware.OptionalAuth(), orderHandler.CreateOrder)
			orders.GET("", middleware.AuthRequired(), middleware.AdminRequired(), orderHandler.ListOrders)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.POST("/products", productHandler.CreateProduct)
			admin.GET("/products", productHandler.ListProducts)
		}
	}

	return r
}
