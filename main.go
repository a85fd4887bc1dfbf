package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/soleworks/soleworks-api/config"
	"github.com/soleworks/soleworks-api/controllers"
	"github.com/soleworks/soleworks-api/middleware"
	"github.com/soleworks/soleworks-api/models"
	"github.com/soleworks/soleworks-api/services"
)

func main() {
	// Load configuration; missing secrets are fatal at boot
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := config.InitLogger(cfg.GoEnv); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer config.SyncLogger()
	logger := config.GetLogger()

	logger.Info("Starting Soleworks API server...")

	// Connect to database
	if err := config.ConnectDatabase(cfg); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(&models.User{}, &models.Order{}); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}
	logger.Info("Database migration completed successfully")

	router := setupRouter(cfg, db)

	// Start server
	addr := ":" + cfg.Port
	logger.Info("Server is running", zap.String("addr", "http://localhost"+addr))
	if err := router.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// setupRouter wires the full HTTP surface: public order submission and
// reads, admin-gated mutations, user registration/login, health and metrics
func setupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.ErrorRecovery(cfg))
	router.Use(middleware.Prometheus())

	// The storefront frontend is served from a different origin
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	catalog := services.NewCatalog()
	validator := services.NewOrderValidator(catalog)
	events := services.NewEventPublisher(cfg.KafkaBrokers, cfg.KafkaOrderTopic)
	cache := services.NewOrderCache(cfg.RedisAddr, cfg.RedisPassword)
	tokens := services.NewTokenService(cfg.JWTSecret)

	orderService := services.NewOrderService(db, validator, events, cache)
	orderController := controllers.NewOrderController(orderService)
	userController := controllers.NewUserController(db, tokens)
	gate := middleware.NewAdminGate(tokens)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)

		orders := v1.Group("/orders")
		{
			orders.POST("", orderController.CreateOrder)
			orders.GET("", orderController.ListOrders)
			orders.GET("/:id", orderController.GetOrder)
			orders.PUT("/:id", gate.RequireAdmin(), orderController.UpdateOrderStatus)
			orders.DELETE("/:id", gate.RequireAdmin(), orderController.DeleteOrder)
		}

		users := v1.Group("/users")
		{
			users.POST("/register", userController.Register)
			users.POST("/login", userController.Login)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Soleworks API is running",
	})
}
