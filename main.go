package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/stockhub/storefront-service/clients"
	"github.com/stockhub/storefront-service/controllers"
	"github.com/stockhub/storefront-service/database"
	"github.com/stockhub/storefront-service/logger"
	"github.com/stockhub/storefront-service/middleware"
	"github.com/stockhub/storefront-service/routes"
	"github.com/stockhub/storefront-service/services"
)

func main() {
	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog := logger.Initialize(cfg.Environment)
	defer zlog.Sync() //nolint:errcheck

	redisClient, err := database.NewRedisClient(cfg.RedisURL, zlog)
	if err != nil {
		zlog.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close() //nolint:errcheck

	// DI chain
	sessionStore := database.NewSessionRepository(redisClient, cfg.SessionTTL)
	backend := clients.NewStockHubClient(cfg.BackendBaseURL, cfg.BackendTimeout)

	inventoryService := services.NewInventoryService(backend, zlog)
	cartService := services.NewCartService(sessionStore, inventoryService, zlog)
	checkoutService := services.NewCheckoutService(sessionStore, inventoryService, backend, cfg.IdempotencyTTL, zlog)
	lifecycleService := services.NewLifecycleService(backend, zlog)
	orderService := services.NewOrderService(backend, zlog)

	stockController := controllers.NewStockController(backend)
	cartController := controllers.NewCartController(cartService, inventoryService)
	checkoutController := controllers.NewCheckoutController(checkoutService, inventoryService)
	orderController := controllers.NewOrderController(orderService, lifecycleService)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(logger.RequestLogger(zlog))
	r.Use(middleware.RateLimit(rate.Every(time.Minute/time.Duration(cfg.RatePerMinute)), cfg.RateBurst))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "storefront-service"})
	})

	routes.Register(r, []byte(cfg.JWTSecret), stockController, cartController, checkoutController, orderController)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("Server failed", zap.Error(err))
		}
	}()

	zlog.Info("Storefront service started",
		zap.String("port", cfg.Port),
		zap.String("backend", cfg.BackendBaseURL),
	)
	<-quit
	zlog.Info("Shutting down storefront service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatal("Server forced to shutdown", zap.Error(err))
	}
	zlog.Info("Server exited cleanly")
}
