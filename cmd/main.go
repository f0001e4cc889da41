package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/locduc071190/shopquanao/internal/blob"
	"github.com/locduc071190/shopquanao/internal/handler"
	"github.com/locduc071190/shopquanao/internal/inventory"
	mid "github.com/locduc071190/shopquanao/internal/middleware"
	"github.com/locduc071190/shopquanao/pkg/cache"
	"github.com/locduc071190/shopquanao/pkg/config"
	"github.com/locduc071190/shopquanao/pkg/database"
	"github.com/locduc071190/shopquanao/pkg/logger"
)

func main() {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting shop manager",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port),
		zap.String("db_driver", appConfig.DB.Driver))

	// Initialize database
	if err := database.InitDB(appConfig); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize product image storage
	blobs, err := blob.NewStore(appConfig.Storage.ImageDir)
	if err != nil {
		log.Fatal("Failed to initialize image storage", zap.Error(err))
	}
	log.Info("Image storage ready", zap.String("dir", appConfig.Storage.ImageDir))

	// Optional report cache
	var reportCache *cache.Cache
	if appConfig.Cache.RedisAddr != "" {
		reportCache, err = cache.New(appConfig.Cache.RedisAddr, appConfig.Cache.ReportTTL)
		if err != nil {
			log.Fatal("Failed to connect to report cache", zap.Error(err))
		}
		defer reportCache.Close()
		log.Info("Report cache enabled",
			zap.String("addr", appConfig.Cache.RedisAddr),
			zap.Duration("ttl", appConfig.Cache.ReportTTL))
	}

	// Wire the inventory engine into the handlers
	handler.SetEngine(inventory.NewEngine(database.GetDB(), blobs, cacheOrNil(reportCache)))
	handler.SetReportCache(reportCache)

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Dashboard and reporting
	e.GET("/api/dashboard", handler.GetDashboard)
	e.GET("/api/reports/sales", handler.GetSalesReport)
	e.GET("/api/exports/orders.csv", handler.ExportOrderLog)
	e.GET("/api/exports/stock-movements.csv", handler.ExportStockMovementLog)

	// Product catalog
	productAPI := e.Group("/api/products")
	productAPI.GET("", handler.ListProducts)
	productAPI.GET("/:id", handler.GetProduct)
	productAPI.GET("/:id/image", handler.ProductImage)
	productAPI.POST("", handler.CreateProduct)
	productAPI.PUT("/:id", handler.UpdateProduct)

	// POS orders
	orderAPI := e.Group("/api/orders")
	orderAPI.GET("", handler.ListOrders)
	orderAPI.GET("/:id", handler.GetOrder)
	orderAPI.POST("", handler.CreateOrder)

	// Inventory ledger
	stockAPI := e.Group("/api/stock-movements")
	stockAPI.GET("", handler.ListStockMovements)
	stockAPI.POST("", handler.CreateStockMovement)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}

// cacheOrNil keeps a typed-nil *cache.Cache out of the engine's interface
// field.
func cacheOrNil(c *cache.Cache) inventory.ReportCache {
	if c == nil {
		return nil
	}
	return c
}
