package server

import (
	"context"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/klarsync/order-export/internal/config"
	"github.com/klarsync/order-export/internal/db"
	"github.com/klarsync/order-export/internal/export"
	"github.com/klarsync/order-export/internal/handlers"
	"github.com/klarsync/order-export/internal/logger"
)

// Handler Definitions
var (
	exportHandler *handlers.ExportHandler
	healthHandler *handlers.HealthHandler

	// Database
	dbPool *pgxpool.Pool
)

// InitializeHandlers wires the repositories, builders, and handlers.
func InitializeHandlers(cfg *config.Config) {
	if cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL environment variable is required")
	}

	if !config.IsValidWeightUnit(cfg.WeightUnit) {
		logger.Fatal("WEIGHT_UNIT must be one of kgs, lbs",
			zap.String("weight_unit", cfg.WeightUnit))
	}

	pool, err := db.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Unable to create connection pool", zap.Error(err))
	}
	dbPool = pool

	rules := db.NewSalesRuleRepository(pool)
	categories := db.NewCategoryRepository(pool)
	taxItems := db.NewTaxItemRepository(pool)
	orders := db.NewOrderRepository(pool)

	discountsBuilder := export.NewLineItemDiscountsBuilder(rules, rules)
	taxesBuilder := export.NewTaxesBuilder(taxItems)
	lineItemsBuilder := export.NewLineItemsBuilder(categories, taxesBuilder, discountsBuilder, cfg)

	exportHandler = handlers.NewExportHandler(orders, lineItemsBuilder)
	healthHandler = handlers.NewHealthHandler()
}

// InitializeRoutes registers the API routes on the router.
func InitializeRoutes(router *gin.Engine) {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.GET("/health", healthHandler.Health)

	v1 := router.Group("/api/v1")
	{
		orders := v1.Group("/orders")
		{
			orders.GET("/:order_id/line-items", exportHandler.GetLineItems)
			orders.GET("/:order_id/eligibility", exportHandler.GetEligibility)
		}
	}
}

// Close releases the database pool.
func Close() {
	if dbPool != nil {
		dbPool.Close()
	}
}
