package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	config "github.com/abner-serafim/2025-api-arq/configs"
	"github.com/abner-serafim/2025-api-arq/internal/auth"
	"github.com/abner-serafim/2025-api-arq/internal/handlers"
	"github.com/abner-serafim/2025-api-arq/internal/logger"
)

type RouterConfig struct {
	Server          config.ServerConfig
	Log             *logger.Logger
	OrderHandler    *handlers.OrderHandler
	CustomerHandler *handlers.CustomerHandler
	ProductHandler  *handlers.ProductHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "X-API-KEY", "Authorization"},
	}))

	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	api := router.Group("/api")
	api.Use(auth.RequireAPIKey(cfg.Server.APIKey, cfg.Log))
	{
		customers := api.Group("/customers")
		{
			customers.GET("", cfg.CustomerHandler.List)
			customers.GET("/count", cfg.CustomerHandler.Count)
			customers.GET("/:id", cfg.CustomerHandler.Get)
			customers.POST("", cfg.CustomerHandler.Create)
			customers.PUT("/:id", cfg.CustomerHandler.Update)
			customers.PATCH("/:id", cfg.CustomerHandler.Patch)
			customers.DELETE("/:id", cfg.CustomerHandler.Delete)
		}

		products := api.Group("/products")
		{
			products.GET("", cfg.ProductHandler.List)
			products.GET("/count", cfg.ProductHandler.Count)
			products.GET("/:id", cfg.ProductHandler.Get)
			products.POST("", cfg.ProductHandler.Create)
			products.PUT("/:id", cfg.ProductHandler.Update)
			products.PATCH("/:id", cfg.ProductHandler.Patch)
			products.DELETE("/:id", cfg.ProductHandler.Delete)
		}

		orders := api.Group("/orders")
		{
			orders.GET("", cfg.OrderHandler.List)
			orders.GET("/count", cfg.OrderHandler.Count)
			orders.GET("/:id", cfg.OrderHandler.Get)
			orders.POST("", cfg.OrderHandler.Create)
			orders.PATCH("/:id", cfg.OrderHandler.Patch)
			orders.DELETE("/:id", cfg.OrderHandler.Delete)
			orders.POST("/:id/items", cfg.OrderHandler.AddItem)
			orders.PUT("/:id/items/:productId", cfg.OrderHandler.UpdateItem)
			orders.DELETE("/:id/items/:productId", cfg.OrderHandler.RemoveItem)
		}
	}

	return router
}
