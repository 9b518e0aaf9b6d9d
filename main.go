package main

import (
	"github.com/gin-gonic/gin"

	config "github.com/abner-serafim/2025-api-arq/configs"
	"github.com/abner-serafim/2025-api-arq/internal/catalog"
	"github.com/abner-serafim/2025-api-arq/internal/db"
	"github.com/abner-serafim/2025-api-arq/internal/handlers"
	"github.com/abner-serafim/2025-api-arq/internal/logger"
	"github.com/abner-serafim/2025-api-arq/internal/server"
	"github.com/abner-serafim/2025-api-arq/internal/services"
)

func main() {
	serverCfg := config.LoadServerConfig()
	gin.SetMode(serverCfg.Mode)

	log, err := logger.New(serverCfg.Mode)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	conn, err := db.Connect(log)
	if err != nil {
		log.Fatal("database init failed", "error", err)
	}

	cat := catalog.New(conn)
	orderService := services.NewOrderService(conn, log, cat)
	customerService := services.NewCustomerService(conn, log)
	productService := services.NewProductService(conn, log)

	router := server.NewRouter(server.RouterConfig{
		Server:          serverCfg,
		Log:             log,
		OrderHandler:    handlers.NewOrderHandler(orderService, cat, log, true),
		CustomerHandler: handlers.NewCustomerHandler(customerService),
		ProductHandler:  handlers.NewProductHandler(productService),
	})

	log.Info("starting server", "port", serverCfg.Port)
	if err := router.Run(":" + serverCfg.Port); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
