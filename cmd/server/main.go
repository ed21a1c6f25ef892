package main

import (
	"net/http"

	"shopfront-be/internal/config"
	"shopfront-be/internal/db"
	"shopfront-be/internal/logger"
	"shopfront-be/internal/order"
	"shopfront-be/internal/product"
	"shopfront-be/internal/transport"
	"shopfront-be/internal/user"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo)

	router := transport.NewRouter(
		transport.NewAuthHandler(userSvc),
		transport.NewProductHandler(productSvc),
		transport.NewOrderHandler(orderSvc),
	)

	logger.L().Info("server listening", zap.String("port", cfg.AppPort))
	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
