package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ems/inner/common"
	"ems/inner/database"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// @title Employee Management API
// @version 1.0
// @description REST API for employees, departments and users.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.
func main() {
	cfg := common.GetConfig(".env")
	logger := common.NewLogger(cfg)
	defer func() { _ = logger.Sync() }()

	db, err := database.ConnectDbWithCfg(cfg, logger)
	if err != nil {
		logger.Fatal("error connecting to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("error closing db", zap.Error(err))
		}
	}()

	server := build(cfg, db, logger)

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.AppPort))
		if err := server.App.Listen(":" + cfg.AppPort); err != nil {
			logger.Fatal("http server error", zap.Error(err))
		}
	}()

	// ждём сигнал завершения и даём текущим запросам доработать
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("Shutting down server...")
	if err := server.App.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exiting")
}
