// cmd/api/main.go

// @title Gerenciador de Tarefas API
// @version 1.0
// @description Multi-user task tracking backend with bearer-token authentication and password reset.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"tarefas/internal/config"
	"tarefas/internal/db"
	"tarefas/internal/db/migrations"
	"tarefas/internal/logger"
	"tarefas/internal/metrics"
	"tarefas/internal/routes"
	"tarefas/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zl, err := logger.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Create database if it doesn't exist
	if err := db.CreateDatabaseIfNotExists(ctx, cfg.DatabaseURL, zl); err != nil {
		zl.Fatal("Failed to ensure database exists", zap.Error(err))
	}

	database, err := db.New(ctx, cfg.DatabaseURL, db.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	}, zl)
	if err != nil {
		zl.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close()

	if err := migrations.RunMigrations(cfg.DatabaseURL, zl); err != nil {
		zl.Fatal("Failed to run migrations", zap.Error(err))
	}

	mailer, err := services.NewEmailSender(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("Failed to configure mail delivery", zap.Error(err))
	}

	router := routes.SetupRoutes(database.DB, cfg, zl, mailer, metrics.New(prometheus.DefaultRegisterer))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		zl.Info("Server starting", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment), zap.String("mail_driver", cfg.MailDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("Shutting down server...")

	// Give server 5 seconds to finish current requests
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zl.Error("Server forced to shutdown", zap.Error(err))
	}

	zl.Info("Server exiting")
}
