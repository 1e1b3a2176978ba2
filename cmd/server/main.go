package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Anandha-scraper/HarvestChain/internal/app/routes"
	"github.com/Anandha-scraper/HarvestChain/internal/domain/services"
	"github.com/Anandha-scraper/HarvestChain/internal/infrastructure/config"
	"github.com/Anandha-scraper/HarvestChain/internal/infrastructure/database"
	"github.com/Anandha-scraper/HarvestChain/pkg/logger"

	"github.com/joho/godotenv"
)

// @title           HarvestChain API
// @version         1.0
// @description     Farmer registry and admin console backend for the HarvestChain platform.

// @host      localhost:5000
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.
func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using system environment variables")
	}

	logger.SetupLogger()
	cfg := config.GetConfig()

	pool, err := database.NewConnectionPool(cfg)
	if pool == nil {
		logger.Error("Failed to open database handle: %v", err)
		os.Exit(1)
	}
	if err != nil {
		if !cfg.IsProduction() {
			logger.Error("Failed to connect to database: %v", err)
			os.Exit(1)
		}
		// In production we keep serving; the database middleware retries on
		// each request and reports 503 until the store comes back.
		logger.Warning("Database unavailable at startup, continuing: %v", err)
	}

	if pool.State() == database.StateConnected {
		if err := runMigrations(pool, cfg); err != nil {
			logger.Error("Database migration failed: %v", err)
			os.Exit(1)
		}
		bootstrapMasterAdmin(pool, cfg)
	}

	r := routes.SetupRouter(pool, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		logger.Info("Server listening on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown: %v", err)
	}
	if err := pool.Close(); err != nil {
		logger.Warning("Error closing database pool: %v", err)
	}
	logger.Info("Server exited")
}

// runMigrations applies the schema according to DB_MIGRATION_MODE.
// "drop" recreates every table and is only meant for development resets.
func runMigrations(pool *database.ConnectionPool, cfg *config.Config) error {
	db := pool.GetDB()
	initService := services.NewInitService(db)

	if cfg.DBMigrationMode == "drop" {
		logger.Warning("Migration mode 'drop': recreating all tables")
		if err := initService.DropTables(); err != nil {
			return err
		}
	}

	result, err := initService.InitializeDatabase(false)
	if err != nil {
		return err
	}
	logger.Info("Database initialized: created=%v indexes=%v", result.CreatedTables, result.EnsuredIndexes)
	return nil
}

// bootstrapMasterAdmin makes sure the master account exists so the admin
// console is usable on a fresh deployment. Failure here is logged but not
// fatal; the account can still be created through the init endpoints.
func bootstrapMasterAdmin(pool *database.ConnectionPool, cfg *config.Config) {
	db := pool.GetDB()
	farmerService := services.NewFarmerService(db, cfg)
	adminService := services.NewAdminService(db, cfg, farmerService)

	admin, err := adminService.CreateMasterAdmin()
	if err != nil {
		logger.Warning("Master admin bootstrap failed: %v", err)
		return
	}
	logger.Info("Master admin '%s' ready", admin.Username)
}
