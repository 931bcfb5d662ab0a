// main.go
package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/fadhlanhapp/giftbuddy-backend/config"
	"github.com/fadhlanhapp/giftbuddy-backend/logger"
	"github.com/fadhlanhapp/giftbuddy-backend/middleware"
	"github.com/fadhlanhapp/giftbuddy-backend/repository"
	"github.com/fadhlanhapp/giftbuddy-backend/repository/memory"
	"github.com/fadhlanhapp/giftbuddy-backend/routes"
	"github.com/fadhlanhapp/giftbuddy-backend/services"
)

func main() {
	log := logger.NewFromEnv()

	// Load environment variables
	cfg, dotenvFound, err := config.Load()
	if !dotenvFound {
		log.Warn(".env file not found, using environment variables")
	}
	if err != nil {
		log.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	// Initialize New Relic
	var app *newrelic.Application
	if cfg.NewRelic.LicenseKey != "" {
		app, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
		)
		if err != nil {
			log.Warn("failed to initialize New Relic", "err", err)
		}
	}

	// Initialize storage
	store, db, err := openStore(cfg)
	if err != nil {
		log.Error("failed to initialize storage", "err", err, "storage", cfg.Storage)
		os.Exit(1)
	}
	if db != nil {
		defer db.Close()
	}

	svc := services.New(store, log, time.Now)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	// Add New Relic middleware
	if app != nil {
		router.Use(nrgin.Middleware(app))
	}
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Timeout(cfg.RequestTimeout))

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: !containsWildcard(cfg.AllowedOrigins),
		MaxAge:           12 * time.Hour,
	}))

	// Set up routes
	routes.SetupRoutes(router, svc, middleware.Auth(cfg.Auth, store.Users(), log))

	if cfg.Auth.SkipAuth {
		log.Warn("authentication is disabled", "mock_user_id", cfg.Auth.MockUserID)
	}

	// Start server
	log.Info("server starting", "port", cfg.Port, "storage", cfg.Storage, "env", cfg.Env)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Error("failed to start server", "err", err)
		os.Exit(1)
	}
}

// openStore returns the configured Store. The *sql.DB is nil for the memory store.
func openStore(cfg config.Config) (repository.Store, *sql.DB, error) {
	if cfg.Storage == config.StorageMemory {
		return memory.NewStore(), nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := repository.OpenDB(ctx, cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	if err := repository.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return repository.NewPostgresStore(db), db, nil
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
