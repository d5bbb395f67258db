package main

import (
	"context"
	"log"

	"github.com/buildhubhq/buildhub-backend/internal/jobs"
	"github.com/buildhubhq/buildhub-backend/internal/router"
	"github.com/buildhubhq/buildhub-backend/pkg/config"
	"github.com/buildhubhq/buildhub-backend/pkg/firebase"
	"github.com/buildhubhq/buildhub-backend/pkg/metrics"
	"github.com/buildhubhq/buildhub-backend/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	// Push delivery is optional; the notifier degrades to DB-only fan-out.
	var push *firebase.App
	if cfg.FirebaseCredentialsPath != "" {
		push, err = firebase.InitFirebase(context.Background(), cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Printf("Firebase unavailable, push delivery disabled: %v", err)
			push = nil
		}
	}

	// Create Echo instance
	e := echo.New()
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	repos := router.SetupRoutes(e, router.Deps{
		Postgres:     db.Postgres,
		Mongo:        db.Mongo,
		Push:         push,
		NewsBotEmail: cfg.NewsBotEmail,
	})

	// Scheduled maintenance (story reaping). Off unless ENABLE_JOBS=true.
	if cfg.EnableJobs {
		manager := jobs.NewManager(repos.Story)
		if err := manager.Start(); err != nil {
			log.Fatalf("Failed to start job scheduler: %v", err)
		}
		defer manager.Stop()
	}

	// Metrics on a separate listener
	go func() {
		if err := metrics.Serve(":" + cfg.MetricsPort); err != nil {
			log.Printf("Metrics server stopped: %v", err)
		}
	}()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
