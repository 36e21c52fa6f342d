package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/linkedup/backend/internal/router"
	"github.com/linkedup/backend/pkg/config"
	"github.com/linkedup/backend/pkg/storage"
	"github.com/linkedup/backend/validators"
)

func main() {
	// Logger first so every later step can report through it
	config.InitLogger()

	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Initialize Redis for the feed cache
	rdb, err := config.InitRedis()
	if err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer rdb.Close()

	// Initialize the Firebase-backed object store for post attachments
	ctx := context.Background()
	store, err := storage.InitFirebase(ctx, cfg.FirebaseCredentialsPath, cfg.StorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase storage: %v", err)
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, db.Mongo, rdb, store)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
