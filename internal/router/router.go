package router

import (
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/linkedup/backend/internal/handlers"
	"github.com/linkedup/backend/internal/models"
	"github.com/linkedup/backend/internal/repositories"
	"github.com/linkedup/backend/pkg/config"
	"github.com/linkedup/backend/pkg/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const feedCacheTTL = time.Minute

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	config.Logger.Info("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, rdb *redis.Client, store storage.ObjectStore) {
	// AutoMigrate PostgreSQL models
	if err := pgdb.AutoMigrate(&models.Profile{}); err != nil {
		config.Logger.Fatal("Failed to auto migrate models", zap.Error(err))
	}
	config.Logger.Info("PostgreSQL auto-migrations completed.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"message": "LinkedUp API is running"})
	})

	// --- Initialize Repositories ---
	postRepo := repositories.NewMongoPostRepository(mgClient.Database("linkedup"))
	profileRepo := repositories.NewPostgresProfileRepository(pgdb)
	feedCache := repositories.NewRedisFeedCache(rdb, feedCacheTTL)

	api := e.Group("/api")

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo, profileRepo, feedCache, store)
	postHandler.RegisterPostRoutes(api)
	config.Logger.Info("Post routes configured.")

	// Profile routes
	profileHandler := handlers.NewProfileHandler(profileRepo)
	profileHandler.RegisterProfileRoutes(api)
	config.Logger.Info("Profile routes configured.")

	config.Logger.Info("All routes configured.")
}
