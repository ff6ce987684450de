package main

import (
	"alcyxob/exercise-log/internal/api"
	"alcyxob/exercise-log/internal/config"
	"alcyxob/exercise-log/internal/logger"
	"alcyxob/exercise-log/internal/repository"
	gormrepo "alcyxob/exercise-log/internal/repository/gorm"
	"alcyxob/exercise-log/internal/repository/mongo"
	"alcyxob/exercise-log/internal/service"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}

	logg, err := logger.New(cfg.Log.Mode)
	if err != nil {
		log.Fatalf("FATAL: Could not build logger: %v", err)
	}
	defer logg.Sync()
	logg.Info("Starting exercise log server", "driver", cfg.Database.Driver, "address", cfg.Server.Address)

	// --- Store ---
	exerciseRepo, closeStore, err := openStore(cfg.Database, logg)
	if err != nil {
		logg.Fatal("Could not open store", "driver", cfg.Database.Driver, "error", err)
	}
	defer func() {
		logg.Info("Closing store...")
		if err := closeStore(); err != nil {
			logg.Error("Failed to close store", "error", err)
		}
	}()

	// --- Initialize Services ---
	exerciseService := service.NewExerciseService(exerciseRepo, logg)

	// --- Setup Gin Router ---
	// Release mode silences gin's debug route dump in production
	if cfg.Log.Mode == "prod" || cfg.Log.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, logg, cfg.CORS.AllowOrigins, exerciseService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logg.Info("Server listening", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("ListenAndServe error", "error", err)
		}
	}()

	// --- Graceful Shutdown ---
	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logg.Info("Shutting down server...")

	// Give in-flight requests up to 5 seconds to finish
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logg.Error("Server forced to shutdown", "error", err)
	}

	logg.Info("Server exiting.")
}

// openStore connects the configured backend and returns its repository plus a close func.
func openStore(cfg config.DatabaseConfig, logg *logger.Logger) (repository.ExerciseRepository, func() error, error) {
	switch cfg.Driver {
	case gormrepo.DriverSQLite, gormrepo.DriverPostgres:
		// Connects and runs AutoMigrate for both tables
		db, err := gormrepo.ConnectDB(cfg.Driver, cfg.DSN, logg)
		if err != nil {
			return nil, nil, err
		}
		return gormrepo.NewGormExerciseRepository(db), func() error { return gormrepo.DisconnectDB(db) }, nil

	case "mongo", "mongodb":
		client, err := mongo.ConnectDB(cfg.URI)
		if err != nil {
			return nil, nil, err
		}
		appDB := client.Database(cfg.Name) // Get database handle

		// --- Ensure Indexes ---
		// The unique index on nome is what turns duplicate names into conflicts
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		if err := mongo.EnsureExerciseIndexes(ctx, appDB); err != nil {
			_ = mongo.DisconnectDB(client) // Don't leak the client on a failed startup
			return nil, nil, err
		}
		return mongo.NewMongoExerciseRepository(appDB), func() error { return mongo.DisconnectDB(client) }, nil

	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
