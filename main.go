package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentry "github.com/getsentry/sentry-go"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"isip/config"
	"isip/database"
	"isip/handlers"
	"isip/middleware"
	"isip/routes"
	"isip/store"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it")
	}

	config.LoadConfig()

	// Error reporting. An empty DSN disables the transport, so this is
	// safe in development.
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         config.SentryDSN,
		Environment: config.AppEnv,
	}); err != nil {
		log.Fatalf("sentry.Init: %s", err)
	}
	defer sentry.Flush(2 * time.Second)

	// Database connection
	if err := database.Connect(); err != nil {
		sentry.CaptureException(err)
		log.Fatalf("Failed to connect to database: %v", err)
	}

	db := database.Client.Database(config.MongoDatabase)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	ideaStore, err := store.NewMongoIdeaStore(ctx, db)
	if err != nil {
		cancel()
		sentry.CaptureException(err)
		log.Fatalf("Failed to initialize idea store: %v", err)
	}
	userStore, err := store.NewMongoUserStore(ctx, db)
	cancel()
	if err != nil {
		sentry.CaptureException(err)
		log.Fatalf("Failed to initialize user store: %v", err)
	}

	handlers.Init(ideaStore, userStore)
	middleware.Init(userStore)

	// Router setup
	router := mux.NewRouter()
	routes.RegisterRoutes(router)

	// Global middlewares (order matters!)
	router.Use(middleware.RecoveryMiddleware)
	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.CORSMiddleware)

	// HTTP server configuration
	srv := &http.Server{
		Addr:         ":" + config.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("ISIP backend running on http://localhost:%s", config.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced shutdown: %v", err)
	}

	database.Disconnect()
	log.Println("Server stopped gracefully")
}
