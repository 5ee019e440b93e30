// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ravikiranj23/event-ticketing/internal/database"
	"github.com/ravikiranj23/event-ticketing/internal/handler"
	"github.com/ravikiranj23/event-ticketing/internal/identifier"
	"github.com/ravikiranj23/event-ticketing/internal/repository"
	"github.com/ravikiranj23/event-ticketing/internal/service"
)

func main() {
	ctx := context.Background()

	// .env is optional; OS environment wins when the file is absent.
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// ── 1. Connect to PostgreSQL ──────────────────────────────────────────
	pool, err := database.NewPool(ctx)
	if err != nil {
		logger.Fatal("database", zap.Error(err))
	}
	defer pool.Close()
	logger.Info("connected to PostgreSQL")

	if err := database.Migrate(ctx, pool); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	// ── 2. Connect to Redis ───────────────────────────────────────────────
	cache := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", getEnv("REDIS_HOST", "localhost"), getEnv("REDIS_PORT", "6379")),
	})
	if err := cache.Ping(ctx).Err(); err != nil {
		logger.Fatal("redis", zap.Error(err))
	}
	logger.Info("connected to Redis")

	// ── 3. Wire up layers ────────────────────────────────────────────────
	catalog := repository.NewCatalog(pool)
	ledger := repository.NewLedger(pool)
	bookingSvc := service.NewBookingService(catalog, ledger, identifier.Generator{}, cache)
	bookingHandler := handler.NewBookingHandler(bookingSvc)

	// ── 4. Build the router ───────────────────────────────────────────────
	r := chi.NewRouter()

	// Global middleware stack
	r.Use(chimiddleware.Recoverer)  // recover from panics, return 500
	r.Use(chimiddleware.RequestID)  // attach request IDs
	r.Use(chimiddleware.RealIP)     // trust X-Forwarded-For
	r.Use(handler.Logger(logger))   // structured access log
	r.Use(handler.CORS)             // permissive CORS for demo

	// Health
	r.Get("/health", handler.HealthCheck)

	// API routes
	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", bookingHandler.Purchase)
		r.Post("/{id}/cancel", bookingHandler.Cancel)
	})
	r.Route("/users/{id}", func(r chi.Router) {
		r.Get("/bookings", bookingHandler.ListUserBookings)
		r.Post("/wallet/topup", bookingHandler.TopUpWallet)
	})
	r.Get("/events/{id}/revenue", bookingHandler.EventRevenue)

	// ── 5. Start server with graceful shutdown ────────────────────────────
	port := getEnv("PORT", "8080")
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Run in background goroutine so we can listen for shutdown signal.
	go func() {
		logger.Info("server listening", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
