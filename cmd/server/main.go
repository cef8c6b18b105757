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
	"github.com/go-chi/cors"
	"github.com/koyeliyag-code/healthsync/internal/auth"
	"github.com/koyeliyag-code/healthsync/internal/cache"
	"github.com/koyeliyag-code/healthsync/internal/config"
	"github.com/koyeliyag-code/healthsync/internal/database"
	"github.com/koyeliyag-code/healthsync/internal/handlers"
	"github.com/koyeliyag-code/healthsync/internal/middleware"
	"github.com/koyeliyag-code/healthsync/internal/repository"
	"github.com/koyeliyag-code/healthsync/internal/services"
	"github.com/koyeliyag-code/healthsync/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Initialize logger
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting HealthSync API")

	if cfg.Auth.JWTSecret == config.DefaultJWTSecret {
		log.Warn().Msg("Running with the default JWT secret; development only")
	}

	// Connect to database. A failed connection is not fatal: the directory
	// endpoint degrades to seed data and the roster endpoint answers 503.
	dbConfig := database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
		LogLevel: cfg.Database.LogLevel,
	}

	if err := database.Connect(dbConfig); err != nil {
		log.Error().Err(err).Msg("Database unavailable, serving degraded")
	} else {
		defer database.Close()
	}

	// Initialize cache
	var cacheImpl cache.Cache
	if cfg.Cache.Enabled && cfg.Cache.Type == "redis" {
		addr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
		cacheImpl, err = cache.NewRedisCache(addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		log.Info().Msg("Redis cache initialized")
	} else {
		cacheImpl = cache.NewMemoryCache()
		log.Info().Msg("Memory cache initialized")
	}
	defer cacheImpl.Close()

	// Initialize repositories
	orgRepo := repository.NewOrganizationRepository()
	userRepo := repository.NewUserRepository()
	patientRepo := repository.NewPatientRepository()
	auditRepo := repository.NewAuditRepository()

	// Initialize services
	directory := services.NewDirectoryService(orgRepo, cacheImpl)
	roster := services.NewRosterService(userRepo, patientRepo)
	guard := auth.NewGuard(cfg.Auth.JWTSecret)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	orgHandler := handlers.NewOrganizationHandler(directory, roster, guard, auditRepo, database.Available)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Compress(5))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   []string{"Content-Length", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health endpoints (no authentication required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	// Organization directory and roster
	r.Route("/organizations", func(r chi.Router) {
		r.Get("/", orgHandler.ListOrganizations)
		r.Get("/{id}/doctors", orgHandler.ListDoctors)
		r.Get("/{id}/audit", orgHandler.ListAudit)
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
