package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Rohanmore123/mental-health-backend/internal/adapters/cache"
	"github.com/Rohanmore123/mental-health-backend/internal/adapters/database"
	"github.com/Rohanmore123/mental-health-backend/internal/adapters/search"
	"github.com/Rohanmore123/mental-health-backend/internal/api/handlers"
	"github.com/Rohanmore123/mental-health-backend/internal/api/middleware"
	"github.com/Rohanmore123/mental-health-backend/internal/api/routes"
	"github.com/Rohanmore123/mental-health-backend/internal/application/services"
	"github.com/Rohanmore123/mental-health-backend/internal/domain/providers"
	"github.com/Rohanmore123/mental-health-backend/internal/domain/repositories"
	"github.com/Rohanmore123/mental-health-backend/internal/infrastructure/clients/postgres"
	"github.com/Rohanmore123/mental-health-backend/internal/infrastructure/clients/redis"
	"github.com/Rohanmore123/mental-health-backend/internal/infrastructure/clients/typesense"
	"github.com/Rohanmore123/mental-health-backend/internal/infrastructure/observability"
	"github.com/Rohanmore123/mental-health-backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	// Initialize Redis client; the application works without caching
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Redis client, continuing without cache")
	} else {
		defer redisClient.Close()
	}

	// Initialize Typesense client; the directory search endpoint degrades
	// gracefully when the index is unavailable
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Typesense client, doctor search disabled")
	}

	// Initialize adapters
	doctorAdapter := database.NewDoctorAdapter(pgClient)
	patientAdapter := database.NewPatientAdapter(pgClient)
	chatMessageAdapter := database.NewChatMessageAdapter(pgClient)
	ratingAdapter := database.NewRatingAdapter(pgClient)
	appointmentAdapter := database.NewAppointmentAdapter(pgClient)

	var searchRepo repositories.DoctorSearchRepository
	if typesenseClient != nil {
		adapter := search.NewTypesenseAdapter(typesenseClient)
		if err := adapter.InitSchema(context.Background()); err != nil {
			log.Warn().Err(err).Msg("failed to init Typesense schema")
		}
		searchRepo = adapter
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize services
	recommendationService := services.NewRecommendationService(
		doctorAdapter,
		patientAdapter,
		chatMessageAdapter,
		ratingAdapter,
		appointmentAdapter,
	)
	doctorService := services.NewDoctorService(doctorAdapter, ratingAdapter, searchRepo)
	appointmentService := services.NewAppointmentService(appointmentAdapter, doctorAdapter, patientAdapter)

	// Initialize handlers
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService, metrics)
	doctorHandler := handlers.NewDoctorHandler(doctorService)
	patientHandler := handlers.NewPatientHandler(patientAdapter)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)
	}

	// Set up router
	router := routes.NewRouter(
		recommendationHandler,
		doctorHandler,
		patientHandler,
		appointmentHandler,
		cacheMiddleware,
		metrics,
	)
	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}
