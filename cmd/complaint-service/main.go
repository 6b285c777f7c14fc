package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"complaint-service/internal/auth"
	"complaint-service/internal/config"
	"complaint-service/internal/db"
	"complaint-service/internal/events"
	httphandler "complaint-service/internal/http"
	"complaint-service/internal/http/middleware"
	"complaint-service/internal/logger"
	"complaint-service/internal/repository"
	"complaint-service/internal/service"
	"complaint-service/internal/tracking"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	complaintStore, contentStore, health := openStores(cfg, log)

	publisher := events.Publisher(events.Nop{})
	if cfg.Events.Enabled() {
		redisClient, err := events.NewRedisClient(ctx, cfg.Events.RedisAddr, cfg.Events.RedisPassword, cfg.Events.RedisDB)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		publisher = events.NewRedisPublisher(redisClient, cfg.Events.Channel)
		log.Info().Str("channel", cfg.Events.Channel).Msg("publishing complaint events")
	}

	generator := tracking.NewGenerator(cfg.Tracking.Prefix, tracking.WithMaxAttempts(cfg.Tracking.MaxAttempts))

	complaintService := service.NewComplaintService(complaintStore, generator, publisher, time.Now, log)
	statisticsService := service.NewStatisticsService(complaintStore, time.Now, cfg.Stats.TrendMonths)
	contentService := service.NewContentService(contentStore)

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	submitLimiter := middleware.NewClientRateLimiter(cfg.RateLimit.SubmitPerMinute, cfg.RateLimit.SubmitBurst, time.Now)

	handler := httphandler.NewHandler(complaintService, statisticsService, contentService, health, log)
	router := httphandler.NewRouter(handler, middleware.Auth(tokenParser), middleware.RateLimit(submitLimiter), log, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	log.Info().Str("addr", addr).Str("store", cfg.Store.Driver).Msg("starting complaint service")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
	log.Info().Msg("complaint service stopped")
}

func openStores(cfg *config.Config, log zerolog.Logger) (repository.ComplaintStore, repository.ContentStore, httphandler.HealthFunc) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		log.Warn().Msg("using in-memory store; complaints are lost on restart")
		return repository.NewMemoryComplaintStore(nil), repository.NewSeededContentStore(time.Now()), nil
	}

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	health := func(ctx context.Context) error {
		return db.HealthCheck(ctx, database)
	}
	return repository.NewComplaintRepository(database, nil), repository.NewContentRepository(database), health
}
