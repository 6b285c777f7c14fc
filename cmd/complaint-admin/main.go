package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"complaint-service/internal/cli"
	"complaint-service/internal/config"
	"complaint-service/internal/db"
	"complaint-service/internal/events"
	"complaint-service/internal/logger"
	"complaint-service/internal/repository"
	"complaint-service/internal/service"
	"complaint-service/internal/tracking"
)

func main() {
	cmd := cli.NewRootCommand(openBackend)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}

func openBackend(ctx context.Context) (*cli.Backend, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if cfg.Store.Driver != config.StoreDriverPostgres {
		return nil, nil, fmt.Errorf("complaint-admin needs STORE_DRIVER=%s, got %q", config.StoreDriverPostgres, cfg.Store.Driver)
	}

	log := logger.New(cfg.Environment)
	database, err := db.New(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	publisher := events.Publisher(events.Nop{})
	var redisClient *redis.Client
	if cfg.Events.Enabled() {
		redisClient, err = events.NewRedisClient(ctx, cfg.Events.RedisAddr, cfg.Events.RedisPassword, cfg.Events.RedisDB)
		if err != nil {
			if sqlDB, dbErr := database.DB(); dbErr == nil {
				_ = sqlDB.Close()
			}
			return nil, nil, err
		}
		publisher = events.NewRedisPublisher(redisClient, cfg.Events.Channel)
	}
	closeFn := func() {
		if redisClient != nil {
			_ = redisClient.Close()
		}
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	store := repository.NewComplaintRepository(database, nil)
	generator := tracking.NewGenerator(cfg.Tracking.Prefix, tracking.WithMaxAttempts(cfg.Tracking.MaxAttempts))

	return &cli.Backend{
		Complaints: service.NewComplaintService(store, generator, publisher, time.Now, log),
		Statistics: service.NewStatisticsService(store, time.Now, cfg.Stats.TrendMonths),
	}, closeFn, nil
}
