package commands

import (
	"fmt"

	"github.com/quantive/marketcore/internal/aggregator"
	"github.com/quantive/marketcore/internal/provider"
	"github.com/quantive/marketcore/pkg/cache"
	"github.com/quantive/marketcore/pkg/config"
	"github.com/quantive/marketcore/pkg/httputil"
	"github.com/quantive/marketcore/pkg/logger"
	"github.com/quantive/marketcore/pkg/redis"
)

// app carries the shared services a command runs on.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	cache   *cache.Cache
	redis   *redis.Client
	service *aggregator.Service
}

// buildApp wires config, logging, cache, the selected provider adapter
// and the aggregator. Every command starts here so the object graph is
// assembled in exactly one place.
func buildApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if providerOverride != "" {
		cfg.Provider = providerOverride
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)
	httpClient := httputil.New(cfg, log)
	memCache := cache.New()

	p, err := provider.New(provider.Deps{
		Config: cfg,
		Logger: log,
		HTTP:   httpClient,
		Cache:  memCache,
	})
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}

	redisClient, err := redis.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	service := aggregator.New(p, redis.NewCache(redisClient, "marketcore"), cfg.TTL.Market, log)

	return &app{
		cfg:     cfg,
		log:     log,
		cache:   memCache,
		redis:   redisClient,
		service: service,
	}, nil
}

// close releases the app's external connections.
func (a *app) close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
}
