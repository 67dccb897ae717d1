package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Sternrassler/placeholder-proxy/internal/config"
	"github.com/Sternrassler/placeholder-proxy/internal/server"
	"github.com/Sternrassler/placeholder-proxy/pkg/cache"
	"github.com/Sternrassler/placeholder-proxy/pkg/client"
	"github.com/Sternrassler/placeholder-proxy/pkg/logging"
	"github.com/Sternrassler/placeholder-proxy/pkg/placeholder"
	"github.com/Sternrassler/placeholder-proxy/pkg/warmup"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// appOptions wires the service graph for cfg.
func appOptions(cfg config.Config) []fx.Option {
	return []fx.Option{
		fx.Supply(cfg),
		fx.StopTimeout(cfg.Server.ShutdownTimeout),
		fx.WithLogger(func(logger zerolog.Logger) fxevent.Logger {
			return &logging.FxLogger{Logger: logger.With().Str("component", "fx").Logger()}
		}),
		fx.Provide(
			provideLogger,
			provideServerConfig,
			provideCacheStore,
			provideCacheManager,
			provideClient,
			provideAPI,
			provideHandler,
			server.NewRouter,
			server.NewHTTPServer,
			provideScheduler,
		),
		fx.Invoke(func(*server.HTTPServer, *warmup.Scheduler) {}),
	}
}

func provideLogger(cfg config.Config) (zerolog.Logger, error) {
	logger, err := logging.Setup(logging.Config{
		Level:  logging.LogLevel(cfg.Log.Level),
		Pretty: cfg.Log.Pretty,
		Output: os.Stderr,
	})
	if err != nil {
		return logger, fmt.Errorf("configure logging: %w", err)
	}
	return logger, nil
}

func provideServerConfig(cfg config.Config) config.ServerConfig {
	return cfg.Server
}

func provideCacheStore(lc fx.Lifecycle, cfg config.Config, logger zerolog.Logger) (cache.Store, error) {
	switch cfg.Cache.Backend {
	case config.BackendMemory:
		return cache.NewMemoryStore(), nil
	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.Cache.RedisAddr,
			DB:   cfg.Cache.RedisDB,
		})
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := rdb.Ping(ctx).Err(); err != nil {
					return fmt.Errorf("connect to redis at %s: %w", cfg.Cache.RedisAddr, err)
				}
				logger.Info().Str("addr", cfg.Cache.RedisAddr).Msg("Connected to Redis")
				return nil
			},
			OnStop: func(context.Context) error {
				return rdb.Close()
			},
		})
		return cache.NewRedisStore(rdb), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

func provideCacheManager(store cache.Store, cfg config.Config) *cache.Manager {
	return cache.NewManager(store, cache.WithTTL(cfg.Cache.TTL))
}

func provideClient(cfg config.Config) (*client.Client, error) {
	cc := client.DefaultConfig()
	cc.BaseURL = cfg.Upstream.BaseURL
	cc.UserAgent = cfg.Upstream.UserAgent
	cc.Timeout = cfg.Upstream.Timeout
	cc.MaxRetries = cfg.Upstream.MaxRetries
	cc.RetryDelay = cfg.Upstream.RetryDelay
	cc.CircuitBreaker = cfg.Upstream.CircuitBreaker
	return client.New(cc)
}

func provideAPI(c *client.Client, m *cache.Manager) *placeholder.API {
	return placeholder.New(c, m)
}

func provideHandler(api *placeholder.API, logger zerolog.Logger) *server.Handler {
	return server.NewHandler(api, server.WithLogger(logger.With().Str("component", "http").Logger()))
}

// provideScheduler returns nil when warm-up is disabled.
func provideScheduler(lc fx.Lifecycle, cfg config.Config, api *placeholder.API, logger zerolog.Logger) (*warmup.Scheduler, error) {
	if cfg.Warmup.Schedule == "" {
		logger.Info().Msg("Cache warm-up disabled")
		return nil, nil
	}

	warmer := warmup.NewWarmer(warmup.Config{
		MaxConcurrency: cfg.Warmup.Concurrency,
		Timeout:        cfg.Warmup.Timeout,
	})
	sched, err := warmup.NewScheduler(cfg.Warmup.Schedule, warmer, warmup.ResourceTasks(api), logger)
	if err != nil {
		return nil, err
	}

	var cancel context.CancelFunc
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			sched.Start()
			var ctx context.Context
			ctx, cancel = context.WithCancel(context.Background())
			go func() {
				if _, err := sched.RunNow(ctx); err != nil {
					logger.Warn().Err(err).Msg("Initial cache warm-up finished with errors")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cancel != nil {
				cancel()
			}
			return sched.Stop(ctx)
		},
	})
	return sched, nil
}
