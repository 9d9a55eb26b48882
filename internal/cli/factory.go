package cli

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/cursorkeep"
	"github.com/aretw0/cursorkeep/internal/config"
	"github.com/aretw0/cursorkeep/pkg/adapters/memory"
	"github.com/aretw0/cursorkeep/pkg/adapters/redis"
)

// OpenKeeper builds a Keeper for the configured backend.
// reg may be nil, in which case no metrics are registered.
func OpenKeeper(cfg config.Config, logger *slog.Logger, reg prometheus.Registerer) (*cursorkeep.Keeper, error) {
	opts := []cursorkeep.Option{
		cursorkeep.WithRetentionDays(cfg.RetentionDays),
		cursorkeep.WithLogger(logger),
	}
	if reg != nil {
		opts = append(opts, cursorkeep.WithMetricsRegisterer(reg))
	}

	switch cfg.Backend {
	case config.BackendFile:
		opts = append(opts, cursorkeep.WithPath(cfg.SessionFile))
	case config.BackendMemory:
		opts = append(opts, cursorkeep.WithBackend(memory.NewStore()))
	case config.BackendRedis:
		var redisOpts []redis.Option
		redisOpts = append(redisOpts, redis.WithLogger(logger))
		if cfg.Redis.Key != "" {
			redisOpts = append(redisOpts, redis.WithKey(cfg.Redis.Key))
		}
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, redisOpts...)
		opts = append(opts, cursorkeep.WithBackend(store))
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	keeper, err := cursorkeep.Open(opts...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Session store opened", "backend", cfg.Backend, "retention_days", cfg.RetentionDays)
	return keeper, nil
}

// Setup loads the configuration and opens the keeper in one step.
func Setup(opts Options, reg prometheus.Registerer) (*cursorkeep.Keeper, config.Config, *slog.Logger, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, config.Config{}, nil, err
	}
	logger, err := createLogger(cfg.Log)
	if err != nil {
		return nil, config.Config{}, nil, err
	}
	keeper, err := OpenKeeper(cfg, logger, reg)
	if err != nil {
		return nil, config.Config{}, nil, err
	}
	return keeper, cfg, logger, nil
}
