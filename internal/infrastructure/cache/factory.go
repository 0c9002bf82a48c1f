package cache

import (
	"fmt"

	"github.com/dispensary/backend/internal/domain/shared"
	"github.com/dispensary/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewIdempotencyStore builds the idempotency store selected by configuration.
// When Redis is enabled but unreachable the store falls back to in-memory,
// which does not share state across instances.
func NewIdempotencyStore(cfg config.RedisConfig, logger *zap.Logger) (shared.IdempotencyStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if !cfg.Enabled {
		logger.Info("using in-memory idempotency store")
		return NewInMemoryIdempotencyStore(), nil
	}

	store, err := NewRedisIdempotencyStore(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory idempotency store",
			zap.Error(fmt.Errorf("redis idempotency store: %w", err)),
		)
		return NewInMemoryIdempotencyStore(), nil
	}

	logger.Info("using Redis idempotency store", zap.String("addr", cfg.Addr()))
	return store, nil
}
