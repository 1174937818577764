package cache

import (
	"github.com/erp/saleflow/internal/domain/catalog"
	"github.com/erp/saleflow/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewViewCache returns a Redis cache when Redis is enabled and reachable.
// Otherwise it falls back to an in-memory cache.
func NewViewCache(cfg config.RedisConfig, logger *zap.Logger) catalog.ViewCache {
	if !cfg.Enabled {
		logger.Info("Redis disabled, using in-memory view cache")
		return NewInMemoryViewCache(cfg.ViewTTL)
	}

	client, err := NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory view cache",
			zap.String("addr", cfg.Addr()),
			zap.Error(err),
		)
		return NewInMemoryViewCache(cfg.ViewTTL)
	}

	logger.Info("Using Redis view cache", zap.String("addr", cfg.Addr()))
	return NewRedisViewCache(client, "", cfg.ViewTTL)
}
