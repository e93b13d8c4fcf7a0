package storage

import (
	"context"
	"fmt"

	"github.com/nikbrunner/nexus/internal/config"
	"github.com/nikbrunner/nexus/internal/logger"
)

// Open opens the backend selected by cfg.Backend.
func Open(ctx context.Context, cfg config.StorageConfig, log logger.Logger) (KV, error) {
	switch cfg.Backend {
	case "", "file":
		log.Debug("using file storage", logger.String("path", cfg.Path))
		return NewFileKV(cfg.Path), nil
	case "sqlite":
		log.Debug("using sqlite storage", logger.String("path", cfg.SQLitePath))
		return NewSQLiteKV(cfg.SQLitePath)
	case "redis":
		client, err := ConnectRedis(ctx, cfg.Redis, log)
		if err != nil {
			return nil, err
		}
		return NewRedisKV(client, cfg.Redis.Prefix), nil
	case "memory":
		return NewMemoryKV(), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}
