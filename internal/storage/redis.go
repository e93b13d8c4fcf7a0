package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nikbrunner/nexus/internal/config"
	"github.com/nikbrunner/nexus/internal/logger"
	"github.com/redis/go-redis/v9"
)

// RedisKV implements KV on Redis. Keys are stored under a prefix so several
// profiles can share one server.
type RedisKV struct {
	client *redis.Client
	prefix string
}

// NewRedisKV wraps an already connected client.
func NewRedisKV(client *redis.Client, prefix string) *RedisKV {
	return &RedisKV{client: client, prefix: prefix}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *RedisKV) Close() error {
	return r.client.Close()
}

// ConnectRedis creates a client and pings it with exponential backoff until
// it answers or cfg.ConnectTimeout runs out.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig, log logger.Logger) (*redis.Client, error) {
	if cfg.ConnectTimeout <= 0 || cfg.RetryInterval <= 0 || cfg.MaxWait <= 0 || cfg.PingTimeout <= 0 {
		return nil, fmt.Errorf("redis timeouts must be > 0 (connect=%v retry=%v max_wait=%v ping=%v)",
			cfg.ConnectTimeout, cfg.RetryInterval, cfg.MaxWait, cfg.PingTimeout)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	log.Info("connecting to redis",
		logger.String("addr", cfg.Addr),
		logger.Duration("timeout", cfg.ConnectTimeout))

	start := time.Now()
	wait := cfg.RetryInterval
	for attempt := 1; ; attempt++ {
		pingCtx, pingCancel := context.WithTimeout(ctx, cfg.PingTimeout)
		err := client.Ping(pingCtx).Err()
		pingCancel()

		if err == nil {
			log.Info("connected to redis",
				logger.String("addr", cfg.Addr),
				logger.Int("attempts", attempt),
				logger.Duration("elapsed", time.Since(start)))
			return client, nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			client.Close()
			log.Error("redis unavailable",
				logger.String("addr", cfg.Addr),
				logger.Int("attempts", attempt),
				logger.Error(err))
			return nil, fmt.Errorf("redis unavailable at %s after %d attempts: %w", cfg.Addr, attempt, err)
		case <-timer.C:
			log.Warn("redis connection failed, retrying",
				logger.String("addr", cfg.Addr),
				logger.Int("attempt", attempt),
				logger.Duration("next_retry_in", wait),
				logger.Error(err))
			wait *= 2
			if wait > cfg.MaxWait {
				wait = cfg.MaxWait
			}
		}
	}
}
