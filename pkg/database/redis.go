package database

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/yourusername/interview-api/internal/config"
)

// NewUniversalRedisClient создает новый клиент Redis на основе конфигурации.
// Поддерживает режимы single и sentinel.
func NewUniversalRedisClient(cfg config.RedisConfig) (redis.UniversalClient, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis configuration error: Addr must be provided")
	}

	options := &redis.UniversalOptions{
		Addrs:    []string{cfg.Addr},
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.MasterName != "" {
		// NewUniversalClient сам определит режим sentinel по MasterName
		options.MasterName = cfg.MasterName
	}

	client := redis.NewUniversalClient(options)

	// Проверяем соединение
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Addr, err)
	}

	return client, nil
}
