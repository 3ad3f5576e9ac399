package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is the global redis client (OTP storage)
var Redis *redis.Client

// ConnectRedis establishes connection to Redis
func ConnectRedis(cfg *Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	Redis = client

	log.Printf("✅ Redis connected successfully [%s]", cfg.Redis.Addr)
	return client, nil
}

// RedisHealthCheck pings redis
func RedisHealthCheck(ctx context.Context) error {
	if Redis == nil {
		return fmt.Errorf("redis is not connected")
	}
	return Redis.Ping(ctx).Err()
}

// CloseRedis closes the redis connection
func CloseRedis() error {
	if Redis == nil {
		return nil
	}
	return Redis.Close()
}
