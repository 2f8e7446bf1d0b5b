// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"motoschool/config"

	"github.com/go-redis/redis/v8"
)

var (
	// SessionCacheClient holds active checkout sessions.
	SessionCacheClient *redis.Client
	// ContentCacheClient holds cached CMS pages, menus and booking settings.
	ContentCacheClient *redis.Client
)

// InitSessionCache initializes the Redis client for checkout sessions.
func InitSessionCache() {
	SessionCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := SessionCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Session Cache): %v", err)
	}
}

// GetSessionCacheClient returns the checkout session cache client.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		InitSessionCache()
	}
	return SessionCacheClient
}

// InitContentCache initializes the Redis client for content caching.
func InitContentCache() {
	ContentCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisContentDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := ContentCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Content Cache): %v", err)
	}
}

// GetContentCacheClient returns the content cache client.
func GetContentCacheClient() *redis.Client {
	if ContentCacheClient == nil {
		InitContentCache()
	}
	return ContentCacheClient
}

// InitRedis initializes every Redis client used by the app.
func InitRedis() {
	InitSessionCache()
	InitContentCache()
}
