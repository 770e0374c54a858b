package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

const dashboardSummaryKey = "dashboard:summary"

// InitRedis initializes the Redis client
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	// Test the connection
	ctx := context.Background()
	_, err = RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

// SetDriverAvailability mirrors a driver's availability flag into Redis so
// dispatch views can read it without hitting the database.
func SetDriverAvailability(ctx context.Context, driverID uint, isAvailable bool) error {
	key := fmt.Sprintf("driver:availability:%d", driverID)
	value := "true"
	if !isAvailable {
		value = "false"
	}
	return RedisClient.Set(ctx, key, value, time.Hour).Err()
}

// GetDriverAvailability retrieves driver availability status
func GetDriverAvailability(ctx context.Context, driverID uint) (bool, error) {
	key := fmt.Sprintf("driver:availability:%d", driverID)
	result, err := RedisClient.Get(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return result == "true", nil
}

// CacheDashboardSummary stores the rendered dashboard summary JSON for a
// short window.
func CacheDashboardSummary(ctx context.Context, payload []byte) error {
	return RedisClient.Set(ctx, dashboardSummaryKey, payload, time.Minute).Err()
}

// GetCachedDashboardSummary returns the cached dashboard summary, or
// redis.Nil when the cache is cold.
func GetCachedDashboardSummary(ctx context.Context) ([]byte, error) {
	return RedisClient.Get(ctx, dashboardSummaryKey).Bytes()
}

// InvalidateDashboardCache drops the cached summary after a booking or
// expense write.
func InvalidateDashboardCache(ctx context.Context) {
	RedisClient.Del(ctx, dashboardSummaryKey)
}
