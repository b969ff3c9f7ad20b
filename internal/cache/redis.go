package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"kegama-backend/internal/config"
)

// Cache keys
const (
	RackKey          = "rack:floors"
	RoomStatsKey     = "rooms:stats"
	SettingsKey      = "settings:admin"
	AnalyticsKeyFmt  = "analytics:%s"
	DashboardStatKey = "dashboard:stats"
)

var client *redis.Client

// Init connects to Redis. On failure the client stays nil and every cache
// call becomes a no-op, so the service keeps working without Redis.
func Init(cfg *config.Config) error {
	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client, nil when Redis is unavailable.
func GetClient() *redis.Client {
	return client
}

// GetCached returns cached data for a key.
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL.
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidatePattern removes all keys matching a glob pattern.
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateKeys removes specific cache keys.
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// AnalyticsKey builds the cache key for one analytics granularity.
func AnalyticsKey(granularity string) string {
	return fmt.Sprintf(AnalyticsKeyFmt, granularity)
}

// InvalidateGuestCaches clears everything derived from registrations.
// Called on guest create, edit, clone, delete, and status transitions.
func InvalidateGuestCaches(ctx context.Context) {
	InvalidatePattern(ctx, "analytics:*")
	InvalidateKeys(ctx, RackKey, RoomStatsKey, DashboardStatKey)
}

// InvalidateRoomCaches clears room-derived caches.
// Called on bulk room updates, housekeeping, and rack repairs.
func InvalidateRoomCaches(ctx context.Context) {
	InvalidateKeys(ctx, RackKey, RoomStatsKey)
}

// InvalidateSettingsCache clears the settings singleton cache.
func InvalidateSettingsCache(ctx context.Context) {
	InvalidateKeys(ctx, SettingsKey)
}

// IsHealthy returns true if the Redis connection is working.
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}

// LogStatus prints the cache state at startup.
func LogStatus(err error) {
	if err != nil {
		log.Printf("[Redis] Unavailable, running without cache: %v", err)
		return
	}
	log.Println("[Redis] Connected")
}
