package services

import (
	"context"
	"fmt"
	"time"

	"membership-api/internal/database"
	"membership-api/pkg/logging"

	"github.com/redis/go-redis/v9"
)

const (
	verificationCacheTTL = 15 * time.Minute
	scanRateLimitTTL     = 1 * time.Minute
)

// RedisService caches verification outcomes and rate-limits full-history
// scans. All operations are no-ops when Redis is not configured.
type RedisService struct {
	client *redis.Client
}

// NewRedisService returns a service bound to the shared Redis client, which
// may be nil.
func NewRedisService() *RedisService {
	return &RedisService{client: database.GetRedis()}
}

// CacheVerification stores a positive purchase-check outcome for the email.
// Negative outcomes are not cached: a buyer may complete a purchase and retry
// within the TTL.
func (r *RedisService) CacheVerification(ctx context.Context, email string, found bool) {
	if r.client == nil || !found {
		return
	}
	key := fmt.Sprintf("purchase_verified:%s", email)
	if err := r.client.Set(ctx, key, "1", verificationCacheTTL).Err(); err != nil {
		logging.Errorf("failed to cache verification for %s: %v", email, err)
	}
}

// GetCachedVerification returns (found, ok); ok is false on miss or when Redis
// is unavailable.
func (r *RedisService) GetCachedVerification(ctx context.Context, email string) (bool, bool) {
	if r.client == nil {
		return false, false
	}
	key := fmt.Sprintf("purchase_verified:%s", email)
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			logging.Errorf("verification cache read failed for %s: %v", email, err)
		}
		return false, false
	}
	return val == "1", true
}

// ScanAllowed reports whether a full-history scan may run for the email, and
// claims the slot when it may. Without Redis every scan is allowed.
func (r *RedisService) ScanAllowed(ctx context.Context, email string) bool {
	if r.client == nil {
		return true
	}
	key := fmt.Sprintf("scan_rate_limit:%s", email)
	ok, err := r.client.SetNX(ctx, key, "1", scanRateLimitTTL).Result()
	if err != nil {
		logging.Errorf("scan rate limit check failed for %s: %v", email, err)
		return true
	}
	return ok
}
