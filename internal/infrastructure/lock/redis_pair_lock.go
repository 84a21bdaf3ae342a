package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/shopsync/backend/internal/domain/listing"
)

// RedisPairLock implements PairLocker using Redis SETNX leases
// This is suitable for distributed deployments where multiple instances
// operate on the same listing rows
type RedisPairLock struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	retry     time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisPairLock creates a new Redis-based pair lock
func NewRedisPairLock(cfg RedisConfig) (*RedisPairLock, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisPairLock{
		client:    client,
		keyPrefix: "listing:pairlock:",
		ttl:       30 * time.Second,
		retry:     100 * time.Millisecond,
	}, nil
}

// NewRedisPairLockWithClient creates a pair lock with an existing Redis client
// This is useful for testing or when sharing a client across components
func NewRedisPairLockWithClient(client *redis.Client, keyPrefix string) *RedisPairLock {
	if keyPrefix == "" {
		keyPrefix = "listing:pairlock:"
	}
	return &RedisPairLock{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       30 * time.Second,
		retry:     100 * time.Millisecond,
	}
}

// Acquire takes a short lease on the (product, platform) pair, polling until
// the current holder releases, the lease expires, or the context is
// cancelled. The TTL bounds how long a crashed holder can block the pair.
func (l *RedisPairLock) Acquire(ctx context.Context, productID, platformID uuid.UUID) (func(), error) {
	key := l.keyPrefix + pairKey(productID, platformID)
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire pair lock: %w", err)
		}
		if ok {
			release := func() {
				// Only delete the lease if we still hold it; an expired lease
				// may have been re-acquired by another instance.
				releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				l.client.Eval(releaseCtx, releaseScript, []string{key}, token)
			}
			return release, nil
		}

		select {
		case <-time.After(l.retry):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Close closes the Redis client
func (l *RedisPairLock) Close() error {
	return l.client.Close()
}

// releaseScript deletes the lease only when the stored token matches
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

// Ensure RedisPairLock implements PairLocker
var _ listing.PairLocker = (*RedisPairLock)(nil)
