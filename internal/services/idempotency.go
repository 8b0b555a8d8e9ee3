package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// IdempotencyKeyTTL is how long a checkout key is remembered.
const IdempotencyKeyTTL = 24 * time.Hour

// IdempotencyGuard claims request keys. Claim reports false when the key
// was already claimed and has not expired.
type IdempotencyGuard interface {
	Claim(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

type redisIdempotencyGuard struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisIdempotencyGuard stores keys as idempotent-key:<key> using SETNX.
func NewRedisIdempotencyGuard(rdb *redis.Client, ttl time.Duration) IdempotencyGuard {
	return &redisIdempotencyGuard{rdb: rdb, ttl: ttl}
}

func idempotencyRedisKey(key string) string {
	return fmt.Sprintf("idempotent-key:%s", key)
}

func (g *redisIdempotencyGuard) Claim(ctx context.Context, key string) (bool, error) {
	ok, err := g.rdb.SetNX(ctx, idempotencyRedisKey(key), "exists", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claiming idempotency key: %w", err)
	}
	return ok, nil
}

func (g *redisIdempotencyGuard) Release(ctx context.Context, key string) error {
	if err := g.rdb.Del(ctx, idempotencyRedisKey(key)).Err(); err != nil {
		return fmt.Errorf("releasing idempotency key: %w", err)
	}
	return nil
}

type memoryIdempotencyGuard struct {
	mu   sync.Mutex
	ttl  time.Duration
	keys map[string]time.Time
	now  func() time.Time
}

// NewMemoryIdempotencyGuard is the single-process fallback used when Redis
// is not configured.
func NewMemoryIdempotencyGuard(ttl time.Duration) IdempotencyGuard {
	return &memoryIdempotencyGuard{ttl: ttl, keys: make(map[string]time.Time), now: time.Now}
}

func (g *memoryIdempotencyGuard) Claim(_ context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if expiresAt, ok := g.keys[key]; ok && now.Before(expiresAt) {
		return false, nil
	}
	g.keys[key] = now.Add(g.ttl)
	return true, nil
}

func (g *memoryIdempotencyGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.keys, key)
	return nil
}
