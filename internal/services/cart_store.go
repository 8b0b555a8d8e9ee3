package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"foodie_express_backend/internal/models"
	"foodie_express_backend/pkg/utils"

	"github.com/go-redis/redis/v8"
)

// CartStore keeps carts outside the relational store. Load returns an empty
// cart when none exists.
type CartStore interface {
	Load(ctx context.Context, customerID int64) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context, customerID int64) error
}

// --- In-memory store ---

type memoryCartEntry struct {
	lines     []models.CartLine
	expiresAt time.Time
}

type memoryCartStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	carts map[int64]memoryCartEntry
	now   func() time.Time
}

// NewMemoryCartStore keeps carts in process memory. A ttl of zero disables
// expiry.
func NewMemoryCartStore(ttl time.Duration) CartStore {
	return &memoryCartStore{ttl: ttl, carts: make(map[int64]memoryCartEntry), now: time.Now}
}

func (s *memoryCartStore) Load(_ context.Context, customerID int64) (*models.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := models.NewCart(customerID)
	entry, ok := s.carts[customerID]
	if !ok {
		return cart, nil
	}
	if s.ttl > 0 && s.now().After(entry.expiresAt) {
		delete(s.carts, customerID)
		return cart, nil
	}
	cart.Lines = append(cart.Lines, entry.lines...)
	return cart, nil
}

func (s *memoryCartStore) Save(_ context.Context, cart *models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]models.CartLine, len(cart.Lines))
	copy(lines, cart.Lines)
	s.carts[cart.CustomerID] = memoryCartEntry{lines: lines, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *memoryCartStore) Delete(_ context.Context, customerID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, customerID)
	return nil
}

// --- Redis store ---

type redisCartStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisCartStore keeps carts as JSON under cart:<customerID>, refreshing
// the TTL on every save.
func NewRedisCartStore(rdb *redis.Client, ttl time.Duration) CartStore {
	return &redisCartStore{rdb: rdb, ttl: ttl}
}

func cartKey(customerID int64) string {
	return "cart:" + utils.FormatID(customerID)
}

func (s *redisCartStore) Load(ctx context.Context, customerID int64) (*models.Cart, error) {
	cart := models.NewCart(customerID)
	raw, err := s.rdb.Get(ctx, cartKey(customerID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return cart, nil
		}
		return nil, fmt.Errorf("loading cart %d: %w", customerID, err)
	}
	if err := json.Unmarshal([]byte(raw), cart); err != nil {
		return nil, fmt.Errorf("decoding cart %d: %w", customerID, err)
	}
	cart.CustomerID = customerID
	return cart, nil
}

func (s *redisCartStore) Save(ctx context.Context, cart *models.Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encoding cart %d: %w", cart.CustomerID, err)
	}
	if err := s.rdb.Set(ctx, cartKey(cart.CustomerID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("saving cart %d: %w", cart.CustomerID, err)
	}
	return nil
}

func (s *redisCartStore) Delete(ctx context.Context, customerID int64) error {
	if err := s.rdb.Del(ctx, cartKey(customerID)).Err(); err != nil {
		return fmt.Errorf("deleting cart %d: %w", customerID, err)
	}
	return nil
}
