package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by a Store when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// Store is a string key/value store with expiry.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// RedisStore adapts a go-redis client to Store.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	return value, err
}

func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

// NewRedisClient connects to redis and pings it with a short timeout.
// Callers should run without a cache when an error is returned.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}
	return client, nil
}

// Cache memoizes TMDB search results per language and normalized title.
// Cache failures never fail a lookup; they are logged and treated as misses.
type Cache struct {
	store Store
	ttl   time.Duration
}

func NewCache(store Store, ttl time.Duration) *Cache {
	return &Cache{store: store, ttl: ttl}
}

func cacheKey(language, title string) string {
	return fmt.Sprintf("tmdb:multi:%s:%s", language, normalizeTitle(title))
}

// Get returns cached results and whether they were found.
func (c *Cache) Get(ctx context.Context, language, title string) ([]Result, bool) {
	raw, err := c.store.Get(ctx, cacheKey(language, title))
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("[MATCH] Cache read failed: %v", err)
		}
		return nil, false
	}

	var results []Result
	if err := json.Unmarshal([]byte(raw), &results); err != nil {
		log.Printf("[MATCH] Ignoring corrupt cache entry: %v", err)
		return nil, false
	}
	return results, true
}

// Put stores results for later lookups.
func (c *Cache) Put(ctx context.Context, language, title string, results []Result) {
	raw, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := c.store.Set(ctx, cacheKey(language, title), string(raw), c.ttl); err != nil {
		log.Printf("[MATCH] Cache write failed: %v", err)
	}
}
