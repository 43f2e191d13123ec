package services

import (
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/Roland-02/List2Letterboxd/internal/config"
	"github.com/Roland-02/List2Letterboxd/internal/matching"
	"github.com/Roland-02/List2Letterboxd/internal/tmdb"
)

// MatchBackend is the match service selected from configuration.
//
// A configured MATCH_SERVICE_URL always wins. Otherwise a TMDB token selects
// the in-process matcher. With neither, Service is nil and entries stay
// unresolved. Matcher is set whenever a token is present, so the server can
// answer the match contract for others even while it delegates its own lookups.
type MatchBackend struct {
	Service     matching.Service
	Matcher     *tmdb.Matcher
	Description string

	redis *redis.Client
}

// NewMatchBackend builds the backend. serviceURL overrides match.ServiceURL
// when non-empty. A Redis cache that cannot be reached is skipped with a warning.
func NewMatchBackend(match config.Match, tmdbCfg config.TMDB, cacheCfg config.Cache, serviceURL string) (*MatchBackend, error) {
	if serviceURL == "" {
		serviceURL = match.ServiceURL
	}
	backend := &MatchBackend{Description: "none"}

	if tmdbCfg.Token != "" {
		client, err := tmdb.New(tmdbCfg.Token, tmdbCfg.BaseURL)
		if err != nil {
			return nil, err
		}

		opts := []tmdb.MatcherOption{tmdb.WithCandidateLimit(tmdbCfg.CandidateLimit)}
		if cacheCfg.RedisAddr != "" {
			rdb, err := tmdb.NewRedisClient(cacheCfg.RedisAddr, cacheCfg.RedisPassword, cacheCfg.RedisDB)
			if err != nil {
				log.Printf("[MATCH] Warning: lookup cache disabled: %v", err)
			} else {
				backend.redis = rdb
				opts = append(opts, tmdb.WithCache(tmdb.NewCache(tmdb.NewRedisStore(rdb), cacheCfg.TTL)))
				log.Printf("[MATCH] Caching TMDB lookups in redis at %s for %v", cacheCfg.RedisAddr, cacheCfg.TTL)
			}
		}

		backend.Matcher = tmdb.NewMatcher(client, opts...)
		backend.Service = backend.Matcher
		backend.Description = "tmdb"
	}

	if serviceURL != "" {
		backend.Service = matching.NewClient(serviceURL, match.Timeout)
		backend.Description = serviceURL
	}

	return backend, nil
}

// Merger returns a merger over the selected service, or nil when matching is unavailable.
func (b *MatchBackend) Merger(match config.Match) *matching.Merger {
	if b.Service == nil {
		return nil
	}
	return matching.NewMerger(b.Service, match.Language, match.Concurrency)
}

// Close releases the lookup cache connection, if any.
func (b *MatchBackend) Close() error {
	if b.redis != nil {
		return b.redis.Close()
	}
	return nil
}
