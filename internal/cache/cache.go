// Package cache provides a Redis-backed cache for analysis results, keyed by
// a digest of the content so identical text is never analyzed twice.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/seoforge/content-analyzer/internal/config"
	"github.com/seoforge/content-analyzer/internal/domain"
	"github.com/seoforge/content-analyzer/internal/platform/logger"
)

// ErrEmptyAddress is returned when the Redis address is not configured.
var ErrEmptyAddress = errors.New("redis address is required")

const (
	connectionTimeout = 5 * time.Second
	keyPrefix         = "analysis:"
)

// NewClient creates a Redis client from config and verifies the connection.
func NewClient(cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.URL == "" {
		return nil, ErrEmptyAddress
	}

	client := redis.NewClient(&redis.Options{
		Addr:       cfg.URL,
		Password:   cfg.Password,
		DB:         cfg.Database,
		MaxRetries: cfg.MaxRetries,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

// ResultCache stores analysis results keyed by content digest.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// NewResultCache creates a result cache with the given TTL.
func NewResultCache(client *redis.Client, ttl time.Duration, log logger.Logger) *ResultCache {
	return &ResultCache{client: client, ttl: ttl, logger: log}
}

// Key derives the cache key from every content field that influences the
// analysis, plus the analyzer version so a new release invalidates prior
// results. Identity fields (ID, URL, project) are deliberately excluded:
// the same text submitted under a different ID reuses the cached result.
func Key(content *domain.Content, analyzerVersion string) string {
	h := sha256.New()
	writeField := func(s string) {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}

	writeField(analyzerVersion)
	writeField(content.Body)
	writeField(content.Title)
	writeField(content.Keyword)
	writeField(content.Industry)
	writeField(content.Region)
	writeField(content.AuthorCredentials)
	for _, f := range content.Facts {
		writeField(f.Claim)
		writeField(strconv.FormatBool(f.Verified))
		writeField(strconv.FormatFloat(f.Confidence, 'g', -1, 64))
		writeField(f.Source)
	}

	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached result for the key, or (nil, nil) on a miss.
func (c *ResultCache) Get(ctx context.Context, key string) (*domain.AnalysisResult, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get failed: %w", err)
	}

	var result domain.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		// A corrupt entry is treated as a miss and dropped.
		if c.logger != nil {
			c.logger.Warn("dropping corrupt cache entry",
				logger.String("key", key),
				logger.Error(err))
		}
		c.client.Del(ctx, key)
		return nil, nil
	}

	return &result, nil
}

// Set stores the result under the key with the configured TTL.
func (c *ResultCache) Set(ctx context.Context, key string, result *domain.AnalysisResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set failed: %w", err)
	}

	return nil
}

// Invalidate removes a cached result.
func (c *ResultCache) Invalidate(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache delete failed: %w", err)
	}
	return nil
}
