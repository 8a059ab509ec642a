package cache_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/seoforge/content-analyzer/internal/cache"
	"github.com/seoforge/content-analyzer/internal/config"
	"github.com/seoforge/content-analyzer/internal/domain"
	"github.com/seoforge/content-analyzer/internal/platform/logger"
)

func newTestCache(t *testing.T) (*cache.ResultCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})

	return cache.NewResultCache(client, time.Hour, logger.NewNop()), mr
}

func keyContent() *domain.Content {
	return &domain.Content{
		ID:                "doc-1",
		Title:             "Plumber marketing guide",
		Body:              "some body",
		Keyword:           "emergency plumber",
		Industry:          "plumbing",
		Region:            "canada",
		AuthorCredentials: "Licensed plumber, 12 years",
		Facts: []domain.FactCheck{
			{Claim: "founded in 2010", Verified: true, Confidence: 0.9, Source: "registry"},
		},
	}
}

func TestKey(t *testing.T) {
	base := keyContent()
	key := cache.Key(base, "2.1.0")

	if !strings.HasPrefix(key, "analysis:") {
		t.Errorf("expected analysis: prefix, got %q", key)
	}
	if key != cache.Key(keyContent(), "2.1.0") {
		t.Error("expected deterministic keys for identical input")
	}
	if key == cache.Key(base, "2.2.0") {
		t.Error("expected a new analyzer version to produce a new key")
	}

	mutations := map[string]func(*domain.Content){
		"body":     func(c *domain.Content) { c.Body = "other body" },
		"title":    func(c *domain.Content) { c.Title = "Electrician marketing guide" },
		"keyword":  func(c *domain.Content) { c.Keyword = "licensed electrician" },
		"industry": func(c *domain.Content) { c.Industry = "electrical" },
		"region":   func(c *domain.Content) { c.Region = "australia" },
		"author":   func(c *domain.Content) { c.AuthorCredentials = "" },
		"facts":    func(c *domain.Content) { c.Facts[0].Verified = false },
	}
	for name, mutate := range mutations {
		changed := keyContent()
		mutate(changed)
		if cache.Key(changed, "2.1.0") == key {
			t.Errorf("expected a different key when %s changes", name)
		}
	}
}

func TestKeyIgnoresIdentityFields(t *testing.T) {
	base := keyContent()
	other := keyContent()
	other.ID = "doc-2"
	other.ProjectID = "project-7"
	other.URL = "https://example.com/duplicate"

	if cache.Key(base, "2.1.0") != cache.Key(other, "2.1.0") {
		t.Error("expected identical text under a different identity to share a key")
	}
}

func TestResultCache_RoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	key := cache.Key(&domain.Content{Body: "the article body"}, "2.1.0")
	stored := &domain.AnalysisResult{
		ContentID:       "doc-1",
		OverallScore:    74,
		RiskLevel:       domain.RiskLow,
		Confidence:      0.7,
		AnalyzerVersion: "2.1.0",
	}

	if err := c.Set(ctx, key, stored); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected a cache hit")
	}
	if got.ContentID != "doc-1" || got.OverallScore != 74 || got.RiskLevel != domain.RiskLow {
		t.Errorf("cached result mangled: %+v", got)
	}
}

func TestResultCache_Miss(t *testing.T) {
	c, _ := newTestCache(t)

	got, err := c.Get(context.Background(), cache.Key(&domain.Content{Body: "never stored"}, "2.1.0"))
	if err != nil {
		t.Fatalf("expected a silent miss, got error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil result on miss, got %+v", got)
	}
}

func TestResultCache_CorruptEntryDropped(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	key := cache.Key(&domain.Content{Body: "corrupted"}, "2.1.0")
	if err := mr.Set(key, "not json at all"); err != nil {
		t.Fatalf("failed to seed corrupt entry: %v", err)
	}

	got, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("expected corrupt entry treated as miss, got error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil result, got %+v", got)
	}
	if mr.Exists(key) {
		t.Error("expected corrupt entry to be deleted")
	}
}

func TestResultCache_Invalidate(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	key := cache.Key(&domain.Content{Body: "to invalidate"}, "2.1.0")
	if err := c.Set(ctx, key, &domain.AnalysisResult{ContentID: "doc-2"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := c.Invalidate(ctx, key); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mr.Exists(key) {
		t.Error("expected key removed after invalidation")
	}
}

func TestNewClient_EmptyAddress(t *testing.T) {
	_, err := cache.NewClient(config.RedisConfig{})
	if !errors.Is(err, cache.ErrEmptyAddress) {
		t.Errorf("expected ErrEmptyAddress, got %v", err)
	}
}

func TestNewClient_Connects(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := cache.NewClient(config.RedisConfig{URL: mr.Addr()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()

	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Errorf("expected live connection, got %v", err)
	}
}
