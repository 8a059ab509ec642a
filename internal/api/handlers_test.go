package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/seoforge/content-analyzer/internal/analyzer"
	"github.com/seoforge/content-analyzer/internal/cache"
	"github.com/seoforge/content-analyzer/internal/domain"
	"github.com/seoforge/content-analyzer/internal/platform/logger"
	"github.com/seoforge/content-analyzer/internal/processor"
)

// mockLogger implements Logger for testing
type mockLogger struct{}

func (mockLogger) Debug(msg string, keysAndValues ...any) {}
func (mockLogger) Info(msg string, keysAndValues ...any)  {}
func (mockLogger) Warn(msg string, keysAndValues ...any)  {}
func (mockLogger) Error(msg string, keysAndValues ...any) {}

func setupTestRouter(t *testing.T, opts RouteOptions) *gin.Engine {
	return setupLimitedRouter(t, opts, Limits{})
}

func setupLimitedRouter(t *testing.T, opts RouteOptions, limits Limits) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	a := analyzer.New(logger.NewNop(), nil, analyzer.Config{})
	bp := processor.NewBatchProcessor(a, 2, nil, mockLogger{})
	handler := NewHandler(a, bp, nil, nil, nil, nil, limits, mockLogger{})

	router := gin.New()
	SetupRoutes(router, handler, opts)
	return router
}

func setupCachedRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})
	resultCache := cache.NewResultCache(client, time.Hour, logger.NewNop())

	a := analyzer.New(logger.NewNop(), nil, analyzer.Config{})
	bp := processor.NewBatchProcessor(a, 2, nil, mockLogger{})
	handler := NewHandler(a, bp, nil, nil, resultCache, nil, Limits{}, mockLogger{})

	router := gin.New()
	SetupRoutes(router, handler, RouteOptions{})
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAnalyzeEndpoint(t *testing.T) {
	router := setupTestRouter(t, RouteOptions{})

	body := AnalyzeRequest{Content: &domain.Content{
		ID:      "doc-1",
		Keyword: "seo reporting",
		Body: "The reporting tool collects keyword positions every morning. " +
			"Weekly summaries land in the dashboard for review.",
	}}

	w := doJSON(t, router, http.MethodPost, "/api/v1/analyze", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp AnalyzeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Result == nil {
		t.Fatal("expected a result")
	}
	if resp.Result.ContentID != "doc-1" {
		t.Errorf("expected content ID %q, got %q", "doc-1", resp.Result.ContentID)
	}
	if resp.Cached {
		t.Error("expected uncached result without a cache configured")
	}
}

func TestAnalyzeEndpointEmptyContent(t *testing.T) {
	router := setupTestRouter(t, RouteOptions{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/analyze",
		AnalyzeRequest{Content: &domain.Content{ID: "empty-1"}})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAnalyzeEndpointBadJSON(t *testing.T) {
	router := setupTestRouter(t, RouteOptions{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestDetectPhrasesEndpoint(t *testing.T) {
	router := setupTestRouter(t, RouteOptions{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/analyze/phrases",
		TextRequest{Text: "Studies show you should delve into the data."})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp PhraseDetectResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.MatchCount != 2 {
		t.Errorf("expected 2 matches, got %d: %+v", resp.MatchCount, resp.Matches)
	}
	if resp.QualityScore >= 100 {
		t.Errorf("expected a deduction for matches, got score %d", resp.QualityScore)
	}
}

func TestSanitizePhrasesEndpoint(t *testing.T) {
	router := setupTestRouter(t, RouteOptions{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/analyze/phrases/sanitize",
		TextRequest{Text: "Let's delve into the data."})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp SanitizeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 1 {
		t.Errorf("expected 1 replacement, got %d", resp.Count)
	}
	if strings.Contains(strings.ToLower(resp.Sanitized), "delve into") {
		t.Errorf("expected the phrase removed, got %q", resp.Sanitized)
	}
}

func TestAnalyzeLocalEndpoint(t *testing.T) {
	router := setupTestRouter(t, RouteOptions{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/analyze/local",
		LocalSearchRequest{Region: "UK"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["region"] != "united kingdom" {
		t.Errorf("expected region %q, got %v", "united kingdom", resp["region"])
	}
}

func TestAnalyzeEeatEndpointEmptyContent(t *testing.T) {
	router := setupTestRouter(t, RouteOptions{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/analyze/eeat",
		AnalyzeRequest{Content: &domain.Content{ID: "empty-1"}})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAnalyzeBatchEndpoint(t *testing.T) {
	router := setupTestRouter(t, RouteOptions{})

	body := BatchAnalyzeRequest{Contents: []*domain.Content{
		{ID: "batch-1", Body: "The reporting tool collects keyword positions every morning."},
		{ID: "batch-2"}, // empty body fails
	}}

	w := doJSON(t, router, http.MethodPost, "/api/v1/analyze/batch", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp BatchAnalyzeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 2 || resp.Success != 1 || resp.Failed != 1 {
		t.Errorf("expected total 2, success 1, failed 1; got %d/%d/%d",
			resp.Total, resp.Success, resp.Failed)
	}
}

func TestAnalyzeEndpointCachePerRegion(t *testing.T) {
	router := setupCachedRouter(t)

	body := "The plumbing guide covers drain maintenance schedules for " +
		"residential buildings. Inspections run every spring and autumn."

	analyze := func(region string) AnalyzeResponse {
		t.Helper()
		w := doJSON(t, router, http.MethodPost, "/api/v1/analyze",
			AnalyzeRequest{Content: &domain.Content{
				ID:     "regional-1",
				Body:   body,
				Region: region,
			}})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var resp AnalyzeResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		return resp
	}

	first := analyze("canada")
	if first.Cached {
		t.Error("expected the first analysis to miss the cache")
	}
	if first.Result.LocalSearch == nil || first.Result.LocalSearch.Region != "canada" {
		t.Fatalf("expected canada profile, got %+v", first.Result.LocalSearch)
	}

	second := analyze("australia")
	if second.Cached {
		t.Error("expected a different region to miss the cache")
	}
	if second.Result.LocalSearch == nil || second.Result.LocalSearch.Region != "australia" {
		t.Errorf("expected australia profile, got %+v", second.Result.LocalSearch)
	}

	repeat := analyze("canada")
	if !repeat.Cached {
		t.Error("expected a repeated region to hit the cache")
	}
	if repeat.Result.LocalSearch == nil || repeat.Result.LocalSearch.Region != "canada" {
		t.Errorf("expected cached canada profile, got %+v", repeat.Result.LocalSearch)
	}
}

func TestAnalyzeEndpointBodyLimit(t *testing.T) {
	router := setupLimitedRouter(t, RouteOptions{}, Limits{MaxBodyBytes: 64})

	w := doJSON(t, router, http.MethodPost, "/api/v1/analyze",
		AnalyzeRequest{Content: &domain.Content{
			ID:   "huge-1",
			Body: strings.Repeat("the quick brown fox jumps over the lazy dog ", 10),
		}})
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/api/v1/analyze",
		AnalyzeRequest{Content: &domain.Content{
			ID:   "small-1",
			Body: "A short note about drain maintenance.",
		}})
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 under the limit, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAnalyzeBatchEndpointItemLimit(t *testing.T) {
	router := setupLimitedRouter(t, RouteOptions{}, Limits{MaxBatchItems: 2})

	contents := make([]*domain.Content, 3)
	for i := range contents {
		contents[i] = &domain.Content{
			ID:   "batch-" + strconv.Itoa(i),
			Body: "The reporting tool collects keyword positions every morning.",
		}
	}

	w := doJSON(t, router, http.MethodPost, "/api/v1/analyze/batch",
		BatchAnalyzeRequest{Contents: contents})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 over the item limit, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/api/v1/analyze/batch",
		BatchAnalyzeRequest{Contents: contents[:2]})
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 at the limit, got %d: %s", w.Code, w.Body.String())
	}
}

func TestStorageEndpointsUnavailableWithoutDatabase(t *testing.T) {
	router := setupTestRouter(t, RouteOptions{})

	testCases := []struct {
		method string
		path   string
		body   any
	}{
		{method: http.MethodGet, path: "/api/v1/rules"},
		{method: http.MethodPost, path: "/api/v1/rules", body: CreateRuleRequest{
			Phrase: "x", Category: "spam", Severity: 1,
		}},
		{method: http.MethodGet, path: "/api/v1/history/doc-1"},
		{method: http.MethodGet, path: "/api/v1/stats"},
		{method: http.MethodGet, path: "/api/v1/stats/risk"},
		{method: http.MethodGet, path: "/api/v1/stats/categories"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := doJSON(t, router, tc.method, tc.path, tc.body)
			if w.Code != http.StatusServiceUnavailable {
				t.Errorf("expected 503, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestReadyEndpoint(t *testing.T) {
	router := setupTestRouter(t, RouteOptions{})

	w := doJSON(t, router, http.MethodGet, "/ready", nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestReadyEndpointNotReady(t *testing.T) {
	router := setupTestRouter(t, RouteOptions{
		Ready: func() error { return errors.New("database unreachable") },
	})

	w := doJSON(t, router, http.MethodGet, "/ready", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
}
