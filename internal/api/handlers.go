// Package api implements the HTTP API for the content analyzer.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/seoforge/content-analyzer/internal/analyzer"
	"github.com/seoforge/content-analyzer/internal/cache"
	"github.com/seoforge/content-analyzer/internal/database"
	"github.com/seoforge/content-analyzer/internal/domain"
	"github.com/seoforge/content-analyzer/internal/processor"
	"github.com/seoforge/content-analyzer/internal/telemetry"
)

const defaultHistoryLimit = 20

// Limits holds request-size caps enforced by the handlers.
type Limits struct {
	MaxBodyBytes  int
	MaxBatchItems int
}

// Logger defines the logging interface.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Handler handles HTTP requests for the analyzer API.
type Handler struct {
	analyzer       *analyzer.Analyzer
	batchProcessor *processor.BatchProcessor
	rulesRepo      *database.PhraseRulesRepository
	historyRepo    *database.AnalysisHistoryRepository
	resultCache    *cache.ResultCache
	telemetry      *telemetry.Provider
	limits         Limits
	logger         Logger
}

// NewHandler creates a new API handler. rulesRepo, historyRepo, resultCache,
// and telemetry may be nil; the corresponding endpoints degrade gracefully.
// Zero-valued limits disable the corresponding cap.
func NewHandler(
	a *analyzer.Analyzer,
	batchProcessor *processor.BatchProcessor,
	rulesRepo *database.PhraseRulesRepository,
	historyRepo *database.AnalysisHistoryRepository,
	resultCache *cache.ResultCache,
	tp *telemetry.Provider,
	limits Limits,
	logger Logger,
) *Handler {
	return &Handler{
		analyzer:       a,
		batchProcessor: batchProcessor,
		rulesRepo:      rulesRepo,
		historyRepo:    historyRepo,
		resultCache:    resultCache,
		telemetry:      tp,
		limits:         limits,
		logger:         logger,
	}
}

// Analyze handles POST /api/v1/analyze.
func (h *Handler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid analyze request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.limits.MaxBodyBytes > 0 && len(req.Content.Body) > h.limits.MaxBodyBytes {
		h.logger.Warn("rejecting oversized content",
			"content_id", req.Content.ID,
			"body_bytes", len(req.Content.Body),
			"max_body_bytes", h.limits.MaxBodyBytes,
		)
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "content body exceeds size limit"})
		return
	}

	ctx := c.Request.Context()

	if cached := h.cachedResult(ctx, req.Content); cached != nil {
		c.JSON(http.StatusOK, AnalyzeResponse{Result: cached, Cached: true})
		return
	}

	h.logger.Info("analyzing content",
		"content_id", req.Content.ID,
		"keyword", req.Content.Keyword,
	)

	result, err := h.analyzer.Analyze(ctx, req.Content)
	if err != nil {
		h.respondAnalysisError(c, req.Content.ID, err)
		return
	}

	h.storeResult(ctx, req.Content, result)
	h.saveHistory(ctx, req.Content, result)

	c.JSON(http.StatusOK, AnalyzeResponse{Result: result})
}

// AnalyzeBatch handles POST /api/v1/analyze/batch.
func (h *Handler) AnalyzeBatch(c *gin.Context) {
	var req BatchAnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid batch analyze request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.limits.MaxBatchItems > 0 && len(req.Contents) > h.limits.MaxBatchItems {
		h.logger.Warn("rejecting oversized batch",
			"batch_size", len(req.Contents),
			"max_batch_items", h.limits.MaxBatchItems,
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "batch exceeds item limit"})
		return
	}

	h.logger.Info("batch analyzing content", "batch_size", len(req.Contents))

	if h.telemetry != nil {
		h.telemetry.RecordBatchSize(len(req.Contents))
	}

	results, err := h.batchProcessor.Process(c.Request.Context(), req.Contents)
	if err != nil {
		h.logger.Error("batch analysis failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items := make([]BatchItemResult, 0, len(results))
	success := 0
	failed := 0
	for _, result := range results {
		item := BatchItemResult{ContentID: result.Content.ID}
		if result.Error != nil {
			item.Error = result.Error.Error()
			failed++
		} else {
			item.Result = result.Result
			success++
			h.saveHistory(c.Request.Context(), result.Content, result.Result)
		}
		items = append(items, item)
	}

	h.logger.Info("batch analysis completed",
		"total", len(results),
		"success", success,
		"failed", failed,
	)

	c.JSON(http.StatusOK, BatchAnalyzeResponse{
		Results: items,
		Total:   len(results),
		Success: success,
		Failed:  failed,
	})
}

// DetectPhrases handles POST /api/v1/analyze/phrases.
func (h *Handler) DetectPhrases(c *gin.Context) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	detector := h.analyzer.Phrases()
	matches := detector.Detect(req.Text)
	if matches == nil {
		matches = []domain.PhraseMatch{}
	}

	c.JSON(http.StatusOK, PhraseDetectResponse{
		Matches:      matches,
		MatchCount:   len(matches),
		QualityScore: detector.QualityScore(req.Text, matches),
	})
}

// SanitizePhrases handles POST /api/v1/analyze/phrases/sanitize.
func (h *Handler) SanitizePhrases(c *gin.Context) {
	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sanitized, applied := h.analyzer.Phrases().Sanitize(req.Text)
	if applied == nil {
		applied = []domain.PhraseMatch{}
	}

	c.JSON(http.StatusOK, SanitizeResponse{
		Sanitized:    sanitized,
		Replacements: applied,
		Count:        len(applied),
	})
}

// DetectHallucinations handles POST /api/v1/analyze/hallucinations.
func (h *Handler) DetectHallucinations(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.analyzer.Hallucination().Detect(req.Content)

	c.JSON(http.StatusOK, result)
}

// AnalyzeEeat handles POST /api/v1/analyze/eeat.
func (h *Handler) AnalyzeEeat(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.analyzer.Eeat().Analyze(req.Content)
	if err != nil {
		h.respondAnalysisError(c, req.Content.ID, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// AnalyzeLocal handles POST /api/v1/analyze/local.
func (h *Handler) AnalyzeLocal(c *gin.Context) {
	var req LocalSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.analyzer.LocalSearch().Analyze(req.Region)

	c.JSON(http.StatusOK, result)
}

// ListRules handles GET /api/v1/rules.
func (h *Handler) ListRules(c *gin.Context) {
	if h.rulesRepo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "rule storage not configured"})
		return
	}

	h.logger.Debug("listing phrase rules")

	var enabled *bool
	if v := c.Query("enabled"); v != "" {
		b := v == "true"
		enabled = &b
	}

	rules, err := h.rulesRepo.List(c.Request.Context(), c.Query("category"), enabled)
	if err != nil {
		h.logger.Error("failed to list rules", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load rules"})
		return
	}

	response := make([]RuleResponse, len(rules))
	for i, rule := range rules {
		response[i] = toRuleResponse(rule)
	}

	c.JSON(http.StatusOK, RulesListResponse{
		Rules:        response,
		Total:        len(response),
		BuiltinCount: analyzer.BuiltinPhraseCount(),
	})
}

// CreateRule handles POST /api/v1/rules.
func (h *Handler) CreateRule(c *gin.Context) {
	if h.rulesRepo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "rule storage not configured"})
		return
	}

	var req CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create rule request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule := fromCreateRequest(&req)
	if err := analyzer.ValidatePhraseRule(rule); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.logger.Info("creating phrase rule", "phrase", rule.Phrase, "category", rule.Category)

	if err := h.rulesRepo.Create(c.Request.Context(), rule); err != nil {
		h.logger.Error("failed to create rule", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create rule"})
		return
	}

	h.reloadDetectorRules(c.Request.Context())

	h.logger.Info("rule created", "id", rule.ID)

	c.JSON(http.StatusCreated, toRuleResponse(rule))
}

// UpdateRule handles PUT /api/v1/rules/:id.
func (h *Handler) UpdateRule(c *gin.Context) {
	if h.rulesRepo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "rule storage not configured"})
		return
	}

	ruleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rule ID"})
		return
	}

	var req CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update rule request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule, err := h.rulesRepo.GetByID(c.Request.Context(), ruleID)
	if err != nil {
		if errors.Is(err, database.ErrRuleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "rule not found"})
			return
		}
		h.logger.Error("failed to get rule", "id", ruleID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get rule"})
		return
	}

	rule.Phrase = req.Phrase
	rule.IsRegex = req.IsRegex
	rule.Category = req.Category
	rule.Severity = req.Severity
	rule.Replacements = req.Replacements
	rule.Enabled = req.Enabled
	rule.Priority = req.Priority

	if err := analyzer.ValidatePhraseRule(rule); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.rulesRepo.Update(c.Request.Context(), rule); err != nil {
		h.logger.Error("failed to update rule", "id", ruleID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update rule"})
		return
	}

	h.reloadDetectorRules(c.Request.Context())

	h.logger.Info("rule updated", "id", ruleID)

	c.JSON(http.StatusOK, toRuleResponse(rule))
}

// DeleteRule handles DELETE /api/v1/rules/:id.
func (h *Handler) DeleteRule(c *gin.Context) {
	if h.rulesRepo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "rule storage not configured"})
		return
	}

	ruleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rule ID"})
		return
	}

	if err := h.rulesRepo.Delete(c.Request.Context(), ruleID); err != nil {
		if errors.Is(err, database.ErrRuleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "rule not found"})
			return
		}
		h.logger.Error("failed to delete rule", "id", ruleID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete rule"})
		return
	}

	h.reloadDetectorRules(c.Request.Context())

	h.logger.Info("rule deleted", "id", ruleID)

	c.JSON(http.StatusOK, gin.H{"message": "rule deleted"})
}

// GetHistory handles GET /api/v1/history/:content_id.
func (h *Handler) GetHistory(c *gin.Context) {
	if h.historyRepo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history storage not configured"})
		return
	}

	contentID := c.Param("content_id")

	limit := defaultHistoryLimit
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	records, err := h.historyRepo.ListByContentID(c.Request.Context(), contentID, limit)
	if err != nil {
		h.logger.Error("failed to get history", "content_id", contentID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get history"})
		return
	}

	if len(records) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no analyses found for content"})
		return
	}

	c.JSON(http.StatusOK, HistoryResponse{
		ContentID: contentID,
		Analyses:  records,
		Total:     len(records),
	})
}

// GetStats handles GET /api/v1/stats.
func (h *Handler) GetStats(c *gin.Context) {
	if h.historyRepo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history storage not configured"})
		return
	}

	stats, err := h.historyRepo.GetStats(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to get stats", "error", err)
		// Empty stats keep the dashboard rendering.
		c.JSON(http.StatusOK, domain.AnalysisStats{})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetRiskStats handles GET /api/v1/stats/risk.
func (h *Handler) GetRiskStats(c *gin.Context) {
	if h.historyRepo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history storage not configured"})
		return
	}

	stats, err := h.historyRepo.GetRiskStats(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to get risk stats", "error", err)
		c.JSON(http.StatusOK, gin.H{"risk_levels": []gin.H{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"risk_levels": stats})
}

// GetCategoryStats handles GET /api/v1/stats/categories.
func (h *Handler) GetCategoryStats(c *gin.Context) {
	if h.historyRepo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history storage not configured"})
		return
	}

	stats, err := h.historyRepo.GetCategoryStats(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to get category stats", "error", err)
		c.JSON(http.StatusOK, gin.H{"categories": []gin.H{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": stats})
}

// respondAnalysisError maps analysis errors to status codes.
func (h *Handler) respondAnalysisError(c *gin.Context, contentID string, err error) {
	if errors.Is(err, analyzer.ErrEmptyContent) {
		h.logger.Warn("rejecting empty content", "content_id", contentID)
		if h.telemetry != nil {
			h.telemetry.RecordAnalysisFailure(c.Request.Context(), "empty_content")
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": analyzer.ErrEmptyContent.Error()})
		return
	}

	h.logger.Error("analysis failed", "content_id", contentID, "error", err)
	if h.telemetry != nil {
		h.telemetry.RecordAnalysisFailure(c.Request.Context(), "internal")
	}
	c.JSON(http.StatusInternalServerError, AnalyzeResponse{Error: err.Error()})
}

// cachedResult returns a cached analysis for the content, or nil.
func (h *Handler) cachedResult(ctx context.Context, content *domain.Content) *domain.AnalysisResult {
	if h.resultCache == nil {
		return nil
	}

	key := cache.Key(content, h.analyzer.Version())
	result, err := h.resultCache.Get(ctx, key)
	if err != nil {
		h.logger.Warn("cache lookup failed", "error", err)
		return nil
	}

	if h.telemetry != nil {
		if result != nil {
			h.telemetry.RecordCacheHit(ctx)
		} else {
			h.telemetry.RecordCacheMiss(ctx)
		}
	}

	if result != nil {
		// The cached result may have been produced for a different document
		// with identical text.
		result.ContentID = content.ID
	}

	return result
}

// storeResult caches an analysis result, logging failures without surfacing
// them.
func (h *Handler) storeResult(ctx context.Context, content *domain.Content, result *domain.AnalysisResult) {
	if h.resultCache == nil {
		return
	}

	key := cache.Key(content, h.analyzer.Version())
	if err := h.resultCache.Set(ctx, key, result); err != nil {
		h.logger.Warn("failed to cache result", "content_id", content.ID, "error", err)
	}
}

// saveHistory persists the audit row for a successful API analysis.
func (h *Handler) saveHistory(ctx context.Context, content *domain.Content, result *domain.AnalysisResult) {
	if h.historyRepo == nil {
		return
	}

	history := processor.HistoryFromResult(content, result)
	if err := h.historyRepo.Create(ctx, history); err != nil {
		h.logger.Warn("failed to save analysis history", "content_id", content.ID, "error", err)
	}
}

// reloadDetectorRules reloads custom rules from the database into the
// phrase detector. Called after any rules CRUD so detection reflects the
// latest rules without restart.
func (h *Handler) reloadDetectorRules(ctx context.Context) {
	rules, err := h.rulesRepo.ListEnabled(ctx)
	if err != nil {
		h.logger.Error("failed to reload phrase rules from database", "error", err)
		return
	}

	h.analyzer.Phrases().UpdateRules(rules)

	if h.telemetry != nil {
		h.telemetry.RecordRuleReload(ctx)
	}

	h.logger.Info("phrase rules reloaded", "count", len(rules))
}
