package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/seoforge/content-analyzer/internal/domain"
	"github.com/seoforge/content-analyzer/internal/telemetry"
)

const (
	// maxURLLength caps URLs stored in analysis history. Longer URLs are
	// truncated with a warning log.
	maxURLLength = 2048
	// urlPreviewLength is the maximum length for URL preview in log messages.
	urlPreviewLength = 100

	defaultPollIntervalSeconds = 30
	defaultPollBatchSize       = 50
)

// ContentStore defines the content-index operations the poller needs.
type ContentStore interface {
	QueryPendingContent(ctx context.Context, batchSize int) ([]*domain.Content, error)
	BulkIndexAnalyzedContent(ctx context.Context, contents []*domain.AnalyzedContent) error
	UpdateContentStatus(ctx context.Context, contentID, status string, analyzedAt time.Time) error
}

// HistoryStore defines the audit-trail operations the poller needs.
type HistoryStore interface {
	Create(ctx context.Context, history *domain.AnalysisHistory) error
}

// Poller polls the content index for pending items and runs them through
// the batch processor.
type Poller struct {
	store          ContentStore
	history        HistoryStore
	batchProcessor *BatchProcessor
	rateLimiter    *RateLimiter
	telemetry      *telemetry.Provider
	logger         Logger

	batchSize    int
	pollInterval time.Duration
	running      bool
	stopChan     chan struct{}
}

// PollerConfig holds poller configuration.
type PollerConfig struct {
	BatchSize    int
	PollInterval time.Duration
	PollRPS      int
	PollBurst    int
}

// NewPoller creates a new poller. history and telemetry may be nil when no
// database or metrics endpoint is configured.
func NewPoller(
	store ContentStore,
	history HistoryStore,
	batchProcessor *BatchProcessor,
	tp *telemetry.Provider,
	logger Logger,
	config PollerConfig,
) *Poller {
	if config.BatchSize <= 0 {
		config.BatchSize = defaultPollBatchSize
	}
	if config.PollInterval <= 0 {
		config.PollInterval = defaultPollIntervalSeconds * time.Second
	}

	return &Poller{
		store:          store,
		history:        history,
		batchProcessor: batchProcessor,
		rateLimiter:    NewRateLimiter(config.PollRPS, config.PollBurst, logger),
		telemetry:      tp,
		logger:         logger,
		batchSize:      config.BatchSize,
		pollInterval:   config.PollInterval,
		stopChan:       make(chan struct{}),
	}
}

// Start starts the poller.
func (p *Poller) Start(ctx context.Context) error {
	if p.running {
		return errors.New("poller is already running")
	}

	p.running = true
	p.logger.Info("poller starting",
		"batch_size", p.batchSize,
		"poll_interval", p.pollInterval,
	)

	go p.run(ctx)

	return nil
}

// Stop stops the poller.
func (p *Poller) Stop() {
	if !p.running {
		return
	}

	p.logger.Info("poller stopping")
	close(p.stopChan)
	p.running = false
}

// run is the main polling loop.
func (p *Poller) run(ctx context.Context) {
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	// Process immediately on start.
	if err := p.processPending(ctx); err != nil {
		p.logger.Error("failed to process pending content on startup", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("poller stopped due to context cancellation")
			return
		case <-p.stopChan:
			p.logger.Info("poller stopped")
			return
		case <-ticker.C:
			if err := p.processPending(ctx); err != nil {
				p.logger.Error("failed to process pending content", "error", err)
			}
		}
	}
}

// processPending drains one batch of pending content.
func (p *Poller) processPending(ctx context.Context) error {
	if !p.rateLimiter.Allow() {
		if p.telemetry != nil {
			p.telemetry.IncrementThrottleCount()
		}
		if err := p.rateLimiter.Wait(ctx); err != nil {
			return err
		}
	}

	p.logger.Debug("polling for pending content", "batch_size", p.batchSize)

	pendingItems, err := p.store.QueryPendingContent(ctx, p.batchSize)
	if err != nil {
		return fmt.Errorf("failed to query pending content: %w", err)
	}

	if len(pendingItems) == 0 {
		p.logger.Debug("no pending content found")
		return nil
	}

	p.logger.Info("found pending content", "count", len(pendingItems))

	if p.telemetry != nil {
		for _, item := range pendingItems {
			if item.GeneratedAt != nil {
				p.telemetry.RecordPollerLag(ctx, *item.GeneratedAt)
			}
		}
	}

	results, err := p.batchProcessor.Process(ctx, pendingItems)
	if err != nil {
		return fmt.Errorf("batch processing failed: %w", err)
	}

	if err = p.indexResults(ctx, results); err != nil {
		return fmt.Errorf("failed to index results: %w", err)
	}

	if err = p.saveHistory(ctx, results); err != nil {
		p.logger.Warn("failed to save analysis history", "error", err)
		// The writeback already succeeded, so the batch is not failed.
	}

	return nil
}

// indexResults writes analyzed documents back to Elasticsearch and flips
// status on the source documents.
func (p *Poller) indexResults(ctx context.Context, results []*ProcessResult) error {
	analyzedContents := make([]*domain.AnalyzedContent, 0, len(results))
	var failedContentIDs []string

	for _, result := range results {
		if result.Error != nil {
			failedContentIDs = append(failedContentIDs, result.Content.ID)
			if err := p.store.UpdateContentStatus(ctx, result.Content.ID, domain.StatusFailed, time.Now()); err != nil {
				p.logger.Error("failed to update status to failed",
					"content_id", result.Content.ID,
					"error", err,
				)
			}
			continue
		}

		analyzedContents = append(analyzedContents, result.Analyzed)
	}

	if len(failedContentIDs) > 0 {
		p.logger.Warn("some items failed analysis",
			"failed_count", len(failedContentIDs),
			"failed_ids", failedContentIDs,
		)
	}

	if len(analyzedContents) == 0 {
		return nil
	}

	p.logger.Info("indexing analyzed content", "count", len(analyzedContents))

	if err := p.store.BulkIndexAnalyzedContent(ctx, analyzedContents); err != nil {
		return fmt.Errorf("bulk indexing failed: %w", err)
	}

	for _, content := range analyzedContents {
		if err := p.store.UpdateContentStatus(ctx, content.ID, domain.StatusAnalyzed, time.Now()); err != nil {
			p.logger.Error("failed to update content status",
				"content_id", content.ID,
				"error", err,
			)
		}
	}

	p.logger.Info("successfully indexed analyzed content", "count", len(analyzedContents))

	return nil
}

// validateURL truncates URLs beyond the storage cap, with a warning.
func (p *Poller) validateURL(url string) string {
	if len(url) <= maxURLLength {
		return url
	}

	previewLen := len(url)
	if previewLen > urlPreviewLength {
		previewLen = urlPreviewLength
	}

	p.logger.Warn("url truncated for analysis history",
		"original_length", len(url),
		"truncated_length", maxURLLength,
		"url_preview", url[:previewLen],
	)
	return url[:maxURLLength]
}

// saveHistory persists the audit rows for successful analyses.
func (p *Poller) saveHistory(ctx context.Context, results []*ProcessResult) error {
	if p.history == nil {
		return nil
	}

	saved := 0
	for _, result := range results {
		if result.Error != nil || result.Result == nil {
			continue
		}

		history := HistoryFromResult(result.Content, result.Result)
		history.ContentURL = p.validateURL(history.ContentURL)

		if err := p.history.Create(ctx, history); err != nil {
			return fmt.Errorf("failed to save history for %s: %w", result.Content.ID, err)
		}
		saved++
	}

	if saved > 0 {
		p.logger.Debug("saved analysis history", "count", saved)
	}

	return nil
}

// HistoryFromResult converts an analysis result into its audit row.
func HistoryFromResult(content *domain.Content, result *domain.AnalysisResult) *domain.AnalysisHistory {
	categories := make([]string, 0, len(result.PhraseMatches))
	for _, m := range result.PhraseMatches {
		categories = append(categories, m.Category)
	}

	return &domain.AnalysisHistory{
		ContentID:          content.ID,
		ContentURL:         content.URL,
		ProjectID:          content.ProjectID,
		Keyword:            content.Keyword,
		PhraseScore:        result.PhraseScore,
		PhraseMatchCount:   len(result.PhraseMatches),
		PhraseCategories:   categories,
		HallucinationScore: result.Hallucination.Score,
		FlagCount:          len(result.Hallucination.Flags),
		EeatScore:          result.Eeat.Overall,
		ReadabilityScore:   result.Readability.Score,
		OverallScore:       result.OverallScore,
		RiskLevel:          result.RiskLevel,
		Confidence:         result.Confidence,
		AnalyzerVersion:    result.AnalyzerVersion,
		ProcessingTimeMs:   int(result.ProcessingTimeMs),
		AnalyzedAt:         result.AnalyzedAt,
	}
}

// IsRunning returns whether the poller is currently running.
func (p *Poller) IsRunning() bool {
	return p.running
}

// GetStats returns poller statistics.
func (p *Poller) GetStats() map[string]any {
	return map[string]any{
		"running":       p.running,
		"batch_size":    p.batchSize,
		"poll_interval": p.pollInterval.String(),
	}
}
