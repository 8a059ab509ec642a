// Package processor implements the batch analysis pipeline: a worker pool
// over the analyzer plus a poller that drains pending content from the
// content index.
package processor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/seoforge/content-analyzer/internal/analyzer"
	"github.com/seoforge/content-analyzer/internal/domain"
	"github.com/seoforge/content-analyzer/internal/telemetry"
)

// Logger defines the logging interface used throughout the processor.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// ProcessResult holds the result of processing a single item.
type ProcessResult struct {
	Content  *domain.Content
	Result   *domain.AnalysisResult
	Analyzed *domain.AnalyzedContent
	Error    error
}

const defaultConcurrency = 8

// BatchProcessor analyzes multiple content items in parallel using a worker
// pool.
type BatchProcessor struct {
	analyzer    *analyzer.Analyzer
	concurrency int
	telemetry   *telemetry.Provider
	logger      Logger
}

// NewBatchProcessor creates a new batch processor. telemetry may be nil.
func NewBatchProcessor(a *analyzer.Analyzer, concurrency int, tp *telemetry.Provider, logger Logger) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	return &BatchProcessor{
		analyzer:    a,
		concurrency: concurrency,
		telemetry:   tp,
		logger:      logger,
	}
}

// Process analyzes a batch of content items using the worker pool.
func (b *BatchProcessor) Process(ctx context.Context, items []*domain.Content) ([]*ProcessResult, error) {
	if len(items) == 0 {
		return []*ProcessResult{}, nil
	}

	b.logger.Info("starting batch processing",
		"batch_size", len(items),
		"concurrency", b.concurrency,
	)

	startTime := time.Now()

	if b.telemetry != nil {
		b.telemetry.RecordBatchSize(len(items))
		b.telemetry.SetQueueDepth(len(items))
		b.telemetry.SetActiveWorkers(b.concurrency)
	}

	jobs := make(chan *domain.Content, len(items))
	results := make(chan *ProcessResult, len(items))

	var wg sync.WaitGroup
	for i := 0; i < b.concurrency; i++ {
		wg.Add(1)
		go b.worker(ctx, i, jobs, results, &wg)
	}

	for _, item := range items {
		jobs <- item
	}
	close(jobs)

	wg.Wait()
	close(results)

	processResults := make([]*ProcessResult, 0, len(items))
	for result := range results {
		processResults = append(processResults, result)
	}

	if b.telemetry != nil {
		b.telemetry.SetQueueDepth(0)
		b.telemetry.SetActiveWorkers(0)
		// Items still in the jobs channel after cancellation were dropped.
		for i := len(processResults); i < len(items); i++ {
			b.telemetry.IncrementWorkDropped()
		}
	}

	duration := time.Since(startTime)
	successCount := 0
	errorCount := 0
	for _, result := range processResults {
		if result.Error == nil {
			successCount++
		} else {
			errorCount++
		}
	}

	b.logger.Info("batch processing complete",
		"total", len(items),
		"success", successCount,
		"errors", errorCount,
		"duration_ms", duration.Milliseconds(),
		"items_per_second", float64(len(items))/duration.Seconds(),
	)

	return processResults, nil
}

// worker processes items from the jobs channel.
func (b *BatchProcessor) worker(
	ctx context.Context,
	id int,
	jobs <-chan *domain.Content,
	results chan<- *ProcessResult,
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	b.logger.Debug("worker started", "worker_id", id)

	for item := range jobs {
		select {
		case <-ctx.Done():
			b.logger.Warn("worker stopping due to context cancellation", "worker_id", id)
			return
		default:
		}

		results <- b.processItem(ctx, item)
	}

	b.logger.Debug("worker finished", "worker_id", id)
}

// processItem analyzes a single content item.
func (b *BatchProcessor) processItem(ctx context.Context, content *domain.Content) *ProcessResult {
	result := &ProcessResult{
		Content: content,
	}

	analysisResult, err := b.analyzer.Analyze(ctx, content)
	if err != nil {
		result.Error = fmt.Errorf("analysis failed: %w", err)
		b.logger.Error("failed to analyze content",
			"content_id", content.ID,
			"error", err,
		)
		return result
	}

	result.Result = analysisResult
	result.Analyzed = BuildAnalyzedContent(content, analysisResult)

	b.logger.Debug("item processed",
		"content_id", content.ID,
		"overall_score", analysisResult.OverallScore,
		"risk_level", analysisResult.RiskLevel,
	)

	return result
}

// BuildAnalyzedContent merges a content document with its analysis result
// for writeback to the analyzed index.
func BuildAnalyzedContent(content *domain.Content, result *domain.AnalysisResult) *domain.AnalyzedContent {
	return &domain.AnalyzedContent{
		Content:            *content,
		PhraseScore:        result.PhraseScore,
		HallucinationScore: result.Hallucination.Score,
		EeatScore:          result.Eeat.Overall,
		ReadabilityScore:   result.Readability.Score,
		OverallScore:       result.OverallScore,
		RiskLevel:          result.RiskLevel,
		Confidence:         result.Confidence,
		AnalyzerVersion:    result.AnalyzerVersion,
	}
}

// SetConcurrency updates the worker pool concurrency.
func (b *BatchProcessor) SetConcurrency(concurrency int) {
	if concurrency > 0 {
		b.concurrency = concurrency
		b.logger.Info("concurrency updated", "new_concurrency", concurrency)
	}
}
