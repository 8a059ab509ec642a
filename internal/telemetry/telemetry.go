// Package telemetry provides OpenTelemetry instrumentation for the content
// analyzer service. It exports Prometheus metrics and provides tracing
// capabilities.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "content-analyzer"

// Metrics holds all analyzer Prometheus metrics.
type Metrics struct {
	// Analysis metrics
	ContentAnalyzed  *prometheus.CounterVec
	ContentFailed    *prometheus.CounterVec
	AnalysisDuration prometheus.Histogram
	OverallScore     prometheus.Histogram
	BatchSize        prometheus.Histogram

	// Phrase detector metrics
	PhraseMatchDuration prometheus.Histogram
	PhraseMatches       *prometheus.CounterVec
	RuleReloads         prometheus.Counter

	// Backpressure metrics
	QueueDepth    prometheus.Gauge
	ActiveWorkers prometheus.Gauge
	WorkDropped   prometheus.Counter
	ThrottleCount prometheus.Counter

	// Pipeline lag (freshness SLO)
	PollerLag prometheus.Histogram

	// Cache metrics
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
}

// Provider wraps telemetry providers.
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics.
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}
	initAnalysisMetrics(m)
	initPhraseMetrics(m)
	initBackpressureMetrics(m)
	initPipelineMetrics(m)
	initCacheMetrics(m)
	return m
}

func initAnalysisMetrics(m *Metrics) {
	m.ContentAnalyzed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analyzer_content_analyzed_total",
		Help: "Total content items successfully analyzed, by risk level",
	}, []string{"risk_level"})

	m.ContentFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analyzer_content_failed_total",
		Help: "Total content items that failed analysis",
	}, []string{"error_code"})

	m.AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "analyzer_analysis_duration_seconds",
		Help:    "Time to analyze a single content item",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
	})

	m.OverallScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "analyzer_overall_score",
		Help:    "Distribution of overall content scores",
		Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	})

	m.BatchSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "analyzer_batch_size",
		Help:    "Number of content items per batch",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 200},
	})
}

func initPhraseMetrics(m *Metrics) {
	m.PhraseMatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "analyzer_phrase_match_duration_seconds",
		Help:    "Time spent in phrase matching (Aho-Corasick plus regex)",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
	})

	m.PhraseMatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "analyzer_phrase_matches_total",
		Help: "Total prohibited-phrase matches, by category",
	}, []string{"category"})

	m.RuleReloads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "analyzer_rule_reloads_total",
		Help: "Total phrase-rule hot reloads",
	})
}

func initBackpressureMetrics(m *Metrics) {
	m.QueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "analyzer_queue_depth",
		Help: "Current pending content items in work queue",
	})

	m.ActiveWorkers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "analyzer_active_workers",
		Help: "Currently active worker goroutines",
	})

	m.WorkDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "analyzer_work_dropped_total",
		Help: "Work items dropped due to queue full",
	})

	m.ThrottleCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "analyzer_throttle_count_total",
		Help: "Number of times the poller was throttled due to backpressure",
	})
}

func initPipelineMetrics(m *Metrics) {
	m.PollerLag = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "analyzer_poller_lag_seconds",
		Help:    "Time between content generation and analysis start",
		Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600, 1800, 3600},
	})
}

func initCacheMetrics(m *Metrics) {
	m.CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "analyzer_cache_hits_total",
		Help: "Analysis results served from cache",
	})

	m.CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "analyzer_cache_misses_total",
		Help: "Analysis requests that missed the cache",
	})
}

// RecordAnalysis records metrics for a single completed analysis.
func (p *Provider) RecordAnalysis(ctx context.Context, duration time.Duration, riskLevel string, overallScore int) {
	p.Metrics.ContentAnalyzed.WithLabelValues(riskLevel).Inc()
	p.Metrics.AnalysisDuration.Observe(duration.Seconds())
	p.Metrics.OverallScore.Observe(float64(overallScore))
}

// RecordAnalysisFailure records a failed analysis with an error code.
func (p *Provider) RecordAnalysisFailure(ctx context.Context, errorCode string) {
	p.Metrics.ContentFailed.WithLabelValues(errorCode).Inc()
}

// RecordPhraseScan records the duration of one phrase-detection pass.
func (p *Provider) RecordPhraseScan(ctx context.Context, duration time.Duration) {
	p.Metrics.PhraseMatchDuration.Observe(duration.Seconds())
}

// RecordPhraseMatch records a single prohibited-phrase match.
func (p *Provider) RecordPhraseMatch(ctx context.Context, category string) {
	p.Metrics.PhraseMatches.WithLabelValues(category).Inc()
}

// RecordRuleReload records a phrase-rule hot reload.
func (p *Provider) RecordRuleReload(ctx context.Context) {
	p.Metrics.RuleReloads.Inc()
}

// RecordPollerLag records the freshness lag for pipeline content.
func (p *Provider) RecordPollerLag(ctx context.Context, generatedAt time.Time) {
	p.Metrics.PollerLag.Observe(time.Since(generatedAt).Seconds())
}

// RecordBatchSize records the size of a processed batch.
func (p *Provider) RecordBatchSize(size int) {
	p.Metrics.BatchSize.Observe(float64(size))
}

// RecordCacheHit records an analysis served from cache.
func (p *Provider) RecordCacheHit(ctx context.Context) {
	p.Metrics.CacheHits.Inc()
}

// RecordCacheMiss records an analysis that missed the cache.
func (p *Provider) RecordCacheMiss(ctx context.Context) {
	p.Metrics.CacheMisses.Inc()
}

// SetQueueDepth sets the current queue depth.
func (p *Provider) SetQueueDepth(depth int) {
	p.Metrics.QueueDepth.Set(float64(depth))
}

// SetActiveWorkers sets the current active worker count.
func (p *Provider) SetActiveWorkers(count int) {
	p.Metrics.ActiveWorkers.Set(float64(count))
}

// IncrementWorkDropped increments the dropped work counter.
func (p *Provider) IncrementWorkDropped() {
	p.Metrics.WorkDropped.Inc()
}

// IncrementThrottleCount increments the throttle counter.
func (p *Provider) IncrementThrottleCount() {
	p.Metrics.ThrottleCount.Inc()
}

// StartSpan starts a new trace span.
// The caller is responsible for ending the span with span.End().
//
//nolint:spancheck // Caller is responsible for ending the span
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := p.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, span
}
