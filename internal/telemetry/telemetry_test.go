//nolint:testpackage // Metrics registration is process-global, tested in-package
package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// promauto registers on the default registry, so the provider is built once
// for the whole test binary.
var testProvider = NewProvider()

func TestNewProvider(t *testing.T) {
	require.NotNil(t, testProvider.Metrics)
	require.NotNil(t, testProvider.Tracer)
	assert.NotNil(t, testProvider.Handler())
}

func TestRecordAnalysis(t *testing.T) {
	before := testutil.ToFloat64(testProvider.Metrics.ContentAnalyzed.WithLabelValues("low"))

	testProvider.RecordAnalysis(context.Background(), 10*time.Millisecond, "low", 85)

	after := testutil.ToFloat64(testProvider.Metrics.ContentAnalyzed.WithLabelValues("low"))
	assert.Equal(t, before+1, after)
}

func TestRecordAnalysisFailure(t *testing.T) {
	testProvider.RecordAnalysisFailure(context.Background(), "empty_content")

	got := testutil.ToFloat64(testProvider.Metrics.ContentFailed.WithLabelValues("empty_content"))
	assert.GreaterOrEqual(t, got, 1.0)
}

func TestRecordCacheHitsAndMisses(t *testing.T) {
	hitsBefore := testutil.ToFloat64(testProvider.Metrics.CacheHits)
	missesBefore := testutil.ToFloat64(testProvider.Metrics.CacheMisses)

	testProvider.RecordCacheHit(context.Background())
	testProvider.RecordCacheHit(context.Background())
	testProvider.RecordCacheMiss(context.Background())

	assert.Equal(t, hitsBefore+2, testutil.ToFloat64(testProvider.Metrics.CacheHits))
	assert.Equal(t, missesBefore+1, testutil.ToFloat64(testProvider.Metrics.CacheMisses))
}

func TestRecordPhraseMatch(t *testing.T) {
	before := testutil.ToFloat64(testProvider.Metrics.PhraseMatches.WithLabelValues("filler"))

	testProvider.RecordPhraseScan(context.Background(), 2*time.Millisecond)
	testProvider.RecordPhraseMatch(context.Background(), "filler")
	testProvider.RecordPhraseMatch(context.Background(), "filler")

	after := testutil.ToFloat64(testProvider.Metrics.PhraseMatches.WithLabelValues("filler"))
	assert.Equal(t, before+2, after)
}

func TestThrottleCount(t *testing.T) {
	before := testutil.ToFloat64(testProvider.Metrics.ThrottleCount)
	testProvider.IncrementThrottleCount()
	assert.Equal(t, before+1, testutil.ToFloat64(testProvider.Metrics.ThrottleCount))
}

func TestBackpressureGauges(t *testing.T) {
	testProvider.SetQueueDepth(42)
	assert.Equal(t, 42.0, testutil.ToFloat64(testProvider.Metrics.QueueDepth))

	testProvider.SetActiveWorkers(8)
	assert.Equal(t, 8.0, testutil.ToFloat64(testProvider.Metrics.ActiveWorkers))

	droppedBefore := testutil.ToFloat64(testProvider.Metrics.WorkDropped)
	testProvider.IncrementWorkDropped()
	assert.Equal(t, droppedBefore+1, testutil.ToFloat64(testProvider.Metrics.WorkDropped))
}

func TestRecordRuleReload(t *testing.T) {
	before := testutil.ToFloat64(testProvider.Metrics.RuleReloads)
	testProvider.RecordRuleReload(context.Background())
	assert.Equal(t, before+1, testutil.ToFloat64(testProvider.Metrics.RuleReloads))
}

func TestStartSpan(t *testing.T) {
	ctx, span := testProvider.StartSpan(context.Background(), "test-span")
	require.NotNil(t, span)
	assert.NotNil(t, ctx)
	span.End()
}
