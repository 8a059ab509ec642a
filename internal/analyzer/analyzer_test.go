package analyzer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/seoforge/content-analyzer/internal/analyzer"
	"github.com/seoforge/content-analyzer/internal/domain"
	"github.com/seoforge/content-analyzer/internal/platform/logger"
)

func newAnalyzer(cfg analyzer.Config) *analyzer.Analyzer {
	return analyzer.New(logger.NewNop(), nil, cfg)
}

func TestAnalyzer_Analyze(t *testing.T) {
	a := newAnalyzer(analyzer.Config{})

	content := &domain.Content{
		ID:      "article-1",
		Keyword: "seo reporting",
		Title:   "SEO reporting basics",
		Body:    buildBody(4, 5),
	}

	result, err := a.Analyze(context.Background(), content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ContentID != "article-1" {
		t.Errorf("expected content ID %q, got %q", "article-1", result.ContentID)
	}
	if result.AnalyzerVersion != analyzer.Version {
		t.Errorf("expected version %q, got %q", analyzer.Version, result.AnalyzerVersion)
	}
	if result.Hallucination == nil || result.Eeat == nil || result.Readability == nil {
		t.Fatal("expected all sub-results populated")
	}
	if result.RiskLevel != result.Hallucination.RiskLevel {
		t.Errorf("risk level %q does not match hallucination bucket %q",
			result.RiskLevel, result.Hallucination.RiskLevel)
	}
	if result.OverallScore < 0 || result.OverallScore > 100 {
		t.Errorf("overall score out of range: %d", result.OverallScore)
	}
	if result.Confidence < 0.5 || result.Confidence > 0.95 {
		t.Errorf("confidence out of range: %f", result.Confidence)
	}
	if result.LocalSearch != nil {
		t.Error("expected no local search result without a region")
	}
	if result.AnalyzedAt.IsZero() {
		t.Error("expected analyzed_at to be set")
	}
}

func TestAnalyzer_AnalyzeWithRegion(t *testing.T) {
	a := newAnalyzer(analyzer.Config{})

	result, err := a.Analyze(context.Background(), &domain.Content{
		ID:     "regional-1",
		Body:   buildBody(3, 4),
		Region: "UK",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.LocalSearch == nil {
		t.Fatal("expected local search result for a regional request")
	}
	if result.LocalSearch.Region != "united kingdom" {
		t.Errorf("expected region %q, got %q", "united kingdom", result.LocalSearch.Region)
	}
}

func TestAnalyzer_AnalyzeEmptyBody(t *testing.T) {
	a := newAnalyzer(analyzer.Config{})

	_, err := a.Analyze(context.Background(), &domain.Content{ID: "empty-1"})
	if !errors.Is(err, analyzer.ErrEmptyContent) {
		t.Errorf("expected ErrEmptyContent, got %v", err)
	}
}

func TestAnalyzer_VersionOverride(t *testing.T) {
	a := newAnalyzer(analyzer.Config{Version: "9.9.9"})

	if a.Version() != "9.9.9" {
		t.Errorf("expected version override, got %q", a.Version())
	}

	result, err := a.Analyze(context.Background(), &domain.Content{ID: "v", Body: buildBody(2, 3)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.AnalyzerVersion != "9.9.9" {
		t.Errorf("expected result version %q, got %q", "9.9.9", result.AnalyzerVersion)
	}
}

func TestAnalyzer_ThinContentCapsConfidence(t *testing.T) {
	a := newAnalyzer(analyzer.Config{})

	// Two phrase matches would normally lift confidence to 0.7, but content
	// this short is capped at 0.6.
	result, err := a.Analyze(context.Background(), &domain.Content{
		ID:   "thin-1",
		Body: "Studies show that you should delve into the data.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.PhraseMatches) != 2 {
		t.Fatalf("expected 2 phrase matches, got %d: %+v",
			len(result.PhraseMatches), result.PhraseMatches)
	}
	if result.Confidence != 0.6 {
		t.Errorf("expected capped confidence 0.6, got %f", result.Confidence)
	}
}

func TestAnalyzer_CustomRulesApplied(t *testing.T) {
	a := newAnalyzer(analyzer.Config{
		CustomRules: []domain.PhraseRule{{
			Phrase:   "quantum listicle",
			Category: domain.CategorySpam,
			Severity: domain.SeverityMajor,
			Enabled:  true,
		}},
	})

	result, err := a.Analyze(context.Background(), &domain.Content{
		ID:   "custom-1",
		Body: "This quantum listicle explains the tactic step by step.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, m := range result.PhraseMatches {
		if m.Category == domain.CategorySpam {
			found = true
		}
	}
	if !found {
		t.Errorf("expected custom rule match, got %+v", result.PhraseMatches)
	}
}

func TestAnalyzer_AnalyzeBatch(t *testing.T) {
	a := newAnalyzer(analyzer.Config{})

	items := []*domain.Content{
		{ID: "batch-1", Body: buildBody(2, 3)},
		{ID: "batch-2"}, // empty body fails
		{ID: "batch-3", Body: buildBody(2, 3)},
	}

	results, errs := a.AnalyzeBatch(context.Background(), items)
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	if !errors.Is(errs[0], analyzer.ErrEmptyContent) {
		t.Errorf("expected wrapped ErrEmptyContent, got %v", errs[0])
	}
}

func TestAnalyzer_AnalyzeBatchCancelled(t *testing.T) {
	a := newAnalyzer(analyzer.Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, errs := a.AnalyzeBatch(ctx, []*domain.Content{
		{ID: "c-1", Body: buildBody(1, 2)},
	})
	if len(results) != 0 {
		t.Errorf("expected no results after cancellation, got %d", len(results))
	}
	if len(errs) != 1 || !errors.Is(errs[0], context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", errs)
	}
}
