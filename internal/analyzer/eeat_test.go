package analyzer_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/seoforge/content-analyzer/internal/analyzer"
	"github.com/seoforge/content-analyzer/internal/domain"
	"github.com/seoforge/content-analyzer/internal/platform/logger"
)

func newEeatOptimizer() *analyzer.EeatOptimizer {
	return analyzer.NewEeatOptimizer(logger.NewNop())
}

func TestEeatOptimizer_EmptyContent(t *testing.T) {
	optimizer := newEeatOptimizer()

	testCases := []struct {
		name string
		body string
	}{
		{name: "empty string", body: ""},
		{name: "whitespace only", body: "   \n\t  "},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := optimizer.Analyze(&domain.Content{ID: "empty", Body: tc.body})
			if !errors.Is(err, analyzer.ErrEmptyContent) {
				t.Errorf("expected ErrEmptyContent, got %v", err)
			}
			if result != nil {
				t.Errorf("expected nil result, got %+v", result)
			}
		})
	}
}

func TestEeatOptimizer_NoSignals(t *testing.T) {
	optimizer := newEeatOptimizer()

	result, err := optimizer.Analyze(&domain.Content{
		ID:   "plain",
		Body: "Plain words about gardens and tulips growing in spring.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for name, score := range map[string]int{
		"experience":        result.Experience,
		"expertise":         result.Expertise,
		"authoritativeness": result.Authoritativeness,
		"trustworthiness":   result.Trustworthiness,
		"overall":           result.Overall,
	} {
		if score != 30 {
			t.Errorf("%s: expected base score 30, got %d", name, score)
		}
	}

	if len(result.Recommendations) != 4 {
		t.Errorf("expected 4 recommendations, got %d: %v",
			len(result.Recommendations), result.Recommendations)
	}
}

func TestEeatOptimizer_ExperienceIndicators(t *testing.T) {
	optimizer := newEeatOptimizer()

	result, err := optimizer.Analyze(&domain.Content{
		ID: "exp",
		Body: "I tested the tool for a month. In my experience it performed well. " +
			"We found the reports useful.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Experience != 60 {
		t.Errorf("expected experience score 60 for 3 indicators, got %d", result.Experience)
	}
	for _, rec := range result.Recommendations {
		if strings.Contains(rec, "first-hand") {
			t.Errorf("experience recommendation should not fire at 60: %q", rec)
		}
	}
}

func TestEeatOptimizer_AuthorCredentialsBonus(t *testing.T) {
	optimizer := newEeatOptimizer()
	content := &domain.Content{
		ID:   "cred",
		Body: "Plain words about gardens and tulips growing in spring.",
	}

	baseline, err := optimizer.Analyze(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content.AuthorCredentials = "PhD in horticulture, 12 years in the field"
	boosted, err := optimizer.Analyze(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if boosted.Expertise != baseline.Expertise+20 {
		t.Errorf("expected expertise %d, got %d", baseline.Expertise+20, boosted.Expertise)
	}
	if boosted.Authoritativeness != baseline.Authoritativeness+10 {
		t.Errorf("expected authoritativeness %d, got %d",
			baseline.Authoritativeness+10, boosted.Authoritativeness)
	}
}

func TestEeatOptimizer_VerifiedFactsBonus(t *testing.T) {
	optimizer := newEeatOptimizer()

	result, err := optimizer.Analyze(&domain.Content{
		ID:   "facts",
		Body: "Plain words about gardens and tulips growing in spring.",
		Facts: []domain.FactCheck{
			{Claim: "tulips bloom in spring", Verified: true},
			{Claim: "gardens need daily watering", Verified: false},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Trustworthiness != 45 {
		t.Errorf("expected trustworthiness 45 with verified facts, got %d", result.Trustworthiness)
	}
}

func TestEeatOptimizer_ExternalLinksBonus(t *testing.T) {
	optimizer := newEeatOptimizer()

	result, err := optimizer.Analyze(&domain.Content{
		ID:   "links",
		Body: "See https://example.com/research for the full numbers on tulip growth.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Authoritativeness != 40 {
		t.Errorf("expected authoritativeness 40 with links, got %d", result.Authoritativeness)
	}
	if result.Trustworthiness != 35 {
		t.Errorf("expected trustworthiness 35 with links, got %d", result.Trustworthiness)
	}
}

func TestEeatOptimizer_OverallIsAverage(t *testing.T) {
	optimizer := newEeatOptimizer()

	result, err := optimizer.Analyze(&domain.Content{
		ID:   "avg",
		Body: "Plain words about gardens and tulips growing in spring.",
		Facts: []domain.FactCheck{
			{Claim: "tulips bloom in spring", Verified: true},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := (result.Experience + result.Expertise + result.Authoritativeness + result.Trustworthiness) / 4
	if result.Overall != want {
		t.Errorf("expected overall %d, got %d", want, result.Overall)
	}
}
