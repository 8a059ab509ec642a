package analyzer_test

import (
	"testing"

	"github.com/seoforge/content-analyzer/internal/analyzer"
	"github.com/seoforge/content-analyzer/internal/domain"
	"github.com/seoforge/content-analyzer/internal/platform/logger"
)

func newHallucinationDetector() *analyzer.HallucinationDetector {
	return analyzer.NewHallucinationDetector(logger.NewNop())
}

func flagsOfType(flags []domain.HallucinationFlag, flagType string) []domain.HallucinationFlag {
	var out []domain.HallucinationFlag
	for _, f := range flags {
		if f.Type == flagType {
			out = append(out, f)
		}
	}
	return out
}

func TestHallucinationDetector_CleanContent(t *testing.T) {
	detector := newHallucinationDetector()

	result := detector.Detect(&domain.Content{
		ID:      "clean-1",
		Keyword: "seo tool",
		Body:    "Our SEO tool improves rankings over several months. The tool reports keyword data weekly.",
	})

	if result.Score != 0 {
		t.Errorf("expected score 0 for clean content, got %d", result.Score)
	}
	if result.RiskLevel != domain.RiskLow {
		t.Errorf("expected risk level %q, got %q", domain.RiskLow, result.RiskLevel)
	}
	if len(result.Flags) != 0 {
		t.Errorf("expected no flags, got %+v", result.Flags)
	}
	for name, score := range result.Heuristics {
		if score != 0 {
			t.Errorf("heuristic %q: expected 0, got %d", name, score)
		}
	}
}

func TestHallucinationDetector_Overconfidence(t *testing.T) {
	detector := newHallucinationDetector()

	result := detector.Detect(&domain.Content{
		ID:   "over-1",
		Body: "This approach definitely works. It is absolutely the best choice.",
	})

	flags := flagsOfType(result.Flags, "overconfidence")
	if len(flags) != 2 {
		t.Fatalf("expected 2 overconfidence flags, got %d: %+v", len(flags), result.Flags)
	}
	if result.Heuristics["overconfidence"] != 30 {
		t.Errorf("expected overconfidence sub-score 30, got %d", result.Heuristics["overconfidence"])
	}
	if flags[0].Position != 0 || flags[1].Position != 1 {
		t.Errorf("expected flags on sentences 0 and 1, got %d and %d",
			flags[0].Position, flags[1].Position)
	}
}

func TestHallucinationDetector_UnverifiedFactRepeated(t *testing.T) {
	detector := newHallucinationDetector()

	result := detector.Detect(&domain.Content{
		ID:   "fact-1",
		Body: "Our platform serves five million customers worldwide.",
		Facts: []domain.FactCheck{
			{Claim: "the platform serves five million customers", Verified: false},
		},
	})

	flags := flagsOfType(result.Flags, "contradicted_fact")
	if len(flags) != 1 {
		t.Fatalf("expected 1 contradicted_fact flag, got %d: %+v", len(flags), result.Flags)
	}
	if result.Heuristics["contradicted_facts"] != 40 {
		t.Errorf("expected contradicted_facts sub-score 40, got %d",
			result.Heuristics["contradicted_facts"])
	}
}

func TestHallucinationDetector_VerifiedFactsIgnored(t *testing.T) {
	detector := newHallucinationDetector()

	result := detector.Detect(&domain.Content{
		ID:   "fact-2",
		Body: "Our platform serves five million customers worldwide.",
		Facts: []domain.FactCheck{
			{Claim: "the platform serves five million customers", Verified: true},
		},
	})

	if got := flagsOfType(result.Flags, "contradicted_fact"); len(got) != 0 {
		t.Errorf("expected no flags for verified facts, got %+v", got)
	}
}

func TestHallucinationDetector_InternalContradiction(t *testing.T) {
	detector := newHallucinationDetector()

	result := detector.Detect(&domain.Content{
		ID: "contra-1",
		Body: "The free plan includes keyword tracking every week. " +
			"The free plan does not include keyword tracking.",
	})

	flags := flagsOfType(result.Flags, "internal_contradiction")
	if len(flags) != 1 {
		t.Fatalf("expected 1 internal_contradiction flag, got %d: %+v", len(flags), result.Flags)
	}
	if flags[0].Position != 1 {
		t.Errorf("expected the negated sentence flagged, got position %d", flags[0].Position)
	}
}

func TestHallucinationDetector_SuspiciousClaims(t *testing.T) {
	detector := newHallucinationDetector()

	t.Run("statistic without attribution is flagged", func(t *testing.T) {
		result := detector.Detect(&domain.Content{
			ID:   "claim-1",
			Body: "Exactly 87% of marketers saw gains from this tactic.",
		})
		if got := flagsOfType(result.Flags, "suspicious_claim"); len(got) != 1 {
			t.Errorf("expected 1 suspicious_claim flag, got %+v", result.Flags)
		}
	})

	t.Run("attributed statistic passes", func(t *testing.T) {
		result := detector.Detect(&domain.Content{
			ID:   "claim-2",
			Body: "According to the 2024 industry survey, 87% of marketers saw gains.",
		})
		if got := flagsOfType(result.Flags, "suspicious_claim"); len(got) != 0 {
			t.Errorf("expected no suspicious_claim flags, got %+v", got)
		}
	})
}

func TestHallucinationDetector_CompositeMediumRisk(t *testing.T) {
	detector := newHallucinationDetector()

	result := detector.Detect(&domain.Content{
		ID:      "composite-1",
		Title:   "Platform reliability report",
		Keyword: "platform reliability",
		Body: "Our platform serves five million customers worldwide. " +
			"The company was founded by two engineers in nineteen ninety. " +
			"This definitely makes it the best choice. " +
			"Exactly 90% of users renew each year.",
		Facts: []domain.FactCheck{
			{Claim: "the platform serves five million customers", Verified: false},
			{Claim: "the company was founded in nineteen ninety", Verified: false},
		},
	})

	if result.RiskLevel != domain.RiskMedium {
		t.Errorf("expected risk level %q with score %d, got %q",
			domain.RiskMedium, result.Score, result.RiskLevel)
	}
	if len(result.Flags) < 3 {
		t.Errorf("expected at least 3 flags, got %d: %+v", len(result.Flags), result.Flags)
	}
	if result.Score < 25 || result.Score >= 50 {
		t.Errorf("expected score in the medium band, got %d", result.Score)
	}
}

func TestHallucinationDetector_HeuristicKeysAlwaysPresent(t *testing.T) {
	detector := newHallucinationDetector()

	result := detector.Detect(&domain.Content{ID: "keys-1", Body: "Short note."})

	for _, key := range []string{
		"contradicted_facts", "internal_contradictions", "overconfidence",
		"suspicious_claims", "topic_drift",
	} {
		if _, ok := result.Heuristics[key]; !ok {
			t.Errorf("missing heuristic key %q", key)
		}
	}
}
