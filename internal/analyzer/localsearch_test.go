package analyzer_test

import (
	"testing"

	"github.com/seoforge/content-analyzer/internal/analyzer"
	"github.com/seoforge/content-analyzer/internal/platform/logger"
)

func TestLocalSearchAnalyzer_RegionResolution(t *testing.T) {
	local := analyzer.NewLocalSearchAnalyzer(logger.NewNop())

	testCases := []struct {
		name    string
		region  string
		want    string
		matched bool
	}{
		{name: "canonical name", region: "united states", want: "united states", matched: true},
		{name: "alias", region: "USA", want: "united states", matched: true},
		{name: "city alias", region: "New York", want: "united states", matched: true},
		{name: "uk alias", region: "UK", want: "united kingdom", matched: true},
		{name: "diacritics folded", region: "Montréal", want: "canada", matched: true},
		{name: "australia by city", region: "Sydney", want: "australia", matched: true},
		{name: "australia not hijacked by us alias", region: "Australia", want: "australia", matched: true},
		{name: "unknown region", region: "Atlantis", want: "global", matched: false},
		{name: "empty region", region: "", want: "global", matched: false},
		{name: "whitespace region", region: "   ", want: "global", matched: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := local.Analyze(tc.region)
			if result.Region != tc.want {
				t.Errorf("expected region %q, got %q", tc.want, result.Region)
			}
			if result.Matched != tc.matched {
				t.Errorf("expected matched=%v, got %v", tc.matched, result.Matched)
			}
			if len(result.BehaviorPatterns) == 0 {
				t.Error("expected behavior patterns for every profile")
			}
			if len(result.SeasonalFactors) == 0 {
				t.Error("expected seasonal factors for every profile")
			}
		})
	}
}

func TestLocalSearchAnalyzer_MatchedProfilesCarryLocalTerms(t *testing.T) {
	local := analyzer.NewLocalSearchAnalyzer(logger.NewNop())

	result := local.Analyze("canada")
	if !result.Matched {
		t.Fatal("expected canada to match")
	}
	if len(result.LocalTerms) == 0 {
		t.Error("expected local terms for a matched region")
	}
}

func TestLocalSearchAnalyzer_Regions(t *testing.T) {
	local := analyzer.NewLocalSearchAnalyzer(logger.NewNop())

	regions := local.Regions()
	if len(regions) != 4 {
		t.Fatalf("expected 4 region profiles, got %d: %v", len(regions), regions)
	}

	seen := make(map[string]bool, len(regions))
	for _, r := range regions {
		seen[r] = true
	}
	for _, want := range []string{"united states", "united kingdom", "canada", "australia"} {
		if !seen[want] {
			t.Errorf("missing region %q in %v", want, regions)
		}
	}
}
