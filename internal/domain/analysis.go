package domain

import "time"

// Risk levels for hallucination scoring.
const (
	RiskLow      = "low"
	RiskMedium   = "medium"
	RiskHigh     = "high"
	RiskCritical = "critical"
)

// Phrase severities, from mildest to worst.
const (
	SeverityNotice   = 1
	SeverityMinor    = 2
	SeverityMajor    = 3
	SeverityCritical = 4
)

// PhraseMatch is a single prohibited-phrase hit with its position and
// surrounding context.
type PhraseMatch struct {
	Phrase       string   `json:"phrase"`
	Category     string   `json:"category"`
	Severity     int      `json:"severity"`
	Position     int      `json:"position"`
	Context      string   `json:"context"`
	Replacements []string `json:"replacements,omitempty"`
}

// HallucinationFlag is a confidence-scored finding from one of the
// hallucination heuristics.
type HallucinationFlag struct {
	Type       string  `json:"type"` // "contradicted_fact", "internal_contradiction", "overconfidence", "suspicious_claim", "topic_drift"
	Sentence   string  `json:"sentence"`
	Position   int     `json:"position"` // sentence index within the document
	Confidence float64 `json:"confidence"`
	Detail     string  `json:"detail,omitempty"`
}

// HallucinationResult aggregates the five heuristic passes into a weighted
// risk score and bucket.
type HallucinationResult struct {
	Score      int                 `json:"score"` // 0-100, higher = more likely hallucinated
	RiskLevel  string              `json:"risk_level"`
	Flags      []HallucinationFlag `json:"flags"`
	Heuristics map[string]int      `json:"heuristics"` // per-heuristic sub-scores
}

// EeatResult holds the four E-E-A-T sub-scores and derived recommendations.
type EeatResult struct {
	Experience        int      `json:"experience"`
	Expertise         int      `json:"expertise"`
	Authoritativeness int      `json:"authoritativeness"`
	Trustworthiness   int      `json:"trustworthiness"`
	Overall           int      `json:"overall"`
	Recommendations   []string `json:"recommendations,omitempty"`
}

// ReadabilityResult holds the readability score with its factor breakdown.
type ReadabilityResult struct {
	Score   int            `json:"score"` // 0-100
	Factors map[string]any `json:"factors"`
}

// LocalSearchResult describes regional search behavior for a region/keyword
// pair.
type LocalSearchResult struct {
	Region           string   `json:"region"`  // canonical region name
	Matched          bool     `json:"matched"` // false when the default bucket was used
	BehaviorPatterns []string `json:"behavior_patterns"`
	SeasonalFactors  []string `json:"seasonal_factors"`
	LocalTerms       []string `json:"local_terms"`
}

// AnalysisResult is the full output of a single content analysis.
type AnalysisResult struct {
	ContentID string `json:"content_id"`

	PhraseMatches []PhraseMatch        `json:"phrase_matches"`
	PhraseScore   int                  `json:"phrase_score"` // 0-100, higher = cleaner
	Hallucination *HallucinationResult `json:"hallucination"`
	Eeat          *EeatResult          `json:"eeat"`
	Readability   *ReadabilityResult   `json:"readability"`
	LocalSearch   *LocalSearchResult   `json:"local_search,omitempty"`

	OverallScore     int       `json:"overall_score"` // 0-100
	Confidence       float64   `json:"confidence"`
	RiskLevel        string    `json:"risk_level"`
	AnalyzerVersion  string    `json:"analyzer_version"`
	ProcessingTimeMs int64     `json:"processing_time_ms"`
	AnalyzedAt       time.Time `json:"analyzed_at"`
}

// AnalyzedContent is a content document enriched with its analysis result,
// written back to the content index by the pipeline worker.
type AnalyzedContent struct {
	Content

	PhraseScore        int     `json:"phrase_score"`
	HallucinationScore int     `json:"hallucination_score"`
	EeatScore          int     `json:"eeat_score"`
	ReadabilityScore   int     `json:"readability_score"`
	OverallScore       int     `json:"overall_score"`
	RiskLevel          string  `json:"risk_level"`
	Confidence         float64 `json:"confidence"`
	AnalyzerVersion    string  `json:"analyzer_version"`
}
