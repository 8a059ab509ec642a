package domain

import "time"

// AnalysisHistory is the audit-trail row persisted for every completed
// analysis. It backs the stats endpoints and score-trend reporting.
type AnalysisHistory struct {
	ID                 int       `db:"id"                  json:"id"`
	ContentID          string    `db:"content_id"          json:"content_id"`
	ContentURL         string    `db:"content_url"         json:"content_url,omitempty"`
	ProjectID          string    `db:"project_id"          json:"project_id,omitempty"`
	Keyword            string    `db:"keyword"             json:"keyword,omitempty"`
	PhraseScore        int       `db:"phrase_score"        json:"phrase_score"`
	PhraseMatchCount   int       `db:"phrase_match_count"  json:"phrase_match_count"`
	PhraseCategories   []string  `db:"phrase_categories"   json:"phrase_categories,omitempty"`
	HallucinationScore int       `db:"hallucination_score" json:"hallucination_score"`
	FlagCount          int       `db:"flag_count"          json:"flag_count"`
	EeatScore          int       `db:"eeat_score"          json:"eeat_score"`
	ReadabilityScore   int       `db:"readability_score"   json:"readability_score"`
	OverallScore       int       `db:"overall_score"       json:"overall_score"`
	RiskLevel          string    `db:"risk_level"          json:"risk_level"`
	Confidence         float64   `db:"confidence"          json:"confidence"`
	AnalyzerVersion    string    `db:"analyzer_version"    json:"analyzer_version"`
	ProcessingTimeMs   int       `db:"processing_time_ms"  json:"processing_time_ms"`
	AnalyzedAt         time.Time `db:"analyzed_at"         json:"analyzed_at"`
}

// AnalysisStats is the aggregate view returned by the stats endpoints.
type AnalysisStats struct {
	TotalAnalyzed       int     `json:"total_analyzed"`
	AvgOverallScore     float64 `json:"avg_overall_score"`
	AvgEeatScore        float64 `json:"avg_eeat_score"`
	AvgPhraseScore      float64 `json:"avg_phrase_score"`
	HighRiskCount       int     `json:"high_risk_count"`
	AvgProcessingTimeMs float64 `json:"avg_processing_time_ms"`
}

// RiskBucketStat is one row of the risk-level distribution.
type RiskBucketStat struct {
	RiskLevel string `db:"risk_level" json:"risk_level"`
	Count     int    `db:"count"      json:"count"`
}

// CategoryStat is one row of the phrase-category hit distribution.
type CategoryStat struct {
	Category string `db:"category" json:"category"`
	Count    int    `db:"count"    json:"count"`
}
