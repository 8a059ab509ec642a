package domain

import "time"

// Content represents a piece of generated content submitted for analysis.
// This is the input to the analyzer, either directly through the API or
// pulled from the content index by the pipeline worker.
type Content struct {
	// Core identifiers
	ID        string `json:"id"`
	ProjectID string `json:"project_id,omitempty"`
	URL       string `json:"url,omitempty"`

	// Text under analysis
	Title string `json:"title,omitempty"`
	Body  string `json:"body"`

	// Generation context
	Keyword           string `json:"keyword,omitempty"`
	Industry          string `json:"industry,omitempty"`
	Region            string `json:"region,omitempty"`
	AuthorCredentials string `json:"author_credentials,omitempty"`

	// Optional fact-verification results supplied by the caller
	Facts []FactCheck `json:"facts,omitempty"`

	// Quick metrics
	WordCount int `json:"word_count,omitempty"`

	// Processing status (content index documents only)
	AnalysisStatus string     `json:"analysis_status,omitempty"` // "pending", "analyzed", "failed"
	GeneratedAt    *time.Time `json:"generated_at,omitempty"`
	AnalyzedAt     *time.Time `json:"analyzed_at,omitempty"`
}

// FactCheck is a single externally verified (or contradicted) claim about
// the content, supplied as input to hallucination detection.
type FactCheck struct {
	Claim      string  `json:"claim"`
	Verified   bool    `json:"verified"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source,omitempty"`
}

// AnalysisStatus constants
const (
	StatusPending  = "pending"
	StatusAnalyzed = "analyzed"
	StatusFailed   = "failed"
)
