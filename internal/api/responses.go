package api

import (
	"github.com/seoforge/content-analyzer/internal/domain"
)

// AnalyzeRequest represents a single analysis request.
type AnalyzeRequest struct {
	Content *domain.Content `json:"content" binding:"required"`
}

// AnalyzeResponse represents an analysis response.
type AnalyzeResponse struct {
	Result *domain.AnalysisResult `json:"result"`
	Cached bool                   `json:"cached,omitempty"`
	Error  string                 `json:"error,omitempty"`
}

// BatchAnalyzeRequest represents a batch analysis request.
type BatchAnalyzeRequest struct {
	Contents []*domain.Content `json:"contents" binding:"required,min=1,max=100"`
}

// BatchItemResult is one item of a batch response. Failed items carry the
// error instead of a result.
type BatchItemResult struct {
	ContentID string                 `json:"content_id"`
	Result    *domain.AnalysisResult `json:"result,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

// BatchAnalyzeResponse represents a batch analysis response.
type BatchAnalyzeResponse struct {
	Results []BatchItemResult `json:"results"`
	Total   int               `json:"total"`
	Success int               `json:"success"`
	Failed  int               `json:"failed"`
}

// TextRequest carries bare text for the standalone phrase and
// hallucination endpoints.
type TextRequest struct {
	Text string `json:"text" binding:"required"`
}

// PhraseDetectResponse represents a phrase detection response.
type PhraseDetectResponse struct {
	Matches      []domain.PhraseMatch `json:"matches"`
	MatchCount   int                  `json:"match_count"`
	QualityScore int                  `json:"quality_score"`
}

// SanitizeResponse represents a sanitize response.
type SanitizeResponse struct {
	Sanitized    string               `json:"sanitized"`
	Replacements []domain.PhraseMatch `json:"replacements"`
	Count        int                  `json:"count"`
}

// LocalSearchRequest represents a regional analysis request.
type LocalSearchRequest struct {
	Region  string `json:"region" binding:"required"`
	Keyword string `json:"keyword,omitempty"`
}

// RuleResponse represents a phrase rule for API consumers.
type RuleResponse struct {
	ID           int      `json:"id"`
	Phrase       string   `json:"phrase"`
	IsRegex      bool     `json:"is_regex"`
	Category     string   `json:"category"`
	Severity     int      `json:"severity"`
	Replacements []string `json:"replacements"`
	Enabled      bool     `json:"enabled"`
	Priority     int      `json:"priority"`
}

// RulesListResponse represents a list of rules with metadata.
type RulesListResponse struct {
	Rules        []RuleResponse `json:"rules"`
	Total        int            `json:"total"`
	BuiltinCount int            `json:"builtin_count"`
}

// CreateRuleRequest represents a request to create a phrase rule.
type CreateRuleRequest struct {
	Phrase       string   `json:"phrase" binding:"required"`
	IsRegex      bool     `json:"is_regex"`
	Category     string   `json:"category" binding:"required"`
	Severity     int      `json:"severity" binding:"required,min=1,max=4"`
	Replacements []string `json:"replacements"`
	Enabled      bool     `json:"enabled"`
	Priority     int      `json:"priority"`
}

// HistoryResponse represents the analysis history of one content item.
type HistoryResponse struct {
	ContentID string                    `json:"content_id"`
	Analyses  []*domain.AnalysisHistory `json:"analyses"`
	Total     int                       `json:"total"`
}

// toRuleResponse converts a domain rule to an API response.
func toRuleResponse(rule *domain.PhraseRule) RuleResponse {
	return RuleResponse{
		ID:           rule.ID,
		Phrase:       rule.Phrase,
		IsRegex:      rule.IsRegex,
		Category:     rule.Category,
		Severity:     rule.Severity,
		Replacements: rule.Replacements,
		Enabled:      rule.Enabled,
		Priority:     rule.Priority,
	}
}

// fromCreateRequest builds a domain rule from a create/update request.
func fromCreateRequest(req *CreateRuleRequest) *domain.PhraseRule {
	return &domain.PhraseRule{
		Phrase:       req.Phrase,
		IsRegex:      req.IsRegex,
		Category:     req.Category,
		Severity:     req.Severity,
		Replacements: req.Replacements,
		Enabled:      req.Enabled,
		Priority:     req.Priority,
	}
}
