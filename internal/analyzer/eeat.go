package analyzer

import (
	"errors"
	"strings"

	"github.com/seoforge/content-analyzer/internal/domain"
	"github.com/seoforge/content-analyzer/internal/platform/logger"
)

// ErrEmptyContent is returned when there is no body text to score.
var ErrEmptyContent = errors.New("content body is empty")

// E-E-A-T scoring constants.
const (
	eeatMaxScore       = 100
	eeatBaseScore      = 30 // floor for content with no signals at all
	eeatIndicatorValue = 10 // points per distinct indicator found
	eeatSignalCap      = 7  // indicators counted per dimension

	// Bonuses for structural signals outside the indicator lists.
	bonusAuthorCredentials = 20
	bonusVerifiedFacts     = 15
	bonusExternalLinks     = 10

	// Recommendation trigger threshold per dimension.
	recommendThreshold = 60
)

// Indicator vocabularies per dimension. Matching is on normalized text, so
// entries are lowercase with no punctuation.
var (
	experienceIndicators = []string{
		"i tested", "we tested", "i tried", "we tried", "in my experience",
		"in our experience", "hands on", "i found", "we found", "after using",
		"i noticed", "we measured", "our team ran", "i ve used", "we ve used",
		"first hand", "case study", "real world",
	}

	expertiseIndicators = []string{
		"technical", "methodology", "analysis", "data", "metrics",
		"algorithm", "benchmark", "framework", "best practices", "in depth",
		"specification", "implementation", "research", "peer reviewed",
		"whitepaper", "certified",
	}

	authoritativenessIndicators = []string{
		"according to", "cited by", "referenced", "industry leader",
		"award winning", "recognized", "featured in", "quoted",
		"official documentation", "original research", "press release",
		"as published in",
	}

	trustworthinessIndicators = []string{
		"source", "citation", "disclosure", "transparency", "updated on",
		"fact checked", "references", "methodology section", "contact us",
		"privacy policy", "verified", "accuracy",
	}
)

// EeatOptimizer scores content against Google's E-E-A-T quality dimensions:
// experience, expertise, authoritativeness, and trustworthiness.
type EeatOptimizer struct {
	logger logger.Logger
}

func NewEeatOptimizer(log logger.Logger) *EeatOptimizer {
	return &EeatOptimizer{logger: log}
}

// Analyze computes the four sub-scores and an overall average, plus
// recommendations for any dimension below the threshold. Returns
// ErrEmptyContent when the body has no text.
func (e *EeatOptimizer) Analyze(content *domain.Content) (*domain.EeatResult, error) {
	if strings.TrimSpace(content.Body) == "" {
		return nil, ErrEmptyContent
	}

	text := normalizeText(content.Title + " " + content.Body)

	experience := indicatorScore(text, experienceIndicators)
	expertise := indicatorScore(text, expertiseIndicators)
	authority := indicatorScore(text, authoritativenessIndicators)
	trust := indicatorScore(text, trustworthinessIndicators)

	if strings.TrimSpace(content.AuthorCredentials) != "" {
		expertise = clampScore(expertise + bonusAuthorCredentials)
		authority = clampScore(authority + bonusAuthorCredentials/2)
	}
	if verifiedFactCount(content) > 0 {
		trust = clampScore(trust + bonusVerifiedFacts)
	}
	if strings.Contains(content.Body, "http://") || strings.Contains(content.Body, "https://") {
		authority = clampScore(authority + bonusExternalLinks)
		trust = clampScore(trust + bonusExternalLinks/2)
	}

	result := &domain.EeatResult{
		Experience:        experience,
		Expertise:         expertise,
		Authoritativeness: authority,
		Trustworthiness:   trust,
		Overall:           (experience + expertise + authority + trust) / 4,
	}
	result.Recommendations = e.recommendations(result, content)

	if e.logger != nil {
		e.logger.Debug("eeat analysis complete",
			logger.String("content_id", content.ID),
			logger.Int("overall", result.Overall),
			logger.Int("recommendations", len(result.Recommendations)))
	}

	return result, nil
}

// indicatorScore converts indicator hits into a 0-100 score. Distinct
// indicators matter more than repetition, so each one counts once.
func indicatorScore(normalized string, indicators []string) int {
	hits := 0
	for _, ind := range indicators {
		if strings.Contains(normalized, ind) {
			hits++
			if hits == eeatSignalCap {
				break
			}
		}
	}
	return clampScore(eeatBaseScore + hits*eeatIndicatorValue)
}

func (e *EeatOptimizer) recommendations(r *domain.EeatResult, content *domain.Content) []string {
	var recs []string

	if r.Experience < recommendThreshold {
		recs = append(recs, "Add first-hand experience: describe what you tested, tried, or measured yourself.")
	}
	if r.Expertise < recommendThreshold {
		if strings.TrimSpace(content.AuthorCredentials) == "" {
			recs = append(recs, "Add author credentials and deepen the technical detail with data or methodology.")
		} else {
			recs = append(recs, "Deepen the technical detail: include data, methodology, or benchmarks.")
		}
	}
	if r.Authoritativeness < recommendThreshold {
		recs = append(recs, "Cite recognized sources and link to authoritative references.")
	}
	if r.Trustworthiness < recommendThreshold {
		recs = append(recs, "Add citations, disclosures, and an updated-on date to build reader trust.")
	}

	return recs
}

func verifiedFactCount(content *domain.Content) int {
	n := 0
	for _, f := range content.Facts {
		if f.Verified {
			n++
		}
	}
	return n
}

func clampScore(score int) int {
	if score > eeatMaxScore {
		return eeatMaxScore
	}
	if score < 0 {
		return 0
	}
	return score
}
