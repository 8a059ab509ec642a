// Package analyzer implements the content-quality analysis engine: a
// prohibited-phrase detector, hallucination-risk heuristics, E-E-A-T scoring,
// readability scoring, and regional search profiles, combined by an
// orchestrator into a single analysis result.
package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/seoforge/content-analyzer/internal/domain"
	"github.com/seoforge/content-analyzer/internal/platform/logger"
	"github.com/seoforge/content-analyzer/internal/telemetry"
)

// Version identifies the analyzer build recorded with every result.
const Version = "2.1.0"

// Overall score weights. They sum to 1.0.
const (
	overallPhraseWeight        = 0.25
	overallHallucinationWeight = 0.30
	overallEeatWeight          = 0.25
	overallReadabilityWeight   = 0.20

	// Confidence model constants.
	baseConfidence         = 0.5
	confidencePerSignal    = 0.1
	maxConfidence          = 0.95
	thinContentWordCutoff  = 150
	thinContentConfCeiling = 0.6
)

// Config holds analyzer construction options.
type Config struct {
	Version     string
	CustomRules []domain.PhraseRule
}

// Analyzer orchestrates all analysis passes over a piece of content.
type Analyzer struct {
	phrases       *PhraseDetector
	hallucination *HallucinationDetector
	eeat          *EeatOptimizer
	readability   *ReadabilityScorer
	localSearch   *LocalSearchAnalyzer
	telemetry     *telemetry.Provider
	logger        logger.Logger
	version       string
}

// New creates an analyzer with all passes wired. telemetry may be nil.
func New(log logger.Logger, tp *telemetry.Provider, cfg Config) *Analyzer {
	version := cfg.Version
	if version == "" {
		version = Version
	}
	return &Analyzer{
		phrases:       NewPhraseDetector(cfg.CustomRules, log),
		hallucination: NewHallucinationDetector(log),
		eeat:          NewEeatOptimizer(log),
		readability:   NewReadabilityScorer(log),
		localSearch:   NewLocalSearchAnalyzer(log),
		telemetry:     tp,
		logger:        log,
		version:       version,
	}
}

// Phrases exposes the phrase detector for the standalone endpoints and rule
// hot reload.
func (a *Analyzer) Phrases() *PhraseDetector { return a.phrases }

// Hallucination exposes the hallucination detector for the standalone
// endpoint.
func (a *Analyzer) Hallucination() *HallucinationDetector { return a.hallucination }

// Eeat exposes the E-E-A-T optimizer for the standalone endpoint.
func (a *Analyzer) Eeat() *EeatOptimizer { return a.eeat }

// LocalSearch exposes the regional analyzer for the standalone endpoint.
func (a *Analyzer) LocalSearch() *LocalSearchAnalyzer { return a.localSearch }

// Version returns the analyzer version string.
func (a *Analyzer) Version() string { return a.version }

// Analyze runs every pass over the content and combines them into one
// result. The local-search pass runs only when a region is set.
func (a *Analyzer) Analyze(ctx context.Context, content *domain.Content) (*domain.AnalysisResult, error) {
	start := time.Now()

	a.logger.Debug("starting analysis",
		logger.String("content_id", content.ID),
		logger.String("keyword", content.Keyword),
		logger.Int("word_count", countWords(content.Body)))

	eeatResult, err := a.eeat.Analyze(content)
	if err != nil {
		return nil, fmt.Errorf("eeat analysis failed: %w", err)
	}

	phraseStart := time.Now()
	matches := a.phrases.Detect(content.Body)
	phraseScore := a.phrases.QualityScore(content.Body, matches)
	if a.telemetry != nil {
		a.telemetry.RecordPhraseScan(ctx, time.Since(phraseStart))
		for _, m := range matches {
			a.telemetry.RecordPhraseMatch(ctx, m.Category)
		}
	}

	hallucinationResult := a.hallucination.Detect(content)
	readabilityResult := a.readability.Score(content)

	var localResult *domain.LocalSearchResult
	if content.Region != "" {
		localResult = a.localSearch.Analyze(content.Region)
	}

	overall := overallScore(phraseScore, hallucinationResult.Score, eeatResult.Overall, readabilityResult.Score)

	result := &domain.AnalysisResult{
		ContentID:        content.ID,
		PhraseMatches:    matches,
		PhraseScore:      phraseScore,
		Hallucination:    hallucinationResult,
		Eeat:             eeatResult,
		Readability:      readabilityResult,
		LocalSearch:      localResult,
		OverallScore:     overall,
		Confidence:       a.confidence(content, len(matches), len(hallucinationResult.Flags)),
		RiskLevel:        hallucinationResult.RiskLevel,
		AnalyzerVersion:  a.version,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		AnalyzedAt:       time.Now().UTC(),
	}

	if a.telemetry != nil {
		a.telemetry.RecordAnalysis(ctx, time.Since(start), result.RiskLevel, overall)
	}

	a.logger.Info("analysis complete",
		logger.String("content_id", content.ID),
		logger.Int("overall_score", overall),
		logger.Int("phrase_matches", len(matches)),
		logger.Int("hallucination_score", hallucinationResult.Score),
		logger.String("risk_level", result.RiskLevel),
		logger.Int64("processing_time_ms", result.ProcessingTimeMs))

	return result, nil
}

// AnalyzeBatch analyzes items sequentially, collecting per-item errors
// without aborting the batch.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, items []*domain.Content) ([]*domain.AnalysisResult, []error) {
	results := make([]*domain.AnalysisResult, 0, len(items))
	var errs []error

	for _, item := range items {
		select {
		case <-ctx.Done():
			errs = append(errs, ctx.Err())
			return results, errs
		default:
		}

		result, err := a.Analyze(ctx, item)
		if err != nil {
			errs = append(errs, fmt.Errorf("content %s: %w", item.ID, err))
			continue
		}
		results = append(results, result)
	}

	return results, errs
}

// overallScore combines the four sub-scores. The hallucination score is
// inverted since higher means riskier.
func overallScore(phrase, hallucination, eeat, readability int) int {
	score := float64(phrase)*overallPhraseWeight +
		float64(maxQualityScore-hallucination)*overallHallucinationWeight +
		float64(eeat)*overallEeatWeight +
		float64(readability)*overallReadabilityWeight

	rounded := int(score + 0.5)
	if rounded > maxQualityScore {
		rounded = maxQualityScore
	}
	if rounded < 0 {
		rounded = 0
	}
	return rounded
}

// confidence estimates how reliable the heuristic result is. More signals
// found means higher confidence; very short content caps it low.
func (a *Analyzer) confidence(content *domain.Content, matchCount, flagCount int) float64 {
	conf := baseConfidence + float64(matchCount+flagCount)*confidencePerSignal
	if conf > maxConfidence {
		conf = maxConfidence
	}
	if countWords(content.Body) < thinContentWordCutoff && conf > thinContentConfCeiling {
		conf = thinContentConfCeiling
	}
	return conf
}
