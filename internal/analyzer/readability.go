package analyzer

import (
	"strings"

	"github.com/seoforge/content-analyzer/internal/domain"
	"github.com/seoforge/content-analyzer/internal/platform/logger"
)

const (
	// Component maximums. Four components sum to 100.
	maxReadabilityComponent = 25

	// Sentence length tiers (average words per sentence).
	sentenceLenIdealMax = 20
	sentenceLenGoodMax  = 25
	sentenceLenFairMax  = 32

	// Word length tiers (average characters per word).
	wordLenIdealMax = 5.0
	wordLenGoodMax  = 6.0
	wordLenFairMax  = 7.0

	// Word count tiers.
	wordCountThin    = 100
	wordCountShort   = 300
	wordCountSolid   = 600
	wordCountOptimal = 1000

	// Long-paragraph threshold in words.
	paragraphLongWords = 150

	// Tier scores shared by the length-based components.
	tierIdeal = 25
	tierGood  = 20
	tierFair  = 12
	tierPoor  = 5

	readabilityFactorCount = 4
)

// ReadabilityScorer evaluates how easy content is to read on a 0-100 scale
// using sentence length, word length, content length, and paragraph
// structure.
type ReadabilityScorer struct {
	logger logger.Logger
}

func NewReadabilityScorer(log logger.Logger) *ReadabilityScorer {
	return &ReadabilityScorer{logger: log}
}

// Score computes the readability score with a per-factor breakdown.
func (r *ReadabilityScorer) Score(content *domain.Content) *domain.ReadabilityResult {
	factors := make(map[string]any, readabilityFactorCount)

	sentences := splitSentences(content.Body)
	words := countWords(content.Body)

	avgSentenceLen := 0.0
	if len(sentences) > 0 {
		avgSentenceLen = float64(words) / float64(len(sentences))
	}
	sentenceScore := sentenceLengthScore(avgSentenceLen)
	factors["sentence_length"] = map[string]any{
		"avg_words": round1(avgSentenceLen),
		"score":     sentenceScore,
		"max":       maxReadabilityComponent,
	}

	avgWordLen := averageWordLength(content.Body)
	wordScore := wordLengthScore(avgWordLen)
	factors["word_length"] = map[string]any{
		"avg_chars": round1(avgWordLen),
		"score":     wordScore,
		"max":       maxReadabilityComponent,
	}

	lengthScore := contentLengthScore(words)
	factors["content_length"] = map[string]any{
		"words": words,
		"score": lengthScore,
		"max":   maxReadabilityComponent,
	}

	structScore, structDetails := r.structureScore(content.Body)
	factors["structure"] = map[string]any{
		"score":   structScore,
		"max":     maxReadabilityComponent,
		"details": structDetails,
	}

	total := sentenceScore + wordScore + lengthScore + structScore
	if total > maxQualityScore {
		total = maxQualityScore
	}

	if r.logger != nil {
		r.logger.Debug("readability score calculated",
			logger.String("content_id", content.ID),
			logger.Int("score", total),
			logger.Int("words", words))
	}

	return &domain.ReadabilityResult{
		Score:   total,
		Factors: factors,
	}
}

func sentenceLengthScore(avg float64) int {
	switch {
	case avg == 0:
		return 0
	case avg <= sentenceLenIdealMax:
		return tierIdeal
	case avg <= sentenceLenGoodMax:
		return tierGood
	case avg <= sentenceLenFairMax:
		return tierFair
	default:
		return tierPoor
	}
}

func wordLengthScore(avg float64) int {
	switch {
	case avg == 0:
		return 0
	case avg <= wordLenIdealMax:
		return tierIdeal
	case avg <= wordLenGoodMax:
		return tierGood
	case avg <= wordLenFairMax:
		return tierFair
	default:
		return tierPoor
	}
}

func contentLengthScore(words int) int {
	switch {
	case words < wordCountThin:
		return tierPoor
	case words < wordCountShort:
		return tierFair
	case words < wordCountSolid:
		return tierGood
	case words <= wordCountOptimal*2:
		return tierIdeal
	default:
		// Very long content reads harder without strong structure.
		return tierGood
	}
}

// structureScore rewards paragraph breaks and penalizes walls of text.
func (r *ReadabilityScorer) structureScore(body string) (int, map[string]any) {
	paragraphs := splitParagraphs(body)
	details := map[string]any{"paragraphs": len(paragraphs)}

	if len(paragraphs) == 0 {
		return 0, details
	}

	longParagraphs := 0
	for _, p := range paragraphs {
		if countWords(p) > paragraphLongWords {
			longParagraphs++
		}
	}
	details["long_paragraphs"] = longParagraphs

	switch {
	case len(paragraphs) == 1 && countWords(body) > paragraphLongWords:
		return tierPoor, details
	case longParagraphs == 0:
		return tierIdeal, details
	case longParagraphs <= len(paragraphs)/3:
		return tierGood, details
	default:
		return tierFair, details
	}
}

func splitParagraphs(body string) []string {
	var paragraphs []string
	for _, p := range strings.Split(body, "\n\n") {
		if strings.TrimSpace(p) != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

func averageWordLength(body string) float64 {
	words := strings.Fields(normalizeText(body))
	if len(words) == 0 {
		return 0
	}
	total := 0
	for _, w := range words {
		total += len(w)
	}
	return float64(total) / float64(len(words))
}

func round1(f float64) float64 {
	return float64(int(f*10+0.5)) / 10
}
