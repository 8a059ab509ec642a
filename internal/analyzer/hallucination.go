package analyzer

import (
	"regexp"
	"sort"
	"strings"

	"github.com/seoforge/content-analyzer/internal/domain"
	"github.com/seoforge/content-analyzer/internal/platform/logger"
)

// Heuristic weights. They sum to 1.0 so the aggregate stays on a 0-100
// scale.
const (
	weightContradictedFacts      = 0.30
	weightInternalContradictions = 0.25
	weightSuspiciousClaims       = 0.20
	weightOverconfidence         = 0.15
	weightTopicDrift             = 0.10
)

// Risk bucket thresholds over the aggregate score.
const (
	riskLowMax    = 25
	riskMediumMax = 50
	riskHighMax   = 75
)

// Per-flag sub-score increments. Each heuristic sub-score saturates at 100.
const (
	contradictedFactPoints      = 40
	internalContradictionPoints = 30
	overconfidencePoints        = 15
	suspiciousClaimPoints       = 25
	topicDriftPoints            = 20

	maxHeuristicScore = 100
)

// Heuristic names, used as keys in HallucinationResult.Heuristics.
const (
	heuristicContradictedFacts      = "contradicted_facts"
	heuristicInternalContradictions = "internal_contradictions"
	heuristicOverconfidence         = "overconfidence"
	heuristicSuspiciousClaims       = "suspicious_claims"
	heuristicTopicDrift             = "topic_drift"
)

const (
	// Minimum shared content words before two sentences are compared for
	// contradiction.
	contradictionOverlapMin = 3

	// Confidence assigned to flags, by how direct the evidence is.
	confidenceFactCheck     = 0.9
	confidenceContradiction = 0.6
	confidenceOverconfident = 0.5
	confidenceSuspicious    = 0.65
	confidenceDrift         = 0.4
)

// overconfidenceTerms are absolutist markers that rarely survive fact
// checking.
var overconfidenceTerms = []string{
	"always", "never fails", "definitely", "undoubtedly", "certainly",
	"without a doubt", "guaranteed", "absolutely", "unquestionably",
	"every single time", "proven beyond doubt", "impossible to fail",
	"100 percent", "100%",
}

// negationTerms signal a sentence asserting the opposite of another.
var negationTerms = []string{
	"not", "never", "no longer", "cannot", "can't", "won't", "doesn't",
	"don't", "isn't", "aren't", "wasn't", "weren't",
}

// suspiciousClaimPatterns match precise-sounding statistics with no nearby
// attribution.
var suspiciousClaimPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b\d{1,3}(?:\.\d+)?%\s+of\b`),
	regexp.MustCompile(`(?i)\b(?:exactly|precisely)\s+\d`),
	regexp.MustCompile(`(?i)\b\d+(?:,\d{3})+\s+(?:people|users|customers|businesses|websites)\b`),
	regexp.MustCompile(`(?i)\bin\s+(?:19|20)\d{2},?\s+(?:a|the)\s+study\b`),
}

// attributionMarkers suppress the suspicious-claim flag when the sentence
// cites a source.
var attributionMarkers = []string{
	"according to", "source:", "cited", "reported by", "published",
	"survey by", "data from", "study by", "per the",
}

// HallucinationDetector scores generated content for fabrication risk using
// five independent heuristics, none of which require an external model.
type HallucinationDetector struct {
	logger logger.Logger
}

func NewHallucinationDetector(log logger.Logger) *HallucinationDetector {
	return &HallucinationDetector{logger: log}
}

// Detect runs all heuristics over the content and aggregates them into a
// weighted 0-100 score with a risk bucket. Score 0 means no risk signals.
func (h *HallucinationDetector) Detect(content *domain.Content) *domain.HallucinationResult {
	sentences := splitSentences(content.Body)

	var flags []domain.HallucinationFlag
	heuristics := make(map[string]int, 5)

	score, found := h.checkFacts(content, sentences)
	heuristics[heuristicContradictedFacts] = score
	flags = append(flags, found...)

	score, found = h.checkInternalContradictions(sentences)
	heuristics[heuristicInternalContradictions] = score
	flags = append(flags, found...)

	score, found = h.checkOverconfidence(sentences)
	heuristics[heuristicOverconfidence] = score
	flags = append(flags, found...)

	score, found = h.checkSuspiciousClaims(sentences)
	heuristics[heuristicSuspiciousClaims] = score
	flags = append(flags, found...)

	score, found = h.checkTopicDrift(content, sentences)
	heuristics[heuristicTopicDrift] = score
	flags = append(flags, found...)

	weighted := float64(heuristics[heuristicContradictedFacts])*weightContradictedFacts +
		float64(heuristics[heuristicInternalContradictions])*weightInternalContradictions +
		float64(heuristics[heuristicSuspiciousClaims])*weightSuspiciousClaims +
		float64(heuristics[heuristicOverconfidence])*weightOverconfidence +
		float64(heuristics[heuristicTopicDrift])*weightTopicDrift

	total := int(weighted + 0.5)
	if total > maxHeuristicScore {
		total = maxHeuristicScore
	}

	result := &domain.HallucinationResult{
		Score:      total,
		RiskLevel:  riskLevelFor(total),
		Flags:      flags,
		Heuristics: heuristics,
	}

	if h.logger != nil {
		h.logger.Debug("hallucination detection complete",
			logger.String("content_id", content.ID),
			logger.Int("score", total),
			logger.String("risk_level", result.RiskLevel),
			logger.Int("flags", len(flags)))
	}

	return result
}

func riskLevelFor(score int) string {
	switch {
	case score < riskLowMax:
		return domain.RiskLow
	case score < riskMediumMax:
		return domain.RiskMedium
	case score < riskHighMax:
		return domain.RiskHigh
	default:
		return domain.RiskCritical
	}
}

// checkFacts flags sentences that repeat claims the fact-check pipeline
// marked unverified. A claim is considered repeated when most of its content
// words appear in the sentence.
func (h *HallucinationDetector) checkFacts(content *domain.Content, sentences []string) (int, []domain.HallucinationFlag) {
	var flags []domain.HallucinationFlag
	score := 0

	for _, fact := range content.Facts {
		if fact.Verified {
			continue
		}
		claimWords := contentWords(fact.Claim)
		if len(claimWords) == 0 {
			continue
		}
		for idx, sentence := range sentences {
			if wordOverlap(claimWords, contentWords(sentence)) < claimOverlapRatio(len(claimWords)) {
				continue
			}
			flags = append(flags, domain.HallucinationFlag{
				Type:       "contradicted_fact",
				Sentence:   sentence,
				Position:   idx,
				Confidence: confidenceFactCheck,
				Detail:     "repeats unverified claim: " + truncateWords(fact.Claim, titleExcerptWordLimit),
			})
			score += contradictedFactPoints
			break
		}
	}

	return capScore(score), flags
}

// checkInternalContradictions compares sentence pairs that share enough
// content words and differ in negation.
func (h *HallucinationDetector) checkInternalContradictions(sentences []string) (int, []domain.HallucinationFlag) {
	var flags []domain.HallucinationFlag
	score := 0

	type indexed struct {
		idx     int
		words   map[string]bool
		negated bool
	}
	prepared := make([]indexed, len(sentences))
	for i, s := range sentences {
		prepared[i] = indexed{idx: i, words: contentWords(s), negated: hasNegation(s)}
	}

	for i := 0; i < len(prepared); i++ {
		for j := i + 1; j < len(prepared); j++ {
			a, b := prepared[i], prepared[j]
			if a.negated == b.negated {
				continue
			}
			if sharedWords(a.words, b.words) < contradictionOverlapMin {
				continue
			}
			flags = append(flags, domain.HallucinationFlag{
				Type:       "internal_contradiction",
				Sentence:   sentences[b.idx],
				Position:   b.idx,
				Confidence: confidenceContradiction,
				Detail:     "conflicts with: " + truncateWords(sentences[a.idx], titleExcerptWordLimit),
			})
			score += internalContradictionPoints
		}
	}

	return capScore(score), flags
}

// checkOverconfidence flags absolutist language.
func (h *HallucinationDetector) checkOverconfidence(sentences []string) (int, []domain.HallucinationFlag) {
	var flags []domain.HallucinationFlag
	score := 0

	for idx, sentence := range sentences {
		lower := strings.ToLower(sentence)
		for _, term := range overconfidenceTerms {
			if !strings.Contains(lower, term) {
				continue
			}
			flags = append(flags, domain.HallucinationFlag{
				Type:       "overconfidence",
				Sentence:   sentence,
				Position:   idx,
				Confidence: confidenceOverconfident,
				Detail:     "absolutist term: " + term,
			})
			score += overconfidencePoints
			break
		}
	}

	return capScore(score), flags
}

// checkSuspiciousClaims flags precise statistics with no attribution in the
// same sentence.
func (h *HallucinationDetector) checkSuspiciousClaims(sentences []string) (int, []domain.HallucinationFlag) {
	var flags []domain.HallucinationFlag
	score := 0

	for idx, sentence := range sentences {
		if hasAttribution(sentence) {
			continue
		}
		for _, re := range suspiciousClaimPatterns {
			if !re.MatchString(sentence) {
				continue
			}
			flags = append(flags, domain.HallucinationFlag{
				Type:       "suspicious_claim",
				Sentence:   sentence,
				Position:   idx,
				Confidence: confidenceSuspicious,
				Detail:     "specific statistic without attribution",
			})
			score += suspiciousClaimPoints
			break
		}
	}

	return capScore(score), flags
}

// checkTopicDrift flags sentences sharing no content words with the
// document's topic set (keyword plus title plus top body terms).
func (h *HallucinationDetector) checkTopicDrift(content *domain.Content, sentences []string) (int, []domain.HallucinationFlag) {
	topic := topicSet(content)
	if len(topic) == 0 || len(sentences) < minSentencesForDrift {
		return 0, nil
	}

	var flags []domain.HallucinationFlag
	score := 0

	for idx, sentence := range sentences {
		words := contentWords(sentence)
		if len(words) < driftSentenceMinWords {
			continue
		}
		if sharedWords(words, topic) > 0 {
			continue
		}
		flags = append(flags, domain.HallucinationFlag{
			Type:       "topic_drift",
			Sentence:   sentence,
			Position:   idx,
			Confidence: confidenceDrift,
			Detail:     "no overlap with document topic",
		})
		score += topicDriftPoints
	}

	return capScore(score), flags
}

const (
	minSentencesForDrift  = 3
	driftSentenceMinWords = 5
	topicTopTerms         = 15
)

// topicSet builds the document topic vocabulary from keyword, title, and the
// most frequent body terms.
func topicSet(content *domain.Content) map[string]bool {
	topic := contentWords(content.Keyword + " " + content.Title)

	freq := wordFrequency(content.Body)
	type kv struct {
		word  string
		count int
	}
	terms := make([]kv, 0, len(freq))
	for w, c := range freq {
		if c > 1 {
			terms = append(terms, kv{w, c})
		}
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i].count > terms[j].count })
	for i := 0; i < len(terms) && i < topicTopTerms; i++ {
		topic[terms[i].word] = true
	}

	return topic
}

func contentWords(s string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(normalizeText(s)) {
		if !stopwords[w] {
			words[w] = true
		}
	}
	return words
}

func sharedWords(a, b map[string]bool) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for w := range a {
		if b[w] {
			n++
		}
	}
	return n
}

// wordOverlap returns how many of the claim's words appear in the sentence.
func wordOverlap(claim, sentence map[string]bool) int {
	return sharedWords(claim, sentence)
}

// claimOverlapRatio is the minimum shared-word count for a claim of n words
// to count as repeated. Short claims must match fully.
func claimOverlapRatio(n int) int {
	const fullMatchMax = 3
	if n <= fullMatchMax {
		return n
	}
	return (n*2 + 2) / 3 // ceil(2n/3)
}

func hasNegation(sentence string) bool {
	lower := " " + normalizeText(sentence) + " "
	for _, term := range negationTerms {
		if strings.Contains(lower, " "+strings.ReplaceAll(term, "'", " ")+" ") {
			return true
		}
	}
	return false
}

func hasAttribution(sentence string) bool {
	lower := strings.ToLower(sentence)
	for _, marker := range attributionMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func capScore(score int) int {
	if score > maxHeuristicScore {
		return maxHeuristicScore
	}
	return score
}
