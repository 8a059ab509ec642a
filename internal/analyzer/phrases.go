package analyzer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/seoforge/content-analyzer/internal/domain"
	"github.com/seoforge/content-analyzer/internal/platform/logger"
)

// Severity deductions applied per match when computing the phrase quality
// score.
const (
	deductionNotice   = 2
	deductionMinor    = 4
	deductionMajor    = 7
	deductionCritical = 12

	maxQualityScore = 100
)

// PhraseDetector finds prohibited phrases in content. Literal phrases are
// matched in a single Aho-Corasick pass; regex entries are scanned
// separately. Custom rules loaded from the database are merged with the
// builtin table and can be hot-reloaded without restart.
type PhraseDetector struct {
	mu       sync.RWMutex
	entries  []PhraseEntry
	matcher  *ahocorasick.Matcher
	phrases  []string         // normalized literal phrases, matcher index order
	byIndex  []int            // matcher index -> entries index
	regexes  []*regexp.Regexp // compiled regex entries, parallel to regexIdx
	regexIdx []int            // regexes index -> entries index
	logger   logger.Logger
}

// NewPhraseDetector builds a detector over the builtin table plus any custom
// rules. Invalid regex rules are skipped with a warning rather than failing
// the whole detector.
func NewPhraseDetector(custom []domain.PhraseRule, log logger.Logger) *PhraseDetector {
	d := &PhraseDetector{logger: log}
	d.entries = mergeRules(custom)
	d.rebuildLocked()

	if log != nil {
		log.Info("phrase detector initialized",
			logger.Int("builtin", len(builtinPhrases)),
			logger.Int("custom", len(custom)),
			logger.Int("literals", len(d.phrases)),
			logger.Int("regexes", len(d.regexes)))
	}
	return d
}

// mergeRules combines the builtin table with enabled custom rules. Custom
// rules are appended after builtins so equal-position matches prefer the
// curated table; priority ordering among custom rules is preserved.
func mergeRules(custom []domain.PhraseRule) []PhraseEntry {
	enabled := make([]domain.PhraseRule, 0, len(custom))
	for _, r := range custom {
		if r.Enabled {
			enabled = append(enabled, r)
		}
	}
	sort.SliceStable(enabled, func(i, j int) bool {
		return enabled[i].Priority > enabled[j].Priority
	})

	entries := make([]PhraseEntry, 0, len(builtinPhrases)+len(enabled))
	entries = append(entries, builtinPhrases...)
	for _, r := range enabled {
		entries = append(entries, PhraseEntry{
			Phrase:       r.Phrase,
			IsRegex:      r.IsRegex,
			Category:     r.Category,
			Severity:     r.Severity,
			Replacements: r.Replacements,
		})
	}
	return entries
}

// rebuildLocked recompiles the matcher and regexes from d.entries.
// MUST be called with d.mu held, or before the detector is shared.
func (d *PhraseDetector) rebuildLocked() {
	d.phrases = d.phrases[:0]
	d.byIndex = d.byIndex[:0]
	d.regexes = d.regexes[:0]
	d.regexIdx = d.regexIdx[:0]

	for i, e := range d.entries {
		if e.IsRegex {
			re, err := regexp.Compile("(?i)" + e.Phrase)
			if err != nil {
				if d.logger != nil {
					d.logger.Warn("skipping invalid phrase regex",
						logger.String("pattern", e.Phrase),
						logger.Error(err))
				}
				continue
			}
			d.regexes = append(d.regexes, re)
			d.regexIdx = append(d.regexIdx, i)
			continue
		}
		normalized := normalizePhrase(e.Phrase)
		if normalized == "" {
			continue
		}
		d.phrases = append(d.phrases, normalized)
		d.byIndex = append(d.byIndex, i)
	}

	if len(d.phrases) > 0 {
		d.matcher = ahocorasick.NewStringMatcher(d.phrases)
	} else {
		d.matcher = nil
	}
}

// UpdateRules hot-reloads custom rules without restart. Thread-safe.
func (d *PhraseDetector) UpdateRules(custom []domain.PhraseRule) {
	entries := mergeRules(custom)

	d.mu.Lock()
	d.entries = entries
	d.rebuildLocked()
	literals, regexes := len(d.phrases), len(d.regexes)
	d.mu.Unlock()

	if d.logger != nil {
		d.logger.Info("phrase detector rules updated",
			logger.Int("custom", len(custom)),
			logger.Int("literals", literals),
			logger.Int("regexes", regexes))
	}
}

// EntryCount returns the number of active entries (builtin plus custom).
func (d *PhraseDetector) EntryCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.phrases) + len(d.regexes)
}

// Detect returns all prohibited-phrase matches in text, sorted by position.
func (d *PhraseDetector) Detect(text string) []domain.PhraseMatch {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return dedupeOverlaps(d.scanLocked(text))
}

// scanLocked collects every literal and regex match, sorted by position but
// not yet deduplicated.
func (d *PhraseDetector) scanLocked(text string) []domain.PhraseMatch {
	if text == "" {
		return nil
	}

	collapsed, offsets := collapseFolded(foldText(text))
	var matches []domain.PhraseMatch

	// Aho-Corasick reports which literals occur; positions come from a
	// follow-up scan restricted to confirmed hits.
	if d.matcher != nil {
		for _, hit := range d.matcher.Match([]byte(collapsed)) {
			if hit >= len(d.phrases) {
				continue
			}
			phrase := d.phrases[hit]
			entry := d.entries[d.byIndex[hit]]
			for _, pos := range boundaryIndexes(collapsed, phrase) {
				start := offsets[pos]
				end := offsets[pos+len(phrase)-1] + 1
				matches = append(matches, domain.PhraseMatch{
					Phrase:       text[start:end],
					Category:     entry.Category,
					Severity:     entry.Severity,
					Position:     start,
					Context:      contextSnippet(text, start, end),
					Replacements: entry.Replacements,
				})
			}
		}
	}

	for i, re := range d.regexes {
		entry := d.entries[d.regexIdx[i]]
		for _, loc := range re.FindAllStringIndex(text, -1) {
			matches = append(matches, domain.PhraseMatch{
				Phrase:       text[loc[0]:loc[1]],
				Category:     entry.Category,
				Severity:     entry.Severity,
				Position:     loc[0],
				Context:      contextSnippet(text, loc[0], loc[1]),
				Replacements: entry.Replacements,
			})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Position != matches[j].Position {
			return matches[i].Position < matches[j].Position
		}
		return matches[i].Severity > matches[j].Severity
	})

	return matches
}

// Sanitize replaces every detected phrase with its first suggested
// replacement (or removes it when the suggestion is empty) and returns the
// cleaned text with the matches that were applied. When candidate matches
// overlap, the most severe one wins; ties go to the earlier position.
func (d *PhraseDetector) Sanitize(text string) (string, []domain.PhraseMatch) {
	d.mu.RLock()
	candidates := d.scanLocked(text)
	d.mu.RUnlock()

	if len(candidates) == 0 {
		return text, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Severity != candidates[j].Severity {
			return candidates[i].Severity > candidates[j].Severity
		}
		return candidates[i].Position < candidates[j].Position
	})

	applied := make([]domain.PhraseMatch, 0, len(candidates))
	for _, m := range candidates {
		if overlapsAny(applied, m) {
			continue
		}
		applied = append(applied, m)
	}

	sort.Slice(applied, func(i, j int) bool {
		return applied[i].Position < applied[j].Position
	})

	// Apply back to front so earlier positions stay valid.
	out := text
	for i := len(applied) - 1; i >= 0; i-- {
		m := applied[i]
		replacement := ""
		if len(m.Replacements) > 0 {
			replacement = m.Replacements[0]
		}
		out = out[:m.Position] + replacement + out[m.Position+len(m.Phrase):]
	}

	return collapseSpaces(out), applied
}

func overlapsAny(applied []domain.PhraseMatch, m domain.PhraseMatch) bool {
	for _, a := range applied {
		if m.Position < a.Position+len(a.Phrase) && a.Position < m.Position+len(m.Phrase) {
			return true
		}
	}
	return false
}

// QualityScore converts matches into a 0-100 phrase quality score. Higher
// is cleaner. Deductions are severity-weighted and scaled against content
// length so one slip in a long article is not punished like one in a tweet.
func (d *PhraseDetector) QualityScore(text string, matches []domain.PhraseMatch) int {
	words := countWords(text)
	if words == 0 {
		return maxQualityScore
	}

	deduction := 0.0
	for _, m := range matches {
		deduction += float64(severityDeduction(m.Severity))
	}

	// Scale against a 300-word baseline. Shorter content is penalized at
	// full weight; longer content proportionally less per match.
	const baselineWords = 300
	if words > baselineWords {
		deduction *= float64(baselineWords) / float64(words)
	}

	score := maxQualityScore - int(deduction+0.5)
	if score < 0 {
		score = 0
	}
	return score
}

func severityDeduction(severity int) int {
	switch severity {
	case domain.SeverityCritical:
		return deductionCritical
	case domain.SeverityMajor:
		return deductionMajor
	case domain.SeverityMinor:
		return deductionMinor
	default:
		return deductionNotice
	}
}

// dedupeOverlaps drops matches contained within an earlier, longer match.
// Input must be sorted by position.
func dedupeOverlaps(matches []domain.PhraseMatch) []domain.PhraseMatch {
	if len(matches) < 2 {
		return matches
	}
	out := matches[:0]
	lastEnd := -1
	for _, m := range matches {
		if m.Position < lastEnd {
			continue
		}
		out = append(out, m)
		if end := m.Position + len(m.Phrase); end > lastEnd {
			lastEnd = end
		}
	}
	return out
}

// foldText lowercases text and blanks punctuation while preserving byte
// offsets, so positions found in the folded text map directly back to the
// original. Multi-byte punctuation runes become runs of spaces of the same
// byte width.
func foldText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			lower := unicode.ToLower(r)
			if utf8.RuneLen(lower) != utf8.RuneLen(r) {
				lower = r
			}
			b.WriteRune(lower)
			continue
		}
		for i := 0; i < utf8.RuneLen(r); i++ {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// normalizePhrase folds a literal phrase the same way foldText folds
// content, then collapses runs of spaces so the phrase matches regardless of
// the punctuation that produced the gaps.
func normalizePhrase(phrase string) string {
	return strings.Join(strings.Fields(foldText(phrase)), " ")
}

// collapseFolded squeezes runs of spaces in folded text and returns, per byte
// of the collapsed form, the index of the originating byte in the input. This
// is what lets a normalized needle like "rank 1 on google" find "rank #1 on
// google": the punctuation byte folds to a space and then collapses away, yet
// match positions still map back to the original text.
func collapseFolded(folded string) (string, []int) {
	var b strings.Builder
	b.Grow(len(folded))
	offsets := make([]int, 0, len(folded))
	prevSpace := true
	for i := 0; i < len(folded); i++ {
		c := folded[i]
		if c == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		b.WriteByte(c)
		offsets = append(offsets, i)
	}
	return b.String(), offsets
}

// boundaryIndexes returns the byte offsets of every occurrence of phrase in
// folded that sits on word boundaries.
func boundaryIndexes(folded, phrase string) []int {
	var positions []int
	offset := 0
	for {
		i := strings.Index(folded[offset:], phrase)
		if i < 0 {
			return positions
		}
		pos := offset + i
		end := pos + len(phrase)
		startOK := pos == 0 || folded[pos-1] == ' '
		endOK := end == len(folded) || folded[end] == ' '
		if startOK && endOK {
			positions = append(positions, pos)
		}
		offset = pos + 1
	}
}

// collapseSpaces squeezes runs of spaces and tidies space before
// punctuation left behind by removals.
func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevSpace := false
	for _, r := range s {
		if r == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			if prevSpace && (r == '.' || r == ',' || r == '!' || r == '?' || r == ';' || r == ':') {
				// Drop the space before punctuation.
				trimmed := b.String()
				b.Reset()
				b.WriteString(strings.TrimRight(trimmed, " "))
			}
			prevSpace = false
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// ValidatePhraseRule checks a custom rule before it is persisted.
func ValidatePhraseRule(r *domain.PhraseRule) error {
	if strings.TrimSpace(r.Phrase) == "" {
		return fmt.Errorf("phrase is required")
	}
	if r.IsRegex {
		if _, err := regexp.Compile("(?i)" + r.Phrase); err != nil {
			return fmt.Errorf("invalid regex %q: %w", r.Phrase, err)
		}
	}
	switch r.Category {
	case domain.CategoryAICliche, domain.CategoryFiller, domain.CategoryOverpromise,
		domain.CategoryVagueAttribution, domain.CategorySpam:
	default:
		return fmt.Errorf("unknown category %q", r.Category)
	}
	if r.Severity < domain.SeverityNotice || r.Severity > domain.SeverityCritical {
		return fmt.Errorf("severity must be between %d and %d", domain.SeverityNotice, domain.SeverityCritical)
	}
	return nil
}
