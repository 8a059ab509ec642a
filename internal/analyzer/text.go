package analyzer

import (
	"strings"
	"unicode"
)

// Text utility constants.
const (
	contextRadius          = 40 // bytes of surrounding text kept per match
	titleExcerptWordLimit  = 10
	minSentenceLengthBytes = 3
)

// normalizeText lowercases the input and replaces non-alphanumeric runes
// with spaces, preserving word boundaries for keyword matching.
func normalizeText(text string) string {
	text = strings.ToLower(text)

	var result strings.Builder
	result.Grow(len(text))

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			result.WriteRune(r)
		} else {
			result.WriteByte(' ')
		}
	}

	return result.String()
}

// splitSentences splits text into sentences on terminal punctuation.
// Fragments shorter than minSentenceLengthBytes are discarded.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	flush := func() {
		s := strings.TrimSpace(current.String())
		if len(s) >= minSentenceLengthBytes {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			flush()
		}
	}
	flush()

	return sentences
}

// contextSnippet returns the text surrounding [start, end), clipped to
// contextRadius bytes on each side with ellipses where clipped.
func contextSnippet(text string, start, end int) string {
	from := start - contextRadius
	if from < 0 {
		from = 0
	}
	to := end + contextRadius
	if to > len(text) {
		to = len(text)
	}

	snippet := text[from:to]
	if from > 0 {
		snippet = "..." + snippet
	}
	if to < len(text) {
		snippet += "..."
	}
	return snippet
}

// wordFrequency counts content words (stopwords excluded) in normalized text.
func wordFrequency(text string) map[string]int {
	freq := make(map[string]int)
	for _, w := range strings.Fields(normalizeText(text)) {
		if stopwords[w] {
			continue
		}
		freq[w]++
	}
	return freq
}

// countWords returns the number of whitespace-separated words.
func countWords(text string) int {
	return len(strings.Fields(text))
}

// truncateWords returns the first n words of s, appending "..." if truncated.
func truncateWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return s
	}
	return strings.Join(words[:n], " ") + "..."
}

// stopwords are excluded from word-frequency analysis so topic overlap is
// computed on content words only.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "from": true,
	"has": true, "have": true, "he": true, "her": true, "his": true,
	"i": true, "if": true, "in": true, "is": true, "it": true, "its": true,
	"of": true, "on": true, "or": true, "our": true, "she": true,
	"that": true, "the": true, "their": true, "them": true, "there": true,
	"these": true, "they": true, "this": true, "to": true, "was": true,
	"we": true, "were": true, "when": true, "which": true, "who": true,
	"will": true, "with": true, "you": true, "your": true, "not": true,
	"can": true, "do": true, "does": true, "so": true, "than": true,
	"then": true, "also": true, "into": true, "about": true, "more": true,
	"most": true, "other": true, "some": true, "such": true, "what": true,
	"how": true, "all": true, "any": true, "been": true, "being": true,
	"had": true, "would": true, "could": true, "should": true, "may": true,
	"might": true, "must": true, "shall": true, "us": true, "out": true,
	"up": true, "no": true, "nor": true, "only": true, "own": true,
	"same": true, "too": true, "very": true, "just": true, "over": true,
}
