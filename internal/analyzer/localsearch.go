package analyzer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/seoforge/content-analyzer/internal/domain"
	"github.com/seoforge/content-analyzer/internal/platform/logger"
)

// regionProfile holds the search-behavior knowledge for one market.
type regionProfile struct {
	Name             string
	Aliases          []string
	BehaviorPatterns []string
	SeasonalFactors  []string
	LocalTerms       []string
}

// regionProfiles is the curated market table. Lookup is diacritic and case
// insensitive substring matching over name and aliases.
var regionProfiles = []regionProfile{
	{
		Name:    "united states",
		Aliases: []string{"usa", "us", "america", "new york", "california", "texas", "florida"},
		BehaviorPatterns: []string{
			"near me searches dominate local intent",
			"voice search usage above global average",
			"strong preference for review counts and star ratings",
			"mobile-first search behavior across age groups",
		},
		SeasonalFactors: []string{
			"black friday and cyber monday drive q4 commercial queries",
			"back to school surge in august",
			"summer travel queries peak june through august",
		},
		LocalTerms: []string{"zip code", "store hours", "curbside pickup", "bbb accredited"},
	},
	{
		Name:    "united kingdom",
		Aliases: []string{"uk", "britain", "england", "scotland", "wales", "london", "manchester"},
		BehaviorPatterns: []string{
			"high comparison-site usage before purchase",
			"postcode-based local searches",
			"strong trust signals from trustpilot reviews",
		},
		SeasonalFactors: []string{
			"boxing day sales drive late december queries",
			"bank holiday weekends lift travel and diy searches",
			"january sales surge",
		},
		LocalTerms: []string{"postcode", "opening times", "high street", "vat included"},
	},
	{
		Name:    "canada",
		Aliases: []string{"ontario", "quebec", "british columbia", "toronto", "vancouver", "montreal", "montréal"},
		BehaviorPatterns: []string{
			"bilingual search behavior in english and french",
			"provincial regulation queries are common",
			"winter service searches spike early",
		},
		SeasonalFactors: []string{
			"winter tire and heating queries rise in october",
			"cottage and camping season peaks may through september",
			"canada day promotions lift early july queries",
		},
		LocalTerms: []string{"postal code", "gst hst", "provincial", "toque"},
	},
	{
		Name:    "australia",
		Aliases: []string{"sydney", "melbourne", "brisbane", "queensland", "new south wales", "perth"},
		BehaviorPatterns: []string{
			"mobile search share among the highest globally",
			"strong local directory usage for trades",
			"seasons inverted from northern-hemisphere content calendars",
		},
		SeasonalFactors: []string{
			"christmas falls in summer, shifting retail patterns",
			"end of financial year sales in june",
			"back to school in late january",
		},
		LocalTerms: []string{"postcode", "tradie", "arvo", "abn lookup"},
	},
}

// defaultProfile is returned when no region matches.
var defaultProfile = regionProfile{
	Name: "global",
	BehaviorPatterns: []string{
		"optimize for generic intent without regional assumptions",
		"mobile-first behavior is a safe default",
	},
	SeasonalFactors: []string{
		"align seasonal content with the target market calendar",
	},
	LocalTerms: []string{},
}

// LocalSearchAnalyzer maps a region string to regional search behavior,
// seasonal factors, and local terminology.
type LocalSearchAnalyzer struct {
	logger logger.Logger
}

func NewLocalSearchAnalyzer(log logger.Logger) *LocalSearchAnalyzer {
	return &LocalSearchAnalyzer{logger: log}
}

// Analyze resolves the region and returns its profile. Unknown regions get
// the global default with Matched=false rather than an error.
func (l *LocalSearchAnalyzer) Analyze(region string) *domain.LocalSearchResult {
	profile, matched := resolveRegion(region)

	if l.logger != nil && !matched && strings.TrimSpace(region) != "" {
		l.logger.Debug("region not recognized, using global profile",
			logger.String("region", region))
	}

	return &domain.LocalSearchResult{
		Region:           profile.Name,
		Matched:          matched,
		BehaviorPatterns: profile.BehaviorPatterns,
		SeasonalFactors:  profile.SeasonalFactors,
		LocalTerms:       profile.LocalTerms,
	}
}

// Regions returns the canonical names of all known region profiles.
func (l *LocalSearchAnalyzer) Regions() []string {
	names := make([]string, 0, len(regionProfiles))
	for _, p := range regionProfiles {
		names = append(names, p.Name)
	}
	return names
}

func resolveRegion(region string) (regionProfile, bool) {
	needle := foldRegion(region)
	if needle == "" {
		return defaultProfile, false
	}

	for _, p := range regionProfiles {
		if containsPhrase(needle, p.Name) || containsPhrase(p.Name, needle) {
			return p, true
		}
		for _, alias := range p.Aliases {
			if containsPhrase(needle, foldRegion(alias)) {
				return p, true
			}
		}
	}

	return defaultProfile, false
}

// containsPhrase reports whether phrase occurs in s on word boundaries, so
// the alias "us" never matches inside "australia".
func containsPhrase(s, phrase string) bool {
	if phrase == "" {
		return false
	}
	return strings.Contains(" "+s+" ", " "+phrase+" ")
}

// foldRegion lowercases, strips diacritics, and trims the input so
// "Montréal" and "montreal" resolve identically.
func foldRegion(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return removeAccents(s)
}

// removeAccents strips diacritical marks from a string.
func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}
