package analyzer

import "github.com/seoforge/content-analyzer/internal/domain"

// PhraseEntry is one row of the prohibited-phrase table. Phrase holds a
// lowercase literal unless IsRegex is set, in which case it is a regex
// source compiled at detector construction.
type PhraseEntry struct {
	Phrase       string
	IsRegex      bool
	Category     string
	Severity     int
	Replacements []string
}

// builtinPhrases is the curated table of phrases that flag generated content
// as formulaic, spammy, or untrustworthy. Literal phrases are matched via
// Aho-Corasick; regex entries are scanned separately.
var builtinPhrases = []PhraseEntry{
	// AI-telltale cliches
	{Phrase: "in today's digital landscape", Category: domain.CategoryAICliche, Severity: domain.SeverityMajor, Replacements: []string{"today", "now"}},
	{Phrase: "in today's fast-paced world", Category: domain.CategoryAICliche, Severity: domain.SeverityMajor, Replacements: []string{"today"}},
	{Phrase: "in the ever-evolving world of", Category: domain.CategoryAICliche, Severity: domain.SeverityMajor, Replacements: []string{"in"}},
	{Phrase: "in the ever-changing landscape", Category: domain.CategoryAICliche, Severity: domain.SeverityMajor, Replacements: []string{"today"}},
	{Phrase: "delve into", Category: domain.CategoryAICliche, Severity: domain.SeverityMinor, Replacements: []string{"examine", "look at"}},
	{Phrase: "delves into", Category: domain.CategoryAICliche, Severity: domain.SeverityMinor, Replacements: []string{"examines"}},
	{Phrase: "let's dive in", Category: domain.CategoryAICliche, Severity: domain.SeverityMinor, Replacements: []string{"here is how it works"}},
	{Phrase: "dive deep into", Category: domain.CategoryAICliche, Severity: domain.SeverityMinor, Replacements: []string{"examine"}},
	{Phrase: "it's important to note that", Category: domain.CategoryAICliche, Severity: domain.SeverityMinor, Replacements: []string{"note that", ""}},
	{Phrase: "it is important to note that", Category: domain.CategoryAICliche, Severity: domain.SeverityMinor, Replacements: []string{"note that", ""}},
	{Phrase: "it's worth noting that", Category: domain.CategoryAICliche, Severity: domain.SeverityMinor, Replacements: []string{"notably,"}},
	{Phrase: "it is worth mentioning", Category: domain.CategoryAICliche, Severity: domain.SeverityMinor, Replacements: []string{"notably,"}},
	{Phrase: "unleash the power of", Category: domain.CategoryAICliche, Severity: domain.SeverityMajor, Replacements: []string{"use"}},
	{Phrase: "unlock the potential", Category: domain.CategoryAICliche, Severity: domain.SeverityMajor, Replacements: []string{"get more from"}},
	{Phrase: "unlock the secrets", Category: domain.CategoryAICliche, Severity: domain.SeverityMajor, Replacements: []string{"learn"}},
	{Phrase: "game-changer", Category: domain.CategoryAICliche, Severity: domain.SeverityMinor, Replacements: []string{"significant improvement"}},
	{Phrase: "game changer", Category: domain.CategoryAICliche, Severity: domain.SeverityMinor, Replacements: []string{"significant improvement"}},
	{Phrase: "revolutionize the way", Category: domain.CategoryAICliche, Severity: domain.SeverityMinor, Replacements: []string{"change the way"}},
	{Phrase: "a testament to", Category: domain.CategoryAICliche, Severity: domain.SeverityMinor, Replacements: []string{"evidence of"}},
	{Phrase: "the realm of", Category: domain.CategoryAICliche, Severity: domain.SeverityMinor, Replacements: []string{"the field of", ""}},
	{Phrase: "navigating the complexities", Category: domain.CategoryAICliche, Severity: domain.SeverityMajor, Replacements: []string{"handling"}},
	{Phrase: "the digital age", Category: domain.CategoryAICliche, Severity: domain.SeverityNotice, Replacements: []string{"today"}},
	{Phrase: "harness the power", Category: domain.CategoryAICliche, Severity: domain.SeverityMinor, Replacements: []string{"use"}},
	{Phrase: "embark on a journey", Category: domain.CategoryAICliche, Severity: domain.SeverityMajor, Replacements: []string{"start"}},
	{Phrase: "a tapestry of", Category: domain.CategoryAICliche, Severity: domain.SeverityMajor, Replacements: []string{"a mix of"}},
	{Phrase: "elevate your", Category: domain.CategoryAICliche, Severity: domain.SeverityMinor, Replacements: []string{"improve your"}},
	{Phrase: "in conclusion,", Category: domain.CategoryAICliche, Severity: domain.SeverityNotice, Replacements: []string{""}},
	{Phrase: "look no further", Category: domain.CategoryAICliche, Severity: domain.SeverityMinor, Replacements: []string{""}},
	{Phrase: "without further ado", Category: domain.CategoryAICliche, Severity: domain.SeverityMinor, Replacements: []string{""}},
	{Phrase: "the world of seo", Category: domain.CategoryAICliche, Severity: domain.SeverityNotice, Replacements: []string{"seo"}},
	{Phrase: "buckle up", Category: domain.CategoryAICliche, Severity: domain.SeverityMinor, Replacements: []string{""}},
	{Phrase: "cutting-edge", Category: domain.CategoryAICliche, Severity: domain.SeverityNotice, Replacements: []string{"modern"}},
	{Phrase: "seamlessly integrate", Category: domain.CategoryAICliche, Severity: domain.SeverityNotice, Replacements: []string{"integrate"}},
	{Phrase: "robust solution", Category: domain.CategoryAICliche, Severity: domain.SeverityNotice, Replacements: []string{"solution"}},
	{Phrase: "holistic approach", Category: domain.CategoryAICliche, Severity: domain.SeverityNotice, Replacements: []string{"broad approach"}},
	{Phrase: "synergy", Category: domain.CategoryAICliche, Severity: domain.SeverityNotice, Replacements: []string{"cooperation"}},

	// Filler that adds words without information
	{Phrase: "at the end of the day", Category: domain.CategoryFiller, Severity: domain.SeverityMinor, Replacements: []string{"ultimately"}},
	{Phrase: "needless to say", Category: domain.CategoryFiller, Severity: domain.SeverityMinor, Replacements: []string{""}},
	{Phrase: "when it comes to", Category: domain.CategoryFiller, Severity: domain.SeverityNotice, Replacements: []string{"for"}},
	{Phrase: "in order to", Category: domain.CategoryFiller, Severity: domain.SeverityNotice, Replacements: []string{"to"}},
	{Phrase: "due to the fact that", Category: domain.CategoryFiller, Severity: domain.SeverityMinor, Replacements: []string{"because"}},
	{Phrase: "in the event that", Category: domain.CategoryFiller, Severity: domain.SeverityNotice, Replacements: []string{"if"}},
	{Phrase: "for all intents and purposes", Category: domain.CategoryFiller, Severity: domain.SeverityMinor, Replacements: []string{"effectively"}},
	{Phrase: "each and every", Category: domain.CategoryFiller, Severity: domain.SeverityNotice, Replacements: []string{"every"}},
	{Phrase: "first and foremost", Category: domain.CategoryFiller, Severity: domain.SeverityNotice, Replacements: []string{"first"}},
	{Phrase: "last but not least", Category: domain.CategoryFiller, Severity: domain.SeverityNotice, Replacements: []string{"finally"}},
	{Phrase: "as a matter of fact", Category: domain.CategoryFiller, Severity: domain.SeverityNotice, Replacements: []string{"in fact"}},
	{Phrase: "it goes without saying", Category: domain.CategoryFiller, Severity: domain.SeverityMinor, Replacements: []string{""}},
	{Phrase: "the fact of the matter is", Category: domain.CategoryFiller, Severity: domain.SeverityMinor, Replacements: []string{""}},
	{Phrase: "in this day and age", Category: domain.CategoryFiller, Severity: domain.SeverityMinor, Replacements: []string{"today"}},
	{Phrase: "a wide range of", Category: domain.CategoryFiller, Severity: domain.SeverityNotice, Replacements: []string{"many"}},
	{Phrase: "a plethora of", Category: domain.CategoryFiller, Severity: domain.SeverityMinor, Replacements: []string{"many"}},
	{Phrase: "a myriad of", Category: domain.CategoryFiller, Severity: domain.SeverityMinor, Replacements: []string{"many"}},
	{Phrase: "at this point in time", Category: domain.CategoryFiller, Severity: domain.SeverityNotice, Replacements: []string{"now"}},
	{Phrase: "on a daily basis", Category: domain.CategoryFiller, Severity: domain.SeverityNotice, Replacements: []string{"daily"}},
	{Phrase: "take it to the next level", Category: domain.CategoryFiller, Severity: domain.SeverityMinor, Replacements: []string{"improve it"}},

	// Overpromising claims that damage trust and invite penalties
	{Phrase: "guaranteed results", Category: domain.CategoryOverpromise, Severity: domain.SeverityCritical, Replacements: []string{"proven approach"}},
	{Phrase: "guaranteed to rank", Category: domain.CategoryOverpromise, Severity: domain.SeverityCritical, Replacements: []string{"designed to improve rankings"}},
	{Phrase: "instant results", Category: domain.CategoryOverpromise, Severity: domain.SeverityCritical, Replacements: []string{"fast results"}},
	{Phrase: "overnight success", Category: domain.CategoryOverpromise, Severity: domain.SeverityMajor, Replacements: []string{"rapid progress"}},
	{Phrase: "rank #1 on google", Category: domain.CategoryOverpromise, Severity: domain.SeverityCritical, Replacements: []string{"improve your rankings"}},
	{Phrase: "number one ranking", Category: domain.CategoryOverpromise, Severity: domain.SeverityMajor, Replacements: []string{"top ranking"}},
	{Phrase: "100% guaranteed", Category: domain.CategoryOverpromise, Severity: domain.SeverityCritical, Replacements: []string{""}},
	{Phrase: "risk-free", Category: domain.CategoryOverpromise, Severity: domain.SeverityMajor, Replacements: []string{"low-risk"}},
	{Phrase: "never fails", Category: domain.CategoryOverpromise, Severity: domain.SeverityMajor, Replacements: []string{"rarely fails"}},
	{Phrase: "works every time", Category: domain.CategoryOverpromise, Severity: domain.SeverityMajor, Replacements: []string{"works reliably"}},
	{Phrase: "effortlessly", Category: domain.CategoryOverpromise, Severity: domain.SeverityNotice, Replacements: []string{"easily"}},
	{Phrase: "the only tool you'll ever need", Category: domain.CategoryOverpromise, Severity: domain.SeverityMajor, Replacements: []string{"a comprehensive tool"}},
	{Phrase: "secret weapon", Category: domain.CategoryOverpromise, Severity: domain.SeverityMinor, Replacements: []string{"advantage"}},
	{Phrase: "magic bullet", Category: domain.CategoryOverpromise, Severity: domain.SeverityMajor, Replacements: []string{"single fix"}},
	{Phrase: "skyrocket your", Category: domain.CategoryOverpromise, Severity: domain.SeverityMajor, Replacements: []string{"grow your"}},

	// Vague attribution that cannot be verified
	{Phrase: "studies show", Category: domain.CategoryVagueAttribution, Severity: domain.SeverityMajor, Replacements: []string{"according to [cite source],"}},
	{Phrase: "research proves", Category: domain.CategoryVagueAttribution, Severity: domain.SeverityMajor, Replacements: []string{"research from [cite source] suggests"}},
	{Phrase: "experts agree", Category: domain.CategoryVagueAttribution, Severity: domain.SeverityMajor, Replacements: []string{"[name expert] notes"}},
	{Phrase: "experts say", Category: domain.CategoryVagueAttribution, Severity: domain.SeverityMajor, Replacements: []string{"[name expert] says"}},
	{Phrase: "science says", Category: domain.CategoryVagueAttribution, Severity: domain.SeverityMajor, Replacements: []string{"according to [cite study],"}},
	{Phrase: "it is widely known", Category: domain.CategoryVagueAttribution, Severity: domain.SeverityMinor, Replacements: []string{""}},
	{Phrase: "everyone knows", Category: domain.CategoryVagueAttribution, Severity: domain.SeverityMinor, Replacements: []string{""}},
	{Phrase: "many people say", Category: domain.CategoryVagueAttribution, Severity: domain.SeverityMinor, Replacements: []string{""}},
	{Phrase: "statistics show", Category: domain.CategoryVagueAttribution, Severity: domain.SeverityMajor, Replacements: []string{"data from [cite source] shows"}},
	{Phrase: "according to research", Category: domain.CategoryVagueAttribution, Severity: domain.SeverityMajor, Replacements: []string{"according to [cite source]"}},

	// Spam signals
	{Phrase: "click here now", Category: domain.CategorySpam, Severity: domain.SeverityCritical, Replacements: []string{"learn more"}},
	{Phrase: "buy now before it's too late", Category: domain.CategorySpam, Severity: domain.SeverityCritical, Replacements: []string{""}},
	{Phrase: "limited time offer", Category: domain.CategorySpam, Severity: domain.SeverityMajor, Replacements: []string{""}},
	{Phrase: "act now", Category: domain.CategorySpam, Severity: domain.SeverityMajor, Replacements: []string{""}},
	{Phrase: "don't miss out", Category: domain.CategorySpam, Severity: domain.SeverityMinor, Replacements: []string{""}},
	{Phrase: "absolutely free", Category: domain.CategorySpam, Severity: domain.SeverityMajor, Replacements: []string{"free"}},
	{Phrase: "no strings attached", Category: domain.CategorySpam, Severity: domain.SeverityMinor, Replacements: []string{""}},
	{Phrase: "once in a lifetime", Category: domain.CategorySpam, Severity: domain.SeverityMajor, Replacements: []string{"rare"}},

	// Regex entries: patterns that can't be expressed as literals
	{Phrase: `\b(as an ai|as a language model)\b`, IsRegex: true, Category: domain.CategoryAICliche, Severity: domain.SeverityCritical, Replacements: []string{""}},
	{Phrase: `\bwhether you('re| are) a\b`, IsRegex: true, Category: domain.CategoryAICliche, Severity: domain.SeverityMinor, Replacements: []string{"if you are a"}},
	{Phrase: `\b\d{2,3}% guaranteed\b`, IsRegex: true, Category: domain.CategoryOverpromise, Severity: domain.SeverityCritical, Replacements: []string{""}},
	{Phrase: `\b(top|best) \d+ (secret|trick|hack)s?\b`, IsRegex: true, Category: domain.CategorySpam, Severity: domain.SeverityMinor, Replacements: []string{"useful techniques"}},
}

// BuiltinPhraseCount returns the size of the builtin table. Exposed for the
// rules API so operators can see how many phrases ship with the service.
func BuiltinPhraseCount() int {
	return len(builtinPhrases)
}
