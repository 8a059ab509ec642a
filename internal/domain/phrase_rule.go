package domain

import "time"

// PhraseRule represents a custom prohibited-phrase rule stored in Postgres.
// Custom rules are merged with the builtin table at detector reload.
type PhraseRule struct {
	ID           int       `db:"id"           json:"id"`
	Phrase       string    `db:"phrase"       json:"phrase"`
	IsRegex      bool      `db:"is_regex"     json:"is_regex"`
	Category     string    `db:"category"     json:"category"`
	Severity     int       `db:"severity"     json:"severity"` // 1..4
	Replacements []string  `db:"replacements" json:"replacements"`
	Enabled      bool      `db:"enabled"      json:"enabled"`
	Priority     int       `db:"priority"     json:"priority"` // Higher priority rules replace first
	CreatedAt    time.Time `db:"created_at"   json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"   json:"updated_at"`
}

// Phrase categories used by the builtin table and custom rules.
const (
	CategoryAICliche         = "ai_cliche"
	CategoryFiller           = "filler"
	CategoryOverpromise      = "overpromise"
	CategoryVagueAttribution = "vague_attribution"
	CategorySpam             = "spam"
)
