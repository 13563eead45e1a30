package domain

// Plausible-value bands separating contribution-day figures from ages.
// A table figure outside both bands is ignored, so exceptional categories
// (disability, special service) with smaller thresholds are not extracted.
const (
	MinRequiredDays = 3000
	MaxRequiredDays = 20000
	MinRequiredAge  = 38
	MaxRequiredAge  = 80
)

// RuleSource locates the phrase a rule was extracted from.
type RuleSource struct {
	Row    int    `yaml:"row" json:"row"`
	Cell   int    `yaml:"cell" json:"cell"`
	Phrase string `yaml:"phrase" json:"phrase"`
}

// ExtractedRule is one eligibility threshold row of a status table.
// Rules keep the order of their source rows.
type ExtractedRule struct {
	Gender       Gender     `yaml:"gender" json:"gender"`
	Track        Track      `yaml:"track" json:"track"`
	Range        DateRange  `yaml:"range" json:"range"`
	RequiredDays int        `yaml:"required_days" json:"required_days"`
	RequiredAge  int        `yaml:"required_age" json:"required_age"`
	Source       RuleSource `yaml:"source" json:"source"`
}

// PhraseMatch is one date-range phrase recognized in a status table.
type PhraseMatch struct {
	Row   int       `yaml:"row" json:"row"`
	Cell  int       `yaml:"cell" json:"cell"`
	Text  string    `yaml:"text" json:"text"`
	Range DateRange `yaml:"range" json:"range"`
}
