package domain

// UserProfile is the per-query input assembled by the conversational layer.
// Dates stay in the user's day.month.year text form; the engine parses them.
type UserProfile struct {
	Status           StatusCode `yaml:"status" json:"status"`
	Gender           Gender     `yaml:"gender" json:"gender"`
	BirthDate        string     `yaml:"birth_date" json:"birth_date"`
	EntryDate        string     `yaml:"entry_date" json:"entry_date"`
	ContributionDays int        `yaml:"contribution_days" json:"contribution_days"`
}

// EligibilityResult is the delta between a rule and a profile.
// Age and MissingAge are nil when the birth date could not be read.
type EligibilityResult struct {
	RequiredDays int  `yaml:"required_days" json:"required_days"`
	RequiredAge  int  `yaml:"required_age" json:"required_age"`
	Age          *int `yaml:"age" json:"age,omitempty"`
	MissingDays  int  `yaml:"missing_days" json:"missing_days"`
	MissingAge   *int `yaml:"missing_age" json:"missing_age,omitempty"`
	Eligible     bool `yaml:"eligible" json:"eligible"`
}

// TrackOutcome is the selection and evaluation result of one track.
// Rule is nil when no rule covers the entry date.
type TrackOutcome struct {
	Track  Track              `yaml:"track" json:"track"`
	Rule   *ExtractedRule     `yaml:"rule" json:"rule,omitempty"`
	Result *EligibilityResult `yaml:"result" json:"result,omitempty"`
}

// Matched reports whether a rule was selected for the track.
func (o TrackOutcome) Matched() bool {
	return o.Rule != nil
}

// Report is everything the presentation layer needs for one query.
type Report struct {
	Profile       UserProfile  `yaml:"profile" json:"profile"`
	ReferenceYear int          `yaml:"reference_year" json:"reference_year"`
	RuleCount     int          `yaml:"rule_count" json:"rule_count"`
	Full          TrackOutcome `yaml:"full" json:"full"`
	Partial       TrackOutcome `yaml:"partial" json:"partial"`
}

// Outcome returns the outcome for track t.
func (r *Report) Outcome(t Track) TrackOutcome {
	if t == TrackPartial {
		return r.Partial
	}
	return r.Full
}
