// Package message holds the chat and terminal texts and renders reports in
// the user's language.
package message

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/active.*.yaml
var localeFS embed.FS

// DefaultLanguage is used when a session has no language or an unknown one.
const DefaultLanguage = "tr"

// Message IDs.
const (
	Welcome      = "welcome"
	Help         = "help"
	Cancelled    = "cancelled"
	NoSession    = "no_session"
	AskStatus    = "ask_status"
	AskGender    = "ask_gender"
	AskBirthDate = "ask_birth_date"
	AskEntryDate = "ask_entry_date"
	AskDays      = "ask_days"

	InvalidStatus = "invalid_status"
	InvalidGender = "invalid_gender"
	InvalidDate   = "invalid_date"
	InvalidDays   = "invalid_days"
	EngineError   = "engine_error"

	GenderFemale = "gender_female"
	GenderMale   = "gender_male"

	ReportHeader = "report_header"
	TrackFull    = "track_full"
	TrackPartial = "track_partial"
	NoRule       = "no_rule"
	RuleWindow   = "rule_window"
	RequiredDays = "required_days"
	RequiredAge  = "required_age"
	CurrentAge   = "current_age"
	AgeUnknown   = "age_unknown"
	MissingDays  = "missing_days"
	MissingAge   = "missing_age"
	Eligible     = "eligible"
	NotEligible  = "not_eligible"
	Disclaimer   = "disclaimer"
)

// AllIDs lists every message ID; each locale must define all of them.
var AllIDs = []string{
	Welcome, Help, Cancelled, NoSession,
	AskStatus, AskGender, AskBirthDate, AskEntryDate, AskDays,
	InvalidStatus, InvalidGender, InvalidDate, InvalidDays, EngineError,
	GenderFemale, GenderMale,
	ReportHeader, TrackFull, TrackPartial, NoRule, RuleWindow,
	RequiredDays, RequiredAge, CurrentAge, AgeUnknown, MissingDays, MissingAge,
	Eligible, NotEligible, Disclaimer,
}

// Catalog is the loaded set of locales. It is safe for concurrent use.
type Catalog struct {
	bundle    *i18n.Bundle
	languages []string
}

// NewCatalog loads the embedded locale files.
func NewCatalog() (*Catalog, error) {
	bundle := i18n.NewBundle(language.Turkish)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("failed to read locales: %w", err)
	}

	var langs []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".yaml") {
			continue
		}
		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			return nil, fmt.Errorf("failed to load locale %s: %w", name, err)
		}
		langs = append(langs, strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".yaml"))
	}
	sort.Strings(langs)

	return &Catalog{bundle: bundle, languages: langs}, nil
}

// Languages lists the loaded language codes.
func (c *Catalog) Languages() []string {
	return append([]string(nil), c.languages...)
}

// Supports reports whether lang has a locale file.
func (c *Catalog) Supports(lang string) bool {
	for _, l := range c.languages {
		if l == lang {
			return true
		}
	}
	return false
}

// Localizer returns a translator for lang, falling back to Turkish.
func (c *Catalog) Localizer(lang string) *Localizer {
	return &Localizer{l: i18n.NewLocalizer(c.bundle, lang, DefaultLanguage)}
}

// Localizer translates message IDs for one language.
type Localizer struct {
	l *i18n.Localizer
}

// Msg returns the translated message, or the ID itself when missing.
func (l *Localizer) Msg(id string) string {
	return l.Msgf(id, nil)
}

// Msgf is Msg with template data.
func (l *Localizer) Msgf(id string, data map[string]any) string {
	msg, err := l.l.Localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
	if err != nil {
		return id
	}
	return msg
}
