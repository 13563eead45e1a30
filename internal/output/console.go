package output

import (
	"fmt"
	"strings"

	"github.com/emeklilik/sgkcalc/internal/domain"
)

const lineWidth = 80

// ConsoleFormatter renders human readable text.
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

// FormatReport renders both tracks of a report.
func (cf ConsoleFormatter) FormatReport(report *domain.Report) ([]byte, error) {
	var sb strings.Builder
	p := report.Profile

	sb.WriteString("SGK RETIREMENT ELIGIBILITY\n")
	sb.WriteString(strings.Repeat("=", lineWidth) + "\n")
	sb.WriteString(fmt.Sprintf("Status: %s   Gender: %s   Reference year: %d   Rules: %d\n",
		p.Status, p.Gender, report.ReferenceYear, report.RuleCount))
	sb.WriteString(fmt.Sprintf("Birth date: %s   Entry date: %s   Contribution days: %d\n",
		p.BirthDate, p.EntryDate, p.ContributionDays))

	for _, outcome := range []domain.TrackOutcome{report.Full, report.Partial} {
		sb.WriteString("\n")
		cf.writeOutcome(&sb, outcome)
	}
	return []byte(sb.String()), nil
}

func (ConsoleFormatter) writeOutcome(sb *strings.Builder, o domain.TrackOutcome) {
	title := "FULL RETIREMENT"
	if o.Track == domain.TrackPartial {
		title = "PARTIAL RETIREMENT"
	}
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("-", lineWidth) + "\n")

	if !o.Matched() {
		sb.WriteString("No applicable rule for this entry date.\n")
		return
	}

	r, res := o.Rule, o.Result
	sb.WriteString(fmt.Sprintf("  Rule window:       %s (row %d)\n", r.Range, r.Source.Row))
	sb.WriteString(fmt.Sprintf("  Required days:     %d\n", res.RequiredDays))
	sb.WriteString(fmt.Sprintf("  Required age:      %d\n", res.RequiredAge))
	if res.Age != nil {
		sb.WriteString(fmt.Sprintf("  Age:               %d\n", *res.Age))
	} else {
		sb.WriteString("  Age:               unknown\n")
	}
	sb.WriteString(fmt.Sprintf("  Missing days:      %d (%s years)\n", res.MissingDays, FormatYears(res.MissingDays)))
	if res.MissingAge != nil {
		sb.WriteString(fmt.Sprintf("  Missing age:       %d\n", *res.MissingAge))
	}
	verdict := "NOT YET ELIGIBLE"
	if res.Eligible {
		verdict = "ELIGIBLE"
	}
	sb.WriteString(fmt.Sprintf("  Result:            %s\n", verdict))
}

// FormatRules renders the extracted rules as a table.
func (ConsoleFormatter) FormatRules(status domain.StatusCode, rules []domain.ExtractedRule) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("EXTRACTED RULES: %s (%d)\n", status, len(rules)))
	sb.WriteString(strings.Repeat("=", lineWidth) + "\n")
	if len(rules) == 0 {
		sb.WriteString("No rules extracted.\n")
		return []byte(sb.String()), nil
	}

	sb.WriteString(fmt.Sprintf("%-4s %-8s %-12s %-26s %7s %4s %5s\n", "#", "Track", "Gender", "Window", "Days", "Age", "Row"))
	sb.WriteString(strings.Repeat("-", lineWidth) + "\n")
	for i, r := range rules {
		sb.WriteString(fmt.Sprintf("%-4d %-8s %-12s %-26s %7d %4d %5d\n",
			i+1, r.Track, r.Gender, r.Range, r.RequiredDays, r.RequiredAge, r.Source.Row))
	}
	return []byte(sb.String()), nil
}

// FormatPhrases renders the recognized date-range phrases.
func (ConsoleFormatter) FormatPhrases(status domain.StatusCode, phrases []domain.PhraseMatch) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("DATE RANGE PHRASES: %s (%d)\n", status, len(phrases)))
	sb.WriteString(strings.Repeat("=", lineWidth) + "\n")
	for _, p := range phrases {
		sb.WriteString(fmt.Sprintf("%4d:%-2d %-26s %s\n", p.Row, p.Cell, p.Range, p.Text))
	}
	return []byte(sb.String()), nil
}
