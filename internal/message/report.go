package message

import (
	"strings"

	"github.com/emeklilik/sgkcalc/internal/domain"
	"github.com/emeklilik/sgkcalc/internal/output"
)

// GenderLabel returns the localized gender name.
func (l *Localizer) GenderLabel(g domain.Gender) string {
	switch g {
	case domain.GenderFemale:
		return l.Msg(GenderFemale)
	case domain.GenderMale:
		return l.Msg(GenderMale)
	default:
		return "-"
	}
}

// Report renders a report as plain chat text. The partial track is only
// shown when a partial rule was found.
func (l *Localizer) Report(report *domain.Report) string {
	var sb strings.Builder
	sb.WriteString(l.Msgf(ReportHeader, map[string]any{
		"Status": string(report.Profile.Status),
		"Gender": l.GenderLabel(report.Profile.Gender),
		"Year":   report.ReferenceYear,
	}))
	sb.WriteString("\n\n")

	sb.WriteString(l.outcome(report.Full))
	if report.Partial.Matched() {
		sb.WriteString("\n\n")
		sb.WriteString(l.outcome(report.Partial))
	}

	sb.WriteString("\n\n")
	sb.WriteString(l.Msg(Disclaimer))
	return sb.String()
}

func (l *Localizer) outcome(o domain.TrackOutcome) string {
	title := l.Msg(TrackFull)
	if o.Track == domain.TrackPartial {
		title = l.Msg(TrackPartial)
	}
	if !o.Matched() {
		return title + "\n" + l.Msg(NoRule)
	}

	res := o.Result
	lines := []string{
		title,
		l.Msgf(RuleWindow, map[string]any{"Window": o.Rule.Range.String()}),
		l.Msgf(RequiredDays, map[string]any{"Days": res.RequiredDays}),
		l.Msgf(RequiredAge, map[string]any{"Age": res.RequiredAge}),
	}
	if res.Age != nil {
		lines = append(lines, l.Msgf(CurrentAge, map[string]any{"Age": *res.Age}))
	} else {
		lines = append(lines, l.Msg(AgeUnknown))
	}
	lines = append(lines, l.Msgf(MissingDays, map[string]any{
		"Days":  res.MissingDays,
		"Years": output.FormatYears(res.MissingDays),
	}))
	if res.MissingAge != nil {
		lines = append(lines, l.Msgf(MissingAge, map[string]any{"Age": *res.MissingAge}))
	}
	if res.Eligible {
		lines = append(lines, l.Msg(Eligible))
	} else {
		lines = append(lines, l.Msg(NotEligible))
	}
	return strings.Join(lines, "\n")
}
