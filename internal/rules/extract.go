package rules

import (
	"github.com/emeklilik/sgkcalc/internal/domain"
)

// Extract turns the normalized rows of one status table into rules, in row
// order. The gender and track sections are updated on every row before the
// row is tried as a rule; a change of gender returns to the full track. A row becomes a rule when one of its cells, read
// left to right, holds a date range and the row carries both a days figure
// and an age figure. Every other row is skipped.
func Extract(rows []domain.Row) []domain.ExtractedRule {
	var (
		section Section
		out     []domain.ExtractedRule
	)
	for i, row := range rows {
		section = section.Observe(row)

		r, cell, ok := firstRange(row)
		if !ok {
			continue
		}
		bands, ok := ExtractBands(row)
		if !ok {
			continue
		}
		out = append(out, domain.ExtractedRule{
			Gender:       section.Gender.Current,
			Track:        section.Track.Current,
			Range:        r,
			RequiredDays: bands.Days,
			RequiredAge:  bands.Age,
			Source:       domain.RuleSource{Row: i, Cell: cell, Phrase: row[cell]},
		})
	}
	return out
}

// ExtractTable normalizes raw records and extracts their rules.
func ExtractTable(raws []domain.RawRow) []domain.ExtractedRule {
	return Extract(NormalizeRows(raws))
}

// Phrases lists every cell of the table that parses as a date range,
// whether or not its row became a rule.
func Phrases(rows []domain.Row) []domain.PhraseMatch {
	var out []domain.PhraseMatch
	for i, row := range rows {
		for j, cell := range row {
			r, ok := ParseDateRange(cell)
			if !ok {
				continue
			}
			out = append(out, domain.PhraseMatch{Row: i, Cell: j, Text: cell, Range: r})
		}
	}
	return out
}

func firstRange(row domain.Row) (domain.DateRange, int, bool) {
	for j, cell := range row {
		if r, ok := ParseDateRange(cell); ok {
			return r, j, true
		}
	}
	return domain.DateRange{}, -1, false
}
