package rules

import (
	"strings"

	"github.com/emeklilik/sgkcalc/internal/domain"
)

// Marker tokens, in folded form.
const (
	femaleMarker       = "kadin"
	maleMarker         = "erkek"
	partialTrackMarker = "kismi"
	fullTrackMarker    = "tam emeklilik"
)

// GenderContext is the "current gender section" accumulator threaded through
// a table scan. The zero value is the unspecified section.
type GenderContext struct {
	Current domain.Gender
}

// Observe returns the context after row. The female marker is checked first
// and the male marker second, so a row containing both ends up Male.
func (c GenderContext) Observe(row domain.Row) GenderContext {
	folded := foldRow(row)
	if strings.Contains(folded, femaleMarker) {
		c.Current = domain.GenderFemale
	}
	if strings.Contains(folded, maleMarker) {
		c.Current = domain.GenderMale
	}
	return c
}

// TrackContext follows the full/partial retirement sections of a table the
// same way GenderContext follows gender sections.
type TrackContext struct {
	Current domain.Track
}

// Observe returns the context after row.
func (c TrackContext) Observe(row domain.Row) TrackContext {
	folded := foldRow(row)
	if strings.Contains(folded, partialTrackMarker) {
		c.Current = domain.TrackPartial
	}
	if strings.Contains(folded, fullTrackMarker) {
		c.Current = domain.TrackFull
	}
	return c
}

// Section pairs the gender and track accumulators. Each gender section
// starts on the full track, so a partial block under one gender never
// carries over to the next gender's rows.
type Section struct {
	Gender GenderContext
	Track  TrackContext
}

// Observe returns the section after row. The track is reset before the
// row's own track marker is read, so "ERKEK KISMİ" opens a male partial
// section.
func (s Section) Observe(row domain.Row) Section {
	gender := s.Gender.Observe(row)
	if gender.Current != s.Gender.Current {
		s.Track = TrackContext{}
	}
	s.Gender = gender
	s.Track = s.Track.Observe(row)
	return s
}

func foldRow(row domain.Row) string {
	parts := make([]string, 0, len(row))
	for _, cell := range row {
		if cell != "" {
			parts = append(parts, Fold(cell))
		}
	}
	return strings.Join(parts, " | ")
}
