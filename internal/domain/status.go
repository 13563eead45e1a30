package domain

import (
	"fmt"
	"strings"
)

// StatusCode is the SGK employment category selecting the rule table.
type StatusCode string

const (
	Status4A StatusCode = "4A" // employees (SSK)
	Status4B StatusCode = "4B" // self-employed (Bag-Kur)
	Status4C StatusCode = "4C" // civil servants (Emekli Sandigi)
)

// AllStatuses lists the recognized status codes in table order.
var AllStatuses = []StatusCode{Status4A, Status4B, Status4C}

// ParseStatus accepts the spellings users type: "4a", "4/A", "4-a", " 4 A ".
func ParseStatus(s string) (StatusCode, error) {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		switch r {
		case ' ', '/', '-', '(', ')', '.':
			continue
		}
		b.WriteRune(r)
	}
	code := StatusCode(b.String())
	for _, known := range AllStatuses {
		if code == known {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// Gender is both the profile gender and the tag carried by extracted rules.
// GenderUnspecified only appears as a rule tag.
type Gender int

const (
	GenderUnspecified Gender = iota
	GenderMale
	GenderFemale
)

// String returns the lower-case English name.
func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return "unspecified"
	}
}

// Other returns the opposite gender; GenderUnspecified maps to itself.
func (g Gender) Other() Gender {
	switch g {
	case GenderMale:
		return GenderFemale
	case GenderFemale:
		return GenderMale
	default:
		return GenderUnspecified
	}
}

// MarshalText implements encoding.TextMarshaler.
func (g Gender) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// ParseGender accepts Turkish and English forms, including single letters.
// Input is expected to be already lower-cased and accent-folded by the caller
// when it comes from free text; plain ASCII works directly.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kadin", "kadın", "k", "female", "f", "woman":
		return GenderFemale, nil
	case "erkek", "e", "male", "m", "man":
		return GenderMale, nil
	}
	return GenderUnspecified, fmt.Errorf("%w: %q", ErrInvalidGender, s)
}

// Track separates the full retirement rules from the partial (kismi) ones.
type Track int

const (
	TrackFull Track = iota
	TrackPartial
)

// Tracks lists the tracks in evaluation order.
var Tracks = []Track{TrackFull, TrackPartial}

// String returns the track name.
func (t Track) String() string {
	if t == TrackPartial {
		return "partial"
	}
	return "full"
}

// MarshalText implements encoding.TextMarshaler.
func (t Track) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
