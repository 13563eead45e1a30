package domain

import (
	"encoding/json"
	"fmt"
)

// RangeKind tags the DateRange variant.
type RangeKind int

const (
	// RangeExact is a closed interval [Start, End].
	RangeExact RangeKind = iota + 1
	// RangeOpenBefore covers every date up to and including End.
	RangeOpenBefore
	// RangeOpenAfter covers every date from Start on.
	RangeOpenAfter
)

// String returns the kind name used in reports and JSON.
func (k RangeKind) String() string {
	switch k {
	case RangeExact:
		return "exact"
	case RangeOpenBefore:
		return "open_before"
	case RangeOpenAfter:
		return "open_after"
	default:
		return "unknown"
	}
}

// DateRange is the validity window of a rule. Use the constructors; they
// enforce that at least one bound is set and that Exact ranges are ordered.
type DateRange struct {
	Kind  RangeKind
	Start Date
	End   Date
}

// Exact builds a closed interval. ok is false when start is after end.
func Exact(start, end Date) (DateRange, bool) {
	if start.Key() > end.Key() {
		return DateRange{}, false
	}
	return DateRange{Kind: RangeExact, Start: start, End: end}, true
}

// OpenBefore builds the range of all dates <= end.
func OpenBefore(end Date) DateRange {
	return DateRange{Kind: RangeOpenBefore, End: end}
}

// OpenAfter builds the range of all dates >= start.
func OpenAfter(start Date) DateRange {
	return DateRange{Kind: RangeOpenAfter, Start: start}
}

// Contains reports whether the encoded date key falls inside the range.
// Both ends of an Exact range are inclusive.
func (r DateRange) Contains(key int) bool {
	switch r.Kind {
	case RangeExact:
		return key >= r.Start.Key() && key <= r.End.Key()
	case RangeOpenBefore:
		return key <= r.End.Key()
	case RangeOpenAfter:
		return key >= r.Start.Key()
	default:
		return false
	}
}

// String renders the range the way the source tables phrase it.
func (r DateRange) String() string {
	switch r.Kind {
	case RangeExact:
		return fmt.Sprintf("%s - %s", r.Start, r.End)
	case RangeOpenBefore:
		return fmt.Sprintf("%s ve öncesi", r.End)
	case RangeOpenAfter:
		return fmt.Sprintf("%s ve sonrası", r.Start)
	default:
		return ""
	}
}

type dateRangeDoc struct {
	Kind  string `yaml:"kind" json:"kind"`
	Start string `yaml:"start,omitempty" json:"start,omitempty"`
	End   string `yaml:"end,omitempty" json:"end,omitempty"`
}

func (r DateRange) doc() dateRangeDoc {
	out := dateRangeDoc{Kind: r.Kind.String()}
	if r.Kind == RangeExact || r.Kind == RangeOpenAfter {
		out.Start = r.Start.String()
	}
	if r.Kind == RangeExact || r.Kind == RangeOpenBefore {
		out.End = r.End.String()
	}
	return out
}

// MarshalJSON writes the kind and the canonical bound strings.
func (r DateRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.doc())
}

// MarshalYAML writes the same shape as MarshalJSON.
func (r DateRange) MarshalYAML() (any, error) {
	return r.doc(), nil
}
