package rules

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/emeklilik/sgkcalc/internal/domain"
)

// Marker phrases in folded form. Any of them after a date or year token
// turns the token into an open bound.
var (
	BeforeMarkers = []string{"ve oncesi", "ve daha once", "dahil once", "oncesi", "once"}
	AfterMarkers  = []string{"ve sonrasi", "sonrasi", "sonra", "itibaren"}
)

// Bare 4-digit numbers outside this band are not treated as years, so day
// counts such as "5400 - 9000" never become validity windows.
const (
	minPlausibleYear = 1900
	maxPlausibleYear = 2100
)

var (
	dateCandidate = regexp.MustCompile(`\d+[./-]\d+[./-]\d+`)
	digitRun      = regexp.MustCompile(`\d+`)
)

// Production is one rule of the date-range grammar.
type Production struct {
	Priority int
	Name     string
	Match    func(s scan) (domain.DateRange, bool)
}

// Grammar lists the productions in priority order; the first one that
// matches a cell decides its range.
var Grammar = []Production{
	{Priority: 1, Name: "date-date", Match: matchDateSpan},
	{Priority: 2, Name: "date-before", Match: matchDateBefore},
	{Priority: 3, Name: "date-after", Match: matchDateAfter},
	{Priority: 4, Name: "year-year", Match: matchYearSpan},
	{Priority: 5, Name: "year-before", Match: matchYearBefore},
	{Priority: 6, Name: "year-after", Match: matchYearAfter},
}

// ParseDateRange recognizes a validity-window phrase in one cell.
func ParseDateRange(cell string) (domain.DateRange, bool) {
	r, _, ok := MatchDateRange(cell)
	return r, ok
}

// MatchDateRange is ParseDateRange that also names the production used.
func MatchDateRange(cell string) (domain.DateRange, string, bool) {
	if strings.TrimSpace(cell) == "" {
		return domain.DateRange{}, "", false
	}
	s := newScan(cell)
	for _, p := range Grammar {
		if r, ok := p.Match(s); ok {
			return r, p.Name, true
		}
	}
	return domain.DateRange{}, "", false
}

type token struct {
	start, end int
}

type dateToken struct {
	token
	date domain.Date
}

type yearToken struct {
	token
	year int
}

// scan holds the folded cell text and its date and bare-year tokens.
type scan struct {
	text  string
	dates []dateToken
	years []yearToken
}

func newScan(cell string) scan {
	s := scan{text: Fold(cell)}

	var spans []token
	for _, loc := range dateCandidate.FindAllStringIndex(s.text, -1) {
		d, err := domain.ParseDate(s.text[loc[0]:loc[1]])
		if err != nil {
			continue
		}
		t := token{start: loc[0], end: loc[1]}
		spans = append(spans, t)
		s.dates = append(s.dates, dateToken{token: t, date: d})
	}

	for _, loc := range digitRun.FindAllStringIndex(s.text, -1) {
		if loc[1]-loc[0] != 4 || insideAny(loc[0], spans) {
			continue
		}
		year, _ := strconv.Atoi(s.text[loc[0]:loc[1]])
		if year < minPlausibleYear || year > maxPlausibleYear {
			continue
		}
		s.years = append(s.years, yearToken{token: token{start: loc[0], end: loc[1]}, year: year})
	}
	return s
}

func insideAny(pos int, spans []token) bool {
	for _, t := range spans {
		if pos >= t.start && pos < t.end {
			return true
		}
	}
	return false
}

// hyphenBetween reports whether only a single dash separates a and b.
func (s scan) hyphenBetween(a, b token) bool {
	if b.start < a.end {
		return false
	}
	switch strings.TrimSpace(s.text[a.end:b.start]) {
	case "-", "\u2013", "\u2014":
		return true
	}
	return false
}

// markerAfter reports whether one of markers occurs after t.
func (s scan) markerAfter(t token, markers []string) bool {
	tail := s.text[t.end:]
	for _, m := range markers {
		if strings.Contains(tail, m) {
			return true
		}
	}
	return false
}

func matchDateSpan(s scan) (domain.DateRange, bool) {
	for i := 0; i+1 < len(s.dates); i++ {
		a, b := s.dates[i], s.dates[i+1]
		if !s.hyphenBetween(a.token, b.token) {
			continue
		}
		if r, ok := domain.Exact(a.date, b.date); ok {
			return r, true
		}
	}
	return domain.DateRange{}, false
}

func matchDateBefore(s scan) (domain.DateRange, bool) {
	for _, d := range s.dates {
		if s.markerAfter(d.token, BeforeMarkers) {
			return domain.OpenBefore(d.date), true
		}
	}
	return domain.DateRange{}, false
}

func matchDateAfter(s scan) (domain.DateRange, bool) {
	for _, d := range s.dates {
		if s.markerAfter(d.token, AfterMarkers) {
			return domain.OpenAfter(d.date), true
		}
	}
	return domain.DateRange{}, false
}

func matchYearSpan(s scan) (domain.DateRange, bool) {
	for i := 0; i+1 < len(s.years); i++ {
		a, b := s.years[i], s.years[i+1]
		if !s.hyphenBetween(a.token, b.token) {
			continue
		}
		if r, ok := domain.Exact(domain.FirstDayOfYear(a.year), domain.LastDayOfYear(b.year)); ok {
			return r, true
		}
	}
	return domain.DateRange{}, false
}

func matchYearBefore(s scan) (domain.DateRange, bool) {
	for _, y := range s.years {
		if s.markerAfter(y.token, BeforeMarkers) {
			return domain.OpenBefore(domain.LastDayOfYear(y.year)), true
		}
	}
	return domain.DateRange{}, false
}

func matchYearAfter(s scan) (domain.DateRange, bool) {
	for _, y := range s.years {
		if s.markerAfter(y.token, AfterMarkers) {
			return domain.OpenAfter(domain.FirstDayOfYear(y.year)), true
		}
	}
	return domain.DateRange{}, false
}
