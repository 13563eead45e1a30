package rules

import (
	"strconv"
	"strings"

	"github.com/emeklilik/sgkcalc/internal/domain"
)

// thousandsSeparators are removed from a cell before digit runs are read,
// so "5.400", "5,400" and "5\u00a0400" all give 5400.
var thousandsSeparators = strings.NewReplacer(
	".", "",
	",", "",
	"'", "",
	"’", "",
	"\u00a0", "",
	"\u202f", "",
)

// Bands holds the contribution-days and age figures read from one row.
type Bands struct {
	Days int
	Age  int
}

// ExtractBands reads every number on the row and splits them into the
// days band and the age band. Days is the largest days-band value and Age
// the smallest age-band value. ok is false when either band is empty.
//
// Figures outside both bands are dropped. Tables with exceptional
// thresholds (disability, special service) are therefore not extracted.
func ExtractBands(row domain.Row) (Bands, bool) {
	var (
		b               Bands
		hasDays, hasAge bool
	)
	for _, n := range rowNumbers(row) {
		switch {
		case n >= domain.MinRequiredDays && n <= domain.MaxRequiredDays:
			if !hasDays || n > b.Days {
				b.Days = n
			}
			hasDays = true
		case n >= domain.MinRequiredAge && n <= domain.MaxRequiredAge:
			if !hasAge || n < b.Age {
				b.Age = n
			}
			hasAge = true
		}
	}
	return b, hasDays && hasAge
}

func rowNumbers(row domain.Row) []int {
	var out []int
	for _, cell := range row {
		stripped := thousandsSeparators.Replace(cell)
		for _, run := range digitRun.FindAllString(stripped, -1) {
			n, err := strconv.Atoi(run)
			if err != nil {
				continue
			}
			out = append(out, n)
		}
	}
	return out
}
