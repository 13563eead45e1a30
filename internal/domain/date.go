package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DateLayout is the canonical textual form of a Date (zero-padded day.month.year).
const DateLayout = "02.01.2006"

// datePattern matches one full date token: 1-2 digit day and month, 4 digit year,
// separated by dot, slash or hyphen.
var datePattern = regexp.MustCompile(`^(\d{1,2})[./-](\d{1,2})[./-](\d{4})$`)

// Date is a calendar day as written in the source tables. Only the digit shape
// is checked; calendar correctness (e.g. 31.02) is not validated.
type Date struct {
	Day   int `yaml:"day" json:"day"`
	Month int `yaml:"month" json:"month"`
	Year  int `yaml:"year" json:"year"`
}

// ParseDate normalizes a single date token such as "8.9.1999", "08/09/1999" or
// "8-9-1999". It returns ErrUnparseableDate for anything else.
func ParseDate(s string) (Date, error) {
	m := datePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Date{}, fmt.Errorf("%w: %q", ErrUnparseableDate, s)
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	return Date{Day: day, Month: month, Year: year}, nil
}

// MustParseDate is ParseDate for literals known to be valid.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FirstDayOfYear returns 01.01 of year.
func FirstDayOfYear(year int) Date {
	return Date{Day: 1, Month: 1, Year: year}
}

// LastDayOfYear returns 31.12 of year.
func LastDayOfYear(year int) Date {
	return Date{Day: 31, Month: 12, Year: year}
}

// Key returns the orderable integer encoding year*10000+month*100+day.
func (d Date) Key() int {
	return d.Year*10000 + d.Month*100 + d.Day
}

// String returns the canonical dd.mm.yyyy form.
func (d Date) String() string {
	return fmt.Sprintf("%02d.%02d.%04d", d.Day, d.Month, d.Year)
}

// EncodeDate parses s and returns its orderable integer key.
func EncodeDate(s string) (int, error) {
	d, err := ParseDate(s)
	if err != nil {
		return 0, err
	}
	return d.Key(), nil
}
