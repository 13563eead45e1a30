package output

import (
	"github.com/shopspring/decimal"
)

// DaysPerYear is the contribution-day count of one insured year.
const DaysPerYear = 360

// MissingYears converts a day shortfall to years, rounded to one decimal.
func MissingYears(days int) decimal.Decimal {
	if days <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(days)).Div(decimal.NewFromInt(DaysPerYear)).Round(1)
}

// FormatYears renders MissingYears with exactly one decimal.
func FormatYears(days int) string {
	return MissingYears(days).StringFixed(1)
}
