package eligibility

import (
	"github.com/emeklilik/sgkcalc/internal/domain"
)

// Evaluate compares a profile with a rule as of referenceYear. Age is the
// plain year difference. When the birth date cannot be read, Age and
// MissingAge stay nil and the profile is not eligible.
func Evaluate(rule domain.ExtractedRule, profile domain.UserProfile, referenceYear int) domain.EligibilityResult {
	result := domain.EligibilityResult{
		RequiredDays: rule.RequiredDays,
		RequiredAge:  rule.RequiredAge,
		MissingDays:  max(0, rule.RequiredDays-profile.ContributionDays),
	}

	if birth, err := domain.ParseDate(profile.BirthDate); err == nil {
		age := referenceYear - birth.Year
		missingAge := max(0, rule.RequiredAge-age)
		result.Age = &age
		result.MissingAge = &missingAge
	}

	result.Eligible = result.MissingDays == 0 && result.MissingAge != nil && *result.MissingAge == 0
	return result
}
