package eligibility

import (
	"fmt"

	"github.com/emeklilik/sgkcalc/internal/domain"
)

// Select returns the rule that applies to an entry date, or nil when no rule
// covers it. Candidates are tried in three tiers, each in source order:
// rules for the requested gender, rules with no gender section, then rules
// for the other gender. The returned pointer refers into rules.
func Select(rules []domain.ExtractedRule, gender domain.Gender, entryDate string) (*domain.ExtractedRule, error) {
	key, err := domain.EncodeDate(entryDate)
	if err != nil {
		return nil, fmt.Errorf("failed to select rule: %w", err)
	}
	return selectByKey(rules, gender, key, nil), nil
}

// SelectTrack is Select restricted to the rules of one track. The
// other-gender fallback is skipped when the requested gender has a rule of
// its own, on any track, covering the entry date: that gender's section is
// complete and another gender's thresholds do not apply.
func SelectTrack(rules []domain.ExtractedRule, track domain.Track, gender domain.Gender, entryDate string) (*domain.ExtractedRule, error) {
	key, err := domain.EncodeDate(entryDate)
	if err != nil {
		return nil, fmt.Errorf("failed to select %s rule: %w", track, err)
	}
	return selectByKey(rules, gender, key, func(r *domain.ExtractedRule) bool {
		return r.Track == track
	}), nil
}

func selectByKey(rules []domain.ExtractedRule, gender domain.Gender, key int, keep func(*domain.ExtractedRule) bool) *domain.ExtractedRule {
	tiers := []domain.Gender{gender, domain.GenderUnspecified, gender.Other()}
	if gender == domain.GenderUnspecified {
		tiers = tiers[:1]
	}
	for _, tier := range tiers {
		if keep != nil && tier != gender && tier != domain.GenderUnspecified && covers(rules, gender, key) {
			break
		}
		for i := range rules {
			r := &rules[i]
			if r.Gender != tier || (keep != nil && !keep(r)) {
				continue
			}
			if r.Range.Contains(key) {
				return r
			}
		}
	}
	return nil
}

// covers reports whether any rule of gender, on any track, contains key.
func covers(rules []domain.ExtractedRule, gender domain.Gender, key int) bool {
	for i := range rules {
		if rules[i].Gender == gender && rules[i].Range.Contains(key) {
			return true
		}
	}
	return false
}
