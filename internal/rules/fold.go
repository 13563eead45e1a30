package rules

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lower-cases s with Turkish casing rules, strips diacritics, maps the
// dotless i to i and collapses whitespace, so "KADIN", "Kadın" and "kadin"
// all fold to "kadin". Casers and transformers are stateful, so each call
// builds its own.
func Fold(s string) string {
	lowered := cases.Lower(language.Turkish).String(s)
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Map(func(r rune) rune {
			if r == 'ı' {
				return 'i'
			}
			return r
		}),
		norm.NFC,
	)
	folded, _, err := transform.String(t, lowered)
	if err != nil {
		folded = lowered
	}
	return strings.Join(strings.Fields(folded), " ")
}
