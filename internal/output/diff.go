package output

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/emeklilik/sgkcalc/internal/domain"
)

// PhraseLines renders one line per phrase as "<range> | <text>". Row and
// cell positions are left out so that inserting a row in a new data source
// does not show up as a change on every later line.
func PhraseLines(phrases []domain.PhraseMatch) string {
	var sb strings.Builder
	for _, p := range phrases {
		sb.WriteString(fmt.Sprintf("%s | %s\n", p.Range, p.Text))
	}
	return sb.String()
}

// PhraseDiff compares the phrase lists of two tables line by line. Lines
// only in before start with "- ", lines only in after with "+ ". It
// returns "" when the lists are equal.
func PhraseDiff(before, after []domain.PhraseMatch) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(PhraseLines(before), PhraseLines(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix + line)
		}
	}
	return out.String()
}
