package rules

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emeklilik/sgkcalc/internal/domain"
)

func TestGrammar_PriorityOrder(t *testing.T) {
	require.Len(t, Grammar, 6)
	for i, p := range Grammar {
		assert.Equal(t, i+1, p.Priority, "production %s out of order", p.Name)
		assert.NotNil(t, p.Match)
	}
}

func TestMatchDateRange(t *testing.T) {
	d := domain.MustParseDate

	tests := []struct {
		name       string
		cell       string
		production string
		want       domain.DateRange
	}{
		{
			name:       "date span",
			cell:       "01.01.2000 - 31.12.2005",
			production: "date-date",
			want:       domain.DateRange{Kind: domain.RangeExact, Start: d("01.01.2000"), End: d("31.12.2005")},
		},
		{
			name:       "mixed separators and single digits",
			cell:       "1.1.2000-31/12/2005",
			production: "date-date",
			want:       domain.DateRange{Kind: domain.RangeExact, Start: d("01.01.2000"), End: d("31.12.2005")},
		},
		{
			name:       "en dash",
			cell:       "9-9-1999 – 23-5-2002",
			production: "date-date",
			want:       domain.DateRange{Kind: domain.RangeExact, Start: d("09.09.1999"), End: d("23.05.2002")},
		},
		{
			name:       "date and earlier",
			cell:       "08.09.1999 ve öncesi",
			production: "date-before",
			want:       domain.OpenBefore(d("08.09.1999")),
		},
		{
			name:       "date before, marker later in text",
			cell:       "08.09.1999 tarihinden ÖNCE işe girenler",
			production: "date-before",
			want:       domain.OpenBefore(d("08.09.1999")),
		},
		{
			name:       "date and later",
			cell:       "08.09.1999 ve sonrası",
			production: "date-after",
			want:       domain.OpenAfter(d("08.09.1999")),
		},
		{
			name:       "date from",
			cell:       "01/05/2008 tarihinden itibaren",
			production: "date-after",
			want:       domain.OpenAfter(d("01.05.2008")),
		},
		{
			name:       "span wins over markers",
			cell:       "01.01.2000 - 31.12.2005 ve sonrası",
			production: "date-date",
			want:       domain.DateRange{Kind: domain.RangeExact, Start: d("01.01.2000"), End: d("31.12.2005")},
		},
		{
			name:       "before wins over after",
			cell:       "08.09.1999 öncesi ve sonrası",
			production: "date-before",
			want:       domain.OpenBefore(d("08.09.1999")),
		},
		{
			name:       "year span",
			cell:       "2000-2005",
			production: "year-year",
			want:       domain.DateRange{Kind: domain.RangeExact, Start: d("01.01.2000"), End: d("31.12.2005")},
		},
		{
			name:       "year and earlier",
			cell:       "1999 VE ÖNCESİ",
			production: "year-before",
			want:       domain.OpenBefore(d("31.12.1999")),
		},
		{
			name:       "year and later",
			cell:       "2008 ve sonrası",
			production: "year-after",
			want:       domain.OpenAfter(d("01.01.2008")),
		},
		{
			name:       "year from",
			cell:       "2008 yılından itibaren",
			production: "year-after",
			want:       domain.OpenAfter(d("01.01.2008")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, production, ok := MatchDateRange(tt.cell)
			require.True(t, ok, "expected %q to parse", tt.cell)
			assert.Equal(t, tt.production, production)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDateRange_NoMatch(t *testing.T) {
	cells := []string{
		"",
		"   ",
		"KADIN",
		"5975",
		"08.09.1999",
		"31.12.2005 - 01.01.2000",
		"2005-2000",
		"5400 - 9000",
		"1800 ve sonrası",
		"12345 ve öncesi",
		"123.45.6789 ve sonrası",
	}
	for _, cell := range cells {
		t.Run(cell, func(t *testing.T) {
			_, ok := ParseDateRange(cell)
			assert.False(t, ok, "expected no range for %q", cell)
		})
	}
}

func TestParseDateRange_OpenAfterScenario(t *testing.T) {
	r, ok := ParseDateRange("08.09.1999 ve sonrası")
	require.True(t, ok)
	assert.Equal(t, domain.RangeOpenAfter, r.Kind)
	assert.Equal(t, "08.09.1999", r.Start.String())

	match, err := domain.EncodeDate("01.01.2005")
	require.NoError(t, err)
	assert.True(t, r.Contains(match))

	miss, err := domain.EncodeDate("01.01.1990")
	require.NoError(t, err)
	assert.False(t, r.Contains(miss))
}

func TestParseDateRange_ExactBoundsOrdered(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		a := fmt.Sprintf("%d.%d.%d", 1+rng.Intn(28), 1+rng.Intn(12), 1950+rng.Intn(80))
		b := fmt.Sprintf("%02d/%02d/%d", 1+rng.Intn(28), 1+rng.Intn(12), 1950+rng.Intn(80))
		cell := a + " - " + b

		r, ok := ParseDateRange(cell)
		if !ok {
			continue
		}
		require.Equal(t, domain.RangeExact, r.Kind, cell)
		assert.LessOrEqual(t, r.Start.Key(), r.End.Key(), cell)
	}
}
