package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Date
		ok    bool
	}{
		{"dotted", "08.09.1999", Date{Day: 8, Month: 9, Year: 1999}, true},
		{"short parts", "8.9.1999", Date{Day: 8, Month: 9, Year: 1999}, true},
		{"slashes", "08/09/1999", Date{Day: 8, Month: 9, Year: 1999}, true},
		{"hyphens with space", " 8-9-1999 ", Date{Day: 8, Month: 9, Year: 1999}, true},
		{"shape only", "31.02.2000", Date{Day: 31, Month: 2, Year: 2000}, true},
		{"two digit year", "08.09.99", Date{}, false},
		{"year only", "1999", Date{}, false},
		{"words", "dün", Date{}, false},
		{"empty", "", Date{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrUnparseableDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDate_KeyAndString(t *testing.T) {
	d := MustParseDate("8.9.1999")
	assert.Equal(t, 19990908, d.Key())
	assert.Equal(t, "08.09.1999", d.String())
	assert.True(t, FirstDayOfYear(2000).Key() > LastDayOfYear(1999).Key())

	key, err := EncodeDate("01.01.2008")
	require.NoError(t, err)
	assert.Equal(t, 20080101, key)

	assert.Panics(t, func() { MustParseDate("not a date") })
}

func TestDateRange(t *testing.T) {
	start := MustParseDate("01.01.2000")
	end := MustParseDate("31.12.2005")

	exact, ok := Exact(start, end)
	require.True(t, ok)
	assert.True(t, exact.Contains(start.Key()), "start is inclusive")
	assert.True(t, exact.Contains(end.Key()), "end is inclusive")
	assert.False(t, exact.Contains(MustParseDate("01.01.2006").Key()))
	assert.Equal(t, "01.01.2000 - 31.12.2005", exact.String())

	_, ok = Exact(end, start)
	assert.False(t, ok, "reversed bounds are rejected")

	before := OpenBefore(end)
	assert.True(t, before.Contains(MustParseDate("01.01.1950").Key()))
	assert.False(t, before.Contains(MustParseDate("01.01.2006").Key()))
	assert.Equal(t, "31.12.2005 ve öncesi", before.String())

	after := OpenAfter(start)
	assert.True(t, after.Contains(MustParseDate("01.01.2040").Key()))
	assert.False(t, after.Contains(MustParseDate("31.12.1999").Key()))
	assert.Equal(t, "01.01.2000 ve sonrası", after.String())

	assert.False(t, DateRange{}.Contains(start.Key()))
	assert.Equal(t, "unknown", DateRange{}.Kind.String())
}

func TestDateRange_Marshal(t *testing.T) {
	data, err := json.Marshal(OpenAfter(MustParseDate("01.01.2008")))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"open_after","start":"01.01.2008"}`, string(data))

	out, err := yaml.Marshal(OpenBefore(MustParseDate("31.12.1999")))
	require.NoError(t, err)
	assert.Equal(t, "kind: open_before\nend: 31.12.1999\n", string(out))
}

func TestParseStatus(t *testing.T) {
	for _, in := range []string{"4A", "4a", "4/A", "4-a", " 4 A ", "(4a)"} {
		got, err := ParseStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, Status4A, got, in)
	}

	got, err := ParseStatus("4c")
	require.NoError(t, err)
	assert.Equal(t, Status4C, got)

	_, err = ParseStatus("4D")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestParseGender(t *testing.T) {
	for _, in := range []string{"kadin", "kadın", "K", "female", " Woman "} {
		g, err := ParseGender(in)
		require.NoError(t, err, in)
		assert.Equal(t, GenderFemale, g, in)
	}
	for _, in := range []string{"erkek", "E", "male", "man"} {
		g, err := ParseGender(in)
		require.NoError(t, err, in)
		assert.Equal(t, GenderMale, g, in)
	}

	_, err := ParseGender("diğer")
	assert.ErrorIs(t, err, ErrInvalidGender)

	assert.Equal(t, GenderFemale, GenderMale.Other())
	assert.Equal(t, GenderUnspecified, GenderUnspecified.Other())
	text, err := GenderFemale.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "female", string(text))
}

func TestRawRow_JSON(t *testing.T) {
	var row RawRow
	require.NoError(t, json.Unmarshal([]byte(`{"b":"KADIN","a":null,"c":5975,"d":true}`), &row))
	assert.Equal(t, []Field{
		{Key: "b", Value: "KADIN"},
		{Key: "a", Value: ""},
		{Key: "c", Value: "5975"},
		{Key: "d", Value: "true"},
	}, row.Fields, "document order is kept")

	data, err := json.Marshal(row)
	require.NoError(t, err)
	assert.Equal(t, `{"b":"KADIN","a":"","c":"5975","d":"true"}`, string(data))

	var arr RawRow
	require.NoError(t, json.Unmarshal([]byte(`["x", 58]`), &arr))
	assert.Equal(t, NewRawRow("x", "58"), arr)

	assert.Error(t, json.Unmarshal([]byte(`"scalar"`), &arr))
}

func TestFieldError(t *testing.T) {
	err := error(&FieldError{Field: "birth_date", Value: "dün", Err: ErrUnparseableDate})
	assert.Equal(t, `birth_date "dün": unparseable date`, err.Error())
	assert.True(t, errors.Is(err, ErrUnparseableDate))

	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "birth_date", fe.Field)
}

func TestReport_Outcome(t *testing.T) {
	report := &Report{
		Full:    TrackOutcome{Track: TrackFull},
		Partial: TrackOutcome{Track: TrackPartial},
	}
	assert.Equal(t, TrackPartial, report.Outcome(TrackPartial).Track)
	assert.False(t, report.Outcome(TrackFull).Matched())
}
