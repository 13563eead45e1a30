package ingest

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emeklilik/sgkcalc/internal/config"
	"github.com/emeklilik/sgkcalc/internal/domain"
	"github.com/emeklilik/sgkcalc/internal/rules"
)

const sample4A = "\ufeffKADIN,,\n" +
	"01.01.2000 - 31.12.2005,5975,58\n" +
	"\"5.400 gün, en az\",55\n" +
	"ERKEK\n"

func TestReadCSV(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader(sample4A))
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, domain.NewRawRow("KADIN", "", ""), rows[0], "BOM dropped, first line is data")
	assert.Equal(t, domain.NewRawRow("01.01.2000 - 31.12.2005", "5975", "58"), rows[1])
	assert.Equal(t, domain.NewRawRow("5.400 gün, en az", "55"), rows[2], "quoted comma and ragged row")
	assert.Equal(t, domain.NewRawRow("ERKEK"), rows[3])
}

func TestReadCSV_LazyQuotes(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader("2008 \"ve\" sonrası,7200,60\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2008 \"ve\" sonrası", rows[0].Fields[0].Value)
}

func TestReadCSV_Empty(t *testing.T) {
	rows, err := ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NotNil(t, rows)
}

func TestConvertAndWriteJSON_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	aPath := filepath.Join(dir, "4a.csv")
	require.NoError(t, os.WriteFile(aPath, []byte(sample4A), 0644))

	table, err := Convert(map[domain.StatusCode]string{domain.Status4A: aPath})
	require.NoError(t, err)
	assert.Len(t, table[domain.Status4A], 4)
	assert.NotNil(t, table[domain.Status4B])
	assert.Empty(t, table[domain.Status4C])

	out := filepath.Join(dir, "sgk_rules.json")
	require.NoError(t, WriteJSONFile(out, table))

	loaded, err := config.NewInputParser().LoadRowTable(out)
	require.NoError(t, err)
	assert.Equal(t, table, loaded)

	extracted := rules.ExtractTable(loaded[domain.Status4A])
	require.Len(t, extracted, 1)
	assert.Equal(t, domain.GenderFemale, extracted[0].Gender)
}

func TestWriteJSON_Shape(t *testing.T) {
	var buf bytes.Buffer
	table := domain.RowTable{
		domain.Status4B: {domain.NewRawRow("a")},
		domain.Status4A: {},
	}
	require.NoError(t, WriteJSON(&buf, table))

	out := buf.String()
	assert.Less(t, strings.Index(out, `"4A"`), strings.Index(out, `"4B"`))
	assert.Contains(t, out, "\"4A\": []")
	assert.Contains(t, out, "\"0\": \"a\"")
}

func TestConvert_MissingFile(t *testing.T) {
	_, err := Convert(map[domain.StatusCode]string{domain.Status4C: "/nonexistent/4c.csv"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 4C")
}
