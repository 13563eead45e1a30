// Package ingest converts the spreadsheet exports of the status tables into
// the JSON row table the engine reads.
package ingest

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/emeklilik/sgkcalc/internal/domain"
)

// ReadCSV reads comma separated records. A UTF-8 or UTF-16 byte order mark
// is honored and dropped. Rows may have different lengths. Every line,
// including the first, is data: the exports have no header row. Cells are
// keyed by column index. Row tables written by the older converter, which
// turned the first line into column names, still load: their header-derived
// keys are not numeric, so cells keep document order.
func ReadCSV(r io.Reader) ([]domain.RawRow, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.Comma = ','
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows := []domain.RawRow{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		rows = append(rows, domain.NewRawRow(record...))
	}
	return rows, nil
}

// ReadCSVFile is ReadCSV over a file.
func ReadCSVFile(path string) ([]domain.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// Convert reads one CSV file per status. Statuses without a file get an
// empty table so the output always lists all three.
func Convert(sources map[domain.StatusCode]string) (domain.RowTable, error) {
	table := make(domain.RowTable, len(domain.AllStatuses))
	for _, status := range domain.AllStatuses {
		path, ok := sources[status]
		if !ok || path == "" {
			table[status] = []domain.RawRow{}
			continue
		}
		rows, err := ReadCSVFile(path)
		if err != nil {
			return nil, fmt.Errorf("status %s: %w", status, err)
		}
		table[status] = rows
	}
	return table, nil
}

// WriteJSON writes the table as indented JSON, statuses in code order.
func WriteJSON(w io.Writer, table domain.RowTable) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(table); err != nil {
		return fmt.Errorf("failed to write rule table: %w", err)
	}
	return nil
}

// WriteJSONFile writes the table to path, replacing any existing file.
func WriteJSONFile(path string, table domain.RowTable) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteJSON(f, table); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
