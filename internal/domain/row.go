package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Cell is a trimmed text token from one column of one row.
type Cell = string

// Row is an ordered sequence of cells. Position is the only column
// information the source tables carry.
type Row []Cell

// Field is one (column identifier, cell text) pair of a raw record.
type Field struct {
	Key   string
	Value string
}

// RawRow is a row record as produced by the spreadsheet converter. Field order
// is preserved from the JSON document because Go maps would lose it.
type RawRow struct {
	Fields []Field
}

// NewRawRow builds a RawRow whose keys are the column indexes "0".."n-1".
func NewRawRow(values ...string) RawRow {
	fields := make([]Field, len(values))
	for i, v := range values {
		fields[i] = Field{Key: strconv.Itoa(i), Value: v}
	}
	return RawRow{Fields: fields}
}

// UnmarshalJSON decodes an object (keys kept in document order) or an array
// (keys become column indexes). Null values decode to "", other scalars to
// their literal text.
func (r *RawRow) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read row: %w", err)
	}
	delim, ok := tok.(json.Delim)
	if !ok || (delim != '{' && delim != '[') {
		return fmt.Errorf("row must be a JSON object or array, got %v", tok)
	}

	var fields []Field
	for i := 0; dec.More(); i++ {
		key := strconv.Itoa(i)
		if delim == '{' {
			keyTok, err := dec.Token()
			if err != nil {
				return fmt.Errorf("failed to read row key: %w", err)
			}
			key, _ = keyTok.(string)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("failed to read value of column %q: %w", key, err)
		}
		fields = append(fields, Field{Key: key, Value: rawText(raw)})
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to close row: %w", err)
	}

	r.Fields = fields
	return nil
}

// MarshalJSON writes the row as an object in field order.
func (r RawRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func rawText(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	}
	return string(trimmed)
}

// RowTable maps each status code to its ordered row records.
type RowTable map[StatusCode][]RawRow
