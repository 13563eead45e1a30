package rules

import (
	"sort"
	"strconv"
	"strings"

	"github.com/emeklilik/sgkcalc/internal/domain"
)

// NormalizeRow turns a raw record into an ordered Row. When every column
// identifier is an all-digit string the cells are ordered by numeric key;
// otherwise the record's own field order is kept. It never fails.
func NormalizeRow(raw domain.RawRow) domain.Row {
	fields := raw.Fields
	if allNumericKeys(fields) {
		fields = append([]domain.Field(nil), fields...)
		sort.SliceStable(fields, func(i, j int) bool {
			return numericKey(fields[i].Key) < numericKey(fields[j].Key)
		})
	}

	row := make(domain.Row, len(fields))
	for i, f := range fields {
		row[i] = cleanCell(f.Value)
	}
	return row
}

// NormalizeRows normalizes a whole status table.
func NormalizeRows(raws []domain.RawRow) []domain.Row {
	rows := make([]domain.Row, len(raws))
	for i, raw := range raws {
		rows[i] = NormalizeRow(raw)
	}
	return rows
}

func allNumericKeys(fields []domain.Field) bool {
	for _, f := range fields {
		if f.Key == "" {
			return false
		}
		for _, r := range f.Key {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}

// numericKey parses an all-digit key. Keys too long for uint64 sort last.
func numericKey(k string) uint64 {
	n, err := strconv.ParseUint(k, 10, 64)
	if err != nil {
		return ^uint64(0)
	}
	return n
}

func cleanCell(v string) string {
	return strings.TrimSpace(strings.TrimPrefix(v, "\ufeff"))
}
