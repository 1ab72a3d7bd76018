// Package enrollment models the course-enrollment form export.
//
// Each record is a loose mapping of form-field label to raw value. Values
// are never validated here: absent and null-ish cells simply read as absent,
// and numeric coercion is best-effort with the raw text passing through on
// failure.
package enrollment

import (
	"strconv"
	"strings"

	"certlink/internal/dataset"
)

// Record is one enrollment form submission. Immutable after construction.
type Record struct {
	// Index is the row position in the source table, used for deterministic
	// tie-breaking.
	Index  int
	fields map[string]string
}

// FromTable converts every row of the enrollment table into a Record,
// preserving input order.
func FromTable(table *dataset.Table) []Record {
	records := make([]Record, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		records = append(records, Record{Index: i, fields: table.RowMap(i)})
	}
	return records
}

// NewRecord builds a record from a label-value mapping. Primarily for tests.
func NewRecord(index int, fields map[string]string) Record {
	copied := make(map[string]string, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return Record{Index: index, fields: copied}
}

// Get returns the value of a form field. The second result is false when the
// field is absent: missing from the schema, empty, or a null marker ("nan",
// "null"). Absent values must not overwrite output defaults.
func (r Record) Get(label string) (string, bool) {
	raw, ok := r.fields[label]
	if !ok {
		return "", false
	}
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", false
	}
	switch strings.ToLower(value) {
	case "nan", "null", "none":
		return "", false
	}
	return value, true
}

// CoerceInt renders a numeric-looking value as a plain integer. Spreadsheet
// exports routinely turn integers into floats ("17.0"); those are folded
// back. Values that do not parse are returned untouched.
func CoerceInt(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return value
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return strconv.FormatInt(int64(f), 10)
	}
	return value
}
