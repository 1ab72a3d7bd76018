// Package dataset reads the delimited input tables at the pipeline boundary.
//
// The core engine never touches files; it consumes the in-memory Table this
// package produces. Files that are not valid UTF-8 are retried as Latin-1,
// matching how the source spreadsheets are exported in practice.
package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Table is a parsed delimited file: one header row plus data rows. Rows are
// positionally aligned with Headers; short rows read as empty cells.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Cell returns the value of the named column in the given row and whether
// the column exists.
func (t *Table) Cell(row int, column string) (string, bool) {
	for i, header := range t.Headers {
		if header != column {
			continue
		}
		if row < 0 || row >= len(t.Rows) || i >= len(t.Rows[row]) {
			return "", true
		}
		return t.Rows[row][i], true
	}
	return "", false
}

// RowMap converts one row into a header-keyed map. Missing trailing cells
// become empty strings.
func (t *Table) RowMap(row int) map[string]string {
	out := make(map[string]string, len(t.Headers))
	for i, header := range t.Headers {
		if row >= 0 && row < len(t.Rows) && i < len(t.Rows[row]) {
			out[header] = t.Rows[row][i]
		} else {
			out[header] = ""
		}
	}
	return out
}

// ReadFile parses a comma-delimited file into a Table. A missing file is
// fatal for the run and reported as such; a file that fails UTF-8 validation
// or CSV parsing is retried once as Latin-1.
func ReadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if _, statErr := os.Stat(path); statErr != nil && os.IsNotExist(statErr) {
			return nil, fmt.Errorf("input file %q: %w", path, fs.ErrNotExist)
		}
		return nil, fmt.Errorf("read input %q: %w", path, err)
	}

	table, err := parse(data)
	if err == nil && utf8.Valid(data) {
		return table, nil
	}

	decoded, _, decodeErr := transform.Bytes(charmap.ISO8859_1.NewDecoder(), data)
	if decodeErr != nil {
		if err != nil {
			return nil, fmt.Errorf("parse input %q: %w", path, err)
		}
		return table, nil
	}
	if retried, retryErr := parse(decoded); retryErr == nil {
		return retried, nil
	}
	if err != nil {
		return nil, fmt.Errorf("parse input %q: %w", path, err)
	}
	return table, nil
}

func parse(data []byte) (*Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = false

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no header row")
	}
	return &Table{Headers: records[0], Rows: records[1:]}, nil
}
