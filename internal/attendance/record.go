// Package attendance models the roster table and classifies each entry
// against the presence policy.
package attendance

import (
	"fmt"
	"strings"

	"certlink/internal/config"
	"certlink/internal/dataset"
)

// Mark is one daily attendance observation.
type Mark int

const (
	// Unrecorded covers empty cells and any unparseable value; these days
	// are excluded from the presence ratio denominator.
	Unrecorded Mark = iota
	Present
	Absent
	// ExcusedPresent is a justified absence that still counts as presence.
	ExcusedPresent
)

// ParseMark interprets a raw cell value. Recognized values are P, F, and FJ
// (case-insensitive, surrounding whitespace ignored); everything else is
// Unrecorded.
func ParseMark(raw string) Mark {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "P":
		return Present
	case "F":
		return Absent
	case "FJ":
		return ExcusedPresent
	}
	return Unrecorded
}

// Valid reports whether the mark counts toward the ratio denominator.
func (m Mark) Valid() bool {
	return m == Present || m == Absent || m == ExcusedPresent
}

// CountsAsPresent reports whether the mark counts toward the numerator.
func (m Mark) CountsAsPresent() bool {
	return m == Present || m == ExcusedPresent
}

// String returns the roster notation for the mark.
func (m Mark) String() string {
	switch m {
	case Present:
		return "P"
	case Absent:
		return "F"
	case ExcusedPresent:
		return "FJ"
	}
	return "-"
}

// Record is one roster row: identity plus the observed day window. Immutable
// after parsing.
type Record struct {
	RawName     string
	RawCategory string
	// Marks holds one entry per observed day, positionally aligned with
	// DayHeaders.
	Marks []Mark
	// DayHeaders are the column headers of the day window; the last one is
	// the completion/reference date as DD/MM.
	DayHeaders []string
}

// CompletionHeader returns the raw completion-date header (the last day
// column), or empty when the record has no day window.
func (r *Record) CompletionHeader() string {
	if len(r.DayHeaders) == 0 {
		return ""
	}
	return r.DayHeaders[len(r.DayHeaders)-1]
}

// PresenceDetail renders the per-day marks for audit reports, pairing each
// day header with its mark.
func (r *Record) PresenceDetail() string {
	parts := make([]string, 0, len(r.Marks))
	for i, mark := range r.Marks {
		header := ""
		if i < len(r.DayHeaders) {
			header = r.DayHeaders[i]
		}
		parts = append(parts, fmt.Sprintf("%s: %s", header, mark))
	}
	return strings.Join(parts, ", ")
}

// ParseTable converts a roster table into records. The trailing window of
// cfg.DayWindow columns holds the per-day marks; identity columns are looked
// up by header. Rows are returned in input order.
func ParseTable(table *dataset.Table, cfg config.Attendance) ([]Record, error) {
	if len(table.Headers) < cfg.DayWindow {
		return nil, fmt.Errorf("attendance table has %d columns, need a day window of %d", len(table.Headers), cfg.DayWindow)
	}
	nameIdx, catIdx := -1, -1
	for i, header := range table.Headers {
		switch header {
		case cfg.NameColumn:
			nameIdx = i
		case cfg.CategoryColumn:
			catIdx = i
		}
	}
	if nameIdx < 0 {
		return nil, fmt.Errorf("attendance table is missing the %q column", cfg.NameColumn)
	}
	if catIdx < 0 {
		return nil, fmt.Errorf("attendance table is missing the %q column", cfg.CategoryColumn)
	}

	dayStart := len(table.Headers) - cfg.DayWindow
	dayHeaders := table.Headers[dayStart:]

	records := make([]Record, 0, table.Len())
	for _, row := range table.Rows {
		rec := Record{
			RawName:     cellAt(row, nameIdx),
			RawCategory: cellAt(row, catIdx),
			Marks:       make([]Mark, cfg.DayWindow),
			DayHeaders:  dayHeaders,
		}
		for i := 0; i < cfg.DayWindow; i++ {
			rec.Marks[i] = ParseMark(cellAt(row, dayStart+i))
		}
		records = append(records, rec)
	}
	return records, nil
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
