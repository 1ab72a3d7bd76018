package attendance

import (
	"fmt"
	"strconv"
	"strings"
)

// monthNames indexes Portuguese month names from 1.
var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// FormatCompletionDate converts a DD/MM column header into the long form
// printed on certificates, e.g. "2 de junho de 2025". Input that does not
// parse is returned unchanged.
func FormatCompletionDate(header string, year int) string {
	parts := strings.Split(strings.TrimSpace(header), "/")
	if len(parts) != 2 {
		return header
	}
	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return header
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || month < 1 || month > 12 {
		return header
	}
	return fmt.Sprintf("%d de %s de %d", day, monthNames[month-1], year)
}
