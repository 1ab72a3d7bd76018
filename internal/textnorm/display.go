package textnorm

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// connectorWords stay lowercase when capitalizing a name, except in first
// position.
var connectorWords = map[string]struct{}{
	"de": {}, "da": {}, "do": {}, "dos": {}, "das": {}, "e": {},
}

var titleCaser = cases.Title(language.BrazilianPortuguese)

// CapitalizeName title-cases each word of a name while keeping connector
// words lowercase. The first word is always capitalized.
func CapitalizeName(name string) string {
	words := strings.Fields(strings.ToLower(name))
	if len(words) == 0 {
		return ""
	}
	out := make([]string, 0, len(words))
	for i, word := range words {
		if _, ok := connectorWords[word]; ok && i > 0 {
			out = append(out, word)
			continue
		}
		out = append(out, titleCaser.String(word))
	}
	return strings.Join(out, " ")
}

// FileToken converts a label to a lowercase filesystem-safe token. Letters
// are lowercased, digits are kept, everything else becomes an underscore.
// Returns "unknown" for empty input.
func FileToken(value string) string {
	value = strings.TrimSpace(Normalize(value))
	if value == "" {
		return "unknown"
	}
	var b strings.Builder
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "unknown"
	}
	return out
}
