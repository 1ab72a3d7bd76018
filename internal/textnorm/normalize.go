package textnorm

import (
	"regexp"
	"strings"
)

// parentheticalPattern matches parenthesized annotations such as "(prof)".
var parentheticalPattern = regexp.MustCompile(`\([^)]*\)`)

// whitespacePattern matches runs of whitespace for collapsing.
var whitespacePattern = regexp.MustCompile(`\s+`)

// accentReplacer maps the Portuguese diacritic set onto plain ASCII. This is
// a direct character substitution, not locale-aware folding: comparison
// thresholds elsewhere are tuned against exactly this mapping.
var accentReplacer = strings.NewReplacer(
	"á", "a", "à", "a", "â", "a", "ã", "a", "ä", "a",
	"é", "e", "è", "e", "ê", "e", "ë", "e",
	"í", "i", "ì", "i", "î", "i", "ï", "i",
	"ó", "o", "ò", "o", "ô", "o", "õ", "o", "ö", "o",
	"ú", "u", "ù", "u", "û", "u", "ü", "u",
	"ç", "c", "ñ", "n",
)

// Normalize canonicalizes a raw name or category string for comparison.
// Steps, in order: lowercase, trim, remove parenthesized substrings, strip
// the fixed diacritic set, collapse whitespace runs to single spaces.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	out := strings.TrimSpace(strings.ToLower(s))
	out = strings.TrimSpace(parentheticalPattern.ReplaceAllString(out, ""))
	out = accentReplacer.Replace(out)
	out = whitespacePattern.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// compactDropReplacer removes the characters CompactLabel discards.
var compactDropReplacer = strings.NewReplacer("(", "", ")", "", " ", "", "\t", "")

// CompactLabel normalizes a category label into a compact keyword-search
// form. Unlike Normalize it keeps parenthetical content, since enrollment
// labels carry the short category root inside parentheses ("... (PC GAMER)"),
// and removes all whitespace so multi-word roots like "pc gamer" collapse to
// "pcgamer".
func CompactLabel(s string) string {
	if s == "" {
		return ""
	}
	out := strings.TrimSpace(strings.ToLower(s))
	out = accentReplacer.Replace(out)
	return compactDropReplacer.Replace(out)
}

// Tokens splits a normalized string on whitespace. Empty input yields nil.
func Tokens(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Fields(s)
}

// SignificantTokens filters connector words out of the token list. The
// result may be empty; callers that compare two token lists fall back to the
// unfiltered lists when either side empties.
func SignificantTokens(tokens []string, stopwords map[string]struct{}) []string {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, ok := stopwords[tok]; ok {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// StopwordSet builds a lookup set from a stopword list.
func StopwordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.TrimSpace(strings.ToLower(w))
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	return set
}
