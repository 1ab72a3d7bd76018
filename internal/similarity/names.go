package similarity

import "strings"

// nameThreshold is the floor any single signal must clear for two names to
// be considered similar.
const nameThreshold = 0.6

// NamesSimilar reports whether two normalized names plausibly refer to the
// same person. Any one signal clearing the threshold is enough: direct ratio,
// literal containment, subset score, or token overlap.
func NamesSimilar(a, b string, stopwords map[string]struct{}) bool {
	if a == b {
		return a != ""
	}
	if Ratio(a, b) >= nameThreshold {
		return true
	}
	if a != "" && b != "" && (strings.Contains(a, b) || strings.Contains(b, a)) {
		return true
	}
	if isSubset, score := SubsetMatch(a, b, stopwords); isSubset && score >= nameThreshold {
		return true
	}
	return TokenOverlap(a, b, stopwords) >= nameThreshold
}
