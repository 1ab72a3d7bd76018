package similarity

import "certlink/internal/textnorm"

// TokenOverlap computes the Jaccard overlap of the two strings' significant
// token sets: |intersection| / |union|. If either side has no significant
// tokens both sides fall back to their unfiltered token sets.
func TokenOverlap(a, b string, stopwords map[string]struct{}) float64 {
	tokensA := textnorm.Tokens(a)
	tokensB := textnorm.Tokens(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}
	sigA, sigB := significantPair(tokensA, tokensB, stopwords)

	setA := tokenSet(sigA)
	setB := tokenSet(sigB)
	intersection := 0
	union := len(setB)
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
