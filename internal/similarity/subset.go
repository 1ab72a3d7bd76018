package similarity

import (
	"strings"

	"certlink/internal/textnorm"
)

// Subset ladder scores. Each rule produces a fixed base plus a proportional
// component so stronger containment ranks higher.
const (
	subsetContainedBase  = 0.85
	subsetMostTokensBase = 0.80
	subsetSingleToken    = 0.85
	subsetFirstTokenBase = 0.75
	subsetSubstringBase  = 0.70
)

// SubsetMatch reports whether one name's significant tokens are contained in
// the other and scores the containment. It exists because Ratio under-scores
// names that are strict extensions of each other, which is common when one
// source records a short form and the other the full legal name.
//
// The token-set path is order-insensitive, so swapped given/family names
// ("carlos eduardo" vs "eduardo carlos ferreira") also match. That is a known
// false-positive mode for this data; it is accepted rather than special-cased.
//
// Rules are tried in order, first hit wins:
//  1. the shorter significant-token list appears contiguously and in order
//     inside the longer, or all of its tokens are present in the longer set
//  2. at least 80% of a's significant tokens occur among b's tokens
//  3. a has a single significant token and it occurs in b
//  4. first tokens equal, a later token shared, and at least half of a's
//     remaining tokens covered
//  5. one full string is a literal substring of the other
func SubsetMatch(a, b string, stopwords map[string]struct{}) (bool, float64) {
	tokensA := textnorm.Tokens(a)
	tokensB := textnorm.Tokens(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return false, 0
	}
	sigA, sigB := significantPair(tokensA, tokensB, stopwords)

	shorter, longer := sigA, sigB
	if len(sigB) < len(sigA) {
		shorter, longer = sigB, sigA
	}
	maxLen := float64(len(longer))
	longerSet := tokenSet(longer)

	// Rule 1: full containment of the shorter token list.
	if containsSubsequence(longer, shorter) || containsAll(longerSet, shorter) {
		return true, subsetContainedBase + float64(len(shorter))/maxLen*0.15
	}

	// Rule 2: most of a's significant tokens occur somewhere in b.
	allB := tokenSet(tokensB)
	found := 0
	for _, tok := range sigA {
		if _, ok := allB[tok]; ok {
			found++
		}
	}
	if prop := float64(found) / float64(len(sigA)); prop >= 0.8 {
		return true, subsetMostTokensBase + prop*0.2
	}

	// Rule 3: single-token name present in the other.
	if len(sigA) == 1 && found == 1 {
		return true, subsetSingleToken
	}

	// Rule 4: same first token plus shared later tokens.
	if len(sigA) > 1 && len(sigB) > 1 && sigA[0] == sigB[0] {
		restB := tokenSet(sigB[1:])
		shared := 0
		for _, tok := range sigA[1:] {
			if _, ok := restB[tok]; ok {
				shared++
			}
		}
		if shared > 0 {
			if prop := float64(shared) / float64(len(sigA)-1); prop >= 0.5 {
				return true, subsetFirstTokenBase + prop*0.25
			}
		}
	}

	// Rule 5: literal substring of the full normalized string.
	if strings.Contains(a, b) || strings.Contains(b, a) {
		setB := tokenSet(sigB)
		shared := 0
		for tok := range tokenSet(sigA) {
			if _, ok := setB[tok]; ok {
				shared++
			}
		}
		return true, subsetSubstringBase + float64(shared)/maxLen*0.3
	}

	return false, 0
}

// BestScore returns the stronger of the direct ratio and the subset score for
// a pair of normalized names.
func BestScore(a, b string, stopwords map[string]struct{}) float64 {
	score := Ratio(a, b)
	if isSubset, subsetScore := SubsetMatch(a, b, stopwords); isSubset && subsetScore > score {
		score = subsetScore
	}
	return score
}

// significantPair filters both token lists; if either side empties both fall
// back to the unfiltered lists so the comparison stays symmetric.
func significantPair(tokensA, tokensB []string, stopwords map[string]struct{}) ([]string, []string) {
	sigA := textnorm.SignificantTokens(tokensA, stopwords)
	sigB := textnorm.SignificantTokens(tokensB, stopwords)
	if len(sigA) == 0 || len(sigB) == 0 {
		return tokensA, tokensB
	}
	return sigA, sigB
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}

func containsAll(set map[string]struct{}, tokens []string) bool {
	for _, tok := range tokens {
		if _, ok := set[tok]; !ok {
			return false
		}
	}
	return true
}

// containsSubsequence reports whether needle appears as a contiguous,
// in-order run inside haystack.
func containsSubsequence(haystack, needle []string) bool {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return false
	}
	for start := 0; start+len(needle) <= len(haystack); start++ {
		match := true
		for i, tok := range needle {
			if haystack[start+i] != tok {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
