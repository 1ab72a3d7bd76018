package similarity

// Ratio computes a similarity in [0,1] between two strings using longest
// matching block alignment: 2*M/T where M is the total number of matched
// characters across all matching blocks and T the combined length. This is
// Gestalt pattern matching, not normalized edit distance; the two disagree on
// strings with transposed segments and the pipeline thresholds assume the
// former. Two empty strings are considered identical.
func Ratio(a, b string) float64 {
	ar := []rune(a)
	br := []rune(b)
	total := len(ar) + len(br)
	if total == 0 {
		return 1.0
	}
	return 2.0 * float64(matchingRunes(ar, br)) / float64(total)
}

// matchingRunes sums the lengths of all matching blocks between a and b.
// Blocks are found by repeatedly locating the longest common contiguous run
// and recursing into the unmatched regions on either side.
func matchingRunes(a, b []rune) int {
	// Positions of each rune in b, in ascending order.
	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}

	type span struct {
		alo, ahi, blo, bhi int
	}
	queue := []span{{0, len(a), 0, len(b)}}
	matches := 0

	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		besti, bestj, bestk := longestMatch(a, b2j, s.alo, s.ahi, s.blo, s.bhi)
		if bestk == 0 {
			continue
		}
		matches += bestk
		if s.alo < besti && s.blo < bestj {
			queue = append(queue, span{s.alo, besti, s.blo, bestj})
		}
		if besti+bestk < s.ahi && bestj+bestk < s.bhi {
			queue = append(queue, span{besti + bestk, s.ahi, bestj + bestk, s.bhi})
		}
	}
	return matches
}

// longestMatch finds the longest contiguous run common to a[alo:ahi] and
// b[blo:bhi]. Among equally long runs the earliest in a, then in b, wins.
func longestMatch(a []rune, b2j map[rune][]int, alo, ahi, blo, bhi int) (besti, bestj, bestk int) {
	besti, bestj = alo, blo
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newJ2len := make(map[int]int)
		for _, j := range b2j[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newJ2len[j] = k
			if k > bestk {
				besti, bestj, bestk = i-k+1, j-k+1, k
			}
		}
		j2len = newJ2len
	}
	return besti, bestj, bestk
}
