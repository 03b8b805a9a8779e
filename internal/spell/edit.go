package spell

// Distance computes the Damerau–Levenshtein distance between a and b
// (optimal string alignment: insert, delete, substitute, and transposition
// of adjacent runes each cost 1). Rolling rows keep memory at O(len(b)).
func Distance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev2 := make([]int, lb+1)
	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			best := min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				best = min(best, prev2[j-2]+1)
			}
			curr[j] = best
		}
		prev2, prev, curr = prev, curr, prev2
	}
	return prev[lb]
}

// DistanceAtMost is Distance with an early exit: it returns limit+1 as soon
// as the distance provably exceeds limit. The length difference alone is a
// lower bound, so most of the vocabulary is rejected without running the DP.
func DistanceAtMost(a, b string, limit int) int {
	diff := len([]rune(a)) - len([]rune(b))
	if diff < 0 {
		diff = -diff
	}
	if diff > limit {
		return limit + 1
	}
	d := Distance(a, b)
	if d > limit {
		return limit + 1
	}
	return d
}
