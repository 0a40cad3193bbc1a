// Package suggest finds the closest known spelling for a mistyped word, used
// to add "did you mean" hints to marker and capability errors.
package suggest

import (
	"strings"
	"unicode"
)

// minScore is the similarity below which no suggestion is made.
const minScore = 0.5

// Distance computes the Levenshtein distance between a and b: the minimum
// number of single-rune insertions, deletions or substitutions turning one
// into the other.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)

	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	if len(ra) == 0 {
		return len(rb)
	}

	// Two rows over the shorter string.
	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// Score returns the similarity of a and b between 0 and 1 after
// normalization. 1 means equal spellings.
func Score(a, b string) float64 {
	na, nb := normalize(a), normalize(b)

	longest := max(len([]rune(na)), len([]rune(nb)))
	if longest == 0 {
		return 1
	}

	return 1 - float64(Distance(na, nb))/float64(longest)
}

// Closest returns the candidate most similar to word. ok is false when no
// candidate is similar enough to be a plausible typo. Ties keep the earlier
// candidate.
func Closest(word string, candidates []string) (string, bool) {
	var (
		best      string
		bestScore float64
	)

	for _, c := range candidates {
		if s := Score(word, c); s > bestScore {
			best, bestScore = c, s
		}
	}

	if bestScore < minScore {
		return "", false
	}

	return best, true
}

// Hint formats a " (did you mean X?)" suffix, or "" without a suggestion.
func Hint(word string, candidates []string) string {
	if best, ok := Closest(word, candidates); ok {
		return " (did you mean " + best + "?)"
	}

	return ""
}

// normalize lower-cases s and drops separators so "Partial_Eq" and
// "partialeq" compare equal.
func normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			return -1
		}

		return unicode.ToLower(r)
	}, s)
}
