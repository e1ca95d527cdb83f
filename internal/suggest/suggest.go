// Package suggest finds the closest known word to a misspelled one, used for
// "did you mean" hints on unknown keys.
package suggest

import "fmt"

// Closest returns the candidate with the smallest edit distance to word.
// Candidates further away than a third of the word length (at least 2
// edits) are not considered. Ties resolve to the earlier candidate.
func Closest(word string, candidates []string) (string, bool) {
	limit := max(2, len(word)/3)
	best, bestDist := "", limit+1

	for _, c := range candidates {
		if d := Levenshtein(word, c); d < bestDist {
			best, bestDist = c, d
		}
	}

	return best, best != ""
}

// Hint formats a "did you mean" hint for word, or returns "" when nothing
// is close enough.
func Hint(word string, candidates []string) string {
	best, ok := Closest(word, candidates)
	if !ok {
		return ""
	}

	return fmt.Sprintf("did you mean %q?", best)
}
