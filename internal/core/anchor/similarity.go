package anchor

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Similarity returns the Ratcliff/Obershelp ratio of two strings: twice the
// number of characters in matching blocks divided by the combined length.
// Identical strings (including two empty strings) score 1.0.
//
// The matcher is not symmetric on its own, so the operands are put in a
// canonical order first. Similarity(a, b) == Similarity(b, a) always holds.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a > b {
		a, b = b, a
	}

	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}

// SequenceSimilarity pairs a and b positionally up to the shorter length and
// sums the pairwise Similarity. The sum is divided by the longer length (at
// least 1), so windows of different sizes score lower even when the shared
// prefix matches exactly.
func SequenceSimilarity(a, b []string) float64 {
	n := min(len(a), len(b))

	var sum float64
	for i := range n {
		sum += Similarity(a[i], b[i])
	}

	return sum / float64(max(1, len(a), len(b)))
}
