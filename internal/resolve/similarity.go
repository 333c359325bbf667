package resolve

import (
	"sort"
	"strings"

	"github.com/agext/levenshtein"
)

// TokenSortRatio scores the similarity of two strings on a 0–100 scale,
// insensitive to token order: each side is split on whitespace, its tokens
// sorted and rejoined, then compared by Levenshtein similarity. Two empty
// strings score 0, not 100, so empty keys never match each other.
func TokenSortRatio(a, b string) int {
	a = tokenSort(a)
	b = tokenSort(b)
	if a == "" && b == "" {
		return 0
	}
	sim := levenshtein.Similarity(a, b, levenshtein.NewParams())
	return int(sim*100 + 0.5)
}

func tokenSort(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
