package resolve

import (
	"sort"

	"github.com/oikos-research/friction-cli/internal/model"
)

// Dedupe enforces the joiner's invariant of at most one census row per
// boundary name. Rows are stable-sorted descending by score and the first row
// per matched name is kept, so ties resolve to the earliest input row. Rows
// that never resolved to a boundary name are dropped.
func Dedupe(rows []model.MatchedMunicipality) []model.MatchedMunicipality {
	sorted := make([]model.MatchedMunicipality, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	seen := make(map[string]bool, len(sorted))
	out := make([]model.MatchedMunicipality, 0, len(sorted))
	for _, row := range sorted {
		if !row.Matched() || seen[row.MatchedName] {
			continue
		}
		seen[row.MatchedName] = true
		out = append(out, row)
	}
	return out
}
