package friction

import (
	"sort"

	"github.com/oikos-research/friction-cli/internal/model"
)

// ArchetypeStats aggregates the vacancy composition for one archetype bucket.
type ArchetypeStats struct {
	Archetype             string
	Count                 int
	AvgSigma              float64
	AvgShareMarket        float64
	AvgShareTourism       float64
	AvgShareSystemFailure float64
}

// SummarizeComposition groups derived records by archetype and averages the
// composition shares within each bucket. Buckets come back sorted by average
// sigma ascending, so the healthiest archetype prints first.
func SummarizeComposition(records []model.Municipality) []ArchetypeStats {
	buckets := make(map[string]*ArchetypeStats)
	for _, m := range records {
		label := Archetype(m.Sigma)
		st, ok := buckets[label]
		if !ok {
			st = &ArchetypeStats{Archetype: label}
			buckets[label] = st
		}
		st.Count++
		st.AvgSigma += m.Sigma
		st.AvgShareMarket += m.ShareMarket
		st.AvgShareTourism += m.ShareTourism
		st.AvgShareSystemFailure += m.ShareSystemFailure
	}

	out := make([]ArchetypeStats, 0, len(buckets))
	for _, st := range buckets {
		n := float64(st.Count)
		st.AvgSigma /= n
		st.AvgShareMarket /= n
		st.AvgShareTourism /= n
		st.AvgShareSystemFailure /= n
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AvgSigma < out[j].AvgSigma })
	return out
}
