package resolve

import (
	"go.uber.org/zap"

	"github.com/oikos-research/friction-cli/internal/model"
)

// AggregateMany materializes the ManyToOne overrides over the parsed census
// records. Each aggregation sums the count fields of its member records and
// weights the ratio fields by s_total. The synthetic record is pre-matched to
// its boundary name at full score, bypassing the matcher.
//
// An aggregation whose members are all missing, or whose summed s_total is
// zero, emits no record; the skipped candidate names are returned so the run
// report can surface them instead of losing them silently.
func AggregateMany(overrides *Overrides, records []model.Municipality) (synthetic []model.MatchedMunicipality, skipped []string) {
	byName := make(map[string]model.Municipality, len(records))
	for _, r := range records {
		byName[r.Name] = r
	}

	for _, ov := range overrides.ManyToOneEntries() {
		var subset []model.Municipality
		for _, src := range ov.Sources {
			if rec, ok := byName[src]; ok {
				subset = append(subset, rec)
			}
		}

		total := 0
		for _, rec := range subset {
			total += rec.STotal
		}
		if len(subset) == 0 || total == 0 {
			zap.L().Warn("resolve: skipping aggregation",
				zap.String("candidate", ov.Candidate),
				zap.Int("members_found", len(subset)),
			)
			skipped = append(skipped, ov.Candidate)
			continue
		}

		agg := model.Municipality{
			Name:      ov.Candidate + " (agg)",
			Synthetic: true,
		}
		weight := func(col func(model.Municipality) float64) float64 {
			var sum float64
			for _, rec := range subset {
				sum += col(rec) * float64(rec.STotal)
			}
			return sum / float64(total)
		}
		for _, rec := range subset {
			agg.STotal += rec.STotal
			agg.SOccupied += rec.SOccupied
			agg.SEmpty += rec.SEmpty
			agg.ForRent += rec.ForRent
			agg.ForSale += rec.ForSale
			agg.Vacation += rec.Vacation
			agg.Secondary += rec.Secondary
			agg.OtherReason += rec.OtherReason
			agg.Population += rec.Population
		}
		agg.Sigma = weight(func(m model.Municipality) float64 { return m.Sigma })
		agg.F = weight(func(m model.Municipality) float64 { return m.F })
		agg.ShareMarket = weight(func(m model.Municipality) float64 { return m.ShareMarket })
		agg.ShareTourism = weight(func(m model.Municipality) float64 { return m.ShareTourism })
		agg.ShareSystemFailure = weight(func(m model.Municipality) float64 { return m.ShareSystemFailure })
		agg.TrueLockedPct = weight(func(m model.Municipality) float64 { return m.TrueLockedPct })

		synthetic = append(synthetic, model.MatchedMunicipality{
			Municipality: agg,
			MatchedName:  ov.Candidate,
			Score:        ExactScore,
		})
	}
	return synthetic, skipped
}

// MemberNames returns the set of census names consumed by ManyToOne
// overrides; those records must not also be matched individually.
func MemberNames(overrides *Overrides) map[string]bool {
	members := make(map[string]bool)
	for _, ov := range overrides.ManyToOneEntries() {
		for _, src := range ov.Sources {
			members[src] = true
		}
	}
	return members
}
