// Package pipeline wires the census, resolution, and friction stages into the
// joined table every downstream consumer reads.
package pipeline

import (
	"sort"

	"go.uber.org/zap"

	"github.com/oikos-research/friction-cli/internal/friction"
	"github.com/oikos-research/friction-cli/internal/model"
	"github.com/oikos-research/friction-cli/internal/resolve"
)

// JoinInput carries everything one join run needs. Population and Overrides
// are optional; MalformedRows is carried through from the extract parser so
// the coverage report can surface it.
type JoinInput struct {
	Municipalities []model.Municipality
	Boundaries     []model.Boundary
	Overrides      *resolve.Overrides
	Population     map[string]int
	MalformedRows  int
}

// Join resolves every census record to a boundary, deduplicates, and merges
// onto the geometry set. Boundaries with no surviving match are dropped, not
// null-filled; the coverage report carries every exclusion.
func Join(in JoinInput) ([]model.Joined, model.Coverage, error) {
	cov := model.Coverage{
		TotalBoundaries: len(in.Boundaries),
		MalformedRows:   in.MalformedRows,
	}
	overrides := in.Overrides
	if overrides == nil {
		var err error
		overrides, err = resolve.ParseOverrides(nil)
		if err != nil {
			return nil, cov, err
		}
	}

	// Derive friction metrics; degenerate ratios are dropped per record and
	// counted, never clamped into "no effect".
	derived := make([]model.Municipality, 0, len(in.Municipalities))
	for _, m := range in.Municipalities {
		if err := friction.Derive(&m); err != nil {
			zap.L().Warn("pipeline: excluding degenerate record",
				zap.String("name", m.Name), zap.Error(err))
			cov.DegenerateRows++
			continue
		}
		if in.Population != nil {
			m.Population = in.Population[resolve.NormalizeGreek(m.Name)]
		}
		derived = append(derived, m)
	}

	// Many-to-one aggregations consume their member records; the synthetic
	// rows arrive pre-matched at full score.
	synthetic, skipped := resolve.AggregateMany(overrides, derived)
	cov.SkippedAggregations = skipped
	members := resolve.MemberNames(overrides)

	names := make([]string, 0, len(in.Boundaries))
	for _, b := range in.Boundaries {
		names = append(names, b.Name)
	}
	matcher := resolve.NewMatcher(resolve.BuildIndex(names), overrides)

	sources := make([]string, 0, len(derived))
	recByName := make(map[string]model.Municipality, len(derived))
	for _, m := range derived {
		if members[m.Name] {
			continue
		}
		sources = append(sources, m.Name)
		recByName[m.Name] = m
	}
	matches, unresolved := matcher.MatchAll(sources)
	cov.UnmatchedSources = append(cov.UnmatchedSources, unresolved...)

	rows := make([]model.MatchedMunicipality, 0, len(matches)+len(synthetic))
	for _, name := range sources {
		res, ok := matches[name]
		if !ok {
			continue
		}
		rows = append(rows, model.MatchedMunicipality{Municipality: recByName[name], MatchedName: res.Name, Score: res.Score})
	}
	rows = append(rows, synthetic...)
	deduped := resolve.Dedupe(rows)

	// Rows that lost their boundary to a higher-scoring duplicate are
	// coverage gaps as much as never-matched ones.
	kept := make(map[string]bool, len(deduped))
	for _, row := range deduped {
		kept[row.Municipality.Name] = true
	}
	for _, row := range rows {
		if row.Matched() && !kept[row.Municipality.Name] {
			cov.UnmatchedSources = append(cov.UnmatchedSources, row.Municipality.Name)
		}
	}
	rows = deduped

	byMatch := make(map[string]model.MatchedMunicipality, len(rows))
	for _, row := range rows {
		byMatch[row.MatchedName] = row
	}

	var joined []model.Joined
	for _, b := range in.Boundaries {
		row, ok := byMatch[b.Name]
		if !ok {
			cov.UnmatchedBoundaries = append(cov.UnmatchedBoundaries, b.Name)
			continue
		}
		j := model.Joined{
			Municipality: row.Municipality,
			MatchedName:  row.MatchedName,
			MatchScore:   row.Score,
			Geometry:     b.Geometry,
		}
		if j.Population > 0 {
			j.EmptyPerCapita = float64(j.SEmpty) / float64(j.Population)
		}
		joined = append(joined, j)
		delete(byMatch, b.Name)
	}
	cov.MatchedBoundaries = len(joined)

	// Census rows whose resolution points at no boundary are coverage gaps
	// too; report them by their own names.
	for _, row := range byMatch {
		cov.UnmatchedSources = append(cov.UnmatchedSources, row.Municipality.Name)
	}
	sort.Strings(cov.UnmatchedSources)

	sort.Slice(joined, func(i, j int) bool {
		if joined[i].Sigma != joined[j].Sigma {
			return joined[i].Sigma > joined[j].Sigma
		}
		return joined[i].MatchedName < joined[j].MatchedName
	})
	return joined, cov, nil
}
