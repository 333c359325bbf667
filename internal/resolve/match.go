package resolve

import (
	"sort"

	"go.uber.org/zap"
)

// ExactScore is the score assigned to override and exact-key matches.
const ExactScore = 100

// Match is one resolution outcome. A zero-value Match (empty Name) means the
// source name could not be resolved at all.
type Match struct {
	Name  string
	Score int
}

// Matcher resolves census names against a boundary name index. Precedence per
// name: curated override, then exact normalized-key lookup, then fuzzy
// similarity against every indexed key. Ties on the fuzzy score break
// lexicographically on the key so results do not depend on map order.
type Matcher struct {
	index     map[string]string
	keys      []string // sorted index keys, fixes fuzzy iteration order
	overrides *Overrides
}

// NewMatcher builds a matcher over a key→name index. overrides may be nil.
func NewMatcher(index map[string]string, overrides *Overrides) *Matcher {
	keys := make([]string, 0, len(index))
	for k := range index {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if overrides == nil {
		overrides = &Overrides{sourceToCandidate: map[string]string{}}
	}
	return &Matcher{index: index, keys: keys, overrides: overrides}
}

// Match resolves a single census name. ok is false when no resolution exists,
// which callers must handle explicitly; it happens only when the index is
// empty and no override applies.
func (m *Matcher) Match(sourceName string) (Match, bool) {
	if cand, hit := m.overrides.CandidateFor(sourceName); hit {
		return Match{Name: cand, Score: ExactScore}, true
	}

	key := Normalize(sourceName)
	if key != "" {
		if name, hit := m.index[key]; hit {
			return Match{Name: name, Score: ExactScore}, true
		}
	}

	if len(m.keys) == 0 {
		return Match{}, false
	}

	bestKey, bestScore := "", -1
	for _, candKey := range m.keys {
		score := TokenSortRatio(key, candKey)
		if score > bestScore {
			bestKey, bestScore = candKey, score
		}
	}
	return Match{Name: m.index[bestKey], Score: bestScore}, true
}

// MatchAll resolves a batch of names. The map holds source name → match for
// every name that resolved; names with no possible resolution come back in
// unmatched, in input order, so callers can report them.
func (m *Matcher) MatchAll(sourceNames []string) (matched map[string]Match, unmatched []string) {
	matched = make(map[string]Match, len(sourceNames))
	for _, name := range sourceNames {
		res, ok := m.Match(name)
		if !ok {
			zap.L().Warn("resolve: no candidates available", zap.String("source", name))
			unmatched = append(unmatched, name)
			continue
		}
		matched[name] = res
	}
	return matched, unmatched
}
