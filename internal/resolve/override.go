package resolve

import (
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// OverrideKind discriminates the two override shapes.
type OverrideKind int

const (
	// OneToOne renames a single census name to a boundary name.
	OneToOne OverrideKind = iota
	// ManyToOne aggregates several census records under one boundary name,
	// used for administrative splits the census reports separately.
	ManyToOne
)

// Override is one curated correction between the two naming schemes.
// Candidate is the boundary-scheme name; Sources holds one census name for
// OneToOne and two or more for ManyToOne.
type Override struct {
	Candidate string
	Kind      OverrideKind
	Sources   []string
}

// Overrides is the curated exception list loaded once per run. It takes
// precedence over both exact-key and fuzzy matching.
type Overrides struct {
	entries []Override

	// sourceToCandidate resolves a census name through its OneToOne entry.
	sourceToCandidate map[string]string
}

type overrideFile struct {
	OneToOne  map[string]string   `yaml:"one_to_one"`
	ManyToOne map[string][]string `yaml:"many_to_one"`
}

// LoadOverrides reads the override table from a YAML file. The file maps
// boundary names to census names:
//
//	one_to_one:
//	  Athens: ΑΘΗΝΑΙΩΝ
//	many_to_one:
//	  Lesbos: [ΔΥΤΙΚΗΣ ΛΕΣΒΟΥ, ΜΥΤΙΛΗΝΗΣ]
func LoadOverrides(path string) (*Overrides, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "resolve: read overrides %s", path)
	}
	return ParseOverrides(raw)
}

// ParseOverrides parses override YAML. A ManyToOne entry with fewer than two
// sources is rejected: it would silently shadow a OneToOne correction.
func ParseOverrides(raw []byte) (*Overrides, error) {
	var f overrideFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, eris.Wrap(err, "resolve: parse overrides")
	}

	o := &Overrides{sourceToCandidate: make(map[string]string)}

	// Sort candidates so entry order is stable across runs.
	for _, cand := range sortedKeys(f.OneToOne) {
		src := f.OneToOne[cand]
		if src == "" {
			return nil, eris.Errorf("resolve: one_to_one override %q has empty source", cand)
		}
		o.entries = append(o.entries, Override{Candidate: cand, Kind: OneToOne, Sources: []string{src}})
		o.sourceToCandidate[src] = cand
	}
	for _, cand := range sortedKeys(f.ManyToOne) {
		srcs := f.ManyToOne[cand]
		if len(srcs) < 2 {
			return nil, eris.Errorf("resolve: many_to_one override %q needs at least two sources", cand)
		}
		o.entries = append(o.entries, Override{Candidate: cand, Kind: ManyToOne, Sources: srcs})
	}
	return o, nil
}

// CandidateFor returns the boundary name a census name is pinned to by a
// OneToOne override.
func (o *Overrides) CandidateFor(sourceName string) (string, bool) {
	cand, ok := o.sourceToCandidate[sourceName]
	return cand, ok
}

// ManyToOneEntries returns the aggregation overrides in stable order.
func (o *Overrides) ManyToOneEntries() []Override {
	var out []Override
	for _, e := range o.entries {
		if e.Kind == ManyToOne {
			out = append(out, e)
		}
	}
	return out
}

// Len reports the total number of override entries.
func (o *Overrides) Len() int { return len(o.entries) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
