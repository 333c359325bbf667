package model

// Joined is a boundary polygon merged with its best-scoring municipality
// record. At most one Joined row exists per boundary name; boundaries with no
// surviving match are dropped rather than null-filled.
type Joined struct {
	Municipality

	// Match provenance, kept for auditability.
	MatchedName string `json:"matched_name"`
	MatchScore  int    `json:"match_score"`

	Geometry GeometryRef `json:"-"`

	// EmptyPerCapita is s_empty / population; zero when population is
	// unknown.
	EmptyPerCapita float64 `json:"empty_per_capita,omitempty"`
}

// Simulated is a Joined row plus the outcome of one unlock scenario. It is
// recomputed per scenario and never written back onto the joined table.
type Simulated struct {
	Joined

	SigmaNew       float64 `json:"sigma_new"`
	FNew           float64 `json:"F_new"`
	PriceRatio     float64 `json:"price_ratio"`
	PriceChangePct float64 `json:"price_change_pct"`

	ArchetypeBase string `json:"archetype_base"`
	ArchetypeSim  string `json:"archetype_sim"`
}

// National holds country-level totals. Sigma is always the ratio of summed
// counts, never an average of per-municipality sigmas.
type National struct {
	STotal float64 `json:"s_total"`
	SEmpty float64 `json:"s_empty"`
	Sigma  float64 `json:"sigma"`
	F      float64 `json:"F"`
}
