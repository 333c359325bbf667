// Package model defines the record types shared across the friction pipeline.
package model

// Municipality is one census extract row for an administrative unit: raw
// dwelling counts plus the derived friction metrics. Once derived fields are
// filled in the record is treated as immutable.
type Municipality struct {
	Code        int    `json:"code,omitempty"`
	Name        string `json:"name"`
	STotal      int    `json:"s_total"`
	SOccupied   int    `json:"s_occupied,omitempty"`
	SEmpty      int    `json:"s_empty"`
	ForRent     int    `json:"for_rent"`
	ForSale     int    `json:"for_sale"`
	Vacation    int    `json:"vacation"`
	Secondary   int    `json:"secondary"`
	OtherReason int    `json:"other_reason"`

	// Derived by friction.Derive.
	Sigma              float64 `json:"sigma"`
	F                  float64 `json:"F"`
	ShareMarket        float64 `json:"share_market"`
	ShareTourism       float64 `json:"share_tourism"`
	ShareSystemFailure float64 `json:"share_system_failure"`
	TrueLockedPct      float64 `json:"true_locked_pct"`

	// Population is joined from the separate population dataset; zero means
	// unknown.
	Population int `json:"population,omitempty"`

	// Synthetic marks records produced by a many-to-one override
	// aggregation rather than parsed from the extract.
	Synthetic bool `json:"-"`
}

// Boundary is one administrative polygon from the boundary dataset, keyed by
// its Latin-scheme name.
type Boundary struct {
	Name     string
	Geometry GeometryRef
}

// GeometryRef is the minimal view of a boundary polygon the pipeline carries:
// pre-encoded EWKB bytes plus part/point counts for reporting. The pipeline
// never inspects coordinates, so the raw encoding travels as-is.
type GeometryRef struct {
	EWKB      []byte
	NumParts  int
	NumPoints int
}

// MatchedMunicipality pairs a municipality with its resolved boundary name.
// MatchedName is empty when resolution failed (no candidates available).
type MatchedMunicipality struct {
	Municipality Municipality
	MatchedName  string
	Score        int
}

// Matched reports whether resolution produced a boundary name.
func (m MatchedMunicipality) Matched() bool { return m.MatchedName != "" }
