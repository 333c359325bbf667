package export

import (
	"github.com/oikos-research/friction-cli/internal/friction"
	"github.com/oikos-research/friction-cli/internal/model"
)

// SweepFrame is one unlock level of a percentage sweep, shaped for the
// external animation assembler.
type SweepFrame struct {
	UnlockPct              float64           `json:"unlock_pct"`
	Alpha                  float64           `json:"alpha"`
	National               model.National    `json:"national"`
	NationalPriceChangePct float64           `json:"national_price_change_pct"`
	Municipalities         []model.Simulated `json:"municipalities"`
}

// SweepDocument wraps the full frame series.
type SweepDocument struct {
	Frames []SweepFrame `json:"frames"`
}

// NewSweepDocument converts simulation results into the frame series.
func NewSweepDocument(results []friction.Result) SweepDocument {
	doc := SweepDocument{Frames: make([]SweepFrame, 0, len(results))}
	for _, res := range results {
		doc.Frames = append(doc.Frames, SweepFrame{
			UnlockPct:              res.Scenario.UnlockFraction * 100,
			Alpha:                  res.Scenario.Alpha,
			National:               res.National,
			NationalPriceChangePct: res.NationalPrice,
			Municipalities:         res.Municipalities,
		})
	}
	return doc
}
