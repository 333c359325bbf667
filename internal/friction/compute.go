// Package friction implements the locked-stock friction model and the unlock
// simulation that every downstream consumer reads from.
package friction

import (
	"github.com/rotisserie/eris"

	"github.com/oikos-research/friction-cli/internal/model"
)

// sigmaEps guards the F denominator in simulation paths. It is a numerical
// guard only; degenerate inputs are rejected before it can matter.
const sigmaEps = 1e-9

// Derive fills in sigma, F, and the composition shares on a parsed census
// record. A record with s_total <= 0 or sigma >= 1 is a data error, not a
// modeling case, and is rejected rather than clamped.
func Derive(m *model.Municipality) error {
	if m.STotal <= 0 {
		return eris.Errorf("friction: %s: s_total %d is not positive", m.Name, m.STotal)
	}
	total := float64(m.STotal)
	m.Sigma = float64(m.SEmpty) / total
	if m.Sigma >= 1 {
		return eris.Errorf("friction: %s: sigma %.4f >= 1", m.Name, m.Sigma)
	}
	m.F = 1 / (1 - m.Sigma)
	m.ShareMarket = float64(m.ForRent+m.ForSale) / total
	m.ShareTourism = float64(m.Vacation+m.Secondary) / total
	m.ShareSystemFailure = float64(m.OtherReason) / total
	m.TrueLockedPct = float64(m.OtherReason) / total
	return nil
}

// Factor computes F = 1/(1-sigma). sigma >= 1 is rejected.
func Factor(sigma float64) (float64, error) {
	if sigma >= 1 {
		return 0, eris.Errorf("friction: sigma %.4f >= 1", sigma)
	}
	return 1 / (1 - sigma), nil
}

// clampedFactor computes F with the epsilon guard. Only the simulator uses
// it, and only after validating its baseline inputs.
func clampedFactor(sigma float64) float64 {
	if sigma > 1-sigmaEps {
		sigma = 1 - sigmaEps
	}
	return 1 / (1 - sigma)
}

// NationalTotals computes the country block as a ratio of summed counts over
// the given records. Never the mean of per-municipality sigmas.
func NationalTotals(records []model.Municipality) (model.National, error) {
	var n model.National
	for _, m := range records {
		n.STotal += float64(m.STotal)
		n.SEmpty += float64(m.SEmpty)
	}
	if n.STotal <= 0 {
		return model.National{}, eris.New("friction: national totals: no dwellings counted")
	}
	n.Sigma = n.SEmpty / n.STotal
	f, err := Factor(n.Sigma)
	if err != nil {
		return model.National{}, eris.Wrap(err, "friction: national totals")
	}
	n.F = f
	return n, nil
}
