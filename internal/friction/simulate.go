package friction

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/oikos-research/friction-cli/internal/model"
)

// Scenario parameterizes one unlock run: u is the fraction of locked stock
// returned to the market, Alpha the price elasticity.
type Scenario struct {
	UnlockFraction float64
	Alpha          float64
}

// Validate checks the scenario parameter ranges.
func (s Scenario) Validate() error {
	if s.UnlockFraction < 0 || s.UnlockFraction > 1 {
		return eris.Errorf("friction: unlock fraction %.4f outside [0,1]", s.UnlockFraction)
	}
	if s.Alpha <= 0 {
		return eris.Errorf("friction: alpha %.4f must be positive", s.Alpha)
	}
	return nil
}

// Result bundles the per-municipality simulation rows with the recomputed
// national block.
type Result struct {
	Scenario       Scenario
	Municipalities []model.Simulated
	National       model.National
	NationalPrice  float64 // national price_change_pct against the baseline
}

// Simulate applies the unlock scenario to every joined record. The locked
// share shrinks proportionally (sigma_new = sigma*(1-u)); prices respond as
// (F_new/F)^alpha. Records whose baseline sigma is already degenerate are a
// fatal input error, not something the epsilon clamp may paper over.
func Simulate(records []model.Joined, s Scenario) (Result, error) {
	if err := s.Validate(); err != nil {
		return Result{}, err
	}

	out := Result{Scenario: s, Municipalities: make([]model.Simulated, 0, len(records))}
	var sumTotal, sumEmptyNew float64

	for _, rec := range records {
		if rec.Sigma >= 1 {
			return Result{}, eris.Errorf("friction: %s: baseline sigma %.4f >= 1", rec.Name, rec.Sigma)
		}
		baseF, err := Factor(rec.Sigma)
		if err != nil {
			return Result{}, eris.Wrapf(err, "friction: %s", rec.Name)
		}

		sigmaNew := rec.Sigma * (1 - s.UnlockFraction)
		fNew := clampedFactor(sigmaNew)
		ratio := math.Pow(fNew/baseF, s.Alpha)

		sim := model.Simulated{
			Joined:         rec,
			SigmaNew:       sigmaNew,
			FNew:           fNew,
			PriceRatio:     ratio,
			PriceChangePct: (ratio - 1) * 100,
			ArchetypeBase:  SimArchetype(rec.Sigma),
			ArchetypeSim:   SimArchetype(sigmaNew),
		}
		out.Municipalities = append(out.Municipalities, sim)

		sumTotal += float64(rec.STotal)
		sumEmptyNew += float64(rec.SEmpty) * (1 - s.UnlockFraction)
	}

	if sumTotal > 0 {
		// Ratio of sums over the full set, not a mean of per-municipality
		// sigmas.
		baseline := model.National{}
		for _, rec := range records {
			baseline.STotal += float64(rec.STotal)
			baseline.SEmpty += float64(rec.SEmpty)
		}
		baseline.Sigma = baseline.SEmpty / baseline.STotal

		out.National.STotal = sumTotal
		out.National.SEmpty = sumEmptyNew
		out.National.Sigma = sumEmptyNew / sumTotal
		out.National.F = clampedFactor(out.National.Sigma)
		baseF := clampedFactor(baseline.Sigma)
		out.NationalPrice = (math.Pow(out.National.F/baseF, s.Alpha) - 1) * 100
	}

	return out, nil
}

// Sweep runs the scenario at each unlock percentage in [fromPct, toPct] with
// the given step, producing one frame per level. Percentages are in [0,100].
func Sweep(records []model.Joined, fromPct, toPct, stepPct, alpha float64) ([]Result, error) {
	if stepPct <= 0 {
		return nil, eris.Errorf("friction: sweep step %.2f must be positive", stepPct)
	}
	if fromPct < 0 || toPct > 100 || fromPct > toPct {
		return nil, eris.Errorf("friction: sweep range [%.2f, %.2f] outside [0,100]", fromPct, toPct)
	}

	var frames []Result
	for pct := fromPct; pct <= toPct+1e-9; pct += stepPct {
		res, err := Simulate(records, Scenario{UnlockFraction: pct / 100, Alpha: alpha})
		if err != nil {
			return nil, err
		}
		frames = append(frames, res)
	}
	return frames, nil
}
