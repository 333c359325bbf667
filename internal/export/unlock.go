package export

import (
	"github.com/rotisserie/eris"

	"github.com/oikos-research/friction-cli/internal/model"
)

// UnlockedMunicipality is a friction record plus the proportionally unlocked
// view for a given percentage.
type UnlockedMunicipality struct {
	model.Municipality

	SEmptyUnlocked         float64 `json:"s_empty_unlocked"`
	SigmaUnlocked          float64 `json:"sigma_unlocked"`
	FUnlocked              float64 `json:"F_unlocked"`
	PriceChangePctUnlocked float64 `json:"price_change_pct_unlocked"`
}

// UnlockNational is the recomputed country block after unlocking.
type UnlockNational struct {
	STotal                 float64 `json:"s_total"`
	SEmptyUnlocked         float64 `json:"s_empty_unlocked"`
	SigmaUnlocked          float64 `json:"sigma_unlocked"`
	FUnlocked              float64 `json:"F_unlocked"`
	PriceChangePctUnlocked float64 `json:"price_change_pct_unlocked"`
}

// UnlockDocument is the unlocked friction artifact for one percentage level.
type UnlockDocument struct {
	UnlockPct      float64                `json:"unlock_pct"`
	National       UnlockNational         `json:"national"`
	Municipalities []UnlockedMunicipality `json:"municipalities"`
}

// Unlock applies a proportional reduction of pct percent to every record's
// locked stock and recomputes the national block as a ratio of sums. Price
// responses here use unit elasticity; the simulate path carries alpha.
func Unlock(records []model.Municipality, pct float64) (UnlockDocument, error) {
	if pct < 0 || pct > 100 {
		return UnlockDocument{}, eris.Errorf("export: unlock pct %.2f outside [0,100]", pct)
	}
	if len(records) == 0 {
		return UnlockDocument{}, eris.New("export: no municipality records to unlock")
	}

	factor := 1 - pct/100
	doc := UnlockDocument{
		UnlockPct:      pct,
		Municipalities: make([]UnlockedMunicipality, 0, len(records)),
	}

	var sumTotal, sumEmptyNew, sumEmptyBase float64
	for _, rec := range records {
		emptyNew := float64(rec.SEmpty) * factor

		var sigmaNew float64
		if rec.STotal > 0 {
			sigmaNew = emptyNew / float64(rec.STotal)
		}
		fNew := unlockFactor(sigmaNew)

		priceRatio := 1.0
		if rec.F != 0 {
			priceRatio = fNew / rec.F
		}

		doc.Municipalities = append(doc.Municipalities, UnlockedMunicipality{
			Municipality:           rec,
			SEmptyUnlocked:         emptyNew,
			SigmaUnlocked:          sigmaNew,
			FUnlocked:              fNew,
			PriceChangePctUnlocked: (priceRatio - 1) * 100,
		})

		sumTotal += float64(rec.STotal)
		sumEmptyNew += emptyNew
		sumEmptyBase += float64(rec.SEmpty)
	}

	var sigmaNat float64
	if sumTotal > 0 {
		sigmaNat = sumEmptyNew / sumTotal
	}
	fNat := unlockFactor(sigmaNat)

	priceNat := 1.0
	if sumTotal > 0 {
		baseF := unlockFactor(sumEmptyBase / sumTotal)
		if baseF != 0 {
			priceNat = fNat / baseF
		}
	}

	doc.National = UnlockNational{
		STotal:                 sumTotal,
		SEmptyUnlocked:         sumEmptyNew,
		SigmaUnlocked:          sigmaNat,
		FUnlocked:              fNat,
		PriceChangePctUnlocked: (priceNat - 1) * 100,
	}
	return doc, nil
}

// unlockFactor computes F with a denominator guard. Unlocking only ever
// lowers sigma, so the clamp cannot fire for records derived upstream; it
// keeps hand-fed inputs from producing Inf, which JSON cannot carry.
func unlockFactor(sigma float64) float64 {
	const eps = 1e-9
	if sigma > 1-eps {
		sigma = 1 - eps
	}
	return 1 / (1 - sigma)
}
