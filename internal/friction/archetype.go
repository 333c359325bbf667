package friction

// Benchmark archetypes bucket sigma into contiguous ranges covering [0, ∞).
// Labels only; nothing numeric depends on them.
const (
	EUEfficient             = "EU_EFFICIENT"
	EUNormal                = "EU_NORMAL"
	MediterraneanAcceptable = "MEDITERRANEAN_ACCEPTABLE"
	ElevatedFriction        = "ELEVATED_FRICTION"
	StructuralDysfunction   = "STRUCTURAL_DYSFUNCTION"
	MarketCollapse          = "MARKET_COLLAPSE"
)

// Archetype returns the benchmark bucket for a sigma value.
func Archetype(sigma float64) string {
	switch {
	case sigma < 0.10:
		return EUEfficient
	case sigma < 0.15:
		return EUNormal
	case sigma < 0.20:
		return MediterraneanAcceptable
	case sigma < 0.30:
		return ElevatedFriction
	case sigma < 0.50:
		return StructuralDysfunction
	default:
		return MarketCollapse
	}
}

// Three-bucket view used by the simulator's before/after labeling.
const (
	Healthy      = "HEALTHY"
	Transitional = "TRANSITIONAL"
	Problematic  = "PROBLEMATIC"
)

// SimArchetype returns the coarse three-bucket label for a sigma value.
func SimArchetype(sigma float64) string {
	switch {
	case sigma > 0.5:
		return Problematic
	case sigma >= 0.25:
		return Transitional
	default:
		return Healthy
	}
}
