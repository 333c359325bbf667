package friction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oikos-research/friction-cli/internal/model"
)

func TestDerive_Example(t *testing.T) {
	m := model.Municipality{Name: "ΑΘΗΝΑΙΩΝ", STotal: 1000, SEmpty: 250}
	require.NoError(t, Derive(&m))
	assert.InDelta(t, 0.25, m.Sigma, 1e-12)
	assert.InDelta(t, 1.0/0.75, m.F, 1e-12)
}

func TestDerive_SharesSumToSigma(t *testing.T) {
	m := model.Municipality{
		Name: "ΧΑΝΙΩΝ", STotal: 900,
		ForRent: 50, ForSale: 30, Vacation: 100, Secondary: 60, OtherReason: 40,
	}
	m.SEmpty = m.ForRent + m.ForSale + m.Vacation + m.Secondary + m.OtherReason
	require.NoError(t, Derive(&m))
	assert.InDelta(t, m.Sigma, m.ShareMarket+m.ShareTourism+m.ShareSystemFailure, 1e-9)
}

func TestDerive_RejectsZeroTotal(t *testing.T) {
	m := model.Municipality{Name: "bad", STotal: 0, SEmpty: 5}
	assert.Error(t, Derive(&m))
}

func TestDerive_RejectsSigmaAtLeastOne(t *testing.T) {
	m := model.Municipality{Name: "bad", STotal: 10, SEmpty: 10}
	assert.Error(t, Derive(&m))

	m = model.Municipality{Name: "worse", STotal: 10, SEmpty: 12}
	assert.Error(t, Derive(&m))
}

func TestFactor_StrictlyIncreasing(t *testing.T) {
	prev := 0.0
	for _, sigma := range []float64{0, 0.1, 0.25, 0.5, 0.8, 0.95} {
		f, err := Factor(sigma)
		require.NoError(t, err)
		assert.Greater(t, f, prev)
		prev = f
	}
}

func TestFactor_SigmaZeroIsOne(t *testing.T) {
	f, err := Factor(0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, f)
}

func TestFactor_RejectsDegenerate(t *testing.T) {
	_, err := Factor(1)
	assert.Error(t, err)
	_, err = Factor(1.5)
	assert.Error(t, err)
}

func TestNationalTotals_RatioOfSums(t *testing.T) {
	records := []model.Municipality{
		{STotal: 1000, SEmpty: 100}, // sigma 0.1
		{STotal: 100, SEmpty: 50},   // sigma 0.5
	}
	n, err := NationalTotals(records)
	require.NoError(t, err)
	// 150/1100, not (0.1+0.5)/2.
	assert.InDelta(t, 150.0/1100.0, n.Sigma, 1e-12)
}

func TestNationalTotals_Empty(t *testing.T) {
	_, err := NationalTotals(nil)
	assert.Error(t, err)
}

func TestArchetype_BucketsContiguousExhaustive(t *testing.T) {
	cases := map[float64]string{
		0.0:  EUEfficient,
		0.09: EUEfficient,
		0.10: EUNormal,
		0.15: MediterraneanAcceptable,
		0.20: ElevatedFriction,
		0.30: StructuralDysfunction,
		0.50: MarketCollapse,
		0.99: MarketCollapse,
		2.0:  MarketCollapse,
	}
	for sigma, want := range cases {
		assert.Equal(t, want, Archetype(sigma), "sigma=%v", sigma)
	}
}

func TestSimArchetype(t *testing.T) {
	assert.Equal(t, Healthy, SimArchetype(0.1))
	assert.Equal(t, Transitional, SimArchetype(0.25))
	assert.Equal(t, Transitional, SimArchetype(0.5))
	assert.Equal(t, Problematic, SimArchetype(0.51))
}
