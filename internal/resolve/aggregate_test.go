package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oikos-research/friction-cli/internal/model"
)

func lesbosOverrides(t *testing.T) *Overrides {
	t.Helper()
	o, err := ParseOverrides([]byte("many_to_one:\n  Lesbos: [ΔΥΤΙΚΗΣ ΛΕΣΒΟΥ, ΜΥΤΙΛΗΝΗΣ]\n"))
	require.NoError(t, err)
	return o
}

func TestAggregateMany_WeightedSigmaEqualTotals(t *testing.T) {
	o := lesbosOverrides(t)
	records := []model.Municipality{
		{Name: "ΔΥΤΙΚΗΣ ΛΕΣΒΟΥ", STotal: 100, SEmpty: 20, Sigma: 0.2},
		{Name: "ΜΥΤΙΛΗΝΗΣ", STotal: 100, SEmpty: 40, Sigma: 0.4},
	}

	synthetic, skipped := AggregateMany(o, records)
	require.Len(t, synthetic, 1)
	assert.Empty(t, skipped)

	agg := synthetic[0]
	assert.Equal(t, "Lesbos", agg.MatchedName)
	assert.Equal(t, ExactScore, agg.Score)
	assert.Equal(t, "Lesbos (agg)", agg.Municipality.Name)
	assert.Equal(t, 200, agg.Municipality.STotal)
	assert.Equal(t, 60, agg.Municipality.SEmpty)
	assert.InDelta(t, 0.30, agg.Municipality.Sigma, 1e-12)
	assert.True(t, agg.Municipality.Synthetic)
}

func TestAggregateMany_WeightedByTotal(t *testing.T) {
	o := lesbosOverrides(t)
	records := []model.Municipality{
		{Name: "ΔΥΤΙΚΗΣ ΛΕΣΒΟΥ", STotal: 300, Sigma: 0.1},
		{Name: "ΜΥΤΙΛΗΝΗΣ", STotal: 100, Sigma: 0.5},
	}

	synthetic, _ := AggregateMany(o, records)
	require.Len(t, synthetic, 1)
	// (0.1*300 + 0.5*100) / 400 = 0.2
	assert.InDelta(t, 0.2, synthetic[0].Municipality.Sigma, 1e-12)
}

func TestAggregateMany_SkipsEmptySubset(t *testing.T) {
	o := lesbosOverrides(t)

	synthetic, skipped := AggregateMany(o, []model.Municipality{{Name: "ΚΑΒΑΛΑΣ", STotal: 10}})
	assert.Empty(t, synthetic)
	assert.Equal(t, []string{"Lesbos"}, skipped)
}

func TestAggregateMany_SkipsZeroTotal(t *testing.T) {
	o := lesbosOverrides(t)
	records := []model.Municipality{
		{Name: "ΔΥΤΙΚΗΣ ΛΕΣΒΟΥ", STotal: 0},
		{Name: "ΜΥΤΙΛΗΝΗΣ", STotal: 0},
	}

	synthetic, skipped := AggregateMany(o, records)
	assert.Empty(t, synthetic)
	assert.Equal(t, []string{"Lesbos"}, skipped)
}

func TestAggregateMany_PartialSubsetStillAggregates(t *testing.T) {
	o := lesbosOverrides(t)
	records := []model.Municipality{
		{Name: "ΜΥΤΙΛΗΝΗΣ", STotal: 100, SEmpty: 40, Sigma: 0.4},
	}

	synthetic, skipped := AggregateMany(o, records)
	require.Len(t, synthetic, 1)
	assert.Empty(t, skipped)
	assert.InDelta(t, 0.4, synthetic[0].Municipality.Sigma, 1e-12)
}

func TestMemberNames(t *testing.T) {
	o := lesbosOverrides(t)
	members := MemberNames(o)
	assert.True(t, members["ΜΥΤΙΛΗΝΗΣ"])
	assert.True(t, members["ΔΥΤΙΚΗΣ ΛΕΣΒΟΥ"])
	assert.False(t, members["ΚΑΒΑΛΑΣ"])
}
