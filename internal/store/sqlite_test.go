package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oikos-research/friction-cli/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "friction.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func sampleJoined() []model.Joined {
	return []model.Joined{
		{
			Municipality: model.Municipality{
				Name: "ΑΘΗΝΑΙΩΝ", Code: 9101,
				STotal: 1000, SEmpty: 250, ForRent: 100, ForSale: 50,
				Vacation: 40, Secondary: 30, OtherReason: 30,
				Sigma: 0.25, F: 4.0 / 3.0,
				ShareMarket: 0.15, ShareTourism: 0.07, ShareSystemFailure: 0.03,
				Population: 643452,
			},
			MatchedName:    "Athens",
			MatchScore:     100,
			EmptyPerCapita: 250.0 / 643452.0,
			Geometry:       model.GeometryRef{EWKB: []byte{0x01, 0x02}},
		},
		{
			Municipality: model.Municipality{Name: "ΠΑΤΡΕΩΝ", STotal: 500, SEmpty: 200, Sigma: 0.4, F: 1.0 / 0.6},
			MatchedName:  "Patras",
			MatchScore:   100,
		},
	}
}

func TestSQLiteRunLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, RunJoin, `{"extract":"g01.csv"}`)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)

	got, err := s.LatestRun(ctx, RunJoin)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, `{"extract":"g01.csv"}`, got.Params)
}

func TestSQLiteLatestRunNoneRecorded(t *testing.T) {
	s := newTestStore(t)
	_, err := s.LatestRun(context.Background(), RunSimulate)
	assert.Error(t, err)
}

func TestSQLiteJoinedRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, RunJoin, "")
	require.NoError(t, err)
	require.NoError(t, s.SaveJoined(ctx, run.ID, sampleJoined()))

	got, err := s.LoadJoined(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Ordered by sigma descending.
	assert.Equal(t, "Patras", got[0].MatchedName)
	assert.Equal(t, "Athens", got[1].MatchedName)
	assert.Equal(t, 1000, got[1].STotal)
	assert.InDelta(t, 0.25, got[1].Sigma, 1e-12)
	assert.Equal(t, []byte{0x01, 0x02}, got[1].Geometry.EWKB)
	assert.Equal(t, 643452, got[1].Population)
}

func TestSQLiteLoadJoinedEmptyRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, RunJoin, "")
	require.NoError(t, err)

	_, err = s.LoadJoined(ctx, run.ID)
	assert.Error(t, err)
}

func TestSQLiteSaveSimulations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, err := s.CreateRun(ctx, RunSimulate, `{"u":0.2,"alpha":1.4}`)
	require.NoError(t, err)

	sims := []model.Simulated{
		{
			Joined:         model.Joined{Municipality: model.Municipality{Name: "ΑΘΗΝΑΙΩΝ", Sigma: 0.25}, MatchedName: "Athens"},
			SigmaNew:       0.20,
			FNew:           1.25,
			PriceRatio:     0.9375,
			PriceChangePct: -6.25,
			ArchetypeBase:  "TRANSITIONAL",
			ArchetypeSim:   "HEALTHY",
		},
	}
	require.NoError(t, s.SaveSimulations(ctx, run.ID, sims))

	// Same run and municipality pair violates the primary key.
	assert.Error(t, s.SaveSimulations(ctx, run.ID, sims))
}
