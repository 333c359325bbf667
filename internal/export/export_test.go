package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oikos-research/friction-cli/internal/friction"
	"github.com/oikos-research/friction-cli/internal/model"
)

func derived(name string, total, empty int) model.Municipality {
	m := model.Municipality{Name: name, STotal: total, SEmpty: empty}
	if err := friction.Derive(&m); err != nil {
		panic(err)
	}
	return m
}

func TestNewFrictionDocumentOrderAndNational(t *testing.T) {
	records := []model.Municipality{
		derived("ΚΑΒΑΛΑΣ", 1000, 100),
		derived("ΑΘΗΝΑΙΩΝ", 1000, 300),
	}

	doc, err := NewFrictionDocument(records)
	require.NoError(t, err)

	assert.Equal(t, "Δήμος", doc.Level)
	assert.Equal(t, 5, doc.LevelCode)
	assert.NotEmpty(t, doc.ComputedAt)

	// Sorted by sigma descending.
	require.Len(t, doc.Municipalities, 2)
	assert.Equal(t, "ΑΘΗΝΑΙΩΝ", doc.Municipalities[0].Name)

	// National is a ratio of sums: 400/2000 = 0.20.
	assert.InDelta(t, 0.20, doc.National.Sigma, 1e-12)
	assert.InDelta(t, 1.25, doc.National.F, 1e-12)
}

func TestNewFrictionDocumentEmpty(t *testing.T) {
	_, err := NewFrictionDocument(nil)
	assert.Error(t, err)
}

func TestWriteJSONKeepsGreekNames(t *testing.T) {
	doc, err := NewFrictionDocument([]model.Municipality{derived("ΑΘΗΝΑΙΩΝ", 1000, 250)})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, doc))
	assert.Contains(t, buf.String(), "ΑΘΗΝΑΙΩΝ")
	assert.Contains(t, buf.String(), `"s_total": 1000`)
}

func TestSaveJSONCreatesParents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "nested", "friction.json")

	require.NoError(t, SaveJSON(path, map[string]int{"a": 1}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got map[string]int
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, 1, got["a"])
}

func TestUnlockTwentyPercent(t *testing.T) {
	records := []model.Municipality{derived("ΑΘΗΝΑΙΩΝ", 1000, 250)}

	doc, err := Unlock(records, 20)
	require.NoError(t, err)
	require.Len(t, doc.Municipalities, 1)

	m := doc.Municipalities[0]
	assert.InDelta(t, 200, m.SEmptyUnlocked, 1e-9)
	assert.InDelta(t, 0.20, m.SigmaUnlocked, 1e-12)
	assert.InDelta(t, 1.25, m.FUnlocked, 1e-12)
	// price ratio 1.25 / (4/3) = 0.9375 -> -6.25%
	assert.InDelta(t, -6.25, m.PriceChangePctUnlocked, 1e-9)

	assert.InDelta(t, 0.20, doc.National.SigmaUnlocked, 1e-12)
	assert.InDelta(t, -6.25, doc.National.PriceChangePctUnlocked, 1e-9)
}

func TestUnlockZeroIsNoOp(t *testing.T) {
	records := []model.Municipality{derived("ΚΑΒΑΛΑΣ", 500, 100)}

	doc, err := Unlock(records, 0)
	require.NoError(t, err)

	m := doc.Municipalities[0]
	assert.InDelta(t, float64(m.SEmpty), m.SEmptyUnlocked, 1e-12)
	assert.InDelta(t, m.Sigma, m.SigmaUnlocked, 1e-12)
	assert.InDelta(t, 0, m.PriceChangePctUnlocked, 1e-9)
	assert.InDelta(t, 0, doc.National.PriceChangePctUnlocked, 1e-9)
}

func TestUnlockRejectsBadPct(t *testing.T) {
	records := []model.Municipality{derived("ΚΑΒΑΛΑΣ", 500, 100)}

	_, err := Unlock(records, -1)
	assert.Error(t, err)
	_, err = Unlock(records, 101)
	assert.Error(t, err)
	_, err = Unlock(nil, 10)
	assert.Error(t, err)
}

func TestNewSweepDocument(t *testing.T) {
	records := []model.Joined{
		{Municipality: derived("ΑΘΗΝΑΙΩΝ", 1000, 250), MatchedName: "Athens", MatchScore: 100},
	}

	results, err := friction.Sweep(records, 0, 20, 10, 1.0)
	require.NoError(t, err)

	doc := NewSweepDocument(results)
	require.Len(t, doc.Frames, 3)
	assert.InDelta(t, 0, doc.Frames[0].UnlockPct, 1e-9)
	assert.InDelta(t, 10, doc.Frames[1].UnlockPct, 1e-9)
	assert.InDelta(t, 20, doc.Frames[2].UnlockPct, 1e-9)
	assert.InDelta(t, 1.0, doc.Frames[1].Alpha, 1e-12)
	assert.InDelta(t, -6.25, doc.Frames[2].NationalPriceChangePct, 1e-6)
	require.Len(t, doc.Frames[2].Municipalities, 1)
	assert.Equal(t, "Athens", doc.Frames[2].Municipalities[0].MatchedName)
}

func TestWriteSimulationCSV(t *testing.T) {
	rows := []model.Simulated{
		{
			Joined: model.Joined{
				Municipality: derived("ΑΘΗΝΑΙΩΝ", 1000, 250),
				MatchedName:  "Athens",
			},
			SigmaNew:       0.20,
			FNew:           1.25,
			PriceRatio:     0.9375,
			PriceChangePct: -6.25,
			ArchetypeBase:  friction.Transitional,
			ArchetypeSim:   friction.Healthy,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSimulationCSV(&buf, rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "municipality,matched_name,s_total"))
	assert.Contains(t, lines[1], "ΑΘΗΝΑΙΩΝ")
	assert.Contains(t, lines[1], "Athens")
	assert.Contains(t, lines[1], "-6.250000")
	assert.Contains(t, lines[1], "TRANSITIONAL")
}

func TestWriteCompositionCSV(t *testing.T) {
	m := derived("ΚΑΒΑΛΑΣ", 1000, 120)

	var buf bytes.Buffer
	require.NoError(t, WriteCompositionCSV(&buf, []model.Municipality{m}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "share_system_failure")
	assert.Contains(t, lines[1], friction.EUNormal)
}
