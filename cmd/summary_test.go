package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oikos-research/friction-cli/internal/export"
	"github.com/oikos-research/friction-cli/internal/friction"
	"github.com/oikos-research/friction-cli/internal/model"
)

func derivedMuni(t *testing.T, name string, total, empty int) model.Municipality {
	t.Helper()
	m := model.Municipality{Name: name, STotal: total, SEmpty: empty}
	require.NoError(t, friction.Derive(&m))
	return m
}

func TestPrintFrictionSummary(t *testing.T) {
	records := []model.Municipality{
		derivedMuni(t, "ΑΘΗΝΑΙΩΝ", 1000, 300),
		derivedMuni(t, "ΚΑΒΑΛΑΣ", 1000, 100),
	}
	doc, err := export.NewFrictionDocument(records)
	require.NoError(t, err)

	var buf bytes.Buffer
	printFrictionSummary(&buf, doc)
	out := buf.String()

	assert.Contains(t, out, "MOST LOCKED MARKETS")
	assert.Contains(t, out, "HEALTHIEST MARKETS")
	assert.Contains(t, out, "ΑΘΗΝΑΙΩΝ")
	assert.Contains(t, out, "ΣΥΝΟΛΟ ΧΩΡΑΣ")

	// Major cities section picks up Athens but not the non-major city.
	major := out[strings.Index(out, "MAJOR CITIES"):]
	assert.Contains(t, major, "ΑΘΗΝΑΙΩΝ")
	assert.NotContains(t, major[:strings.Index(major, "ΣΥΝΟΛΟ")], "ΚΑΒΑΛΑΣ")
}

func TestPrintSimulationSummary(t *testing.T) {
	joined := []model.Joined{
		{Municipality: derivedMuni(t, "ΑΘΗΝΑΙΩΝ", 1000, 300), MatchedName: "Athens"},
		{Municipality: derivedMuni(t, "ΚΑΒΑΛΑΣ", 1000, 100), MatchedName: "Kavala"},
	}
	res, err := friction.Simulate(joined, friction.Scenario{UnlockFraction: 0.2, Alpha: 1.0})
	require.NoError(t, err)

	var buf bytes.Buffer
	printSimulationSummary(&buf, res, 0.25)
	out := buf.String()

	assert.Contains(t, out, "Unlock fraction (u):  0.20")
	// Only Athens clears the min-sigma filter.
	assert.Contains(t, out, "Constrained municipalities (σ >= 0.25): 1")
	assert.Contains(t, out, "Largest price drops:")
	assert.Contains(t, out, "National:")
}

func TestPrintCompositionSummary(t *testing.T) {
	records := []model.Municipality{
		derivedMuni(t, "A", 1000, 50),
		derivedMuni(t, "B", 1000, 400),
	}

	var buf bytes.Buffer
	printCompositionSummary(&buf, friction.SummarizeComposition(records))
	out := buf.String()

	assert.Contains(t, out, "ARCHETYPE SUMMARY")
	assert.Contains(t, out, friction.EUEfficient)
	assert.Contains(t, out, friction.StructuralDysfunction)
	assert.Contains(t, out, "Total municipalities: 2")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "αβγ", truncate("αβγ", 5))
	assert.Equal(t, "αβ", truncate("αβγδε", 2))
}
