package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/oikos-research/friction-cli/internal/export"
	"github.com/oikos-research/friction-cli/internal/friction"
	"github.com/oikos-research/friction-cli/internal/model"
)

// majorCities are the census names worth calling out in every ranked summary.
var majorCities = []string{
	"ΑΘΗΝΑΙΩΝ", "ΘΕΣΣΑΛΟΝΙΚΗΣ", "ΠΕΙΡΑΙΩΣ", "ΠΑΤΡΕΩΝ", "ΗΡΑΚΛΕΙΟΥ", "ΛΑΡΙΣΑΙΩΝ",
}

const rule = "------------------------------------------------------------------------------------------------------------------------"

// printFrictionSummary writes the ranked friction table: the most locked
// markets, the healthiest tail, the major cities, and the national totals.
// The document's municipality list is already sorted by sigma descending.
func printFrictionSummary(w io.Writer, doc export.FrictionDocument) {
	records := doc.Municipalities

	fmt.Fprintln(w, "MOST LOCKED MARKETS (highest σ)")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%-5s %-35s %10s %10s %7s %7s %10s\n", "Rank", "Municipality", "S_total", "S_empty", "σ", "F", "Vacation")
	top := len(records)
	if top > 30 {
		top = 30
	}
	for i := 0; i < top; i++ {
		m := records[i]
		fmt.Fprintf(w, "%-5d %-35s %10d %10d %7.3f %7.2f %10d\n",
			i+1, truncate(m.Name, 33), m.STotal, m.SEmpty, m.Sigma, m.F, m.Vacation)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "HEALTHIEST MARKETS (lowest σ)")
	fmt.Fprintln(w, rule)
	tail := len(records) - 10
	if tail < 0 {
		tail = 0
	}
	for i := len(records) - 1; i >= tail; i-- {
		m := records[i]
		fmt.Fprintf(w, "%-5d %-35s %10d %10d %7.3f %7.2f\n",
			i+1, truncate(m.Name, 33), m.STotal, m.SEmpty, m.Sigma, m.F)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "MAJOR CITIES")
	fmt.Fprintln(w, rule)
	byName := make(map[string]model.Municipality, len(records))
	for _, m := range records {
		byName[m.Name] = m
	}
	for _, city := range majorCities {
		m, ok := byName[city]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%-35s %10d %10d %7.3f %7.2f %10d %10d\n",
			m.Name, m.STotal, m.SEmpty, m.Sigma, m.F, m.ForRent, m.Vacation)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-35s %10.0f %10.0f %7.3f %7.2f\n",
		"ΣΥΝΟΛΟ ΧΩΡΑΣ", doc.National.STotal, doc.National.SEmpty, doc.National.Sigma, doc.National.F)
}

// printSimulationSummary writes the scenario header, the constrained-market
// averages, and the extremes of the price response.
func printSimulationSummary(w io.Writer, res friction.Result, minSigma float64) {
	fmt.Fprintln(w, "UNLOCK SIMULATION")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Unlock fraction (u):  %.2f\n", res.Scenario.UnlockFraction)
	fmt.Fprintf(w, "Elasticity (alpha):   %.2f\n", res.Scenario.Alpha)
	fmt.Fprintf(w, "Min σ reported:       %.2f\n", minSigma)
	fmt.Fprintln(w)

	var sumSigma, sumSigmaNew, sumPrice float64
	constrained := 0
	for _, m := range res.Municipalities {
		if m.Sigma < minSigma {
			continue
		}
		constrained++
		sumSigma += m.Sigma
		sumSigmaNew += m.SigmaNew
		sumPrice += m.PriceChangePct
	}
	if constrained > 0 {
		n := float64(constrained)
		fmt.Fprintf(w, "Constrained municipalities (σ >= %.2f): %d\n", minSigma, constrained)
		fmt.Fprintf(w, "- Baseline σ (avg):    %.3f\n", sumSigma/n)
		fmt.Fprintf(w, "- New σ (avg):         %.3f\n", sumSigmaNew/n)
		fmt.Fprintf(w, "- Avg price change:    %.2f%%\n", sumPrice/n)
		fmt.Fprintln(w)
	}

	ranked := make([]model.Simulated, len(res.Municipalities))
	copy(ranked, res.Municipalities)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].PriceChangePct < ranked[j].PriceChangePct
	})

	fmt.Fprintln(w, "Largest price drops:")
	top := len(ranked)
	if top > 10 {
		top = 10
	}
	for _, m := range ranked[:top] {
		fmt.Fprintf(w, "%-35s σ %.3f -> %.3f   %+.2f%%\n",
			truncate(m.Name, 33), m.Sigma, m.SigmaNew, m.PriceChangePct)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Smallest responses:")
	bottom := len(ranked) - 5
	if bottom < top {
		bottom = top
	}
	for i := len(ranked) - 1; i >= bottom; i-- {
		m := ranked[i]
		fmt.Fprintf(w, "%-35s σ %.3f -> %.3f   %+.2f%%\n",
			truncate(m.Name, 33), m.Sigma, m.SigmaNew, m.PriceChangePct)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "National: σ %.4f, F %.4f, price %+.2f%%\n",
		res.National.Sigma, res.National.F, res.NationalPrice)
}

// printCompositionSummary writes the per-archetype composition table.
func printCompositionSummary(w io.Writer, stats []friction.ArchetypeStats) {
	fmt.Fprintln(w, "ARCHETYPE SUMMARY")
	fmt.Fprintf(w, "%-28s %6s %8s %12s %12s %12s\n",
		"Archetype", "Count", "Avg σ", "Avg market", "Avg tourism", "Avg sysfail")
	total := 0
	for _, st := range stats {
		total += st.Count
		fmt.Fprintf(w, "%-28s %6d %8.3f %12.3f %12.3f %12.3f\n",
			st.Archetype, st.Count, st.AvgSigma, st.AvgShareMarket, st.AvgShareTourism, st.AvgShareSystemFailure)
	}
	fmt.Fprintf(w, "Total municipalities: %d\n", total)
}

func truncate(s string, max int) string {
	if len([]rune(s)) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
