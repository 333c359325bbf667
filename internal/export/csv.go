package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/oikos-research/friction-cli/internal/friction"
	"github.com/oikos-research/friction-cli/internal/model"
)

// WriteSimulationCSV writes the full per-municipality simulation table.
func WriteSimulationCSV(w io.Writer, rows []model.Simulated) error {
	cw := csv.NewWriter(w)
	header := []string{
		"municipality", "matched_name", "s_total", "s_empty",
		"sigma", "F_baseline", "sigma_new", "F_new",
		"price_ratio", "price_change_pct", "archetype_base", "archetype_sim",
	}
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "export: write simulation csv header")
	}

	for _, r := range rows {
		rec := []string{
			r.Name,
			r.MatchedName,
			strconv.Itoa(r.STotal),
			strconv.Itoa(r.SEmpty),
			formatFloat(r.Sigma),
			formatFloat(r.F),
			formatFloat(r.SigmaNew),
			formatFloat(r.FNew),
			formatFloat(r.PriceRatio),
			formatFloat(r.PriceChangePct),
			r.ArchetypeBase,
			r.ArchetypeSim,
		}
		if err := cw.Write(rec); err != nil {
			return eris.Wrapf(err, "export: write simulation row %s", r.Name)
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush simulation csv")
}

// WriteCompositionCSV writes the vacancy-composition table: one row per
// municipality with its shares and archetype label.
func WriteCompositionCSV(w io.Writer, records []model.Municipality) error {
	cw := csv.NewWriter(w)
	header := []string{
		"name", "s_total", "s_empty", "sigma",
		"share_market", "share_tourism", "share_system_failure", "archetype",
	}
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "export: write composition csv header")
	}

	for _, m := range records {
		rec := []string{
			m.Name,
			strconv.Itoa(m.STotal),
			strconv.Itoa(m.SEmpty),
			formatFloat(m.Sigma),
			formatFloat(m.ShareMarket),
			formatFloat(m.ShareTourism),
			formatFloat(m.ShareSystemFailure),
			friction.Archetype(m.Sigma),
		}
		if err := cw.Write(rec); err != nil {
			return eris.Wrapf(err, "export: write composition row %s", m.Name)
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush composition csv")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}
