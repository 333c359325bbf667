// Package export renders pipeline results as the JSON and CSV artifacts
// consumed by downstream visualization tooling.
package export

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/rotisserie/eris"

	"github.com/oikos-research/friction-cli/internal/friction"
	"github.com/oikos-research/friction-cli/internal/model"
)

// FrictionDocument is the per-municipality friction table plus the national
// block, ordered by sigma descending.
type FrictionDocument struct {
	Level          string               `json:"level"`
	LevelCode      int                  `json:"level_code"`
	ComputedAt     string               `json:"computed_at"`
	National       model.National       `json:"national"`
	Municipalities []model.Municipality `json:"municipalities"`
}

// NewFrictionDocument builds the document from derived records. The national
// block is the ratio of summed counts, not a mean of sigmas.
func NewFrictionDocument(records []model.Municipality) (FrictionDocument, error) {
	national, err := friction.NationalTotals(records)
	if err != nil {
		return FrictionDocument{}, eris.Wrap(err, "export: friction document")
	}

	sorted := make([]model.Municipality, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Sigma > sorted[j].Sigma })

	return FrictionDocument{
		Level:          "Δήμος",
		LevelCode:      5,
		ComputedAt:     time.Now().Format(time.RFC3339),
		National:       national,
		Municipalities: sorted,
	}, nil
}

// WriteJSON writes v as indented UTF-8 JSON. Greek names are emitted as-is,
// not escaped.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "export: encode json")
	}
	return nil
}

// SaveJSON writes v to path, creating parent directories as needed.
func SaveJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrapf(err, "export: create directory for %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	if err := WriteJSON(f, v); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	return eris.Wrapf(f.Close(), "export: close %s", path)
}
