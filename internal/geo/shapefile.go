// Package geo loads the administrative boundary polygons the matched census
// records are joined onto.
package geo

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/oikos-research/friction-cli/internal/model"
)

// Options configures the boundary loader.
type Options struct {
	NameField string // attribute carrying the unit name (default NAME_3)
	Exclude   string // non-municipal enclave dropped unconditionally (default Athos)
}

// LoadBoundaries reads the boundary shapefile and returns one record per
// polygon, skipping the designated enclave and any record without a usable
// name or geometry. Skips are logged, not fatal; a missing name field is.
func LoadBoundaries(shpPath string, opts Options) ([]model.Boundary, error) {
	if opts.NameField == "" {
		opts.NameField = "NAME_3"
	}
	if opts.Exclude == "" {
		opts.Exclude = "Athos"
	}

	reader, err := shp.Open(shpPath)
	if err != nil {
		return nil, eris.Wrapf(err, "geo: open shapefile %s", shpPath)
	}
	defer func() { _ = reader.Close() }()

	nameIdx := -1
	for i, f := range reader.Fields() {
		name := strings.TrimRight(f.String(), "\x00")
		if strings.EqualFold(name, opts.NameField) {
			nameIdx = i
			break
		}
	}
	if nameIdx < 0 {
		return nil, eris.Errorf("geo: shapefile %s has no %q field", shpPath, opts.NameField)
	}

	var boundaries []model.Boundary
	var skipped int
	for reader.Next() {
		_, shape := reader.Shape()

		name := strings.TrimSpace(strings.TrimRight(reader.Attribute(nameIdx), "\x00"))
		if name == "" || name == opts.Exclude {
			continue
		}

		ref, err := encodeShape(shape)
		if err != nil || ref.EWKB == nil {
			skipped++
			continue
		}
		boundaries = append(boundaries, model.Boundary{Name: name, Geometry: ref})
	}

	if skipped > 0 {
		zap.L().Debug("geo: skipped shapefile records",
			zap.String("path", shpPath),
			zap.Int("skipped", skipped),
		)
	}
	if len(boundaries) == 0 {
		return nil, eris.Errorf("geo: no usable polygons in %s", shpPath)
	}
	return boundaries, nil
}
