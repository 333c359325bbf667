package geo

import (
	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/ewkb"
	"go.uber.org/zap"

	"github.com/oikos-research/friction-cli/internal/model"
)

// encodeShape converts a shapefile polygon to an EWKB geometry reference
// with SRID 4326. Non-polygon and nil shapes yield an empty reference.
func encodeShape(shape shp.Shape) (model.GeometryRef, error) {
	p, ok := shape.(*shp.Polygon)
	if !ok || p == nil {
		return model.GeometryRef{}, nil
	}

	mp := polygonToMultiPolygon(p)
	if mp == nil {
		return model.GeometryRef{}, nil
	}

	data, err := ewkb.Marshal(mp, ewkb.NDR)
	if err != nil {
		return model.GeometryRef{}, eris.Wrap(err, "geo: encode EWKB")
	}

	return model.GeometryRef{
		EWKB:      data,
		NumParts:  mp.NumPolygons(),
		NumPoints: len(p.Points),
	}, nil
}

// polygonToMultiPolygon converts a shapefile Polygon to a geom.MultiPolygon.
func polygonToMultiPolygon(p *shp.Polygon) *geom.MultiPolygon {
	if p.NumParts == 0 || len(p.Points) == 0 {
		return nil
	}

	mp := geom.NewMultiPolygon(geom.XY).SetSRID(4326)

	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		var end int32
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		} else {
			end = int32(len(p.Points))
		}

		flat := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			flat = append(flat, p.Points[j].X, p.Points[j].Y)
		}

		ring := geom.NewLinearRingFlat(geom.XY, flat)
		poly := geom.NewPolygon(geom.XY)
		if err := poly.Push(ring); err != nil {
			zap.L().Debug("geo: skipping malformed polygon ring", zap.Int32("part", i), zap.Error(err))
			continue
		}
		if err := mp.Push(poly); err != nil {
			zap.L().Debug("geo: skipping malformed polygon part", zap.Int32("part", i), zap.Error(err))
			continue
		}
	}

	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}
