package bayspar

import (
	"github.com/flywave/go-geom"
	"github.com/flywave/go-geom/general"
)

// gridCorners walks the corner ring of the gridcell footprint centered
// on a point, closing the ring.
func gridCorners(p GridPoint) [][]float64 {
	return [][]float64{
		{p.Lon - halfGridSpace, p.Lat - halfGridSpace},
		{p.Lon + halfGridSpace, p.Lat - halfGridSpace},
		{p.Lon + halfGridSpace, p.Lat + halfGridSpace},
		{p.Lon - halfGridSpace, p.Lat + halfGridSpace},
		{p.Lon - halfGridSpace, p.Lat - halfGridSpace},
	}
}

// GridFeatureCollection renders gridcell footprints as GeoJSON polygons,
// one per cell center.
func GridFeatureCollection(pts []GridPoint) *geom.FeatureCollection {
	fc := &geom.FeatureCollection{}
	for _, gp := range pts {
		fc.Features = append(fc.Features, &geom.Feature{
			Geometry: general.NewPolygon([][][]float64{gridCorners(gp)}),
			Properties: map[string]interface{}{
				"kind": "gridcell",
				"lat":  gp.Lat,
				"lon":  gp.Lon,
			},
		})
	}
	return fc
}

// FeatureCollection renders a prediction's spatial footprint as GeoJSON
// features: one polygon per gridcell or analog region box and a point
// for the query site when one exists.
func (p *Prediction) FeatureCollection() *geom.FeatureCollection {
	fc := &geom.FeatureCollection{}

	addBoxes := func(pts []GridPoint, kind string) {
		for _, gp := range pts {
			poly := general.NewPolygon([][][]float64{gridCorners(gp)})
			fc.Features = append(fc.Features, &geom.Feature{
				Geometry: poly,
				Properties: map[string]interface{}{
					"kind": kind,
					"lat":  gp.Lat,
					"lon":  gp.Lon,
				},
			})
		}
	}
	addBoxes(p.GridPoints, "gridcell")
	addBoxes(p.AnalogPoints, "analog")

	if p.Location != nil {
		pt := general.NewPoint([]float64{p.Location.Lon, p.Location.Lat})
		fc.Features = append(fc.Features, &geom.Feature{
			Geometry: pt,
			Properties: map[string]interface{}{
				"kind": "site",
				"lat":  p.Location.Lat,
				"lon":  p.Location.Lon,
			},
		})
	}
	return fc
}
