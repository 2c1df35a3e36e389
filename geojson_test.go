package bayspar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeatureCollectionSite(t *testing.T) {
	a := assert.New(t)

	site := GridPoint{Lat: -79.497, Lon: -18.7}
	pred := &Prediction{
		Location:   &site,
		GridPoints: []GridPoint{{Lat: -80, Lon: -10}},
	}

	fc := pred.FeatureCollection()
	a.Len(fc.Features, 2)
	a.Equal("gridcell", fc.Features[0].Properties["kind"])
	a.Equal("site", fc.Features[1].Properties["kind"])
	a.Equal(-80.0, fc.Features[0].Properties["lat"])
}

func TestFeatureCollectionAnalog(t *testing.T) {
	a := assert.New(t)

	pred := &Prediction{
		AnalogPoints: []GridPoint{{Lat: -20, Lon: 10}, {Lat: 40, Lon: 30}},
	}

	fc := pred.FeatureCollection()
	a.Len(fc.Features, 2)
	for _, f := range fc.Features {
		a.Equal("analog", f.Properties["kind"])
	}
}

func TestGridFeatureCollection(t *testing.T) {
	a := assert.New(t)

	d := newTestDraws(t, testGridLocs, 5)
	fc := GridFeatureCollection(d.GridLocs())

	a.Len(fc.Features, 4)
	for _, f := range fc.Features {
		a.Equal("gridcell", f.Properties["kind"])
	}
	a.Equal(-80.0, fc.Features[0].Properties["lat"])
	a.Equal(-10.0, fc.Features[0].Properties["lon"])
}

func TestGridCornersClosed(t *testing.T) {
	a := assert.New(t)

	ring := gridCorners(GridPoint{Lat: -80, Lon: -10})
	a.Len(ring, 5)
	a.Equal(ring[0], ring[4])
	a.Equal([]float64{-20, -90}, ring[0])
	a.Equal([]float64{0, -70}, ring[2])
}
