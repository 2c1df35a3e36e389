package bayspar

import (
	"math"

	vec2d "github.com/flywave/go3d/float64/vec2"

	"gonum.org/v1/gonum/mat"
)

// earthRadius is the spherical Earth radius in km used for chordal
// distances, matching the radius the calibration grids were built with.
const earthRadius = 6378.137

// GridPoint is a location in degrees, latitude first.
type GridPoint struct {
	Lat float64
	Lon float64
}

func validLatLon(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon > -180 && lon <= 180
}

// latLonOf converts a stored lon/lat vector to a GridPoint. Resource data
// keeps points in native lon/lat order; callers never see that ordering.
func latLonOf(v vec2d.T) GridPoint {
	return GridPoint{Lat: v[1], Lon: v[0]}
}

func chordLength(a, b GridPoint) float64 {
	latdif := degToRad(a.Lat - b.Lat)
	londif := degToRad(a.Lon - b.Lon)

	s := pow2(math.Sin(latdif/2)) +
		math.Cos(degToRad(a.Lat))*math.Cos(degToRad(b.Lat))*pow2(math.Sin(math.Abs(londif)/2))

	halfAngle := math.Asin(math.Sqrt(s))
	return 2 * earthRadius * math.Sin(halfAngle)
}

// ChordDistance computes the Earth chord length in km between every pair
// of points. The result has len(b) rows and len(a) columns, row-major by
// the second argument, which is the orientation the observation searches
// consume.
func ChordDistance(a, b []GridPoint) *mat.Dense {
	d := mat.NewDense(len(b), len(a), nil)
	for i, q := range b {
		for j, p := range a {
			d.Set(i, j, chordLength(p, q))
		}
	}
	return d
}
