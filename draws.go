package bayspar

import (
	"fmt"

	vec2d "github.com/flywave/go3d/float64/vec2"
)

// halfGridSpace is the fixed half-width in degrees of a calibration
// gridcell's footprint.
const halfGridSpace = 10.0

// Draws holds the spatially-varying regression posterior draws for one
// calibration: per-cell alpha/beta rows, the shared tau2 row and the cell
// center locations. A Draws is immutable once built.
type Draws struct {
	alpha [][]float64 // per cell, one value per draw
	beta  [][]float64 // per cell, one value per draw
	tau2  []float64   // shared across cells, one value per draw
	locs  []vec2d.T   // cell centers, native lon/lat order
}

// NewDraws builds a Draws and checks that every cell carries the same
// number of alpha, beta and tau2 draws.
func NewDraws(alpha, beta [][]float64, tau2 []float64, locs []vec2d.T) (*Draws, error) {
	if len(alpha) != len(locs) || len(beta) != len(locs) {
		return nil, fmt.Errorf("bayspar: %d locations but %d alpha and %d beta rows", len(locs), len(alpha), len(beta))
	}
	ndraws := len(tau2)
	for i := range locs {
		if len(alpha[i]) != ndraws || len(beta[i]) != ndraws {
			return nil, fmt.Errorf("bayspar: cell %d has %d alpha and %d beta draws, want %d", i, len(alpha[i]), len(beta[i]), ndraws)
		}
	}
	return &Draws{alpha: alpha, beta: beta, tau2: tau2, locs: locs}, nil
}

// NCells reports the number of gridcells.
func (d *Draws) NCells() int {
	return len(d.locs)
}

// NDraws reports the number of posterior draws available per cell.
func (d *Draws) NDraws() int {
	return len(d.tau2)
}

// indexNear finds the gridcell indices whose center is within
// halfGridSpace of the query on both axes independently. Longitudes are
// compared without wrap at the +-180 meridian; the calibration grids were
// estimated with that same convention, so near-dateline queries resolve
// exactly as they did during fitting.
func (d *Draws) indexNear(lat, lon float64) ([]int, error) {
	if !validLatLon(lat, lon) {
		return nil, &BadLatLonError{Lat: lat, Lon: lon}
	}
	var idx []int
	for i, loc := range d.locs {
		lonDiff := loc[0] - lon
		latDiff := loc[1] - lat
		if lonDiff < 0 {
			lonDiff = -lonDiff
		}
		if latDiff < 0 {
			latDiff = -latDiff
		}
		if lonDiff <= halfGridSpace && latDiff <= halfGridSpace {
			idx = append(idx, i)
		}
	}
	return idx, nil
}

func (d *Draws) uniqueIndexNear(lat, lon float64) (int, error) {
	idx, err := d.indexNear(lat, lon)
	if err != nil {
		return 0, err
	}
	switch len(idx) {
	case 0:
		return 0, ErrNoGridcell
	case 1:
		return idx[0], nil
	}
	return 0, ErrAmbiguousGridcell
}

// FindNearestLatLon resolves the gridcell covering a location and returns
// its center.
func (d *Draws) FindNearestLatLon(lat, lon float64) (GridPoint, error) {
	i, err := d.uniqueIndexNear(lat, lon)
	if err != nil {
		return GridPoint{}, err
	}
	return latLonOf(d.locs[i]), nil
}

// FindAlphaBetaNear returns copies of the alpha and beta draw rows of the
// gridcell covering a location.
func (d *Draws) FindAlphaBetaNear(lat, lon float64) (alpha, beta []float64, err error) {
	i, err := d.uniqueIndexNear(lat, lon)
	if err != nil {
		return nil, nil, err
	}
	alpha = append([]float64(nil), d.alpha[i]...)
	beta = append([]float64(nil), d.beta[i]...)
	return alpha, beta, nil
}

// Tau2 returns a copy of the shared residual-variance draws.
func (d *Draws) Tau2() []float64 {
	return append([]float64(nil), d.tau2...)
}

// GridLocs returns the cell centers as lat/lon points.
func (d *Draws) GridLocs() []GridPoint {
	pts := make([]GridPoint, len(d.locs))
	for i, loc := range d.locs {
		pts[i] = latLonOf(loc)
	}
	return pts
}

// Copy deep-copies the draws so the shared reference data can be handed
// out without exposing it to mutation.
func (d *Draws) Copy() *Draws {
	alpha := make([][]float64, len(d.alpha))
	beta := make([][]float64, len(d.beta))
	for i := range d.alpha {
		alpha[i] = append([]float64(nil), d.alpha[i]...)
		beta[i] = append([]float64(nil), d.beta[i]...)
	}
	return &Draws{
		alpha: alpha,
		beta:  beta,
		tau2:  append([]float64(nil), d.tau2...),
		locs:  append([]vec2d.T(nil), d.locs...),
	}
}
