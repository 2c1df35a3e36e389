package bayspar

import (
	"errors"
	"testing"

	vec2d "github.com/flywave/go3d/float64/vec2"

	"github.com/stretchr/testify/assert"
)

func newTestDraws(t *testing.T, locs []vec2d.T, ndraws int) *Draws {
	t.Helper()

	alpha := make([][]float64, len(locs))
	beta := make([][]float64, len(locs))
	for i := range locs {
		alpha[i] = make([]float64, ndraws)
		beta[i] = make([]float64, ndraws)
		for j := 0; j < ndraws; j++ {
			alpha[i][j] = 0.3 + 0.002*float64(j) + 0.01*float64(i)
			beta[i][j] = 0.015 + 0.0001*float64(j)
		}
	}
	tau2 := make([]float64, ndraws)
	for j := range tau2 {
		tau2[j] = 0.0016
	}

	d, err := NewDraws(alpha, beta, tau2, locs)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

var testGridLocs = []vec2d.T{
	{-10, -80},
	{-70, -60},
	{10, -20},
	{30, 40},
}

func TestFindNearestLatLon(t *testing.T) {
	a := assert.New(t)

	d := newTestDraws(t, testGridLocs, 50)

	gp, err := d.FindNearestLatLon(-79.49700165, -18.699981690000016)
	a.NoError(err)
	a.Equal(GridPoint{Lat: -80, Lon: -10}, gp)

	gp, err = d.FindNearestLatLon(-64.8527, -64.2080)
	a.NoError(err)
	a.Equal(GridPoint{Lat: -60, Lon: -70}, gp)
}

func TestIndexNearBadLatLon(t *testing.T) {
	a := assert.New(t)

	d := newTestDraws(t, testGridLocs, 50)

	var badErr *BadLatLonError
	_, err := d.FindNearestLatLon(45, 240)
	a.True(errors.As(err, &badErr))

	_, _, err = d.FindAlphaBetaNear(91, 0)
	a.True(errors.As(err, &badErr))

	// -180 is outside the valid half-open longitude range.
	_, err = d.FindNearestLatLon(0, -180)
	a.True(errors.As(err, &badErr))
}

func TestIndexNearNoMatch(t *testing.T) {
	a := assert.New(t)

	d := newTestDraws(t, testGridLocs, 50)

	_, err := d.FindNearestLatLon(0, 100)
	a.ErrorIs(err, ErrNoGridcell)

	_, _, err = d.FindAlphaBetaNear(0, 100)
	a.ErrorIs(err, ErrNoGridcell)
}

func TestIndexNearAmbiguous(t *testing.T) {
	a := assert.New(t)

	d := newTestDraws(t, []vec2d.T{{0, 0}, {5, 5}}, 10)

	_, err := d.FindNearestLatLon(2.5, 2.5)
	a.ErrorIs(err, ErrAmbiguousGridcell)
}

func TestFindAlphaBetaNear(t *testing.T) {
	a := assert.New(t)

	d := newTestDraws(t, testGridLocs, 50)

	alpha, beta, err := d.FindAlphaBetaNear(-79.497, -18.7)
	a.NoError(err)
	a.Len(alpha, 50)
	a.Len(beta, 50)
	a.Equal(d.alpha[0], alpha)
	a.Equal(d.beta[0], beta)
}

func TestGridLocs(t *testing.T) {
	a := assert.New(t)

	d := newTestDraws(t, testGridLocs, 10)

	a.Equal([]GridPoint{
		{Lat: -80, Lon: -10},
		{Lat: -60, Lon: -70},
		{Lat: -20, Lon: 10},
		{Lat: 40, Lon: 30},
	}, d.GridLocs())
}

func TestNewDrawsInvariant(t *testing.T) {
	a := assert.New(t)

	locs := []vec2d.T{{0, 0}}

	_, err := NewDraws([][]float64{{1, 2}}, [][]float64{{1, 2}}, []float64{1, 2, 3}, locs)
	a.Error(err)

	_, err = NewDraws([][]float64{{1, 2}}, [][]float64{{1}}, []float64{1, 2}, locs)
	a.Error(err)

	_, err = NewDraws(nil, nil, []float64{1}, locs)
	a.Error(err)
}

func TestDrawsCopyIsolation(t *testing.T) {
	a := assert.New(t)

	d := newTestDraws(t, testGridLocs, 10)

	tau2 := d.Tau2()
	tau2[0] = 999
	a.Equal(0.0016, d.tau2[0])

	alpha, _, err := d.FindAlphaBetaNear(-79.497, -18.7)
	a.NoError(err)
	alpha[0] = 999
	a.NotEqual(999.0, d.alpha[0][0])

	c := d.Copy()
	c.alpha[0][0] = 999
	c.tau2[0] = 999
	c.locs[0] = vec2d.T{1, 1}
	a.NotEqual(999.0, d.alpha[0][0])
	a.Equal(0.0016, d.tau2[0])
	a.Equal(vec2d.T{-10, -80}, d.locs[0])
}
