package bayspar

import (
	"sort"

	vec2d "github.com/flywave/go3d/float64/vec2"
)

const (
	// DefaultSearchRadius is the buffer in km for close-observation
	// searches.
	DefaultSearchRadius = 500.0
	// DefaultMinObs is the fallback count when no observation lies
	// within the buffer.
	DefaultMinObs = 1
)

type obsDistanceList [][2]float64

func (t obsDistanceList) Len() int {
	return len(t)
}

func (t obsDistanceList) Less(i, j int) bool {
	return t[i][0] < t[j][0]
}

func (t obsDistanceList) Swap(i, j int) {
	tmp := t[i]
	t[i] = t[j]
	t[j] = tmp
}

// SeaTempObs is the mean observed temperature climatology used to seed
// prior means. Immutable once built.
type SeaTempObs struct {
	values []float64
	locs   []vec2d.T // native lon/lat order
}

// NewSeaTempObs pairs climatology values with their locations.
func NewSeaTempObs(values []float64, locs []vec2d.T) (*SeaTempObs, error) {
	if len(values) == 0 || len(values) != len(locs) {
		return nil, ErrEmptyField
	}
	return &SeaTempObs{values: values, locs: locs}, nil
}

// NObs reports the number of climatology observations.
func (o *SeaTempObs) NObs() int {
	return len(o.values)
}

// DistanceFrom computes the chordal distance in km from every
// climatology point to a location.
func (o *SeaTempObs) DistanceFrom(lat, lon float64) []float64 {
	query := []GridPoint{{Lat: lat, Lon: lon}}
	pts := make([]GridPoint, len(o.locs))
	for i, loc := range o.locs {
		pts[i] = latLonOf(loc)
	}
	d := ChordDistance(query, pts)
	out := make([]float64, len(pts))
	for i := range pts {
		out[i] = d.At(i, 0)
	}
	return out
}

// CloseObs finds climatology observations near a location with the
// default radius and fallback count.
func (o *SeaTempObs) CloseObs(lat, lon float64) (obs, dists []float64, err error) {
	return o.CloseObsWithin(lat, lon, DefaultSearchRadius, DefaultMinObs)
}

// CloseObsWithin returns the observations within radiusKm of a location,
// sorted ascending by distance, paired with their distances. When fewer
// than minObs lie inside the buffer, the minObs nearest observations are
// returned regardless of distance.
func (o *SeaTempObs) CloseObsWithin(lat, lon float64, radiusKm float64, minObs int) (obs, dists []float64, err error) {
	if len(o.values) == 0 {
		return nil, nil, ErrEmptyField
	}

	d := o.DistanceFrom(lat, lon)
	pairs := make(obsDistanceList, len(d))
	inBuffer := 0
	for i, dist := range d {
		pairs[i] = [2]float64{dist, o.values[i]}
		if dist < radiusKm {
			inBuffer++
		}
	}
	sort.Sort(pairs)

	n := minObs
	if inBuffer > minObs {
		n = inBuffer
	}
	if n > len(pairs) {
		n = len(pairs)
	}

	obs = make([]float64, n)
	dists = make([]float64, n)
	for i := 0; i < n; i++ {
		dists[i] = pairs[i][0]
		obs[i] = pairs[i][1]
	}
	return obs, dists, nil
}

// Copy deep-copies the field.
func (o *SeaTempObs) Copy() *SeaTempObs {
	return &SeaTempObs{
		values: append([]float64(nil), o.values...),
		locs:   append([]vec2d.T(nil), o.locs...),
	}
}

// TexObs is the stack of TEX86 observations grouped into large regions,
// used by the analog searches. Immutable once built.
type TexObs struct {
	locs      []vec2d.T // region representative locations, native lon/lat
	obsStack  []float64 // all observations, stacked across regions
	indsStack []int     // 1-based region index of each stacked observation
}

// NewTexObs builds the regional observation stack. Region indices are
// 1-based, as written by the calibration pipeline.
func NewTexObs(locs []vec2d.T, obsStack []float64, indsStack []int) (*TexObs, error) {
	if len(locs) == 0 || len(obsStack) == 0 || len(obsStack) != len(indsStack) {
		return nil, ErrEmptyField
	}
	return &TexObs{locs: locs, obsStack: obsStack, indsStack: indsStack}, nil
}

// NRegions reports the number of regions in the stack.
func (o *TexObs) NRegions() int {
	return len(o.locs)
}

// FindWithinTolerance finds the regions whose mean observation lies in
// [x-tolerance, x+tolerance], both bounds inclusive. It returns the
// matched region indices, their locations as lat/lon points and their
// means, all in region-index order. Zero matches is a legitimate result
// at this layer; the prediction engine turns it into NoAnalogError.
func (o *TexObs) FindWithinTolerance(x, tolerance float64) (idx []int, pts []GridPoint, means []float64) {
	lower := x - tolerance
	upper := x + tolerance

	for kk := 1; kk <= len(o.locs); kk++ {
		sum := 0.0
		count := 0
		for i, ind := range o.indsStack {
			if ind == kk {
				sum += o.obsStack[i]
				count++
			}
		}
		if count == 0 {
			continue
		}
		m := sum / float64(count)
		if m >= lower && m <= upper {
			idx = append(idx, kk-1)
			pts = append(pts, latLonOf(o.locs[kk-1]))
			means = append(means, m)
		}
	}
	return idx, pts, means
}

// Copy deep-copies the stack.
func (o *TexObs) Copy() *TexObs {
	return &TexObs{
		locs:      append([]vec2d.T(nil), o.locs...),
		obsStack:  append([]float64(nil), o.obsStack...),
		indsStack: append([]int(nil), o.indsStack...),
	}
}
