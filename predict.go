package bayspar

import (
	"math"
	"sort"

	"golang.org/x/exp/rand"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Prediction is one predictive ensemble. The ensemble is held flat with
// explicit dimensions: time steps x matched locations x members, with a
// single location for the non-analog modes. Immutable once constructed.
type Prediction struct {
	TempType TempType

	ens   []float64
	nd    int
	nlocs int
	nens  int

	// Location is the query site for the non-analog modes.
	Location *GridPoint
	// PriorMean and PriorStd are set by the inverse modes.
	PriorMean *float64
	PriorStd  *float64
	// GridPoints are the gridcell centers that supplied draws.
	GridPoints []GridPoint
	// AnalogPoints are the matched analog region locations.
	AnalogPoints []GridPoint
}

// Dims reports the ensemble shape as (time steps, locations, members).
func (p *Prediction) Dims() (nd, nlocs, nens int) {
	return p.nd, p.nlocs, p.nens
}

// At reads one ensemble member value.
func (p *Prediction) At(t, loc, member int) float64 {
	return p.ens[(t*p.nlocs+loc)*p.nens+member]
}

// Ensemble returns a copy of the raw ensemble, row-major by time step,
// then location, then member.
func (p *Prediction) Ensemble() []float64 {
	return append([]float64(nil), p.ens...)
}

// Percentile summarizes the ensemble per time step over every non-time
// axis with nearest-rank selection. The default q is 5, 50, 95. The
// result has one row per time step and one column per requested
// percentile.
func (p *Prediction) Percentile(q ...float64) *mat.Dense {
	if len(q) == 0 {
		q = []float64{5, 50, 95}
	}
	out := mat.NewDense(p.nd, len(q), nil)
	width := p.nlocs * p.nens
	buf := make([]float64, width)
	for t := 0; t < p.nd; t++ {
		copy(buf, p.ens[t*width:(t+1)*width])
		sort.Float64s(buf)
		for j, qq := range q {
			// Round-half-even keeps the rank choice identical to the
			// original calibration's nearest interpolation.
			i := int(math.RoundToEven(qq / 100 * float64(width-1)))
			if i < 0 {
				i = 0
			}
			if i >= width {
				i = width - 1
			}
			out.Set(t, j, buf[i])
		}
	}
	return out
}

func (e *Engine) checkEnsembleSize(d *Draws, nens int) error {
	if nens >= d.NDraws() {
		return &EnsembleSizeError{Available: d.NDraws(), Requested: nens}
	}
	if nens <= 0 {
		return &EnsembleSizeError{Available: d.NDraws(), Requested: nens}
	}
	return nil
}

// forwardDraw simulates one proxy series from a single regression draw,
// clipped to the valid TEX86 range.
func forwardDraw(dst []float64, seatemp []float64, alphaNow, betaNow, tau2Now float64, src rand.Source) {
	sigma := math.Sqrt(tau2Now)
	for t, temp := range seatemp {
		norm := distuv.Normal{Mu: temp*betaNow + alphaNow, Sigma: sigma, Src: src}
		dst[t] = clip01(norm.Rand())
	}
}

// PredictTex predicts a TEX86 ensemble from a sea temperature series
// observed at a single site.
func (e *Engine) PredictTex(seatemp []float64, lat, lon float64, tt TempType, nens int) (*Prediction, error) {
	draws, err := e.drawsFor(tt)
	if err != nil {
		return nil, err
	}
	if err := e.checkEnsembleSize(draws, nens); err != nil {
		return nil, err
	}

	alpha, beta, err := draws.FindAlphaBetaNear(lat, lon)
	if err != nil {
		return nil, err
	}
	gp, err := draws.FindNearestLatLon(lat, lon)
	if err != nil {
		return nil, err
	}

	nd := len(seatemp)
	rng := e.newRand()
	ens := make([]float64, nd*nens)
	row := make([]float64, nd)
	for j := 0; j < nens; j++ {
		forwardDraw(row, seatemp, alpha[j], beta[j], draws.tau2[j], rng)
		for t := 0; t < nd; t++ {
			ens[t*nens+j] = row[t]
		}
	}

	site := GridPoint{Lat: lat, Lon: lon}
	return &Prediction{
		TempType:   tt,
		ens:        ens,
		nd:         nd,
		nlocs:      1,
		nens:       nens,
		Location:   &site,
		GridPoints: []GridPoint{gp},
	}, nil
}

// PredictSeaTemp predicts a sea temperature ensemble from a TEX86 series
// observed at a single site. When priorMean is nil the prior mean is the
// average of the climatology observations close to the site.
func (e *Engine) PredictSeaTemp(tex []float64, lat, lon float64, priorStd float64, tt TempType, priorMean *float64, nens int) (*Prediction, error) {
	draws, err := e.drawsFor(tt)
	if err != nil {
		return nil, err
	}
	if err := e.checkEnsembleSize(draws, nens); err != nil {
		return nil, err
	}
	obs, err := e.seaTempFor(tt)
	if err != nil {
		return nil, err
	}

	pm := 0.0
	if priorMean != nil {
		pm = *priorMean
	} else {
		closeObs, _, err := obs.CloseObs(lat, lon)
		if err != nil {
			return nil, err
		}
		pm = mean(closeObs)
	}

	alpha, beta, err := draws.FindAlphaBetaNear(lat, lon)
	if err != nil {
		return nil, err
	}
	gp, err := draws.FindNearestLatLon(lat, lon)
	if err != nil {
		return nil, err
	}

	nd := len(tex)
	prior := newDiagonalPrior(nd, pm, priorStd)
	rng := e.newRand()
	z := make([]float64, nd)
	ens := make([]float64, nd*nens)
	for j := 0; j < nens; j++ {
		for t := range z {
			z[t] = rng.NormFloat64()
		}
		sample, err := targetSeriesSample(alpha[j], beta[j], draws.tau2[j], tex, prior, z)
		if err != nil {
			return nil, err
		}
		for t := 0; t < nd; t++ {
			ens[t*nens+j] = sample[t]
		}
	}

	site := GridPoint{Lat: lat, Lon: lon}
	return &Prediction{
		TempType:   tt,
		ens:        ens,
		nd:         nd,
		nlocs:      1,
		nens:       nens,
		Location:   &site,
		PriorMean:  &pm,
		PriorStd:   &priorStd,
		GridPoints: []GridPoint{gp},
	}, nil
}

// PredictSeaTempAnalog predicts sea temperature from a TEX86 series with
// no local calibration, using every region whose mean TEX86 lies within
// searchTol of the series mean. The ensemble gains a location axis, one
// per matched region.
func (e *Engine) PredictSeaTempAnalog(tex []float64, priorStd float64, tt TempType, searchTol float64, priorMean float64, nens int) (*Prediction, error) {
	draws, err := e.drawsFor(tt)
	if err != nil {
		return nil, err
	}
	if err := e.checkEnsembleSize(draws, nens); err != nil {
		return nil, err
	}
	texObs, err := e.texObsFor(tt)
	if err != nil {
		return nil, err
	}

	target := mean(tex)
	_, matches, _ := texObs.FindWithinTolerance(target, searchTol)
	if len(matches) == 0 {
		return nil, &NoAnalogError{Mean: target, Tolerance: searchTol}
	}

	nd := len(tex)
	nlocs := len(matches)
	prior := newDiagonalPrior(nd, priorMean, priorStd)
	rng := e.newRand()
	z := make([]float64, nd)
	ens := make([]float64, nd*nlocs*nens)

	for kk, gp := range matches {
		alpha, beta, err := draws.FindAlphaBetaNear(gp.Lat, gp.Lon)
		if err != nil {
			return nil, err
		}
		for j := 0; j < nens; j++ {
			for t := range z {
				z[t] = rng.NormFloat64()
			}
			sample, err := targetSeriesSample(alpha[j], beta[j], draws.tau2[j], tex, prior, z)
			if err != nil {
				return nil, err
			}
			for t := 0; t < nd; t++ {
				ens[(t*nlocs+kk)*nens+j] = sample[t]
			}
		}
		e.log.Debug("analog region sampled",
			zap.Int("region", kk+1),
			zap.Int("total", nlocs),
			zap.Float64("lat", gp.Lat),
			zap.Float64("lon", gp.Lon))
		if e.progress != nil {
			e.progress(kk+1, nlocs)
		}
	}

	return &Prediction{
		TempType:     tt,
		ens:          ens,
		nd:           nd,
		nlocs:        nlocs,
		nens:         nens,
		PriorMean:    &priorMean,
		PriorStd:     &priorStd,
		AnalogPoints: matches,
	}, nil
}

// stridedIndices downsamples a pool to exactly n entries by taking every
// round(size/n)-th element starting at 0, with the stride quotient
// rounded half to even.
func stridedIndices(size, n int) []int {
	ds := int(math.RoundToEven(float64(size) / float64(n)))
	if ds < 1 {
		ds = 1
	}
	idx := make([]int, n)
	for j := 0; j < n; j++ {
		i := j * ds
		if i >= size {
			i = size - 1
		}
		idx[j] = i
	}
	return idx
}

// PredictTexAnalog predicts a TEX86 ensemble from a sea temperature
// series with no site location, pooling the full-field draws of every
// matched analog region and downsampling the pool to the requested
// ensemble size.
func (e *Engine) PredictTexAnalog(seatemp []float64, tt TempType, searchTol float64, nens int) (*Prediction, error) {
	draws, err := e.analogDrawsFor(tt)
	if err != nil {
		return nil, err
	}
	if err := e.checkEnsembleSize(draws, nens); err != nil {
		return nil, err
	}
	texObs, err := e.texObsFor(tt)
	if err != nil {
		return nil, err
	}

	target := mean(seatemp)
	idx, matches, _ := texObs.FindWithinTolerance(target, searchTol)
	if len(idx) == 0 {
		return nil, &NoAnalogError{Mean: target, Tolerance: searchTol}
	}

	// Pool the matched regions' draws, tiling the shared tau2 row so the
	// three pools stay aligned.
	ndraws := draws.NDraws()
	pool := len(idx) * ndraws
	alphaPool := make([]float64, 0, pool)
	betaPool := make([]float64, 0, pool)
	tau2Pool := make([]float64, 0, pool)
	for _, i := range idx {
		if i >= draws.NCells() {
			return nil, ErrNoGridcell
		}
		alphaPool = append(alphaPool, draws.alpha[i]...)
		betaPool = append(betaPool, draws.beta[i]...)
		tau2Pool = append(tau2Pool, draws.tau2...)
	}

	nd := len(seatemp)
	rng := e.newRand()
	ens := make([]float64, nd*nens)
	row := make([]float64, nd)
	for j, i := range stridedIndices(pool, nens) {
		forwardDraw(row, seatemp, alphaPool[i], betaPool[i], tau2Pool[i], rng)
		for t := 0; t < nd; t++ {
			ens[t*nens+j] = row[t]
		}
	}

	return &Prediction{
		TempType:     tt,
		ens:          ens,
		nd:           nd,
		nlocs:        1,
		nens:         nens,
		AnalogPoints: matches,
	}, nil
}
