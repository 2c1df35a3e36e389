package bayspar

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var errNotPosDef = errors.New("bayspar: posterior covariance is not positive definite")

// priorPars is the Gaussian prior over the target time series.
type priorPars struct {
	mu     []float64
	invCov *mat.SymDense
}

// newDiagonalPrior builds an i.i.d. prior with constant mean and
// variance std^2 for an n-length series.
func newDiagonalPrior(n int, mean, std float64) priorPars {
	mu := make([]float64, n)
	invCov := mat.NewSymDense(n, nil)
	p := 1 / (std * std)
	for i := 0; i < n; i++ {
		mu[i] = mean
		invCov.SetSym(i, i, p)
	}
	return priorPars{mu: mu, invCov: invCov}
}

// targetSeriesSample draws one sample of the target time series
// conditional on a single regression draw (alpha, beta, tau2), the proxy
// series and the prior. The model is proxy_t = beta*y_t + alpha + e_t
// with e_t ~ N(0, tau2) independent across t. z supplies the standard
// normal innovations, so the result is deterministic given a draw and a
// fixed z.
func targetSeriesSample(alphaNow, betaNow, tau2Now float64, proxy []float64, prior priorPars, z []float64) ([]float64, error) {
	n := len(proxy)
	if len(prior.mu) != n || len(z) != n {
		return nil, fmt.Errorf("bayspar: proxy length %d but prior mean length %d and innovation length %d", n, len(prior.mu), len(z))
	}

	// Posterior inverse covariance: prior precision plus the data
	// precision beta^2/tau2 on the diagonal.
	invPostCov := mat.NewSymDense(n, nil)
	invPostCov.CopySym(prior.invCov)
	dataPrec := betaNow * betaNow / tau2Now
	for i := 0; i < n; i++ {
		invPostCov.SetSym(i, i, invPostCov.At(i, i)+dataPrec)
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(invPostCov); !ok {
		return nil, errNotPosDef
	}

	// First factor of the posterior mean.
	b := mat.NewVecDense(n, nil)
	b.MulVec(prior.invCov, mat.NewVecDense(n, prior.mu))
	scale := betaNow / tau2Now
	for i := 0; i < n; i++ {
		b.SetVec(i, b.AtVec(i)+scale*(proxy[i]-alphaNow))
	}

	postMean := mat.NewVecDense(n, nil)
	if err := chol.SolveVecTo(postMean, b); err != nil {
		return nil, err
	}

	var postCov mat.SymDense
	if err := chol.InverseTo(&postCov); err != nil {
		return nil, err
	}
	var cholPost mat.Cholesky
	if ok := cholPost.Factorize(&postCov); !ok {
		return nil, errNotPosDef
	}
	var u mat.TriDense
	cholPost.UTo(&u)

	noise := mat.NewVecDense(n, nil)
	noise.MulVec(&u, mat.NewVecDense(n, z))

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = postMean.AtVec(i) + noise.AtVec(i)
	}
	return out, nil
}
