// SPDX-License-Identifier: MIT
package mixture

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/jonaspleyer/egobox/rng"
	"gonum.org/v1/gonum/mat"
)

// Component is one Gaussian in the mixture: a (weight, mean, covariance)
// triple over the joint (x,y) space, plus the x-marginal of that
// Gaussian cached for responsibility evaluation at query time (query
// points carry no y yet).
type Component struct {
	Weight float64
	Mean   []float64     // joint mean, length xDim+yDim
	Cov    *mat.SymDense // joint covariance, (xDim+yDim)x(xDim+yDim)

	xDim  int
	xMean []float64
	xChol *mat.Cholesky // Cholesky of the x-marginal covariance block
}

// RebuildComponent reconstructs a Component from its persisted
// (weight, joint mean, joint covariance) triple, re-deriving the
// x-marginal and its Cholesky factor the same way Fit does. Used by
// package persist to restore a Mixture from a serialized snapshot
// without exposing Component's unexported caches.
func RebuildComponent(weight float64, mean []float64, cov *mat.SymDense, xDim int) (Component, error) {
	xCov := mat.NewSymDense(xDim, nil)
	for a := 0; a < xDim; a++ {
		for b := a; b < xDim; b++ {
			xCov.SetSym(a, b, cov.At(a, b))
		}
	}
	var xChol mat.Cholesky
	if ok := xChol.Factorize(xCov); !ok {
		return Component{}, fmt.Errorf("RebuildComponent: x-marginal covariance not positive definite")
	}
	return Component{
		Weight: weight,
		Mean:   mean,
		Cov:    cov,
		xDim:   xDim,
		xMean:  append([]float64(nil), mean[:xDim]...),
		xChol:  &xChol,
	}, nil
}

// Mixture is a fitted Gaussian mixture over joint (x,y) training data.
//
// Invariant: Σ Components[i].Weight == 1 (within float64 rounding);
// every Components[i].Cov is symmetric positive-definite.
type Mixture struct {
	Components []Component
	XDim       int
	YDim       int
}

// Fit runs k-means++ seeded Expectation-Maximization on the joint
// (X,Y) points. Restarts from a new RNG substream up to
// cfg.MaxRestarts times on a singular covariance before returning
// ErrClusteringFailure.
func Fit(X, Y *mat.Dense, cfg *Config) (*Mixture, error) {
	n, xDim := X.Dims()
	ny, yDim := Y.Dims()
	if n == 0 || n != ny || cfg.NClusters <= 0 || cfg.NClusters > n {
		return nil, fmt.Errorf("mixture.Fit: n=%d ny=%d k=%d: %w", n, ny, cfg.NClusters, ErrInvalidInput)
	}

	dim := xDim + yDim
	Z := mat.NewDense(n, dim, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < xDim; j++ {
			Z.Set(i, j, X.At(i, j))
		}
		for j := 0; j < yDim; j++ {
			Z.Set(i, xDim+j, Y.At(i, j))
		}
	}

	base := cfg.RNG
	if base == nil {
		base = rng.New(rng.DefaultSeed)
	}

	var lastErr error
	for attempt := 0; attempt <= cfg.MaxRestarts; attempt++ {
		sub := rng.Derive(base, uint64(attempt))
		m, err := fitOnce(Z, n, dim, xDim, cfg, sub)
		if err == nil {
			return m, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("mixture.Fit: %w: %v", ErrClusteringFailure, lastErr)
}

func fitOnce(Z *mat.Dense, n, dim, xDim int, cfg *Config, r *rand.Rand) (*Mixture, error) {
	k := cfg.NClusters
	means := kmeansPlusPlusInit(Z, n, dim, k, r)
	weights := make([]float64, k)
	covs := make([]*mat.SymDense, k)
	for c := 0; c < k; c++ {
		weights[c] = 1.0 / float64(k)
		covs[c] = overallCovariance(Z, n, dim, cfg.CovarianceEps)
	}

	gamma := mat.NewDense(n, k, nil)
	prevLL := math.Inf(-1)

	for iter := 0; iter < cfg.MaxIterations; iter++ {
		chols := make([]*mat.Cholesky, k)
		for c := 0; c < k; c++ {
			var chol mat.Cholesky
			if ok := chol.Factorize(covs[c]); !ok {
				return nil, fmt.Errorf("covariance %d not positive definite at iteration %d", c, iter)
			}
			chols[c] = &chol
		}

		logLik := 0.0
		logDens := mat.NewDense(n, k, nil)
		for i := 0; i < n; i++ {
			row := make([]float64, dim)
			mat.Row(row, i, Z)
			logWeighted := make([]float64, k)
			for c := 0; c < k; c++ {
				ld := logDensity(row, means[c], chols[c], dim)
				logWeighted[c] = math.Log(weights[c]) + ld
				logDens.Set(i, c, logWeighted[c])
			}
			mx := maxFloat(logWeighted)
			sum := 0.0
			for c := 0; c < k; c++ {
				sum += math.Exp(logWeighted[c] - mx)
			}
			logLik += mx + math.Log(sum)
			for c := 0; c < k; c++ {
				gamma.Set(i, c, math.Exp(logDens.At(i, c)-mx)/sum)
			}
		}

		if iter > 0 {
			rel := math.Abs(logLik-prevLL) / math.Max(1, math.Abs(prevLL))
			if rel < cfg.ConvergenceTol {
				prevLL = logLik
				break
			}
		}
		prevLL = logLik

		for c := 0; c < k; c++ {
			nk := 0.0
			for i := 0; i < n; i++ {
				nk += gamma.At(i, c)
			}
			if nk < 1e-12 {
				return nil, fmt.Errorf("component %d collapsed at iteration %d", c, iter)
			}
			newMean := make([]float64, dim)
			for i := 0; i < n; i++ {
				g := gamma.At(i, c)
				for j := 0; j < dim; j++ {
					newMean[j] += g * Z.At(i, j)
				}
			}
			for j := range newMean {
				newMean[j] /= nk
			}

			newCov := mat.NewSymDense(dim, nil)
			for i := 0; i < n; i++ {
				g := gamma.At(i, c)
				for a := 0; a < dim; a++ {
					da := Z.At(i, a) - newMean[a]
					for b := a; b < dim; b++ {
						db := Z.At(i, b) - newMean[b]
						newCov.SetSym(a, b, newCov.At(a, b)+g*da*db)
					}
				}
			}
			for a := 0; a < dim; a++ {
				for b := a; b < dim; b++ {
					v := newCov.At(a, b) / nk
					if a == b {
						v += cfg.CovarianceEps
					}
					newCov.SetSym(a, b, v)
				}
			}

			means[c] = newMean
			covs[c] = newCov
			weights[c] = nk / float64(n)
		}
	}

	components := make([]Component, k)
	for c := 0; c < k; c++ {
		xMean := means[c][:xDim]
		xCov := mat.NewSymDense(xDim, nil)
		for a := 0; a < xDim; a++ {
			for b := a; b < xDim; b++ {
				xCov.SetSym(a, b, covs[c].At(a, b))
			}
		}
		var xChol mat.Cholesky
		if ok := xChol.Factorize(xCov); !ok {
			return nil, fmt.Errorf("x-marginal covariance %d not positive definite", c)
		}
		components[c] = Component{
			Weight: weights[c],
			Mean:   means[c],
			Cov:    covs[c],
			xDim:   xDim,
			xMean:  append([]float64(nil), xMean...),
			xChol:  &xChol,
		}
	}

	return &Mixture{Components: components, XDim: xDim, YDim: dim - xDim}, nil
}

// Responsibilities returns the (m,k) matrix of component responsibilities
// for query points X (m x XDim), each row summing to 1 to within 1e-9.
func (mx *Mixture) Responsibilities(X *mat.Dense) (*mat.Dense, error) {
	m, d := X.Dims()
	if d != mx.XDim {
		return nil, ErrInvalidInput
	}
	k := len(mx.Components)
	out := mat.NewDense(m, k, nil)
	row := make([]float64, d)
	logWeighted := make([]float64, k)
	for i := 0; i < m; i++ {
		mat.Row(row, i, X)
		for c, comp := range mx.Components {
			ld := logDensity(row, comp.xMean, comp.xChol, d)
			logWeighted[c] = math.Log(comp.Weight) + ld
		}
		mxv := maxFloat(logWeighted)
		sum := 0.0
		for c := range logWeighted {
			sum += math.Exp(logWeighted[c] - mxv)
		}
		for c := range logWeighted {
			out.Set(i, c, math.Exp(logWeighted[c]-mxv)/sum)
		}
	}
	return out, nil
}

// ArgmaxAssignments partitions X by its argmax-responsibility component,
// returning one cluster index per row.
func (mx *Mixture) ArgmaxAssignments(X *mat.Dense) ([]int, error) {
	r, err := mx.Responsibilities(X)
	if err != nil {
		return nil, err
	}
	m, k := r.Dims()
	out := make([]int, m)
	for i := 0; i < m; i++ {
		best, bestV := 0, r.At(i, 0)
		for c := 1; c < k; c++ {
			if v := r.At(i, c); v > bestV {
				best, bestV = c, v
			}
		}
		out[i] = best
	}
	return out, nil
}

func logDensity(z []float64, mean []float64, chol *mat.Cholesky, dim int) float64 {
	diff := mat.NewVecDense(dim, nil)
	for i := 0; i < dim; i++ {
		diff.SetVec(i, z[i]-mean[i])
	}
	var sol mat.VecDense
	chol.SolveVecTo(&sol, diff)
	mahal := mat.Dot(diff, &sol)
	logDet := chol.LogDet()
	return -0.5 * (float64(dim)*math.Log(2*math.Pi) + logDet + mahal)
}

func maxFloat(xs []float64) float64 {
	m := xs[0]
	for _, v := range xs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func overallCovariance(Z *mat.Dense, n, dim int, eps float64) *mat.SymDense {
	mean := make([]float64, dim)
	for i := 0; i < n; i++ {
		for j := 0; j < dim; j++ {
			mean[j] += Z.At(i, j)
		}
	}
	for j := range mean {
		mean[j] /= float64(n)
	}
	cov := mat.NewSymDense(dim, nil)
	for i := 0; i < n; i++ {
		for a := 0; a < dim; a++ {
			da := Z.At(i, a) - mean[a]
			for b := a; b < dim; b++ {
				db := Z.At(i, b) - mean[b]
				cov.SetSym(a, b, cov.At(a, b)+da*db)
			}
		}
	}
	for a := 0; a < dim; a++ {
		for b := a; b < dim; b++ {
			v := cov.At(a, b) / float64(n)
			if a == b {
				v += eps
			}
			cov.SetSym(a, b, v)
		}
	}
	return cov
}

// kmeansPlusPlusInit seeds k initial means from Z's n rows using the
// k-means++ distance-weighted sampling rule.
func kmeansPlusPlusInit(Z *mat.Dense, n, dim, k int, r *rand.Rand) [][]float64 {
	means := make([][]float64, 0, k)
	first := r.Intn(n)
	means = append(means, rowCopy(Z, first, dim))

	dist2 := make([]float64, n)
	for len(means) < k {
		total := 0.0
		for i := 0; i < n; i++ {
			row := rowCopy(Z, i, dim)
			dist2[i] = minSqDist(row, means)
			total += dist2[i]
		}
		if total == 0 {
			means = append(means, rowCopy(Z, r.Intn(n), dim))
			continue
		}
		target := r.Float64() * total
		cum := 0.0
		chosen := n - 1
		for i := 0; i < n; i++ {
			cum += dist2[i]
			if cum >= target {
				chosen = i
				break
			}
		}
		means = append(means, rowCopy(Z, chosen, dim))
	}
	return means
}

func rowCopy(Z *mat.Dense, i, dim int) []float64 {
	out := make([]float64, dim)
	mat.Row(out, i, Z)
	return out
}

func minSqDist(x []float64, means [][]float64) float64 {
	best := math.Inf(1)
	for _, m := range means {
		s := 0.0
		for j := range x {
			d := x[j] - m[j]
			s += d * d
		}
		if s < best {
			best = s
		}
	}
	return best
}
