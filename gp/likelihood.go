// SPDX-License-Identifier: MIT
package gp

import (
	"fmt"
	"math"

	"github.com/jonaspleyer/egobox/linalg"
	"gonum.org/v1/gonum/mat"
)

// machineEpsilon is the float64 unit roundoff used to regularize the
// correlation matrix diagonal (R_ii = 1 + 10*machineEpsilon).
const machineEpsilon = 2.220446049250313e-16

// illConditionedRatio is the singular-value ratio below which a
// theta candidate is considered ill-conditioned (spec: 1e-10).
const illConditionedRatio = 1e-10

// incompatibleBasisCond is the cond(F) threshold above which an
// ill-conditioned theta is reclassified as a fatal basis mismatch
// (spec: 1e15).
const incompatibleBasisCond = 1e15

// likelihoodEval bundles everything a reduced-likelihood evaluation
// needs that does not change across theta candidates, so repeated
// evaluations during optimization do not recompute or copy it.
type likelihoodEval struct {
	diffs  *linalg.DiffTable
	F      *mat.Dense // regression basis of normalized X, n x p
	Fcond  float64    // cond(F), computed once (independent of theta)
	Yn     *mat.Dense // normalized Y, n x k
	kernel linalg.KernelKind
	n, p   int
}

func newLikelihoodEval(Xn *mat.Dense, F *mat.Dense, Yn *mat.Dense, kernel linalg.KernelKind) (*likelihoodEval, error) {
	n, p := F.Dims()
	fcond, err := linalg.ConditionNumber(F)
	if err != nil {
		fcond = math.Inf(1)
	}
	return &likelihoodEval{
		diffs:  linalg.PairwiseDiffs(Xn),
		F:      F,
		Fcond:  fcond,
		Yn:     Yn,
		kernel: kernel,
		n:      n,
		p:      p,
	}, nil
}

// reducedLikelihood evaluates the concentrated log-likelihood at a
// fixed theta (linear space, not log10). It never panics; every
// failure is reported via the returned error, classified as
// ErrLinAlgFailure, ErrLikelihoodIllConditioned, or
// ErrLikelihoodIncompatibleBasis.
func (le *likelihoodEval) reducedLikelihood(theta []float64) (value float64, inner *InnerParams, err error) {
	n, p := le.n, le.p

	R, err := le.diffs.CorrelationMatrix(le.kernel, theta)
	if err != nil {
		return 0, nil, fmt.Errorf("reducedLikelihood: %w: %v", ErrLinAlgFailure, err)
	}
	eps := 10 * machineEpsilon
	for i := 0; i < n; i++ {
		R.SetSym(i, i, 1+eps)
	}

	Lr, err := linalg.CholeskyLower(R)
	if err != nil {
		return 0, nil, fmt.Errorf("reducedLikelihood: %w", ErrLinAlgFailure)
	}

	Ft, err := linalg.SolveLowerTri(Lr, le.F)
	if err != nil {
		return 0, nil, fmt.Errorf("reducedLikelihood: %w", ErrLinAlgFailure)
	}

	if n < p {
		return 0, nil, fmt.Errorf("reducedLikelihood: %w", ErrLikelihoodIncompatibleBasis)
	}
	Qf, Rf, err := linalg.ThinQR(Ft)
	if err != nil {
		return 0, nil, fmt.Errorf("reducedLikelihood: %w", ErrLikelihoodIncompatibleBasis)
	}

	sv, err := linalg.SingularValues(Rf)
	if err != nil || len(sv) == 0 {
		return 0, nil, fmt.Errorf("reducedLikelihood: %w", ErrLinAlgFailure)
	}
	ratio := sv[len(sv)-1] / sv[0]
	if ratio < illConditionedRatio {
		if le.Fcond > incompatibleBasisCond {
			return 0, nil, fmt.Errorf("reducedLikelihood: %w", ErrLikelihoodIncompatibleBasis)
		}
		return 0, nil, fmt.Errorf("reducedLikelihood: %w", ErrLikelihoodIllConditioned)
	}

	yt, err := linalg.SolveLowerTri(Lr, le.Yn)
	if err != nil {
		return 0, nil, fmt.Errorf("reducedLikelihood: %w", ErrLinAlgFailure)
	}

	var qty mat.Dense
	qty.Mul(Qf.T(), yt)
	beta, err := linalg.SolveUpperTri(Rf, &qty)
	if err != nil {
		return 0, nil, fmt.Errorf("reducedLikelihood: %w", ErrLinAlgFailure)
	}

	var ftBeta mat.Dense
	ftBeta.Mul(Ft, beta)
	var rho mat.Dense
	rho.Sub(yt, &ftBeta)

	gamma, err := linalg.SolveLowerTriTranspose(Lr, &rho)
	if err != nil {
		return 0, nil, fmt.Errorf("reducedLikelihood: %w", ErrLinAlgFailure)
	}

	var detRRoot float64 = 1
	for i := 0; i < n; i++ {
		detRRoot *= math.Pow(Lr.At(i, i), 2.0/float64(n))
	}

	_, k := le.Yn.Dims()
	sigma2 := make([]float64, k)
	var sumSigma2 float64
	rr, _ := rho.Dims()
	for c := 0; c < k; c++ {
		var ss float64
		for r := 0; r < rr; r++ {
			v := rho.At(r, c)
			ss += v * v
		}
		sigma2[c] = ss / float64(n)
		sumSigma2 += sigma2[c]
	}

	value = -sumSigma2 * detRRoot

	inner = &InnerParams{
		Sigma2: sigma2,
		Beta:   beta,
		Gamma:  gamma,
		Lr:     Lr,
		Ft:     Ft,
		Rf:     Rf,
		DetR:   detRRoot,
	}
	return value, inner, nil
}
