// SPDX-License-Identifier: MIT
package gp

import (
	"fmt"
	"math"

	"github.com/jonaspleyer/egobox/linalg"
	"github.com/jonaspleyer/egobox/optimizer"
	"gonum.org/v1/gonum/mat"
)

// GP is a trained, immutable Gaussian Process model. Construct one
// with Fit; predict from it with PredictMean/PredictVar.
type GP struct {
	Theta  []float64
	Basis  linalg.BasisKind
	Kernel linalg.KernelKind

	Xn *linalg.Normalized
	Yn *linalg.Normalized

	Inner *InnerParams
}

// Fit trains a GP on X (n x d) and Y (n x k): normalizes both, builds
// the pairwise distance table on normalized X, minimizes the negative
// reduced likelihood over log10(theta) in [ThetaLog10Bounds], then
// reruns the reduced-likelihood computation at the optimized theta* to
// cache the inner parameters.
//
// Errors: ErrInvalidInput on shape mismatch; ErrLinAlgFailure,
// ErrLikelihoodIllConditioned, or ErrLikelihoodIncompatibleBasis if the
// final refit at theta* itself fails (per-candidate failures during
// optimization are absorbed as +Inf and never surface here).
func Fit(X, Y *mat.Dense, opts ...Option) (*GP, error) {
	cfg := NewConfig(opts...)
	return FitWithConfig(X, Y, cfg)
}

// FitWithConfig is Fit with an explicit, pre-built Config, so callers
// that retrain repeatedly (e.g. the EGO driver, or moe's cross
// validation) can reuse one validated Config instead of re-applying
// Options every call.
func FitWithConfig(X, Y *mat.Dense, cfg *Config) (*GP, error) {
	n, d := X.Dims()
	ny, k := Y.Dims()
	if n == 0 || d == 0 || k == 0 || n != ny {
		return nil, fmt.Errorf("Fit: X is %dx%d, Y is %dx%d: %w", n, d, ny, k, ErrInvalidInput)
	}

	Xn := linalg.Normalize(X)
	Yn := linalg.Normalize(Y)

	F, err := linalg.RegressionBasis(cfg.Basis, Xn.Data)
	if err != nil {
		return nil, fmt.Errorf("Fit: %w", ErrInvalidInput)
	}

	le, err := newLikelihoodEval(Xn.Data, F, Yn.Data, cfg.Kernel)
	if err != nil {
		return nil, fmt.Errorf("Fit: %w", ErrInvalidInput)
	}

	if len(cfg.ThetaFixed) == d {
		_, inner, err := le.reducedLikelihood(cfg.ThetaFixed)
		if err != nil {
			return nil, err
		}
		thetaStar := make([]float64, d)
		copy(thetaStar, cfg.ThetaFixed)
		return &GP{Theta: thetaStar, Basis: cfg.Basis, Kernel: cfg.Kernel, Xn: Xn, Yn: Yn, Inner: inner}, nil
	}

	theta0 := cfg.resolveThetaInit(d)
	logX0 := make([]float64, d)
	for i, t := range theta0 {
		logX0[i] = math.Log10(t)
	}

	bounds := make(optimizer.Bounds, d)
	for i := range bounds {
		bounds[i] = cfg.ThetaLog10Bounds
	}

	objective := func(logTheta []float64) float64 {
		theta := make([]float64, d)
		for i, lt := range logTheta {
			theta[i] = math.Pow(10, lt)
		}
		value, _, err := le.reducedLikelihood(theta)
		if err != nil {
			return math.Inf(1)
		}
		return -value
	}

	settings := optimizer.Settings{MaxEvaluations: cfg.MaxEvaluations, InitStep: cfg.OptimizerInitStep}
	if settings.MaxEvaluations <= 0 {
		settings.MaxEvaluations = 10 * d
	}

	res, err := optimizer.Minimize(cfg.OptimizerKind, objective, logX0, bounds, settings)
	if err != nil {
		return nil, fmt.Errorf("Fit: %w: %v", ErrLinAlgFailure, err)
	}

	thetaStar := make([]float64, d)
	for i, lt := range res.X {
		thetaStar[i] = math.Pow(10, lt)
	}

	_, inner, err := le.reducedLikelihood(thetaStar)
	if err != nil {
		return nil, err
	}

	return &GP{
		Theta:  thetaStar,
		Basis:  cfg.Basis,
		Kernel: cfg.Kernel,
		Xn:     Xn,
		Yn:     Yn,
		Inner:  inner,
	}, nil
}
