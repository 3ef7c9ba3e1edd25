// SPDX-License-Identifier: MIT
package optimizer

import (
	"math"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/optimize"
)

// Kind selects which "assumed available" external optimizer this
// adapter stands in for.
type Kind int

const (
	// COBYLA is approximated by gonum's derivative-free Nelder-Mead.
	COBYLA Kind = iota
	// SLSQP is approximated by gonum's BFGS with a finite-difference gradient.
	SLSQP
)

// Settings bounds the local search effort.
type Settings struct {
	// MaxEvaluations caps objective evaluations (spec default: 10*d for theta-tuning).
	MaxEvaluations int
	// InitStep is the initial simplex/step size for Nelder-Mead; ignored by SLSQP.
	InitStep float64
}

// DefaultSettings returns Settings with a default initial step (0.5)
// and a max-evaluation budget of 10*d.
func DefaultSettings(d int) Settings {
	return Settings{MaxEvaluations: 10 * d, InitStep: 0.5}
}

// Result is the outcome of a bounded local minimization.
type Result struct {
	X []float64
	F float64
}

// Minimize runs kind's local method from x0, restricted to bounds, to
// minimize objective. objective must be independent across calls (no
// hidden state) so it is safe to call Minimize concurrently for
// different starts.
//
// Errors: ErrInvalidInput on shape mismatch; ErrOptimizerFailure if
// gonum/optimize reports a fatal error or the result is non-finite.
func Minimize(kind Kind, objective func([]float64) float64, x0 []float64, bounds Bounds, settings Settings) (Result, error) {
	d := len(x0)
	if d == 0 || len(bounds) != d {
		return Result{}, ErrInvalidInput
	}

	wrapped := func(x []float64) float64 {
		cx := bounds.Clamp(x)
		return objective(cx) + bounds.Penalty(x)
	}

	problem := optimize.Problem{
		Func: wrapped,
		Grad: func(grad, x []float64) {
			fd.Gradient(grad, wrapped, x, nil)
		},
	}

	var method optimize.Method
	switch kind {
	case COBYLA:
		method = &optimize.NelderMead{SimplexSize: settings.InitStep}
	case SLSQP:
		method = &optimize.BFGS{}
	default:
		return Result{}, ErrInvalidInput
	}

	maxEval := settings.MaxEvaluations
	if maxEval <= 0 {
		maxEval = DefaultSettings(d).MaxEvaluations
	}

	gonumSettings := &optimize.Settings{
		MajorIterations: maxEval,
		FuncEvaluations: maxEval,
	}

	res, err := optimize.Minimize(problem, x0, gonumSettings, method)
	if err != nil && res == nil {
		return Result{}, ErrOptimizerFailure
	}

	xBest := bounds.Clamp(res.X)
	fBest := objective(xBest)
	if math.IsNaN(fBest) || math.IsInf(fBest, 0) {
		return Result{}, ErrOptimizerFailure
	}
	return Result{X: xBest, F: fBest}, nil
}
