// SPDX-License-Identifier: MIT
package ego

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/jonaspleyer/egobox/optimizer"
	"github.com/jonaspleyer/egobox/rng"
	"github.com/jonaspleyer/egobox/variables"
	"gonum.org/v1/gonum/mat"
)

// Objective receives X of shape (m, NumVars()) in user-facing units and
// returns Y of shape (m, 1+n_cstr): column 0 is the objective, the
// remaining columns are constraint values (feasible when <= 0).
type Objective func(X *mat.Dense) (*mat.Dense, error)

// OptimResult is the outcome of a Run: the best point found, in
// user-facing units, and its full (1+n_cstr) response.
type OptimResult struct {
	X []float64
	Y []float64
}

// Run drives the EGO loop to (approximate) convergence: it samples an
// initial design, then repeatedly trains a surrogate on every
// observation, maximizes the configured acquisition criterion to
// propose cfg.BatchSize new points (via the q-batch imputation state
// machine when BatchSize>1), evaluates the true objective there, and
// checks the termination rules (iteration cap, relative-improvement
// tolerance over a trailing window, or evaluation budget).
//
// Run is single-threaded deterministic given cfg.Seed; the acquisition
// multi-start search parallelizes internally but always reduces to the
// same (value, start-index) winner for a given seed.
func Run(objective Objective, spec *variables.Spec, cfg *Config) (OptimResult, error) {
	if spec == nil || spec.NumVars() == 0 {
		return OptimResult{}, fmt.Errorf("Run: empty variable spec: %w", ErrInvalidInput)
	}
	d := spec.InternalDims()
	bounds := optimizer.Bounds(spec.Bounds())

	base := rng.New(cfg.Seed)
	designRNG := rng.Derive(base, 0)
	iterBase := rng.Derive(base, 1)

	X, Y, nConstraints, err := initialDesign(objective, spec, cfg.InitialDesignSize, d, bounds, designRNG)
	if err != nil {
		return OptimResult{}, err
	}

	inc := newIncumbent()
	refreshIncumbent(inc, Y, nConstraints)

	var fStarHistory []float64
	if _, fStar, ok := inc.best(); ok {
		fStarHistory = append(fStarHistory, fStar)
	}

	evaluations, _ := X.Dims()

	for iter := 1; iter <= cfg.MaxIterations; iter++ {
		iterRNG := rng.Derive(iterBase, uint64(iter))

		picked, err := proposeBatch(X, Y, nConstraints, cfg, bounds, iterRNG)
		if err != nil {
			return OptimResult{}, err
		}

		batchX := mat.NewDense(len(picked), d, nil)
		for i, z := range picked {
			batchX.SetRow(i, z)
		}
		userX, err := decodeRows(spec, batchX)
		if err != nil {
			return OptimResult{}, err
		}

		trueY, err := objective(userX)
		if err != nil {
			return OptimResult{}, fmt.Errorf("Run: objective: %w", err)
		}

		X, Y = appendObservations(X, Y, batchX, trueY)
		evaluations, _ = X.Dims()

		refreshIncumbent(inc, Y, nConstraints)
		_, fStar, ok := inc.best()
		if ok {
			fStarHistory = append(fStarHistory, fStar)
		}

		if cfg.Trace != nil {
			cfg.Trace(iter, fStar, evaluations)
		}

		if cfg.EvaluationBudget > 0 && evaluations >= cfg.EvaluationBudget {
			break
		}
		if converged(fStarHistory, cfg.Tolerance, cfg.ToleranceWindow) {
			break
		}
	}

	idx, _, ok := inc.best()
	if !ok {
		return OptimResult{}, fmt.Errorf("Run: no observations produced an incumbent: %w", ErrInvalidInput)
	}

	xz := make([]float64, d)
	mat.Row(xz, idx, X)
	xUser, err := spec.Decode(xz)
	if err != nil {
		return OptimResult{}, err
	}
	_, yCols := Y.Dims()
	yAtBest := make([]float64, yCols)
	mat.Row(yAtBest, idx, Y)

	return OptimResult{X: xUser, Y: yAtBest}, nil
}

func converged(history []float64, tol float64, window int) bool {
	if window <= 0 || len(history) <= window {
		return false
	}
	recent := history[len(history)-1]
	past := history[len(history)-1-window]
	denom := math.Max(1, math.Abs(past))
	return math.Abs(recent-past)/denom < tol
}

func refreshIncumbent(inc *incumbent, Y *mat.Dense, nConstraints int) {
	*inc = *newIncumbent()
	rows, _ := Y.Dims()
	for r := 0; r < rows; r++ {
		inc.observe(r, Y.At(r, 0), constraintRow(Y, r, nConstraints))
	}
}

func decodeRows(spec *variables.Spec, Z *mat.Dense) (*mat.Dense, error) {
	m, d := Z.Dims()
	out := mat.NewDense(m, spec.NumVars(), nil)
	z := make([]float64, d)
	for i := 0; i < m; i++ {
		mat.Row(z, i, Z)
		x, err := spec.Decode(z)
		if err != nil {
			return nil, err
		}
		out.SetRow(i, x)
	}
	return out, nil
}

func appendObservations(X, Y, newX, newY *mat.Dense) (*mat.Dense, *mat.Dense) {
	n, d := X.Dims()
	m, _ := newX.Dims()
	_, yCols := Y.Dims()

	outX := mat.NewDense(n+m, d, nil)
	outX.Copy(X)
	for i := 0; i < m; i++ {
		for j := 0; j < d; j++ {
			outX.Set(n+i, j, newX.At(i, j))
		}
	}

	outY := mat.NewDense(n+m, yCols, nil)
	outY.Copy(Y)
	for i := 0; i < m; i++ {
		for j := 0; j < yCols; j++ {
			outY.Set(n+i, j, newY.At(i, j))
		}
	}

	return outX, outY
}

// initialDesign draws InitialDesignSize uniform random points in the
// internal encoded box, decodes and evaluates them, and infers
// n_cstr from the objective's response width.
func initialDesign(objective Objective, spec *variables.Spec, size, d int, bounds optimizer.Bounds, r *rand.Rand) (*mat.Dense, *mat.Dense, int, error) {
	if size <= 0 {
		size = 1
	}
	Z := mat.NewDense(size, d, nil)
	for i := 0; i < size; i++ {
		for j, b := range bounds {
			Z.Set(i, j, b[0]+r.Float64()*(b[1]-b[0]))
		}
	}
	userX, err := decodeRows(spec, Z)
	if err != nil {
		return nil, nil, 0, err
	}
	Y, err := objective(userX)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("Run: objective: %w", err)
	}
	_, yCols := Y.Dims()
	if yCols < 1 {
		return nil, nil, 0, fmt.Errorf("Run: objective returned %d columns, want >= 1: %w", yCols, ErrInvalidInput)
	}
	return Z, Y, yCols - 1, nil
}
