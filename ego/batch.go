// SPDX-License-Identifier: MIT
package ego

import (
	"math"
	"math/rand"

	"github.com/jonaspleyer/egobox/moe"
	"github.com/jonaspleyer/egobox/optimizer"
	"github.com/jonaspleyer/egobox/rng"
	"gonum.org/v1/gonum/mat"
)

// proposeBatch runs the q-batch plausible-value imputation state
// machine: repeatedly maximize the acquisition under the current
// (possibly imputed) state, impute a value for the chosen point per
// cfg.QBatchStrategy, retrain the state surrogates on observed+picked,
// and repeat until q points are picked. The outer caller evaluates the
// true objective at the returned points and discards this imputed state.
func proposeBatch(X, Y *mat.Dense, nConstraints int, cfg *Config, bounds optimizer.Bounds, base *rand.Rand) ([][]float64, error) {
	_, d := X.Dims()

	stateX := cloneDense(X)
	stateY := cloneDense(Y)

	var picked [][]float64

	for i := 0; i < cfg.BatchSize; i++ {
		objSurrogate, constraintSurrogates, err := trainSurrogates(stateX, stateY, nConstraints, cfg.SurrogateParams)
		if err != nil {
			return nil, err
		}

		inc := newIncumbent()
		rows, _ := stateY.Dims()
		for r := 0; r < rows; r++ {
			cons := constraintRow(stateY, r, nConstraints)
			inc.observe(r, stateY.At(r, 0), cons)
		}
		_, fStar, ok := inc.best()
		if !ok {
			fStar = math.Inf(1)
		}

		ev := &acquisitionEvaluator{objective: objSurrogate, constraints: constraintSurrogates, strategy: cfg.Infill, fStar: fStar}
		if cfg.Infill == WB2S {
			_, x0, _ := bestRow(stateX, stateY, inc)
			ev.alpha, _ = resolveAlpha(objSurrogate, x0, fStar)
		}

		sub := rng.Derive(base, uint64(1_000_000+i))
		x, _, err := maximizeAcquisition(ev, bounds, cfg.resolveNStarts(d), sub, cfg.InfillOptimizer, 0)
		if err != nil {
			return nil, err
		}

		zm := mat.NewDense(1, d, x)
		mean, err := objSurrogate.PredictMean(zm)
		if err != nil {
			return nil, err
		}
		variance, err := objSurrogate.PredictVar(zm)
		if err != nil {
			return nil, err
		}
		std := math.Sqrt(math.Max(0, variance.At(0, 0)))

		yImputed := imputedValue(cfg.QBatchStrategy, mean.At(0, 0), std, Y)
		cImputed := make([]float64, nConstraints)
		for c := 0; c < nConstraints; c++ {
			cMean, err := constraintSurrogates[c].PredictMean(zm)
			if err != nil {
				return nil, err
			}
			cImputed[c] = cMean.At(0, 0)
		}

		picked = append(picked, x)

		stateX = appendRow(stateX, x)
		yRow := append([]float64{yImputed}, cImputed...)
		stateY = appendRow(stateY, yRow)
	}

	return picked, nil
}

// imputedValue returns the plausible objective value for a chosen
// point per the q-batch strategy. ConstantLiarMinimum draws from the
// already-observed (not imputed) objective column.
func imputedValue(strategy QBatchStrategy, mu, std float64, observedY *mat.Dense) float64 {
	switch strategy {
	case KrigingBeliever:
		return mu
	case KrigingBelieverLowerBound:
		return mu - 3*std
	case KrigingBelieverUpperBound:
		return mu + 3*std
	case ConstantLiarMinimum:
		n, _ := observedY.Dims()
		min := observedY.At(0, 0)
		for i := 1; i < n; i++ {
			if v := observedY.At(i, 0); v < min {
				min = v
			}
		}
		return min
	default:
		return mu
	}
}

func constraintRow(Y *mat.Dense, row, nConstraints int) []float64 {
	if nConstraints == 0 {
		return nil
	}
	out := make([]float64, nConstraints)
	for c := 0; c < nConstraints; c++ {
		out[c] = Y.At(row, 1+c)
	}
	return out
}

func bestRow(X, Y *mat.Dense, inc *incumbent) (int, []float64, float64) {
	idx, fStar, _ := inc.best()
	_, d := X.Dims()
	x := make([]float64, d)
	mat.Row(x, idx, X)
	return idx, x, fStar
}

func trainSurrogates(X, Y *mat.Dense, nConstraints int, params *moe.Params) (*moe.MoE, []*moe.MoE, error) {
	n, _ := Y.Dims()
	objCol := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		objCol.Set(i, 0, Y.At(i, 0))
	}
	objSurrogate, err := moe.Train(X, objCol, params)
	if err != nil {
		return nil, nil, err
	}

	constraints := make([]*moe.MoE, nConstraints)
	for c := 0; c < nConstraints; c++ {
		col := mat.NewDense(n, 1, nil)
		for i := 0; i < n; i++ {
			col.Set(i, 0, Y.At(i, 1+c))
		}
		m, err := moe.Train(X, col, params)
		if err != nil {
			return nil, nil, err
		}
		constraints[c] = m
	}
	return objSurrogate, constraints, nil
}

func cloneDense(M *mat.Dense) *mat.Dense {
	r, c := M.Dims()
	out := mat.NewDense(r, c, nil)
	out.Copy(M)
	return out
}

func appendRow(M *mat.Dense, row []float64) *mat.Dense {
	r, c := M.Dims()
	out := mat.NewDense(r+1, c, nil)
	out.Copy(M)
	for j := 0; j < c; j++ {
		out.Set(r, j, row[j])
	}
	return out
}
