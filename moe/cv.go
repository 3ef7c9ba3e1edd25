// SPDX-License-Identifier: MIT
package moe

import (
	"math"

	"github.com/jonaspleyer/egobox/gp"
	"github.com/jonaspleyer/egobox/linalg"
	"gonum.org/v1/gonum/mat"
)

// cvFoldCount applies leave-one-out for small clusters (n < 30) and
// 5-fold cross validation otherwise.
func cvFoldCount(n int) int {
	if n < 30 {
		return n
	}
	return 5
}

type specCandidate struct {
	Basis  linalg.BasisKind
	Kernel linalg.KernelKind
}

// selectSpec cross-validates every (basis, kernel) combination allowed
// by regressionSpec/correlationSpec on (X,Y), scoring by mean squared
// predictive error, and returns the best-scoring pair. A basis whose
// size exceeds n-1 is skipped (falls back to a simpler basis present in
// the allowed set).
func selectSpec(X, Y *mat.Dense, regressionSpec linalg.BasisKind, correlationSpec linalg.KernelKind, extraOpts []gp.Option) (specCandidate, error) {
	n, d := X.Dims()

	var candidates []specCandidate
	regressionSpec.Each(func(b linalg.BasisKind) {
		size, err := linalg.BasisSize(b, d)
		if err != nil || size > n-1 {
			return
		}
		correlationSpec.Each(func(k linalg.KernelKind) {
			candidates = append(candidates, specCandidate{Basis: b, Kernel: k})
		})
	})
	if len(candidates) == 0 {
		return specCandidate{}, ErrNoViableSpec
	}

	bestScore := math.Inf(1)
	best := candidates[0]
	for _, cand := range candidates {
		score, err := crossValidate(X, Y, cand, extraOpts)
		if err != nil {
			continue
		}
		if score < bestScore {
			bestScore = score
			best = cand
		}
	}
	if math.IsInf(bestScore, 1) {
		return specCandidate{}, ErrNoViableSpec
	}
	return best, nil
}

func crossValidate(X, Y *mat.Dense, cand specCandidate, extraOpts []gp.Option) (float64, error) {
	n, d := X.Dims()
	_, k := Y.Dims()
	folds := cvFoldCount(n)
	if folds < 2 {
		folds = 2
	}
	if folds > n {
		folds = n
	}

	foldOf := make([]int, n)
	for i := range foldOf {
		foldOf[i] = i % folds
	}

	var sumSq float64
	var count int
	for f := 0; f < folds; f++ {
		var trainIdx, testIdx []int
		for i := 0; i < n; i++ {
			if foldOf[i] == f {
				testIdx = append(testIdx, i)
			} else {
				trainIdx = append(trainIdx, i)
			}
		}
		if len(trainIdx) == 0 || len(testIdx) == 0 {
			continue
		}

		Xtrain := subRows(X, trainIdx, d)
		Ytrain := subRows(Y, trainIdx, k)
		Xtest := subRows(X, testIdx, d)
		Ytest := subRows(Y, testIdx, k)

		opts := append([]gp.Option{gp.WithBasis(cand.Basis), gp.WithKernel(cand.Kernel)}, extraOpts...)
		model, err := gp.Fit(Xtrain, Ytrain, opts...)
		if err != nil {
			return 0, err
		}
		pred, err := model.PredictMean(Xtest)
		if err != nil {
			return 0, err
		}
		rows, cols := pred.Dims()
		for i := 0; i < rows; i++ {
			for c := 0; c < cols; c++ {
				diff := pred.At(i, c) - Ytest.At(i, c)
				sumSq += diff * diff
				count++
			}
		}
	}
	if count == 0 {
		return 0, ErrNoViableSpec
	}
	return sumSq / float64(count), nil
}

func subRows(M *mat.Dense, idx []int, cols int) *mat.Dense {
	out := mat.NewDense(len(idx), cols, nil)
	for r, i := range idx {
		for c := 0; c < cols; c++ {
			out.Set(r, c, M.At(i, c))
		}
	}
	return out
}
