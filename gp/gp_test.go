// SPDX-License-Identifier: MIT
package gp

import (
	"testing"

	"github.com/jonaspleyer/egobox/linalg"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func toyXY() (*mat.Dense, *mat.Dense) {
	X := mat.NewDense(5, 1, []float64{0.5, 1.2, 2.0, 3.0, 4.0})
	Y := mat.NewDense(5, 1, []float64{0, 1, 1.5, 0.5, 1})
	return X, Y
}

func TestFit_InterpolatesTrainingPoints(t *testing.T) {
	X, Y := toyXY()
	model, err := Fit(X, Y, WithKernel(linalg.SquaredExp), WithBasis(linalg.Constant))
	require.NoError(t, err)

	mean, err := model.PredictMean(X)
	require.NoError(t, err)
	n, _ := X.Dims()
	for i := 0; i < n; i++ {
		require.InDelta(t, Y.At(i, 0), mean.At(i, 0), 1e-2, "row %d", i)
	}

	variance, err := model.PredictVar(X)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		require.InDelta(t, 0, variance.At(i, 0), 1e-2, "row %d", i)
	}
}

func TestPredictVar_NeverNegative(t *testing.T) {
	X, Y := toyXY()
	model, err := Fit(X, Y)
	require.NoError(t, err)

	Xq := mat.NewDense(4, 1, []float64{-5, 0.8, 10, 100})
	variance, err := model.PredictVar(Xq)
	require.NoError(t, err)
	rows, cols := variance.Dims()
	for i := 0; i < rows; i++ {
		for c := 0; c < cols; c++ {
			require.GreaterOrEqual(t, variance.At(i, c), 0.0)
		}
	}
}

func TestPredictVar_GrowsWithDistanceFromTrainingData(t *testing.T) {
	X, Y := toyXY()
	model, err := Fit(X, Y)
	require.NoError(t, err)

	near := mat.NewDense(1, 1, []float64{2.0})
	far := mat.NewDense(1, 1, []float64{50.0})

	varNear, err := model.PredictVar(near)
	require.NoError(t, err)
	varFar, err := model.PredictVar(far)
	require.NoError(t, err)

	require.Greater(t, varFar.At(0, 0), varNear.At(0, 0))
}

func TestFit_RejectsMismatchedRowCounts(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{0, 1, 2})
	Y := mat.NewDense(2, 1, []float64{0, 1})
	_, err := Fit(X, Y)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestFit_MultiOutput(t *testing.T) {
	X := mat.NewDense(5, 1, []float64{0.5, 1.2, 2.0, 3.0, 4.0})
	Y := mat.NewDense(5, 2, []float64{
		0, 10,
		1, 9,
		1.5, 8,
		0.5, 7,
		1, 6,
	})
	model, err := Fit(X, Y)
	require.NoError(t, err)

	mean, err := model.PredictMean(X)
	require.NoError(t, err)
	rows, cols := mean.Dims()
	require.Equal(t, 5, rows)
	require.Equal(t, 2, cols)
	for i := 0; i < rows; i++ {
		require.InDelta(t, Y.At(i, 0), mean.At(i, 0), 1e-2)
		require.InDelta(t, Y.At(i, 1), mean.At(i, 1), 1e-2)
	}
}

func TestFit_PermutationInvariantFit(t *testing.T) {
	X, Y := toyXY()
	model1, err := Fit(X, Y, WithThetaInit([]float64{1}))
	require.NoError(t, err)

	Xp := mat.NewDense(5, 1, []float64{4.0, 0.5, 3.0, 1.2, 2.0})
	Yp := mat.NewDense(5, 1, []float64{1, 0, 0.5, 1, 1.5})
	model2, err := Fit(Xp, Yp, WithThetaInit([]float64{1}))
	require.NoError(t, err)

	q := mat.NewDense(1, 1, []float64{1.7})
	mean1, err := model1.PredictMean(q)
	require.NoError(t, err)
	mean2, err := model2.PredictMean(q)
	require.NoError(t, err)
	require.InDelta(t, mean1.At(0, 0), mean2.At(0, 0), 1e-6)
}
