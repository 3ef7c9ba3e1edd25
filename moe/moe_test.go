// SPDX-License-Identifier: MIT
package moe

import (
	"math"
	"testing"

	"github.com/jonaspleyer/egobox/linalg"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func sineData(n int) (*mat.Dense, *mat.Dense) {
	X := mat.NewDense(n, 1, nil)
	Y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		x := -3.0 + 6.0*float64(i)/float64(n-1)
		X.Set(i, 0, x)
		Y.Set(i, 0, math.Sin(x))
	}
	return X, Y
}

func TestTrain_SingleClusterFitsSmoothFunction(t *testing.T) {
	X, Y := sineData(15)
	params := NewParams(
		WithNClusters(1),
		WithRegressionSpec(linalg.Constant|linalg.Linear),
		WithCorrelationSpec(linalg.SquaredExp),
	)
	m, err := Train(X, Y, params)
	require.NoError(t, err)
	require.Len(t, m.Clusters, 1)

	mean, err := m.PredictMean(X)
	require.NoError(t, err)
	rows, _ := X.Dims()
	for i := 0; i < rows; i++ {
		require.InDelta(t, Y.At(i, 0), mean.At(i, 0), 5e-2)
	}
}

func TestTrain_MultiClusterHardRecombination(t *testing.T) {
	X, Y := sineData(30)
	params := NewParams(
		WithNClusters(2),
		WithRegressionSpec(linalg.Constant),
		WithCorrelationSpec(linalg.SquaredExp),
		WithRecombination(Hard, 0),
	)
	m, err := Train(X, Y, params)
	require.NoError(t, err)
	require.Len(t, m.Clusters, 2)

	variance, err := m.PredictVar(X)
	require.NoError(t, err)
	rows, cols := variance.Dims()
	for i := 0; i < rows; i++ {
		for c := 0; c < cols; c++ {
			require.GreaterOrEqual(t, variance.At(i, c), -1e-9)
		}
	}
}

func TestTrain_SmoothRecombinationWeightsSumToOne(t *testing.T) {
	resp := mat.NewDense(1, 3, []float64{0.7, 0.2, 0.1})
	weights := recombinationWeights(resp, Smooth, 1.0)
	sum := weights.At(0, 0) + weights.At(0, 1) + weights.At(0, 2)
	require.InDelta(t, 1.0, sum, 1e-9)
}

func TestTrain_HardRecombinationIsOneHot(t *testing.T) {
	resp := mat.NewDense(1, 3, []float64{0.2, 0.7, 0.1})
	weights := recombinationWeights(resp, Hard, 0)
	require.Equal(t, 1.0, weights.At(0, 1))
	require.Equal(t, 0.0, weights.At(0, 0))
	require.Equal(t, 0.0, weights.At(0, 2))
}

func TestTrain_RejectsEmptySpec(t *testing.T) {
	X, Y := sineData(10)
	params := NewParams(WithRegressionSpec(0))
	_, err := Train(X, Y, params)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestTrainOnClusters_ReusesClustering(t *testing.T) {
	X, Y := sineData(30)
	params := NewParams(WithNClusters(2), WithRegressionSpec(linalg.Constant), WithCorrelationSpec(linalg.SquaredExp))
	m1, err := Train(X, Y, params)
	require.NoError(t, err)

	m2, err := TrainOnClusters(X, Y, params, m1.Clustering)
	require.NoError(t, err)
	require.Len(t, m2.Clusters, 2)
}

func TestFitKPLS_ReducesDimension(t *testing.T) {
	n, d := 20, 5
	X := mat.NewDense(n, d, nil)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			X.Set(i, j, float64(i+j))
		}
		y[i] = float64(i)
	}
	proj := fitKPLS(X, y, 2)
	latent := proj.Apply(X)
	rows, cols := latent.Dims()
	require.Equal(t, n, rows)
	require.Equal(t, 2, cols)
}
