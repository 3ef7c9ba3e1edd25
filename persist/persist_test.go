// SPDX-License-Identifier: MIT
package persist

import (
	"bytes"
	"encoding/gob"
	"math"
	"testing"

	"github.com/jonaspleyer/egobox/gp"
	"github.com/jonaspleyer/egobox/linalg"
	"github.com/jonaspleyer/egobox/moe"
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

func queryPoints() *mat.Dense {
	return mat.NewDense(4, 1, []float64{-2.5, -0.3, 0.7, 2.9})
}

func requireSameDense(t *testing.T, want, got *mat.Dense) {
	t.Helper()
	wr, wc := want.Dims()
	gr, gc := got.Dims()
	require.Equal(t, wr, gr)
	require.Equal(t, wc, gc)
	for i := 0; i < wr; i++ {
		for j := 0; j < wc; j++ {
			require.InDelta(t, want.At(i, j), got.At(i, j), 1e-12, "row %d col %d", i, j)
		}
	}
}

func TestGPRoundTrip_PredictionsMatch(t *testing.T) {
	X, Y := sineData(12)
	model, err := gp.Fit(X, Y, gp.WithKernel(linalg.SquaredExp), gp.WithBasis(linalg.Constant))
	require.NoError(t, err)

	Q := queryPoints()
	wantMean, err := model.PredictMean(Q)
	require.NoError(t, err)
	wantVar, err := model.PredictVar(Q)
	require.NoError(t, err)

	data, err := MarshalGP(model)
	require.NoError(t, err)

	restored, err := UnmarshalGP(data)
	require.NoError(t, err)

	gotMean, err := restored.PredictMean(Q)
	require.NoError(t, err)
	gotVar, err := restored.PredictVar(Q)
	require.NoError(t, err)

	requireSameDense(t, wantMean, gotMean)
	requireSameDense(t, wantVar, gotVar)
}

func TestGPRoundTrip_RejectsUnknownVersion(t *testing.T) {
	X, Y := sineData(8)
	model, err := gp.Fit(X, Y)
	require.NoError(t, err)

	data, err := MarshalGP(model)
	require.NoError(t, err)

	var snap gpSnapshot
	require.NoError(t, gob.NewDecoder(bytes.NewReader(data)).Decode(&snap))
	snap.FormatVersion = 999

	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(snap))

	_, err = UnmarshalGP(buf.Bytes())
	require.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestMoERoundTrip_SingleCluster_PredictionsMatch(t *testing.T) {
	X, Y := sineData(15)
	params := moe.NewParams(
		moe.WithNClusters(1),
		moe.WithRegressionSpec(linalg.Constant|linalg.Linear),
		moe.WithCorrelationSpec(linalg.SquaredExp),
	)
	model, err := moe.Train(X, Y, params)
	require.NoError(t, err)

	Q := queryPoints()
	wantMean, err := model.PredictMean(Q)
	require.NoError(t, err)
	wantVar, err := model.PredictVar(Q)
	require.NoError(t, err)

	data, err := MarshalMoE(model)
	require.NoError(t, err)

	restored, err := UnmarshalMoE(data)
	require.NoError(t, err)

	gotMean, err := restored.PredictMean(Q)
	require.NoError(t, err)
	gotVar, err := restored.PredictVar(Q)
	require.NoError(t, err)

	requireSameDense(t, wantMean, gotMean)
	requireSameDense(t, wantVar, gotVar)
}

func TestMoERoundTrip_MultiCluster_PredictionsMatch(t *testing.T) {
	X, Y := sineData(30)
	params := moe.NewParams(
		moe.WithNClusters(2),
		moe.WithRegressionSpec(linalg.Constant),
		moe.WithCorrelationSpec(linalg.SquaredExp),
		moe.WithRecombination(moe.Smooth, 0.5),
		moe.WithSeed(7),
	)
	model, err := moe.Train(X, Y, params)
	require.NoError(t, err)
	require.NotNil(t, model.Clustering)

	Q := queryPoints()
	wantMean, err := model.PredictMean(Q)
	require.NoError(t, err)
	wantVar, err := model.PredictVar(Q)
	require.NoError(t, err)

	data, err := MarshalMoE(model)
	require.NoError(t, err)

	restored, err := UnmarshalMoE(data)
	require.NoError(t, err)
	require.NotNil(t, restored.Clustering)
	require.Len(t, restored.Clusters, 2)

	gotMean, err := restored.PredictMean(Q)
	require.NoError(t, err)
	gotVar, err := restored.PredictVar(Q)
	require.NoError(t, err)

	requireSameDense(t, wantMean, gotMean)
	requireSameDense(t, wantVar, gotVar)
}

func TestSerializeGP_RejectsNilModel(t *testing.T) {
	err := SerializeGP(new(discardWriter), nil)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSerializeMoE_RejectsNilModel(t *testing.T) {
	err := SerializeMoE(new(discardWriter), nil)
	require.ErrorIs(t, err, ErrInvalidInput)
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
