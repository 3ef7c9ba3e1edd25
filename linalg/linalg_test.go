package linalg_test

import (
	"math"
	"testing"

	"github.com/jonaspleyer/egobox/linalg"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNormalize_ZeroMeanUnitStd(t *testing.T) {
	t.Parallel()
	X := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	n := linalg.Normalize(X)

	var sum, sumSq float64
	for i := 0; i < 4; i++ {
		v := n.Data.At(i, 0)
		sum += v
		sumSq += v * v
	}
	require.InDelta(t, 0, sum/4, 1e-9)
	require.InDelta(t, 1, math.Sqrt(sumSq/4), 1e-9)
}

func TestNormalize_ConstantColumn(t *testing.T) {
	t.Parallel()
	X := mat.NewDense(3, 1, []float64{5, 5, 5})
	n := linalg.Normalize(X)
	require.Equal(t, 1.0, n.Std[0])
	for i := 0; i < 3; i++ {
		require.Equal(t, 0.0, n.Data.At(i, 0))
	}
}

func TestPairwiseDiffs_Ordering(t *testing.T) {
	t.Parallel()
	X := mat.NewDense(3, 1, []float64{0, 1, 3})
	table := linalg.PairwiseDiffs(X)
	require.Equal(t, [][2]int{{0, 1}, {0, 2}, {1, 2}}, table.Pairs)
	require.Equal(t, 1.0, table.D.At(0, 0))
	require.Equal(t, 3.0, table.D.At(1, 0))
	require.Equal(t, 2.0, table.D.At(2, 0))
}

func TestKernelRow_SquaredExpAtZeroIsOne(t *testing.T) {
	t.Parallel()
	v, err := linalg.KernelRow(linalg.SquaredExp, []float64{1, 2}, []float64{0, 0})
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
}

func TestKernelRow_DimensionMismatch(t *testing.T) {
	t.Parallel()
	_, err := linalg.KernelRow(linalg.SquaredExp, []float64{1}, []float64{0, 0})
	require.ErrorIs(t, err, linalg.ErrDimensionMismatch)
}

func TestRegressionBasis_Sizes(t *testing.T) {
	t.Parallel()
	X := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

	c, err := linalg.RegressionBasis(linalg.Constant, X)
	require.NoError(t, err)
	r, cc := c.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 1, cc)

	lin, err := linalg.RegressionBasis(linalg.Linear, X)
	require.NoError(t, err)
	_, cc = lin.Dims()
	require.Equal(t, 3, cc)
	require.Equal(t, []float64{1, 1, 2}, mat.Row(nil, 0, lin))

	quad, err := linalg.RegressionBasis(linalg.Quadratic, X)
	require.NoError(t, err)
	_, cc = quad.Dims()
	require.Equal(t, 6, cc) // 1 + 2 + 3
}

func TestCholeskyLower_ReconstructsR(t *testing.T) {
	t.Parallel()
	R := mat.NewSymDense(3, []float64{
		4, 2, 0,
		2, 5, 1,
		0, 1, 3,
	})
	L, err := linalg.CholeskyLower(R)
	require.NoError(t, err)

	var got mat.Dense
	got.Mul(L, L.T())
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			require.InDelta(t, R.At(i, j), got.At(i, j), 1e-9)
		}
	}
}

func TestCholeskyLower_NotPositiveDefinite(t *testing.T) {
	t.Parallel()
	R := mat.NewSymDense(2, []float64{1, 2, 2, 1})
	_, err := linalg.CholeskyLower(R)
	require.ErrorIs(t, err, linalg.ErrSingular)
}

func TestSolveLowerTri_RoundTrip(t *testing.T) {
	t.Parallel()
	L := mat.NewTriDense(2, mat.Lower, []float64{2, 0, 1, 3})
	B := mat.NewDense(2, 1, []float64{4, 5})
	X, err := linalg.SolveLowerTri(L, B)
	require.NoError(t, err)

	var back mat.Dense
	back.Mul(L, X)
	require.InDelta(t, 4, back.At(0, 0), 1e-9)
	require.InDelta(t, 5, back.At(1, 0), 1e-9)
}

func TestThinQR_ReconstructsA(t *testing.T) {
	t.Parallel()
	A := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 7})
	Q, Rf, err := linalg.ThinQR(A)
	require.NoError(t, err)

	var got mat.Dense
	got.Mul(Q, Rf)
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			require.InDelta(t, A.At(i, j), got.At(i, j), 1e-8)
		}
	}
}
