package optimizer_test

import (
	"testing"

	"github.com/jonaspleyer/egobox/optimizer"
	"github.com/stretchr/testify/require"
)

func sphere(x []float64) float64 {
	var s float64
	for _, v := range x {
		s += v * v
	}
	return s
}

func TestMinimize_COBYLA_FindsSphereMinimum(t *testing.T) {
	t.Parallel()
	bounds := optimizer.Bounds{{-5, 5}, {-5, 5}}
	res, err := optimizer.Minimize(optimizer.COBYLA, sphere, []float64{2, -3}, bounds, optimizer.DefaultSettings(2))
	require.NoError(t, err)
	require.InDelta(t, 0, res.F, 0.5)
}

func TestMinimize_RespectsBounds(t *testing.T) {
	t.Parallel()
	bounds := optimizer.Bounds{{1, 5}}
	res, err := optimizer.Minimize(optimizer.COBYLA, sphere, []float64{3}, bounds, optimizer.DefaultSettings(1))
	require.NoError(t, err)
	require.GreaterOrEqual(t, res.X[0], 1.0)
	require.LessOrEqual(t, res.X[0], 5.0)
}

func TestMinimize_InvalidInput(t *testing.T) {
	t.Parallel()
	_, err := optimizer.Minimize(optimizer.COBYLA, sphere, []float64{}, optimizer.Bounds{}, optimizer.DefaultSettings(1))
	require.ErrorIs(t, err, optimizer.ErrInvalidInput)
}
