package variables_test

import (
	"testing"

	"github.com/jonaspleyer/egobox/variables"
	"github.com/stretchr/testify/require"
)

func buildMixedSpec(t *testing.T) *variables.Spec {
	t.Helper()
	cont, err := variables.NewContinuous(0, 1)
	require.NoError(t, err)
	intv, err := variables.NewInteger(0, 9)
	require.NoError(t, err)
	ord, err := variables.NewOrdered([]int{1, 2, 4, 8})
	require.NoError(t, err)
	cat, err := variables.NewCategorical([]string{"red", "green", "blue"})
	require.NoError(t, err)

	spec, err := variables.NewSpec(cont, intv, ord, cat)
	require.NoError(t, err)
	return spec
}

func TestSpec_InternalDims(t *testing.T) {
	t.Parallel()
	spec := buildMixedSpec(t)
	// 1 (continuous) + 1 (integer) + 1 (ordered) + 3 (categorical arity 3)
	require.Equal(t, 6, spec.InternalDims())
	require.Equal(t, 4, spec.NumVars())
}

func TestSpec_EncodeDecodeIdempotent(t *testing.T) {
	t.Parallel()
	spec := buildMixedSpec(t)

	cases := [][]float64{
		{0.25, 3, 4, 1},
		{0.0, 0, 1, 0},
		{1.0, 9, 8, 2},
	}
	for _, x := range cases {
		z, err := spec.Encode(x)
		require.NoError(t, err)
		require.Len(t, z, spec.InternalDims())

		back, err := spec.Decode(z)
		require.NoError(t, err)
		require.Equal(t, x, back)
	}
}

func TestSpec_EncodeRejectsOutOfDomain(t *testing.T) {
	t.Parallel()
	spec := buildMixedSpec(t)

	_, err := spec.Encode([]float64{0.5, 10, 1, 0}) // integer out of [0,9]
	require.ErrorIs(t, err, variables.ErrValueOutOfDomain)

	_, err = spec.Encode([]float64{0.5, 0, 3, 0}) // 3 is not an ordered level
	require.ErrorIs(t, err, variables.ErrValueOutOfDomain)

	_, err = spec.Encode([]float64{0.5, 0, 1, 5}) // categorical code out of range
	require.ErrorIs(t, err, variables.ErrValueOutOfDomain)
}

func TestSpec_EncodeDimensionMismatch(t *testing.T) {
	t.Parallel()
	spec := buildMixedSpec(t)
	_, err := spec.Encode([]float64{1, 2})
	require.ErrorIs(t, err, variables.ErrDimensionMismatch)
}

func TestSpec_CategoricalOneHotArgmaxDecode(t *testing.T) {
	t.Parallel()
	cat, err := variables.NewCategorical([]string{"a", "b", "c"})
	require.NoError(t, err)
	spec, err := variables.NewSpec(cat)
	require.NoError(t, err)

	// Relaxed, non-one-hot internal point: argmax should win deterministically.
	x, err := spec.Decode([]float64{0.2, 0.5, 0.3})
	require.NoError(t, err)
	require.Equal(t, []float64{1}, x) // index 1 ("b") has the largest weight

	label, ok := spec.Label(0, 1)
	require.True(t, ok)
	require.Equal(t, "b", label)
}

func TestSpec_Bounds(t *testing.T) {
	t.Parallel()
	spec := buildMixedSpec(t)
	bounds := spec.Bounds()
	require.Len(t, bounds, 6)
	require.Equal(t, [2]float64{0, 1}, bounds[0])
	require.Equal(t, [2]float64{0, 9}, bounds[1])
	require.Equal(t, [2]float64{0, 3}, bounds[2])
	for _, b := range bounds[3:6] {
		require.Equal(t, [2]float64{0, 1}, b)
	}
}

func TestNewOrdered_RejectsNonIncreasing(t *testing.T) {
	t.Parallel()
	_, err := variables.NewOrdered([]int{3, 1, 2})
	require.ErrorIs(t, err, variables.ErrEmptyLevels)
}

func TestNewCategorical_RejectsDuplicates(t *testing.T) {
	t.Parallel()
	_, err := variables.NewCategorical([]string{"a", "a"})
	require.ErrorIs(t, err, variables.ErrEmptyLabels)
}

func TestNewContinuous_RejectsInvalidBounds(t *testing.T) {
	t.Parallel()
	_, err := variables.NewContinuous(5, 1)
	require.ErrorIs(t, err, variables.ErrInvalidBounds)
}
