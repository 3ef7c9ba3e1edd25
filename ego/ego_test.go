// SPDX-License-Identifier: MIT
package ego

import (
	"math"
	"testing"

	"github.com/jonaspleyer/egobox/variables"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// sphere1D is a trivial unconstrained 1-D objective with a known minimum
// at x=1.3, response column 0 only (no constraints).
func sphere1D(X *mat.Dense) (*mat.Dense, error) {
	rows, _ := X.Dims()
	out := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		x := X.At(i, 0)
		out.Set(i, 0, (x-1.3)*(x-1.3))
	}
	return out, nil
}

func sphereSpec(t *testing.T) *variables.Spec {
	t.Helper()
	v, err := variables.NewContinuous(-5, 5)
	require.NoError(t, err)
	spec, err := variables.NewSpec(v)
	require.NoError(t, err)
	return spec
}

func TestRun_ConvergesOnUnconstrainedSphere(t *testing.T) {
	spec := sphereSpec(t)
	cfg := NewConfig(
		WithSeed(11),
		WithMaxIterations(15),
		WithInitialDesignSize(6),
	)
	result, err := Run(sphere1D, spec, cfg)
	require.NoError(t, err)
	require.Len(t, result.X, 1)
	require.InDelta(t, 1.3, result.X[0], 0.5)
}

func TestRun_DeterministicGivenSeed(t *testing.T) {
	spec := sphereSpec(t)
	cfg := NewConfig(
		WithSeed(42),
		WithMaxIterations(10),
		WithInitialDesignSize(5),
	)

	r1, err := Run(sphere1D, spec, cfg)
	require.NoError(t, err)
	r2, err := Run(sphere1D, spec, cfg)
	require.NoError(t, err)

	require.Equal(t, r1.X, r2.X)
	require.Equal(t, r1.Y, r2.Y)
}

func TestRun_RejectsEmptySpec(t *testing.T) {
	cfg := NewConfig()
	_, err := Run(sphere1D, nil, cfg)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRun_RespectsEvaluationBudget(t *testing.T) {
	spec := sphereSpec(t)
	cfg := NewConfig(
		WithSeed(3),
		WithMaxIterations(50),
		WithInitialDesignSize(4),
		WithEvaluationBudget(10),
		WithBatchSize(1),
	)
	result, err := Run(sphere1D, spec, cfg)
	require.NoError(t, err)
	require.Len(t, result.X, 1)
}

// mixedObjective maximizes x1*sin(x2) (expressed as a minimization of
// its negation) where x1 is integer in [0,9] and x2 continuous in [0,pi].
func mixedObjective(X *mat.Dense) (*mat.Dense, error) {
	rows, _ := X.Dims()
	out := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		x1 := X.At(i, 0)
		x2 := X.At(i, 1)
		out.Set(i, 0, -x1*math.Sin(x2))
	}
	return out, nil
}

// TestRun_MixedIntegerOptimization_MatchesKnownOptimum is scenario 4:
// x1*sin(x2) is maximized at x1=9 (the objective is monotonic in x1
// wherever sin(x2)>0) and x2=pi/2, with a 30-evaluation budget.
func TestRun_MixedIntegerOptimization_MatchesKnownOptimum(t *testing.T) {
	intVar, err := variables.NewInteger(0, 9)
	require.NoError(t, err)
	contVar, err := variables.NewContinuous(0, math.Pi)
	require.NoError(t, err)
	spec, err := variables.NewSpec(intVar, contVar)
	require.NoError(t, err)

	cfg := NewConfig(
		WithSeed(42),
		WithInitialDesignSize(10),
		WithMaxIterations(20),
		WithEvaluationBudget(30),
	)
	result, err := Run(mixedObjective, spec, cfg)
	require.NoError(t, err)
	require.Len(t, result.X, 2)

	require.Equal(t, 9.0, result.X[0])
	require.InDelta(t, math.Pi/2, result.X[1], 0.05)
}

// braninSpec and branin implement the standard Branin-Hoo benchmark
// function over its canonical domain; the global minimum 0.397887 is
// attained at (-pi, 12.275), (pi, 2.275), and (9.42478, 2.475).
func braninSpec(t *testing.T) *variables.Spec {
	t.Helper()
	x1, err := variables.NewContinuous(-5, 10)
	require.NoError(t, err)
	x2, err := variables.NewContinuous(0, 15)
	require.NoError(t, err)
	spec, err := variables.NewSpec(x1, x2)
	require.NoError(t, err)
	return spec
}

func branin(X *mat.Dense) (*mat.Dense, error) {
	const (
		a = 1.0
		b = 5.1 / (4 * math.Pi * math.Pi)
		c = 5.0 / math.Pi
		r = 6.0
		s = 10.0
		t = 1.0 / (8 * math.Pi)
	)
	rows, _ := X.Dims()
	out := mat.NewDense(rows, 1, nil)
	for i := 0; i < rows; i++ {
		x1 := X.At(i, 0)
		x2 := X.At(i, 1)
		term := x2 - b*x1*x1 + c*x1 - r
		out.Set(i, 0, a*term*term+s*(1-t)*math.Cos(x1)+s)
	}
	return out, nil
}

// TestRun_Branin_ConvergesNearGlobalMinimum is scenario 2: minimizing
// Branin with EI+COBYLA (the defaults), initial design 10, max
// iterations 20, seed 42, expecting y within 0.05 of 0.397887.
func TestRun_Branin_ConvergesNearGlobalMinimum(t *testing.T) {
	spec := braninSpec(t)
	cfg := NewConfig(
		WithSeed(42),
		WithInitialDesignSize(10),
		WithMaxIterations(20),
	)
	result, err := Run(branin, spec, cfg)
	require.NoError(t, err)
	require.Len(t, result.Y, 1)
	require.InDelta(t, 0.397887, result.Y[0], 0.05)
}
