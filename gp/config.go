// SPDX-License-Identifier: MIT
package gp

import (
	"github.com/jonaspleyer/egobox/linalg"
	"github.com/jonaspleyer/egobox/optimizer"
)

// Option customizes a Config before Fit begins. Option constructors
// never panic; WithThetaInit and WithThetaFixed leave the current value
// in place on an empty argument, while the others store their argument
// as given.
type Option func(*Config)

// Config holds the (validated, defaulted) training parameters for Fit.
// Build one implicitly by passing Options to Fit, or explicitly via
// NewConfig for reuse across multiple Fit calls.
type Config struct {
	Basis  linalg.BasisKind
	Kernel linalg.KernelKind

	// ThetaInit is the per-dimension starting length-scale (linear
	// space, not log10); if its length differs from the input
	// dimensionality at Fit time, 1e-2 per dimension is used instead.
	ThetaInit []float64
	// ThetaLog10Bounds is the [lo,hi] search box for log10(theta);
	// spec default [-6, 2] (theta in [1e-6, 1e2]).
	ThetaLog10Bounds [2]float64

	OptimizerKind     optimizer.Kind
	MaxEvaluations    int // 0 => 10*d, resolved at Fit time
	OptimizerInitStep float64

	// ThetaFixed, when it has one entry per input dimension, skips theta
	// optimization entirely: Fit evaluates the reduced likelihood once at
	// this theta (linear space) and caches the result directly. Any other
	// length is ignored and theta is optimized as usual.
	ThetaFixed []float64
}

const (
	defaultThetaInit = 1e-2
	defaultLogLo     = -6
	defaultLogHi     = 2
	defaultInitStep  = 0.5
)

func defaultConfig() *Config {
	return &Config{
		Basis:             linalg.Constant,
		Kernel:            linalg.SquaredExp,
		ThetaLog10Bounds:  [2]float64{defaultLogLo, defaultLogHi},
		OptimizerKind:     optimizer.COBYLA,
		OptimizerInitStep: defaultInitStep,
	}
}

// NewConfig builds a Config starting from documented defaults
// (Constant basis, squared-exponential kernel, theta0=1e-2 in every
// dimension, log10(theta) bounds [-6,2], COBYLA, init step 0.5), then
// applies opts in order.
func NewConfig(opts ...Option) *Config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithBasis sets the regression (trend) basis.
func WithBasis(b linalg.BasisKind) Option {
	return func(c *Config) { c.Basis = b }
}

// WithKernel sets the correlation kernel.
func WithKernel(k linalg.KernelKind) Option {
	return func(c *Config) { c.Kernel = k }
}

// WithThetaInit sets the initial length-scale vector (linear space).
// A nil or empty theta0 is a no-op; the configured default (1e-2 per
// dimension) remains in effect.
func WithThetaInit(theta0 []float64) Option {
	return func(c *Config) {
		if len(theta0) == 0 {
			return
		}
		cp := make([]float64, len(theta0))
		copy(cp, theta0)
		c.ThetaInit = cp
	}
}

// WithThetaLog10Bounds overrides the [lo,hi] search box for log10(theta).
func WithThetaLog10Bounds(lo, hi float64) Option {
	return func(c *Config) { c.ThetaLog10Bounds = [2]float64{lo, hi} }
}

// WithThetaFixed disables theta optimization: Fit uses this value
// directly (linear space, one entry per input dimension).
func WithThetaFixed(theta []float64) Option {
	return func(c *Config) {
		if len(theta) == 0 {
			return
		}
		cp := make([]float64, len(theta))
		copy(cp, theta)
		c.ThetaFixed = cp
	}
}

// WithOptimizer selects the local optimizer kind and, optionally, a
// max-evaluation budget (0 leaves the default of 10*d).
func WithOptimizer(kind optimizer.Kind, maxEvaluations int) Option {
	return func(c *Config) {
		c.OptimizerKind = kind
		c.MaxEvaluations = maxEvaluations
	}
}

// resolveThetaInit returns the effective theta0 for a d-dimensional
// input: the configured ThetaInit if it has length d, or
// defaultThetaInit broadcast to every dimension otherwise.
func (c *Config) resolveThetaInit(d int) []float64 {
	if len(c.ThetaInit) == d {
		cp := make([]float64, d)
		copy(cp, c.ThetaInit)
		return cp
	}
	theta0 := make([]float64, d)
	for i := range theta0 {
		theta0[i] = defaultThetaInit
	}
	return theta0
}
