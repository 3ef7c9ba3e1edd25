// SPDX-License-Identifier: MIT
package moe

import (
	"github.com/jonaspleyer/egobox/linalg"
)

// RecombinationKind selects how per-cluster predictions are combined.
type RecombinationKind int

const (
	// Hard picks the argmax-responsibility cluster and returns its
	// prediction unchanged.
	Hard RecombinationKind = iota
	// Smooth blends every cluster's prediction, weighted by
	// responsibilities raised to the power 1/Eta and renormalized.
	// Eta==0 degenerates to Hard.
	Smooth
)

// Option customizes Params before Train begins.
type Option func(*Params)

// Params holds the (defaulted) MoE training configuration.
type Params struct {
	NClusters int

	// RegressionSpec/CorrelationSpec are bit-flag sets (see package
	// linalg) naming every basis/kernel combination cross-validation
	// is allowed to try.
	RegressionSpec  linalg.BasisKind
	CorrelationSpec linalg.KernelKind

	// ThetaFixed, when non-empty, is passed to every candidate GP via
	// gp.WithThetaFixed; it replaces theta optimization only when its
	// length matches the GP's input dimensionality.
	ThetaFixed       []float64
	ThetaLog10Bounds [2]float64

	// KPLSDim, when > 0, projects X to this many NIPALS PLS latent
	// dimensions before GP training (kpls_dim: None|int>0).
	KPLSDim int

	NStart        int
	Recombination RecombinationKind
	Eta           float64

	Seed int64
}

const (
	defaultLogLo = -6
	defaultLogHi = 2
)

func defaultParams() *Params {
	return &Params{
		NClusters:        1,
		RegressionSpec:   linalg.Constant,
		CorrelationSpec:  linalg.SquaredExp,
		ThetaLog10Bounds: [2]float64{defaultLogLo, defaultLogHi},
		NStart:           1,
		Recombination:    Hard,
	}
}

// NewParams builds a Params with documented defaults (k=1, constant
// basis, squared-exponential kernel, hard recombination, KPLS
// disabled), then applies opts in order.
func NewParams(opts ...Option) *Params {
	p := defaultParams()
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func WithNClusters(k int) Option { return func(p *Params) { p.NClusters = k } }

func WithRegressionSpec(b linalg.BasisKind) Option {
	return func(p *Params) { p.RegressionSpec = b }
}

func WithCorrelationSpec(k linalg.KernelKind) Option {
	return func(p *Params) { p.CorrelationSpec = k }
}

func WithThetaFixed(theta []float64) Option {
	return func(p *Params) {
		cp := make([]float64, len(theta))
		copy(cp, theta)
		p.ThetaFixed = cp
	}
}

func WithThetaLog10Bounds(lo, hi float64) Option {
	return func(p *Params) { p.ThetaLog10Bounds = [2]float64{lo, hi} }
}

func WithKPLSDim(dim int) Option { return func(p *Params) { p.KPLSDim = dim } }

func WithNStart(n int) Option { return func(p *Params) { p.NStart = n } }

func WithRecombination(kind RecombinationKind, eta float64) Option {
	return func(p *Params) {
		p.Recombination = kind
		p.Eta = eta
	}
}

func WithSeed(seed int64) Option { return func(p *Params) { p.Seed = seed } }
