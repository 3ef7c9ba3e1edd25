// SPDX-License-Identifier: MIT
package ego

import (
	"github.com/jonaspleyer/egobox/moe"
	"github.com/jonaspleyer/egobox/optimizer"
)

// InfillStrategy selects the acquisition criterion maximized each iteration.
type InfillStrategy int

const (
	EI InfillStrategy = iota
	WB2
	WB2S
)

// QBatchStrategy selects how a not-yet-observed point's objective value
// is imputed while building a batch of q>1 proposals.
type QBatchStrategy int

const (
	KrigingBeliever QBatchStrategy = iota
	KrigingBelieverLowerBound
	KrigingBelieverUpperBound
	ConstantLiarMinimum
)

// TraceFunc, when set, is called once per completed iteration with the
// iteration index (1-based), the current incumbent objective value, and
// the cumulative count of true-objective evaluations.
type TraceFunc func(iteration int, incumbentY float64, evaluations int)

// Option customizes a Config before Run begins.
type Option func(*Config)

// Config holds the (defaulted) EGO driver configuration.
type Config struct {
	Infill          InfillStrategy
	InfillOptimizer optimizer.Kind
	QBatchStrategy  QBatchStrategy

	NStarts           int // 0 => 20*d_internal, resolved at Run time
	BatchSize         int // q, default 1
	MaxIterations     int
	InitialDesignSize int

	Tolerance       float64 // relative improvement tolerance
	ToleranceWindow int     // trailing window w over which improvement is measured

	EvaluationBudget int // 0 => unbounded (governed by MaxIterations alone)

	Seed int64

	SurrogateParams *moe.Params

	Trace TraceFunc
}

const (
	defaultMaxIterations     = 20
	defaultInitialDesignSize = 10
	defaultTolerance         = 1e-6
	defaultToleranceWindow   = 3
	defaultBatchSize         = 1
)

func defaultConfig() *Config {
	return &Config{
		Infill:            EI,
		InfillOptimizer:   optimizer.COBYLA,
		QBatchStrategy:    KrigingBeliever,
		BatchSize:         defaultBatchSize,
		MaxIterations:     defaultMaxIterations,
		InitialDesignSize: defaultInitialDesignSize,
		Tolerance:         defaultTolerance,
		ToleranceWindow:   defaultToleranceWindow,
		SurrogateParams:   moe.NewParams(),
	}
}

// NewConfig builds a Config with documented defaults (EI + COBYLA,
// KrigingBeliever, q=1, 20 iterations, initial design of 10, relative
// improvement tolerance 1e-6 over a window of 3), then applies opts.
func NewConfig(opts ...Option) *Config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func WithInfill(s InfillStrategy) Option { return func(c *Config) { c.Infill = s } }

func WithInfillOptimizer(k optimizer.Kind) Option {
	return func(c *Config) { c.InfillOptimizer = k }
}

func WithQBatchStrategy(s QBatchStrategy) Option {
	return func(c *Config) { c.QBatchStrategy = s }
}

func WithNStarts(n int) Option { return func(c *Config) { c.NStarts = n } }

func WithBatchSize(q int) Option { return func(c *Config) { c.BatchSize = q } }

func WithMaxIterations(n int) Option { return func(c *Config) { c.MaxIterations = n } }

func WithInitialDesignSize(n int) Option { return func(c *Config) { c.InitialDesignSize = n } }

func WithTolerance(tol float64, window int) Option {
	return func(c *Config) {
		c.Tolerance = tol
		c.ToleranceWindow = window
	}
}

func WithEvaluationBudget(n int) Option { return func(c *Config) { c.EvaluationBudget = n } }

func WithSeed(seed int64) Option { return func(c *Config) { c.Seed = seed } }

func WithSurrogateParams(p *moe.Params) Option { return func(c *Config) { c.SurrogateParams = p } }

func WithTrace(fn TraceFunc) Option { return func(c *Config) { c.Trace = fn } }

func (c *Config) resolveNStarts(dInternal int) int {
	if c.NStarts > 0 {
		return c.NStarts
	}
	n := 20 * dInternal
	if n < 1 {
		n = 1
	}
	return n
}
