// SPDX-License-Identifier: MIT
package mixture

import "math/rand"

// Option customizes a Config before Fit begins.
type Option func(*Config)

// Config holds the (defaulted) EM fitting parameters.
type Config struct {
	NClusters int

	MaxIterations   int
	ConvergenceTol  float64 // relative log-likelihood improvement below which EM stops
	MaxRestarts     int     // restarts attempted on a singular covariance before giving up
	CovarianceEps   float64 // diagonal jitter added to covariances to guard against singularity

	RNG *rand.Rand
}

const (
	defaultMaxIterations  = 100
	defaultConvergenceTol = 1e-3
	defaultMaxRestarts    = 5
	defaultCovarianceEps  = 1e-6
)

func defaultConfig() *Config {
	return &Config{
		NClusters:      1,
		MaxIterations:  defaultMaxIterations,
		ConvergenceTol: defaultConvergenceTol,
		MaxRestarts:    defaultMaxRestarts,
		CovarianceEps:  defaultCovarianceEps,
	}
}

// NewConfig builds a Config with the documented EM defaults (iteration
// cap 100, relative log-likelihood tolerance 1e-3, up to 5 restarts on
// a singular covariance), then applies opts in order.
func NewConfig(opts ...Option) *Config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithNClusters sets the number of mixture components (k >= 1).
func WithNClusters(k int) Option {
	return func(c *Config) { c.NClusters = k }
}

// WithMaxIterations overrides the EM iteration cap.
func WithMaxIterations(n int) Option {
	return func(c *Config) { c.MaxIterations = n }
}

// WithConvergenceTol overrides the relative log-likelihood stopping tolerance.
func WithConvergenceTol(tol float64) Option {
	return func(c *Config) { c.ConvergenceTol = tol }
}

// WithMaxRestarts overrides the restart budget on singular covariance.
func WithMaxRestarts(n int) Option {
	return func(c *Config) { c.MaxRestarts = n }
}

// WithRNG supplies the deterministic RNG used for k-means++ seeding and
// restarts. If nil (the default), Fit derives one from rng.DefaultSeed.
func WithRNG(r *rand.Rand) Option {
	return func(c *Config) { c.RNG = r }
}
