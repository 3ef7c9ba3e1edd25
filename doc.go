// Package egobox provides a Gaussian Process regression engine, a
// mixture-of-experts surrogate built on top of it, and an Efficient
// Global Optimization (EGO) driver that uses the surrogate to choose
// infill points for expensive black-box objectives, with support for
// constraints and mixed continuous/integer/categorical inputs.
//
// Under the hood, everything is organized under subpackages:
//
//	rng/       — deterministic seeded RNG and substream derivation
//	variables/ — mixed-variable spec and continuous encode/decode
//	linalg/    — normalization, distance tables, regression bases, kernels
//	gp/        — single Gaussian Process trainer and predictor
//	mixture/   — Gaussian mixture EM clusterer (the MoE gate)
//	moe/       — mixture-of-experts surrogate
//	optimizer/ — local nonlinear optimizer adapter
//	ego/       — acquisition criteria and the optimization driver
//	persist/   — version-tagged binary (de)serialization of surrogates
//
// No package here keeps process-global state; every stochastic
// component is seeded explicitly by its caller, so a run is fully
// reproducible given the same seed and inputs.
//
//	go get github.com/jonaspleyer/egobox
package egobox
