// SPDX-License-Identifier: MIT
// Package ego implements the Efficient Global Optimization driver: it
// repeatedly trains a package moe surrogate on the observations seen so
// far, maximizes an acquisition criterion (EI, WB2, or WB2S) over the
// variable spec's internal encoded space to choose the next sample
// point(s), evaluates the caller's true objective there, and repeats
// until a stopping rule fires.
//
// Constraints are modeled as their own surrogates; the acquisition is
// weighted by the product of per-constraint feasibility probabilities.
// Batches of q>1 points are proposed by the plausible-value imputation
// state machine implemented by proposeBatch.
//
// The driver is single-threaded deterministic given a seed: the only
// parallelism is the acquisition multi-start search, fanned out on a
// bounded worker pool and reduced back to a single deterministic
// choice by (value, start-index).
package ego
