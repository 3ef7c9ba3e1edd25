// SPDX-License-Identifier: MIT
// Package mixture fits a Gaussian mixture model over joint (x,y) points
// by Expectation-Maximization, seeded by k-means++, and exposes the
// fitted responsibilities and per-component parameters consumed by the
// mixture-of-experts gate in package moe.
//
// Fitting is deterministic given a seed: k-means++ seeding and EM
// restarts both draw from substreams derived via rng.Derive, never from
// package-global or thread-local state.
package mixture
