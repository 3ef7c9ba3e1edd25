// SPDX-License-Identifier: MIT
// Package moe implements the mixture-of-experts surrogate: one trained
// gp.GP per cluster of a package mixture Gaussian mixture, combined at
// prediction time by hard (argmax) or smooth(eta) recombination.
//
// Train picks, per cluster (or globally when n_clusters==1), the best
// (regression basis, correlation kernel) pair by cross-validation over
// the caller's allowed spec sets. TrainOnClusters accepts a precomputed
// clustering so repeated retrains during an EGO loop can skip
// re-fitting the gate every iteration.
package moe
