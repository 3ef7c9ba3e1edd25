// SPDX-License-Identifier: MIT
// Package linalg provides the numeric primitives shared by the GP
// trainer and predictor: column normalization, pairwise distance
// tables, regression basis functions, correlation kernels, and thin
// wrappers around gonum/mat's Cholesky, QR, and SVD factorizations.
//
// Contracts:
//   - Inputs/outputs are *mat.Dense (or *mat.SymDense/*mat.TriDense
//     where the shape is structurally guaranteed); there is no hidden
//     state. Failures are reported via the package's sentinel errors,
//     never a panic, except on caller shape-mismatch which is treated
//     as programmer error upstream (see gp.GP.PredictMean/PredictVar).
//   - Loop order is fixed (row-major, i then j) so floating-point
//     accumulation is deterministic across runs.
package linalg
