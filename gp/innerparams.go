// SPDX-License-Identifier: MIT
package gp

import "gonum.org/v1/gonum/mat"

// InnerParams are the immutable products of a reduced-likelihood
// evaluation at a fixed theta: the pieces PredictMean/PredictVar need
// without recomputing a factorization.
//
// Invariants: Lr*Lr^T approximates R (the regularized correlation
// matrix) to within the training epsilon; Rf is upper triangular;
// Sigma2 has one entry per output dimension; Ft and Gamma share the
// same row count (n training points) and Beta/Rf share p (basis size).
type InnerParams struct {
	Sigma2 []float64  // per-output-dim process variance, length k
	Beta   *mat.Dense // regression coefficients, p x k
	Gamma  *mat.Dense // GP weights, n x k
	Lr     *mat.TriDense // lower-Cholesky factor of R, n x n
	Ft     *mat.Dense // Lr^-1 * F, n x p
	Rf     *mat.Dense // R-factor of QR(Ft), upper triangular p x p
	DetR   float64    // det(R)^(1/n), i.e. prod(diag(Lr))^(2/n)
}
