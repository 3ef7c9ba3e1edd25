// SPDX-License-Identifier: MIT
package gp

import "errors"

// ErrInvalidInput indicates a shape mismatch (X/Y row count disagreement,
// empty training set, or non-positive dimensions).
var ErrInvalidInput = errors.New("gp: invalid input")

// ErrLinAlgFailure indicates a factorization or triangular solve failed
// (Cholesky not positive definite, zero pivot, SVD failure) while
// computing the inner parameters at the final theta*, or that the
// theta optimizer itself failed.
var ErrLinAlgFailure = errors.New("gp: linear algebra failure")

// ErrLikelihoodIllConditioned indicates the reduced-likelihood
// evaluation at theta* was ill-conditioned (retryable at a different
// theta, but training gave up after exhausting the optimizer budget).
var ErrLikelihoodIllConditioned = errors.New("gp: reduced likelihood ill-conditioned")

// ErrLikelihoodIncompatibleBasis indicates the regression basis is
// incompatible with the observations at theta* (fatal: cond(F) > 1e15
// while the correlation matrix is also ill-conditioned).
var ErrLikelihoodIncompatibleBasis = errors.New("gp: regression basis incompatible with observations")
