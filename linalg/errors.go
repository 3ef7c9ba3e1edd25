// SPDX-License-Identifier: MIT
package linalg

import "errors"

// ErrDimensionMismatch indicates incompatible shapes between operands.
var ErrDimensionMismatch = errors.New("linalg: dimension mismatch")

// ErrSingular indicates a Cholesky factorization failed because the
// matrix was not positive definite, or a triangular solve hit a
// (near-)zero pivot.
var ErrSingular = errors.New("linalg: matrix is singular or not positive definite")

// ErrInvalidKernel indicates an unrecognized KernelKind value.
var ErrInvalidKernel = errors.New("linalg: invalid kernel kind")

// ErrInvalidBasis indicates an unrecognized BasisKind value.
var ErrInvalidBasis = errors.New("linalg: invalid basis kind")
