// SPDX-License-Identifier: MIT
package linalg

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// CholeskyLower factors the symmetric positive-definite matrix R as
// L*L^T and returns the lower-triangular factor L.
// Errors: ErrSingular if R is not positive definite to machine precision.
func CholeskyLower(R *mat.SymDense) (*mat.TriDense, error) {
	var chol mat.Cholesky
	if ok := chol.Factorize(R); !ok {
		return nil, ErrSingular
	}
	n := R.SymmetricDim()
	L := mat.NewTriDense(n, mat.Lower, nil)
	chol.LTo(L)
	return L, nil
}

// ThinQR factors A (n x p, n >= p) as Q*Rf with Q having orthonormal
// columns (n x p) and Rf upper triangular (p x p).
func ThinQR(A *mat.Dense) (Q *mat.Dense, Rf *mat.Dense, err error) {
	n, p := A.Dims()
	if n < p {
		return nil, nil, ErrDimensionMismatch
	}
	var qr mat.QR
	qr.Factorize(A)

	Q = mat.NewDense(n, n, nil)
	qr.QTo(Q)
	// QTo on a non-square A yields the full n x n Q; trim to n x p (thin).
	qrows, qcols := Q.Dims()
	if qcols != p {
		thin := mat.NewDense(qrows, p, nil)
		thin.Copy(Q.Slice(0, qrows, 0, p))
		Q = thin
	}

	fullR := mat.NewDense(n, p, nil)
	qr.RTo(fullR)
	Rf = mat.NewDense(p, p, nil)
	Rf.Copy(fullR.Slice(0, p, 0, p))
	return Q, Rf, nil
}

// SingularValues returns the singular values of A in descending order.
func SingularValues(A *mat.Dense) ([]float64, error) {
	var svd mat.SVD
	if ok := svd.Factorize(A, mat.SVDNone); !ok {
		return nil, ErrSingular
	}
	return svd.Values(nil), nil
}

// ConditionNumber returns the 2-norm condition number of A (ratio of
// largest to smallest singular value), or +Inf if A is rank-deficient.
func ConditionNumber(A *mat.Dense) (float64, error) {
	sv, err := SingularValues(A)
	if err != nil {
		return 0, err
	}
	if len(sv) == 0 {
		return 0, ErrDimensionMismatch
	}
	smallest := sv[len(sv)-1]
	if smallest == 0 {
		return math.Inf(1), nil
	}
	return sv[0] / smallest, nil
}

// SolveLowerTri solves L*X = B for X, where L (n x n) is lower
// triangular and B is n x k. Forward substitution, O(n^2*k).
// Errors: ErrSingular on a (near-)zero pivot; ErrDimensionMismatch on
// shape disagreement.
func SolveLowerTri(L mat.Matrix, B mat.Matrix) (*mat.Dense, error) {
	n, nc := L.Dims()
	bn, k := B.Dims()
	if n != nc || n != bn {
		return nil, ErrDimensionMismatch
	}
	X := mat.NewDense(n, k, nil)
	for c := 0; c < k; c++ {
		for i := 0; i < n; i++ {
			sum := B.At(i, c)
			for j := 0; j < i; j++ {
				sum -= L.At(i, j) * X.At(j, c)
			}
			piv := L.At(i, i)
			if piv == 0 {
				return nil, ErrSingular
			}
			X.Set(i, c, sum/piv)
		}
	}
	return X, nil
}

// SolveLowerTriTranspose solves L^T*X = B for X, where L (n x n) is
// lower triangular and B is n x k. Back substitution, O(n^2*k).
func SolveLowerTriTranspose(L mat.Matrix, B mat.Matrix) (*mat.Dense, error) {
	n, nc := L.Dims()
	bn, k := B.Dims()
	if n != nc || n != bn {
		return nil, ErrDimensionMismatch
	}
	X := mat.NewDense(n, k, nil)
	for c := 0; c < k; c++ {
		for i := n - 1; i >= 0; i-- {
			sum := B.At(i, c)
			for j := i + 1; j < n; j++ {
				sum -= L.At(j, i) * X.At(j, c)
			}
			piv := L.At(i, i)
			if piv == 0 {
				return nil, ErrSingular
			}
			X.Set(i, c, sum/piv)
		}
	}
	return X, nil
}

// SolveUpperTri solves U*X = B for X, where U (n x n) is upper
// triangular and B is n x k. Back substitution, O(n^2*k).
func SolveUpperTri(U mat.Matrix, B mat.Matrix) (*mat.Dense, error) {
	n, nc := U.Dims()
	bn, k := B.Dims()
	if n != nc || n != bn {
		return nil, ErrDimensionMismatch
	}
	X := mat.NewDense(n, k, nil)
	for c := 0; c < k; c++ {
		for i := n - 1; i >= 0; i-- {
			sum := B.At(i, c)
			for j := i + 1; j < n; j++ {
				sum -= U.At(i, j) * X.At(j, c)
			}
			piv := U.At(i, i)
			if piv == 0 {
				return nil, ErrSingular
			}
			X.Set(i, c, sum/piv)
		}
	}
	return X, nil
}

// SolveUpperTriTranspose solves U^T*X = B for X, where U (n x n) is
// upper triangular and B is n x k. Forward substitution, O(n^2*k).
func SolveUpperTriTranspose(U mat.Matrix, B mat.Matrix) (*mat.Dense, error) {
	n, nc := U.Dims()
	bn, k := B.Dims()
	if n != nc || n != bn {
		return nil, ErrDimensionMismatch
	}
	X := mat.NewDense(n, k, nil)
	for c := 0; c < k; c++ {
		for i := 0; i < n; i++ {
			sum := B.At(i, c)
			for j := 0; j < i; j++ {
				sum -= U.At(j, i) * X.At(j, c)
			}
			piv := U.At(i, i)
			if piv == 0 {
				return nil, ErrSingular
			}
			X.Set(i, c, sum/piv)
		}
	}
	return X, nil
}
