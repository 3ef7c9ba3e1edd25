// SPDX-License-Identifier: MIT
package linalg

import "gonum.org/v1/gonum/mat"

// BasisKind identifies a regression (trend) basis. Values are bit
// flags so callers (moe.Params) can express an allowed-basis set.
type BasisKind uint8

const (
	Constant BasisKind = 1 << iota
	Linear
	Quadratic
)

// AllBases is the flag set containing every supported basis.
const AllBases = Constant | Linear | Quadratic

// Has reports whether set contains kind.
func (set BasisKind) Has(kind BasisKind) bool { return set&kind != 0 }

// Each calls fn for every individual basis present in set, from
// simplest to richest (Constant, Linear, Quadratic).
func (set BasisKind) Each(fn func(BasisKind)) {
	for _, b := range []BasisKind{Constant, Linear, Quadratic} {
		if set.Has(b) {
			fn(b)
		}
	}
}

func (b BasisKind) String() string {
	switch b {
	case Constant:
		return "Constant"
	case Linear:
		return "Linear"
	case Quadratic:
		return "Quadratic"
	default:
		return "Unknown"
	}
}

// BasisSize returns the number of regression coefficients kind
// produces for a d-dimensional input: 1 for Constant, 1+d for Linear,
// 1+d+d(d+1)/2 for Quadratic (bias, linear terms, then the upper
// triangle including the diagonal of the quadratic terms).
func BasisSize(kind BasisKind, d int) (int, error) {
	switch kind {
	case Constant:
		return 1, nil
	case Linear:
		return 1 + d, nil
	case Quadratic:
		return 1 + d + d*(d+1)/2, nil
	default:
		return 0, ErrInvalidBasis
	}
}

// basisRow evaluates the basis at a single point x, writing into dst
// (len(dst) == BasisSize(kind, len(x))).
func basisRow(kind BasisKind, x []float64, dst []float64) error {
	d := len(x)
	switch kind {
	case Constant:
		dst[0] = 1
	case Linear:
		dst[0] = 1
		copy(dst[1:], x)
	case Quadratic:
		dst[0] = 1
		copy(dst[1:1+d], x)
		idx := 1 + d
		for i := 0; i < d; i++ {
			for j := i; j < d; j++ {
				dst[idx] = x[i] * x[j]
				idx++
			}
		}
	default:
		return ErrInvalidBasis
	}
	return nil
}

// RegressionBasis applies the basis function rowwise to X (n x d),
// returning the (n x p) design matrix, p = BasisSize(kind, d).
func RegressionBasis(kind BasisKind, X *mat.Dense) (*mat.Dense, error) {
	n, d := X.Dims()
	p, err := BasisSize(kind, d)
	if err != nil {
		return nil, err
	}
	out := mat.NewDense(n, p, nil)
	row := make([]float64, d)
	dst := make([]float64, p)
	for i := 0; i < n; i++ {
		for k := 0; k < d; k++ {
			row[k] = X.At(i, k)
		}
		if err := basisRow(kind, row, dst); err != nil {
			return nil, err
		}
		out.SetRow(i, dst)
	}
	return out, nil
}
