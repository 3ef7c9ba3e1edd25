// SPDX-License-Identifier: MIT
package linalg

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// DiffTable stores the n(n-1)/2 pairwise componentwise absolute
// differences of a training matrix, row-indexed by the upper-triangle
// pair (i,j), alongside the index pairs themselves.
//
// Invariant: row r of D corresponds to Pairs[r] = (i,j) with i<j, in
// the fixed ordering produced by a nested i,j loop (i outer, j inner,
// j>i) — the same ordering PairwiseDiffs always produces, so results
// computed from it do not depend on incidental map iteration order.
type DiffTable struct {
	D     *mat.Dense
	Pairs [][2]int
	N     int
}

// PairwiseDiffs builds the DiffTable for X (n x d).
func PairwiseDiffs(X *mat.Dense) *DiffTable {
	n, d := X.Dims()
	rows := n * (n - 1) / 2
	D := mat.NewDense(maxInt(rows, 0), d, nil)
	pairs := make([][2]int, 0, rows)

	r := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := 0; k < d; k++ {
				D.Set(r, k, math.Abs(X.At(i, k)-X.At(j, k)))
			}
			pairs = append(pairs, [2]int{i, j})
			r++
		}
	}
	return &DiffTable{D: D, Pairs: pairs, N: n}
}

// CorrelationMatrix fills an n x n symmetric correlation matrix from
// the table's cached pairwise differences: unit diagonal, and k_theta
// of the cached difference for every off-diagonal pair.
func (t *DiffTable) CorrelationMatrix(kind KernelKind, theta []float64) (*mat.SymDense, error) {
	R := mat.NewSymDense(t.N, nil)
	for i := 0; i < t.N; i++ {
		R.SetSym(i, i, 1)
	}
	_, d := t.D.Dims()
	row := make([]float64, d)
	for r, p := range t.Pairs {
		for k := 0; k < d; k++ {
			row[k] = t.D.At(r, k)
		}
		v, err := KernelRow(kind, theta, row)
		if err != nil {
			return nil, err
		}
		R.SetSym(p[0], p[1], v)
	}
	return R, nil
}

// CrossCorrelation returns the (m,n) correlation matrix between query
// rows Xq and training rows Xt under kernel kind with length-scales
// theta: out[i][j] = k_theta(|Xq_i - Xt_j|).
func CrossCorrelation(kind KernelKind, theta []float64, Xq, Xt *mat.Dense) (*mat.Dense, error) {
	m, dq := Xq.Dims()
	n, dt := Xt.Dims()
	if dq != dt {
		return nil, ErrDimensionMismatch
	}
	out := mat.NewDense(m, n, nil)
	diff := make([]float64, dq)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < dq; k++ {
				diff[k] = math.Abs(Xq.At(i, k) - Xt.At(j, k))
			}
			v, err := KernelRow(kind, theta, diff)
			if err != nil {
				return nil, err
			}
			out.Set(i, j, v)
		}
	}
	return out, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
