// SPDX-License-Identifier: MIT
package linalg

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Normalized holds a column-normalized copy of a training matrix
// alongside the per-column mean and std used to produce it, so new
// points can be normalized consistently at prediction time.
//
// Invariant: each column of Data has zero sample mean (or exactly
// zero if the source column was constant) and unit sample std (or
// value 0 if the source column was constant, in which case Std for
// that column is recorded as 1 to avoid division by zero downstream).
type Normalized struct {
	Data *mat.Dense
	Mean []float64
	Std  []float64
}

// Normalize column-normalizes X: Data = (X - Mean) / Std, where Std
// replaces any zero column std with 1.
func Normalize(X *mat.Dense) *Normalized {
	n, d := X.Dims()
	mean := make([]float64, d)
	std := make([]float64, d)

	for j := 0; j < d; j++ {
		var sum float64
		for i := 0; i < n; i++ {
			sum += X.At(i, j)
		}
		mean[j] = sum / float64(n)
	}
	for j := 0; j < d; j++ {
		var ss float64
		for i := 0; i < n; i++ {
			dv := X.At(i, j) - mean[j]
			ss += dv * dv
		}
		s := math.Sqrt(ss / float64(n))
		if s == 0 {
			s = 1
		}
		std[j] = s
	}

	data := mat.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			data.Set(i, j, (X.At(i, j)-mean[j])/std[j])
		}
	}
	return &Normalized{Data: data, Mean: mean, Std: std}
}

// Apply normalizes x (m x d, d == len(n.Mean)) using n's stored mean
// and std, without mutating n or recomputing statistics.
func (n *Normalized) Apply(x *mat.Dense) (*mat.Dense, error) {
	m, d := x.Dims()
	if d != len(n.Mean) {
		return nil, ErrDimensionMismatch
	}
	out := mat.NewDense(m, d, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < d; j++ {
			out.Set(i, j, (x.At(i, j)-n.Mean[j])/n.Std[j])
		}
	}
	return out, nil
}

// Denormalize reverses Normalize/Apply for a single observation value y
// in normalized output space, given the output's stored mean/std
// (outMean, outStd, both scalars for a single response dim).
func Denormalize(y float64, outMean, outStd float64) float64 {
	return y*outStd + outMean
}
