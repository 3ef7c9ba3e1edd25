// SPDX-License-Identifier: MIT
package moe

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// kplsProjection reduces X to a small number of NIPALS partial
// least-squares latent dimensions before GP training, used when
// Params.KPLSDim > 0 to keep the correlation kernel's theta vector
// small in high dimensions.
//
// NIPALS is run against the row-mean of Y (PLS1 against a single
// supervising target) rather than full multi-output PLS2, trading a
// little fit quality for a simpler, well-understood deflation loop.
type kplsProjection struct {
	Weights *mat.Dense // d x nComponents, X_latent = (X - Mean) * Weights
	Mean    []float64
}

// RebuildKPLS reconstructs a KPLS projection from its persisted weight
// matrix and centering mean, for package persist to restore an MoE's
// projection without exposing kplsProjection.
func RebuildKPLS(weights *mat.Dense, mean []float64) *kplsProjection {
	return &kplsProjection{Weights: weights, Mean: mean}
}

func fitKPLS(X *mat.Dense, y []float64, nComponents int) *kplsProjection {
	n, d := X.Dims()
	if nComponents > d {
		nComponents = d
	}

	mean := make([]float64, d)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			mean[j] += X.At(i, j)
		}
	}
	for j := range mean {
		mean[j] /= float64(n)
	}

	Xc := mat.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			Xc.Set(i, j, X.At(i, j)-mean[j])
		}
	}
	yc := make([]float64, n)
	var yMean float64
	for _, v := range y {
		yMean += v
	}
	yMean /= float64(n)
	for i, v := range y {
		yc[i] = v - yMean
	}

	W := mat.NewDense(d, nComponents, nil)
	for comp := 0; comp < nComponents; comp++ {
		w := make([]float64, d)
		for j := 0; j < d; j++ {
			var s float64
			for i := 0; i < n; i++ {
				s += Xc.At(i, j) * yc[i]
			}
			w[j] = s
		}
		norm := 0.0
		for _, v := range w {
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm < 1e-14 {
			for j := 0; j < d; j++ {
				if j == comp {
					w[j] = 1
				} else {
					w[j] = 0
				}
			}
		} else {
			for j := range w {
				w[j] /= norm
			}
		}
		W.SetCol(comp, w)

		t := make([]float64, n)
		var tNormSq float64
		for i := 0; i < n; i++ {
			var s float64
			for j := 0; j < d; j++ {
				s += Xc.At(i, j) * w[j]
			}
			t[i] = s
			tNormSq += s * s
		}
		if tNormSq < 1e-20 {
			continue
		}
		p := make([]float64, d)
		for j := 0; j < d; j++ {
			var s float64
			for i := 0; i < n; i++ {
				s += Xc.At(i, j) * t[i]
			}
			p[j] = s / tNormSq
		}
		var qNum, qDen float64
		for i := 0; i < n; i++ {
			qNum += t[i] * yc[i]
			qDen += t[i] * t[i]
		}
		q := 0.0
		if qDen > 1e-20 {
			q = qNum / qDen
		}
		for i := 0; i < n; i++ {
			for j := 0; j < d; j++ {
				Xc.Set(i, j, Xc.At(i, j)-t[i]*p[j])
			}
			yc[i] -= t[i] * q
		}
	}

	return &kplsProjection{Weights: W, Mean: mean}
}

// Apply projects X (m x d) to the latent space, shape (m x nComponents).
func (k *kplsProjection) Apply(X *mat.Dense) *mat.Dense {
	m, d := X.Dims()
	_, nComponents := k.Weights.Dims()
	Xc := mat.NewDense(m, d, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < d; j++ {
			Xc.Set(i, j, X.At(i, j)-k.Mean[j])
		}
	}
	out := mat.NewDense(m, nComponents, nil)
	out.Mul(Xc, k.Weights)
	return out
}

func columnMeans(Y *mat.Dense) []float64 {
	n, k := Y.Dims()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var s float64
		for c := 0; c < k; c++ {
			s += Y.At(i, c)
		}
		out[i] = s / float64(k)
	}
	return out
}
