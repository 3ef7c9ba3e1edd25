// SPDX-License-Identifier: MIT
package gp

import (
	"fmt"

	"github.com/jonaspleyer/egobox/linalg"
	"gonum.org/v1/gonum/mat"
)

// PredictMean returns the posterior mean at each row of Xraw (m x d,
// raw user-facing units), shape (m x k).
//
// y_hat = (F(x)*beta + r_theta(x,Xtrain)*gamma) * stdY + meanY
func (g *GP) PredictMean(Xraw *mat.Dense) (*mat.Dense, error) {
	m, d := Xraw.Dims()
	if d != len(g.Xn.Mean) {
		panic(fmt.Sprintf("gp: PredictMean: query has %d dims, trained on %d", d, len(g.Xn.Mean)))
	}

	Xn, err := g.Xn.Apply(Xraw)
	if err != nil {
		return nil, fmt.Errorf("PredictMean: %w", ErrInvalidInput)
	}

	Fq, err := linalg.RegressionBasis(g.Basis, Xn)
	if err != nil {
		return nil, fmt.Errorf("PredictMean: %w", ErrInvalidInput)
	}
	Rq, err := linalg.CrossCorrelation(g.Kernel, g.Theta, Xn, g.Xn.Data)
	if err != nil {
		return nil, fmt.Errorf("PredictMean: %w", ErrInvalidInput)
	}

	var meanN mat.Dense
	meanN.Mul(Fq, g.Inner.Beta)
	var corrTerm mat.Dense
	corrTerm.Mul(Rq, g.Inner.Gamma)
	meanN.Add(&meanN, &corrTerm)

	_, k := meanN.Dims()
	out := mat.NewDense(m, k, nil)
	for i := 0; i < m; i++ {
		for c := 0; c < k; c++ {
			out.Set(i, c, meanN.At(i, c)*g.Yn.Std[c]+g.Yn.Mean[c])
		}
	}
	return out, nil
}

// PredictVar returns the posterior variance at each row of Xraw,
// shape (m x k); negative values from rounding are clamped to 0.
//
// rt = Lr^-1 * r_theta(x,Xtrain)^T
// lhs = Ft^T*rt - F(x)^T
// u = Rf^-T * lhs
// var = sigma2 * (1 - colSumSq(rt) + colSumSq(u)) * stdY^2
func (g *GP) PredictVar(Xraw *mat.Dense) (*mat.Dense, error) {
	m, d := Xraw.Dims()
	if d != len(g.Xn.Mean) {
		panic(fmt.Sprintf("gp: PredictVar: query has %d dims, trained on %d", d, len(g.Xn.Mean)))
	}

	Xn, err := g.Xn.Apply(Xraw)
	if err != nil {
		return nil, fmt.Errorf("PredictVar: %w", ErrInvalidInput)
	}

	Fq, err := linalg.RegressionBasis(g.Basis, Xn)
	if err != nil {
		return nil, fmt.Errorf("PredictVar: %w", ErrInvalidInput)
	}
	Rq, err := linalg.CrossCorrelation(g.Kernel, g.Theta, Xn, g.Xn.Data)
	if err != nil {
		return nil, fmt.Errorf("PredictVar: %w", ErrInvalidInput)
	}

	var RqT mat.Dense
	RqT.CloneFrom(Rq.T())
	rt, err := linalg.SolveLowerTri(g.Inner.Lr, &RqT)
	if err != nil {
		return nil, fmt.Errorf("PredictVar: %w", ErrLinAlgFailure)
	}

	var ftTrt mat.Dense
	ftTrt.Mul(g.Inner.Ft.T(), rt)
	var fqT mat.Dense
	fqT.CloneFrom(Fq.T())
	var lhs mat.Dense
	lhs.Sub(&ftTrt, &fqT)

	u, err := linalg.SolveUpperTriTranspose(g.Inner.Rf, &lhs)
	if err != nil {
		return nil, fmt.Errorf("PredictVar: %w", ErrLinAlgFailure)
	}

	rtRows, _ := rt.Dims()
	uRows, _ := u.Dims()
	colSumSq := func(M *mat.Dense, rows int) []float64 {
		_, cols := M.Dims()
		out := make([]float64, cols)
		for c := 0; c < cols; c++ {
			var s float64
			for r := 0; r < rows; r++ {
				v := M.At(r, c)
				s += v * v
			}
			out[c] = s
		}
		return out
	}
	rtSS := colSumSq(rt, rtRows)
	uSS := colSumSq(u, uRows)

	k := len(g.Inner.Sigma2)
	out := mat.NewDense(m, k, nil)
	for i := 0; i < m; i++ {
		base := 1 - rtSS[i] + uSS[i]
		for c := 0; c < k; c++ {
			v := g.Inner.Sigma2[c] * base * g.Yn.Std[c] * g.Yn.Std[c]
			if v < 0 {
				v = 0
			}
			out.Set(i, c, v)
		}
	}
	return out, nil
}
