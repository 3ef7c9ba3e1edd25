// SPDX-License-Identifier: MIT
package persist

import "gonum.org/v1/gonum/mat"

// denseSnapshot is the gob-friendly, plain-data shadow of a *mat.Dense:
// encoding/gob cannot reach into mat.Dense's unexported fields, so every
// matrix field of a persisted model is converted to and from this shape.
type denseSnapshot struct {
	Rows, Cols int
	Data       []float64 // row-major
}

func snapshotDense(m *mat.Dense) denseSnapshot {
	if m == nil {
		return denseSnapshot{}
	}
	r, c := m.Dims()
	data := make([]float64, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data[i*c+j] = m.At(i, j)
		}
	}
	return denseSnapshot{Rows: r, Cols: c, Data: data}
}

func (s denseSnapshot) restore() *mat.Dense {
	if s.Rows == 0 || s.Cols == 0 {
		return mat.NewDense(s.Rows, s.Cols, nil)
	}
	return mat.NewDense(s.Rows, s.Cols, append([]float64(nil), s.Data...))
}

// triSnapshot is the gob-friendly shadow of a *mat.TriDense (always
// square, lower-triangular in this module's usage).
type triSnapshot struct {
	N    int
	Data []float64 // row-major, full N*N (zeros above the diagonal)
}

func snapshotTri(m *mat.TriDense) triSnapshot {
	if m == nil {
		return triSnapshot{}
	}
	n, _ := m.Dims()
	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			data[i*n+j] = m.At(i, j)
		}
	}
	return triSnapshot{N: n, Data: data}
}

func (s triSnapshot) restore() *mat.TriDense {
	out := mat.NewTriDense(s.N, mat.Lower, nil)
	for i := 0; i < s.N; i++ {
		for j := 0; j <= i; j++ {
			out.SetTri(i, j, s.Data[i*s.N+j])
		}
	}
	return out
}

// symSnapshot is the gob-friendly shadow of a *mat.SymDense.
type symSnapshot struct {
	N    int
	Data []float64 // row-major, full N*N (symmetric)
}

func snapshotSym(m *mat.SymDense) symSnapshot {
	if m == nil {
		return symSnapshot{}
	}
	n := m.SymmetricDim()
	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			data[i*n+j] = m.At(i, j)
		}
	}
	return symSnapshot{N: n, Data: data}
}

func (s symSnapshot) restore() *mat.SymDense {
	out := mat.NewSymDense(s.N, nil)
	for i := 0; i < s.N; i++ {
		for j := i; j < s.N; j++ {
			out.SetSym(i, j, s.Data[i*s.N+j])
		}
	}
	return out
}
