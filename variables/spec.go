// SPDX-License-Identifier: MIT
package variables

import (
	"fmt"
	"math"
)

// Spec is an ordered, validated sequence of variable descriptors. It
// is the single source of truth for the mapping between user-facing
// values (one float64 per descriptor; Categorical uses the 0-based
// index into its Labels) and the internal continuous space the GP
// trains on.
type Spec struct {
	vars    []Var
	offsets []int // offsets[i] = starting internal dim of vars[i]
	dims    int   // total internal dims
}

// NewSpec validates and assembles descriptors into a Spec.
// Errors: ErrEmptySpec if vars is empty.
func NewSpec(vars ...Var) (*Spec, error) {
	if len(vars) == 0 {
		return nil, fmt.Errorf("NewSpec: %w", ErrEmptySpec)
	}
	cp := make([]Var, len(vars))
	copy(cp, vars)

	offsets := make([]int, len(cp))
	dims := 0
	for i, v := range cp {
		offsets[i] = dims
		dims += v.InternalDims()
	}
	return &Spec{vars: cp, offsets: offsets, dims: dims}, nil
}

// NumVars returns the number of user-facing descriptors.
func (s *Spec) NumVars() int { return len(s.vars) }

// InternalDims returns the total number of internal continuous
// dimensions after expansion (categorical one-hot included).
func (s *Spec) InternalDims() int { return s.dims }

// Var returns the i-th descriptor.
func (s *Spec) Var(i int) Var { return s.vars[i] }

// Bounds returns the box bounds [lo,hi] for each internal dimension,
// suitable as the acquisition-maximization search domain. Integer and
// Ordered dims use [0, n-1]; Categorical dims use [0, 1] per one-hot
// coordinate.
func (s *Spec) Bounds() [][2]float64 {
	out := make([][2]float64, s.dims)
	for i, v := range s.vars {
		off := s.offsets[i]
		switch v.kind {
		case Continuous:
			out[off] = [2]float64{v.lo, v.hi}
		case Integer:
			out[off] = [2]float64{0, v.hi - v.lo}
		case Ordered:
			out[off] = [2]float64{0, float64(len(v.levels) - 1)}
		case Categorical:
			for c := 0; c < len(v.labels); c++ {
				out[off+c] = [2]float64{0, 1}
			}
		}
	}
	return out
}

// Encode maps a user-facing vector x (length NumVars()) to the
// internal continuous vector (length InternalDims()).
//
// Errors: ErrDimensionMismatch if len(x) != NumVars(); ErrValueOutOfDomain
// if an Integer value falls outside [lo,hi], an Ordered value is not in
// Levels, or a Categorical index is outside [0, arity).
func (s *Spec) Encode(x []float64) ([]float64, error) {
	if len(x) != len(s.vars) {
		return nil, fmt.Errorf("Encode: got %d values, want %d: %w", len(x), len(s.vars), ErrDimensionMismatch)
	}
	z := make([]float64, s.dims)
	for i, v := range s.vars {
		off := s.offsets[i]
		switch v.kind {
		case Continuous:
			z[off] = x[i]
		case Integer:
			iv := int(math.Round(x[i]))
			if float64(iv) < v.lo || float64(iv) > v.hi {
				return nil, fmt.Errorf("Encode: var %d integer %d out of [%g,%g]: %w", i, iv, v.lo, v.hi, ErrValueOutOfDomain)
			}
			z[off] = float64(iv) - v.lo
		case Ordered:
			lv := int(math.Round(x[i]))
			idx := indexOf(v.levels, lv)
			if idx < 0 {
				return nil, fmt.Errorf("Encode: var %d level %d not in %v: %w", i, lv, v.levels, ErrValueOutOfDomain)
			}
			z[off] = float64(idx)
		case Categorical:
			code := int(math.Round(x[i]))
			if code < 0 || code >= len(v.labels) {
				return nil, fmt.Errorf("Encode: var %d categorical code %d out of [0,%d): %w", i, code, len(v.labels), ErrValueOutOfDomain)
			}
			for c := 0; c < len(v.labels); c++ {
				if c == code {
					z[off+c] = 1
				} else {
					z[off+c] = 0
				}
			}
		}
	}
	return z, nil
}

// Decode maps an internal continuous vector z (length InternalDims(),
// typically the output of acquisition maximization) back to a
// user-facing vector (length NumVars()). Integer dims are rounded to
// the nearest allowed integer, Ordered dims are snapped to the nearest
// value in Levels, and Categorical one-hot groups are projected to the
// argmax coordinate (ties broken by the lowest index, deterministically).
//
// Decode(Encode(v)) == v for every valid user-space value v.
//
// Errors: ErrDimensionMismatch if len(z) != InternalDims().
func (s *Spec) Decode(z []float64) ([]float64, error) {
	if len(z) != s.dims {
		return nil, fmt.Errorf("Decode: got %d values, want %d: %w", len(z), s.dims, ErrDimensionMismatch)
	}
	x := make([]float64, len(s.vars))
	for i, v := range s.vars {
		off := s.offsets[i]
		switch v.kind {
		case Continuous:
			x[i] = clamp(z[off], v.lo, v.hi)
		case Integer:
			n := v.hi - v.lo
			idx := clamp(math.Round(z[off]), 0, n)
			x[i] = v.lo + idx
		case Ordered:
			n := float64(len(v.levels) - 1)
			idx := int(clamp(math.Round(z[off]), 0, n))
			x[i] = float64(v.levels[idx])
		case Categorical:
			best := 0
			bestVal := z[off]
			for c := 1; c < len(v.labels); c++ {
				if z[off+c] > bestVal {
					bestVal = z[off+c]
					best = c
				}
			}
			x[i] = float64(best)
		}
	}
	return x, nil
}

// Label returns the categorical label for var i's user-space code.
// It returns ("", false) if i is not Categorical or code is out of range.
func (s *Spec) Label(i int, code int) (string, bool) {
	if i < 0 || i >= len(s.vars) {
		return "", false
	}
	v := s.vars[i]
	if v.kind != Categorical || code < 0 || code >= len(v.labels) {
		return "", false
	}
	return v.labels[code], true
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
