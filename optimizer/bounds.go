// SPDX-License-Identifier: MIT
package optimizer

// Bounds is a per-dimension [lo, hi] box.
type Bounds [][2]float64

// Clamp returns a copy of x projected into the box.
func (b Bounds) Clamp(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		lo, hi := b[i][0], b[i][1]
		switch {
		case v < lo:
			out[i] = lo
		case v > hi:
			out[i] = hi
		default:
			out[i] = v
		}
	}
	return out
}

// Penalty returns a smooth quadratic penalty for the (pre-clamp)
// distance of x outside the box, zero when x is feasible.
func (b Bounds) Penalty(x []float64) float64 {
	var sum float64
	for i, v := range x {
		lo, hi := b[i][0], b[i][1]
		if v < lo {
			d := lo - v
			sum += d * d
		} else if v > hi {
			d := v - hi
			sum += d * d
		}
	}
	return sum * penaltyWeight
}

// penaltyWeight is large enough to dominate typical objective scales
// (reduced likelihood, acquisition values) without overflowing float64
// for the bounded input ranges this package is used with.
const penaltyWeight = 1e6
