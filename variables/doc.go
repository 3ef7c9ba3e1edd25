// SPDX-License-Identifier: MIT
// Package variables maps an ordered sequence of typed variable
// descriptors (continuous, integer, ordered, categorical) to the
// internal continuous space used by the Gaussian Process and back.
//
// Each descriptor expands to one or more internal dimensions:
//
//	Continuous          -> 1 dim, same bounds
//	Integer / Ordered   -> 1 dim over [0, n-1]
//	Categorical(arity n) -> n dims under a one-hot relaxation (sum=1)
//
// Descriptors are built with validated constructors (NewContinuous,
// NewInteger, NewOrdered, NewCategorical) and assembled into a Spec
// with NewSpec, which itself validates the whole sequence before any
// encode/decode call is possible. Decoding is idempotent on valid
// user-space values: Decode(Encode(v)) == v.
package variables
