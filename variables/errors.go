// SPDX-License-Identifier: MIT
package variables

import "errors"

// ErrInvalidBounds indicates lo > hi, or a non-finite bound, on a
// Continuous or Integer descriptor.
var ErrInvalidBounds = errors.New("variables: invalid bounds")

// ErrEmptyLevels indicates Ordered was built with fewer than one level,
// or a non-increasing level list.
var ErrEmptyLevels = errors.New("variables: empty or non-increasing levels")

// ErrEmptyLabels indicates Categorical was built with fewer than one
// label, or with duplicate labels.
var ErrEmptyLabels = errors.New("variables: empty or duplicate labels")

// ErrEmptySpec indicates NewSpec was called with zero descriptors.
var ErrEmptySpec = errors.New("variables: spec has no descriptors")

// ErrDimensionMismatch indicates a user-space or internal-space vector
// passed to Encode/Decode does not match the Spec's expected length.
var ErrDimensionMismatch = errors.New("variables: dimension mismatch")

// ErrValueOutOfDomain indicates Encode received a value outside the
// descriptor's domain (out-of-range integer, unknown ordered value, or
// unknown categorical label).
var ErrValueOutOfDomain = errors.New("variables: value out of domain")
