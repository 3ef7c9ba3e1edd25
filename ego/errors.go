// SPDX-License-Identifier: MIT
package ego

import "errors"

// ErrInvalidInput indicates a malformed Config, empty variable spec, or
// an objective callable that returned a shape the driver did not ask for.
var ErrInvalidInput = errors.New("ego: invalid input")

// ErrOptimizerFailure indicates the acquisition optimizer failed (a
// non-finite value or a local-search failure) at every one of its
// multi-start attempts. Starts that finish without improving on their
// initial point still count as successful and do not produce it.
var ErrOptimizerFailure = errors.New("ego: acquisition optimizer failure")

// ErrClusteringFailure names a surrogate training failure. Run does not
// return it: it does not retry training with a reduced k or a simpler
// basis, and returns the training error from package moe unwrapped.
var ErrClusteringFailure = errors.New("ego: surrogate training failure")

// ErrBudgetExhausted is not a failure: it is a terminal condition,
// meaning Run returns the best point found so far rather than this
// error. It is exported so a Trace hook or caller-side logging can name
// the termination reason precisely.
var ErrBudgetExhausted = errors.New("ego: evaluation budget exhausted")
