// SPDX-License-Identifier: MIT
package optimizer

import "errors"

// ErrInvalidInput indicates a shape mismatch between x0 and bounds, or
// an empty bounds list.
var ErrInvalidInput = errors.New("optimizer: invalid input")

// ErrOptimizerFailure indicates the underlying gonum/optimize run
// reported a non-finite result or an unrecoverable method failure.
var ErrOptimizerFailure = errors.New("optimizer: local search failed")
