// SPDX-License-Identifier: MIT
package mixture

import "errors"

// ErrInvalidInput indicates a shape mismatch, n_clusters <= 0, or more
// clusters requested than data points.
var ErrInvalidInput = errors.New("mixture: invalid input")

// ErrClusteringFailure indicates EM failed to converge to a
// non-singular fit after exhausting its restart budget.
var ErrClusteringFailure = errors.New("mixture: clustering failed to converge")
