// SPDX-License-Identifier: MIT
package moe

import "errors"

// ErrInvalidInput indicates a shape mismatch or an out-of-range config
// value (n_clusters <= 0, empty regression/correlation spec sets,
// kpls_dim <= 0 when set).
var ErrInvalidInput = errors.New("moe: invalid input")

// ErrNoViableSpec indicates every (regression, correlation) combination
// in the allowed spec sets failed to fit on a cluster's points (too few
// points for any basis, or every candidate was ill-conditioned).
var ErrNoViableSpec = errors.New("moe: no viable regression/correlation spec")

// ErrClusterTraining indicates a cluster's GP failed to train after a
// viable (regression, correlation) spec was already selected for it;
// the error wraps the underlying gp failure with the offending cluster
// index so callers can errors.Is this class without depending on gp's
// own sentinels.
var ErrClusterTraining = errors.New("moe: cluster training failed")
