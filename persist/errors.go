// SPDX-License-Identifier: MIT
package persist

import "errors"

// ErrUnsupportedVersion indicates a payload's FormatVersion does not
// match any version this build knows how to decode.
var ErrUnsupportedVersion = errors.New("persist: unsupported format version")

// ErrInvalidInput indicates a nil model was passed to Serialize, or a
// payload decoded with internally inconsistent shapes.
var ErrInvalidInput = errors.New("persist: invalid input")
