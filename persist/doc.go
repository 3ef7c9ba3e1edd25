// SPDX-License-Identifier: MIT
// Package persist serializes trained gp.GP and moe.MoE surrogates to a
// version-tagged encoding/gob payload and restores them, so a surrogate
// trained once (potentially expensively, via cross-validated spec
// selection) can be reused across process restarts without retraining.
//
// Every payload begins with a FormatVersion field checked on decode;
// Deserialize* functions return ErrUnsupportedVersion for any version
// this build does not recognize, rather than attempting a best-effort
// decode of an unknown layout.
package persist
