// SPDX-License-Identifier: MIT
package persist

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"

	"github.com/jonaspleyer/egobox/gp"
	"github.com/jonaspleyer/egobox/linalg"
)

// gpFormatVersion is bumped whenever gpSnapshot's shape changes in a
// way older readers cannot interpret.
const gpFormatVersion = 1

type gpSnapshot struct {
	FormatVersion int

	Theta  []float64
	Basis  uint8
	Kernel uint8

	XnMean, XnStd []float64
	XnData        denseSnapshot
	YnMean, YnStd []float64
	YnData        denseSnapshot

	Sigma2 []float64
	Beta   denseSnapshot
	Gamma  denseSnapshot
	Lr     triSnapshot
	Ft     denseSnapshot
	Rf     denseSnapshot
	DetR   float64
}

// buildGPSnapshot converts model into its gob-friendly shadow. Shared
// by SerializeGP and SerializeMoE (one cluster GP snapshot per expert).
func buildGPSnapshot(model *gp.GP) (gpSnapshot, error) {
	if model == nil {
		return gpSnapshot{}, fmt.Errorf("buildGPSnapshot: %w", ErrInvalidInput)
	}
	return gpSnapshot{
		FormatVersion: gpFormatVersion,
		Theta:         model.Theta,
		Basis:         uint8(model.Basis),
		Kernel:        uint8(model.Kernel),
		XnMean:        model.Xn.Mean,
		XnStd:         model.Xn.Std,
		XnData:        snapshotDense(model.Xn.Data),
		YnMean:        model.Yn.Mean,
		YnStd:         model.Yn.Std,
		YnData:        snapshotDense(model.Yn.Data),
		Sigma2:        model.Inner.Sigma2,
		Beta:          snapshotDense(model.Inner.Beta),
		Gamma:         snapshotDense(model.Inner.Gamma),
		Lr:            snapshotTri(model.Inner.Lr),
		Ft:            snapshotDense(model.Inner.Ft),
		Rf:            snapshotDense(model.Inner.Rf),
		DetR:          model.Inner.DetR,
	}, nil
}

// restoreGP reconstructs a *gp.GP from its decoded shadow. Shared by
// DeserializeGP and DeserializeMoE.
func restoreGP(snap gpSnapshot) (*gp.GP, error) {
	return &gp.GP{
		Theta:  snap.Theta,
		Basis:  linalg.BasisKind(snap.Basis),
		Kernel: linalg.KernelKind(snap.Kernel),
		Xn: &linalg.Normalized{
			Data: snap.XnData.restore(),
			Mean: snap.XnMean,
			Std:  snap.XnStd,
		},
		Yn: &linalg.Normalized{
			Data: snap.YnData.restore(),
			Mean: snap.YnMean,
			Std:  snap.YnStd,
		},
		Inner: &gp.InnerParams{
			Sigma2: snap.Sigma2,
			Beta:   snap.Beta.restore(),
			Gamma:  snap.Gamma.restore(),
			Lr:     snap.Lr.restore(),
			Ft:     snap.Ft.restore(),
			Rf:     snap.Rf.restore(),
			DetR:   snap.DetR,
		},
	}, nil
}

// SerializeGP writes model to w as a version-tagged gob payload.
func SerializeGP(w io.Writer, model *gp.GP) error {
	snap, err := buildGPSnapshot(model)
	if err != nil {
		return fmt.Errorf("SerializeGP: %w", err)
	}
	return gob.NewEncoder(w).Encode(snap)
}

// DeserializeGP reads a payload written by SerializeGP and reconstructs
// the GP. Returns ErrUnsupportedVersion if the payload's FormatVersion
// does not match gpFormatVersion.
func DeserializeGP(r io.Reader) (*gp.GP, error) {
	var snap gpSnapshot
	if err := gob.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("DeserializeGP: %w", err)
	}
	if snap.FormatVersion != gpFormatVersion {
		return nil, fmt.Errorf("DeserializeGP: got version %d, want %d: %w", snap.FormatVersion, gpFormatVersion, ErrUnsupportedVersion)
	}
	return restoreGP(snap)
}

// MarshalGP and UnmarshalGP offer the in-memory []byte convenience most
// callers want over the io.Writer/io.Reader forms.
func MarshalGP(model *gp.GP) ([]byte, error) {
	var buf bytes.Buffer
	if err := SerializeGP(&buf, model); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func UnmarshalGP(data []byte) (*gp.GP, error) {
	return DeserializeGP(bytes.NewReader(data))
}
