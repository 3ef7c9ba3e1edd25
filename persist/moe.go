// SPDX-License-Identifier: MIT
package persist

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"

	"github.com/jonaspleyer/egobox/linalg"
	"github.com/jonaspleyer/egobox/mixture"
	"github.com/jonaspleyer/egobox/moe"
)

const moeFormatVersion = 1

type clusterSnapshot struct {
	GP     gpSnapshot
	Basis  uint8
	Kernel uint8
}

type componentSnapshot struct {
	Weight float64
	Mean   []float64
	Cov    symSnapshot
}

type kplsSnapshot struct {
	Weights denseSnapshot
	Mean    []float64
}

type moeSnapshot struct {
	FormatVersion int

	NClusters       int
	RegressionSpec  uint8
	CorrelationSpec uint8
	Recombination   int
	Eta             float64
	XDim            int

	Clusters []clusterSnapshot

	HasClustering bool
	Components    []componentSnapshot
	MixtureXDim   int
	MixtureYDim   int
	Assignments   []int

	HasKPLS bool
	KPLS    kplsSnapshot
}

// SerializeMoE writes model to w as a version-tagged gob payload
// capturing every cluster GP, the gate (when NClusters>1), and the KPLS
// projection (when enabled).
func SerializeMoE(w io.Writer, model *moe.MoE) error {
	if model == nil {
		return fmt.Errorf("SerializeMoE: %w", ErrInvalidInput)
	}

	snap := moeSnapshot{
		FormatVersion:   moeFormatVersion,
		NClusters:       model.Params.NClusters,
		RegressionSpec:  uint8(model.Params.RegressionSpec),
		CorrelationSpec: uint8(model.Params.CorrelationSpec),
		Recombination:   int(model.Params.Recombination),
		Eta:             model.Params.Eta,
		XDim:            model.XDim,
	}

	for _, c := range model.Clusters {
		gpSnap, err := buildGPSnapshot(c.GP)
		if err != nil {
			return err
		}
		snap.Clusters = append(snap.Clusters, clusterSnapshot{
			GP:     gpSnap,
			Basis:  uint8(c.Basis),
			Kernel: uint8(c.Kernel),
		})
	}

	if model.Clustering != nil {
		snap.HasClustering = true
		snap.Assignments = model.Clustering.Assignments
		snap.MixtureXDim = model.Clustering.Mixture.XDim
		snap.MixtureYDim = model.Clustering.Mixture.YDim
		for _, comp := range model.Clustering.Mixture.Components {
			snap.Components = append(snap.Components, componentSnapshot{
				Weight: comp.Weight,
				Mean:   comp.Mean,
				Cov:    snapshotSym(comp.Cov),
			})
		}
	}

	if model.KPLS != nil {
		snap.HasKPLS = true
		snap.KPLS = kplsSnapshot{Weights: snapshotDense(model.KPLS.Weights), Mean: model.KPLS.Mean}
	}

	return gob.NewEncoder(w).Encode(snap)
}

// DeserializeMoE reads a payload written by SerializeMoE and
// reconstructs the MoE, including its gate and KPLS projection.
func DeserializeMoE(r io.Reader) (*moe.MoE, error) {
	var snap moeSnapshot
	if err := gob.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("DeserializeMoE: %w", err)
	}
	if snap.FormatVersion != moeFormatVersion {
		return nil, fmt.Errorf("DeserializeMoE: got version %d, want %d: %w", snap.FormatVersion, moeFormatVersion, ErrUnsupportedVersion)
	}

	params := moe.NewParams(
		moe.WithNClusters(snap.NClusters),
		moe.WithRegressionSpec(linalg.BasisKind(snap.RegressionSpec)),
		moe.WithCorrelationSpec(linalg.KernelKind(snap.CorrelationSpec)),
		moe.WithRecombination(moe.RecombinationKind(snap.Recombination), snap.Eta),
	)

	clusters := make([]moe.Cluster, len(snap.Clusters))
	for i, cs := range snap.Clusters {
		model, err := restoreGP(cs.GP)
		if err != nil {
			return nil, err
		}
		clusters[i] = moe.Cluster{GP: model, Basis: linalg.BasisKind(cs.Basis), Kernel: linalg.KernelKind(cs.Kernel)}
	}

	result := &moe.MoE{Params: params, Clusters: clusters, XDim: snap.XDim}

	if snap.HasClustering {
		components := make([]mixture.Component, len(snap.Components))
		for i, cs := range snap.Components {
			comp, err := mixture.RebuildComponent(cs.Weight, cs.Mean, cs.Cov.restore(), snap.MixtureXDim)
			if err != nil {
				return nil, fmt.Errorf("DeserializeMoE: %w", err)
			}
			components[i] = comp
		}
		result.Clustering = &moe.Clustering{
			Mixture:     &mixture.Mixture{Components: components, XDim: snap.MixtureXDim, YDim: snap.MixtureYDim},
			Assignments: snap.Assignments,
		}
	}

	if snap.HasKPLS {
		result.KPLS = moe.RebuildKPLS(snap.KPLS.Weights.restore(), snap.KPLS.Mean)
	}

	return result, nil
}

func MarshalMoE(model *moe.MoE) ([]byte, error) {
	var buf bytes.Buffer
	if err := SerializeMoE(&buf, model); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func UnmarshalMoE(data []byte) (*moe.MoE, error) {
	return DeserializeMoE(bytes.NewReader(data))
}
