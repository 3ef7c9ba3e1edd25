// SPDX-License-Identifier: MIT
package moe

import (
	"fmt"
	"math"

	"github.com/jonaspleyer/egobox/gp"
	"github.com/jonaspleyer/egobox/linalg"
	"github.com/jonaspleyer/egobox/mixture"
	"github.com/jonaspleyer/egobox/rng"
	"gonum.org/v1/gonum/mat"
)

// Cluster is one trained expert: a GP together with the (basis, kernel)
// pair cross-validation selected for it.
type Cluster struct {
	GP     *gp.GP
	Basis  linalg.BasisKind
	Kernel linalg.KernelKind
}

// Clustering is the gate (mixture) plus the argmax assignment of every
// training row, returned by Train and reusable via TrainOnClusters.
type Clustering struct {
	Mixture     *mixture.Mixture
	Assignments []int
}

// MoE is a trained mixture-of-experts surrogate.
type MoE struct {
	Params     *Params
	Clusters   []Cluster
	Clustering *Clustering // nil when Params.NClusters == 1
	KPLS       *kplsProjection
	XDim       int
}

func (p *Params) gpExtraOptions() []gp.Option {
	var opts []gp.Option
	if len(p.ThetaFixed) > 0 {
		opts = append(opts, gp.WithThetaFixed(p.ThetaFixed))
	} else {
		opts = append(opts, gp.WithThetaLog10Bounds(p.ThetaLog10Bounds[0], p.ThetaLog10Bounds[1]))
	}
	return opts
}

func validateParams(n int, p *Params) error {
	if n == 0 || p.NClusters <= 0 || p.NClusters > n {
		return fmt.Errorf("moe: n=%d n_clusters=%d: %w", n, p.NClusters, ErrInvalidInput)
	}
	if p.RegressionSpec == 0 || p.CorrelationSpec == 0 {
		return fmt.Errorf("moe: empty regression/correlation spec: %w", ErrInvalidInput)
	}
	if p.KPLSDim < 0 {
		return fmt.Errorf("moe: kpls_dim must be > 0 when set: %w", ErrInvalidInput)
	}
	return nil
}

// Train fits the MoE surrogate on (X,Y): optionally projects X through
// KPLS, fits the gate (when NClusters>1), partitions by argmax
// responsibility, then trains one cross-validated GP per cluster (or a
// single global GP when NClusters==1).
func Train(X, Y *mat.Dense, params *Params) (*MoE, error) {
	n, _ := X.Dims()
	if err := validateParams(n, params); err != nil {
		return nil, err
	}

	Xeff, kplsProj := applyKPLS(X, Y, params)

	if params.NClusters == 1 {
		extra := params.gpExtraOptions()
		cand, err := selectSpec(Xeff, Y, params.RegressionSpec, params.CorrelationSpec, extra)
		if err != nil {
			return nil, err
		}
		opts := append([]gp.Option{gp.WithBasis(cand.Basis), gp.WithKernel(cand.Kernel)}, extra...)
		model, err := gp.Fit(Xeff, Y, opts...)
		if err != nil {
			return nil, fmt.Errorf("moe: cluster %d: %w: %w", 0, ErrClusterTraining, err)
		}
		return &MoE{
			Params:   params,
			Clusters: []Cluster{{GP: model, Basis: cand.Basis, Kernel: cand.Kernel}},
			KPLS:     kplsProj,
			XDim:     colsOf(Xeff),
		}, nil
	}

	base := rng.New(params.Seed)
	mixCfg := mixture.NewConfig(mixture.WithNClusters(params.NClusters), mixture.WithRNG(base))
	mix, err := mixture.Fit(Xeff, Y, mixCfg)
	if err != nil {
		return nil, err
	}
	assignments, err := mix.ArgmaxAssignments(Xeff)
	if err != nil {
		return nil, err
	}
	clustering := &Clustering{Mixture: mix, Assignments: assignments}

	return TrainOnClusters(X, Y, params, clustering)
}

// TrainOnClusters trains per-cluster GPs from a precomputed Clustering,
// skipping the (expensive) gate re-fit. Used by the EGO driver to
// refresh experts each iteration without re-clustering.
func TrainOnClusters(X, Y *mat.Dense, params *Params, clustering *Clustering) (*MoE, error) {
	n, _ := X.Dims()
	if err := validateParams(n, params); err != nil {
		return nil, err
	}
	if clustering == nil || len(clustering.Assignments) != n {
		return nil, fmt.Errorf("moe: clustering assignment count mismatch: %w", ErrInvalidInput)
	}

	Xeff, kplsProj := applyKPLS(X, Y, params)
	_, k := Y.Dims()
	nClusters := params.NClusters
	extra := params.gpExtraOptions()

	byCluster := make([][]int, nClusters)
	for i, c := range clustering.Assignments {
		byCluster[c] = append(byCluster[c], i)
	}

	clusters := make([]Cluster, nClusters)
	for c := 0; c < nClusters; c++ {
		idx := byCluster[c]
		if len(idx) == 0 {
			return nil, fmt.Errorf("moe: cluster %d has no points: %w", c, ErrInvalidInput)
		}
		d := colsOf(Xeff)
		Xc := subRows(Xeff, idx, d)
		Yc := subRows(Y, idx, k)

		cand, err := selectSpec(Xc, Yc, params.RegressionSpec, params.CorrelationSpec, extra)
		if err != nil {
			return nil, fmt.Errorf("moe: cluster %d: %w", c, err)
		}
		opts := append([]gp.Option{gp.WithBasis(cand.Basis), gp.WithKernel(cand.Kernel)}, extra...)
		model, err := gp.Fit(Xc, Yc, opts...)
		if err != nil {
			return nil, fmt.Errorf("moe: cluster %d: %w: %w", c, ErrClusterTraining, err)
		}
		clusters[c] = Cluster{GP: model, Basis: cand.Basis, Kernel: cand.Kernel}
	}

	return &MoE{
		Params:     params,
		Clusters:   clusters,
		Clustering: clustering,
		KPLS:       kplsProj,
		XDim:       colsOf(Xeff),
	}, nil
}

func applyKPLS(X, Y *mat.Dense, params *Params) (*mat.Dense, *kplsProjection) {
	if params.KPLSDim <= 0 {
		return X, nil
	}
	proj := fitKPLS(X, columnMeans(Y), params.KPLSDim)
	return proj.Apply(X), proj
}

func colsOf(M *mat.Dense) int {
	_, c := M.Dims()
	return c
}

// PredictMean returns the recombined posterior mean at each row of X
// (m x d_user, raw units before any KPLS projection).
func (m *MoE) PredictMean(X *mat.Dense) (*mat.Dense, error) {
	Xeff := m.project(X)
	if len(m.Clusters) == 1 {
		return m.Clusters[0].GP.PredictMean(Xeff)
	}

	resp, err := m.Clustering.Mixture.Responsibilities(Xeff)
	if err != nil {
		return nil, err
	}
	weights := recombinationWeights(resp, m.Params.Recombination, m.Params.Eta)

	means := make([]*mat.Dense, len(m.Clusters))
	for c, cluster := range m.Clusters {
		mean, err := cluster.GP.PredictMean(Xeff)
		if err != nil {
			return nil, err
		}
		means[c] = mean
	}

	outRows, outCols := means[0].Dims()
	out := mat.NewDense(outRows, outCols, nil)
	for i := 0; i < outRows; i++ {
		for c := range m.Clusters {
			w := weights.At(i, c)
			for j := 0; j < outCols; j++ {
				out.Set(i, j, out.At(i, j)+w*means[c].At(i, j))
			}
		}
	}
	return out, nil
}

// PredictVar returns the recombined posterior variance at each row of
// X. Under Smooth recombination this includes the between-cluster
// variance term Σ_c w_c*(mu_c - mu_bar)^2.
func (m *MoE) PredictVar(X *mat.Dense) (*mat.Dense, error) {
	Xeff := m.project(X)
	if len(m.Clusters) == 1 {
		return m.Clusters[0].GP.PredictVar(Xeff)
	}

	resp, err := m.Clustering.Mixture.Responsibilities(Xeff)
	if err != nil {
		return nil, err
	}
	weights := recombinationWeights(resp, m.Params.Recombination, m.Params.Eta)

	means := make([]*mat.Dense, len(m.Clusters))
	variances := make([]*mat.Dense, len(m.Clusters))
	for c, cluster := range m.Clusters {
		mean, err := cluster.GP.PredictMean(Xeff)
		if err != nil {
			return nil, err
		}
		variance, err := cluster.GP.PredictVar(Xeff)
		if err != nil {
			return nil, err
		}
		means[c] = mean
		variances[c] = variance
	}

	rows, cols := means[0].Dims()
	meanBar := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for c := range m.Clusters {
			w := weights.At(i, c)
			for j := 0; j < cols; j++ {
				meanBar.Set(i, j, meanBar.At(i, j)+w*means[c].At(i, j))
			}
		}
	}

	out := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for c := range m.Clusters {
			w := weights.At(i, c)
			for j := 0; j < cols; j++ {
				between := means[c].At(i, j) - meanBar.At(i, j)
				v := w*variances[c].At(i, j) + w*between*between
				out.Set(i, j, out.At(i, j)+v)
			}
		}
	}
	return out, nil
}

func (m *MoE) project(X *mat.Dense) *mat.Dense {
	if m.KPLS == nil {
		return X
	}
	return m.KPLS.Apply(X)
}

// recombinationWeights turns raw responsibilities into recombination
// weights: Hard one-hots the argmax column; Smooth raises each
// responsibility to 1/eta and renormalizes (eta==0 degenerates to Hard).
func recombinationWeights(resp *mat.Dense, kind RecombinationKind, eta float64) *mat.Dense {
	rows, cols := resp.Dims()
	out := mat.NewDense(rows, cols, nil)
	if kind == Hard || eta == 0 {
		for i := 0; i < rows; i++ {
			best, bestV := 0, resp.At(i, 0)
			for c := 1; c < cols; c++ {
				if v := resp.At(i, c); v > bestV {
					best, bestV = c, v
				}
			}
			out.Set(i, best, 1)
		}
		return out
	}

	power := 1.0 / eta
	for i := 0; i < rows; i++ {
		sum := 0.0
		raised := make([]float64, cols)
		for c := 0; c < cols; c++ {
			raised[c] = math.Pow(resp.At(i, c), power)
			sum += raised[c]
		}
		if sum <= 0 {
			sum = 1
		}
		for c := 0; c < cols; c++ {
			out.Set(i, c, raised[c]/sum)
		}
	}
	return out
}
