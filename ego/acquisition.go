// SPDX-License-Identifier: MIT
package ego

import (
	"math"

	"github.com/jonaspleyer/egobox/moe"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

var standardNormal = distuv.Normal{Mu: 0, Sigma: 1}

// expectedImprovement evaluates EI(x) given the objective surrogate's
// mean/std at x and the current incumbent f*.
func expectedImprovement(mu, std, fStar float64) float64 {
	if std <= 0 {
		return 0
	}
	delta := fStar - mu
	u := delta / std
	return delta*standardNormal.CDF(u) + std*standardNormal.Prob(u)
}

// feasibilityWeight returns ∏ Φ(−μ_gi(x)/s_gi(x)), the joint probability
// every constraint surrogate predicts x feasible (g_i(x) <= 0).
func feasibilityWeight(constraintMeans, constraintStds []float64) float64 {
	w := 1.0
	for i, mu := range constraintMeans {
		s := constraintStds[i]
		if s <= 0 {
			if mu <= 0 {
				continue
			}
			return 0
		}
		w *= standardNormal.CDF(-mu / s)
	}
	return w
}

// acquisitionEvaluator closes over the trained surrogates and the
// current incumbent/alpha so the optimizer's objective closure stays a
// pure function of a single internal-space point.
type acquisitionEvaluator struct {
	objective   *moe.MoE
	constraints []*moe.MoE
	strategy    InfillStrategy
	fStar       float64
	alpha       float64 // only meaningful for WB2S
}

// evaluate returns the acquisition value at a single internal-space
// point z (not a batch); used by both the optimizer's objective
// closure and the post-optimization re-evaluation check.
func (ev *acquisitionEvaluator) evaluate(z []float64) (float64, error) {
	zm := mat.NewDense(1, len(z), z)

	mean, err := ev.objective.PredictMean(zm)
	if err != nil {
		return 0, err
	}
	variance, err := ev.objective.PredictVar(zm)
	if err != nil {
		return 0, err
	}
	mu := mean.At(0, 0)
	std := math.Sqrt(math.Max(0, variance.At(0, 0)))

	ei := expectedImprovement(mu, std, ev.fStar)

	var value float64
	switch ev.strategy {
	case EI:
		value = ei
	case WB2:
		value = ei - mu
	case WB2S:
		value = ei - ev.alpha*mu
	default:
		value = ei
	}

	if len(ev.constraints) > 0 {
		cMeans := make([]float64, len(ev.constraints))
		cStds := make([]float64, len(ev.constraints))
		for i, c := range ev.constraints {
			cm, err := c.PredictMean(zm)
			if err != nil {
				return 0, err
			}
			cv, err := c.PredictVar(zm)
			if err != nil {
				return 0, err
			}
			cMeans[i] = cm.At(0, 0)
			cStds[i] = math.Sqrt(math.Max(0, cv.At(0, 0)))
		}
		value *= feasibilityWeight(cMeans, cStds)
	}

	return value, nil
}

// resolveAlpha computes WB2S's scaling once per iteration so
// |alpha*mu(x0)| ~= |EI(x0)| at the incumbent x0.
func resolveAlpha(objective *moe.MoE, x0 []float64, fStar float64) (float64, error) {
	zm := mat.NewDense(1, len(x0), x0)
	mean, err := objective.PredictMean(zm)
	if err != nil {
		return 0, err
	}
	variance, err := objective.PredictVar(zm)
	if err != nil {
		return 0, err
	}
	mu := mean.At(0, 0)
	std := math.Sqrt(math.Max(0, variance.At(0, 0)))
	ei := expectedImprovement(mu, std, fStar)
	if math.Abs(mu) < 1e-12 {
		return 0, nil
	}
	return math.Abs(ei) / math.Abs(mu), nil
}
