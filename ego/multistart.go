// SPDX-License-Identifier: MIT
package ego

import (
	"math"
	"math/rand"
	"runtime"
	"sync"

	"github.com/jonaspleyer/egobox/optimizer"
	"github.com/jonaspleyer/egobox/rng"
)

type startResult struct {
	x     []float64
	value float64
	ok    bool
}

// maximizeAcquisition runs nStarts local optimizations of ev.evaluate
// from independent random starting points inside bounds, fanned out on
// a worker pool bounded by GOMAXPROCS, and reduces to a single
// deterministic winner by (value, start-index) so the selection does
// not depend on goroutine scheduling order.
func maximizeAcquisition(ev *acquisitionEvaluator, bounds optimizer.Bounds, nStarts int, base *rand.Rand, optKind optimizer.Kind, maxEvaluations int) ([]float64, float64, error) {
	d := len(bounds)
	starts := make([][]float64, nStarts)
	for i := 0; i < nStarts; i++ {
		r := rng.Derive(base, uint64(i))
		x0 := make([]float64, d)
		for j, b := range bounds {
			x0[j] = b[0] + r.Float64()*(b[1]-b[0])
		}
		starts[i] = x0
	}

	results := make([]startResult, nStarts)

	workers := runtime.GOMAXPROCS(0)
	if workers > nStarts {
		workers = nStarts
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				objective := func(x []float64) float64 {
					v, err := ev.evaluate(x)
					if err != nil {
						return math.Inf(1)
					}
					return -v // optimizer.Minimize minimizes; acquisition is maximized
				}
				settings := optimizer.DefaultSettings(d)
				if maxEvaluations > 0 {
					settings.MaxEvaluations = maxEvaluations
				}
				res, err := optimizer.Minimize(optKind, objective, starts[idx], bounds, settings)
				if err != nil {
					results[idx] = startResult{ok: false}
					continue
				}
				results[idx] = startResult{x: res.X, value: -res.F, ok: true}
			}
		}()
	}
	for i := 0; i < nStarts; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	bestIdx := -1
	for i, r := range results {
		if !r.ok {
			continue
		}
		if bestIdx == -1 || r.value > results[bestIdx].value {
			bestIdx = i
		}
	}
	if bestIdx == -1 {
		return nil, 0, ErrOptimizerFailure
	}
	return results[bestIdx].x, results[bestIdx].value, nil
}
