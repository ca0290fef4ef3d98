package arena

import (
	"context"
	"fmt"
	"sync"

	"github.com/san-kum/fieldpong/internal/config"
	"github.com/san-kum/fieldpong/internal/metrics"
)

// Ensemble plays the same configuration over consecutive seeds, one
// goroutine per match. Every match owns its world and rng; engine
// construction is serialized inside the physics package.
type Ensemble struct {
	cfg       config.Config
	numRuns   int
	seedStart int64
}

func NewEnsemble(cfg *config.Config, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{cfg: *cfg, numRuns: numRuns, seedStart: seedStart}
}

// Run plays every match for duration seconds with the autopilot on the player
// paddle. Results are in seed order.
func (e *Ensemble) Run(ctx context.Context, duration float64) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := e.cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			w, err := New(&cfgCopy, Options{})
			if err != nil {
				errs[idx] = err
				return
			}
			defer w.Close()
			w.SetInput(NewAutopilot(w))

			r := NewRunner(w)
			r.SampleEvery(int(1 / cfgCopy.Dt))
			for _, m := range metrics.Standard() {
				r.AddMetric(m)
			}
			results[idx], errs[idx] = r.Run(ctx, duration)
		}(i)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("seed %d: %w", e.seedStart+int64(i), err)
		}
	}
	return results, nil
}
