package arena

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/fieldpong/internal/metrics"
	"github.com/san-kum/fieldpong/internal/round"
	"github.com/sirupsen/logrus"
)

// Result is the record of one headless run.
type Result struct {
	Samples []metrics.Sample
	Metrics map[string]float64
	Final   round.Status
	Frames  int
	Errors  []error
}

// Runner steps a World at a fixed dt and records samples and metrics.
type Runner struct {
	world   *World
	metrics []metrics.Metric
	every   int
}

func NewRunner(w *World) *Runner {
	return &Runner{world: w, every: 1}
}

func (r *Runner) AddMetric(m metrics.Metric) { r.metrics = append(r.metrics, m) }

// SampleEvery records one sample per n frames. Metrics still see every frame.
func (r *Runner) SampleEvery(n int) {
	if n < 1 {
		n = 1
	}
	r.every = n
}

// Run steps for the given duration in seconds, or until the round is over
// when duration is zero. It stops early when ctx is done or the game ends,
// returning what was recorded so far.
func (r *Runner) Run(ctx context.Context, duration float64) (*Result, error) {
	dt := r.world.cfg.Dt
	if dt <= 0 {
		return nil, fmt.Errorf("dt must be positive, got %f", dt)
	}
	if duration < 0 {
		return nil, fmt.Errorf("duration must not be negative, got %f", duration)
	}

	steps := -1
	capacity := 1024
	if duration > 0 {
		steps = int(math.Round(duration / dt))
		capacity = steps/r.every + 1
	}
	result := &Result{
		Samples: make([]metrics.Sample, 0, capacity),
		Metrics: make(map[string]float64),
	}
	for _, m := range r.metrics {
		m.Reset()
	}

	record := func() {
		s := r.world.Sample()
		for _, m := range r.metrics {
			m.Observe(s)
		}
		if result.Frames%r.every == 0 {
			result.Samples = append(result.Samples, s)
		}
	}
	record()

	var err error
	for i := 0; steps < 0 || i < steps; i++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
			break
		}
		if stepErr := r.world.Step(dt); stepErr != nil {
			result.Errors = append(result.Errors, stepErr)
		}
		result.Frames++
		record()
		if r.world.Over() {
			break
		}
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	result.Final = r.world.Round.Status()

	r.world.log.WithFields(logrus.Fields{
		"frames": result.Frames,
		"level":  result.Final.Level,
		"points": result.Final.Points,
		"errors": len(result.Errors),
	}).Debug("run finished")
	return result, err
}
