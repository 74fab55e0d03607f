// Package sweep runs a scheduler across a range of cluster capacities and
// collects how completion time and utilization trade off against size.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sherine-k/clustersim/pkg/log"
	"github.com/sherine-k/clustersim/pkg/metrics"
	"github.com/sherine-k/clustersim/pkg/simulation"
)

// Options controls a sweep
type Options struct {
	Capacities []int
	// TimeUnit converts simulated seconds for reporting, e.g. time.Minute
	TimeUnit time.Duration
	// Workers bounds how many runs execute concurrently
	Workers int
	// Multiplier is recorded on the series; the workload is expected to be repeated already
	Multiplier int
}

// Point is the outcome of one capacity
type Point struct {
	Capacity          int     `json:"capacity"`
	Duration          float64 `json:"duration"`
	Parallelism       float64 `json:"parallelism"`
	Efficiency        float64 `json:"efficiency"`
	ResourceFootprint float64 `json:"resource_footprint"`
	TaskFootprint     float64 `json:"task_footprint"`
}

// Series is one scheduler swept over every capacity
type Series struct {
	Scheduler      string  `json:"scheduler"`
	NumTasks       int     `json:"num_tests"`
	Multiplier     int     `json:"multiplier"`
	SerialDuration float64 `json:"serial_duration"`
	Points         []Point `json:"points"`
	// Capacities the scheduler could not use, e.g. not a multiple of the largest task
	Skipped []int `json:"skipped,omitempty"`
}

// Capacities lists min..max inclusive in increments of step
func Capacities(min, max, step int) []int {
	capacities := []int{}
	if step <= 0 {
		return capacities
	}
	for c := min; c <= max; c += step {
		capacities = append(capacities, c)
	}
	return capacities
}

// Run simulates tasks with scheduler at every capacity in opts. Each run owns
// its own timeline and resource pool, so runs proceed in parallel.
func Run(ctx context.Context, scheduler simulation.Scheduler, tasks []simulation.Task, opts Options) (*Series, error) {
	if opts.TimeUnit <= 0 {
		opts.TimeUnit = time.Second
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}

	serial, err := simulation.RunSequential(tasks)
	if err != nil {
		return nil, fmt.Errorf("failed to compute serial baseline: %w", err)
	}
	unit := opts.TimeUnit.Seconds()
	serialDuration := serial.Duration / unit

	logger := log.WithComponent("sweep").With().Str("scheduler", scheduler.Name()).Logger()

	results := make([]*simulation.Result, len(opts.Capacities))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for i, capacity := range opts.Capacities {
		i, capacity := i, capacity
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			timer := metrics.NewTimer()
			result, err := scheduler.Run(tasks, capacity)
			if errors.Is(err, simulation.ErrInvalidCapacity) {
				metrics.RecordFailure(scheduler.Name())
				logger.Warn().Err(err).Int("capacity", capacity).Msg("capacity skipped")
				return nil
			}
			if err != nil {
				metrics.RecordFailure(scheduler.Name())
				return fmt.Errorf("capacity %d: %w", capacity, err)
			}
			metrics.RecordRun(scheduler.Name(), capacity, result.Duration, result.Efficiency, timer)

			logger.Debug().
				Int("capacity", capacity).
				Float64("duration", result.Duration).
				Float64("efficiency", result.Efficiency).
				Msg("point simulated")

			results[i] = &result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Errorf("sweep aborted", err)
		return nil, err
	}

	series := &Series{
		Scheduler:      scheduler.Name(),
		NumTasks:       len(tasks),
		Multiplier:     opts.Multiplier,
		SerialDuration: serialDuration,
		Points:         []Point{},
	}
	for i, result := range results {
		if result == nil {
			series.Skipped = append(series.Skipped, opts.Capacities[i])
			continue
		}
		duration := result.Duration / unit
		series.Points = append(series.Points, Point{
			Capacity:          result.Capacity,
			Duration:          duration,
			Parallelism:       serialDuration / duration,
			Efficiency:        result.Efficiency,
			ResourceFootprint: result.ResourceFootprint,
			TaskFootprint:     result.TaskFootprint,
		})
	}
	sort.Slice(series.Points, func(i, j int) bool {
		return series.Points[i].Capacity < series.Points[j].Capacity
	})
	sort.Ints(series.Skipped)

	logger.Info().
		Int("tasks", len(tasks)).
		Int("points", len(series.Points)).
		Int("skipped", len(series.Skipped)).
		Msg("sweep finished")

	return series, nil
}

// Report is the column-oriented form of a series, one array per measure
type Report struct {
	NumTests           int       `json:"num_tests"`
	SerialDuration     float64   `json:"serial_duration"`
	Scheduler          string    `json:"scheduler"`
	Multiplier         int       `json:"multiplier"`
	Nodes              []int     `json:"nodes"`
	Wallclock          []float64 `json:"wallclock"`
	Parallelism        []float64 `json:"parallelism"`
	ResourceEfficiency []float64 `json:"resource_efficiency"`
}

// Report converts the series into its column-oriented form
func (s *Series) Report() Report {
	r := Report{
		NumTests:           s.NumTasks,
		SerialDuration:     s.SerialDuration,
		Scheduler:          s.Scheduler,
		Multiplier:         s.Multiplier,
		Nodes:              make([]int, 0, len(s.Points)),
		Wallclock:          make([]float64, 0, len(s.Points)),
		Parallelism:        make([]float64, 0, len(s.Points)),
		ResourceEfficiency: make([]float64, 0, len(s.Points)),
	}
	for _, p := range s.Points {
		r.Nodes = append(r.Nodes, p.Capacity)
		r.Wallclock = append(r.Wallclock, p.Duration)
		r.Parallelism = append(r.Parallelism, p.Parallelism)
		r.ResourceEfficiency = append(r.ResourceEfficiency, p.Efficiency)
	}
	return r
}
