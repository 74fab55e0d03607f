package simulation

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/sherine-k/clustersim/pkg/log"
)

// FallbackPolicy picks the on-demand candidate when no pending task fits
type FallbackPolicy string

const (
	// FallbackLast takes the final task of the pending sequence
	FallbackLast FallbackPolicy = "last"
	// FallbackSmallest takes the first task with the smallest resource requirement
	FallbackSmallest FallbackPolicy = "smallest"
)

// OnDemand admits tasks as soon as resource is available, always picking
// the most resource-hungry pending task that fits.
type OnDemand struct {
	fallback FallbackPolicy
}

// NewOnDemand creates an on-demand scheduler
func NewOnDemand(fallback FallbackPolicy) *OnDemand {
	return &OnDemand{fallback: fallback}
}

// Name returns the scheduler kind
func (s *OnDemand) Name() string {
	return string(KindOnDemand)
}

// Run simulates tasks on a cluster of capacity units and scores the run
func (s *OnDemand) Run(tasks []Task, capacity int) (Result, error) {
	sched, err := s.Schedule(tasks, capacity)
	if err != nil {
		return Result{}, err
	}
	return sched.Result, nil
}

// Schedule simulates tasks over an event timeline. tasks is not modified.
func (s *OnDemand) Schedule(tasks []Task, capacity int) (*Schedule, error) {
	if err := validateTasks(tasks); err != nil {
		return nil, err
	}
	if err := validateCapacity(tasks, capacity); err != nil {
		return nil, err
	}

	logger := log.WithScheduler(s.Name())
	pool := NewResourcePool(capacity)
	timeline := NewTimeline()
	pending := slices.Clone(tasks)

	for len(pending) > 0 {
		i := s.selectCandidate(pending, pool.Available())
		task := pending[i]

		// Wait for enough running tasks to finish
		if err := timeline.AdvanceUntilFits(pool, task.Resource); err != nil {
			return nil, s.abort(err, capacity, task, timeline.Now())
		}

		if err := pool.Allocate(task.Resource); err != nil {
			return nil, s.abort(err, capacity, task, timeline.Now())
		}
		if err := timeline.Start(task); err != nil {
			return nil, s.abort(err, capacity, task, timeline.Now())
		}
		pending = slices.Delete(pending, i, i+1)

		if err := timeline.ScheduleEnd(task); err != nil {
			return nil, s.abort(err, capacity, task, timeline.Now())
		}

		logger.Debug().
			Float64("t", timeline.Now()).
			Float64("duration", task.Duration).
			Int("resource", task.Resource).
			Int("available", pool.Available()).
			Int("pending", len(pending)).
			Msg("task admitted")
	}

	return &Schedule{
		Result: newResult(tasks, capacity, timeline.End()),
		Events: timeline.Events(),
	}, nil
}

// selectCandidate returns the index of the next task to admit
func (s *OnDemand) selectCandidate(pending []Task, available int) int {
	best := -1
	largest := 0
	for i, t := range pending {
		if largest < t.Resource && t.Resource <= available {
			best = i
			largest = t.Resource
		}
	}
	if best >= 0 {
		return best
	}

	// Nothing fits yet; the timeline advances for whichever task is chosen here
	if s.fallback == FallbackSmallest {
		smallest := 0
		for i, t := range pending {
			if t.Resource < pending[smallest].Resource {
				smallest = i
			}
		}
		return smallest
	}
	return len(pending) - 1
}

func (s *OnDemand) abort(err error, capacity int, task Task, now float64) error {
	err = errors.Wrapf(err, "capacity %d, task %v, t=%g", capacity, task, now)
	logger := log.WithScheduler(s.Name())
	logger.Error().Err(err).Msg("simulation aborted")
	return err
}
