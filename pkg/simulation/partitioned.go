package simulation

import (
	"math"
	"sort"

	"github.com/pkg/errors"

	"github.com/sherine-k/clustersim/pkg/log"
)

// subCluster is one equal-sized slice of a partitioned cluster. Tasks run
// back-to-back on it, so its event log is append-only.
type subCluster struct {
	endTime float64
	events  []Event
}

func (sc *subCluster) add(task Task) {
	start := sc.endTime
	sc.endTime += task.Duration
	sc.events = append(sc.events, StartEvent(start, task), EndEvent(sc.endTime, task))
}

// Partitioned splits the cluster into capacity/M sub-clusters, M being the
// largest task requirement, and list-schedules tasks onto the least loaded one.
type Partitioned struct{}

// NewPartitioned creates a partitioned-cluster scheduler
func NewPartitioned() *Partitioned {
	return &Partitioned{}
}

// Name returns the scheduler kind
func (s *Partitioned) Name() string {
	return string(KindPartitioned)
}

// Run simulates tasks on a cluster of capacity units and scores the run
func (s *Partitioned) Run(tasks []Task, capacity int) (Result, error) {
	sched, err := s.Schedule(tasks, capacity)
	if err != nil {
		return Result{}, err
	}
	return sched.Result, nil
}

// Schedule assigns tasks in input order to the sub-cluster that frees up first
func (s *Partitioned) Schedule(tasks []Task, capacity int) (*Schedule, error) {
	if err := validateTasks(tasks); err != nil {
		return nil, err
	}
	m := MaxResource(tasks)
	// capacity < m covers oversized tasks: no sub-cluster can be carved out
	if capacity < m || capacity%m != 0 {
		return nil, errors.Wrapf(ErrInvalidCapacity, "capacity %d is not a positive multiple of the largest task requirement %d", capacity, m)
	}

	logger := log.WithScheduler(s.Name())
	clusters := make([]*subCluster, capacity/m)
	for i := range clusters {
		clusters[i] = &subCluster{}
	}

	for _, task := range tasks {
		idx := leastLoaded(clusters)
		clusters[idx].add(task)

		logger.Debug().
			Int("subcluster", idx).
			Float64("duration", task.Duration).
			Int("resource", task.Resource).
			Float64("end", clusters[idx].endTime).
			Msg("task placed")
	}

	duration := 0.0
	events := []Event{}
	for _, sc := range clusters {
		if sc.endTime > duration {
			duration = sc.endTime
		}
		events = append(events, sc.events...)
	}
	sortEvents(events)

	return &Schedule{
		Result: newResult(tasks, capacity, duration),
		Events: events,
	}, nil
}

// leastLoaded returns the first sub-cluster with the smallest end time
func leastLoaded(clusters []*subCluster) int {
	idx := -1
	minimum := math.Inf(1)
	for i, sc := range clusters {
		if sc.endTime < minimum {
			idx = i
			minimum = sc.endTime
		}
	}
	return idx
}

// sortEvents orders events by time, ends before starts at the same instant
func sortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Time != events[j].Time {
			return events[i].Time < events[j].Time
		}
		return events[i].Type == EventTypeEnd && events[j].Type == EventTypeStart
	})
}
