package simulation

import (
	"fmt"
)

// Kind names a scheduling strategy
type Kind string

const (
	KindOnDemand    Kind = "on-demand"
	KindPartitioned Kind = "partitioned"
)

// Scheduler simulates a workload on a cluster of the given capacity
type Scheduler interface {
	Name() string
	Run(tasks []Task, capacity int) (Result, error)
	Schedule(tasks []Task, capacity int) (*Schedule, error)
}

// Schedule is a scored run together with its time-ordered event log
type Schedule struct {
	Result Result
	Events []Event
}

// NewScheduler creates the scheduler named by kind. fallback only applies to on-demand.
func NewScheduler(kind Kind, fallback FallbackPolicy) (Scheduler, error) {
	switch kind {
	case KindOnDemand:
		if fallback == "" {
			fallback = FallbackLast
		}
		if fallback != FallbackLast && fallback != FallbackSmallest {
			return nil, fmt.Errorf("unknown fallback policy %q", fallback)
		}
		return NewOnDemand(fallback), nil
	case KindPartitioned:
		return NewPartitioned(), nil
	default:
		return nil, fmt.Errorf("unknown scheduler %q", kind)
	}
}
