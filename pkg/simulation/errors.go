package simulation

import (
	"github.com/pkg/errors"
)

var (
	// ErrEmptyWorkload is returned when a scheduler is given no tasks.
	ErrEmptyWorkload = errors.New("workload has no tasks")

	// ErrInvalidTask is returned for tasks with a non-positive duration or resource.
	ErrInvalidTask = errors.New("invalid task")

	// ErrOversizedTask is returned when a task needs more than the whole cluster.
	ErrOversizedTask = errors.New("task exceeds cluster capacity")

	// ErrInvalidCapacity is returned when the cluster cannot be sized or partitioned as requested.
	ErrInvalidCapacity = errors.New("invalid capacity")

	// ErrInvariantViolation indicates a scheduler logic defect. Runs that hit it are aborted.
	ErrInvariantViolation = errors.New("scheduler invariant violated")
)

// validateTasks checks the preconditions every scheduler shares
func validateTasks(tasks []Task) error {
	if len(tasks) == 0 {
		return ErrEmptyWorkload
	}
	for i, t := range tasks {
		if t.Duration <= 0 {
			return errors.Wrapf(ErrInvalidTask, "task %d: duration must be greater than 0, got %g", i, t.Duration)
		}
		if t.Resource <= 0 {
			return errors.Wrapf(ErrInvalidTask, "task %d: resource must be greater than 0, got %d", i, t.Resource)
		}
	}
	return nil
}

// validateCapacity rejects a cluster that cannot hold the largest task
func validateCapacity(tasks []Task, capacity int) error {
	if capacity <= 0 {
		return errors.Wrapf(ErrInvalidCapacity, "capacity must be greater than 0, got %d", capacity)
	}
	for i, t := range tasks {
		if t.Resource > capacity {
			return errors.Wrapf(ErrOversizedTask, "task %d needs %d units, capacity is %d", i, t.Resource, capacity)
		}
	}
	return nil
}
