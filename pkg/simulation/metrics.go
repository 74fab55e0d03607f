package simulation

import (
	"gonum.org/v1/gonum/floats"
)

// Result scores one simulation run
type Result struct {
	Capacity          int     `json:"nodes"`
	Duration          float64 `json:"duration"`
	ResourceFootprint float64 `json:"resource_footprint"`
	TaskFootprint     float64 `json:"task_footprint"`
	Efficiency        float64 `json:"efficiency"`
}

// ResourceFootprint is the resource-time made available: capacity * duration.
func ResourceFootprint(capacity int, duration float64) float64 {
	return float64(capacity) * duration
}

// TaskFootprint is the resource-time the workload actually consumes.
func TaskFootprint(tasks []Task) float64 {
	durations := make([]float64, len(tasks))
	resources := make([]float64, len(tasks))
	for i, t := range tasks {
		durations[i] = t.Duration
		resources[i] = float64(t.Resource)
	}
	return floats.Dot(durations, resources)
}

// Efficiency is the fraction of available resource-time consumed. A zero
// capacity or duration is a caller error and yields +Inf or NaN.
func Efficiency(tasks []Task, duration float64, capacity int) float64 {
	return TaskFootprint(tasks) / ResourceFootprint(capacity, duration)
}

// MaxResource returns the largest single-task requirement, or 0 for no tasks
func MaxResource(tasks []Task) int {
	m := 0
	for _, t := range tasks {
		if t.Resource > m {
			m = t.Resource
		}
	}
	return m
}

// TotalDuration is the sum of all task durations
func TotalDuration(tasks []Task) float64 {
	durations := make([]float64, len(tasks))
	for i, t := range tasks {
		durations[i] = t.Duration
	}
	return floats.Sum(durations)
}

func newResult(tasks []Task, capacity int, duration float64) Result {
	return Result{
		Capacity:          capacity,
		Duration:          duration,
		ResourceFootprint: ResourceFootprint(capacity, duration),
		TaskFootprint:     TaskFootprint(tasks),
		Efficiency:        Efficiency(tasks, duration, capacity),
	}
}
