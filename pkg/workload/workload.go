// Package workload turns task inventories and recurring job schedules into
// the ordered task sequences the schedulers consume.
package workload

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/markphelps/optional"

	"github.com/sherine-k/clustersim/pkg/config"
	"github.com/sherine-k/clustersim/pkg/simulation"
)

// inventoryEntry is one record of a JSON test inventory
type inventoryEntry struct {
	RunTimeSeconds float64 `json:"run_time_seconds"`
	Nodes          int     `json:"nodes"`
}

// LoadFile reads a JSON task inventory
func LoadFile(filename string) ([]simulation.Task, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read task file: %w", err)
	}

	var entries []inventoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse task file: %w", err)
	}

	tasks := make([]simulation.Task, 0, len(entries))
	for _, e := range entries {
		tasks = append(tasks, simulation.Task{Duration: e.RunTimeSeconds, Resource: e.Nodes})
	}
	return tasks, nil
}

// Build assembles the base workload described by cfg: the file inventory,
// then inline tasks, then recurring job firings. Order is preserved.
func Build(cfg config.Workload) ([]simulation.Task, error) {
	tasks := []simulation.Task{}

	if cfg.File != "" {
		loaded, err := LoadFile(cfg.File)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, loaded...)
	}

	for _, t := range cfg.Tasks {
		tasks = append(tasks, simulation.Task{Duration: t.Duration.Seconds(), Resource: t.Resource})
	}

	if cfg.Recurring != nil {
		recurring, err := Recurring(*cfg.Recurring)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, recurring...)
	}

	if len(tasks) == 0 {
		return nil, simulation.ErrEmptyWorkload
	}
	return tasks, nil
}

// Recurring generates one task per cron firing of every job inside the window
func Recurring(r config.Recurring) ([]simulation.Task, error) {
	tasks := []simulation.Task{}
	end := r.Start.Add(r.Window)

	for _, job := range r.Jobs {
		schedule, err := config.CronParser.Parse(job.CronSchedule)
		if err != nil {
			return nil, fmt.Errorf("failed to parse cron schedule for job %s: %w", job.Name, err)
		}

		// Next is strictly after its argument, so step back to include a firing at Start
		current := r.Start.Add(-time.Second)
		for {
			next := schedule.Next(current)
			if next.IsZero() || !next.Before(end) {
				break
			}
			tasks = append(tasks, simulation.Task{Duration: job.Duration.Seconds(), Resource: job.Resource})
			current = next
		}
	}

	return tasks, nil
}

// Shuffle returns a copy of tasks, permuted deterministically when seed is present
func Shuffle(tasks []simulation.Task, seed optional.Int64) []simulation.Task {
	out := append([]simulation.Task(nil), tasks...)
	seed.If(func(s int64) {
		r := rand.New(rand.NewSource(s))
		r.Shuffle(len(out), func(i, j int) {
			out[i], out[j] = out[j], out[i]
		})
	})
	return out
}

// Repeat returns tasks concatenated n times, or no tasks when n <= 0
func Repeat(tasks []simulation.Task, n int) []simulation.Task {
	if n <= 0 {
		return []simulation.Task{}
	}
	out := make([]simulation.Task, 0, len(tasks)*n)
	for i := 0; i < n; i++ {
		out = append(out, tasks...)
	}
	return out
}

// SeedFromConfig converts the optional configured seed
func SeedFromConfig(seed *int64) optional.Int64 {
	if seed == nil {
		return optional.Int64{}
	}
	return optional.NewInt64(*seed)
}
