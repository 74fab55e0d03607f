package config

import (
	"time"
)

// Config represents the entire configuration for a capacity sweep
type Config struct {
	Workload   Workload      `yaml:"workload"`
	Capacity   Capacity      `yaml:"capacity"`
	Schedulers []string      `yaml:"schedulers"`
	Fallback   string        `yaml:"fallback"`
	TimeUnit   time.Duration `yaml:"timeUnit"`
	Workers    int           `yaml:"workers"`
}

// Workload describes where the tasks come from and how they are ordered
type Workload struct {
	// JSON task inventory: [{"run_time_seconds": 120, "nodes": 4}, ...]
	File  string `yaml:"file,omitempty"`
	Tasks []Task `yaml:"tasks,omitempty"`

	Recurring *Recurring `yaml:"recurring,omitempty"`

	// Absent keeps the order tasks were listed in
	Seed        *int64 `yaml:"seed,omitempty"`
	Multipliers []int  `yaml:"multipliers,omitempty"`
}

// Task is an inline task definition
type Task struct {
	Duration time.Duration `yaml:"duration"`
	Resource int           `yaml:"resource"`
}

// Recurring expands cron-scheduled jobs into one task per firing inside a window
type Recurring struct {
	Start  time.Time     `yaml:"start"`
	Window time.Duration `yaml:"window"`
	Jobs   []Job         `yaml:"jobs"`
}

// Job represents a single recurring CI job
type Job struct {
	Name         string        `yaml:"name"`
	CronSchedule string        `yaml:"cronSchedule"`
	Duration     time.Duration `yaml:"duration"`
	Resource     int           `yaml:"resource"`
}

// Capacity is the range of cluster sizes to sweep. Values, when set, wins over the range.
type Capacity struct {
	Min    int   `yaml:"min"`
	Max    int   `yaml:"max"`
	Step   int   `yaml:"step"`
	Values []int `yaml:"values,omitempty"`
}
