package config

import (
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	defaultStep     = 10
	defaultTimeUnit = time.Minute
	defaultWorkers  = 4
)

var (
	// CronParser accepts five-field schedules and @-descriptors such as @hourly
	CronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

	// Schedulers run when the configuration names none
	defaultSchedulers = []string{"on-demand", "partitioned"}

	// Recurring windows start on a fixed Monday so runs are reproducible
	defaultRecurringStart = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// LoadConfig loads and parses the configuration file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig parses, defaults and validates a YAML configuration
func ParseConfig(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)

	// Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyDefaults fills in every optional field left empty
func applyDefaults(config *Config) {
	if config.Capacity.Step == 0 {
		config.Capacity.Step = defaultStep
	}
	if len(config.Schedulers) == 0 {
		config.Schedulers = append([]string(nil), defaultSchedulers...)
	}
	if config.Fallback == "" {
		config.Fallback = "last"
	}
	if config.TimeUnit == 0 {
		config.TimeUnit = defaultTimeUnit
	}
	if config.Workers == 0 {
		config.Workers = defaultWorkers
	}
	if len(config.Workload.Multipliers) == 0 {
		config.Workload.Multipliers = []int{1}
	}
	if r := config.Workload.Recurring; r != nil && r.Start.IsZero() {
		r.Start = defaultRecurringStart
	}
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	if err := validateWorkload(&config.Workload); err != nil {
		return err
	}

	if err := validateCapacity(&config.Capacity); err != nil {
		return err
	}

	for _, name := range config.Schedulers {
		if name != "on-demand" && name != "partitioned" {
			return fmt.Errorf("scheduler %q must be either 'on-demand' or 'partitioned'", name)
		}
	}

	if config.Fallback != "last" && config.Fallback != "smallest" {
		return fmt.Errorf("fallback must be either 'last' or 'smallest'")
	}

	if config.TimeUnit <= 0 {
		return fmt.Errorf("timeUnit must be greater than 0")
	}

	if config.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0")
	}

	return nil
}

func validateWorkload(w *Workload) error {
	if w.File == "" && len(w.Tasks) == 0 && w.Recurring == nil {
		return fmt.Errorf("workload needs a file, inline tasks or recurring jobs")
	}

	for i, task := range w.Tasks {
		if task.Duration <= 0 {
			return fmt.Errorf("task %d: duration must be greater than 0", i)
		}
		if task.Resource <= 0 {
			return fmt.Errorf("task %d: resource must be greater than 0", i)
		}
	}

	for _, m := range w.Multipliers {
		if m <= 0 {
			return fmt.Errorf("multipliers must be greater than 0, got %d", m)
		}
	}

	if w.Recurring == nil {
		return nil
	}

	if w.Recurring.Window <= 0 {
		return fmt.Errorf("recurring window must be greater than 0")
	}

	if len(w.Recurring.Jobs) == 0 {
		return fmt.Errorf("at least one recurring job must be defined")
	}

	for i, job := range w.Recurring.Jobs {
		if job.Name == "" {
			return fmt.Errorf("job %d: name is required", i)
		}

		if job.Duration <= 0 {
			return fmt.Errorf("job %s: duration must be greater than 0", job.Name)
		}

		if job.Resource <= 0 {
			return fmt.Errorf("job %s: resource must be greater than 0", job.Name)
		}

		if job.CronSchedule == "" {
			return fmt.Errorf("job %s: cronSchedule is required", job.Name)
		}

		if _, err := CronParser.Parse(job.CronSchedule); err != nil {
			return fmt.Errorf("job %s: invalid cronSchedule: %w", job.Name, err)
		}
	}

	return nil
}

func validateCapacity(c *Capacity) error {
	if len(c.Values) > 0 {
		for _, v := range c.Values {
			if v <= 0 {
				return fmt.Errorf("capacity values must be greater than 0, got %d", v)
			}
		}
		return nil
	}

	if c.Min <= 0 {
		return fmt.Errorf("capacity min must be greater than 0")
	}

	if c.Max < c.Min {
		return fmt.Errorf("capacity max must not be less than min")
	}

	if c.Step <= 0 {
		return fmt.Errorf("capacity step must be greater than 0")
	}

	return nil
}
