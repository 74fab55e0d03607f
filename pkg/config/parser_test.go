package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullConfig = `
workload:
  file: tasks.json
  seed: 12345
  multipliers: [1, 2, 4]
  tasks:
    - duration: 10m
      resource: 4
  recurring:
    start: 2024-03-04T00:00:00Z
    window: 168h
    jobs:
      - name: nightly-e2e
        cronSchedule: "0 2 * * *"
        duration: 90m
        resource: 8
capacity:
  min: 20
  max: 200
  step: 10
schedulers: [on-demand]
fallback: smallest
timeUnit: 1h
workers: 8
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(fullConfig))
	require.NoError(t, err)

	assert.Equal(t, "tasks.json", cfg.Workload.File)
	require.NotNil(t, cfg.Workload.Seed)
	assert.Equal(t, int64(12345), *cfg.Workload.Seed)
	assert.Equal(t, []int{1, 2, 4}, cfg.Workload.Multipliers)
	assert.Equal(t, []Task{{Duration: 10 * time.Minute, Resource: 4}}, cfg.Workload.Tasks)

	require.NotNil(t, cfg.Workload.Recurring)
	assert.Equal(t, time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC), cfg.Workload.Recurring.Start)
	assert.Equal(t, 168*time.Hour, cfg.Workload.Recurring.Window)
	assert.Equal(t, "nightly-e2e", cfg.Workload.Recurring.Jobs[0].Name)
	assert.Equal(t, 90*time.Minute, cfg.Workload.Recurring.Jobs[0].Duration)

	assert.Equal(t, Capacity{Min: 20, Max: 200, Step: 10}, cfg.Capacity)
	assert.Equal(t, []string{"on-demand"}, cfg.Schedulers)
	assert.Equal(t, "smallest", cfg.Fallback)
	assert.Equal(t, time.Hour, cfg.TimeUnit)
	assert.Equal(t, 8, cfg.Workers)
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
workload:
  file: tasks.json
  recurring:
    window: 24h
    jobs:
      - name: hourly
        cronSchedule: "@hourly"
        duration: 5m
        resource: 1
capacity:
  min: 20
  max: 40
`))
	require.NoError(t, err)

	assert.Nil(t, cfg.Workload.Seed)
	assert.Equal(t, []int{1}, cfg.Workload.Multipliers)
	assert.Equal(t, 10, cfg.Capacity.Step)
	assert.Equal(t, []string{"on-demand", "partitioned"}, cfg.Schedulers)
	assert.Equal(t, "last", cfg.Fallback)
	assert.Equal(t, time.Minute, cfg.TimeUnit)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, defaultRecurringStart, cfg.Workload.Recurring.Start)
}

func TestParseConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "no workload",
			yaml:    "capacity: {min: 1, max: 2}",
			wantErr: "workload needs a file",
		},
		{
			name:    "non-positive task duration",
			yaml:    "workload: {tasks: [{duration: 0s, resource: 1}]}\ncapacity: {min: 1, max: 2}",
			wantErr: "task 0: duration must be greater than 0",
		},
		{
			name:    "non-positive task resource",
			yaml:    "workload: {tasks: [{duration: 1s, resource: 0}]}\ncapacity: {min: 1, max: 2}",
			wantErr: "task 0: resource must be greater than 0",
		},
		{
			name:    "zero multiplier",
			yaml:    "workload: {file: t.json, multipliers: [0]}\ncapacity: {min: 1, max: 2}",
			wantErr: "multipliers must be greater than 0",
		},
		{
			name:    "capacity max below min",
			yaml:    "workload: {file: t.json}\ncapacity: {min: 10, max: 2}",
			wantErr: "capacity max must not be less than min",
		},
		{
			name:    "missing capacity",
			yaml:    "workload: {file: t.json}",
			wantErr: "capacity min must be greater than 0",
		},
		{
			name:    "negative capacity value",
			yaml:    "workload: {file: t.json}\ncapacity: {values: [4, -1]}",
			wantErr: "capacity values must be greater than 0",
		},
		{
			name:    "unknown scheduler",
			yaml:    "workload: {file: t.json}\ncapacity: {min: 1, max: 2}\nschedulers: [fifo]",
			wantErr: `scheduler "fifo"`,
		},
		{
			name:    "unknown fallback",
			yaml:    "workload: {file: t.json}\ncapacity: {min: 1, max: 2}\nfallback: random",
			wantErr: "fallback must be either",
		},
		{
			name:    "bad cron schedule",
			yaml:    "workload: {recurring: {window: 1h, jobs: [{name: j, cronSchedule: 'not cron', duration: 1m, resource: 1}]}}\ncapacity: {min: 1, max: 2}",
			wantErr: "job j: invalid cronSchedule",
		},
		{
			name:    "cron schedule with seconds field",
			yaml:    "workload: {recurring: {window: 1h, jobs: [{name: j, cronSchedule: '0 0 2 * * *', duration: 1m, resource: 1}]}}\ncapacity: {min: 1, max: 2}",
			wantErr: "job j: invalid cronSchedule",
		},
		{
			name:    "recurring without jobs",
			yaml:    "workload: {recurring: {window: 1h}}\ncapacity: {min: 1, max: 2}",
			wantErr: "at least one recurring job must be defined",
		},
		{
			name:    "malformed yaml",
			yaml:    "workload: [",
			wantErr: "failed to parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fullConfig), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "tasks.json", cfg.Workload.File)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestCronParser(t *testing.T) {
	for _, spec := range []string{"0 2 * * *", "*/15 * * * 1-5", "@hourly", "@daily"} {
		_, err := CronParser.Parse(spec)
		assert.NoError(t, err, spec)
	}

	_, err := CronParser.Parse("0 0 2 * * *")
	assert.Error(t, err)
}
