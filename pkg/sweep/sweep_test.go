package sweep

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sherine-k/clustersim/pkg/simulation"
)

var tasks = []simulation.Task{
	{Duration: 600, Resource: 4},
	{Duration: 300, Resource: 2},
}

func TestCapacities(t *testing.T) {
	assert.Equal(t, []int{20, 30, 40}, Capacities(20, 40, 10))
	assert.Equal(t, []int{5}, Capacities(5, 5, 10))
	assert.Equal(t, []int{}, Capacities(10, 5, 1))
	assert.Equal(t, []int{}, Capacities(1, 5, 0))
	assert.Len(t, Capacities(20, 200, 10), 19)
}

func TestRunOnDemand(t *testing.T) {
	series, err := Run(context.Background(), simulation.NewOnDemand(simulation.FallbackLast), tasks, Options{
		Capacities: []int{8, 4, 6},
		TimeUnit:   time.Minute,
		Workers:    2,
		Multiplier: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, "on-demand", series.Scheduler)
	assert.Equal(t, 2, series.NumTasks)
	assert.Equal(t, 15.0, series.SerialDuration)
	assert.Empty(t, series.Skipped)

	require.Len(t, series.Points, 3)
	assert.Equal(t, []int{4, 6, 8}, series.Report().Nodes)
	assert.Equal(t, []float64{15, 10, 10}, series.Report().Wallclock)
	assert.Equal(t, []float64{1, 1.5, 1.5}, series.Report().Parallelism)

	first := series.Points[0]
	assert.Equal(t, 3000.0, first.TaskFootprint)
	assert.Equal(t, 3600.0, first.ResourceFootprint)
	assert.InDelta(t, 3000.0/3600.0, first.Efficiency, 1e-12)
}

func TestRunSkipsUnpartitionableCapacities(t *testing.T) {
	series, err := Run(context.Background(), simulation.NewPartitioned(), tasks, Options{
		Capacities: []int{3, 4, 6, 8},
		Workers:    4,
	})
	require.NoError(t, err)

	assert.Equal(t, []int{3, 6}, series.Skipped)
	require.Len(t, series.Points, 2)
	assert.Equal(t, 4, series.Points[0].Capacity)
	assert.Equal(t, 900.0, series.Points[0].Duration)
	assert.Equal(t, 8, series.Points[1].Capacity)
	assert.Equal(t, 600.0, series.Points[1].Duration)
}

func TestRunFailsOnOversizedTask(t *testing.T) {
	_, err := Run(context.Background(), simulation.NewOnDemand(simulation.FallbackLast), tasks, Options{
		Capacities: []int{3, 4},
	})
	assert.ErrorIs(t, err, simulation.ErrOversizedTask)
	assert.ErrorContains(t, err, "capacity 3")
}

func TestRunEmptyWorkload(t *testing.T) {
	_, err := Run(context.Background(), simulation.NewPartitioned(), nil, Options{Capacities: []int{4}})
	assert.ErrorIs(t, err, simulation.ErrEmptyWorkload)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, simulation.NewPartitioned(), tasks, Options{Capacities: []int{4, 8}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReport(t *testing.T) {
	s := &Series{
		Scheduler:      "partitioned",
		NumTasks:       10,
		Multiplier:     2,
		SerialDuration: 100,
		Points: []Point{
			{Capacity: 20, Duration: 50, Parallelism: 2, Efficiency: 0.9},
			{Capacity: 30, Duration: 40, Parallelism: 2.5, Efficiency: 0.7},
		},
	}

	assert.Equal(t, Report{
		NumTests:           10,
		SerialDuration:     100,
		Scheduler:          "partitioned",
		Multiplier:         2,
		Nodes:              []int{20, 30},
		Wallclock:          []float64{50, 40},
		Parallelism:        []float64{2, 2.5},
		ResourceEfficiency: []float64{0.9, 0.7},
	}, s.Report())
}
