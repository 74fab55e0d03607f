package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var exampleTasks = []Task{
	{Duration: 10, Resource: 4},
	{Duration: 5, Resource: 2},
}

func TestFootprints(t *testing.T) {
	assert.Equal(t, 60.0, ResourceFootprint(4, 15))
	assert.Equal(t, 50.0, TaskFootprint(exampleTasks))
	assert.InDelta(t, 50.0/60.0, Efficiency(exampleTasks, 15, 4), 1e-12)
	assert.Equal(t, 0.0, TaskFootprint(nil))
}

func TestMaxResourceAndTotalDuration(t *testing.T) {
	assert.Equal(t, 4, MaxResource(exampleTasks))
	assert.Equal(t, 15.0, TotalDuration(exampleTasks))
	assert.Equal(t, 0, MaxResource(nil))
}

func TestRunSequential(t *testing.T) {
	result, err := RunSequential(exampleTasks)
	assert.NoError(t, err)
	assert.Equal(t, Result{
		Capacity:          4,
		Duration:          15,
		ResourceFootprint: 60,
		TaskFootprint:     50,
		Efficiency:        50.0 / 60.0,
	}, result)

	_, err = RunSequential(nil)
	assert.ErrorIs(t, err, ErrEmptyWorkload)
}
