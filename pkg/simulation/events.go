package simulation

import (
	"fmt"

	"github.com/pkg/errors"
)

// Task is one independent, non-preemptible unit of work. It holds Resource
// units of the cluster for Duration seconds once started.
type Task struct {
	Duration float64
	Resource int
}

func (t Task) String() string {
	return fmt.Sprintf("<Task: duration: %g, resource: %d>", t.Duration, t.Resource)
}

// EventType defines the type of event in the simulation
type EventType string

const (
	EventTypeStart EventType = "start"
	EventTypeEnd   EventType = "end"
)

// Event marks the instant a task starts consuming, or stops consuming, its resource
type Event struct {
	Time float64
	Type EventType
	Task Task
}

// StartEvent creates a start event for task at time t
func StartEvent(t float64, task Task) Event {
	return Event{Time: t, Type: EventTypeStart, Task: task}
}

// EndEvent creates an end event for task at time t
func EndEvent(t float64, task Task) Event {
	return Event{Time: t, Type: EventTypeEnd, Task: task}
}

// Moment is a point in simulated time holding every event that occurs exactly then.
type Moment struct {
	Time   float64
	Starts []Event
	Ends   []Event
}

func (m *Moment) addStart(e Event) error {
	if e.Type != EventTypeStart || e.Time != m.Time {
		return errors.Wrapf(ErrInvariantViolation, "start event %v does not belong to moment at t=%g", e, m.Time)
	}
	m.Starts = append(m.Starts, e)
	return nil
}

func (m *Moment) addEnd(e Event) error {
	if e.Type != EventTypeEnd || e.Time != m.Time {
		return errors.Wrapf(ErrInvariantViolation, "end event %v does not belong to moment at t=%g", e, m.Time)
	}
	m.Ends = append(m.Ends, e)
	return nil
}

// freed is the resource released by every task ending at this moment
func (m *Moment) freed() int {
	n := 0
	for _, e := range m.Ends {
		n += e.Task.Resource
	}
	return n
}
