package simulation

import (
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// Timeline is the strictly time-ordered sequence of moments for one run,
// together with a cursor at the current moment.
type Timeline struct {
	moments []*Moment
	index   int
}

// NewTimeline creates a timeline with a single empty moment at t=0
func NewTimeline() *Timeline {
	return &Timeline{
		moments: []*Moment{{Time: 0}},
	}
}

// Now returns the time of the current moment
func (tl *Timeline) Now() float64 {
	return tl.moments[tl.index].Time
}

// Len returns the number of moments
func (tl *Timeline) Len() int {
	return len(tl.moments)
}

// End returns the time of the last moment, which is the makespan once every task is admitted
func (tl *Timeline) End() float64 {
	return tl.moments[len(tl.moments)-1].Time
}

// AdvanceUntilFits steps the cursor forward one moment at a time, returning
// the resource of every task ending there to pool, until need units are free.
func (tl *Timeline) AdvanceUntilFits(pool *ResourcePool, need int) error {
	for !pool.Fits(need) {
		if tl.index+1 >= len(tl.moments) {
			return errors.Wrapf(ErrInvariantViolation,
				"timeline exhausted at t=%g waiting for %d units (%d of %d available)",
				tl.Now(), need, pool.Available(), pool.Capacity())
		}
		tl.index++
		if err := pool.Free(tl.moments[tl.index].freed()); err != nil {
			return errors.Wrapf(err, "advancing to t=%g", tl.Now())
		}
	}
	return nil
}

// Start records task as starting at the current moment
func (tl *Timeline) Start(task Task) error {
	return tl.moments[tl.index].addStart(StartEvent(tl.Now(), task))
}

// ScheduleEnd records the end of a task started now. Ends landing on an
// existing moment coalesce into it, otherwise a new moment is spliced in.
func (tl *Timeline) ScheduleEnd(task Task) error {
	end := tl.Now() + task.Duration

	// last moment with time <= end
	j := sort.Search(len(tl.moments), func(i int) bool {
		return tl.moments[i].Time > end
	}) - 1
	if j < tl.index {
		return errors.Wrapf(ErrInvariantViolation, "end of %v at t=%g precedes current moment t=%g", task, end, tl.Now())
	}

	if tl.moments[j].Time == end {
		return tl.moments[j].addEnd(EndEvent(end, task))
	}

	m := &Moment{Time: end}
	if err := m.addEnd(EndEvent(end, task)); err != nil {
		return err
	}
	tl.moments = slices.Insert(tl.moments, j+1, m)
	return nil
}

// Moments returns a copy of the moment sequence
func (tl *Timeline) Moments() []Moment {
	out := make([]Moment, 0, len(tl.moments))
	for _, m := range tl.moments {
		out = append(out, Moment{
			Time:   m.Time,
			Starts: slices.Clone(m.Starts),
			Ends:   slices.Clone(m.Ends),
		})
	}
	return out
}

// Events flattens the timeline into a single log. Within a moment ends come
// before starts, matching the order resource is released and reused.
func (tl *Timeline) Events() []Event {
	events := []Event{}
	for _, m := range tl.moments {
		events = append(events, m.Ends...)
		events = append(events, m.Starts...)
	}
	return events
}
