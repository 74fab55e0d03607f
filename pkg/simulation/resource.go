package simulation

import (
	"github.com/pkg/errors"
)

// ResourcePool tracks how much of a single fungible resource is free.
// 0 <= available <= capacity holds after every successful call.
type ResourcePool struct {
	capacity  int
	available int
}

// NewResourcePool creates a pool with all capacity available
func NewResourcePool(capacity int) *ResourcePool {
	return &ResourcePool{capacity: capacity, available: capacity}
}

// Capacity returns the size of the pool
func (p *ResourcePool) Capacity() int {
	return p.capacity
}

// Available returns the unallocated amount
func (p *ResourcePool) Available() int {
	return p.available
}

// Fits reports whether n units can be allocated right now
func (p *ResourcePool) Fits(n int) bool {
	return n <= p.available
}

// Allocate takes n units out of the pool
func (p *ResourcePool) Allocate(n int) error {
	if n < 0 || n > p.available {
		return errors.Wrapf(ErrInvariantViolation, "allocate %d units with %d of %d available", n, p.available, p.capacity)
	}
	p.available -= n
	return nil
}

// Free returns n units to the pool
func (p *ResourcePool) Free(n int) error {
	if n < 0 || n > p.capacity-p.available {
		return errors.Wrapf(ErrInvariantViolation, "free %d units with %d of %d in use", n, p.capacity-p.available, p.capacity)
	}
	p.available += n
	return nil
}
