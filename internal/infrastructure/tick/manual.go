package tick

import (
	"context"
	"fmt"
	"sync"
)

// Manual is a tick source advanced explicitly, either by tests or by the
// daemon's admin surface when the deployment feeds block heights in from
// the outside. It never goes backwards.
type Manual struct {
	mu      sync.Mutex
	current uint64
}

func NewManual(start uint64) *Manual {
	return &Manual{current: start}
}

func (m *Manual) Now(ctx context.Context) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current, nil
}

// Advance moves the tick forward by n and returns the new value.
func (m *Manual) Advance(n uint64) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current += n
	return m.current
}

// Set moves the tick to the given value, rejecting any regression.
func (m *Manual) Set(value uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if value < m.current {
		return fmt.Errorf("tick cannot regress from %d to %d", m.current, value)
	}
	m.current = value
	return nil
}
