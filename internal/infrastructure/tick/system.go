package tick

import (
	"context"
	"fmt"
	"time"
)

// System derives ticks from wall-clock time at a fixed interval, for
// deployments without an external block feed. Ticks count intervals
// elapsed since the epoch, so they survive restarts.
type System struct {
	interval time.Duration
}

func NewSystem(interval time.Duration) (*System, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("tick interval must be positive")
	}
	return &System{interval: interval}, nil
}

func (s *System) Now(ctx context.Context) (uint64, error) {
	return uint64(time.Now().UnixNano() / int64(s.interval)), nil
}
