package ports

import "context"

// TickSource supplies the current chain tick (block height analogue).
// Values are monotonically non-decreasing; the engine never waits on a
// tick, it only reads the current one.
type TickSource interface {
	Now(ctx context.Context) (uint64, error)
}
