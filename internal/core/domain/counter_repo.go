package domain

import "context"

// Counter names for the two identity sequences. Both start at 1, increase
// strictly and never reuse a value.
const (
	VaultIDCounter = "vault-id"
	AssetIDCounter = "asset-id"
)

// CounterRepository backs the identity allocator with persisted sequences.
type CounterRepository interface {
	// Next returns the current value for the named counter and advances it.
	Next(ctx context.Context, name string) (uint64, error)
	Close()
}
