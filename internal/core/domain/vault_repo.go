package domain

import "context"

// VaultRepository stores the canonical vault records and the owner index.
// Gets return nil without error when the record is absent.
type VaultRepository interface {
	AddVault(ctx context.Context, vault Vault) error
	GetVault(ctx context.Context, id uint64) (*Vault, error)
	GetVaultByOwner(ctx context.Context, owner string) (*Vault, error)
	UpdateVault(ctx context.Context, vault Vault) error
	Close()
}
