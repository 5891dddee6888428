package badgerdb

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Jakes-stx/AstraVault/internal/core/domain"
	"github.com/dgraph-io/badger/v4"
	"github.com/timshannon/badgerhold/v4"
)

const vaultStoreDir = "vaults"

type vaultRepository struct {
	store *badgerhold.Store
}

func NewVaultRepository(config ...interface{}) (domain.VaultRepository, error) {
	if len(config) != 2 {
		return nil, fmt.Errorf("invalid config")
	}
	baseDir, ok := config[0].(string)
	if !ok {
		return nil, fmt.Errorf("invalid base directory")
	}
	var logger badger.Logger
	if config[1] != nil {
		logger, ok = config[1].(badger.Logger)
		if !ok {
			return nil, fmt.Errorf("invalid logger")
		}
	}

	var dir string
	if len(baseDir) > 0 {
		dir = filepath.Join(baseDir, vaultStoreDir)
	}
	store, err := createDB(dir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open vault store: %s", err)
	}

	return &vaultRepository{store}, nil
}

func (r *vaultRepository) AddVault(ctx context.Context, vault domain.Vault) error {
	insertFn := func() error {
		return r.store.Insert(vault.ID, vault)
	}
	if err := insertFn(); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return fmt.Errorf("vault %d already stored", vault.ID)
		}
		if errors.Is(err, badger.ErrConflict) {
			attempts := 1
			for errors.Is(err, badger.ErrConflict) && attempts <= maxRetries {
				time.Sleep(100 * time.Millisecond)
				err = insertFn()
				attempts++
			}
		}
		return err
	}
	return nil
}

func (r *vaultRepository) GetVault(
	ctx context.Context, id uint64,
) (*domain.Vault, error) {
	var vault domain.Vault
	err := r.store.Get(id, &vault)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vault: %w", err)
	}
	return &vault, nil
}

func (r *vaultRepository) GetVaultByOwner(
	ctx context.Context, owner string,
) (*domain.Vault, error) {
	var vaults []domain.Vault
	if err := r.store.Find(
		&vaults, badgerhold.Where("Owner").Eq(owner),
	); err != nil {
		return nil, fmt.Errorf("failed to query vaults by owner: %w", err)
	}
	if len(vaults) <= 0 {
		return nil, nil
	}
	return &vaults[0], nil
}

func (r *vaultRepository) UpdateVault(ctx context.Context, vault domain.Vault) error {
	updateFn := func() error {
		return r.store.Update(vault.ID, vault)
	}
	if err := updateFn(); err != nil {
		if errors.Is(err, badger.ErrConflict) {
			attempts := 1
			for errors.Is(err, badger.ErrConflict) && attempts <= maxRetries {
				time.Sleep(100 * time.Millisecond)
				err = updateFn()
				attempts++
			}
		}
		return err
	}
	return nil
}

func (r *vaultRepository) Close() {
	// nolint:all
	r.store.Close()
}
