package badgerdb

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/Jakes-stx/AstraVault/internal/core/domain"
	"github.com/dgraph-io/badger/v4"
	"github.com/timshannon/badgerhold/v4"
)

const assetStoreDir = "assets"

type assetRepository struct {
	store *badgerhold.Store
}

func NewAssetRepository(config ...interface{}) (domain.AssetRepository, error) {
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
		dir = filepath.Join(baseDir, assetStoreDir)
	}
	store, err := createDB(dir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open asset store: %s", err)
	}

	return &assetRepository{store}, nil
}

func (r *assetRepository) AddAsset(ctx context.Context, asset domain.Asset) error {
	insertFn := func() error {
		return r.store.Insert(assetKey(asset.VaultID, asset.ID), asset)
	}
	if err := insertFn(); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return fmt.Errorf("asset %d already stored for vault %d", asset.ID, asset.VaultID)
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

func (r *assetRepository) GetAsset(
	ctx context.Context, vaultID, assetID uint64,
) (*domain.Asset, error) {
	var asset domain.Asset
	err := r.store.Get(assetKey(vaultID, assetID), &asset)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return &asset, nil
}

func (r *assetRepository) UpdateAsset(ctx context.Context, asset domain.Asset) error {
	updateFn := func() error {
		return r.store.Update(assetKey(asset.VaultID, asset.ID), asset)
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

func (r *assetRepository) ListVaultAssets(
	ctx context.Context, vaultID uint64,
) ([]domain.Asset, error) {
	var assets []domain.Asset
	if err := r.store.Find(
		&assets, badgerhold.Where("VaultID").Eq(vaultID),
	); err != nil {
		return nil, fmt.Errorf("failed to query vault assets: %w", err)
	}
	sort.Slice(assets, func(i, j int) bool {
		return assets[i].ID < assets[j].ID
	})
	return assets, nil
}

func (r *assetRepository) Close() {
	// nolint:all
	r.store.Close()
}
