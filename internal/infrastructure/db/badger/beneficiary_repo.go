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

const beneficiaryStoreDir = "beneficiaries"

type beneficiaryRepository struct {
	store *badgerhold.Store
}

func NewBeneficiaryRepository(config ...interface{}) (domain.BeneficiaryRepository, error) {
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
		dir = filepath.Join(baseDir, beneficiaryStoreDir)
	}
	store, err := createDB(dir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open beneficiary store: %s", err)
	}

	return &beneficiaryRepository{store}, nil
}

func (r *beneficiaryRepository) AddBeneficiary(
	ctx context.Context, beneficiary domain.Beneficiary,
) error {
	insertFn := func() error {
		return r.store.Insert(
			beneficiaryKey(beneficiary.VaultID, beneficiary.Principal), beneficiary,
		)
	}
	if err := insertFn(); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return fmt.Errorf(
				"beneficiary %s already stored for vault %d",
				beneficiary.Principal, beneficiary.VaultID,
			)
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

func (r *beneficiaryRepository) GetBeneficiary(
	ctx context.Context, vaultID uint64, principal string,
) (*domain.Beneficiary, error) {
	var beneficiary domain.Beneficiary
	err := r.store.Get(beneficiaryKey(vaultID, principal), &beneficiary)
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get beneficiary: %w", err)
	}
	return &beneficiary, nil
}

func (r *beneficiaryRepository) UpdateBeneficiary(
	ctx context.Context, beneficiary domain.Beneficiary,
) error {
	updateFn := func() error {
		return r.store.Update(
			beneficiaryKey(beneficiary.VaultID, beneficiary.Principal), beneficiary,
		)
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

func (r *beneficiaryRepository) ListVaultBeneficiaries(
	ctx context.Context, vaultID uint64,
) ([]domain.Beneficiary, error) {
	var beneficiaries []domain.Beneficiary
	if err := r.store.Find(
		&beneficiaries, badgerhold.Where("VaultID").Eq(vaultID),
	); err != nil {
		return nil, fmt.Errorf("failed to query vault beneficiaries: %w", err)
	}
	sort.Slice(beneficiaries, func(i, j int) bool {
		return beneficiaries[i].AddedAt < beneficiaries[j].AddedAt
	})
	return beneficiaries, nil
}

func (r *beneficiaryRepository) Close() {
	// nolint:all
	r.store.Close()
}
