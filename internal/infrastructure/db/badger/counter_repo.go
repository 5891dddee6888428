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

const counterStoreDir = "counters"

type counterRepository struct {
	store *badgerhold.Store
}

func NewCounterRepository(config ...interface{}) (domain.CounterRepository, error) {
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
		dir = filepath.Join(baseDir, counterStoreDir)
	}
	store, err := createDB(dir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open counter store: %s", err)
	}

	return &counterRepository{store}, nil
}

// Next reads the named sequence, advances it and returns the value read.
// Sequences start at 1. The caller serializes mutations, the conflict
// retry below only covers badger's internal transaction aborts.
func (r *counterRepository) Next(ctx context.Context, name string) (uint64, error) {
	var current uint64
	nextFn := func() error {
		var value uint64
		err := r.store.Get(name, &value)
		if errors.Is(err, badgerhold.ErrNotFound) {
			value = 1
		} else if err != nil {
			return err
		}
		if err := r.store.Upsert(name, value+1); err != nil {
			return err
		}
		current = value
		return nil
	}
	if err := nextFn(); err != nil {
		if errors.Is(err, badger.ErrConflict) {
			attempts := 1
			for errors.Is(err, badger.ErrConflict) && attempts <= maxRetries {
				time.Sleep(100 * time.Millisecond)
				err = nextFn()
				attempts++
			}
		}
		if err != nil {
			return 0, fmt.Errorf("failed to advance counter %s: %w", name, err)
		}
	}
	return current, nil
}

func (r *counterRepository) Close() {
	// nolint:all
	r.store.Close()
}
