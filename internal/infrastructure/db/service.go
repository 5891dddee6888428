package db

import (
	"fmt"

	"github.com/Jakes-stx/AstraVault/internal/core/domain"
	"github.com/Jakes-stx/AstraVault/internal/core/ports"
	badgerdb "github.com/Jakes-stx/AstraVault/internal/infrastructure/db/badger"
)

var (
	vaultStoreTypes = map[string]func(...interface{}) (domain.VaultRepository, error){
		"badger": badgerdb.NewVaultRepository,
	}
	assetStoreTypes = map[string]func(...interface{}) (domain.AssetRepository, error){
		"badger": badgerdb.NewAssetRepository,
	}
	beneficiaryStoreTypes = map[string]func(...interface{}) (domain.BeneficiaryRepository, error){
		"badger": badgerdb.NewBeneficiaryRepository,
	}
	counterStoreTypes = map[string]func(...interface{}) (domain.CounterRepository, error){
		"badger": badgerdb.NewCounterRepository,
	}
)

type ServiceConfig struct {
	DataStoreType   string
	DataStoreConfig []interface{}
}

type service struct {
	vaultStore       domain.VaultRepository
	assetStore       domain.AssetRepository
	beneficiaryStore domain.BeneficiaryRepository
	counterStore     domain.CounterRepository
}

func NewService(config ServiceConfig) (ports.RepoManager, error) {
	vaultFactory, ok := vaultStoreTypes[config.DataStoreType]
	if !ok {
		return nil, fmt.Errorf("vault store type not supported")
	}
	assetFactory, ok := assetStoreTypes[config.DataStoreType]
	if !ok {
		return nil, fmt.Errorf("asset store type not supported")
	}
	beneficiaryFactory, ok := beneficiaryStoreTypes[config.DataStoreType]
	if !ok {
		return nil, fmt.Errorf("beneficiary store type not supported")
	}
	counterFactory, ok := counterStoreTypes[config.DataStoreType]
	if !ok {
		return nil, fmt.Errorf("counter store type not supported")
	}

	vaultStore, err := vaultFactory(config.DataStoreConfig...)
	if err != nil {
		return nil, fmt.Errorf("failed to open vault store: %w", err)
	}
	assetStore, err := assetFactory(config.DataStoreConfig...)
	if err != nil {
		return nil, fmt.Errorf("failed to open asset store: %w", err)
	}
	beneficiaryStore, err := beneficiaryFactory(config.DataStoreConfig...)
	if err != nil {
		return nil, fmt.Errorf("failed to open beneficiary store: %w", err)
	}
	counterStore, err := counterFactory(config.DataStoreConfig...)
	if err != nil {
		return nil, fmt.Errorf("failed to open counter store: %w", err)
	}

	return &service{
		vaultStore:       vaultStore,
		assetStore:       assetStore,
		beneficiaryStore: beneficiaryStore,
		counterStore:     counterStore,
	}, nil
}

func (s *service) Vaults() domain.VaultRepository {
	return s.vaultStore
}

func (s *service) Assets() domain.AssetRepository {
	return s.assetStore
}

func (s *service) Beneficiaries() domain.BeneficiaryRepository {
	return s.beneficiaryStore
}

func (s *service) Counters() domain.CounterRepository {
	return s.counterStore
}

func (s *service) Close() {
	s.vaultStore.Close()
	s.assetStore.Close()
	s.beneficiaryStore.Close()
	s.counterStore.Close()
}
