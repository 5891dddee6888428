package application

import (
	"context"
	"fmt"

	"github.com/Jakes-stx/AstraVault/internal/core/domain"
)

// In-memory implementations of the repositories and collaborator ports,
// enough for exercising the service without a real store.

type mockRepoManager struct {
	vaultRepo       *mockVaultRepository
	assetRepo       *mockAssetRepository
	beneficiaryRepo *mockBeneficiaryRepository
	counterRepo     *mockCounterRepository
}

func newMockRepoManager() *mockRepoManager {
	return &mockRepoManager{
		vaultRepo:       &mockVaultRepository{vaults: make(map[uint64]domain.Vault)},
		assetRepo:       &mockAssetRepository{assets: make(map[string]domain.Asset)},
		beneficiaryRepo: &mockBeneficiaryRepository{records: make(map[string]domain.Beneficiary)},
		counterRepo:     &mockCounterRepository{counters: make(map[string]uint64)},
	}
}

func (m *mockRepoManager) Vaults() domain.VaultRepository { return m.vaultRepo }
func (m *mockRepoManager) Assets() domain.AssetRepository { return m.assetRepo }
func (m *mockRepoManager) Beneficiaries() domain.BeneficiaryRepository {
	return m.beneficiaryRepo
}
func (m *mockRepoManager) Counters() domain.CounterRepository { return m.counterRepo }
func (m *mockRepoManager) Close()                             {}

type mockVaultRepository struct {
	vaults map[uint64]domain.Vault
}

func (m *mockVaultRepository) AddVault(_ context.Context, vault domain.Vault) error {
	if _, ok := m.vaults[vault.ID]; ok {
		return fmt.Errorf("vault %d already stored", vault.ID)
	}
	m.vaults[vault.ID] = vault
	return nil
}

func (m *mockVaultRepository) GetVault(_ context.Context, id uint64) (*domain.Vault, error) {
	vault, ok := m.vaults[id]
	if !ok {
		return nil, nil
	}
	return &vault, nil
}

func (m *mockVaultRepository) GetVaultByOwner(
	_ context.Context, owner string,
) (*domain.Vault, error) {
	for _, vault := range m.vaults {
		if vault.Owner == owner {
			v := vault
			return &v, nil
		}
	}
	return nil, nil
}

func (m *mockVaultRepository) UpdateVault(_ context.Context, vault domain.Vault) error {
	m.vaults[vault.ID] = vault
	return nil
}

func (m *mockVaultRepository) Close() {}

type mockAssetRepository struct {
	assets map[string]domain.Asset
}

func assetKey(vaultID, assetID uint64) string {
	return fmt.Sprintf("%d:%d", vaultID, assetID)
}

func (m *mockAssetRepository) AddAsset(_ context.Context, asset domain.Asset) error {
	m.assets[assetKey(asset.VaultID, asset.ID)] = asset
	return nil
}

func (m *mockAssetRepository) GetAsset(
	_ context.Context, vaultID, assetID uint64,
) (*domain.Asset, error) {
	asset, ok := m.assets[assetKey(vaultID, assetID)]
	if !ok {
		return nil, nil
	}
	return &asset, nil
}

func (m *mockAssetRepository) UpdateAsset(_ context.Context, asset domain.Asset) error {
	m.assets[assetKey(asset.VaultID, asset.ID)] = asset
	return nil
}

func (m *mockAssetRepository) ListVaultAssets(
	_ context.Context, vaultID uint64,
) ([]domain.Asset, error) {
	var assets []domain.Asset
	for _, asset := range m.assets {
		if asset.VaultID == vaultID {
			assets = append(assets, asset)
		}
	}
	return assets, nil
}

func (m *mockAssetRepository) Close() {}

type mockBeneficiaryRepository struct {
	records map[string]domain.Beneficiary
}

func beneficiaryKey(vaultID uint64, principal string) string {
	return fmt.Sprintf("%d:%s", vaultID, principal)
}

func (m *mockBeneficiaryRepository) AddBeneficiary(
	_ context.Context, record domain.Beneficiary,
) error {
	m.records[beneficiaryKey(record.VaultID, record.Principal)] = record
	return nil
}

func (m *mockBeneficiaryRepository) GetBeneficiary(
	_ context.Context, vaultID uint64, principal string,
) (*domain.Beneficiary, error) {
	record, ok := m.records[beneficiaryKey(vaultID, principal)]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (m *mockBeneficiaryRepository) UpdateBeneficiary(
	_ context.Context, record domain.Beneficiary,
) error {
	m.records[beneficiaryKey(record.VaultID, record.Principal)] = record
	return nil
}

func (m *mockBeneficiaryRepository) ListVaultBeneficiaries(
	_ context.Context, vaultID uint64,
) ([]domain.Beneficiary, error) {
	var records []domain.Beneficiary
	for _, record := range m.records {
		if record.VaultID == vaultID {
			records = append(records, record)
		}
	}
	return records, nil
}

func (m *mockBeneficiaryRepository) Close() {}

type mockCounterRepository struct {
	counters map[string]uint64
}

func (m *mockCounterRepository) Next(_ context.Context, name string) (uint64, error) {
	current, ok := m.counters[name]
	if !ok {
		current = 1
	}
	m.counters[name] = current + 1
	return current, nil
}

func (m *mockCounterRepository) Close() {}

type stubTicks struct {
	current uint64
}

func (s *stubTicks) Now(_ context.Context) (uint64, error) {
	return s.current, nil
}

type mockLedger struct {
	deposits  map[uint64]uint64
	withdraws map[string]uint64
	failNext  bool
}

func newMockLedger() *mockLedger {
	return &mockLedger{
		deposits:  make(map[uint64]uint64),
		withdraws: make(map[string]uint64),
	}
}

func (m *mockLedger) Deposit(
	_ context.Context, from string, vaultID uint64, amount uint64,
) error {
	if m.failNext {
		m.failNext = false
		return fmt.Errorf("transfer rejected")
	}
	m.deposits[vaultID] += amount
	return nil
}

func (m *mockLedger) Withdraw(
	_ context.Context, vaultID uint64, to string, amount uint64,
) error {
	if m.failNext {
		m.failNext = false
		return fmt.Errorf("transfer rejected")
	}
	m.withdraws[to] += amount
	return nil
}
