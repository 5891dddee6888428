package ports

import "github.com/Jakes-stx/AstraVault/internal/core/domain"

type RepoManager interface {
	Vaults() domain.VaultRepository
	Assets() domain.AssetRepository
	Beneficiaries() domain.BeneficiaryRepository
	Counters() domain.CounterRepository
	Close()
}
