package domain

import "context"

type BeneficiaryRepository interface {
	AddBeneficiary(ctx context.Context, beneficiary Beneficiary) error
	GetBeneficiary(ctx context.Context, vaultID uint64, principal string) (*Beneficiary, error)
	UpdateBeneficiary(ctx context.Context, beneficiary Beneficiary) error
	ListVaultBeneficiaries(ctx context.Context, vaultID uint64) ([]Beneficiary, error)
	Close()
}
