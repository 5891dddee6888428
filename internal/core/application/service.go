package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/Jakes-stx/AstraVault/internal/core/domain"
	"github.com/Jakes-stx/AstraVault/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

// ClaimMode selects which contract variant the claim path reproduces.
type ClaimMode string

const (
	// ClaimModeMulti tracks depletion per asset and never rolls it up to
	// the vault level.
	ClaimModeMulti ClaimMode = "multi"
	// ClaimModeLegacy reproduces the single-balance contract: draining an
	// asset to zero marks the whole vault claimed.
	ClaimModeLegacy ClaimMode = "legacy"
)

func (m ClaimMode) IsValid() bool {
	return m == ClaimModeMulti || m == ClaimModeLegacy
}

type Service interface {
	CreateVault(
		ctx context.Context, caller string, inactivityThreshold, requiredSignatures uint64,
	) (uint64, error)
	TouchActivity(ctx context.Context, caller string, vaultID uint64) (uint64, error)
	AddNativeAsset(
		ctx context.Context, caller string, vaultID, amount uint64,
	) (uint64, error)
	AddFungibleTokenAsset(
		ctx context.Context, caller string, vaultID uint64,
		contractAddress string, amount uint64,
	) (uint64, error)
	AddNonFungibleAsset(
		ctx context.Context, caller string, vaultID uint64,
		contractAddress string, tokenID uint64,
	) (uint64, error)
	AddExternalAsset(
		ctx context.Context, caller string, vaultID uint64,
		chain domain.Chain, externalAddress string, amount uint64,
	) (uint64, error)
	AddBeneficiary(
		ctx context.Context, caller string, vaultID uint64,
		beneficiary string, allocationPercent uint64, canClaimEarly bool,
	) error
	SignForClaim(ctx context.Context, caller string, vaultID uint64) error
	Claim(ctx context.Context, caller string, vaultID, assetID uint64) (uint64, error)

	GetVault(ctx context.Context, vaultID uint64) (*domain.Vault, error)
	GetVaultByOwner(ctx context.Context, owner string) (*domain.Vault, error)
	GetAsset(ctx context.Context, vaultID, assetID uint64) (*domain.Asset, error)
	GetBeneficiary(
		ctx context.Context, vaultID uint64, principal string,
	) (*domain.Beneficiary, error)
	RemainingInactivityTicks(ctx context.Context, vaultID uint64) (uint64, error)
	AssetCount(ctx context.Context, vaultID uint64) (uint64, error)
	BeneficiaryCount(ctx context.Context, vaultID uint64) (uint64, error)
}

type service struct {
	repoManager ports.RepoManager
	ledger      ports.TransferLedger
	ticks       ports.TickSource
	claimMode   ClaimMode

	// mu serializes every mutating operation. The id counters and the
	// uniqueness invariants are not safe under interleaved mutation, the
	// engine models one-transaction-at-a-time settlement.
	mu sync.Mutex
}

func NewService(
	repoManager ports.RepoManager,
	ledger ports.TransferLedger,
	ticks ports.TickSource,
	claimMode ClaimMode,
) (Service, error) {
	if !claimMode.IsValid() {
		return nil, fmt.Errorf("unknown claim mode %q", claimMode)
	}
	return &service{
		repoManager: repoManager,
		ledger:      ledger,
		ticks:       ticks,
		claimMode:   claimMode,
	}, nil
}

func (s *service) CreateVault(
	ctx context.Context, caller string, inactivityThreshold, requiredSignatures uint64,
) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now, err := s.ticks.Now(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read current tick: %w", err)
	}

	vault, err := domain.NewVault(caller, now, inactivityThreshold, requiredSignatures)
	if err != nil {
		return 0, err
	}

	existing, err := s.repoManager.Vaults().GetVaultByOwner(ctx, caller)
	if err != nil {
		return 0, fmt.Errorf("failed to check owner vault: %w", err)
	}
	if existing != nil {
		return 0, domain.ErrVaultAlreadyExists
	}

	id, err := s.repoManager.Counters().Next(ctx, domain.VaultIDCounter)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate vault id: %w", err)
	}
	vault.ID = id

	if err := s.repoManager.Vaults().AddVault(ctx, *vault); err != nil {
		return 0, fmt.Errorf("failed to store vault: %w", err)
	}

	log.WithFields(log.Fields{
		"vault": id, "owner": caller, "threshold": inactivityThreshold,
	}).Debug("created vault")
	return id, nil
}

func (s *service) TouchActivity(
	ctx context.Context, caller string, vaultID uint64,
) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now, err := s.ticks.Now(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read current tick: %w", err)
	}

	vault, err := s.getActiveVault(ctx, vaultID)
	if err != nil {
		return 0, err
	}
	if vault.Owner != caller {
		return 0, domain.ErrNotAuthorized
	}

	vault.LastActivity = now
	if err := s.repoManager.Vaults().UpdateVault(ctx, *vault); err != nil {
		return 0, fmt.Errorf("failed to update vault: %w", err)
	}

	log.WithFields(log.Fields{"vault": vaultID, "tick": now}).Debug("heartbeat")
	return now, nil
}

func (s *service) AddNativeAsset(
	ctx context.Context, caller string, vaultID, amount uint64,
) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now, vault, err := s.ownedVault(ctx, caller, vaultID)
	if err != nil {
		return 0, err
	}

	asset, err := domain.NewNativeAsset(vaultID, amount)
	if err != nil {
		return 0, err
	}

	// Custody of the native unit moves into the vault before the record
	// exists. Ledger failure aborts with nothing stored.
	if err := s.ledger.Deposit(ctx, caller, vaultID, amount); err != nil {
		return 0, fmt.Errorf("failed to transfer into vault custody: %w", err)
	}

	return s.registerAsset(ctx, vault, asset, now)
}

func (s *service) AddFungibleTokenAsset(
	ctx context.Context, caller string, vaultID uint64,
	contractAddress string, amount uint64,
) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now, vault, err := s.ownedVault(ctx, caller, vaultID)
	if err != nil {
		return 0, err
	}

	// Token references are recorded only, the calling environment arranges
	// custody with the token contract separately.
	asset, err := domain.NewFungibleTokenAsset(vaultID, caller, contractAddress, amount)
	if err != nil {
		return 0, err
	}

	return s.registerAsset(ctx, vault, asset, now)
}

func (s *service) AddNonFungibleAsset(
	ctx context.Context, caller string, vaultID uint64,
	contractAddress string, tokenID uint64,
) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now, vault, err := s.ownedVault(ctx, caller, vaultID)
	if err != nil {
		return 0, err
	}

	asset, err := domain.NewNonFungibleAsset(vaultID, caller, contractAddress, tokenID)
	if err != nil {
		return 0, err
	}

	return s.registerAsset(ctx, vault, asset, now)
}

func (s *service) AddExternalAsset(
	ctx context.Context, caller string, vaultID uint64,
	chain domain.Chain, externalAddress string, amount uint64,
) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now, vault, err := s.ownedVault(ctx, caller, vaultID)
	if err != nil {
		return 0, err
	}

	asset, err := domain.NewExternalAsset(vaultID, chain, externalAddress, amount)
	if err != nil {
		return 0, err
	}

	return s.registerAsset(ctx, vault, asset, now)
}

func (s *service) AddBeneficiary(
	ctx context.Context, caller string, vaultID uint64,
	beneficiary string, allocationPercent uint64, canClaimEarly bool,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now, vault, err := s.ownedVault(ctx, caller, vaultID)
	if err != nil {
		return err
	}

	if vault.TotalBeneficiaries >= domain.MaxBeneficiaries {
		return domain.ErrMaxBeneficiariesReached
	}

	record, err := domain.NewBeneficiary(
		vaultID, vault.Owner, beneficiary, allocationPercent, canClaimEarly, now,
	)
	if err != nil {
		return err
	}

	existing, err := s.repoManager.Beneficiaries().GetBeneficiary(ctx, vaultID, beneficiary)
	if err != nil {
		return fmt.Errorf("failed to check beneficiary: %w", err)
	}
	if existing != nil {
		return domain.ErrBeneficiaryAlreadyExists
	}

	if err := s.repoManager.Beneficiaries().AddBeneficiary(ctx, *record); err != nil {
		return fmt.Errorf("failed to store beneficiary: %w", err)
	}

	vault.TotalBeneficiaries++
	vault.LastActivity = now
	if err := s.repoManager.Vaults().UpdateVault(ctx, *vault); err != nil {
		return fmt.Errorf("failed to update vault: %w", err)
	}

	log.WithFields(log.Fields{
		"vault": vaultID, "beneficiary": beneficiary, "pct": allocationPercent,
	}).Debug("added beneficiary")
	return nil
}

func (s *service) SignForClaim(ctx context.Context, caller string, vaultID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.getActiveVault(ctx, vaultID); err != nil {
		return err
	}

	record, err := s.repoManager.Beneficiaries().GetBeneficiary(ctx, vaultID, caller)
	if err != nil {
		return fmt.Errorf("failed to get beneficiary: %w", err)
	}
	// A repeated signature is rejected, not silently accepted.
	if record == nil || record.HasSigned {
		return domain.ErrNotAuthorized
	}

	record.HasSigned = true
	if err := s.repoManager.Beneficiaries().UpdateBeneficiary(ctx, *record); err != nil {
		return fmt.Errorf("failed to update beneficiary: %w", err)
	}

	log.WithFields(log.Fields{"vault": vaultID, "beneficiary": caller}).
		Debug("beneficiary signed for claim")
	return nil
}

func (s *service) GetVault(ctx context.Context, vaultID uint64) (*domain.Vault, error) {
	return s.repoManager.Vaults().GetVault(ctx, vaultID)
}

func (s *service) GetVaultByOwner(ctx context.Context, owner string) (*domain.Vault, error) {
	return s.repoManager.Vaults().GetVaultByOwner(ctx, owner)
}

func (s *service) GetAsset(
	ctx context.Context, vaultID, assetID uint64,
) (*domain.Asset, error) {
	return s.repoManager.Assets().GetAsset(ctx, vaultID, assetID)
}

func (s *service) GetBeneficiary(
	ctx context.Context, vaultID uint64, principal string,
) (*domain.Beneficiary, error) {
	return s.repoManager.Beneficiaries().GetBeneficiary(ctx, vaultID, principal)
}

func (s *service) RemainingInactivityTicks(
	ctx context.Context, vaultID uint64,
) (uint64, error) {
	vault, err := s.repoManager.Vaults().GetVault(ctx, vaultID)
	if err != nil {
		return 0, err
	}
	if vault == nil {
		return 0, domain.ErrVaultNotFound
	}
	now, err := s.ticks.Now(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read current tick: %w", err)
	}
	return vault.RemainingInactivityTicks(now), nil
}

func (s *service) AssetCount(ctx context.Context, vaultID uint64) (uint64, error) {
	vault, err := s.repoManager.Vaults().GetVault(ctx, vaultID)
	if err != nil {
		return 0, err
	}
	if vault == nil {
		return 0, domain.ErrVaultNotFound
	}
	return vault.TotalAssets, nil
}

func (s *service) BeneficiaryCount(ctx context.Context, vaultID uint64) (uint64, error) {
	vault, err := s.repoManager.Vaults().GetVault(ctx, vaultID)
	if err != nil {
		return 0, err
	}
	if vault == nil {
		return 0, domain.ErrVaultNotFound
	}
	return vault.TotalBeneficiaries, nil
}

// getActiveVault resolves a vault that is present and still active.
func (s *service) getActiveVault(
	ctx context.Context, vaultID uint64,
) (*domain.Vault, error) {
	vault, err := s.repoManager.Vaults().GetVault(ctx, vaultID)
	if err != nil {
		return nil, fmt.Errorf("failed to get vault: %w", err)
	}
	if vault == nil || !vault.IsActive {
		return nil, domain.ErrVaultNotFound
	}
	return vault, nil
}

// ownedVault is the shared guard skeleton of every owner mutation: read
// the current tick, resolve the vault and authorize the caller as owner.
func (s *service) ownedVault(
	ctx context.Context, caller string, vaultID uint64,
) (uint64, *domain.Vault, error) {
	now, err := s.ticks.Now(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read current tick: %w", err)
	}
	vault, err := s.getActiveVault(ctx, vaultID)
	if err != nil {
		return 0, nil, err
	}
	if vault.Owner != caller {
		return 0, nil, domain.ErrNotAuthorized
	}
	return now, vault, nil
}

// registerAsset allocates an asset id, stores the record and refreshes the
// vault's counters and activity stamp. All validation has already passed,
// from here the operation only commits.
func (s *service) registerAsset(
	ctx context.Context, vault *domain.Vault, asset *domain.Asset, now uint64,
) (uint64, error) {
	id, err := s.repoManager.Counters().Next(ctx, domain.AssetIDCounter)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate asset id: %w", err)
	}
	asset.ID = id

	if err := s.repoManager.Assets().AddAsset(ctx, *asset); err != nil {
		return 0, fmt.Errorf("failed to store asset: %w", err)
	}

	vault.TotalAssets++
	vault.LastActivity = now
	if err := s.repoManager.Vaults().UpdateVault(ctx, *vault); err != nil {
		return 0, fmt.Errorf("failed to update vault: %w", err)
	}

	log.WithFields(log.Fields{
		"vault": vault.ID, "asset": id, "type": asset.Type.String(),
	}).Debug("registered asset")
	return id, nil
}
