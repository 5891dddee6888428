package application

import (
	"context"
	"fmt"

	"github.com/Jakes-stx/AstraVault/internal/core/domain"
	log "github.com/sirupsen/logrus"
)

// Claim extracts the caller's share of a native asset. The caller must
// hold a beneficiary record on the vault and the release predicate must
// hold: either the owner's inactivity window elapsed, or the caller is
// early-claim eligible and has signed. The share is the beneficiary's
// allocation applied to the asset's current remaining amount with floor
// division, so over-allocated vaults simply pay late claimers out of
// whatever is left.
func (s *service) Claim(
	ctx context.Context, caller string, vaultID, assetID uint64,
) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now, err := s.ticks.Now(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read current tick: %w", err)
	}

	vault, err := s.repoManager.Vaults().GetVault(ctx, vaultID)
	if err != nil {
		return 0, fmt.Errorf("failed to get vault: %w", err)
	}
	if vault == nil {
		return 0, domain.ErrVaultNotFound
	}

	record, err := s.repoManager.Beneficiaries().GetBeneficiary(ctx, vaultID, caller)
	if err != nil {
		return 0, fmt.Errorf("failed to get beneficiary: %w", err)
	}
	if record == nil {
		return 0, domain.ErrNotAuthorized
	}

	asset, err := s.repoManager.Assets().GetAsset(ctx, vaultID, assetID)
	if err != nil {
		return 0, fmt.Errorf("failed to get asset: %w", err)
	}
	if asset == nil || !asset.IsActive {
		return 0, domain.ErrAssetNotFound
	}
	// This entry point releases vault-custodied native coin only,
	// references to tokens and external assets have no custody to move.
	if asset.Type != domain.AssetTypeNative {
		return 0, domain.ErrInvalidAssetType
	}

	if vault.IsClaimed {
		return 0, domain.ErrVaultAlreadyClaimed
	}

	claimable := asset.Claimable(record.AllocationPercent)
	if claimable == 0 {
		return 0, domain.ErrInsufficientBalance
	}

	if !domain.ClaimAuthorized(*vault, *record, now) {
		return 0, domain.ErrTimelockNotExpired
	}

	if err := s.ledger.Withdraw(ctx, vaultID, caller, claimable); err != nil {
		return 0, fmt.Errorf("failed to transfer out of vault custody: %w", err)
	}

	asset.Deplete(claimable)
	if err := s.repoManager.Assets().UpdateAsset(ctx, *asset); err != nil {
		return 0, fmt.Errorf("failed to update asset: %w", err)
	}

	// The legacy single-balance contract marks the whole vault claimed
	// once its balance drains, the multi-asset variant keeps depletion
	// per asset.
	if s.claimMode == ClaimModeLegacy && asset.Amount == 0 {
		vault.IsClaimed = true
		if err := s.repoManager.Vaults().UpdateVault(ctx, *vault); err != nil {
			return 0, fmt.Errorf("failed to update vault: %w", err)
		}
	}

	log.WithFields(log.Fields{
		"vault": vaultID, "asset": assetID, "beneficiary": caller,
		"claimed": claimable, "remaining": asset.Amount,
	}).Info("processed claim")
	return claimable, nil
}
