package domain

import (
	"encoding/json"
)

const (
	// Inactivity threshold policy bounds, expressed in chain ticks
	// (one tick per block, ~10 minutes): one day to one year.
	MinInactivityThreshold uint64 = 144
	MaxInactivityThreshold uint64 = 52560
)

// Vault is the per-owner container of assets and beneficiary rules.
// Exactly one live vault exists per owner principal.
type Vault struct {
	ID                  uint64
	Owner               string
	CreatedAt           uint64
	LastActivity        uint64
	InactivityThreshold uint64
	RequiredSignatures  uint64
	IsActive            bool
	IsClaimed           bool
	TotalAssets         uint64
	TotalBeneficiaries  uint64
}

func (v Vault) String() string {
	// nolint
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// NewVault validates the creation policy and returns a fresh vault stamped
// at the given tick. The ID is assigned by the caller once validation and
// the owner-uniqueness check have passed, so failed creates never consume
// an identifier.
func NewVault(
	owner string, createdAt, inactivityThreshold, requiredSignatures uint64,
) (*Vault, error) {
	if inactivityThreshold < MinInactivityThreshold ||
		inactivityThreshold > MaxInactivityThreshold {
		return nil, ErrInvalidTimelock
	}
	if requiredSignatures == 0 {
		return nil, ErrNotAuthorized
	}
	return &Vault{
		Owner:               owner,
		CreatedAt:           createdAt,
		LastActivity:        createdAt,
		InactivityThreshold: inactivityThreshold,
		RequiredSignatures:  requiredSignatures,
		IsActive:            true,
	}, nil
}

// Elapsed returns the number of ticks since the owner's last recorded
// activity. The clock is monotonic but a heartbeat in the current tick
// makes last activity equal to now, so guard against underflow anyway.
func (v Vault) Elapsed(now uint64) uint64 {
	if now < v.LastActivity {
		return 0
	}
	return now - v.LastActivity
}

// InactivityThresholdMet reports whether the owner has been inactive long
// enough for beneficiaries to gain the automatic claim right. Once true it
// stays true for every later tick until a heartbeat resets the window.
func (v Vault) InactivityThresholdMet(now uint64) bool {
	return v.Elapsed(now) >= v.InactivityThreshold
}

// RemainingInactivityTicks returns how many ticks are left before the
// inactivity threshold is met, floored at zero.
func (v Vault) RemainingInactivityTicks(now uint64) uint64 {
	elapsed := v.Elapsed(now)
	if elapsed >= v.InactivityThreshold {
		return 0
	}
	return v.InactivityThreshold - elapsed
}
