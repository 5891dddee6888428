package domain

// MaxBeneficiaries bounds how many beneficiary records a vault can hold.
const MaxBeneficiaries = 10

// Beneficiary is a per-vault allocation record. The engine does not
// require allocations across a vault's beneficiaries to sum to 100%: each
// claim is computed independently against the asset's current remaining
// amount.
type Beneficiary struct {
	VaultID           uint64
	Principal         string
	AllocationPercent uint64
	CanClaimEarly     bool
	AddedAt           uint64
	HasSigned         bool
}

func NewBeneficiary(
	vaultID uint64, owner, principal string,
	allocationPercent uint64, canClaimEarly bool, addedAt uint64,
) (*Beneficiary, error) {
	if allocationPercent == 0 || allocationPercent > 100 {
		return nil, ErrInvalidBeneficiary
	}
	if principal == "" || principal == owner {
		return nil, ErrInvalidBeneficiary
	}
	return &Beneficiary{
		VaultID:           vaultID,
		Principal:         principal,
		AllocationPercent: allocationPercent,
		CanClaimEarly:     canClaimEarly,
		AddedAt:           addedAt,
	}, nil
}

// ClaimAuthorized is the dual-mode release predicate: a claim is
// authorized once the owner's inactivity window has elapsed, or at any
// time for an early-claim beneficiary who has signed. Only the claiming
// beneficiary's own signature flag is consulted; RequiredSignatures is
// stored on the vault but deliberately never tallied against distinct
// signers.
func ClaimAuthorized(v Vault, b Beneficiary, now uint64) bool {
	if v.InactivityThresholdMet(now) {
		return true
	}
	return b.CanClaimEarly && b.HasSigned
}
