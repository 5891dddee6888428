package domain

// Error is a member of the closed set of failures the vault engine can
// surface. Codes mirror the on-chain contract's error constants so callers
// can match on them across surfaces.
type Error struct {
	ErrCode uint16
	Name    string
}

func (e *Error) Error() string {
	return e.Name
}

func (e *Error) Code() uint16 {
	return e.ErrCode
}

var (
	ErrNotAuthorized            = &Error{100, "not authorized"}
	ErrVaultNotFound            = &Error{101, "vault not found"}
	ErrVaultAlreadyExists       = &Error{102, "vault already exists"}
	ErrInvalidTimelock          = &Error{103, "invalid timelock"}
	ErrInvalidBeneficiary       = &Error{104, "invalid beneficiary"}
	ErrInvalidAmount            = &Error{105, "invalid amount"}
	ErrVaultAlreadyClaimed      = &Error{106, "vault already claimed"}
	ErrTimelockNotExpired       = &Error{107, "timelock not expired"}
	ErrInsufficientBalance      = &Error{108, "insufficient balance"}
	ErrBeneficiaryAlreadyExists = &Error{109, "beneficiary already exists"}
	ErrMaxBeneficiariesReached  = &Error{110, "max beneficiaries reached"}
	ErrInvalidContractAddress   = &Error{111, "invalid contract address"}
	ErrInvalidTokenId           = &Error{112, "invalid token id"}
	ErrUnsupportedBlockchain    = &Error{113, "unsupported blockchain"}
	ErrAssetNotFound            = &Error{114, "asset not found"}
	ErrInvalidAssetType         = &Error{115, "invalid asset type"}
)

// Errors lists every member of the enumeration, useful for exhaustive
// mapping at the transport layer.
var Errors = []*Error{
	ErrNotAuthorized,
	ErrVaultNotFound,
	ErrVaultAlreadyExists,
	ErrInvalidTimelock,
	ErrInvalidBeneficiary,
	ErrInvalidAmount,
	ErrVaultAlreadyClaimed,
	ErrTimelockNotExpired,
	ErrInsufficientBalance,
	ErrBeneficiaryAlreadyExists,
	ErrMaxBeneficiariesReached,
	ErrInvalidContractAddress,
	ErrInvalidTokenId,
	ErrUnsupportedBlockchain,
	ErrAssetNotFound,
	ErrInvalidAssetType,
}
