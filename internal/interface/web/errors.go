package web

import (
	"errors"
	"net/http"

	"github.com/Jakes-stx/AstraVault/internal/core/domain"
)

// statusFromError maps the closed domain error enumeration onto HTTP
// statuses. Anything outside the enumeration is an internal failure.
func statusFromError(err error) int {
	var domainErr *domain.Error
	if !errors.As(err, &domainErr) {
		return http.StatusInternalServerError
	}
	switch domainErr {
	case domain.ErrNotAuthorized:
		return http.StatusForbidden
	case domain.ErrVaultNotFound, domain.ErrAssetNotFound:
		return http.StatusNotFound
	case domain.ErrInvalidTimelock, domain.ErrInvalidBeneficiary,
		domain.ErrInvalidAmount, domain.ErrInvalidContractAddress,
		domain.ErrInvalidTokenId, domain.ErrUnsupportedBlockchain,
		domain.ErrInvalidAssetType:
		return http.StatusBadRequest
	case domain.ErrVaultAlreadyExists, domain.ErrVaultAlreadyClaimed,
		domain.ErrBeneficiaryAlreadyExists, domain.ErrMaxBeneficiariesReached:
		return http.StatusConflict
	case domain.ErrInsufficientBalance:
		return http.StatusUnprocessableEntity
	case domain.ErrTimelockNotExpired:
		return http.StatusLocked
	default:
		return http.StatusInternalServerError
	}
}
