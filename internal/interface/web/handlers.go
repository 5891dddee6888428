package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Jakes-stx/AstraVault/internal/core/application"
	"github.com/Jakes-stx/AstraVault/internal/core/domain"
	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
)

// principalHeader carries the authenticated caller identity. The host
// environment in front of the daemon is responsible for authenticating it,
// the engine only needs an explicit caller principal per operation.
const principalHeader = "X-Astra-Principal"

type handler struct {
	svc application.Service
}

func newHandler(svc application.Service) *handler {
	return &handler{svc: svc}
}

type createVaultRequest struct {
	InactivityThreshold uint64 `json:"inactivityThreshold"`
	RequiredSignatures  uint64 `json:"requiredSignatures"`
}

type addNativeAssetRequest struct {
	Amount uint64 `json:"amount"`
}

type addFungibleAssetRequest struct {
	ContractAddress string `json:"contractAddress"`
	Amount          uint64 `json:"amount"`
}

type addNonFungibleAssetRequest struct {
	ContractAddress string `json:"contractAddress"`
	TokenID         uint64 `json:"tokenId"`
}

type addExternalAssetRequest struct {
	Blockchain      string `json:"blockchain"`
	ExternalAddress string `json:"externalAddress"`
	Amount          uint64 `json:"amount"`
}

type addBeneficiaryRequest struct {
	Beneficiary       string `json:"beneficiary"`
	AllocationPercent uint64 `json:"allocationPercent"`
	CanClaimEarly     bool   `json:"canClaimEarly"`
}

type vaultResponse struct {
	ID                  uint64 `json:"id"`
	Owner               string `json:"owner"`
	CreatedAt           uint64 `json:"createdAt"`
	LastActivity        uint64 `json:"lastActivity"`
	InactivityThreshold uint64 `json:"inactivityThreshold"`
	RequiredSignatures  uint64 `json:"requiredSignatures"`
	IsActive            bool   `json:"isActive"`
	IsClaimed           bool   `json:"isClaimed"`
	TotalAssets         uint64 `json:"totalAssets"`
	TotalBeneficiaries  uint64 `json:"totalBeneficiaries"`
}

type assetResponse struct {
	VaultID         uint64 `json:"vaultId"`
	ID              uint64 `json:"id"`
	Type            string `json:"type"`
	Blockchain      string `json:"blockchain"`
	ContractAddress string `json:"contractAddress,omitempty"`
	TokenID         uint64 `json:"tokenId,omitempty"`
	Amount          uint64 `json:"amount"`
	ExternalAddress string `json:"externalAddress,omitempty"`
	IsActive        bool   `json:"isActive"`
}

type beneficiaryResponse struct {
	VaultID           uint64 `json:"vaultId"`
	Principal         string `json:"principal"`
	AllocationPercent uint64 `json:"allocationPercent"`
	CanClaimEarly     bool   `json:"canClaimEarly"`
	AddedAt           uint64 `json:"addedAt"`
	HasSigned         bool   `json:"hasSigned"`
}

func toVaultResponse(v domain.Vault) vaultResponse {
	return vaultResponse{
		ID:                  v.ID,
		Owner:               v.Owner,
		CreatedAt:           v.CreatedAt,
		LastActivity:        v.LastActivity,
		InactivityThreshold: v.InactivityThreshold,
		RequiredSignatures:  v.RequiredSignatures,
		IsActive:            v.IsActive,
		IsClaimed:           v.IsClaimed,
		TotalAssets:         v.TotalAssets,
		TotalBeneficiaries:  v.TotalBeneficiaries,
	}
}

func toAssetResponse(a domain.Asset) assetResponse {
	return assetResponse{
		VaultID:         a.VaultID,
		ID:              a.ID,
		Type:            a.Type.String(),
		Blockchain:      a.Chain.String(),
		ContractAddress: a.ContractAddress,
		TokenID:         a.TokenID,
		Amount:          a.Amount,
		ExternalAddress: a.ExternalAddress,
		IsActive:        a.IsActive,
	}
}

func toBeneficiaryResponse(b domain.Beneficiary) beneficiaryResponse {
	return beneficiaryResponse{
		VaultID:           b.VaultID,
		Principal:         b.Principal,
		AllocationPercent: b.AllocationPercent,
		CanClaimEarly:     b.CanClaimEarly,
		AddedAt:           b.AddedAt,
		HasSigned:         b.HasSigned,
	}
}

func (h *handler) createVault(w http.ResponseWriter, r *http.Request) {
	caller, ok := principal(w, r)
	if !ok {
		return
	}
	var req createVaultRequest
	if !decode(w, r, &req) {
		return
	}
	id, err := h.svc.CreateVault(
		r.Context(), caller, req.InactivityThreshold, req.RequiredSignatures,
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]uint64{"vaultId": id})
}

func (h *handler) touchActivity(w http.ResponseWriter, r *http.Request) {
	caller, ok := principal(w, r)
	if !ok {
		return
	}
	vaultID, ok := pathID(w, r, "vaultID")
	if !ok {
		return
	}
	tickValue, err := h.svc.TouchActivity(r.Context(), caller, vaultID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]uint64{"lastActivity": tickValue})
}

func (h *handler) addNativeAsset(w http.ResponseWriter, r *http.Request) {
	caller, ok := principal(w, r)
	if !ok {
		return
	}
	vaultID, ok := pathID(w, r, "vaultID")
	if !ok {
		return
	}
	var req addNativeAssetRequest
	if !decode(w, r, &req) {
		return
	}
	id, err := h.svc.AddNativeAsset(r.Context(), caller, vaultID, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]uint64{"assetId": id})
}

func (h *handler) addFungibleAsset(w http.ResponseWriter, r *http.Request) {
	caller, ok := principal(w, r)
	if !ok {
		return
	}
	vaultID, ok := pathID(w, r, "vaultID")
	if !ok {
		return
	}
	var req addFungibleAssetRequest
	if !decode(w, r, &req) {
		return
	}
	id, err := h.svc.AddFungibleTokenAsset(
		r.Context(), caller, vaultID, req.ContractAddress, req.Amount,
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]uint64{"assetId": id})
}

func (h *handler) addNonFungibleAsset(w http.ResponseWriter, r *http.Request) {
	caller, ok := principal(w, r)
	if !ok {
		return
	}
	vaultID, ok := pathID(w, r, "vaultID")
	if !ok {
		return
	}
	var req addNonFungibleAssetRequest
	if !decode(w, r, &req) {
		return
	}
	id, err := h.svc.AddNonFungibleAsset(
		r.Context(), caller, vaultID, req.ContractAddress, req.TokenID,
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]uint64{"assetId": id})
}

func (h *handler) addExternalAsset(w http.ResponseWriter, r *http.Request) {
	caller, ok := principal(w, r)
	if !ok {
		return
	}
	vaultID, ok := pathID(w, r, "vaultID")
	if !ok {
		return
	}
	var req addExternalAssetRequest
	if !decode(w, r, &req) {
		return
	}
	chain, err := parseChain(req.Blockchain)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := h.svc.AddExternalAsset(
		r.Context(), caller, vaultID, chain, req.ExternalAddress, req.Amount,
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]uint64{"assetId": id})
}

func (h *handler) addBeneficiary(w http.ResponseWriter, r *http.Request) {
	caller, ok := principal(w, r)
	if !ok {
		return
	}
	vaultID, ok := pathID(w, r, "vaultID")
	if !ok {
		return
	}
	var req addBeneficiaryRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.svc.AddBeneficiary(
		r.Context(), caller, vaultID,
		req.Beneficiary, req.AllocationPercent, req.CanClaimEarly,
	); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]bool{"ok": true})
}

func (h *handler) signForClaim(w http.ResponseWriter, r *http.Request) {
	caller, ok := principal(w, r)
	if !ok {
		return
	}
	vaultID, ok := pathID(w, r, "vaultID")
	if !ok {
		return
	}
	if err := h.svc.SignForClaim(r.Context(), caller, vaultID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *handler) claim(w http.ResponseWriter, r *http.Request) {
	caller, ok := principal(w, r)
	if !ok {
		return
	}
	vaultID, ok := pathID(w, r, "vaultID")
	if !ok {
		return
	}
	assetID, ok := pathID(w, r, "assetID")
	if !ok {
		return
	}
	claimed, err := h.svc.Claim(r.Context(), caller, vaultID, assetID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]uint64{"claimedAmount": claimed})
}

func (h *handler) getVault(w http.ResponseWriter, r *http.Request) {
	vaultID, ok := pathID(w, r, "vaultID")
	if !ok {
		return
	}
	vault, err := h.svc.GetVault(r.Context(), vaultID)
	if err != nil {
		writeError(w, err)
		return
	}
	if vault == nil {
		writeError(w, domain.ErrVaultNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toVaultResponse(*vault))
}

func (h *handler) getVaultByOwner(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")
	vault, err := h.svc.GetVaultByOwner(r.Context(), owner)
	if err != nil {
		writeError(w, err)
		return
	}
	if vault == nil {
		writeError(w, domain.ErrVaultNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toVaultResponse(*vault))
}

func (h *handler) getAsset(w http.ResponseWriter, r *http.Request) {
	vaultID, ok := pathID(w, r, "vaultID")
	if !ok {
		return
	}
	assetID, ok := pathID(w, r, "assetID")
	if !ok {
		return
	}
	asset, err := h.svc.GetAsset(r.Context(), vaultID, assetID)
	if err != nil {
		writeError(w, err)
		return
	}
	if asset == nil {
		writeError(w, domain.ErrAssetNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toAssetResponse(*asset))
}

func (h *handler) getBeneficiary(w http.ResponseWriter, r *http.Request) {
	vaultID, ok := pathID(w, r, "vaultID")
	if !ok {
		return
	}
	principal := chi.URLParam(r, "principal")
	record, err := h.svc.GetBeneficiary(r.Context(), vaultID, principal)
	if err != nil {
		writeError(w, err)
		return
	}
	// A plain lookup miss, not a permission failure: the closed domain
	// enumeration has no beneficiary-not-found member, so answer 404
	// directly like the vault and asset getters do for absent records.
	if record == nil {
		writeJSON(w, http.StatusNotFound, errorBody{
			Error: "beneficiary not found",
		})
		return
	}
	writeJSON(w, http.StatusOK, toBeneficiaryResponse(*record))
}

func (h *handler) remainingInactivityTicks(w http.ResponseWriter, r *http.Request) {
	vaultID, ok := pathID(w, r, "vaultID")
	if !ok {
		return
	}
	remaining, err := h.svc.RemainingInactivityTicks(r.Context(), vaultID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]uint64{"remainingTicks": remaining})
}

func parseChain(name string) (domain.Chain, error) {
	switch name {
	case "stacks", "Stacks":
		return domain.ChainStacks, nil
	case "bitcoin", "Bitcoin":
		return domain.ChainBitcoin, nil
	case "ethereum", "Ethereum":
		return domain.ChainEthereum, nil
	case "polygon", "Polygon":
		return domain.ChainPolygon, nil
	default:
		return 0, domain.ErrUnsupportedBlockchain
	}
}

func principal(w http.ResponseWriter, r *http.Request) (string, bool) {
	caller := r.Header.Get(principalHeader)
	if caller == "" {
		writeJSON(w, http.StatusUnauthorized, errorBody{
			Error: "missing caller principal",
		})
		return "", false
	}
	return caller, true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uint64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Error: "invalid " + name,
		})
		return 0, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "malformed request body"})
		return false
	}
	return true
}

type errorBody struct {
	Error string `json:"error"`
	Code  uint16 `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	body := errorBody{Error: err.Error()}
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		body.Code = domainErr.Code()
	}
	if status == http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
		body.Error = "internal error"
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// nolint
	json.NewEncoder(w).Encode(body)
}
