package domain

import (
	"math/bits"
)

type AssetType uint8

const (
	AssetTypeNative AssetType = iota
	AssetTypeFungibleTokenRef
	AssetTypeNonFungibleTokenRef
	AssetTypeExternalCoinRef
	AssetTypeExternalAssetRef
)

func (t AssetType) String() string {
	switch t {
	case AssetTypeNative:
		return "Native"
	case AssetTypeFungibleTokenRef:
		return "FungibleTokenRef"
	case AssetTypeNonFungibleTokenRef:
		return "NonFungibleTokenRef"
	case AssetTypeExternalCoinRef:
		return "ExternalCoinRef"
	case AssetTypeExternalAssetRef:
		return "ExternalAssetRef"
	default:
		return "Unknown"
	}
}

type Chain uint8

const (
	ChainStacks Chain = iota
	ChainBitcoin
	ChainEthereum
	ChainPolygon
)

func (c Chain) String() string {
	switch c {
	case ChainStacks:
		return "Stacks"
	case ChainBitcoin:
		return "Bitcoin"
	case ChainEthereum:
		return "Ethereum"
	case ChainPolygon:
		return "Polygon"
	default:
		return "Unknown"
	}
}

// IsHome reports whether the chain is the one hosting the vault engine.
// Native coin, fungible token and NFT references live on the home chain,
// external references must not.
func (c Chain) IsHome() bool {
	return c == ChainStacks
}

func (c Chain) IsSupported() bool {
	switch c {
	case ChainStacks, ChainBitcoin, ChainEthereum, ChainPolygon:
		return true
	default:
		return false
	}
}

// MaxExternalAddressLen bounds the address strings stored for
// external-chain references.
const MaxExternalAddressLen = 100

// Asset is one entry of a vault's holdings. It is a tagged variant: Type
// selects which of the optional fields are meaningful, the per-variant
// constructors below are the only way the engine creates one.
type Asset struct {
	VaultID uint64
	ID      uint64
	Type    AssetType
	Chain   Chain
	// ContractAddress identifies the token or NFT contract for home-chain
	// references.
	ContractAddress string
	// TokenID is set for NFT references only.
	TokenID uint64
	Amount  uint64
	// ExternalAddress locates the asset on a non-home chain.
	ExternalAddress string
	IsActive        bool
}

// NewNativeAsset records an amount of the home chain's native unit held in
// vault custody.
func NewNativeAsset(vaultID, amount uint64) (*Asset, error) {
	if amount == 0 {
		return nil, ErrInvalidAmount
	}
	return &Asset{
		VaultID:  vaultID,
		Type:     AssetTypeNative,
		Chain:    ChainStacks,
		Amount:   amount,
		IsActive: true,
	}, nil
}

// NewFungibleTokenAsset records a reference to a home-chain fungible token
// balance. The caller principal is rejected as contract to prevent a vault
// from referencing its own creator as a token contract.
func NewFungibleTokenAsset(
	vaultID uint64, caller, contractAddress string, amount uint64,
) (*Asset, error) {
	if contractAddress == "" || contractAddress == caller {
		return nil, ErrInvalidContractAddress
	}
	if amount == 0 {
		return nil, ErrInvalidAmount
	}
	return &Asset{
		VaultID:         vaultID,
		Type:            AssetTypeFungibleTokenRef,
		Chain:           ChainStacks,
		ContractAddress: contractAddress,
		Amount:          amount,
		IsActive:        true,
	}, nil
}

// NewNonFungibleAsset records a reference to a home-chain NFT. Amount is
// fixed at 1.
func NewNonFungibleAsset(
	vaultID uint64, caller, contractAddress string, tokenID uint64,
) (*Asset, error) {
	if contractAddress == "" || contractAddress == caller {
		return nil, ErrInvalidContractAddress
	}
	if tokenID == 0 {
		return nil, ErrInvalidTokenId
	}
	return &Asset{
		VaultID:         vaultID,
		Type:            AssetTypeNonFungibleTokenRef,
		Chain:           ChainStacks,
		ContractAddress: contractAddress,
		TokenID:         tokenID,
		Amount:          1,
		IsActive:        true,
	}, nil
}

// NewExternalAsset records a reference to value held on a non-home chain.
// The engine never verifies nor moves it. Bitcoin references are plain
// coin holdings at an address, other chains carry tokenized assets.
func NewExternalAsset(
	vaultID uint64, chain Chain, externalAddress string, amount uint64,
) (*Asset, error) {
	if !chain.IsSupported() || chain.IsHome() {
		return nil, ErrUnsupportedBlockchain
	}
	if externalAddress == "" || len(externalAddress) > MaxExternalAddressLen {
		return nil, ErrInvalidContractAddress
	}
	if amount == 0 {
		return nil, ErrInvalidAmount
	}
	assetType := AssetTypeExternalAssetRef
	if chain == ChainBitcoin {
		assetType = AssetTypeExternalCoinRef
	}
	return &Asset{
		VaultID:         vaultID,
		Type:            assetType,
		Chain:           chain,
		ExternalAddress: externalAddress,
		Amount:          amount,
		IsActive:        true,
	}, nil
}

// Claimable applies an allocation percentage to the asset's current
// remaining amount with floor division. The product is computed in 128
// bits so amounts near the uint64 ceiling do not wrap; with the
// percentage bounded at 100 the quotient always fits back in 64 bits.
func (a Asset) Claimable(allocationPercent uint64) uint64 {
	hi, lo := bits.Mul64(a.Amount, allocationPercent)
	quo, _ := bits.Div64(hi, lo, 100)
	return quo
}

// Deplete removes a claimed quantity from the asset and deactivates it
// once drained. Callers must have bounded amount by Claimable.
func (a *Asset) Deplete(amount uint64) {
	if amount >= a.Amount {
		a.Amount = 0
	} else {
		a.Amount -= amount
	}
	a.IsActive = a.Amount > 0
}
