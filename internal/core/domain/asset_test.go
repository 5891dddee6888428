package domain

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const caller = "SP2OWNER"

func TestNewNativeAsset(t *testing.T) {
	_, err := NewNativeAsset(1, 0)
	require.ErrorIs(t, err, ErrInvalidAmount)

	asset, err := NewNativeAsset(1, 500)
	require.NoError(t, err)
	require.Equal(t, AssetTypeNative, asset.Type)
	require.Equal(t, ChainStacks, asset.Chain)
	require.Equal(t, uint64(500), asset.Amount)
	require.True(t, asset.IsActive)
}

func TestNewFungibleTokenAsset(t *testing.T) {
	testCases := []struct {
		name        string
		contract    string
		amount      uint64
		expectedErr error
	}{
		{"empty contract", "", 100, ErrInvalidContractAddress},
		{"self reference", caller, 100, ErrInvalidContractAddress},
		{"zero amount", "SP3TOKEN.token", 0, ErrInvalidAmount},
		{"valid", "SP3TOKEN.token", 100, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			asset, err := NewFungibleTokenAsset(1, caller, tc.contract, tc.amount)
			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, AssetTypeFungibleTokenRef, asset.Type)
			require.Equal(t, ChainStacks, asset.Chain)
		})
	}
}

func TestNewNonFungibleAsset(t *testing.T) {
	_, err := NewNonFungibleAsset(1, caller, "SP3NFT.collection", 0)
	require.ErrorIs(t, err, ErrInvalidTokenId)

	_, err = NewNonFungibleAsset(1, caller, caller, 7)
	require.ErrorIs(t, err, ErrInvalidContractAddress)

	asset, err := NewNonFungibleAsset(1, caller, "SP3NFT.collection", 7)
	require.NoError(t, err)
	require.Equal(t, AssetTypeNonFungibleTokenRef, asset.Type)
	require.Equal(t, uint64(1), asset.Amount)
	require.Equal(t, uint64(7), asset.TokenID)
}

func TestNewExternalAsset(t *testing.T) {
	testCases := []struct {
		name         string
		chain        Chain
		address      string
		amount       uint64
		expectedErr  error
		expectedType AssetType
	}{
		{"home chain rejected", ChainStacks, "bc1qaddr", 100, ErrUnsupportedBlockchain, 0},
		{"unknown chain", Chain(42), "bc1qaddr", 100, ErrUnsupportedBlockchain, 0},
		{"empty address", ChainBitcoin, "", 100, ErrInvalidContractAddress, 0},
		{
			"address too long", ChainBitcoin,
			strings.Repeat("a", MaxExternalAddressLen+1), 100,
			ErrInvalidContractAddress, 0,
		},
		{"zero amount", ChainBitcoin, "bc1qaddr", 0, ErrInvalidAmount, 0},
		{"bitcoin coin ref", ChainBitcoin, "bc1qaddr", 100, nil, AssetTypeExternalCoinRef},
		{"ethereum asset ref", ChainEthereum, "0xdeadbeef", 100, nil, AssetTypeExternalAssetRef},
		{"polygon asset ref", ChainPolygon, "0xdeadbeef", 100, nil, AssetTypeExternalAssetRef},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			asset, err := NewExternalAsset(1, tc.chain, tc.address, tc.amount)
			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expectedType, asset.Type)
			require.Equal(t, tc.chain, asset.Chain)
		})
	}
}

func TestClaimable(t *testing.T) {
	testCases := []struct {
		amount   uint64
		percent  uint64
		expected uint64
	}{
		{1000, 33, 330},
		{1000, 100, 1000},
		{1000, 1, 10},
		{99, 1, 0},
		{1, 50, 0},
		{1_000_000, 50, 500_000},
		{333, 33, 109},
		// Amounts near the uint64 ceiling must not wrap in the
		// intermediate product.
		{1 << 63, 50, 1 << 62},
		{math.MaxUint64, 100, math.MaxUint64},
		{math.MaxUint64, 1, math.MaxUint64 / 100},
		{math.MaxUint64 - 1, 50, (math.MaxUint64 - 1) / 2},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%d_pct_of_%d", tc.percent, tc.amount), func(t *testing.T) {
			asset := Asset{Amount: tc.amount}
			require.Equal(t, tc.expected, asset.Claimable(tc.percent))
		})
	}
}

func TestEnumStrings(t *testing.T) {
	require.Equal(t, "Native", AssetTypeNative.String())
	require.Equal(t, "ExternalAssetRef", AssetTypeExternalAssetRef.String())
	require.Equal(t, "Stacks", ChainStacks.String())
	require.Equal(t, "Polygon", ChainPolygon.String())

	// Out-of-range values can show up in logs when a record decodes from
	// a corrupted store; they must stringify, not panic.
	require.Equal(t, "Unknown", AssetType(42).String())
	require.Equal(t, "Unknown", Chain(42).String())
}

func TestDeplete(t *testing.T) {
	asset, err := NewNativeAsset(1, 1000)
	require.NoError(t, err)

	asset.Deplete(330)
	require.Equal(t, uint64(670), asset.Amount)
	require.True(t, asset.IsActive)

	asset.Deplete(670)
	require.Zero(t, asset.Amount)
	require.False(t, asset.IsActive)
}
