package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewVault(t *testing.T) {
	testCases := []struct {
		name               string
		threshold          uint64
		requiredSignatures uint64
		expectedErr        error
	}{
		{"threshold below minimum", MinInactivityThreshold - 1, 1, ErrInvalidTimelock},
		{"threshold zero", 0, 1, ErrInvalidTimelock},
		{"threshold above maximum", MaxInactivityThreshold + 1, 1, ErrInvalidTimelock},
		{"zero required signatures", MinInactivityThreshold, 0, ErrNotAuthorized},
		{"minimum threshold", MinInactivityThreshold, 1, nil},
		{"maximum threshold", MaxInactivityThreshold, 1, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			vault, err := NewVault("SP2OWNER", 1000, tc.threshold, tc.requiredSignatures)
			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
				require.Nil(t, vault)
				return
			}
			require.NoError(t, err)
			require.True(t, vault.IsActive)
			require.False(t, vault.IsClaimed)
			require.Equal(t, uint64(1000), vault.CreatedAt)
			require.Equal(t, uint64(1000), vault.LastActivity)
			require.Zero(t, vault.TotalAssets)
			require.Zero(t, vault.TotalBeneficiaries)
		})
	}
}

func TestVaultInactivity(t *testing.T) {
	vault, err := NewVault("SP2OWNER", 1000, 144, 1)
	require.NoError(t, err)

	require.Equal(t, uint64(144), vault.RemainingInactivityTicks(1000))
	require.Equal(t, uint64(44), vault.RemainingInactivityTicks(1100))
	require.False(t, vault.InactivityThresholdMet(1143))

	// Once the threshold is met it stays met for every later tick.
	for _, now := range []uint64{1144, 1145, 2000, 100000} {
		require.True(t, vault.InactivityThresholdMet(now))
		require.Zero(t, vault.RemainingInactivityTicks(now))
	}

	// A heartbeat strictly resets the elapsed window.
	vault.LastActivity = 2000
	require.False(t, vault.InactivityThresholdMet(2000))
	require.Equal(t, uint64(144), vault.RemainingInactivityTicks(2000))
}
