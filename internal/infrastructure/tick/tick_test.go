package tick_test

import (
	"context"
	"testing"
	"time"

	"github.com/Jakes-stx/AstraVault/internal/infrastructure/tick"
	"github.com/stretchr/testify/require"
)

func TestManual(t *testing.T) {
	ctx := context.Background()

	src := tick.NewManual(100)
	now, err := src.Now(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(100), now)

	require.Equal(t, uint64(150), src.Advance(50))
	now, err = src.Now(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(150), now)

	require.NoError(t, src.Set(200))
	require.NoError(t, src.Set(200))

	// Ticks never go backwards.
	require.Error(t, src.Set(199))
	now, err = src.Now(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(200), now)
}

func TestSystem(t *testing.T) {
	ctx := context.Background()

	_, err := tick.NewSystem(0)
	require.Error(t, err)

	src, err := tick.NewSystem(time.Second)
	require.NoError(t, err)

	first, err := src.Now(ctx)
	require.NoError(t, err)
	require.NotZero(t, first)

	second, err := src.Now(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, second, first)
}
