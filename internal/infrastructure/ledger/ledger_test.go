package ledger_test

import (
	"context"
	"testing"

	"github.com/Jakes-stx/AstraVault/internal/infrastructure/ledger"
	"github.com/stretchr/testify/require"
)

const account = "SP2J6ZY48GV1EZ5V2V5RB9MP66SW86PYKKNRV9EJ7"

func TestCustodyLedger(t *testing.T) {
	ctx := context.Background()

	t.Run("deposit moves funds into custody", func(t *testing.T) {
		l := ledger.NewCustodyLedger()
		l.Fund(account, 1000)

		require.NoError(t, l.Deposit(ctx, account, 1, 600))
		require.Equal(t, uint64(400), l.Balance(account))
		require.Equal(t, uint64(600), l.Custody(1))
	})

	t.Run("deposit rejects overdraft", func(t *testing.T) {
		l := ledger.NewCustodyLedger()
		l.Fund(account, 100)

		err := l.Deposit(ctx, account, 1, 101)
		require.Error(t, err)
		require.Equal(t, uint64(100), l.Balance(account))
		require.Zero(t, l.Custody(1))
	})

	t.Run("withdraw moves custody back to an account", func(t *testing.T) {
		l := ledger.NewCustodyLedger()
		l.Fund(account, 1000)
		require.NoError(t, l.Deposit(ctx, account, 1, 1000))

		require.NoError(t, l.Withdraw(ctx, 1, account, 250))
		require.Equal(t, uint64(250), l.Balance(account))
		require.Equal(t, uint64(750), l.Custody(1))
	})

	t.Run("withdraw rejects more than custody holds", func(t *testing.T) {
		l := ledger.NewCustodyLedger()
		l.Fund(account, 100)
		require.NoError(t, l.Deposit(ctx, account, 1, 100))

		err := l.Withdraw(ctx, 1, account, 101)
		require.Error(t, err)
		require.Equal(t, uint64(100), l.Custody(1))
	})

	t.Run("custody is tracked per vault", func(t *testing.T) {
		l := ledger.NewCustodyLedger()
		l.Fund(account, 1000)
		require.NoError(t, l.Deposit(ctx, account, 1, 300))
		require.NoError(t, l.Deposit(ctx, account, 2, 700))

		require.Equal(t, uint64(300), l.Custody(1))
		require.Equal(t, uint64(700), l.Custody(2))
		require.Error(t, l.Withdraw(ctx, 1, account, 301))
	})
}
