package ports

import "context"

// TransferLedger moves quantities of the home chain's native unit between
// account principals and vault custody. The engine decides how much and
// whether, the ledger performs the movement; any failure aborts the whole
// operation with no state change.
type TransferLedger interface {
	// Deposit moves amount from the account into the vault's custody.
	Deposit(ctx context.Context, from string, vaultID uint64, amount uint64) error
	// Withdraw moves amount out of the vault's custody to the account.
	Withdraw(ctx context.Context, vaultID uint64, to string, amount uint64) error
}
