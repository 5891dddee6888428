package ledger

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
)

// CustodyLedger is an in-process stand-in for the host chain's native
// transfer primitive: it tracks account balances and per-vault custody and
// refuses overdrafts. On a real deployment the engine would call out to
// the chain instead.
type CustodyLedger struct {
	mu       sync.Mutex
	accounts map[string]uint64
	custody  map[uint64]uint64
}

func NewCustodyLedger() *CustodyLedger {
	return &CustodyLedger{
		accounts: make(map[string]uint64),
		custody:  make(map[uint64]uint64),
	}
}

// Fund credits an account with native units, the faucet of the in-process
// ledger.
func (l *CustodyLedger) Fund(account string, amount uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.accounts[account] += amount
}

func (l *CustodyLedger) Deposit(
	ctx context.Context, from string, vaultID uint64, amount uint64,
) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.accounts[from] < amount {
		return fmt.Errorf(
			"account %s holds %d, cannot deposit %d", from, l.accounts[from], amount,
		)
	}
	l.accounts[from] -= amount
	l.custody[vaultID] += amount

	log.WithFields(log.Fields{
		"from": from, "vault": vaultID, "amount": amount,
	}).Trace("ledger deposit")
	return nil
}

func (l *CustodyLedger) Withdraw(
	ctx context.Context, vaultID uint64, to string, amount uint64,
) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.custody[vaultID] < amount {
		return fmt.Errorf(
			"vault %d custody holds %d, cannot withdraw %d",
			vaultID, l.custody[vaultID], amount,
		)
	}
	l.custody[vaultID] -= amount
	l.accounts[to] += amount

	log.WithFields(log.Fields{
		"vault": vaultID, "to": to, "amount": amount,
	}).Trace("ledger withdraw")
	return nil
}

// Balance reports an account's spendable native units.
func (l *CustodyLedger) Balance(account string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.accounts[account]
}

// Custody reports the native units held for a vault.
func (l *CustodyLedger) Custody(vaultID uint64) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.custody[vaultID]
}
