package token

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Snapshot is a serializable copy of the full ledger state, used by the node
// to persist and restore state across restarts.
type Snapshot struct {
	Name        string                                        `json:"name"`
	Symbol      string                                        `json:"symbol"`
	Decimals    uint8                                         `json:"decimals"`
	Admin       common.Address                                `json:"admin"`
	TotalSupply *big.Int                                      `json:"totalSupply"`
	Balances    map[common.Address]*big.Int                   `json:"balances"`
	Allowances  map[common.Address]map[common.Address]*big.Int `json:"allowances"`
}

// Snapshot returns a deep copy of the ledger state.
func (l *Ledger) Snapshot() *Snapshot {
	snap := &Snapshot{
		Name:        l.name,
		Symbol:      l.symbol,
		Decimals:    l.decimals,
		Admin:       l.admin,
		TotalSupply: new(big.Int).Set(l.totalSupply),
		Balances:    make(map[common.Address]*big.Int, len(l.balances)),
		Allowances:  make(map[common.Address]map[common.Address]*big.Int, len(l.allowances)),
	}
	for addr, bal := range l.balances {
		snap.Balances[addr] = new(big.Int).Set(bal)
	}
	for owner, granted := range l.allowances {
		clone := make(map[common.Address]*big.Int, len(granted))
		for spender, amt := range granted {
			clone[spender] = new(big.Int).Set(amt)
		}
		snap.Allowances[owner] = clone
	}
	return snap
}

// Restore replaces the ledger state with the snapshot contents.
func (l *Ledger) Restore(snap *Snapshot) {
	if snap == nil {
		return
	}
	l.name = snap.Name
	l.symbol = snap.Symbol
	l.decimals = snap.Decimals
	l.admin = snap.Admin
	l.totalSupply = big.NewInt(0)
	if snap.TotalSupply != nil {
		l.totalSupply.Set(snap.TotalSupply)
	}
	l.balances = make(map[common.Address]*big.Int, len(snap.Balances))
	for addr, bal := range snap.Balances {
		if bal == nil {
			bal = big.NewInt(0)
		}
		l.balances[addr] = new(big.Int).Set(bal)
	}
	l.allowances = make(map[common.Address]map[common.Address]*big.Int, len(snap.Allowances))
	for owner, granted := range snap.Allowances {
		clone := make(map[common.Address]*big.Int, len(granted))
		for spender, amt := range granted {
			if amt == nil {
				amt = big.NewInt(0)
			}
			clone[spender] = new(big.Int).Set(amt)
		}
		l.allowances[owner] = clone
	}
}
