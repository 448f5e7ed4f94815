package multitoken

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Snapshot is a serializable copy of the full ledger state. Receiver hooks are
// process-local and are not part of it.
type Snapshot struct {
	Name      string                                 `json:"name"`
	Symbol    string                                 `json:"symbol"`
	Owner     common.Address                         `json:"owner"`
	Minters   []common.Address                       `json:"minters"`
	Balances  map[uint64]map[common.Address]*big.Int `json:"balances"`
	URIs      map[uint64]string                      `json:"uris"`
	Operators map[common.Address][]common.Address    `json:"operators"`
}

// Snapshot returns a deep copy of the ledger state.
func (l *Ledger) Snapshot() *Snapshot {
	snap := &Snapshot{
		Name:      l.name,
		Symbol:    l.symbol,
		Owner:     l.owner,
		Balances:  make(map[uint64]map[common.Address]*big.Int, len(l.balances)),
		URIs:      make(map[uint64]string, len(l.uris)),
		Operators: make(map[common.Address][]common.Address, len(l.operators)),
	}
	for addr, ok := range l.minters {
		if ok {
			snap.Minters = append(snap.Minters, addr)
		}
	}
	for id, holders := range l.balances {
		clone := make(map[common.Address]*big.Int, len(holders))
		for addr, bal := range holders {
			clone[addr] = new(big.Int).Set(bal)
		}
		snap.Balances[id] = clone
	}
	for id, uri := range l.uris {
		snap.URIs[id] = uri
	}
	for owner, ops := range l.operators {
		for op, ok := range ops {
			if ok {
				snap.Operators[owner] = append(snap.Operators[owner], op)
			}
		}
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
	l.owner = snap.Owner
	l.minters = make(map[common.Address]bool, len(snap.Minters))
	for _, addr := range snap.Minters {
		l.minters[addr] = true
	}
	l.balances = make(map[uint64]map[common.Address]*big.Int, len(snap.Balances))
	for id, holders := range snap.Balances {
		clone := make(map[common.Address]*big.Int, len(holders))
		for addr, bal := range holders {
			if bal == nil {
				bal = big.NewInt(0)
			}
			clone[addr] = new(big.Int).Set(bal)
		}
		l.balances[id] = clone
	}
	l.uris = make(map[uint64]string, len(snap.URIs))
	for id, uri := range snap.URIs {
		l.uris[id] = uri
	}
	l.operators = make(map[common.Address]map[common.Address]bool, len(snap.Operators))
	for owner, ops := range snap.Operators {
		set := make(map[common.Address]bool, len(ops))
		for _, op := range ops {
			set[op] = true
		}
		l.operators[owner] = set
	}
}
