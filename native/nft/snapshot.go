package nft

import "github.com/ethereum/go-ethereum/common"

// Snapshot is a serializable copy of the full registry state. Receiver hooks
// are process-local and are not part of it.
type Snapshot struct {
	Name      string                                  `json:"name"`
	Symbol    string                                  `json:"symbol"`
	Owner     common.Address                          `json:"owner"`
	Minters   []common.Address                        `json:"minters"`
	Owners    map[uint64]common.Address               `json:"owners"`
	Approved  map[uint64]common.Address               `json:"approved"`
	Operators map[common.Address][]common.Address     `json:"operators"`
	URIs      map[uint64]string                       `json:"uris"`
	NextID    uint64                                  `json:"nextId"`
}

// Snapshot returns a deep copy of the registry state.
func (l *Ledger) Snapshot() *Snapshot {
	snap := &Snapshot{
		Name:      l.name,
		Symbol:    l.symbol,
		Owner:     l.owner,
		Owners:    make(map[uint64]common.Address, len(l.owners)),
		Approved:  make(map[uint64]common.Address, len(l.approved)),
		Operators: make(map[common.Address][]common.Address, len(l.operators)),
		URIs:      make(map[uint64]string, len(l.uris)),
		NextID:    l.nextID,
	}
	for addr, ok := range l.minters {
		if ok {
			snap.Minters = append(snap.Minters, addr)
		}
	}
	for id, owner := range l.owners {
		snap.Owners[id] = owner
	}
	for id, spender := range l.approved {
		snap.Approved[id] = spender
	}
	for owner, ops := range l.operators {
		for op, ok := range ops {
			if ok {
				snap.Operators[owner] = append(snap.Operators[owner], op)
			}
		}
	}
	for id, uri := range l.uris {
		snap.URIs[id] = uri
	}
	return snap
}

// Restore replaces the registry state with the snapshot contents.
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
	l.owners = make(map[uint64]common.Address, len(snap.Owners))
	l.balances = make(map[common.Address]uint64)
	for id, owner := range snap.Owners {
		l.owners[id] = owner
		l.balances[owner]++
	}
	l.approved = make(map[uint64]common.Address, len(snap.Approved))
	for id, spender := range snap.Approved {
		l.approved[id] = spender
	}
	l.operators = make(map[common.Address]map[common.Address]bool, len(snap.Operators))
	for owner, ops := range snap.Operators {
		set := make(map[common.Address]bool, len(ops))
		for _, op := range ops {
			set[op] = true
		}
		l.operators[owner] = set
	}
	l.uris = make(map[uint64]string, len(snap.URIs))
	for id, uri := range snap.URIs {
		l.uris[id] = uri
	}
	l.nextID = snap.NextID
	if l.nextID == 0 {
		l.nextID = 1
	}
}
