package nft

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"nftmarket/core/events"
)

const ledgerLabel = "nft"

// Ledger is the one-owner-per-item registry for unique items. Minting is
// role-gated: the owner account configured at construction can grant and
// revoke the minter capability. Metadata is fixed at mint time, ids are
// assigned monotonically starting at 1.
type Ledger struct {
	name   string
	symbol string

	owner     common.Address
	minters   map[common.Address]bool
	owners    map[uint64]common.Address
	balances  map[common.Address]uint64
	approved  map[uint64]common.Address
	operators map[common.Address]map[common.Address]bool
	uris      map[uint64]string
	nextID    uint64

	receivers map[common.Address]Receiver
	emitter   events.Emitter
}

// NewLedger constructs an empty unique-item ledger owned by owner.
func NewLedger(name, symbol string, owner common.Address) *Ledger {
	return &Ledger{
		name:      name,
		symbol:    symbol,
		owner:     owner,
		minters:   make(map[common.Address]bool),
		owners:    make(map[uint64]common.Address),
		balances:  make(map[common.Address]uint64),
		approved:  make(map[uint64]common.Address),
		operators: make(map[common.Address]map[common.Address]bool),
		uris:      make(map[uint64]string),
		nextID:    1,
		receivers: make(map[common.Address]Receiver),
		emitter:   events.NoopEmitter{},
	}
}

// SetEmitter configures the event emitter. Passing nil resets it to a no-op.
func (l *Ledger) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		l.emitter = events.NoopEmitter{}
		return
	}
	l.emitter = emitter
}

func (l *Ledger) Name() string   { return l.name }
func (l *Ledger) Symbol() string { return l.symbol }

// GrantMinter adds addr to the minter set. Only the ledger owner may manage
// roles.
func (l *Ledger) GrantMinter(caller, addr common.Address) error {
	if caller != l.owner {
		return ErrAccessDenied
	}
	if addr == (common.Address{}) {
		return ErrZeroAddress
	}
	l.minters[addr] = true
	return nil
}

// RevokeMinter removes addr from the minter set.
func (l *Ledger) RevokeMinter(caller, addr common.Address) error {
	if caller != l.owner {
		return ErrAccessDenied
	}
	delete(l.minters, addr)
	return nil
}

// IsMinter reports whether addr holds the minter capability.
func (l *Ledger) IsMinter(addr common.Address) bool {
	return addr == l.owner || l.minters[addr]
}

// Mint assigns the next id to a fresh item owned by to, with write-once
// metadata.
func (l *Ledger) Mint(caller, to common.Address, uri string) (uint64, error) {
	if to == (common.Address{}) {
		return 0, ErrZeroAddress
	}
	if !l.IsMinter(caller) {
		return 0, ErrAccessDenied
	}
	id := l.nextID
	l.nextID++
	l.owners[id] = to
	l.balances[to]++
	l.uris[id] = uri
	l.emitter.Emit(events.AssetMinted{Ledger: ledgerLabel, To: to, ItemID: id, URI: uri})
	return id, nil
}

// BalanceOf returns how many items addr owns.
func (l *Ledger) BalanceOf(addr common.Address) (uint64, error) {
	if addr == (common.Address{}) {
		return 0, ErrZeroAddress
	}
	return l.balances[addr], nil
}

// OwnerOf returns the current owner of an item.
func (l *Ledger) OwnerOf(id uint64) (common.Address, error) {
	owner, ok := l.owners[id]
	if !ok {
		return common.Address{}, ErrNotFound
	}
	return owner, nil
}

// TokenURI returns the immutable metadata of an item.
func (l *Ledger) TokenURI(id uint64) (string, error) {
	uri, ok := l.uris[id]
	if !ok {
		return "", ErrNotFound
	}
	return uri, nil
}

// Approve lets spender move the given item once. The caller must be the item's
// owner or one of the owner's operators, and the spender must not be the owner
// itself.
func (l *Ledger) Approve(caller, spender common.Address, id uint64) error {
	owner, ok := l.owners[id]
	if !ok {
		return ErrNotFound
	}
	if spender == owner {
		return ErrSelfApproval
	}
	if caller != owner && !l.IsApprovedForAll(owner, caller) {
		return ErrAccessDenied
	}
	l.approved[id] = spender
	return nil
}

// GetApproved returns the account approved for an item, or the zero address.
func (l *Ledger) GetApproved(id uint64) (common.Address, error) {
	if _, ok := l.owners[id]; !ok {
		return common.Address{}, ErrNotFound
	}
	return l.approved[id], nil
}

// SetApprovalForAll grants or revokes operator rights over every item the
// caller owns.
func (l *Ledger) SetApprovalForAll(caller, operator common.Address, approved bool) error {
	if operator == caller {
		return ErrSelfApproval
	}
	ops, ok := l.operators[caller]
	if !ok {
		ops = make(map[common.Address]bool)
		l.operators[caller] = ops
	}
	ops[operator] = approved
	return nil
}

// IsApprovedForAll reports whether operator may act on all of owner's items.
func (l *Ledger) IsApprovedForAll(owner, operator common.Address) bool {
	return l.operators[owner][operator]
}

func (l *Ledger) authorized(caller, owner common.Address, id uint64) bool {
	if caller == owner {
		return true
	}
	if l.approved[id] == caller {
		return true
	}
	return l.IsApprovedForAll(owner, caller)
}

// transfer checks the caller's authority and moves the item without emitting,
// so the safe variant can defer the event until the receiver has accepted.
func (l *Ledger) transfer(caller, from, to common.Address, id uint64) error {
	owner, ok := l.owners[id]
	if !ok {
		return ErrNotFound
	}
	if !l.authorized(caller, owner, id) {
		return ErrAccessDenied
	}
	if from != owner {
		return ErrAccessDenied
	}
	if to == (common.Address{}) {
		return ErrZeroAddress
	}
	l.move(from, to, id)
	return nil
}

// TransferFrom moves an item from its owner to the recipient. The caller must
// be the owner, the approved spender for the item, or an operator. The
// per-item approval is cleared on success.
func (l *Ledger) TransferFrom(caller, from, to common.Address, id uint64) error {
	if err := l.transfer(caller, from, to, id); err != nil {
		return err
	}
	l.emitter.Emit(events.AssetTransfer{Ledger: ledgerLabel, From: from, To: to, ItemID: id, Amount: big.NewInt(1)})
	return nil
}

// SafeTransferFrom behaves like TransferFrom and additionally runs the
// receiver-acceptance check when the recipient is contract-like. The ownership
// change is committed before the callout so a reentrant call never observes a
// half-applied state; on rejection the change is rolled back in full and no
// event is emitted.
func (l *Ledger) SafeTransferFrom(caller, from, to common.Address, id uint64) error {
	prevApproved := l.approved[id]
	if err := l.transfer(caller, from, to, id); err != nil {
		return err
	}
	if err := l.checkReceiver(caller, from, to, id); err != nil {
		l.move(to, from, id)
		if prevApproved != (common.Address{}) {
			l.approved[id] = prevApproved
		}
		return err
	}
	l.emitter.Emit(events.AssetTransfer{Ledger: ledgerLabel, From: from, To: to, ItemID: id, Amount: big.NewInt(1)})
	return nil
}

func (l *Ledger) move(from, to common.Address, id uint64) {
	delete(l.approved, id)
	l.balances[from]--
	l.balances[to]++
	l.owners[id] = to
}
