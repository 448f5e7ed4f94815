package multitoken

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"nftmarket/core/events"
)

const ledgerLabel = "multitoken"

// Ledger tracks per-(id,account) balances for the multi-quantity item token.
// Minting is role-gated like the unique-item registry. Metadata for an id is
// fixed atomically on the first mint of that id and can never change.
type Ledger struct {
	name   string
	symbol string

	owner     common.Address
	minters   map[common.Address]bool
	balances  map[uint64]map[common.Address]*big.Int
	uris      map[uint64]string
	operators map[common.Address]map[common.Address]bool

	receivers map[common.Address]Receiver
	emitter   events.Emitter
}

// NewLedger constructs an empty multi-quantity ledger owned by owner.
func NewLedger(name, symbol string, owner common.Address) *Ledger {
	return &Ledger{
		name:      name,
		symbol:    symbol,
		owner:     owner,
		minters:   make(map[common.Address]bool),
		balances:  make(map[uint64]map[common.Address]*big.Int),
		uris:      make(map[uint64]string),
		operators: make(map[common.Address]map[common.Address]bool),
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

// Mint credits amount units of id to the recipient. The first mint of an id
// fixes its metadata; a later mint with a differing uri fails and changes
// nothing.
func (l *Ledger) Mint(caller, to common.Address, id uint64, amount *big.Int, uri string) error {
	if !l.IsMinter(caller) {
		return ErrAccessDenied
	}
	if to == (common.Address{}) {
		return ErrZeroAddress
	}
	if err := checkAmount(amount); err != nil {
		return err
	}
	if existing, ok := l.uris[id]; ok && existing != uri {
		return ErrImmutableMetadata
	}
	l.uris[id] = uri
	l.credit(to, id, amount)
	l.emitter.Emit(events.AssetMinted{Ledger: ledgerLabel, To: to, ItemID: id, Amount: new(big.Int).Set(amount), URI: uri})
	return nil
}

// MintBatch mints several ids in one atomic operation: every id is validated
// (including metadata immutability) before the first balance changes.
func (l *Ledger) MintBatch(caller, to common.Address, ids []uint64, amounts []*big.Int, uris []string) error {
	if !l.IsMinter(caller) {
		return ErrAccessDenied
	}
	if to == (common.Address{}) {
		return ErrZeroAddress
	}
	if len(ids) != len(amounts) || len(ids) != len(uris) {
		return ErrLengthMismatch
	}
	// An id repeated within the batch pins its uri on the first entry, so a
	// later conflicting entry fails the whole batch.
	pinned := make(map[uint64]string, len(ids))
	for i, id := range ids {
		if err := checkAmount(amounts[i]); err != nil {
			return err
		}
		if existing, ok := l.uris[id]; ok && existing != uris[i] {
			return ErrImmutableMetadata
		}
		if existing, ok := pinned[id]; ok && existing != uris[i] {
			return ErrImmutableMetadata
		}
		pinned[id] = uris[i]
	}
	for i, id := range ids {
		l.uris[id] = uris[i]
		l.credit(to, id, amounts[i])
		l.emitter.Emit(events.AssetMinted{Ledger: ledgerLabel, To: to, ItemID: id, Amount: new(big.Int).Set(amounts[i]), URI: uris[i]})
	}
	return nil
}

// BalanceOf returns the balance of addr for a single id.
func (l *Ledger) BalanceOf(addr common.Address, id uint64) (*big.Int, error) {
	if addr == (common.Address{}) {
		return nil, ErrZeroAddress
	}
	if holders, ok := l.balances[id]; ok {
		if bal, ok := holders[addr]; ok {
			return new(big.Int).Set(bal), nil
		}
	}
	return big.NewInt(0), nil
}

// BalanceOfBatch returns the balances for parallel (account, id) pairs.
func (l *Ledger) BalanceOfBatch(addrs []common.Address, ids []uint64) ([]*big.Int, error) {
	if len(addrs) != len(ids) {
		return nil, ErrLengthMismatch
	}
	out := make([]*big.Int, len(addrs))
	for i, addr := range addrs {
		bal, err := l.BalanceOf(addr, ids[i])
		if err != nil {
			return nil, err
		}
		out[i] = bal
	}
	return out, nil
}

// URI returns the immutable metadata of an id.
func (l *Ledger) URI(id uint64) (string, error) {
	uri, ok := l.uris[id]
	if !ok {
		return "", ErrNotFound
	}
	return uri, nil
}

// SetApprovalForAll grants or revokes operator rights over every balance of
// the caller.
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

// IsApprovedForAll reports whether operator may act on all of owner's
// balances.
func (l *Ledger) IsApprovedForAll(owner, operator common.Address) bool {
	return l.operators[owner][operator]
}

// SafeTransferFrom moves amount units of id from from to to. The caller must
// be the holder or one of its operators. Balance changes are committed before
// the receiver callout and rolled back in full on rejection.
func (l *Ledger) SafeTransferFrom(caller, from, to common.Address, id uint64, amount *big.Int) error {
	return l.safeTransfer(caller, from, to, []uint64{id}, []*big.Int{amount})
}

// SafeBatchTransferFrom moves several ids atomically: every balance is checked
// before the first debit, and a receiver rejection rolls every leg back.
func (l *Ledger) SafeBatchTransferFrom(caller, from, to common.Address, ids []uint64, amounts []*big.Int) error {
	if len(ids) != len(amounts) {
		return ErrLengthMismatch
	}
	return l.safeTransfer(caller, from, to, ids, amounts)
}

func (l *Ledger) safeTransfer(caller, from, to common.Address, ids []uint64, amounts []*big.Int) error {
	if caller != from && !l.IsApprovedForAll(from, caller) {
		return ErrAccessDenied
	}
	if to == (common.Address{}) {
		return ErrZeroAddress
	}
	// A batch may repeat an id, so balances are checked against the
	// cumulative total per id rather than entry by entry.
	needed := make(map[uint64]*big.Int, len(ids))
	for i := range ids {
		if err := checkAmount(amounts[i]); err != nil {
			return err
		}
		total, ok := needed[ids[i]]
		if !ok {
			total = big.NewInt(0)
			needed[ids[i]] = total
		}
		total.Add(total, amounts[i])
	}
	for id, total := range needed {
		bal, err := l.BalanceOf(from, id)
		if err != nil {
			return err
		}
		if bal.Cmp(total) < 0 {
			return ErrInsufficientBalance
		}
	}
	for i := range ids {
		l.debit(from, ids[i], amounts[i])
		l.credit(to, ids[i], amounts[i])
	}
	if err := l.checkReceiver(caller, from, to, ids, amounts); err != nil {
		for i := range ids {
			l.debit(to, ids[i], amounts[i])
			l.credit(from, ids[i], amounts[i])
		}
		return err
	}
	for i := range ids {
		l.emitter.Emit(events.AssetTransfer{Ledger: ledgerLabel, From: from, To: to, ItemID: ids[i], Amount: new(big.Int).Set(amounts[i])})
	}
	return nil
}

// entry returns the stored balance cell for (addr, id), creating a zero cell
// on first touch so debits of fresh accounts stay nil-safe.
func (l *Ledger) entry(addr common.Address, id uint64) *big.Int {
	holders, ok := l.balances[id]
	if !ok {
		holders = make(map[common.Address]*big.Int)
		l.balances[id] = holders
	}
	bal, ok := holders[addr]
	if !ok {
		bal = big.NewInt(0)
		holders[addr] = bal
	}
	return bal
}

func (l *Ledger) credit(addr common.Address, id uint64, amount *big.Int) {
	bal := l.entry(addr, id)
	bal.Add(bal, amount)
}

func (l *Ledger) debit(addr common.Address, id uint64, amount *big.Int) {
	bal := l.entry(addr, id)
	bal.Sub(bal, amount)
}

func checkAmount(amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	return nil
}
