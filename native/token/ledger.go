package token

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"nftmarket/core/events"
)

// Ledger is the authoritative balance and allowance map for the fungible
// payment token. A single admin account controls minting; every other
// operation is available to any caller acting on its own balance or on an
// allowance granted to it.
//
// All operations are all-or-nothing: every precondition is checked before the
// first map mutation, so a failed call leaves the ledger untouched.
type Ledger struct {
	name     string
	symbol   string
	decimals uint8

	admin       common.Address
	totalSupply *big.Int
	balances    map[common.Address]*big.Int
	allowances  map[common.Address]map[common.Address]*big.Int

	emitter events.Emitter
}

// NewLedger constructs an empty fungible ledger with the supplied descriptor
// and admin account.
func NewLedger(name, symbol string, decimals uint8, admin common.Address) *Ledger {
	return &Ledger{
		name:        name,
		symbol:      symbol,
		decimals:    decimals,
		admin:       admin,
		totalSupply: big.NewInt(0),
		balances:    make(map[common.Address]*big.Int),
		allowances:  make(map[common.Address]map[common.Address]*big.Int),
		emitter:     events.NoopEmitter{},
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

func (l *Ledger) Name() string    { return l.name }
func (l *Ledger) Symbol() string  { return l.symbol }
func (l *Ledger) Decimals() uint8 { return l.decimals }

// Admin returns the account allowed to mint.
func (l *Ledger) Admin() common.Address { return l.admin }

// TotalSupply returns the current supply. The sum of all balances equals this
// value after every operation.
func (l *Ledger) TotalSupply() *big.Int { return new(big.Int).Set(l.totalSupply) }

// BalanceOf returns the balance of addr. Unknown accounts hold zero.
func (l *Ledger) BalanceOf(addr common.Address) *big.Int {
	if bal, ok := l.balances[addr]; ok {
		return new(big.Int).Set(bal)
	}
	return big.NewInt(0)
}

// Allowance returns what spender may still move out of owner's balance.
func (l *Ledger) Allowance(owner, spender common.Address) *big.Int {
	if granted, ok := l.allowances[owner]; ok {
		if amt, ok := granted[spender]; ok {
			return new(big.Int).Set(amt)
		}
	}
	return big.NewInt(0)
}

// Mint credits amount to the recipient and grows the total supply. Only the
// admin may mint.
func (l *Ledger) Mint(caller, to common.Address, amount *big.Int) error {
	if caller != l.admin {
		return ErrAccessDenied
	}
	if to == (common.Address{}) {
		return ErrZeroAddress
	}
	if err := checkAmount(amount); err != nil {
		return err
	}
	l.credit(to, amount)
	l.totalSupply.Add(l.totalSupply, amount)
	l.emitter.Emit(events.TokenMint{To: to, Amount: new(big.Int).Set(amount)})
	return nil
}

// Burn destroys amount from the caller's own balance and shrinks the supply.
func (l *Ledger) Burn(caller common.Address, amount *big.Int) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	if l.BalanceOf(caller).Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	l.debit(caller, amount)
	l.totalSupply.Sub(l.totalSupply, amount)
	l.emitter.Emit(events.TokenBurn{From: caller, Amount: new(big.Int).Set(amount)})
	return nil
}

// Approve sets (not adds to) the allowance of spender over the caller's
// balance.
func (l *Ledger) Approve(caller, spender common.Address, amount *big.Int) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	granted, ok := l.allowances[caller]
	if !ok {
		granted = make(map[common.Address]*big.Int)
		l.allowances[caller] = granted
	}
	granted[spender] = new(big.Int).Set(amount)
	l.emitter.Emit(events.TokenApproval{Owner: caller, Spender: spender, Amount: new(big.Int).Set(amount)})
	return nil
}

// Transfer moves amount from the caller to the recipient.
func (l *Ledger) Transfer(caller, to common.Address, amount *big.Int) error {
	if to == (common.Address{}) {
		return ErrZeroAddress
	}
	if err := checkAmount(amount); err != nil {
		return err
	}
	if l.BalanceOf(caller).Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	l.debit(caller, amount)
	l.credit(to, amount)
	l.emitter.Emit(events.TokenTransfer{From: caller, To: to, Amount: new(big.Int).Set(amount)})
	return nil
}

// TransferFrom moves amount out of from's balance on the strength of an
// allowance previously granted to the caller. The allowance check precedes
// the balance check, and the allowance is decremented by the amount spent.
func (l *Ledger) TransferFrom(caller, from, to common.Address, amount *big.Int) error {
	if to == (common.Address{}) {
		return ErrZeroAddress
	}
	if err := checkAmount(amount); err != nil {
		return err
	}
	allowance := l.Allowance(from, caller)
	if allowance.Cmp(amount) < 0 {
		return ErrInsufficientAllowance
	}
	if l.BalanceOf(from).Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	granted, ok := l.allowances[from]
	if !ok {
		granted = make(map[common.Address]*big.Int)
		l.allowances[from] = granted
	}
	granted[caller] = allowance.Sub(allowance, amount)
	l.debit(from, amount)
	l.credit(to, amount)
	l.emitter.Emit(events.TokenTransfer{From: from, To: to, Amount: new(big.Int).Set(amount)})
	return nil
}

// entry returns the stored balance cell for addr, creating a zero cell on
// first touch so debits of fresh accounts stay nil-safe.
func (l *Ledger) entry(addr common.Address) *big.Int {
	bal, ok := l.balances[addr]
	if !ok {
		bal = big.NewInt(0)
		l.balances[addr] = bal
	}
	return bal
}

func (l *Ledger) credit(addr common.Address, amount *big.Int) {
	bal := l.entry(addr)
	bal.Add(bal, amount)
}

func (l *Ledger) debit(addr common.Address, amount *big.Int) {
	bal := l.entry(addr)
	bal.Sub(bal, amount)
}

func checkAmount(amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	return nil
}
