package nft

import "github.com/ethereum/go-ethereum/common"

// Receiver is the acceptance hook a contract-like account exposes to receive
// unique items via safe transfers. Returning an error rejects the transfer and
// rolls the ownership change back.
type Receiver interface {
	OnNFTReceived(operator, from common.Address, itemID uint64) error
}

// ReceiverFunc adapts a function to the Receiver interface.
type ReceiverFunc func(operator, from common.Address, itemID uint64) error

func (f ReceiverFunc) OnNFTReceived(operator, from common.Address, itemID uint64) error {
	return f(operator, from, itemID)
}

// RegisterReceiver marks addr as a contract-like account that accepts items
// through the supplied hook.
func (l *Ledger) RegisterReceiver(addr common.Address, r Receiver) {
	l.receivers[addr] = r
}

// RegisterContract marks addr as contract-like without a receiver capability;
// safe transfers to it are rejected. Plain accounts never need registration.
func (l *Ledger) RegisterContract(addr common.Address) {
	l.receivers[addr] = nil
}

// checkReceiver runs the acceptance check for safe transfers. Accounts that
// were never registered are plain accounts and always accept.
func (l *Ledger) checkReceiver(operator, from, to common.Address, itemID uint64) error {
	r, contractLike := l.receivers[to]
	if !contractLike {
		return nil
	}
	if r == nil {
		return ErrUnsupportedReceiver
	}
	if err := r.OnNFTReceived(operator, from, itemID); err != nil {
		return ErrUnsupportedReceiver
	}
	return nil
}
