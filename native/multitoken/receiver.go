package multitoken

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Receiver is the acceptance hook a contract-like account exposes to receive
// items via safe transfers. Returning an error rejects the transfer and rolls
// every balance change back.
type Receiver interface {
	OnMultiTokenReceived(operator, from common.Address, id uint64, amount *big.Int) error
	OnMultiTokenBatchReceived(operator, from common.Address, ids []uint64, amounts []*big.Int) error
}

// AcceptAllReceiver accepts every transfer. Useful for tests and for accounts
// that only need to be marked contract-like.
type AcceptAllReceiver struct{}

func (AcceptAllReceiver) OnMultiTokenReceived(common.Address, common.Address, uint64, *big.Int) error {
	return nil
}

func (AcceptAllReceiver) OnMultiTokenBatchReceived(common.Address, common.Address, []uint64, []*big.Int) error {
	return nil
}

// RegisterReceiver marks addr as a contract-like account that accepts items
// through the supplied hook.
func (l *Ledger) RegisterReceiver(addr common.Address, r Receiver) {
	l.receivers[addr] = r
}

// RegisterContract marks addr as contract-like without a receiver capability;
// safe transfers to it are rejected.
func (l *Ledger) RegisterContract(addr common.Address) {
	l.receivers[addr] = nil
}

func (l *Ledger) checkReceiver(operator, from, to common.Address, ids []uint64, amounts []*big.Int) error {
	r, contractLike := l.receivers[to]
	if !contractLike {
		return nil
	}
	if r == nil {
		return ErrUnsupportedReceiver
	}
	var err error
	if len(ids) == 1 {
		err = r.OnMultiTokenReceived(operator, from, ids[0], amounts[0])
	} else {
		err = r.OnMultiTokenBatchReceived(operator, from, ids, amounts)
	}
	if err != nil {
		return ErrUnsupportedReceiver
	}
	return nil
}
