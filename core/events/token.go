package events

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"nftmarket/core/types"
)

const (
	// TypeTokenTransfer is emitted for fungible balance movements.
	TypeTokenTransfer = "token.transfer"
	// TypeTokenMint is emitted when new supply is created.
	TypeTokenMint = "token.mint"
	// TypeTokenBurn is emitted when supply is destroyed.
	TypeTokenBurn = "token.burn"
	// TypeTokenApproval is emitted when an allowance is set.
	TypeTokenApproval = "token.approval"
)

type TokenTransfer struct {
	From   common.Address
	To     common.Address
	Amount *big.Int
}

func (TokenTransfer) EventType() string { return TypeTokenTransfer }

func (e TokenTransfer) Event() *types.Event {
	return &types.Event{Type: TypeTokenTransfer, Attributes: map[string]string{
		"from":   formatAddress(e.From),
		"to":     formatAddress(e.To),
		"amount": formatAmount(e.Amount),
	}}
}

type TokenMint struct {
	To     common.Address
	Amount *big.Int
}

func (TokenMint) EventType() string { return TypeTokenMint }

func (e TokenMint) Event() *types.Event {
	return &types.Event{Type: TypeTokenMint, Attributes: map[string]string{
		"to":     formatAddress(e.To),
		"amount": formatAmount(e.Amount),
	}}
}

type TokenBurn struct {
	From   common.Address
	Amount *big.Int
}

func (TokenBurn) EventType() string { return TypeTokenBurn }

func (e TokenBurn) Event() *types.Event {
	return &types.Event{Type: TypeTokenBurn, Attributes: map[string]string{
		"from":   formatAddress(e.From),
		"amount": formatAmount(e.Amount),
	}}
}

type TokenApproval struct {
	Owner   common.Address
	Spender common.Address
	Amount  *big.Int
}

func (TokenApproval) EventType() string { return TypeTokenApproval }

func (e TokenApproval) Event() *types.Event {
	return &types.Event{Type: TypeTokenApproval, Attributes: map[string]string{
		"owner":   formatAddress(e.Owner),
		"spender": formatAddress(e.Spender),
		"amount":  formatAmount(e.Amount),
	}}
}
