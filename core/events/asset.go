package events

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"nftmarket/core/types"
)

const (
	// TypeAssetMinted is emitted when an item is minted on either item ledger.
	TypeAssetMinted = "asset.minted"
	// TypeAssetTransfer is emitted for item custody changes.
	TypeAssetTransfer = "asset.transfer"
)

// AssetMinted covers both the unique and multi-quantity item ledgers. Amount is
// nil for unique items.
type AssetMinted struct {
	Ledger string
	To     common.Address
	ItemID uint64
	Amount *big.Int
	URI    string
}

func (AssetMinted) EventType() string { return TypeAssetMinted }

func (e AssetMinted) Event() *types.Event {
	attrs := map[string]string{
		"ledger": e.Ledger,
		"to":     formatAddress(e.To),
		"itemId": formatID(e.ItemID),
		"uri":    e.URI,
	}
	if e.Amount != nil {
		attrs["amount"] = formatAmount(e.Amount)
	}
	return &types.Event{Type: TypeAssetMinted, Attributes: attrs}
}

type AssetTransfer struct {
	Ledger string
	From   common.Address
	To     common.Address
	ItemID uint64
	Amount *big.Int
}

func (AssetTransfer) EventType() string { return TypeAssetTransfer }

func (e AssetTransfer) Event() *types.Event {
	attrs := map[string]string{
		"ledger": e.Ledger,
		"from":   formatAddress(e.From),
		"to":     formatAddress(e.To),
		"itemId": formatID(e.ItemID),
	}
	if e.Amount != nil {
		attrs["amount"] = formatAmount(e.Amount)
	}
	return &types.Event{Type: TypeAssetTransfer, Attributes: attrs}
}
