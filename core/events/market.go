package events

import (
	"encoding/hex"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"nftmarket/core/types"
)

const (
	// TypeMarketListed is emitted when an item enters marketplace custody for
	// a direct sale.
	TypeMarketListed = "market.listed"
	// TypeMarketSold is emitted when a direct listing settles.
	TypeMarketSold = "market.sold"
	// TypeMarketCancelled is emitted when a listing is withdrawn.
	TypeMarketCancelled = "market.cancelled"
	// TypeAuctionCreated is emitted when an item enters auction custody.
	TypeAuctionCreated = "market.auction.created"
	// TypeAuctionBid is emitted for every accepted bid.
	TypeAuctionBid = "market.auction.bid"
	// TypeAuctionSettled is emitted when an auction finishes with enough bids.
	TypeAuctionSettled = "market.auction.settled"
	// TypeAuctionVoided is emitted when an auction finishes below the bid
	// threshold and custody returns to the seller.
	TypeAuctionVoided = "market.auction.voided"
)

type MarketListed struct {
	AssetKind string
	Seller    common.Address
	ItemID    uint64
	Amount    *big.Int
	Price     *big.Int
	TradeHash [32]byte
}

func (MarketListed) EventType() string { return TypeMarketListed }

func (e MarketListed) Event() *types.Event {
	attrs := map[string]string{
		"assetKind": e.AssetKind,
		"seller":    formatAddress(e.Seller),
		"itemId":    formatID(e.ItemID),
		"price":     formatAmount(e.Price),
	}
	if e.Amount != nil {
		attrs["amount"] = formatAmount(e.Amount)
	}
	if !zeroBytes(e.TradeHash[:]) {
		attrs["tradeHash"] = "0x" + hex.EncodeToString(e.TradeHash[:])
	}
	return &types.Event{Type: TypeMarketListed, Attributes: attrs}
}

type MarketSold struct {
	AssetKind string
	Seller    common.Address
	Buyer     common.Address
	ItemID    uint64
	Amount    *big.Int
	Price     *big.Int
}

func (MarketSold) EventType() string { return TypeMarketSold }

func (e MarketSold) Event() *types.Event {
	attrs := map[string]string{
		"assetKind": e.AssetKind,
		"seller":    formatAddress(e.Seller),
		"buyer":     formatAddress(e.Buyer),
		"itemId":    formatID(e.ItemID),
		"price":     formatAmount(e.Price),
	}
	if e.Amount != nil {
		attrs["amount"] = formatAmount(e.Amount)
	}
	return &types.Event{Type: TypeMarketSold, Attributes: attrs}
}

type MarketCancelled struct {
	AssetKind string
	Seller    common.Address
	ItemID    uint64
	Amount    *big.Int
}

func (MarketCancelled) EventType() string { return TypeMarketCancelled }

func (e MarketCancelled) Event() *types.Event {
	attrs := map[string]string{
		"assetKind": e.AssetKind,
		"seller":    formatAddress(e.Seller),
		"itemId":    formatID(e.ItemID),
	}
	if e.Amount != nil {
		attrs["amount"] = formatAmount(e.Amount)
	}
	return &types.Event{Type: TypeMarketCancelled, Attributes: attrs}
}

type AuctionCreated struct {
	AssetKind  string
	AuctionID  uint64
	Seller     common.Address
	ItemID     uint64
	Amount     *big.Int
	StartPrice *big.Int
	EndTime    int64
}

func (AuctionCreated) EventType() string { return TypeAuctionCreated }

func (e AuctionCreated) Event() *types.Event {
	attrs := map[string]string{
		"assetKind":  e.AssetKind,
		"auctionId":  formatID(e.AuctionID),
		"seller":     formatAddress(e.Seller),
		"itemId":     formatID(e.ItemID),
		"startPrice": formatAmount(e.StartPrice),
		"endTime":    formatInt(e.EndTime),
	}
	if e.Amount != nil {
		attrs["amount"] = formatAmount(e.Amount)
	}
	return &types.Event{Type: TypeAuctionCreated, Attributes: attrs}
}

type AuctionBid struct {
	AssetKind string
	AuctionID uint64
	Bidder    common.Address
	Amount    *big.Int
	BidCount  uint64
}

func (AuctionBid) EventType() string { return TypeAuctionBid }

func (e AuctionBid) Event() *types.Event {
	return &types.Event{Type: TypeAuctionBid, Attributes: map[string]string{
		"assetKind": e.AssetKind,
		"auctionId": formatID(e.AuctionID),
		"bidder":    formatAddress(e.Bidder),
		"amount":    formatAmount(e.Amount),
		"bidCount":  formatID(e.BidCount),
	}}
}

type AuctionSettled struct {
	AssetKind string
	AuctionID uint64
	Seller    common.Address
	Winner    common.Address
	ItemID    uint64
	Price     *big.Int
}

func (AuctionSettled) EventType() string { return TypeAuctionSettled }

func (e AuctionSettled) Event() *types.Event {
	return &types.Event{Type: TypeAuctionSettled, Attributes: map[string]string{
		"assetKind": e.AssetKind,
		"auctionId": formatID(e.AuctionID),
		"seller":    formatAddress(e.Seller),
		"winner":    formatAddress(e.Winner),
		"itemId":    formatID(e.ItemID),
		"price":     formatAmount(e.Price),
	}}
}

type AuctionVoided struct {
	AssetKind string
	AuctionID uint64
	Seller    common.Address
	ItemID    uint64
	BidCount  uint64
}

func (AuctionVoided) EventType() string { return TypeAuctionVoided }

func (e AuctionVoided) Event() *types.Event {
	return &types.Event{Type: TypeAuctionVoided, Attributes: map[string]string{
		"assetKind": e.AssetKind,
		"auctionId": formatID(e.AuctionID),
		"seller":    formatAddress(e.Seller),
		"itemId":    formatID(e.ItemID),
		"bidCount":  formatID(e.BidCount),
	}}
}
