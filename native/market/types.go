package market

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// AssetKind distinguishes the two item ledgers a listing or auction can refer
// to.
type AssetKind string

const (
	AssetUnique AssetKind = "unique"
	AssetMulti  AssetKind = "multi"
)

// ListingStatus is the lifecycle state of a direct listing.
type ListingStatus uint8

const (
	ListingActive ListingStatus = iota
	ListingSold
	ListingCancelled
)

func (s ListingStatus) String() string {
	switch s {
	case ListingActive:
		return "active"
	case ListingSold:
		return "sold"
	case ListingCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Listing is an active offer to sell an item (or a quantity of one) at a fixed
// price, with the asset escrowed by the engine for the listing's lifetime.
// Amount is 1 for unique items.
type Listing struct {
	AssetKind AssetKind      `json:"assetKind"`
	Seller    common.Address `json:"seller"`
	ItemID    uint64         `json:"itemId"`
	Amount    *big.Int       `json:"amount"`
	Price     *big.Int       `json:"price"`
	Status    ListingStatus  `json:"status"`
}

// Active reports whether the listing can still be bought or cancelled.
func (l *Listing) Active() bool { return l != nil && l.Status == ListingActive }

// Clone returns a deep copy so callers can't mutate stored listings.
func (l *Listing) Clone() *Listing {
	if l == nil {
		return nil
	}
	clone := *l
	if l.Amount != nil {
		clone.Amount = new(big.Int).Set(l.Amount)
	}
	if l.Price != nil {
		clone.Price = new(big.Int).Set(l.Price)
	}
	return &clone
}

// Auction is a time-boxed competitive-bid sale. The engine escrows both the
// asset and the highest bidder's payment until the auction finishes.
type Auction struct {
	ID            uint64         `json:"id"`
	AssetKind     AssetKind      `json:"assetKind"`
	ItemID        uint64         `json:"itemId"`
	Amount        *big.Int       `json:"amount"`
	Seller        common.Address `json:"seller"`
	HighestBidder common.Address `json:"highestBidder"`
	HighestBid    *big.Int       `json:"highestBid"`
	BidCount      uint64         `json:"bidCount"`
	EndTime       int64          `json:"endTime"`
	Finished      bool           `json:"finished"`
}

// HasBidder reports whether any bid has been escrowed.
func (a *Auction) HasBidder() bool {
	return a != nil && a.HighestBidder != (common.Address{})
}

// Clone returns a deep copy so callers can't mutate stored auctions.
func (a *Auction) Clone() *Auction {
	if a == nil {
		return nil
	}
	clone := *a
	if a.Amount != nil {
		clone.Amount = new(big.Int).Set(a.Amount)
	}
	if a.HighestBid != nil {
		clone.HighestBid = new(big.Int).Set(a.HighestBid)
	}
	return &clone
}
