package market

import "errors"

var (
	// ErrAccessDenied is returned when the caller does not own the listed
	// item (or enough of it) or is not the seller of a listing.
	ErrAccessDenied = errors.New("market: caller is not the owner of the item")
	// ErrNoAllowance is returned when the caller has not granted the engine
	// the approval or allowance the operation needs.
	ErrNoAllowance = errors.New("market: no allowance to move the asset or payment")
	// ErrNotFound is returned when the referenced listing or auction does not
	// exist or is no longer active.
	ErrNotFound = errors.New("market: no such item for sale")
	// ErrAlreadyListed is returned when an item with an active listing is
	// listed again.
	ErrAlreadyListed = errors.New("market: item already listed")
	// ErrAuctionOver is returned for bids after the auction end time.
	ErrAuctionOver = errors.New("market: auction is over")
	// ErrAuctionNotOver is returned for finish calls before the end time.
	ErrAuctionNotOver = errors.New("market: auction is not yet over")
	// ErrAuctionFinished is returned when finishing an auction twice.
	ErrAuctionFinished = errors.New("market: auction already finished")
	// ErrBidTooLow is returned when a bid does not exceed the highest bid.
	ErrBidTooLow = errors.New("market: current price is higher than the bid")
	// ErrInsufficientFunds is returned when a buyer or bidder cannot cover
	// the price despite a sufficient allowance.
	ErrInsufficientFunds = errors.New("market: insufficient funds to cover the price")
	// ErrInvalidAmount is returned when a price, amount or bid is nil or not
	// positive.
	ErrInvalidAmount = errors.New("market: amount must be positive")
)
