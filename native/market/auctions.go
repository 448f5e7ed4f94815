package market

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"nftmarket/core/events"
)

// ListItemOnAuctionUnique escrows a unique item and opens an English auction
// with the supplied starting price. The auction runs for a fixed three days.
func (e *Engine) ListItemOnAuctionUnique(caller common.Address, itemID uint64, startPrice *big.Int) (uint64, error) {
	if err := e.guard(); err != nil {
		return 0, err
	}
	if err := checkPositive(startPrice); err != nil {
		return 0, err
	}
	owner, err := e.nft.OwnerOf(itemID)
	if err != nil {
		return 0, err
	}
	if owner != caller {
		return 0, ErrAccessDenied
	}
	approved, err := e.nft.GetApproved(itemID)
	if err != nil {
		return 0, err
	}
	if approved != EngineAddress && !e.nft.IsApprovedForAll(caller, EngineAddress) {
		return 0, ErrNoAllowance
	}
	if err := e.nft.TransferFrom(EngineAddress, caller, EngineAddress, itemID); err != nil {
		return 0, err
	}
	return e.openAuction(AssetUnique, caller, itemID, big.NewInt(1), startPrice), nil
}

// ListItemOnAuctionMulti escrows amount units of an item and opens an auction
// for the whole lot.
func (e *Engine) ListItemOnAuctionMulti(caller common.Address, itemID uint64, amount, startPrice *big.Int) (uint64, error) {
	if err := e.guard(); err != nil {
		return 0, err
	}
	if err := checkPositive(amount); err != nil {
		return 0, err
	}
	if err := checkPositive(startPrice); err != nil {
		return 0, err
	}
	bal, err := e.multi.BalanceOf(caller, itemID)
	if err != nil {
		return 0, err
	}
	if bal.Cmp(amount) < 0 {
		return 0, ErrAccessDenied
	}
	if !e.multi.IsApprovedForAll(caller, EngineAddress) {
		return 0, ErrNoAllowance
	}
	if err := e.multi.SafeTransferFrom(EngineAddress, caller, EngineAddress, itemID, amount); err != nil {
		return 0, err
	}
	return e.openAuction(AssetMulti, caller, itemID, amount, startPrice), nil
}

func (e *Engine) openAuction(kind AssetKind, seller common.Address, itemID uint64, amount, startPrice *big.Int) uint64 {
	var id uint64
	if kind == AssetMulti {
		id = e.nextAuctionMulti
		e.nextAuctionMulti++
	} else {
		id = e.nextAuctionUnique
		e.nextAuctionUnique++
	}
	auction := &Auction{
		ID:         id,
		AssetKind:  kind,
		ItemID:     itemID,
		Amount:     new(big.Int).Set(amount),
		Seller:     seller,
		HighestBid: new(big.Int).Set(startPrice),
		EndTime:    e.now() + int64(auctionDuration.Seconds()),
	}
	e.auctions(kind)[id] = auction
	e.emitter.Emit(events.AuctionCreated{
		AssetKind:  string(kind),
		AuctionID:  id,
		Seller:     seller,
		ItemID:     itemID,
		Amount:     new(big.Int).Set(amount),
		StartPrice: new(big.Int).Set(startPrice),
		EndTime:    auction.EndTime,
	})
	return id
}

// MakeBidUnique places a bid on a unique-item auction. The bid amount is
// escrowed with the engine; the previous highest bidder, if any, is refunded
// in full before the new bid is recorded.
func (e *Engine) MakeBidUnique(caller common.Address, auctionID uint64, amount *big.Int) error {
	return e.makeBid(caller, auctionID, amount, AssetUnique)
}

// MakeBidMulti places a bid on a multi-quantity auction.
func (e *Engine) MakeBidMulti(caller common.Address, auctionID uint64, amount *big.Int) error {
	return e.makeBid(caller, auctionID, amount, AssetMulti)
}

func (e *Engine) makeBid(caller common.Address, auctionID uint64, amount *big.Int, kind AssetKind) error {
	if err := e.guard(); err != nil {
		return err
	}
	auction, ok := e.auctions(kind)[auctionID]
	if !ok || auction.Finished {
		return ErrNotFound
	}
	if e.now() >= auction.EndTime {
		return ErrAuctionOver
	}
	if err := checkPositive(amount); err != nil {
		return err
	}
	if amount.Cmp(auction.HighestBid) <= 0 {
		return ErrBidTooLow
	}
	if e.token.Allowance(caller, EngineAddress).Cmp(amount) < 0 {
		return ErrNoAllowance
	}
	if e.token.BalanceOf(caller).Cmp(amount) < 0 {
		return ErrInsufficientFunds
	}
	// Escrow the challenger first; with allowance and balance verified this
	// cannot fail. The refund below draws on funds the engine already holds,
	// so the outbid party is made whole in the same operation.
	if err := e.token.TransferFrom(EngineAddress, caller, EngineAddress, amount); err != nil {
		return err
	}
	if auction.HasBidder() {
		if err := e.token.Transfer(EngineAddress, auction.HighestBidder, auction.HighestBid); err != nil {
			return err
		}
	}
	auction.HighestBidder = caller
	auction.HighestBid = new(big.Int).Set(amount)
	auction.BidCount++
	e.emitter.Emit(events.AuctionBid{
		AssetKind: string(kind),
		AuctionID: auctionID,
		Bidder:    caller,
		Amount:    new(big.Int).Set(amount),
		BidCount:  auction.BidCount,
	})
	return nil
}

// FinishAuctionUnique terminates a unique-item auction after its end time.
// With at least three bids the highest bidder wins: the bid is paid to the
// seller and the item goes to the winner. Below the threshold the item
// returns to the seller and the last bidder, if any, is refunded.
func (e *Engine) FinishAuctionUnique(auctionID uint64) error {
	return e.finishAuction(auctionID, AssetUnique)
}

// FinishAuctionMulti terminates a multi-quantity auction.
func (e *Engine) FinishAuctionMulti(auctionID uint64) error {
	return e.finishAuction(auctionID, AssetMulti)
}

func (e *Engine) finishAuction(auctionID uint64, kind AssetKind) error {
	if err := e.guard(); err != nil {
		return err
	}
	auction, ok := e.auctions(kind)[auctionID]
	if !ok {
		return ErrNotFound
	}
	if e.now() < auction.EndTime {
		return ErrAuctionNotOver
	}
	if auction.Finished {
		return ErrAuctionFinished
	}
	if auction.BidCount >= minBidsToSettle {
		if err := e.releaseEscrow(kind, auction.HighestBidder, auction.ItemID, auction.Amount); err != nil {
			return err
		}
		if err := e.token.Transfer(EngineAddress, auction.Seller, auction.HighestBid); err != nil {
			return err
		}
		auction.Finished = true
		e.emitter.Emit(events.AuctionSettled{
			AssetKind: string(kind),
			AuctionID: auctionID,
			Seller:    auction.Seller,
			Winner:    auction.HighestBidder,
			ItemID:    auction.ItemID,
			Price:     new(big.Int).Set(auction.HighestBid),
		})
		return nil
	}
	if err := e.releaseEscrow(kind, auction.Seller, auction.ItemID, auction.Amount); err != nil {
		return err
	}
	if auction.HasBidder() {
		if err := e.token.Transfer(EngineAddress, auction.HighestBidder, auction.HighestBid); err != nil {
			return err
		}
	}
	auction.Finished = true
	e.emitter.Emit(events.AuctionVoided{
		AssetKind: string(kind),
		AuctionID: auctionID,
		Seller:    auction.Seller,
		ItemID:    auction.ItemID,
		BidCount:  auction.BidCount,
	})
	return nil
}
