package market

import (
	"encoding/binary"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"nftmarket/core/events"
)

// tradeHash derives a deterministic identifier for a listing from its economic
// facts, so external systems can correlate the listed and sold events.
func tradeHash(kind AssetKind, seller common.Address, itemID uint64, amount, price *big.Int) [32]byte {
	buf := make([]byte, 0, 64)
	buf = append(buf, kind...)
	buf = append(buf, seller.Bytes()...)
	buf = binary.BigEndian.AppendUint64(buf, itemID)
	if amount != nil {
		buf = append(buf, amount.Bytes()...)
	}
	buf = append(buf, price.Bytes()...)
	var h [32]byte
	copy(h[:], ethcrypto.Keccak256(buf))
	return h
}

// ListItemUnique escrows a unique item with the engine and opens a fixed-price
// listing. The caller must own the item and must have approved the engine for
// it (per-item approval or operator approval).
func (e *Engine) ListItemUnique(caller common.Address, itemID uint64, price *big.Int) error {
	if err := e.guard(); err != nil {
		return err
	}
	if err := checkPositive(price); err != nil {
		return err
	}
	owner, err := e.nft.OwnerOf(itemID)
	if err != nil {
		return err
	}
	if owner != caller {
		return ErrAccessDenied
	}
	approved, err := e.nft.GetApproved(itemID)
	if err != nil {
		return err
	}
	if approved != EngineAddress && !e.nft.IsApprovedForAll(caller, EngineAddress) {
		return ErrNoAllowance
	}
	if e.listingsUnique[itemID].Active() {
		return ErrAlreadyListed
	}
	if err := e.nft.TransferFrom(EngineAddress, caller, EngineAddress, itemID); err != nil {
		return err
	}
	e.listingsUnique[itemID] = &Listing{
		AssetKind: AssetUnique,
		Seller:    caller,
		ItemID:    itemID,
		Amount:    big.NewInt(1),
		Price:     new(big.Int).Set(price),
		Status:    ListingActive,
	}
	e.emitter.Emit(events.MarketListed{
		AssetKind: string(AssetUnique),
		Seller:    caller,
		ItemID:    itemID,
		Price:     new(big.Int).Set(price),
		TradeHash: tradeHash(AssetUnique, caller, itemID, nil, price),
	})
	return nil
}

// ListItemMulti escrows amount units of an item and opens a fixed-price
// listing for the whole lot. The caller must hold at least amount and must
// have granted the engine operator approval.
func (e *Engine) ListItemMulti(caller common.Address, itemID uint64, amount, price *big.Int) error {
	if err := e.guard(); err != nil {
		return err
	}
	if err := checkPositive(amount); err != nil {
		return err
	}
	if err := checkPositive(price); err != nil {
		return err
	}
	bal, err := e.multi.BalanceOf(caller, itemID)
	if err != nil {
		return err
	}
	if bal.Cmp(amount) < 0 {
		return ErrAccessDenied
	}
	if !e.multi.IsApprovedForAll(caller, EngineAddress) {
		return ErrNoAllowance
	}
	if e.listingsMulti[itemID].Active() {
		return ErrAlreadyListed
	}
	if err := e.multi.SafeTransferFrom(EngineAddress, caller, EngineAddress, itemID, amount); err != nil {
		return err
	}
	e.listingsMulti[itemID] = &Listing{
		AssetKind: AssetMulti,
		Seller:    caller,
		ItemID:    itemID,
		Amount:    new(big.Int).Set(amount),
		Price:     new(big.Int).Set(price),
		Status:    ListingActive,
	}
	e.emitter.Emit(events.MarketListed{
		AssetKind: string(AssetMulti),
		Seller:    caller,
		ItemID:    itemID,
		Amount:    new(big.Int).Set(amount),
		Price:     new(big.Int).Set(price),
		TradeHash: tradeHash(AssetMulti, caller, itemID, amount, price),
	})
	return nil
}

// BuyItemUnique settles an active listing: the price moves from the buyer to
// the seller and custody of the item moves to the buyer. Either all four
// effects commit or none do.
func (e *Engine) BuyItemUnique(caller common.Address, itemID uint64) error {
	return e.buy(caller, itemID, AssetUnique)
}

// BuyItemMulti settles an active multi-quantity listing.
func (e *Engine) BuyItemMulti(caller common.Address, itemID uint64) error {
	return e.buy(caller, itemID, AssetMulti)
}

func (e *Engine) buy(caller common.Address, itemID uint64, kind AssetKind) error {
	if err := e.guard(); err != nil {
		return err
	}
	listing := e.listings(kind)[itemID]
	if !listing.Active() {
		return ErrNotFound
	}
	if e.token.Allowance(caller, EngineAddress).Cmp(listing.Price) < 0 {
		return ErrNoAllowance
	}
	if e.token.BalanceOf(caller).Cmp(listing.Price) < 0 {
		return ErrInsufficientFunds
	}
	// The custody leg runs first: it is the only one that can still fail
	// (a contract-like buyer may reject the asset). With allowance and
	// balance verified, the payment leg below cannot fail, so both legs
	// commit together or neither does.
	if err := e.releaseEscrow(kind, caller, listing.ItemID, listing.Amount); err != nil {
		return err
	}
	if err := e.token.TransferFrom(EngineAddress, caller, listing.Seller, listing.Price); err != nil {
		return err
	}
	listing.Status = ListingSold
	e.emitter.Emit(events.MarketSold{
		AssetKind: string(kind),
		Seller:    listing.Seller,
		Buyer:     caller,
		ItemID:    itemID,
		Amount:    cloneAmount(listing.Amount),
		Price:     new(big.Int).Set(listing.Price),
	})
	return nil
}

// CancelUnique withdraws an active listing; only the seller may cancel, and
// custody returns to them.
func (e *Engine) CancelUnique(caller common.Address, itemID uint64) error {
	return e.cancel(caller, itemID, AssetUnique)
}

// CancelMulti withdraws an active multi-quantity listing.
func (e *Engine) CancelMulti(caller common.Address, itemID uint64) error {
	return e.cancel(caller, itemID, AssetMulti)
}

func (e *Engine) cancel(caller common.Address, itemID uint64, kind AssetKind) error {
	if err := e.guard(); err != nil {
		return err
	}
	listing := e.listings(kind)[itemID]
	if !listing.Active() {
		return ErrNotFound
	}
	if caller != listing.Seller {
		return ErrAccessDenied
	}
	if err := e.releaseEscrow(kind, listing.Seller, listing.ItemID, listing.Amount); err != nil {
		return err
	}
	listing.Status = ListingCancelled
	e.emitter.Emit(events.MarketCancelled{
		AssetKind: string(kind),
		Seller:    listing.Seller,
		ItemID:    itemID,
		Amount:    cloneAmount(listing.Amount),
	})
	return nil
}

// releaseEscrow moves an escrowed asset out of engine custody.
func (e *Engine) releaseEscrow(kind AssetKind, to common.Address, itemID uint64, amount *big.Int) error {
	if kind == AssetMulti {
		return e.multi.SafeTransferFrom(EngineAddress, EngineAddress, to, itemID, amount)
	}
	return e.nft.TransferFrom(EngineAddress, EngineAddress, to, itemID)
}

func cloneAmount(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}
