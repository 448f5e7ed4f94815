package market

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"nftmarket/core/events"
	nativecommon "nftmarket/native/common"
)

const (
	marketModuleName = "market"

	// auctionDuration is the fixed window between listing an item on auction
	// and the earliest finish time.
	auctionDuration = 3 * 24 * time.Hour

	// minBidsToSettle is the bid count an auction needs to settle with the
	// highest bidder. Below it the auction is voided and everyone is made
	// whole. Fixed policy, not configurable per auction.
	minBidsToSettle = 3
)

// EngineAddress is the account under which the engine holds custody of
// escrowed assets and payments. Derived deterministically so that every node
// and every snapshot agrees on it.
var EngineAddress = func() common.Address {
	hash := ethcrypto.Keccak256([]byte("nftmarket/market/escrow-vault"))
	var addr common.Address
	copy(addr[:], hash[12:])
	return addr
}()

// FungibleLedger is the payment-side surface the engine needs.
type FungibleLedger interface {
	Allowance(owner, spender common.Address) *big.Int
	BalanceOf(addr common.Address) *big.Int
	Transfer(caller, to common.Address, amount *big.Int) error
	TransferFrom(caller, from, to common.Address, amount *big.Int) error
}

// UniqueLedger is the unique-item surface the engine needs.
type UniqueLedger interface {
	Mint(caller, to common.Address, uri string) (uint64, error)
	OwnerOf(id uint64) (common.Address, error)
	GetApproved(id uint64) (common.Address, error)
	IsApprovedForAll(owner, operator common.Address) bool
	TransferFrom(caller, from, to common.Address, id uint64) error
}

// MultiLedger is the multi-quantity item surface the engine needs.
type MultiLedger interface {
	Mint(caller, to common.Address, id uint64, amount *big.Int, uri string) error
	BalanceOf(addr common.Address, id uint64) (*big.Int, error)
	IsApprovedForAll(owner, operator common.Address) bool
	SafeTransferFrom(caller, from, to common.Address, id uint64, amount *big.Int) error
}

// Engine orchestrates direct listings and English auctions over the two item
// ledgers, settling payment through the fungible ledger. It exclusively owns
// the listing and auction tables and holds custody of every escrowed asset
// and payment under EngineAddress.
//
// The engine is a strictly sequential state transformer: callers serialize
// access (the node does this), and every operation checks all preconditions
// before the first cross-ledger effect.
type Engine struct {
	token FungibleLedger
	nft   UniqueLedger
	multi MultiLedger

	listingsUnique    map[uint64]*Listing
	listingsMulti     map[uint64]*Listing
	auctionsUnique    map[uint64]*Auction
	auctionsMulti     map[uint64]*Auction
	nextAuctionUnique uint64
	nextAuctionMulti  uint64

	emitter events.Emitter
	nowFn   func() int64
	pauses  nativecommon.PauseView
}

// NewEngine constructs a marketplace engine bound to the three ledgers.
func NewEngine(token FungibleLedger, nft UniqueLedger, multi MultiLedger) *Engine {
	return &Engine{
		token:             token,
		nft:               nft,
		multi:             multi,
		listingsUnique:    make(map[uint64]*Listing),
		listingsMulti:     make(map[uint64]*Listing),
		auctionsUnique:    make(map[uint64]*Auction),
		auctionsMulti:     make(map[uint64]*Auction),
		nextAuctionUnique: 1,
		nextAuctionMulti:  1,
		emitter:           events.NoopEmitter{},
		nowFn:             func() int64 { return time.Now().Unix() },
	}
}

// SetEmitter configures the event emitter. Passing nil resets it to a no-op.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		e.emitter = events.NoopEmitter{}
		return
	}
	e.emitter = emitter
}

// SetNowFunc overrides the time source, primarily used in tests.
func (e *Engine) SetNowFunc(now func() int64) {
	if now == nil {
		e.nowFn = func() int64 { return time.Now().Unix() }
		return
	}
	e.nowFn = now
}

// SetPauses configures the administrative pause view.
func (e *Engine) SetPauses(p nativecommon.PauseView) { e.pauses = p }

func (e *Engine) now() int64 { return e.nowFn() }

func (e *Engine) guard() error {
	return nativecommon.Guard(e.pauses, marketModuleName)
}

// CreateItemUnique mints a fresh unique item through the item ledger. The
// engine must hold the minter capability; a ledger-side failure propagates
// unchanged.
func (e *Engine) CreateItemUnique(to common.Address, uri string) (uint64, error) {
	if err := e.guard(); err != nil {
		return 0, err
	}
	return e.nft.Mint(EngineAddress, to, uri)
}

// CreateItemMulti mints amount units of id through the multi-quantity ledger.
func (e *Engine) CreateItemMulti(to common.Address, id uint64, amount *big.Int, uri string) error {
	if err := e.guard(); err != nil {
		return err
	}
	return e.multi.Mint(EngineAddress, to, id, amount, uri)
}

// GetListing returns a copy of the listing for an item, if one exists.
func (e *Engine) GetListing(kind AssetKind, itemID uint64) (*Listing, bool) {
	l, ok := e.listings(kind)[itemID]
	return l.Clone(), ok
}

// GetAuction returns a copy of an auction by its id.
func (e *Engine) GetAuction(kind AssetKind, auctionID uint64) (*Auction, bool) {
	a, ok := e.auctions(kind)[auctionID]
	return a.Clone(), ok
}

func (e *Engine) listings(kind AssetKind) map[uint64]*Listing {
	if kind == AssetMulti {
		return e.listingsMulti
	}
	return e.listingsUnique
}

func (e *Engine) auctions(kind AssetKind) map[uint64]*Auction {
	if kind == AssetMulti {
		return e.auctionsMulti
	}
	return e.auctionsUnique
}

func checkPositive(amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
