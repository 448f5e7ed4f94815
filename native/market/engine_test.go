package market

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"nftmarket/core/events"
	nativecommon "nftmarket/native/common"
	"nftmarket/native/multitoken"
	"nftmarket/native/nft"
	"nftmarket/native/token"
)

func testAddress(fill byte) common.Address {
	var addr common.Address
	copy(addr[:], bytes.Repeat([]byte{fill}, common.AddressLength))
	return addr
}

type fixture struct {
	token  *token.Ledger
	nft    *nft.Ledger
	multi  *multitoken.Ledger
	engine *Engine

	deployer common.Address
	seller   common.Address
	buyer1   common.Address
	buyer2   common.Address
	hacker   common.Address

	now int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		deployer: testAddress(0x01),
		seller:   testAddress(0x02),
		buyer1:   testAddress(0x03),
		buyer2:   testAddress(0x04),
		hacker:   testAddress(0x0F),
		now:      1_700_000_000,
	}
	f.token = token.NewLedger("KirillZaynutdinovToken", "KZT", 3, f.deployer)
	f.nft = nft.NewLedger("HappyRoger721", "HR721", f.deployer)
	f.multi = multitoken.NewLedger("HappyRoger1155", "HR1155", f.deployer)
	f.engine = NewEngine(f.token, f.nft, f.multi)
	f.engine.SetNowFunc(func() int64 { return f.now })

	// Administrative setup: the engine holds the minter capability on both
	// item ledgers.
	if err := f.nft.GrantMinter(f.deployer, EngineAddress); err != nil {
		t.Fatalf("grant nft minter: %v", err)
	}
	if err := f.multi.GrantMinter(f.deployer, EngineAddress); err != nil {
		t.Fatalf("grant multitoken minter: %v", err)
	}
	return f
}

func (f *fixture) advance(seconds int64) { f.now += seconds }

func (f *fixture) mintUnique(t *testing.T, to common.Address, uri string) uint64 {
	t.Helper()
	id, err := f.engine.CreateItemUnique(to, uri)
	if err != nil {
		t.Fatalf("createItemUnique: %v", err)
	}
	return id
}

func (f *fixture) fund(t *testing.T, to common.Address, amount int64) {
	t.Helper()
	if err := f.token.Mint(f.deployer, to, big.NewInt(amount)); err != nil {
		t.Fatalf("fund %s: %v", to, err)
	}
}

func (f *fixture) approvePayment(t *testing.T, owner common.Address, amount int64) {
	t.Helper()
	if err := f.token.Approve(owner, EngineAddress, big.NewInt(amount)); err != nil {
		t.Fatalf("approve payment: %v", err)
	}
}

func (f *fixture) balance(t *testing.T, addr common.Address) int64 {
	t.Helper()
	return f.token.BalanceOf(addr).Int64()
}

func TestCreateItemUnique(t *testing.T) {
	f := newFixture(t)
	for i := 1; i <= 5; i++ {
		id := f.mintUnique(t, f.seller, "ipfs://item")
		if id != uint64(i) {
			t.Fatalf("id = %d, want %d", id, i)
		}
	}
	if bal, _ := f.nft.BalanceOf(f.seller); bal != 5 {
		t.Fatalf("seller item balance = %d, want 5", bal)
	}
}

func TestCreateItemWithoutMinterRole(t *testing.T) {
	f := newFixture(t)
	if err := f.nft.RevokeMinter(f.deployer, EngineAddress); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, err := f.engine.CreateItemUnique(f.seller, "x"); !errors.Is(err, nft.ErrAccessDenied) {
		t.Fatalf("expected ledger access denied to propagate, got %v", err)
	}
}

func TestListItemUnique(t *testing.T) {
	f := newFixture(t)
	id := f.mintUnique(t, f.seller, "u1")

	// Only the owner may list.
	if err := f.engine.ListItemUnique(f.hacker, id, big.NewInt(100)); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected access denied, got %v", err)
	}
	// Listing without approving the engine fails.
	if err := f.engine.ListItemUnique(f.seller, id, big.NewInt(100)); !errors.Is(err, ErrNoAllowance) {
		t.Fatalf("expected no allowance, got %v", err)
	}
	if err := f.nft.Approve(f.seller, EngineAddress, id); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := f.engine.ListItemUnique(f.seller, id, big.NewInt(100)); err != nil {
		t.Fatalf("listItemUnique: %v", err)
	}
	// Custody moved to the engine.
	if owner, _ := f.nft.OwnerOf(id); owner != EngineAddress {
		t.Fatalf("owner = %s, want engine", owner)
	}
	listing, ok := f.engine.GetListing(AssetUnique, id)
	if !ok || !listing.Active() {
		t.Fatal("listing not active after list")
	}
	if listing.Seller != f.seller || listing.Price.Int64() != 100 {
		t.Fatalf("listing = %+v", listing)
	}
}

type recordingEmitter struct {
	evts []events.Event
}

func (r *recordingEmitter) Emit(evt events.Event) { r.evts = append(r.evts, evt) }

func TestListItemEmitsTradeHash(t *testing.T) {
	f := newFixture(t)
	id := f.mintUnique(t, f.seller, "u1")
	if err := f.nft.Approve(f.seller, EngineAddress, id); err != nil {
		t.Fatalf("approve: %v", err)
	}

	rec := &recordingEmitter{}
	f.engine.SetEmitter(rec)
	if err := f.engine.ListItemUnique(f.seller, id, big.NewInt(100)); err != nil {
		t.Fatalf("listItemUnique: %v", err)
	}

	var listed *events.MarketListed
	for i := range rec.evts {
		if evt, ok := rec.evts[i].(events.MarketListed); ok {
			listed = &evt
		}
	}
	if listed == nil {
		t.Fatalf("no listed event in %v", rec.evts)
	}
	if listed.TradeHash == ([32]byte{}) {
		t.Fatal("trade hash not set on listed event")
	}
	// The hash is a pure function of the listing facts.
	if got := tradeHash(AssetUnique, f.seller, id, nil, big.NewInt(100)); got != listed.TradeHash {
		t.Fatalf("trade hash = %x, want %x", listed.TradeHash, got)
	}
	if got := tradeHash(AssetUnique, f.seller, id, nil, big.NewInt(101)); got == listed.TradeHash {
		t.Fatal("trade hash ignores the price")
	}
}

func TestBuyItemUnique(t *testing.T) {
	f := newFixture(t)
	id := f.mintUnique(t, f.seller, "u1")
	if err := f.nft.Approve(f.seller, EngineAddress, id); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := f.engine.ListItemUnique(f.seller, id, big.NewInt(100)); err != nil {
		t.Fatalf("list: %v", err)
	}
	f.fund(t, f.buyer1, 2000)

	// Buying an unlisted item fails.
	if err := f.engine.BuyItemUnique(f.buyer1, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	// Buying without a payment allowance fails.
	if err := f.engine.BuyItemUnique(f.buyer1, id); !errors.Is(err, ErrNoAllowance) {
		t.Fatalf("expected no allowance, got %v", err)
	}
	f.approvePayment(t, f.buyer1, 100)
	if err := f.engine.BuyItemUnique(f.buyer1, id); err != nil {
		t.Fatalf("buy: %v", err)
	}
	if owner, _ := f.nft.OwnerOf(id); owner != f.buyer1 {
		t.Fatalf("owner = %s, want buyer", owner)
	}
	if got := f.balance(t, f.seller); got != 100 {
		t.Fatalf("seller balance = %d, want 100", got)
	}
	if got := f.balance(t, f.buyer1); got != 1900 {
		t.Fatalf("buyer balance = %d, want 1900", got)
	}
	// The listing is consumed.
	if err := f.engine.BuyItemUnique(f.buyer1, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found after sale, got %v", err)
	}
}

func TestBuyItemUniqueInsufficientFunds(t *testing.T) {
	f := newFixture(t)
	id := f.mintUnique(t, f.seller, "u1")
	if err := f.nft.Approve(f.seller, EngineAddress, id); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := f.engine.ListItemUnique(f.seller, id, big.NewInt(100)); err != nil {
		t.Fatalf("list: %v", err)
	}
	f.fund(t, f.buyer1, 50)
	f.approvePayment(t, f.buyer1, 100)

	if err := f.engine.BuyItemUnique(f.buyer1, id); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
	// Nothing moved.
	if owner, _ := f.nft.OwnerOf(id); owner != EngineAddress {
		t.Fatalf("owner = %s, want engine after failed buy", owner)
	}
	if got := f.balance(t, f.buyer1); got != 50 {
		t.Fatalf("buyer balance = %d, want 50", got)
	}
}

func TestCancelUnique(t *testing.T) {
	f := newFixture(t)
	id := f.mintUnique(t, f.seller, "u1")
	if err := f.nft.Approve(f.seller, EngineAddress, id); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := f.engine.ListItemUnique(f.seller, id, big.NewInt(100)); err != nil {
		t.Fatalf("list: %v", err)
	}

	// Only the seller can cancel an active listing.
	if err := f.engine.CancelUnique(f.hacker, id); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected access denied, got %v", err)
	}
	if err := f.engine.CancelUnique(f.seller, id); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if owner, _ := f.nft.OwnerOf(id); owner != f.seller {
		t.Fatalf("owner = %s, want seller after cancel", owner)
	}
	// An inactive listing reports not-found, even to strangers.
	if err := f.engine.CancelUnique(f.hacker, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func (f *fixture) openUniqueAuction(t *testing.T, itemID uint64, startPrice int64) uint64 {
	t.Helper()
	if err := f.nft.Approve(f.seller, EngineAddress, itemID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	auctionID, err := f.engine.ListItemOnAuctionUnique(f.seller, itemID, big.NewInt(startPrice))
	if err != nil {
		t.Fatalf("listItemOnAuctionUnique: %v", err)
	}
	return auctionID
}

func TestListItemOnAuctionUnique(t *testing.T) {
	f := newFixture(t)
	id := f.mintUnique(t, f.seller, "u1")

	if _, err := f.engine.ListItemOnAuctionUnique(f.hacker, id, big.NewInt(100)); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected access denied, got %v", err)
	}
	if _, err := f.engine.ListItemOnAuctionUnique(f.seller, id, big.NewInt(100)); !errors.Is(err, ErrNoAllowance) {
		t.Fatalf("expected no allowance, got %v", err)
	}
	auctionID := f.openUniqueAuction(t, id, 100)
	if auctionID != 1 {
		t.Fatalf("auction id = %d, want 1", auctionID)
	}
	if owner, _ := f.nft.OwnerOf(id); owner != EngineAddress {
		t.Fatalf("owner = %s, want engine", owner)
	}
	auction, ok := f.engine.GetAuction(AssetUnique, auctionID)
	if !ok {
		t.Fatal("auction missing")
	}
	if auction.HighestBid.Int64() != 100 || auction.BidCount != 0 {
		t.Fatalf("auction = %+v", auction)
	}
	if auction.EndTime != f.now+259200 {
		t.Fatalf("end time = %d, want now+3d", auction.EndTime)
	}
}

func TestMakeBidRefundsOutbidBidder(t *testing.T) {
	f := newFixture(t)
	id := f.mintUnique(t, f.seller, "u1")
	auctionID := f.openUniqueAuction(t, id, 100)
	f.fund(t, f.buyer1, 2000)
	f.fund(t, f.buyer2, 2000)

	// A bid at or below the current highest is rejected before any allowance
	// check.
	if err := f.engine.MakeBidUnique(f.buyer1, auctionID, big.NewInt(50)); !errors.Is(err, ErrBidTooLow) {
		t.Fatalf("expected bid too low, got %v", err)
	}
	if err := f.engine.MakeBidUnique(f.buyer1, auctionID, big.NewInt(200)); !errors.Is(err, ErrNoAllowance) {
		t.Fatalf("expected no allowance, got %v", err)
	}

	f.approvePayment(t, f.buyer1, 200)
	if err := f.engine.MakeBidUnique(f.buyer1, auctionID, big.NewInt(200)); err != nil {
		t.Fatalf("bid 200: %v", err)
	}
	if got := f.balance(t, f.buyer1); got != 1800 {
		t.Fatalf("buyer1 balance = %d, want 1800", got)
	}
	if got := f.balance(t, EngineAddress); got != 200 {
		t.Fatalf("engine escrow = %d, want 200", got)
	}

	// The second bid refunds the first bidder in full.
	f.approvePayment(t, f.buyer2, 300)
	if err := f.engine.MakeBidUnique(f.buyer2, auctionID, big.NewInt(300)); err != nil {
		t.Fatalf("bid 300: %v", err)
	}
	if got := f.balance(t, f.buyer1); got != 2000 {
		t.Fatalf("buyer1 balance = %d, want 2000 after refund", got)
	}
	if got := f.balance(t, f.buyer2); got != 1700 {
		t.Fatalf("buyer2 balance = %d, want 1700", got)
	}
	if got := f.balance(t, EngineAddress); got != 300 {
		t.Fatalf("engine escrow = %d, want 300", got)
	}

	auction, _ := f.engine.GetAuction(AssetUnique, auctionID)
	if auction.HighestBidder != f.buyer2 || auction.HighestBid.Int64() != 300 || auction.BidCount != 2 {
		t.Fatalf("auction = %+v", auction)
	}
}

func TestFinishAuctionSettlesWithThreeBids(t *testing.T) {
	f := newFixture(t)
	id := f.mintUnique(t, f.seller, "u1")
	auctionID := f.openUniqueAuction(t, id, 100)
	f.fund(t, f.buyer1, 2000)
	f.fund(t, f.buyer2, 2000)

	for _, bid := range []struct {
		bidder common.Address
		amount int64
	}{
		{f.buyer1, 200},
		{f.buyer2, 300},
		{f.buyer1, 400},
	} {
		f.approvePayment(t, bid.bidder, bid.amount)
		if err := f.engine.MakeBidUnique(bid.bidder, auctionID, big.NewInt(bid.amount)); err != nil {
			t.Fatalf("bid %d: %v", bid.amount, err)
		}
	}
	// Intermediate bidders are already refunded during bidding.
	if got := f.balance(t, f.buyer2); got != 2000 {
		t.Fatalf("buyer2 balance = %d, want 2000", got)
	}

	if err := f.engine.FinishAuctionUnique(auctionID); !errors.Is(err, ErrAuctionNotOver) {
		t.Fatalf("expected auction not over, got %v", err)
	}
	f.advance(259200)
	if err := f.engine.MakeBidUnique(f.buyer2, auctionID, big.NewInt(500)); !errors.Is(err, ErrAuctionOver) {
		t.Fatalf("expected auction over, got %v", err)
	}

	if err := f.engine.FinishAuctionUnique(auctionID); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if owner, _ := f.nft.OwnerOf(id); owner != f.buyer1 {
		t.Fatalf("owner = %s, want winning bidder", owner)
	}
	if got := f.balance(t, f.seller); got != 400 {
		t.Fatalf("seller balance = %d, want 400", got)
	}
	if got := f.balance(t, f.buyer1); got != 1600 {
		t.Fatalf("buyer1 balance = %d, want 1600", got)
	}
	if got := f.balance(t, EngineAddress); got != 0 {
		t.Fatalf("engine escrow = %d, want 0", got)
	}

	if err := f.engine.FinishAuctionUnique(auctionID); !errors.Is(err, ErrAuctionFinished) {
		t.Fatalf("expected already finished, got %v", err)
	}
}

func TestFinishAuctionVoidsWithOneBid(t *testing.T) {
	f := newFixture(t)
	id := f.mintUnique(t, f.seller, "u1")
	auctionID := f.openUniqueAuction(t, id, 100)
	f.fund(t, f.buyer1, 2000)

	f.approvePayment(t, f.buyer1, 200)
	if err := f.engine.MakeBidUnique(f.buyer1, auctionID, big.NewInt(200)); err != nil {
		t.Fatalf("bid: %v", err)
	}
	f.advance(259200)
	if err := f.engine.FinishAuctionUnique(auctionID); err != nil {
		t.Fatalf("finish: %v", err)
	}
	// Item back to the seller, the sole bidder made whole.
	if owner, _ := f.nft.OwnerOf(id); owner != f.seller {
		t.Fatalf("owner = %s, want seller", owner)
	}
	if got := f.balance(t, f.buyer1); got != 2000 {
		t.Fatalf("buyer1 balance = %d, want 2000 after refund", got)
	}
	if got := f.balance(t, f.seller); got != 0 {
		t.Fatalf("seller balance = %d, want 0", got)
	}
}

func TestFinishAuctionVoidsWithNoBids(t *testing.T) {
	f := newFixture(t)
	id := f.mintUnique(t, f.seller, "u1")
	auctionID := f.openUniqueAuction(t, id, 100)

	f.advance(259200)
	if err := f.engine.FinishAuctionUnique(auctionID); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if owner, _ := f.nft.OwnerOf(id); owner != f.seller {
		t.Fatalf("owner = %s, want seller", owner)
	}
	if got := f.balance(t, EngineAddress); got != 0 {
		t.Fatalf("engine escrow = %d, want 0", got)
	}
	if err := f.engine.FinishAuctionUnique(99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func (f *fixture) mintMulti(t *testing.T, to common.Address, id uint64, amount int64, uri string) {
	t.Helper()
	if err := f.engine.CreateItemMulti(to, id, big.NewInt(amount), uri); err != nil {
		t.Fatalf("createItemMulti: %v", err)
	}
}

func TestMultiListingLifecycle(t *testing.T) {
	f := newFixture(t)
	f.mintMulti(t, f.seller, 1, 5, "m1")
	f.mintMulti(t, f.seller, 2, 5, "m2")

	// Listing more than the caller holds fails before the approval check.
	if err := f.engine.ListItemMulti(f.hacker, 1, big.NewInt(5), big.NewInt(100)); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected access denied, got %v", err)
	}
	if err := f.engine.ListItemMulti(f.seller, 1, big.NewInt(5), big.NewInt(100)); !errors.Is(err, ErrNoAllowance) {
		t.Fatalf("expected no allowance, got %v", err)
	}
	if err := f.multi.SetApprovalForAll(f.seller, EngineAddress, true); err != nil {
		t.Fatalf("setApprovalForAll: %v", err)
	}
	if err := f.engine.ListItemMulti(f.seller, 1, big.NewInt(5), big.NewInt(100)); err != nil {
		t.Fatalf("list: %v", err)
	}
	if err := f.engine.ListItemMulti(f.seller, 2, big.NewInt(5), big.NewInt(100)); err != nil {
		t.Fatalf("list: %v", err)
	}
	if bal, _ := f.multi.BalanceOf(EngineAddress, 1); bal.Int64() != 5 {
		t.Fatalf("engine custody = %s, want 5", bal)
	}

	// Buy item 1.
	f.fund(t, f.buyer1, 2000)
	if err := f.engine.BuyItemMulti(f.buyer1, 1); !errors.Is(err, ErrNoAllowance) {
		t.Fatalf("expected no allowance, got %v", err)
	}
	f.approvePayment(t, f.buyer1, 100)
	if err := f.engine.BuyItemMulti(f.buyer1, 1); err != nil {
		t.Fatalf("buy: %v", err)
	}
	if bal, _ := f.multi.BalanceOf(f.buyer1, 1); bal.Int64() != 5 {
		t.Fatalf("buyer lot = %s, want 5", bal)
	}
	if got := f.balance(t, f.seller); got != 100 {
		t.Fatalf("seller balance = %d, want 100", got)
	}

	// Cancel item 2.
	if err := f.engine.CancelMulti(f.hacker, 2); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected access denied, got %v", err)
	}
	if err := f.engine.CancelMulti(f.seller, 2); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if bal, _ := f.multi.BalanceOf(f.seller, 2); bal.Int64() != 5 {
		t.Fatalf("seller lot = %s, want 5 after cancel", bal)
	}
	if err := f.engine.CancelMulti(f.hacker, 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMultiAuctionThreshold(t *testing.T) {
	f := newFixture(t)
	f.mintMulti(t, f.seller, 1, 5, "m1")
	f.mintMulti(t, f.seller, 2, 5, "m2")
	f.mintMulti(t, f.seller, 3, 5, "m3")
	if err := f.multi.SetApprovalForAll(f.seller, EngineAddress, true); err != nil {
		t.Fatalf("setApprovalForAll: %v", err)
	}
	f.fund(t, f.buyer1, 2000)
	f.fund(t, f.buyer2, 2000)

	openAuction := func(itemID uint64) uint64 {
		auctionID, err := f.engine.ListItemOnAuctionMulti(f.seller, itemID, big.NewInt(5), big.NewInt(100))
		if err != nil {
			t.Fatalf("listItemOnAuctionMulti(%d): %v", itemID, err)
		}
		return auctionID
	}
	threeBids := openAuction(1)
	oneBid := openAuction(2)
	noBids := openAuction(3)
	if threeBids != 1 || oneBid != 2 || noBids != 3 {
		t.Fatalf("auction ids = %d/%d/%d, want 1/2/3", threeBids, oneBid, noBids)
	}

	for _, bid := range []struct {
		bidder common.Address
		amount int64
	}{
		{f.buyer1, 200},
		{f.buyer2, 300},
		{f.buyer1, 400},
	} {
		f.approvePayment(t, bid.bidder, bid.amount)
		if err := f.engine.MakeBidMulti(bid.bidder, threeBids, big.NewInt(bid.amount)); err != nil {
			t.Fatalf("bid %d: %v", bid.amount, err)
		}
	}
	f.approvePayment(t, f.buyer1, 200)
	if err := f.engine.MakeBidMulti(f.buyer1, oneBid, big.NewInt(200)); err != nil {
		t.Fatalf("single bid: %v", err)
	}

	f.advance(259200)

	if err := f.engine.FinishAuctionMulti(threeBids); err != nil {
		t.Fatalf("finish settled: %v", err)
	}
	if bal, _ := f.multi.BalanceOf(f.buyer1, 1); bal.Int64() != 5 {
		t.Fatalf("winner lot = %s, want 5", bal)
	}
	if got := f.balance(t, f.seller); got != 400 {
		t.Fatalf("seller balance = %d, want 400", got)
	}

	if err := f.engine.FinishAuctionMulti(oneBid); err != nil {
		t.Fatalf("finish voided: %v", err)
	}
	if bal, _ := f.multi.BalanceOf(f.seller, 2); bal.Int64() != 5 {
		t.Fatalf("seller lot = %s, want 5 back", bal)
	}
	// buyer1 paid 400 for the settled auction; every other bid was refunded.
	if got := f.balance(t, f.buyer1); got != 1600 {
		t.Fatalf("buyer1 balance = %d, want 1600", got)
	}

	if err := f.engine.FinishAuctionMulti(noBids); err != nil {
		t.Fatalf("finish no bids: %v", err)
	}
	if bal, _ := f.multi.BalanceOf(f.seller, 3); bal.Int64() != 5 {
		t.Fatalf("seller lot = %s, want 5 back", bal)
	}
	if got := f.balance(t, EngineAddress); got != 0 {
		t.Fatalf("engine escrow = %d, want 0 after all auctions", got)
	}
}

type pausedView struct{}

func (pausedView) IsPaused(module string) bool { return module == "market" }

func TestPauseGuard(t *testing.T) {
	f := newFixture(t)
	f.engine.SetPauses(pausedView{})
	if _, err := f.engine.CreateItemUnique(f.seller, "x"); !errors.Is(err, nativecommon.ErrModulePaused) {
		t.Fatalf("expected module paused, got %v", err)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	f := newFixture(t)
	id := f.mintUnique(t, f.seller, "u1")
	if err := f.nft.Approve(f.seller, EngineAddress, id); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := f.engine.ListItemUnique(f.seller, id, big.NewInt(100)); err != nil {
		t.Fatalf("list: %v", err)
	}
	id2 := f.mintUnique(t, f.seller, "u2")
	auctionID := f.openUniqueAuction(t, id2, 150)

	restored := NewEngine(f.token, f.nft, f.multi)
	restored.Restore(f.engine.Snapshot())
	restored.SetNowFunc(func() int64 { return f.now })

	listing, ok := restored.GetListing(AssetUnique, id)
	if !ok || !listing.Active() || listing.Price.Int64() != 100 {
		t.Fatalf("restored listing = %+v (%v)", listing, ok)
	}
	auction, ok := restored.GetAuction(AssetUnique, auctionID)
	if !ok || auction.HighestBid.Int64() != 150 {
		t.Fatalf("restored auction = %+v (%v)", auction, ok)
	}
	// The restored engine keeps issuing fresh auction ids.
	id3 := f.mintUnique(t, f.seller, "u3")
	if err := f.nft.Approve(f.seller, EngineAddress, id3); err != nil {
		t.Fatalf("approve: %v", err)
	}
	next, err := restored.ListItemOnAuctionUnique(f.seller, id3, big.NewInt(10))
	if err != nil {
		t.Fatalf("list on restored: %v", err)
	}
	if next != auctionID+1 {
		t.Fatalf("next auction id = %d, want %d", next, auctionID+1)
	}
}
