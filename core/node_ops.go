package core

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"nftmarket/native/market"
)

// TokenInfo bundles the static descriptor of the payment token.
type TokenInfo struct {
	Name        string         `json:"name"`
	Symbol      string         `json:"symbol"`
	Decimals    uint8          `json:"decimals"`
	Admin       common.Address `json:"admin"`
	TotalSupply *big.Int       `json:"totalSupply"`
}

// --- payment token ---

func (n *Node) TokenInfo() TokenInfo {
	n.mu.Lock()
	defer n.mu.Unlock()
	return TokenInfo{
		Name:        n.token.Name(),
		Symbol:      n.token.Symbol(),
		Decimals:    n.token.Decimals(),
		Admin:       n.token.Admin(),
		TotalSupply: n.token.TotalSupply(),
	}
}

func (n *Node) TokenBalanceOf(addr common.Address) *big.Int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.token.BalanceOf(addr)
}

func (n *Node) TokenAllowance(owner, spender common.Address) *big.Int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.token.Allowance(owner, spender)
}

func (n *Node) TokenMint(caller, to common.Address, amount *big.Int) error {
	return n.withState(func() error { return n.token.Mint(caller, to, amount) })
}

func (n *Node) TokenBurn(caller common.Address, amount *big.Int) error {
	return n.withState(func() error { return n.token.Burn(caller, amount) })
}

func (n *Node) TokenApprove(caller, spender common.Address, amount *big.Int) error {
	return n.withState(func() error { return n.token.Approve(caller, spender, amount) })
}

func (n *Node) TokenTransfer(caller, to common.Address, amount *big.Int) error {
	return n.withState(func() error { return n.token.Transfer(caller, to, amount) })
}

func (n *Node) TokenTransferFrom(caller, from, to common.Address, amount *big.Int) error {
	return n.withState(func() error { return n.token.TransferFrom(caller, from, to, amount) })
}

// --- unique items ---

func (n *Node) NFTMint(caller, to common.Address, uri string) (uint64, error) {
	var id uint64
	err := n.withState(func() error {
		var err error
		id, err = n.nft.Mint(caller, to, uri)
		return err
	})
	return id, err
}

func (n *Node) NFTBalanceOf(addr common.Address) (uint64, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.nft.BalanceOf(addr)
}

func (n *Node) NFTOwnerOf(id uint64) (common.Address, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.nft.OwnerOf(id)
}

func (n *Node) NFTTokenURI(id uint64) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.nft.TokenURI(id)
}

func (n *Node) NFTGetApproved(id uint64) (common.Address, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.nft.GetApproved(id)
}

func (n *Node) NFTIsApprovedForAll(owner, operator common.Address) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.nft.IsApprovedForAll(owner, operator)
}

func (n *Node) NFTApprove(caller, spender common.Address, id uint64) error {
	return n.withState(func() error { return n.nft.Approve(caller, spender, id) })
}

func (n *Node) NFTSetApprovalForAll(caller, operator common.Address, approved bool) error {
	return n.withState(func() error { return n.nft.SetApprovalForAll(caller, operator, approved) })
}

func (n *Node) NFTTransferFrom(caller, from, to common.Address, id uint64) error {
	return n.withState(func() error { return n.nft.TransferFrom(caller, from, to, id) })
}

func (n *Node) NFTSafeTransferFrom(caller, from, to common.Address, id uint64) error {
	return n.withState(func() error { return n.nft.SafeTransferFrom(caller, from, to, id) })
}

func (n *Node) NFTIsMinter(addr common.Address) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.nft.IsMinter(addr)
}

func (n *Node) NFTGrantMinter(caller, addr common.Address) error {
	return n.withState(func() error { return n.nft.GrantMinter(caller, addr) })
}

func (n *Node) NFTRevokeMinter(caller, addr common.Address) error {
	return n.withState(func() error { return n.nft.RevokeMinter(caller, addr) })
}

// --- multi asset items ---

func (n *Node) MultiMint(caller, to common.Address, id uint64, amount *big.Int, uri string) error {
	return n.withState(func() error { return n.multi.Mint(caller, to, id, amount, uri) })
}

func (n *Node) MultiMintBatch(caller, to common.Address, ids []uint64, amounts []*big.Int, uris []string) error {
	return n.withState(func() error { return n.multi.MintBatch(caller, to, ids, amounts, uris) })
}

func (n *Node) MultiBalanceOf(addr common.Address, id uint64) (*big.Int, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.multi.BalanceOf(addr, id)
}

func (n *Node) MultiBalanceOfBatch(addrs []common.Address, ids []uint64) ([]*big.Int, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.multi.BalanceOfBatch(addrs, ids)
}

func (n *Node) MultiURI(id uint64) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.multi.URI(id)
}

func (n *Node) MultiIsApprovedForAll(owner, operator common.Address) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.multi.IsApprovedForAll(owner, operator)
}

func (n *Node) MultiSetApprovalForAll(caller, operator common.Address, approved bool) error {
	return n.withState(func() error { return n.multi.SetApprovalForAll(caller, operator, approved) })
}

func (n *Node) MultiSafeTransferFrom(caller, from, to common.Address, id uint64, amount *big.Int) error {
	return n.withState(func() error { return n.multi.SafeTransferFrom(caller, from, to, id, amount) })
}

func (n *Node) MultiSafeBatchTransferFrom(caller, from, to common.Address, ids []uint64, amounts []*big.Int) error {
	return n.withState(func() error { return n.multi.SafeBatchTransferFrom(caller, from, to, ids, amounts) })
}

func (n *Node) MultiIsMinter(addr common.Address) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.multi.IsMinter(addr)
}

func (n *Node) MultiGrantMinter(caller, addr common.Address) error {
	return n.withState(func() error { return n.multi.GrantMinter(caller, addr) })
}

func (n *Node) MultiRevokeMinter(caller, addr common.Address) error {
	return n.withState(func() error { return n.multi.RevokeMinter(caller, addr) })
}

// --- marketplace ---

func (n *Node) MarketCreateItemUnique(to common.Address, uri string) (uint64, error) {
	var id uint64
	err := n.withState(func() error {
		var err error
		id, err = n.market.CreateItemUnique(to, uri)
		return err
	})
	return id, err
}

func (n *Node) MarketCreateItemMulti(to common.Address, id uint64, amount *big.Int, uri string) error {
	return n.withState(func() error { return n.market.CreateItemMulti(to, id, amount, uri) })
}

func (n *Node) MarketListUnique(caller common.Address, itemID uint64, price *big.Int) error {
	return n.withState(func() error { return n.market.ListItemUnique(caller, itemID, price) })
}

func (n *Node) MarketListMulti(caller common.Address, itemID uint64, amount, price *big.Int) error {
	return n.withState(func() error { return n.market.ListItemMulti(caller, itemID, amount, price) })
}

func (n *Node) MarketBuyUnique(caller common.Address, itemID uint64) error {
	return n.withState(func() error { return n.market.BuyItemUnique(caller, itemID) })
}

func (n *Node) MarketBuyMulti(caller common.Address, itemID uint64) error {
	return n.withState(func() error { return n.market.BuyItemMulti(caller, itemID) })
}

func (n *Node) MarketCancelUnique(caller common.Address, itemID uint64) error {
	return n.withState(func() error { return n.market.CancelUnique(caller, itemID) })
}

func (n *Node) MarketCancelMulti(caller common.Address, itemID uint64) error {
	return n.withState(func() error { return n.market.CancelMulti(caller, itemID) })
}

func (n *Node) MarketListAuctionUnique(caller common.Address, itemID uint64, startPrice *big.Int) (uint64, error) {
	var auctionID uint64
	err := n.withState(func() error {
		var err error
		auctionID, err = n.market.ListItemOnAuctionUnique(caller, itemID, startPrice)
		return err
	})
	return auctionID, err
}

func (n *Node) MarketListAuctionMulti(caller common.Address, itemID uint64, amount, startPrice *big.Int) (uint64, error) {
	var auctionID uint64
	err := n.withState(func() error {
		var err error
		auctionID, err = n.market.ListItemOnAuctionMulti(caller, itemID, amount, startPrice)
		return err
	})
	return auctionID, err
}

func (n *Node) MarketBidUnique(caller common.Address, auctionID uint64, amount *big.Int) error {
	return n.withState(func() error { return n.market.MakeBidUnique(caller, auctionID, amount) })
}

func (n *Node) MarketBidMulti(caller common.Address, auctionID uint64, amount *big.Int) error {
	return n.withState(func() error { return n.market.MakeBidMulti(caller, auctionID, amount) })
}

func (n *Node) MarketFinishAuctionUnique(auctionID uint64) error {
	return n.withState(func() error { return n.market.FinishAuctionUnique(auctionID) })
}

func (n *Node) MarketFinishAuctionMulti(auctionID uint64) error {
	return n.withState(func() error { return n.market.FinishAuctionMulti(auctionID) })
}

func (n *Node) MarketGetListing(kind market.AssetKind, itemID uint64) (*market.Listing, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.market.GetListing(kind, itemID)
}

func (n *Node) MarketGetAuction(kind market.AssetKind, auctionID uint64) (*market.Auction, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.market.GetAuction(kind, auctionID)
}
