package rpc

import (
	"net/http"

	"nftmarket/native/market"
)

type marketCreateParams struct {
	Kind   string `json:"kind"`
	To     string `json:"to"`
	ItemID uint64 `json:"itemId,omitempty"`
	Amount string `json:"amount,omitempty"`
	URI    string `json:"uri"`
}

type marketListParams struct {
	Kind   string `json:"kind"`
	Caller string `json:"caller"`
	ItemID uint64 `json:"itemId"`
	Amount string `json:"amount,omitempty"`
	Price  string `json:"price"`
}

type marketItemParams struct {
	Kind   string `json:"kind"`
	Caller string `json:"caller"`
	ItemID uint64 `json:"itemId"`
}

type marketBidParams struct {
	Kind      string `json:"kind"`
	Caller    string `json:"caller"`
	AuctionID uint64 `json:"auctionId"`
	Amount    string `json:"amount"`
}

type marketAuctionParams struct {
	Kind      string `json:"kind"`
	AuctionID uint64 `json:"auctionId"`
}

type marketQueryParams struct {
	Kind   string `json:"kind"`
	ItemID uint64 `json:"itemId"`
}

type listingJSON struct {
	Kind   string `json:"kind"`
	Seller string `json:"seller"`
	ItemID uint64 `json:"itemId"`
	Amount string `json:"amount"`
	Price  string `json:"price"`
	Status string `json:"status"`
}

type auctionJSON struct {
	ID            uint64 `json:"id"`
	Kind          string `json:"kind"`
	ItemID        uint64 `json:"itemId"`
	Amount        string `json:"amount"`
	Seller        string `json:"seller"`
	HighestBidder string `json:"highestBidder,omitempty"`
	HighestBid    string `json:"highestBid"`
	BidCount      uint64 `json:"bidCount"`
	EndTime       int64  `json:"endTime"`
	Finished      bool   `json:"finished"`
}

func (s *Server) handleMarketCreateItem(w http.ResponseWriter, req *RPCRequest) {
	var p marketCreateParams
	if err := decodeParams(req, &p); err != nil {
		invalidParams(w, req, err)
		return
	}
	kind, err := parseAssetKind(p.Kind)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	to, err := parseAddress("to", p.To)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	if kind == market.AssetUnique {
		id, err := s.node.MarketCreateItemUnique(to, p.URI)
		if err != nil {
			s.writeModuleError(w, req, err)
			return
		}
		writeResult(w, req.ID, map[string]uint64{"itemId": id})
		return
	}
	amount, err := parseAmount("amount", p.Amount)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	if err := s.node.MarketCreateItemMulti(to, p.ItemID, amount, p.URI); err != nil {
		s.writeModuleError(w, req, err)
		return
	}
	writeResult(w, req.ID, map[string]uint64{"itemId": p.ItemID})
}

func (s *Server) handleMarketListItem(w http.ResponseWriter, req *RPCRequest) {
	var p marketListParams
	if err := decodeParams(req, &p); err != nil {
		invalidParams(w, req, err)
		return
	}
	kind, err := parseAssetKind(p.Kind)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	caller, err := parseAddress("caller", p.Caller)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	price, err := parseAmount("price", p.Price)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	if kind == market.AssetUnique {
		err = s.node.MarketListUnique(caller, p.ItemID, price)
	} else {
		amount, perr := parseAmount("amount", p.Amount)
		if perr != nil {
			invalidParams(w, req, perr)
			return
		}
		err = s.node.MarketListMulti(caller, p.ItemID, amount, price)
	}
	if err != nil {
		s.writeModuleError(w, req, err)
		return
	}
	writeResult(w, req.ID, true)
}

func (s *Server) handleMarketBuyItem(w http.ResponseWriter, req *RPCRequest) {
	var p marketItemParams
	if err := decodeParams(req, &p); err != nil {
		invalidParams(w, req, err)
		return
	}
	kind, err := parseAssetKind(p.Kind)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	caller, err := parseAddress("caller", p.Caller)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	if kind == market.AssetUnique {
		err = s.node.MarketBuyUnique(caller, p.ItemID)
	} else {
		err = s.node.MarketBuyMulti(caller, p.ItemID)
	}
	if err != nil {
		s.writeModuleError(w, req, err)
		return
	}
	writeResult(w, req.ID, true)
}

func (s *Server) handleMarketCancel(w http.ResponseWriter, req *RPCRequest) {
	var p marketItemParams
	if err := decodeParams(req, &p); err != nil {
		invalidParams(w, req, err)
		return
	}
	kind, err := parseAssetKind(p.Kind)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	caller, err := parseAddress("caller", p.Caller)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	if kind == market.AssetUnique {
		err = s.node.MarketCancelUnique(caller, p.ItemID)
	} else {
		err = s.node.MarketCancelMulti(caller, p.ItemID)
	}
	if err != nil {
		s.writeModuleError(w, req, err)
		return
	}
	writeResult(w, req.ID, true)
}

func (s *Server) handleMarketListAuction(w http.ResponseWriter, req *RPCRequest) {
	var p marketListParams
	if err := decodeParams(req, &p); err != nil {
		invalidParams(w, req, err)
		return
	}
	kind, err := parseAssetKind(p.Kind)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	caller, err := parseAddress("caller", p.Caller)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	startPrice, err := parseAmount("price", p.Price)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	var auctionID uint64
	if kind == market.AssetUnique {
		auctionID, err = s.node.MarketListAuctionUnique(caller, p.ItemID, startPrice)
	} else {
		amount, perr := parseAmount("amount", p.Amount)
		if perr != nil {
			invalidParams(w, req, perr)
			return
		}
		auctionID, err = s.node.MarketListAuctionMulti(caller, p.ItemID, amount, startPrice)
	}
	if err != nil {
		s.writeModuleError(w, req, err)
		return
	}
	writeResult(w, req.ID, map[string]uint64{"auctionId": auctionID})
}

func (s *Server) handleMarketMakeBid(w http.ResponseWriter, req *RPCRequest) {
	var p marketBidParams
	if err := decodeParams(req, &p); err != nil {
		invalidParams(w, req, err)
		return
	}
	kind, err := parseAssetKind(p.Kind)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	caller, err := parseAddress("caller", p.Caller)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	amount, err := parseAmount("amount", p.Amount)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	if kind == market.AssetUnique {
		err = s.node.MarketBidUnique(caller, p.AuctionID, amount)
	} else {
		err = s.node.MarketBidMulti(caller, p.AuctionID, amount)
	}
	if err != nil {
		s.writeModuleError(w, req, err)
		return
	}
	writeResult(w, req.ID, true)
}

func (s *Server) handleMarketFinishAuction(w http.ResponseWriter, req *RPCRequest) {
	var p marketAuctionParams
	if err := decodeParams(req, &p); err != nil {
		invalidParams(w, req, err)
		return
	}
	kind, err := parseAssetKind(p.Kind)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	if kind == market.AssetUnique {
		err = s.node.MarketFinishAuctionUnique(p.AuctionID)
	} else {
		err = s.node.MarketFinishAuctionMulti(p.AuctionID)
	}
	if err != nil {
		s.writeModuleError(w, req, err)
		return
	}
	writeResult(w, req.ID, true)
}

func (s *Server) handleMarketGetListing(w http.ResponseWriter, req *RPCRequest) {
	var p marketQueryParams
	if err := decodeParams(req, &p); err != nil {
		invalidParams(w, req, err)
		return
	}
	kind, err := parseAssetKind(p.Kind)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	listing, ok := s.node.MarketGetListing(kind, p.ItemID)
	if !ok {
		s.writeModuleError(w, req, market.ErrNotFound)
		return
	}
	writeResult(w, req.ID, listingJSON{
		Kind:   string(listing.AssetKind),
		Seller: listing.Seller.Hex(),
		ItemID: listing.ItemID,
		Amount: listing.Amount.String(),
		Price:  listing.Price.String(),
		Status: listing.Status.String(),
	})
}

func (s *Server) handleMarketGetAuction(w http.ResponseWriter, req *RPCRequest) {
	var p marketAuctionParams
	if err := decodeParams(req, &p); err != nil {
		invalidParams(w, req, err)
		return
	}
	kind, err := parseAssetKind(p.Kind)
	if err != nil {
		invalidParams(w, req, err)
		return
	}
	auction, ok := s.node.MarketGetAuction(kind, p.AuctionID)
	if !ok {
		s.writeModuleError(w, req, market.ErrNotFound)
		return
	}
	out := auctionJSON{
		ID:         auction.ID,
		Kind:       string(auction.AssetKind),
		ItemID:     auction.ItemID,
		Amount:     auction.Amount.String(),
		Seller:     auction.Seller.Hex(),
		HighestBid: auction.HighestBid.String(),
		BidCount:   auction.BidCount,
		EndTime:    auction.EndTime,
		Finished:   auction.Finished,
	}
	if auction.HasBidder() {
		out.HighestBidder = auction.HighestBidder.Hex()
	}
	writeResult(w, req.ID, out)
}

type nodeEventsParams struct {
	Limit int `json:"limit,omitempty"`
}

func (s *Server) handleNodeEvents(w http.ResponseWriter, req *RPCRequest) {
	var p nodeEventsParams
	if len(req.Params) > 0 {
		if err := decodeParams(req, &p); err != nil {
			invalidParams(w, req, err)
			return
		}
	}
	writeResult(w, req.ID, s.node.Events(p.Limit))
}
