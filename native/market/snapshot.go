package market

// Snapshot is a serializable copy of the listing and auction tables.
type Snapshot struct {
	ListingsUnique    map[uint64]*Listing `json:"listingsUnique"`
	ListingsMulti     map[uint64]*Listing `json:"listingsMulti"`
	AuctionsUnique    map[uint64]*Auction `json:"auctionsUnique"`
	AuctionsMulti     map[uint64]*Auction `json:"auctionsMulti"`
	NextAuctionUnique uint64              `json:"nextAuctionUnique"`
	NextAuctionMulti  uint64              `json:"nextAuctionMulti"`
}

// Snapshot returns a deep copy of the engine's tables.
func (e *Engine) Snapshot() *Snapshot {
	snap := &Snapshot{
		ListingsUnique:    make(map[uint64]*Listing, len(e.listingsUnique)),
		ListingsMulti:     make(map[uint64]*Listing, len(e.listingsMulti)),
		AuctionsUnique:    make(map[uint64]*Auction, len(e.auctionsUnique)),
		AuctionsMulti:     make(map[uint64]*Auction, len(e.auctionsMulti)),
		NextAuctionUnique: e.nextAuctionUnique,
		NextAuctionMulti:  e.nextAuctionMulti,
	}
	for id, l := range e.listingsUnique {
		snap.ListingsUnique[id] = l.Clone()
	}
	for id, l := range e.listingsMulti {
		snap.ListingsMulti[id] = l.Clone()
	}
	for id, a := range e.auctionsUnique {
		snap.AuctionsUnique[id] = a.Clone()
	}
	for id, a := range e.auctionsMulti {
		snap.AuctionsMulti[id] = a.Clone()
	}
	return snap
}

// Restore replaces the engine's tables with the snapshot contents.
func (e *Engine) Restore(snap *Snapshot) {
	if snap == nil {
		return
	}
	e.listingsUnique = make(map[uint64]*Listing, len(snap.ListingsUnique))
	for id, l := range snap.ListingsUnique {
		e.listingsUnique[id] = l.Clone()
	}
	e.listingsMulti = make(map[uint64]*Listing, len(snap.ListingsMulti))
	for id, l := range snap.ListingsMulti {
		e.listingsMulti[id] = l.Clone()
	}
	e.auctionsUnique = make(map[uint64]*Auction, len(snap.AuctionsUnique))
	for id, a := range snap.AuctionsUnique {
		e.auctionsUnique[id] = a.Clone()
	}
	e.auctionsMulti = make(map[uint64]*Auction, len(snap.AuctionsMulti))
	for id, a := range snap.AuctionsMulti {
		e.auctionsMulti[id] = a.Clone()
	}
	e.nextAuctionUnique = snap.NextAuctionUnique
	if e.nextAuctionUnique == 0 {
		e.nextAuctionUnique = 1
	}
	e.nextAuctionMulti = snap.NextAuctionMulti
	if e.nextAuctionMulti == 0 {
		e.nextAuctionMulti = 1
	}
}
