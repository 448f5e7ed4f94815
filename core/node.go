package core

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"nftmarket/core/events"
	"nftmarket/core/genesis"
	"nftmarket/core/types"
	"nftmarket/native/market"
	"nftmarket/native/multitoken"
	"nftmarket/native/nft"
	"nftmarket/native/token"
	"nftmarket/storage"
)

var stateKey = []byte("nftmarket/state/snapshot")

// maxEventLog bounds the in-memory event history kept for queries.
const maxEventLog = 10000

// Node owns the ledgers and the marketplace engine and serialises all access
// to them. Every mutating call persists a state snapshot so a restart resumes
// where the node left off.
type Node struct {
	mu sync.Mutex

	db     storage.Database
	logger *slog.Logger

	token  *token.Ledger
	nft    *nft.Ledger
	multi  *multitoken.Ledger
	market *market.Engine

	events        []types.Event
	snapshotEvery int
	dirtyOps      int
}

type nodeState struct {
	Token  *token.Snapshot      `json:"token"`
	NFT    *nft.Snapshot        `json:"nft"`
	Multi  *multitoken.Snapshot `json:"multi"`
	Market *market.Snapshot     `json:"market"`
	Events []types.Event        `json:"events,omitempty"`
}

// nodeEmitter funnels engine events into the node's event log. The node
// mutex is already held when engines emit.
type nodeEmitter struct {
	n *Node
}

func (e nodeEmitter) Emit(evt events.Event) {
	if e.n == nil || evt == nil {
		return
	}
	if provider, ok := evt.(interface{ Event() *types.Event }); ok {
		if payload := provider.Event(); payload != nil {
			e.n.appendEvent(*payload)
		}
		return
	}
	e.n.appendEvent(types.Event{Type: evt.EventType(), Attributes: map[string]string{}})
}

// Options tunes node behaviour beyond the genesis document.
type Options struct {
	Logger        *slog.Logger
	SnapshotEvery int
	PauseMarket   bool
}

// NewNode opens a node over the given database. When the database already
// holds a state snapshot the genesis spec is ignored and the snapshot wins.
func NewNode(db storage.Database, spec *genesis.GenesisSpec, opts Options) (*Node, error) {
	if db == nil {
		return nil, fmt.Errorf("database must not be nil")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	n := &Node{
		db:            db,
		logger:        logger,
		snapshotEvery: opts.SnapshotEvery,
	}
	if n.snapshotEvery <= 0 {
		n.snapshotEvery = 1
	}

	restored, err := n.loadState()
	if err != nil {
		return nil, err
	}
	if !restored {
		if spec == nil {
			return nil, fmt.Errorf("no stored state and no genesis spec provided")
		}
		if err := n.applyGenesis(spec); err != nil {
			return nil, err
		}
		logger.Info("initialised state from genesis",
			"token", spec.Token.Symbol,
			"nftCollection", spec.NFTCollection.Symbol,
			"multiCollection", spec.MultiCollection.Symbol)
	} else {
		logger.Info("restored state snapshot")
	}

	emitter := nodeEmitter{n: n}
	n.token.SetEmitter(emitter)
	n.nft.SetEmitter(emitter)
	n.multi.SetEmitter(emitter)
	n.market.SetEmitter(emitter)
	if opts.PauseMarket {
		n.market.SetPauses(staticPauses{marketPaused: true})
	}
	return n, nil
}

type staticPauses struct {
	marketPaused bool
}

func (p staticPauses) IsPaused(module string) bool {
	return module == "market" && p.marketPaused
}

func (n *Node) applyGenesis(spec *genesis.GenesisSpec) error {
	admin := spec.TokenAdmin()
	n.token = token.NewLedger(spec.Token.Name, spec.Token.Symbol, spec.Token.Decimals, admin)
	n.nft = nft.NewLedger(spec.NFTCollection.Name, spec.NFTCollection.Symbol, spec.CollectionOwner(spec.NFTCollection))
	n.multi = multitoken.NewLedger(spec.MultiCollection.Name, spec.MultiCollection.Symbol, spec.CollectionOwner(spec.MultiCollection))
	n.market = market.NewEngine(n.token, n.nft, n.multi)

	for addr, amount := range spec.Allocations() {
		if err := n.token.Mint(admin, addr, amount); err != nil {
			return fmt.Errorf("genesis alloc %s: %w", addr, err)
		}
	}
	nftOwner := spec.CollectionOwner(spec.NFTCollection)
	for _, addr := range spec.RoleMembers(genesis.RoleMinterNFT) {
		if err := n.nft.GrantMinter(nftOwner, addr); err != nil {
			return fmt.Errorf("genesis role %s: %w", genesis.RoleMinterNFT, err)
		}
	}
	multiOwner := spec.CollectionOwner(spec.MultiCollection)
	for _, addr := range spec.RoleMembers(genesis.RoleMinterMulti) {
		if err := n.multi.GrantMinter(multiOwner, addr); err != nil {
			return fmt.Errorf("genesis role %s: %w", genesis.RoleMinterMulti, err)
		}
	}
	// The marketplace escrow account mints listed items on both collections.
	if err := n.nft.GrantMinter(nftOwner, market.EngineAddress); err != nil {
		return fmt.Errorf("grant marketplace minter: %w", err)
	}
	if err := n.multi.GrantMinter(multiOwner, market.EngineAddress); err != nil {
		return fmt.Errorf("grant marketplace minter: %w", err)
	}
	return n.persistState()
}

func (n *Node) loadState() (bool, error) {
	ok, err := n.db.Has(stateKey)
	if err != nil || !ok {
		return false, err
	}
	raw, err := n.db.Get(stateKey)
	if err != nil {
		return false, fmt.Errorf("load state: %w", err)
	}
	var state nodeState
	if err := json.Unmarshal(raw, &state); err != nil {
		return false, fmt.Errorf("decode state: %w", err)
	}
	n.token = token.NewLedger("", "", 0, common.Address{})
	n.token.Restore(state.Token)
	n.nft = nft.NewLedger("", "", common.Address{})
	n.nft.Restore(state.NFT)
	n.multi = multitoken.NewLedger("", "", common.Address{})
	n.multi.Restore(state.Multi)
	n.market = market.NewEngine(n.token, n.nft, n.multi)
	n.market.Restore(state.Market)
	n.events = state.Events
	return true, nil
}

func (n *Node) persistState() error {
	state := nodeState{
		Token:  n.token.Snapshot(),
		NFT:    n.nft.Snapshot(),
		Multi:  n.multi.Snapshot(),
		Market: n.market.Snapshot(),
		Events: n.events,
	}
	raw, err := json.Marshal(&state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	return n.db.Put(stateKey, raw)
}

// withState serialises a mutating operation and persists the snapshot on
// success.
func (n *Node) withState(fn func() error) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := fn(); err != nil {
		return err
	}
	n.dirtyOps++
	if n.dirtyOps >= n.snapshotEvery {
		if err := n.persistState(); err != nil {
			n.logger.Error("persist state snapshot", "err", err)
			return err
		}
		n.dirtyOps = 0
	}
	return nil
}

func (n *Node) appendEvent(evt types.Event) {
	if evt.Attributes == nil {
		evt.Attributes = map[string]string{}
	}
	n.events = append(n.events, evt)
	if len(n.events) > maxEventLog {
		n.events = n.events[len(n.events)-maxEventLog:]
	}
}

// Events returns up to limit most recent events, newest last. A limit of zero
// returns the whole log.
func (n *Node) Events(limit int) []types.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	evts := n.events
	if limit > 0 && len(evts) > limit {
		evts = evts[len(evts)-limit:]
	}
	out := make([]types.Event, len(evts))
	copy(out, evts)
	return out
}
