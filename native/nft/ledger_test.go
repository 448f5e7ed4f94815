package nft

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"nftmarket/core/events"
)

func testAddress(fill byte) common.Address {
	var addr common.Address
	copy(addr[:], bytes.Repeat([]byte{fill}, common.AddressLength))
	return addr
}

func newTestLedger() (*Ledger, common.Address) {
	owner := testAddress(0x01)
	return NewLedger("HappyRoger721", "HR721", owner), owner
}

func mustMint(t *testing.T, l *Ledger, caller, to common.Address, uri string) uint64 {
	t.Helper()
	id, err := l.Mint(caller, to, uri)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	return id
}

func TestMintAssignsSequentialIDs(t *testing.T) {
	l, deployer := newTestLedger()
	holder := testAddress(0x02)
	hacker := testAddress(0x0F)

	for i := 1; i <= 5; i++ {
		id := mustMint(t, l, deployer, holder, "ipfs://item")
		if id != uint64(i) {
			t.Fatalf("id = %d, want %d", id, i)
		}
		owner, err := l.OwnerOf(id)
		if err != nil {
			t.Fatalf("ownerOf: %v", err)
		}
		if owner != holder {
			t.Fatalf("owner = %s, want %s", owner, holder)
		}
	}
	if bal, err := l.BalanceOf(holder); err != nil || bal != 5 {
		t.Fatalf("balance = %d (%v), want 5", bal, err)
	}

	if _, err := l.Mint(deployer, common.Address{}, "x"); !errors.Is(err, ErrZeroAddress) {
		t.Fatalf("expected zero address error, got %v", err)
	}
	if _, err := l.Mint(hacker, hacker, "x"); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected access denied, got %v", err)
	}
	if _, err := l.BalanceOf(common.Address{}); !errors.Is(err, ErrZeroAddress) {
		t.Fatalf("expected zero address error, got %v", err)
	}
	if _, err := l.OwnerOf(6); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMinterRole(t *testing.T) {
	l, deployer := newTestLedger()
	marketplace := testAddress(0x0A)
	hacker := testAddress(0x0F)

	if err := l.GrantMinter(hacker, hacker); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected access denied, got %v", err)
	}
	if err := l.GrantMinter(deployer, marketplace); err != nil {
		t.Fatalf("grant: %v", err)
	}
	if !l.IsMinter(marketplace) {
		t.Fatal("marketplace should be a minter after grant")
	}
	mustMint(t, l, marketplace, marketplace, "ipfs://1")

	if err := l.RevokeMinter(deployer, marketplace); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, err := l.Mint(marketplace, marketplace, "ipfs://2"); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected access denied after revoke, got %v", err)
	}
}

func TestTokenURI(t *testing.T) {
	l, deployer := newTestLedger()
	id := mustMint(t, l, deployer, deployer, "ipfs://meta/1")

	uri, err := l.TokenURI(id)
	if err != nil || uri != "ipfs://meta/1" {
		t.Fatalf("tokenURI = %q (%v)", uri, err)
	}
	if _, err := l.TokenURI(99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestApprove(t *testing.T) {
	l, deployer := newTestLedger()
	spender := testAddress(0x02)
	hacker := testAddress(0x0F)
	id := mustMint(t, l, deployer, deployer, "u1")
	id2 := mustMint(t, l, deployer, deployer, "u2")

	if got, err := l.GetApproved(id); err != nil || got != (common.Address{}) {
		t.Fatalf("getApproved = %s (%v), want zero", got, err)
	}
	if err := l.Approve(deployer, spender, id); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if got, _ := l.GetApproved(id); got != spender {
		t.Fatalf("getApproved = %s, want %s", got, spender)
	}
	if err := l.Approve(deployer, deployer, id2); !errors.Is(err, ErrSelfApproval) {
		t.Fatalf("expected self approval error, got %v", err)
	}
	if err := l.Approve(hacker, hacker, id2); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected access denied, got %v", err)
	}
	if _, err := l.GetApproved(42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSetApprovalForAll(t *testing.T) {
	l, deployer := newTestLedger()
	operator := testAddress(0x03)

	if l.IsApprovedForAll(deployer, operator) {
		t.Fatal("operator approved before grant")
	}
	if err := l.SetApprovalForAll(deployer, operator, true); err != nil {
		t.Fatalf("setApprovalForAll: %v", err)
	}
	if !l.IsApprovedForAll(deployer, operator) {
		t.Fatal("operator not approved after grant")
	}
	if err := l.SetApprovalForAll(deployer, operator, false); err != nil {
		t.Fatalf("setApprovalForAll: %v", err)
	}
	if l.IsApprovedForAll(deployer, operator) {
		t.Fatal("operator approved after revoke")
	}
	if err := l.SetApprovalForAll(deployer, deployer, true); !errors.Is(err, ErrSelfApproval) {
		t.Fatalf("expected self approval error, got %v", err)
	}
}

func TestTransferFrom(t *testing.T) {
	l, deployer := newTestLedger()
	spender := testAddress(0x02)
	recipient := testAddress(0x04)
	hacker := testAddress(0x0F)
	id := mustMint(t, l, deployer, deployer, "u1")
	id2 := mustMint(t, l, deployer, deployer, "u2")

	if err := l.Approve(deployer, spender, id); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := l.TransferFrom(deployer, deployer, recipient, id); err != nil {
		t.Fatalf("transferFrom: %v", err)
	}
	if owner, _ := l.OwnerOf(id); owner != recipient {
		t.Fatalf("owner = %s, want %s", owner, recipient)
	}
	// The per-item approval is cleared on every ownership change.
	if got, _ := l.GetApproved(id); got != (common.Address{}) {
		t.Fatalf("approval not cleared, got %s", got)
	}
	if bal, _ := l.BalanceOf(deployer); bal != 1 {
		t.Fatalf("sender balance = %d, want 1", bal)
	}
	if bal, _ := l.BalanceOf(recipient); bal != 1 {
		t.Fatalf("recipient balance = %d, want 1", bal)
	}

	if err := l.TransferFrom(deployer, deployer, recipient, 6); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := l.TransferFrom(deployer, deployer, common.Address{}, id2); !errors.Is(err, ErrZeroAddress) {
		t.Fatalf("expected zero address error, got %v", err)
	}
	if err := l.TransferFrom(hacker, deployer, hacker, id2); !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected access denied, got %v", err)
	}
}

func TestTransferByApprovedSpender(t *testing.T) {
	l, deployer := newTestLedger()
	spender := testAddress(0x02)
	id := mustMint(t, l, deployer, deployer, "u1")

	if err := l.Approve(deployer, spender, id); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := l.TransferFrom(spender, deployer, spender, id); err != nil {
		t.Fatalf("transferFrom by spender: %v", err)
	}
	if owner, _ := l.OwnerOf(id); owner != spender {
		t.Fatalf("owner = %s, want %s", owner, spender)
	}
}

func TestSafeTransferFrom(t *testing.T) {
	l, deployer := newTestLedger()
	recipient := testAddress(0x04)

	accepting := testAddress(0x10)
	rejecting := testAddress(0x11)
	bare := testAddress(0x12)
	l.RegisterReceiver(accepting, ReceiverFunc(func(common.Address, common.Address, uint64) error {
		return nil
	}))
	l.RegisterReceiver(rejecting, ReceiverFunc(func(common.Address, common.Address, uint64) error {
		return errors.New("nope")
	}))
	l.RegisterContract(bare)

	id1 := mustMint(t, l, deployer, deployer, "u1")
	id2 := mustMint(t, l, deployer, deployer, "u2")
	id3 := mustMint(t, l, deployer, deployer, "u3")

	// Plain accounts always accept.
	if err := l.SafeTransferFrom(deployer, deployer, recipient, id1); err != nil {
		t.Fatalf("safeTransferFrom: %v", err)
	}
	// Contract-like accounts with an accepting hook work too.
	if err := l.SafeTransferFrom(deployer, deployer, accepting, id2); err != nil {
		t.Fatalf("safeTransferFrom to receiver: %v", err)
	}

	// A rejecting hook rolls the whole transfer back.
	spender := testAddress(0x02)
	if err := l.Approve(deployer, spender, id3); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if err := l.SafeTransferFrom(deployer, deployer, rejecting, id3); !errors.Is(err, ErrUnsupportedReceiver) {
		t.Fatalf("expected unsupported receiver, got %v", err)
	}
	if owner, _ := l.OwnerOf(id3); owner != deployer {
		t.Fatalf("owner after rollback = %s, want %s", owner, deployer)
	}
	if got, _ := l.GetApproved(id3); got != spender {
		t.Fatalf("approval after rollback = %s, want %s", got, spender)
	}
	if bal, _ := l.BalanceOf(rejecting); bal != 0 {
		t.Fatalf("rejecting balance = %d, want 0", bal)
	}

	// Contract-like without the capability is a rejection as well.
	if err := l.SafeTransferFrom(deployer, deployer, bare, id3); !errors.Is(err, ErrUnsupportedReceiver) {
		t.Fatalf("expected unsupported receiver, got %v", err)
	}
}

type recordingEmitter struct {
	types []string
}

func (r *recordingEmitter) Emit(evt events.Event) {
	r.types = append(r.types, evt.EventType())
}

func TestSafeTransferFromEmitsOnlyOnAcceptance(t *testing.T) {
	l, deployer := newTestLedger()
	rejecting := testAddress(0x11)
	accepting := testAddress(0x10)
	l.RegisterReceiver(rejecting, ReceiverFunc(func(common.Address, common.Address, uint64) error {
		return errors.New("nope")
	}))
	l.RegisterReceiver(accepting, ReceiverFunc(func(common.Address, common.Address, uint64) error {
		return nil
	}))
	id := mustMint(t, l, deployer, deployer, "u1")

	rec := &recordingEmitter{}
	l.SetEmitter(rec)

	// A rolled-back transfer must leave no trace in the event stream.
	if err := l.SafeTransferFrom(deployer, deployer, rejecting, id); !errors.Is(err, ErrUnsupportedReceiver) {
		t.Fatalf("expected unsupported receiver, got %v", err)
	}
	if len(rec.types) != 0 {
		t.Fatalf("events after rejected transfer: %v", rec.types)
	}

	if err := l.SafeTransferFrom(deployer, deployer, accepting, id); err != nil {
		t.Fatalf("safeTransferFrom: %v", err)
	}
	if len(rec.types) != 1 || rec.types[0] != events.TypeAssetTransfer {
		t.Fatalf("events after accepted transfer: %v", rec.types)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	l, deployer := newTestLedger()
	marketplace := testAddress(0x0A)
	operator := testAddress(0x03)
	if err := l.GrantMinter(deployer, marketplace); err != nil {
		t.Fatalf("grant: %v", err)
	}
	id := mustMint(t, l, marketplace, deployer, "ipfs://1")
	if err := l.SetApprovalForAll(deployer, operator, true); err != nil {
		t.Fatalf("setApprovalForAll: %v", err)
	}

	restored := NewLedger("", "", common.Address{})
	restored.Restore(l.Snapshot())

	if owner, err := restored.OwnerOf(id); err != nil || owner != deployer {
		t.Fatalf("restored owner = %s (%v)", owner, err)
	}
	if uri, _ := restored.TokenURI(id); uri != "ipfs://1" {
		t.Fatalf("restored uri = %q", uri)
	}
	if !restored.IsMinter(marketplace) {
		t.Fatal("restored minter role lost")
	}
	if !restored.IsApprovedForAll(deployer, operator) {
		t.Fatal("restored operator approval lost")
	}
	next, err := restored.Mint(deployer, deployer, "ipfs://2")
	if err != nil {
		t.Fatalf("mint on restored: %v", err)
	}
	if next != id+1 {
		t.Fatalf("next id = %d, want %d", next, id+1)
	}
}
