package genesis

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

const validSpec = `{
  "token": {"name": "KirillZaynutdinovToken", "symbol": "KZT", "decimals": 3, "admin": "0x0101010101010101010101010101010101010101"},
  "nftCollection": {"name": "HappyRoger721", "symbol": "HR721", "owner": "0x0101010101010101010101010101010101010101"},
  "multiCollection": {"name": "HappyRoger1155", "symbol": "HR1155", "owner": "0x0101010101010101010101010101010101010101"},
  "alloc": {"0x0202020202020202020202020202020202020202": "100000"},
  "roles": {"MINTER_NFT": ["0x0303030303030303030303030303030303030303"]}
}`

func TestParseGenesisSpec(t *testing.T) {
	spec, err := ParseGenesisSpec([]byte(validSpec))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if spec.Token.Symbol != "KZT" || spec.Token.Decimals != 3 {
		t.Fatalf("token = %+v", spec.Token)
	}
	admin := common.HexToAddress("0x0101010101010101010101010101010101010101")
	if spec.TokenAdmin() != admin {
		t.Fatalf("token admin = %s", spec.TokenAdmin())
	}
	alloc := spec.Allocations()
	holder := common.HexToAddress("0x0202020202020202020202020202020202020202")
	if got := alloc[holder]; got == nil || got.Cmp(big.NewInt(100000)) != 0 {
		t.Fatalf("alloc = %v", got)
	}
	minters := spec.RoleMembers(RoleMinterNFT)
	if len(minters) != 1 || minters[0] != common.HexToAddress("0x0303030303030303030303030303030303030303") {
		t.Fatalf("minters = %v", minters)
	}
	if members := spec.RoleMembers(RoleMinterMulti); len(members) != 0 {
		t.Fatalf("unexpected multi minters: %v", members)
	}
}

func TestParseGenesisSpecRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"unknown field", `{"token": {"name": "T", "symbol": "T", "admin": "0x0101010101010101010101010101010101010101"}, "bogus": 1}`},
		{"zero admin", strings.Replace(validSpec, `"admin": "0x0101010101010101010101010101010101010101"`, `"admin": "0x0000000000000000000000000000000000000000"`, 1)},
		{"bad amount", strings.Replace(validSpec, `"100000"`, `"-5"`, 1)},
		{"unknown role", strings.Replace(validSpec, "MINTER_NFT", "SUPERUSER", 1)},
		{"bad address", strings.Replace(validSpec, "0x0303030303030303030303030303030303030303", "not-an-address", 1)},
	}
	for _, tc := range cases {
		if _, err := ParseGenesisSpec([]byte(tc.doc)); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}
