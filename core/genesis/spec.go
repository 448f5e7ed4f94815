package genesis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Role names recognised in the genesis roles table.
const (
	RoleMinterNFT   = "MINTER_NFT"
	RoleMinterMulti = "MINTER_MULTI"
)

// GenesisSpec describes the initial state of a marketplace node: the payment
// token, the two item collections, token allocations and role grants.
type GenesisSpec struct {
	Token           TokenSpec           `json:"token"`
	NFTCollection   CollectionSpec      `json:"nftCollection"`
	MultiCollection CollectionSpec      `json:"multiCollection"`
	Alloc           map[string]string   `json:"alloc,omitempty"` // addr -> amount
	Roles           map[string][]string `json:"roles,omitempty"` // role -> []addr

	allocParsed map[common.Address]*big.Int
	rolesParsed map[string][]common.Address
}

// TokenSpec describes the fungible payment token.
type TokenSpec struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
	Admin    string `json:"admin"`
}

// CollectionSpec describes an item collection and its owner.
type CollectionSpec struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Owner  string `json:"owner"`
}

// LoadGenesisSpec reads, decodes and validates a genesis spec file.
func LoadGenesisSpec(path string) (*GenesisSpec, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("genesis spec path must be provided")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read genesis spec %q: %w", path, err)
	}
	spec, err := ParseGenesisSpec(raw)
	if err != nil {
		return nil, fmt.Errorf("genesis spec %q: %w", path, err)
	}
	return spec, nil
}

// ParseGenesisSpec decodes and validates a genesis spec document.
func ParseGenesisSpec(raw []byte) (*GenesisSpec, error) {
	var spec GenesisSpec
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := spec.validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *GenesisSpec) validate() error {
	if strings.TrimSpace(s.Token.Name) == "" || strings.TrimSpace(s.Token.Symbol) == "" {
		return fmt.Errorf("token name and symbol must be provided")
	}
	tokenAdmin, err := parseAddress(s.Token.Admin)
	if err != nil {
		return fmt.Errorf("token admin: %w", err)
	}
	if tokenAdmin == (common.Address{}) {
		return fmt.Errorf("token admin must not be the zero address")
	}
	for _, col := range []struct {
		field string
		spec  CollectionSpec
	}{
		{"nftCollection", s.NFTCollection},
		{"multiCollection", s.MultiCollection},
	} {
		if strings.TrimSpace(col.spec.Name) == "" || strings.TrimSpace(col.spec.Symbol) == "" {
			return fmt.Errorf("%s name and symbol must be provided", col.field)
		}
		owner, err := parseAddress(col.spec.Owner)
		if err != nil {
			return fmt.Errorf("%s owner: %w", col.field, err)
		}
		if owner == (common.Address{}) {
			return fmt.Errorf("%s owner must not be the zero address", col.field)
		}
	}

	s.allocParsed = make(map[common.Address]*big.Int, len(s.Alloc))
	for addrStr, amountStr := range s.Alloc {
		addr, err := parseAddress(addrStr)
		if err != nil {
			return fmt.Errorf("alloc[%q]: %w", addrStr, err)
		}
		amount, ok := new(big.Int).SetString(strings.TrimSpace(amountStr), 10)
		if !ok || amount.Sign() < 0 {
			return fmt.Errorf("alloc[%q]: invalid amount %q", addrStr, amountStr)
		}
		if _, dup := s.allocParsed[addr]; dup {
			return fmt.Errorf("alloc[%q]: duplicate address", addrStr)
		}
		s.allocParsed[addr] = amount
	}

	s.rolesParsed = make(map[string][]common.Address, len(s.Roles))
	for role, members := range s.Roles {
		switch role {
		case RoleMinterNFT, RoleMinterMulti:
		default:
			return fmt.Errorf("roles[%q]: unknown role", role)
		}
		for _, addrStr := range members {
			addr, err := parseAddress(addrStr)
			if err != nil {
				return fmt.Errorf("roles[%q]: %w", role, err)
			}
			s.rolesParsed[role] = append(s.rolesParsed[role], addr)
		}
	}
	return nil
}

// TokenAdmin returns the parsed payment token admin address.
func (s *GenesisSpec) TokenAdmin() common.Address {
	addr, _ := parseAddress(s.Token.Admin)
	return addr
}

// CollectionOwner returns the parsed owner of the given collection spec.
func (s *GenesisSpec) CollectionOwner(col CollectionSpec) common.Address {
	addr, _ := parseAddress(col.Owner)
	return addr
}

// Allocations returns the validated address to amount table.
func (s *GenesisSpec) Allocations() map[common.Address]*big.Int {
	out := make(map[common.Address]*big.Int, len(s.allocParsed))
	for addr, amount := range s.allocParsed {
		out[addr] = new(big.Int).Set(amount)
	}
	return out
}

// RoleMembers returns the validated member list for a role.
func (s *GenesisSpec) RoleMembers(role string) []common.Address {
	return append([]common.Address(nil), s.rolesParsed[role]...)
}

func parseAddress(raw string) (common.Address, error) {
	trimmed := strings.TrimSpace(raw)
	if !common.IsHexAddress(trimmed) {
		return common.Address{}, fmt.Errorf("invalid address %q", raw)
	}
	return common.HexToAddress(trimmed), nil
}
