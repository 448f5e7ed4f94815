package rpc

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"nftmarket/native/market"
)

func parseAddress(field, raw string) (common.Address, error) {
	trimmed := strings.TrimSpace(raw)
	if !common.IsHexAddress(trimmed) {
		return common.Address{}, fmt.Errorf("%s: invalid address %q", field, raw)
	}
	return common.HexToAddress(trimmed), nil
}

func parseAmount(field, raw string) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(strings.TrimSpace(raw), 10)
	if !ok {
		return nil, fmt.Errorf("%s: invalid amount %q", field, raw)
	}
	return amount, nil
}

func parseAssetKind(raw string) (market.AssetKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(market.AssetUnique):
		return market.AssetUnique, nil
	case string(market.AssetMulti):
		return market.AssetMulti, nil
	default:
		return "", fmt.Errorf("kind: must be %q or %q", market.AssetUnique, market.AssetMulti)
	}
}
