package rpc

import (
	"errors"

	nativecommon "nftmarket/native/common"
	"nftmarket/native/market"
	"nftmarket/native/multitoken"
	"nftmarket/native/nft"
	"nftmarket/native/token"
)

// Per-module RPC error code blocks.
const (
	codeTokenAccessDenied  = -32011
	codeTokenZeroAddress   = -32012
	codeTokenInsufficient  = -32013
	codeTokenNoAllowance   = -32014
	codeTokenInvalidAmount = -32015

	codeNFTAccessDenied  = -32021
	codeNFTZeroAddress   = -32022
	codeNFTNotFound      = -32023
	codeNFTSelfApproval  = -32024
	codeNFTBadReceiver   = -32025

	codeMultiAccessDenied   = -32031
	codeMultiZeroAddress    = -32032
	codeMultiNotFound       = -32033
	codeMultiLengthMismatch = -32034
	codeMultiInsufficient   = -32035
	codeMultiImmutableMeta  = -32036
	codeMultiSelfApproval   = -32037
	codeMultiBadReceiver    = -32038
	codeMultiInvalidAmount  = -32039

	codeMarketAccessDenied    = -32041
	codeMarketNoAllowance     = -32042
	codeMarketNotFound        = -32043
	codeMarketAlreadyListed   = -32044
	codeMarketAuctionOver     = -32045
	codeMarketAuctionNotOver  = -32046
	codeMarketAuctionFinished = -32047
	codeMarketBidTooLow       = -32048
	codeMarketNoFunds         = -32049
	codeMarketInvalidAmount   = -32050

	codeModulePaused = -32060
)

var errorCodes = []struct {
	err  error
	code int
}{
	{token.ErrAccessDenied, codeTokenAccessDenied},
	{token.ErrZeroAddress, codeTokenZeroAddress},
	{token.ErrInsufficientBalance, codeTokenInsufficient},
	{token.ErrInsufficientAllowance, codeTokenNoAllowance},
	{token.ErrInvalidAmount, codeTokenInvalidAmount},

	{nft.ErrAccessDenied, codeNFTAccessDenied},
	{nft.ErrZeroAddress, codeNFTZeroAddress},
	{nft.ErrNotFound, codeNFTNotFound},
	{nft.ErrSelfApproval, codeNFTSelfApproval},
	{nft.ErrUnsupportedReceiver, codeNFTBadReceiver},

	{multitoken.ErrAccessDenied, codeMultiAccessDenied},
	{multitoken.ErrZeroAddress, codeMultiZeroAddress},
	{multitoken.ErrNotFound, codeMultiNotFound},
	{multitoken.ErrLengthMismatch, codeMultiLengthMismatch},
	{multitoken.ErrInsufficientBalance, codeMultiInsufficient},
	{multitoken.ErrImmutableMetadata, codeMultiImmutableMeta},
	{multitoken.ErrSelfApproval, codeMultiSelfApproval},
	{multitoken.ErrUnsupportedReceiver, codeMultiBadReceiver},
	{multitoken.ErrInvalidAmount, codeMultiInvalidAmount},

	{market.ErrAccessDenied, codeMarketAccessDenied},
	{market.ErrNoAllowance, codeMarketNoAllowance},
	{market.ErrNotFound, codeMarketNotFound},
	{market.ErrAlreadyListed, codeMarketAlreadyListed},
	{market.ErrAuctionOver, codeMarketAuctionOver},
	{market.ErrAuctionNotOver, codeMarketAuctionNotOver},
	{market.ErrAuctionFinished, codeMarketAuctionFinished},
	{market.ErrBidTooLow, codeMarketBidTooLow},
	{market.ErrInsufficientFunds, codeMarketNoFunds},
	{market.ErrInvalidAmount, codeMarketInvalidAmount},

	{nativecommon.ErrModulePaused, codeModulePaused},
}

// errorCode resolves a module error to its RPC code; unmapped errors report
// the generic server error code.
func errorCode(err error) int {
	for _, entry := range errorCodes {
		if errors.Is(err, entry.err) {
			return entry.code
		}
	}
	return codeServerError
}
