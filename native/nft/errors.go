package nft

import "errors"

var (
	// ErrAccessDenied is returned when the caller lacks the required role,
	// ownership or approval.
	ErrAccessDenied = errors.New("nft: caller is not owner nor approved")
	// ErrZeroAddress is returned when the zero address is used as a recipient
	// or query subject.
	ErrZeroAddress = errors.New("nft: zero address")
	// ErrNotFound is returned for queries and transfers of unminted items.
	ErrNotFound = errors.New("nft: nonexistent item")
	// ErrSelfApproval is returned when an approval targets the current owner
	// or an operator approval targets the caller.
	ErrSelfApproval = errors.New("nft: approval to current owner")
	// ErrUnsupportedReceiver is returned when a safe transfer targets a
	// contract-like account that rejects or lacks the receiver capability.
	ErrUnsupportedReceiver = errors.New("nft: transfer to non-receiver account")
)
