package multitoken

import "errors"

var (
	// ErrAccessDenied is returned when the caller lacks the required role,
	// ownership or operator approval.
	ErrAccessDenied = errors.New("multitoken: caller is not owner nor approved")
	// ErrZeroAddress is returned when the zero address is used as a recipient
	// or query subject.
	ErrZeroAddress = errors.New("multitoken: zero address")
	// ErrNotFound is returned for metadata queries of unminted ids.
	ErrNotFound = errors.New("multitoken: nonexistent item")
	// ErrLengthMismatch is returned when parallel array arguments differ in
	// length.
	ErrLengthMismatch = errors.New("multitoken: array length mismatch")
	// ErrInsufficientBalance is returned when a transfer exceeds the holder's
	// balance for an id.
	ErrInsufficientBalance = errors.New("multitoken: insufficient balance for transfer")
	// ErrImmutableMetadata is returned when a mint supplies a different uri
	// for an id whose metadata is already fixed.
	ErrImmutableMetadata = errors.New("multitoken: metadata of an existing item is immutable")
	// ErrSelfApproval is returned when an operator approval targets the
	// caller.
	ErrSelfApproval = errors.New("multitoken: approval for self")
	// ErrUnsupportedReceiver is returned when a safe transfer targets a
	// contract-like account that rejects or lacks the receiver capability.
	ErrUnsupportedReceiver = errors.New("multitoken: transfer to non-receiver account")
	// ErrInvalidAmount is returned when an amount is nil or negative.
	ErrInvalidAmount = errors.New("multitoken: amount must not be negative")
)
