package token

import "errors"

var (
	// ErrAccessDenied is returned when a caller other than the admin attempts
	// a privileged operation.
	ErrAccessDenied = errors.New("token: caller is not the admin")
	// ErrZeroAddress is returned when the zero address is used as a recipient
	// or query subject.
	ErrZeroAddress = errors.New("token: zero address")
	// ErrInsufficientBalance is returned when a transfer or burn exceeds the
	// available balance.
	ErrInsufficientBalance = errors.New("token: insufficient balance")
	// ErrInsufficientAllowance is returned when a transferFrom exceeds the
	// spender's allowance.
	ErrInsufficientAllowance = errors.New("token: insufficient allowance")
	// ErrInvalidAmount is returned when an amount is nil or negative.
	ErrInvalidAmount = errors.New("token: amount must not be negative")
)
