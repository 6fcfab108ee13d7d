package payout

import "errors"

// Service errors
var (
	ErrNotEligible     = errors.New("wallet balance below payout threshold")
	ErrInvalidState    = errors.New("payout is not in a valid state for this transition")
	ErrPayoutNotFound  = errors.New("payout not found")
	ErrMissingDetails  = errors.New("bank details are required")
	ErrOperationFailed = errors.New("operation failed")
)
