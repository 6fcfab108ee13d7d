package wallet

import "errors"

// Service errors
var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrOperationFailed     = errors.New("operation failed")
)
