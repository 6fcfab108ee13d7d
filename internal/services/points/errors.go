package points

import "errors"

// Service errors
var (
	ErrInsufficientBalance   = errors.New("insufficient points balance")
	ErrTransactionNotPending = errors.New("transaction is not pending")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrInvalidReference      = errors.New("invalid reference")
	ErrInvalidPromotionType  = errors.New("invalid promotion type")
	ErrInvalidDuration       = errors.New("invalid promotion duration")
	ErrSameAccount           = errors.New("cannot transfer to the same account")
	ErrTransactionCompleted  = errors.New("completed transactions cannot be deleted")
	ErrOperationFailed       = errors.New("operation failed")
)
