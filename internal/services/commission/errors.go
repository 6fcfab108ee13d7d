package commission

import "errors"

// Service errors
var (
	ErrPaymentNotCompleted = errors.New("payment is not completed")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrOperationFailed     = errors.New("operation failed")
)
