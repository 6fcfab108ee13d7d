package catalog

import "errors"

// Service errors
var (
	ErrPackageNotFound   = errors.New("point package not found")
	ErrPackageInactive   = errors.New("point package is not available")
	ErrPaymentDeclined   = errors.New("payment was declined")
	ErrUnsupportedMethod = errors.New("unsupported payment method")
	ErrOperationFailed   = errors.New("operation failed")
)
