package payout

import "github.com/shopspring/decimal"

// DefaultMinThreshold is the minimum wallet balance required to request a
// payout.
var DefaultMinThreshold = decimal.NewFromInt(1000)
