package models

import (
	"time"
)

// PointBalance is the denormalized current balance of a user's points
// ledger. It is only ever written inside the same transaction as the ledger
// entry that changes it.
type PointBalance struct {
	ID        uint  `gorm:"primarykey"`
	UserID    uint  `gorm:"uniqueIndex;not null"`
	Balance   int64 `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
