package models

import (
	"time"
)

// Point transaction directions
const (
	DirectionCredit = "credit"
	DirectionDebit  = "debit"
)

// Point transaction statuses. Completed and failed are terminal.
const (
	PointTxPending   = "pending"
	PointTxCompleted = "completed"
	PointTxFailed    = "failed"
)

// PointTransaction is one entry in the append-only points ledger.
// BalanceAfter is populated only once the transaction is completed and the
// balance delta has been applied.
type PointTransaction struct {
	ID           uint   `gorm:"primarykey"`
	UserID       uint   `gorm:"index;not null"`
	Amount       int64  `gorm:"not null"`
	Direction    string `gorm:"not null"`
	Status       string `gorm:"not null;default:'pending'"`
	Reason       string
	StatusReason string
	Reference    Reference `gorm:"embedded"`
	BalanceAfter *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (t *PointTransaction) IsTerminal() bool {
	return t.Status == PointTxCompleted || t.Status == PointTxFailed
}

// SignedAmount returns the balance delta this transaction applies when it
// completes: positive for credits, negative for debits.
func (t *PointTransaction) SignedAmount() int64 {
	if t.Direction == DirectionDebit {
		return -t.Amount
	}
	return t.Amount
}
