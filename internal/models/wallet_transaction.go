package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Wallet transaction types
const (
	WalletTxCommissionCredit = "commission_credit"
	WalletTxPayoutReserve    = "payout_reserve"
	WalletTxPayoutRefund     = "payout_refund"
)

// WalletTransaction is the audit trail of every wallet balance change.
// PaymentID and PayoutID link the row back to whichever flow produced it.
type WalletTransaction struct {
	ID          uint            `gorm:"primarykey"`
	ReferenceID string          `gorm:"uniqueIndex;not null"`
	UserID      uint            `gorm:"index;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Type        string          `gorm:"not null"`
	Description string
	PaymentID   *uint `gorm:"index"`
	PayoutID    *uint `gorm:"index"`
	CreatedAt   time.Time
}

func (t *WalletTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ReferenceID == "" {
		t.ReferenceID = uuid.NewString()
	}
	return nil
}
