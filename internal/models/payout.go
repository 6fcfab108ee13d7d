package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payout statuses. Paid and rejected are terminal.
const (
	PayoutPending    = "pending"
	PayoutProcessing = "processing"
	PayoutPaid       = "paid"
	PayoutRejected   = "rejected"
)

// Payout converts a wallet balance snapshot into an external disbursement.
// Amount is fixed at creation time and never recomputed; a rejection credits
// exactly this amount back to the wallet.
type Payout struct {
	ID                   uint            `gorm:"primarykey"`
	UserID               uint            `gorm:"index;not null"`
	Amount               decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	BankDetails          JSON            `gorm:"type:jsonb"`
	Status               string          `gorm:"not null;default:'pending'"`
	RequestedAt          time.Time
	ApprovedAt           *time.Time
	PaidAt               *time.Time
	RejectedAt           *time.Time
	RejectionReason      string
	TransactionReference string
	PaymentMethod        string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (p *Payout) IsTerminal() bool {
	return p.Status == PayoutPaid || p.Status == PayoutRejected
}
