package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment statuses
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// Payment is the marketplace payment record the commission split is applied
// to. The core only ever writes CommissionAmount, NetAmount and
// CommissionAppliedAt, exactly once per payment.
type Payment struct {
	ID                  uint            `gorm:"primarykey"`
	BuyerID             uint            `gorm:"index;not null"`
	SellerID            uint            `gorm:"index;not null"`
	ListingID           *uint           `gorm:"index"`
	GrossAmount         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CommissionAmount    decimal.Decimal `gorm:"type:numeric(14,2);default:0"`
	NetAmount           decimal.Decimal `gorm:"type:numeric(14,2);default:0"`
	Status              string          `gorm:"not null;default:'pending'"`
	CommissionAppliedAt *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (p *Payment) CommissionApplied() bool {
	return p.CommissionAppliedAt != nil
}
