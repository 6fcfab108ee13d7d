package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Wallet holds the monetary balance a seller accrues from completed
// marketplace payments. Balance is a denormalized cache of the applied
// wallet transactions and must never go negative.
type Wallet struct {
	ID        uint            `gorm:"primarykey"`
	UserID    uint            `gorm:"uniqueIndex;not null"`
	Balance   decimal.Decimal `gorm:"type:numeric(14,2);default:0"`
	Currency  string          `gorm:"default:'USD'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	// New wallets always start empty
	w.Balance = decimal.Zero
	return nil
}
