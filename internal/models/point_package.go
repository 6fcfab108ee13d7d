package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PointPackage is one row of the read-only point package catalog.
type PointPackage struct {
	ID           uint            `gorm:"primarykey"`
	Name         string          `gorm:"not null"`
	Points       int64           `gorm:"not null"`
	BonusPoints  int64           `gorm:"default:0"`
	Price        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Active       bool            `gorm:"default:true"`
	Featured     bool            `gorm:"default:false"`
	DisplayOrder int             `gorm:"default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TotalPoints is derived; it is never stored independently of its inputs.
func (p *PointPackage) TotalPoints() int64 {
	return p.Points + p.BonusPoints
}
