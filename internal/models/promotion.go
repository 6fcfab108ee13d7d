package models

import (
	"time"
)

// Promotion types purchasable with points
const (
	PromotionFeatured   = "featured"
	PromotionUrgent     = "urgent"
	PromotionHighlight  = "highlight"
	PromotionTopListing = "top_listing"
)

// Promotion is a time-boxed listing boost paid for with points.
type Promotion struct {
	ID         uint   `gorm:"primarykey"`
	ListingID  uint   `gorm:"index;not null"`
	UserID     uint   `gorm:"index;not null"`
	Type       string `gorm:"not null"`
	StartsAt   time.Time
	EndsAt     time.Time
	PointsUsed int64 `gorm:"not null"`
	CreatedAt  time.Time
}

func (p *Promotion) ActiveAt(t time.Time) bool {
	return !t.Before(p.StartsAt) && t.Before(p.EndsAt)
}
