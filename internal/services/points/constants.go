package points

import "sokoni/internal/models"

// Points charged per day for each promotion type.
var promotionCostPerDay = map[string]int64{
	models.PromotionFeatured:   50,
	models.PromotionUrgent:     30,
	models.PromotionHighlight:  20,
	models.PromotionTopListing: 100,
}

// Default page size for ledger history queries.
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)
