package repositories

import (
	"errors"

	"sokoni/internal/models"
)

var (
	ErrPayoutNotFound = errors.New("payout not found")
)

// PayoutRepository defines the database operations for payouts.
//
// ExecuteInTransaction hands back a payout repository AND a wallet repository
// bound to the same database transaction: a payout rejection must commit the
// status change and the compensating wallet credit together or not at all.
type PayoutRepository interface {
	Create(payout *models.Payout) error
	GetByID(id uint) (*models.Payout, error)
	GetForUpdate(id uint) (*models.Payout, error)
	Update(payout *models.Payout) error
	ListByUser(userID uint, limit, offset int) ([]models.Payout, error)
	ListByStatus(status string, limit, offset int) ([]models.Payout, error)

	ExecuteInTransaction(fn func(PayoutRepository, WalletRepository) error) error
}
