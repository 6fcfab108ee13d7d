package repositories

import (
	"errors"

	"sokoni/internal/models"
)

var (
	ErrWalletNotFound = errors.New("wallet not found")
)

// WalletRepository defines the database operations for monetary wallets.
// GetForUpdate holds a row lock until the surrounding transaction commits,
// so the read-check-write sequences in the wallet and payout services are
// serializable per account.
type WalletRepository interface {
	Create(wallet *models.Wallet) error
	GetByUserID(userID uint) (*models.Wallet, error)
	GetForUpdate(userID uint) (*models.Wallet, error)
	Update(wallet *models.Wallet) error

	CreateTransaction(tx *models.WalletTransaction) error
	ListTransactions(userID uint, limit, offset int) ([]models.WalletTransaction, error)

	ExecuteInTransaction(fn func(WalletRepository) error) error
}
