package repositories

import (
	"errors"

	"sokoni/internal/models"
)

var (
	ErrTransactionNotFound = errors.New("point transaction not found")
	ErrBalanceNotFound     = errors.New("point balance not found")
	ErrStaleStatus         = errors.New("transaction status changed concurrently")
)

// LedgerRepository defines the database operations for the points ledger.
//
// Mutating methods that participate in a check-then-write sequence are only
// safe when called inside ExecuteInTransaction: GetBalanceForUpdate takes a
// row-level lock that lives for the duration of the surrounding transaction.
type LedgerRepository interface {
	// Transaction rows
	CreateTransaction(tx *models.PointTransaction) error
	GetTransactionByID(id uint) (*models.PointTransaction, error)
	GetTransactionForUpdate(id uint) (*models.PointTransaction, error)
	DeleteTransaction(id uint) error
	ListTransactions(userID uint, limit, offset int) ([]models.PointTransaction, error)

	// CompletePending flips a pending transaction to completed with the given
	// balance snapshot, guarded on the status still being pending. Returns
	// ErrStaleStatus when a concurrent transition won the race.
	CompletePending(id uint, balanceAfter int64) error
	// FailPending flips a pending transaction to failed, guarded the same way.
	// It never touches any balance.
	FailPending(id uint, reason string) error

	// Balance rows
	GetBalance(userID uint) (int64, error)
	GetBalanceForUpdate(userID uint) (*models.PointBalance, error)
	SaveBalance(balance *models.PointBalance) error

	// Promotions
	CreatePromotion(p *models.Promotion) error

	// ExecuteInTransaction runs fn inside a single database transaction.
	// Nothing persists if fn returns an error.
	ExecuteInTransaction(fn func(LedgerRepository) error) error
}
