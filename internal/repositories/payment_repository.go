package repositories

import (
	"errors"

	"sokoni/internal/models"
)

var (
	ErrPaymentNotFound = errors.New("payment not found")
)

// PaymentRepository defines the database operations on marketplace payments
// needed by the commission split. The split writes the payment row and the
// seller wallet inside one transaction, so ExecuteInTransaction pairs the two
// repositories on a shared database transaction.
type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByID(id uint) (*models.Payment, error)
	GetForUpdate(id uint) (*models.Payment, error)
	Update(payment *models.Payment) error

	ExecuteInTransaction(fn func(PaymentRepository, WalletRepository) error) error
}
