package wallet

import (
	"github.com/shopspring/decimal"

	"sokoni/internal/models"
	"sokoni/internal/repositories"
)

// ApplyCredit adds amount to the user's wallet and appends the audit row.
// The repository must be bound to the caller's database transaction so the
// credit commits together with whatever caused it (commission split, payout
// rejection refund).
func ApplyCredit(repo repositories.WalletRepository, userID uint, amount decimal.Decimal, txType, description string, paymentID, payoutID *uint) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}

	w, err := repo.GetForUpdate(userID)
	if err != nil {
		return err
	}
	w.Balance = w.Balance.Add(amount)
	if err := repo.Update(w); err != nil {
		return err
	}

	return repo.CreateTransaction(&models.WalletTransaction{
		UserID:      userID,
		Amount:      amount,
		Type:        txType,
		Description: description,
		PaymentID:   paymentID,
		PayoutID:    payoutID,
	})
}
