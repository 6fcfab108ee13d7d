package commission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"sokoni/internal/models"
	"sokoni/internal/repositories"
	"sokoni/internal/services/wallet"
)

// Result reports the split applied to a payment. Applied is false when the
// payment had already been processed and the call was a no-op.
type Result struct {
	Commission decimal.Decimal `json:"commission"`
	Net        decimal.Decimal `json:"net"`
	Applied    bool            `json:"applied"`
}

// Service applies the commission split to completed marketplace payments.
type Service interface {
	ApplyToPayment(ctx context.Context, paymentID uint) (*Result, error)
}

type service struct {
	repo   repositories.PaymentRepository
	logger zerolog.Logger
}

// NewService creates a new commission service.
func NewService(repo repositories.PaymentRepository, logger zerolog.Logger) Service {
	if repo == nil {
		panic("payment repository is required")
	}
	return &service{
		repo:   repo,
		logger: logger.With().Str("service", "commission").Logger(),
	}
}

// ApplyToPayment splits the payment's gross amount and credits the seller's
// wallet with the net. Applying twice is a no-op: the payment row carries an
// applied timestamp and is locked for the duration of the check.
func (s *service) ApplyToPayment(ctx context.Context, paymentID uint) (*Result, error) {
	var result Result
	err := s.repo.ExecuteInTransaction(func(pr repositories.PaymentRepository, wr repositories.WalletRepository) error {
		payment, err := pr.GetForUpdate(paymentID)
		if err != nil {
			return err
		}
		if payment.Status != models.PaymentCompleted {
			return ErrPaymentNotCompleted
		}
		if payment.CommissionApplied() {
			result = Result{
				Commission: payment.CommissionAmount,
				Net:        payment.NetAmount,
				Applied:    false,
			}
			return nil
		}

		commissionAmount, netAmount := Split(payment.GrossAmount)
		now := time.Now()
		payment.CommissionAmount = commissionAmount
		payment.NetAmount = netAmount
		payment.CommissionAppliedAt = &now
		if err := pr.Update(payment); err != nil {
			return err
		}

		if err := wallet.ApplyCredit(
			wr,
			payment.SellerID,
			netAmount,
			models.WalletTxCommissionCredit,
			fmt.Sprintf("net earnings for payment #%d", payment.ID),
			&payment.ID,
			nil,
		); err != nil {
			return err
		}

		result = Result{Commission: commissionAmount, Net: netAmount, Applied: true}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrPaymentNotCompleted) {
			return nil, err
		}
		if errors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, ErrPaymentNotFound
		}
		s.logger.Error().Err(err).Uint("payment_id", paymentID).Msg("commission split failed")
		return nil, fmt.Errorf("%w: apply commission", ErrOperationFailed)
	}
	return &result, nil
}
