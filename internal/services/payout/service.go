package payout

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

// Service drives the payout state machine:
//
//	pending -> processing -> paid
//	pending | processing -> rejected (wallet refunded)
//
// Paid and rejected are terminal. A payout always drains the entire wallet
// balance at request time; the snapshot taken is exactly what the wallet
// loses, and a rejection credits exactly that amount back.
type Service interface {
	IsEligible(ctx context.Context, userID uint) (bool, error)
	CreatePayoutRequest(ctx context.Context, userID uint, bankDetails models.JSON) (*models.Payout, error)
	Approve(ctx context.Context, id uint) error
	MarkPaid(ctx context.Context, id uint, transactionReference, paymentMethod string) error
	Reject(ctx context.Context, id uint, reason string) error

	GetPayout(ctx context.Context, id uint) (*models.Payout, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Payout, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]models.Payout, error)
}

type service struct {
	repo      repositories.PayoutRepository
	wallets   repositories.WalletRepository
	threshold decimal.Decimal
	logger    zerolog.Logger
}

// NewService creates a new payout service. A zero threshold falls back to
// DefaultMinThreshold.
func NewService(repo repositories.PayoutRepository, wallets repositories.WalletRepository, threshold decimal.Decimal, logger zerolog.Logger) Service {
	if repo == nil {
		panic("payout repository is required")
	}
	if wallets == nil {
		panic("wallet repository is required")
	}
	if threshold.Sign() <= 0 {
		threshold = DefaultMinThreshold
	}
	return &service{
		repo:      repo,
		wallets:   wallets,
		threshold: threshold,
		logger:    logger.With().Str("service", "payout").Logger(),
	}
}

func (s *service) IsEligible(ctx context.Context, userID uint) (bool, error) {
	w, err := s.wallets.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return false, nil
		}
		return false, s.failed("is_eligible", userID, err)
	}
	return w.Balance.GreaterThanOrEqual(s.threshold), nil
}

// CreatePayoutRequest snapshots the wallet balance into a new pending payout
// and zeroes the wallet, all in one transaction. Eligibility is checked
// against the locked balance, so the recorded amount always equals the
// amount removed.
func (s *service) CreatePayoutRequest(ctx context.Context, userID uint, bankDetails models.JSON) (*models.Payout, error) {
	if len(bankDetails) == 0 {
		return nil, ErrMissingDetails
	}

	var payout *models.Payout
	err := s.repo.ExecuteInTransaction(func(pr repositories.PayoutRepository, wr repositories.WalletRepository) error {
		w, err := wr.GetForUpdate(userID)
		if err != nil {
			return err
		}
		if w.Balance.LessThan(s.threshold) {
			return ErrNotEligible
		}

		payout = &models.Payout{
			UserID:      userID,
			Amount:      w.Balance,
			BankDetails: bankDetails,
			Status:      models.PayoutPending,
			RequestedAt: time.Now(),
		}
		if err := pr.Create(payout); err != nil {
			return err
		}

		w.Balance = decimal.Zero
		if err := wr.Update(w); err != nil {
			return err
		}

		return wr.CreateTransaction(&models.WalletTransaction{
			UserID:      userID,
			Amount:      payout.Amount,
			Type:        models.WalletTxPayoutReserve,
			Description: fmt.Sprintf("reserved for payout #%d", payout.ID),
			PayoutID:    &payout.ID,
		})
	})
	if err != nil {
		if errors.Is(err, ErrNotEligible) {
			return nil, ErrNotEligible
		}
		return nil, s.failed("create_payout", userID, err)
	}
	return payout, nil
}

// Approve moves a pending payout to processing.
func (s *service) Approve(ctx context.Context, id uint) error {
	err := s.repo.ExecuteInTransaction(func(pr repositories.PayoutRepository, _ repositories.WalletRepository) error {
		payout, err := pr.GetForUpdate(id)
		if err != nil {
			return err
		}
		if payout.Status != models.PayoutPending {
			return ErrInvalidState
		}
		now := time.Now()
		payout.Status = models.PayoutProcessing
		payout.ApprovedAt = &now
		return pr.Update(payout)
	})
	return s.transitionErr("approve_payout", id, err)
}

// MarkPaid finishes a processing payout once the external payment went out.
func (s *service) MarkPaid(ctx context.Context, id uint, transactionReference, paymentMethod string) error {
	err := s.repo.ExecuteInTransaction(func(pr repositories.PayoutRepository, _ repositories.WalletRepository) error {
		payout, err := pr.GetForUpdate(id)
		if err != nil {
			return err
		}
		if payout.Status != models.PayoutProcessing {
			return ErrInvalidState
		}
		now := time.Now()
		payout.Status = models.PayoutPaid
		payout.PaidAt = &now
		payout.TransactionReference = transactionReference
		payout.PaymentMethod = paymentMethod
		return pr.Update(payout)
	})
	return s.transitionErr("mark_paid", id, err)
}

// Reject cancels a pending or processing payout and refunds the reserved
// amount. The status change and the compensating credit commit together or
// not at all.
func (s *service) Reject(ctx context.Context, id uint, reason string) error {
	err := s.repo.ExecuteInTransaction(func(pr repositories.PayoutRepository, wr repositories.WalletRepository) error {
		payout, err := pr.GetForUpdate(id)
		if err != nil {
			return err
		}
		if payout.Status != models.PayoutPending && payout.Status != models.PayoutProcessing {
			return ErrInvalidState
		}

		now := time.Now()
		payout.Status = models.PayoutRejected
		payout.RejectedAt = &now
		payout.RejectionReason = reason
		if err := pr.Update(payout); err != nil {
			return err
		}

		return wallet.ApplyCredit(
			wr,
			payout.UserID,
			payout.Amount,
			models.WalletTxPayoutRefund,
			fmt.Sprintf("refund for rejected payout #%d", payout.ID),
			nil,
			&payout.ID,
		)
	})
	return s.transitionErr("reject_payout", id, err)
}

func (s *service) GetPayout(ctx context.Context, id uint) (*models.Payout, error) {
	payout, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrPayoutNotFound) {
			return nil, ErrPayoutNotFound
		}
		return nil, s.failed("get_payout", id, err)
	}
	return payout, nil
}

func (s *service) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Payout, error) {
	if limit <= 0 {
		limit = 20
	}
	payouts, err := s.repo.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, s.failed("list_payouts", userID, err)
	}
	return payouts, nil
}

func (s *service) ListByStatus(ctx context.Context, status string, limit, offset int) ([]models.Payout, error) {
	if limit <= 0 {
		limit = 50
	}
	payouts, err := s.repo.ListByStatus(status, limit, offset)
	if err != nil {
		return nil, s.failed("list_payouts_by_status", 0, err)
	}
	return payouts, nil
}

func (s *service) transitionErr(operation string, id uint, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrInvalidState) {
		return ErrInvalidState
	}
	if errors.Is(err, repositories.ErrPayoutNotFound) {
		return ErrPayoutNotFound
	}
	return s.failed(operation, id, err)
}

func (s *service) failed(operation string, subject uint, err error) error {
	s.logger.Error().
		Err(err).
		Str("operation", operation).
		Uint("subject", subject).
		Msg("payout operation failed")
	return fmt.Errorf("%w: %s", ErrOperationFailed, operation)
}
