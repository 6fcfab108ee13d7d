package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"sokoni/internal/models"
	"sokoni/internal/repositories"
)

// Service exposes the read side of the monetary wallet. Mutations happen
// through ApplyCredit and the payout workflow, always inside the transaction
// of the operation that causes them.
type Service interface {
	GetWallet(ctx context.Context, userID uint) (*models.Wallet, error)
	GetBalance(ctx context.Context, userID uint) (decimal.Decimal, error)
	GetTransactionHistory(ctx context.Context, userID uint, limit, offset int) ([]models.WalletTransaction, error)
}

type service struct {
	repo   repositories.WalletRepository
	logger zerolog.Logger
}

// NewService creates a new wallet service.
func NewService(repo repositories.WalletRepository, logger zerolog.Logger) Service {
	if repo == nil {
		panic("wallet repository is required")
	}
	return &service{
		repo:   repo,
		logger: logger.With().Str("service", "wallet").Logger(),
	}
}

func (s *service) GetWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	w, err := s.repo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, ErrWalletNotFound
		}
		s.logger.Error().Err(err).Uint("user_id", userID).Msg("failed to get wallet")
		return nil, fmt.Errorf("%w: get wallet", ErrOperationFailed)
	}
	return w, nil
}

func (s *service) GetBalance(ctx context.Context, userID uint) (decimal.Decimal, error) {
	w, err := s.GetWallet(ctx, userID)
	if err != nil {
		// A user who never earned anything has an empty wallet, not an error.
		if errors.Is(err, ErrWalletNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return w.Balance, nil
}

func (s *service) GetTransactionHistory(ctx context.Context, userID uint, limit, offset int) ([]models.WalletTransaction, error) {
	if limit <= 0 {
		limit = 20
	}
	txs, err := s.repo.ListTransactions(userID, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Uint("user_id", userID).Msg("failed to list wallet transactions")
		return nil, fmt.Errorf("%w: wallet history", ErrOperationFailed)
	}
	return txs, nil
}
