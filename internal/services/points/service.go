package points

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"sokoni/internal/models"
	"sokoni/internal/repositories"
)

type service struct {
	repo    repositories.LedgerRepository
	logger  zerolog.Logger
	metrics MetricsCollector
}

// NewService creates a new points service.
func NewService(repo repositories.LedgerRepository, logger zerolog.Logger, metrics MetricsCollector) Service {
	if repo == nil {
		panic("ledger repository is required")
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	return &service{
		repo:    repo,
		logger:  logger.With().Str("service", "points").Logger(),
		metrics: metrics,
	}
}

func (s *service) GetBalance(ctx context.Context, userID uint) (int64, error) {
	balance, err := s.repo.GetBalance(userID)
	if err != nil {
		return 0, s.failed(ctx, "get_balance", userID, err)
	}
	return balance, nil
}

func (s *service) GetHistory(ctx context.Context, userID uint, limit, offset int) ([]models.PointTransaction, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	txs, err := s.repo.ListTransactions(userID, limit, offset)
	if err != nil {
		return nil, s.failed(ctx, "get_history", userID, err)
	}
	return txs, nil
}

func (s *service) AddPoints(ctx context.Context, userID uint, amount int64, reason string, ref models.Reference) (uint, error) {
	if err := validateEntry(amount, ref); err != nil {
		return 0, err
	}

	var txID uint
	err := s.repo.ExecuteInTransaction(func(r repositories.LedgerRepository) error {
		balance, err := r.GetBalanceForUpdate(userID)
		if err != nil {
			return err
		}
		balance.Balance += amount

		after := balance.Balance
		tx := &models.PointTransaction{
			UserID:       userID,
			Amount:       amount,
			Direction:    models.DirectionCredit,
			Status:       models.PointTxCompleted,
			Reason:       reason,
			Reference:    ref,
			BalanceAfter: &after,
		}
		if err := r.CreateTransaction(tx); err != nil {
			return err
		}
		txID = tx.ID
		return r.SaveBalance(balance)
	})
	if err != nil {
		return 0, s.failed(ctx, "add_points", userID, err)
	}

	s.metrics.RecordTransaction("add_points", amount)
	return txID, nil
}

func (s *service) DeductPoints(ctx context.Context, userID uint, amount int64, reason string, ref models.Reference) (uint, error) {
	if err := validateEntry(amount, ref); err != nil {
		return 0, err
	}

	var txID uint
	err := s.repo.ExecuteInTransaction(func(r repositories.LedgerRepository) error {
		balance, err := r.GetBalanceForUpdate(userID)
		if err != nil {
			return err
		}
		if balance.Balance < amount {
			return ErrInsufficientBalance
		}
		balance.Balance -= amount

		after := balance.Balance
		tx := &models.PointTransaction{
			UserID:       userID,
			Amount:       amount,
			Direction:    models.DirectionDebit,
			Status:       models.PointTxCompleted,
			Reason:       reason,
			Reference:    ref,
			BalanceAfter: &after,
		}
		if err := r.CreateTransaction(tx); err != nil {
			return err
		}
		txID = tx.ID
		return r.SaveBalance(balance)
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientBalance) {
			return 0, ErrInsufficientBalance
		}
		return 0, s.failed(ctx, "deduct_points", userID, err)
	}

	s.metrics.RecordTransaction("deduct_points", amount)
	return txID, nil
}

func (s *service) TransferPoints(ctx context.Context, fromID, toID uint, amount int64, note string) (*TransferResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if fromID == toID {
		return nil, ErrSameAccount
	}

	var result TransferResult
	err := s.repo.ExecuteInTransaction(func(r repositories.LedgerRepository) error {
		// Lock both accounts in ascending user id order so concurrent
		// transfers cannot deadlock.
		first, second := fromID, toID
		if toID < fromID {
			first, second = toID, fromID
		}
		firstBal, err := r.GetBalanceForUpdate(first)
		if err != nil {
			return err
		}
		secondBal, err := r.GetBalanceForUpdate(second)
		if err != nil {
			return err
		}

		fromBal, toBal := firstBal, secondBal
		if firstBal.UserID != fromID {
			fromBal, toBal = secondBal, firstBal
		}

		if fromBal.Balance < amount {
			return ErrInsufficientBalance
		}
		fromBal.Balance -= amount
		toBal.Balance += amount

		debitAfter := fromBal.Balance
		debit := &models.PointTransaction{
			UserID:       fromID,
			Amount:       amount,
			Direction:    models.DirectionDebit,
			Status:       models.PointTxCompleted,
			Reason:       note,
			Reference:    models.UserRef(toID),
			BalanceAfter: &debitAfter,
		}
		if err := r.CreateTransaction(debit); err != nil {
			return err
		}

		creditAfter := toBal.Balance
		credit := &models.PointTransaction{
			UserID:       toID,
			Amount:       amount,
			Direction:    models.DirectionCredit,
			Status:       models.PointTxCompleted,
			Reason:       note,
			Reference:    models.UserRef(fromID),
			BalanceAfter: &creditAfter,
		}
		if err := r.CreateTransaction(credit); err != nil {
			return err
		}

		if err := r.SaveBalance(fromBal); err != nil {
			return err
		}
		if err := r.SaveBalance(toBal); err != nil {
			return err
		}

		result = TransferResult{
			DebitTransactionID:  debit.ID,
			CreditTransactionID: credit.ID,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientBalance) {
			return nil, ErrInsufficientBalance
		}
		return nil, s.failed(ctx, "transfer_points", fromID, err)
	}

	s.metrics.RecordTransaction("transfer_points", amount)
	return &result, nil
}

func (s *service) RedeemForPromotion(ctx context.Context, userID, listingID uint, promotionType string, days int) (*models.Promotion, error) {
	costPerDay, ok := promotionCostPerDay[promotionType]
	if !ok {
		return nil, ErrInvalidPromotionType
	}
	if days < 1 {
		return nil, ErrInvalidDuration
	}
	cost := costPerDay * int64(days)

	var promotion *models.Promotion
	err := s.repo.ExecuteInTransaction(func(r repositories.LedgerRepository) error {
		balance, err := r.GetBalanceForUpdate(userID)
		if err != nil {
			return err
		}
		if balance.Balance < cost {
			return ErrInsufficientBalance
		}
		balance.Balance -= cost

		after := balance.Balance
		tx := &models.PointTransaction{
			UserID:       userID,
			Amount:       cost,
			Direction:    models.DirectionDebit,
			Status:       models.PointTxCompleted,
			Reason:       fmt.Sprintf("%s promotion for %d days", promotionType, days),
			Reference:    models.ListingRef(listingID),
			BalanceAfter: &after,
		}
		if err := r.CreateTransaction(tx); err != nil {
			return err
		}
		if err := r.SaveBalance(balance); err != nil {
			return err
		}

		now := time.Now()
		promotion = &models.Promotion{
			ListingID:  listingID,
			UserID:     userID,
			Type:       promotionType,
			StartsAt:   now,
			EndsAt:     now.AddDate(0, 0, days),
			PointsUsed: cost,
		}
		return r.CreatePromotion(promotion)
	})
	if err != nil {
		if errors.Is(err, ErrInsufficientBalance) {
			return nil, ErrInsufficientBalance
		}
		return nil, s.failed(ctx, "redeem_promotion", userID, err)
	}

	s.metrics.RecordTransaction("redeem_promotion", cost)
	return promotion, nil
}

func (s *service) CreatePendingCredit(ctx context.Context, userID uint, amount int64, reason string, ref models.Reference) (uint, error) {
	return s.createPending(ctx, userID, amount, models.DirectionCredit, reason, ref)
}

func (s *service) CreatePendingDebit(ctx context.Context, userID uint, amount int64, reason string, ref models.Reference) (uint, error) {
	return s.createPending(ctx, userID, amount, models.DirectionDebit, reason, ref)
}

func (s *service) createPending(ctx context.Context, userID uint, amount int64, direction, reason string, ref models.Reference) (uint, error) {
	if err := validateEntry(amount, ref); err != nil {
		return 0, err
	}

	// No balance effect until the transaction is approved.
	tx := &models.PointTransaction{
		UserID:    userID,
		Amount:    amount,
		Direction: direction,
		Status:    models.PointTxPending,
		Reason:    reason,
		Reference: ref,
	}
	if err := s.repo.CreateTransaction(tx); err != nil {
		return 0, s.failed(ctx, "create_pending", userID, err)
	}
	return tx.ID, nil
}

// ApproveTransaction applies a pending transaction's balance delta and marks
// it completed. The status flip is guarded on the row still being pending, so
// two concurrent approvals of the same id apply the delta exactly once.
func (s *service) ApproveTransaction(ctx context.Context, id uint) error {
	err := s.repo.ExecuteInTransaction(func(r repositories.LedgerRepository) error {
		tx, err := r.GetTransactionForUpdate(id)
		if err != nil {
			return err
		}
		if tx.Status != models.PointTxPending {
			return ErrTransactionNotPending
		}

		balance, err := r.GetBalanceForUpdate(tx.UserID)
		if err != nil {
			return err
		}
		newBalance := balance.Balance + tx.SignedAmount()
		if newBalance < 0 {
			return ErrInsufficientBalance
		}

		if err := r.CompletePending(tx.ID, newBalance); err != nil {
			if errors.Is(err, repositories.ErrStaleStatus) {
				return ErrTransactionNotPending
			}
			return err
		}

		balance.Balance = newBalance
		return r.SaveBalance(balance)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrTransactionNotPending),
			errors.Is(err, ErrInsufficientBalance),
			errors.Is(err, repositories.ErrTransactionNotFound):
			return err
		}
		return s.failed(ctx, "approve_transaction", id, err)
	}

	s.metrics.RecordTransaction("approve_transaction", 0)
	return nil
}

// RejectTransaction marks a pending transaction failed. It never touches the
// balance.
func (s *service) RejectTransaction(ctx context.Context, id uint, reason string) error {
	err := s.repo.ExecuteInTransaction(func(r repositories.LedgerRepository) error {
		tx, err := r.GetTransactionForUpdate(id)
		if err != nil {
			return err
		}
		if tx.Status != models.PointTxPending {
			return ErrTransactionNotPending
		}
		if err := r.FailPending(tx.ID, reason); err != nil {
			if errors.Is(err, repositories.ErrStaleStatus) {
				return ErrTransactionNotPending
			}
			return err
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrTransactionNotPending),
			errors.Is(err, repositories.ErrTransactionNotFound):
			return err
		}
		return s.failed(ctx, "reject_transaction", id, err)
	}
	return nil
}

func (s *service) BulkApprove(ctx context.Context, ids []uint) BulkResult {
	return s.bulk(ids, func(id uint) error {
		return s.ApproveTransaction(ctx, id)
	})
}

func (s *service) BulkReject(ctx context.Context, ids []uint, reason string) BulkResult {
	return s.bulk(ids, func(id uint) error {
		return s.RejectTransaction(ctx, id, reason)
	})
}

func (s *service) BulkDelete(ctx context.Context, ids []uint) BulkResult {
	return s.bulk(ids, func(id uint) error {
		return s.deleteTransaction(ctx, id)
	})
}

// deleteTransaction removes a ledger row. Completed rows are refused: they
// back the balance cache and deleting one would break conservation.
func (s *service) deleteTransaction(ctx context.Context, id uint) error {
	err := s.repo.ExecuteInTransaction(func(r repositories.LedgerRepository) error {
		tx, err := r.GetTransactionForUpdate(id)
		if err != nil {
			return err
		}
		if tx.Status == models.PointTxCompleted {
			return ErrTransactionCompleted
		}
		return r.DeleteTransaction(tx.ID)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrTransactionCompleted),
			errors.Is(err, repositories.ErrTransactionNotFound):
			return err
		}
		return s.failed(ctx, "delete_transaction", id, err)
	}
	return nil
}

// bulk runs op for each id as an independent atomic unit: one failure never
// aborts or rolls back the others.
func (s *service) bulk(ids []uint, op func(uint) error) BulkResult {
	result := BulkResult{Failed: []BulkFailure{}}
	for _, id := range ids {
		if err := op(id); err != nil {
			result.Failed = append(result.Failed, BulkFailure{ID: id, Error: err.Error()})
			continue
		}
		result.Succeeded++
	}
	return result
}

func validateEntry(amount int64, ref models.Reference) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if !ref.Valid() {
		return ErrInvalidReference
	}
	return nil
}

// failed logs a storage-layer failure with full context and returns the
// generic ErrOperationFailed. Nothing partial persists: the transaction the
// failure happened in has already rolled back.
func (s *service) failed(ctx context.Context, operation string, subject uint, err error) error {
	s.logger.Error().
		Err(err).
		Str("operation", operation).
		Uint("subject", subject).
		Msg("ledger operation failed")
	s.metrics.RecordError(operation, err.Error())
	return fmt.Errorf("%w: %s", ErrOperationFailed, operation)
}
