package repositories

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sokoni/internal/models"
)

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) CreateTransaction(tx *models.PointTransaction) error {
	if err := r.db.Create(tx).Error; err != nil {
		return fmt.Errorf("failed to create point transaction: %w", err)
	}
	return nil
}

func (r *ledgerRepository) GetTransactionByID(id uint) (*models.PointTransaction, error) {
	var tx models.PointTransaction
	if err := r.db.First(&tx, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get point transaction: %w", err)
	}
	return &tx, nil
}

func (r *ledgerRepository) GetTransactionForUpdate(id uint) (*models.PointTransaction, error) {
	var tx models.PointTransaction
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&tx, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to lock point transaction: %w", err)
	}
	return &tx, nil
}

func (r *ledgerRepository) DeleteTransaction(id uint) error {
	result := r.db.Delete(&models.PointTransaction{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete point transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

func (r *ledgerRepository) ListTransactions(userID uint, limit, offset int) ([]models.PointTransaction, error) {
	var txs []models.PointTransaction
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list point transactions: %w", err)
	}
	return txs, nil
}

func (r *ledgerRepository) CompletePending(id uint, balanceAfter int64) error {
	result := r.db.Model(&models.PointTransaction{}).
		Where("id = ? AND status = ?", id, models.PointTxPending).
		Updates(map[string]interface{}{
			"status":        models.PointTxCompleted,
			"balance_after": balanceAfter,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to complete point transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrStaleStatus
	}
	return nil
}

func (r *ledgerRepository) FailPending(id uint, reason string) error {
	result := r.db.Model(&models.PointTransaction{}).
		Where("id = ? AND status = ?", id, models.PointTxPending).
		Updates(map[string]interface{}{
			"status":        models.PointTxFailed,
			"status_reason": reason,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to fail point transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrStaleStatus
	}
	return nil
}

func (r *ledgerRepository) GetBalance(userID uint) (int64, error) {
	var balance models.PointBalance
	if err := r.db.Where("user_id = ?", userID).First(&balance).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get point balance: %w", err)
	}
	return balance.Balance, nil
}

func (r *ledgerRepository) GetBalanceForUpdate(userID uint) (*models.PointBalance, error) {
	// Ensure the row exists before locking it; a fresh account has no
	// balance row yet.
	if err := r.db.Where(models.PointBalance{UserID: userID}).
		FirstOrCreate(&models.PointBalance{UserID: userID}).Error; err != nil {
		return nil, fmt.Errorf("failed to ensure point balance row: %w", err)
	}

	var balance models.PointBalance
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&balance).Error
	if err != nil {
		return nil, fmt.Errorf("failed to lock point balance: %w", err)
	}
	return &balance, nil
}

func (r *ledgerRepository) SaveBalance(balance *models.PointBalance) error {
	if err := r.db.Save(balance).Error; err != nil {
		return fmt.Errorf("failed to save point balance: %w", err)
	}
	return nil
}

func (r *ledgerRepository) CreatePromotion(p *models.Promotion) error {
	if err := r.db.Create(p).Error; err != nil {
		return fmt.Errorf("failed to create promotion: %w", err)
	}
	return nil
}

func (r *ledgerRepository) ExecuteInTransaction(fn func(LedgerRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerRepository{db: tx})
	})
}
