package repositories

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sokoni/internal/models"
)

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) Create(wallet *models.Wallet) error {
	if err := r.db.Create(wallet).Error; err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

func (r *walletRepository) GetByUserID(userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) GetForUpdate(userID uint) (*models.Wallet, error) {
	// Create the row first if this account has never held funds, then lock.
	if err := r.db.Where(models.Wallet{UserID: userID}).
		FirstOrCreate(&models.Wallet{UserID: userID}).Error; err != nil {
		return nil, fmt.Errorf("failed to ensure wallet row: %w", err)
	}

	var wallet models.Wallet
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&wallet).Error
	if err != nil {
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) Update(wallet *models.Wallet) error {
	if err := r.db.Save(wallet).Error; err != nil {
		return fmt.Errorf("failed to update wallet: %w", err)
	}
	return nil
}

func (r *walletRepository) CreateTransaction(tx *models.WalletTransaction) error {
	if err := r.db.Create(tx).Error; err != nil {
		return fmt.Errorf("failed to create wallet transaction: %w", err)
	}
	return nil
}

func (r *walletRepository) ListTransactions(userID uint, limit, offset int) ([]models.WalletTransaction, error) {
	var txs []models.WalletTransaction
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list wallet transactions: %w", err)
	}
	return txs, nil
}

func (r *walletRepository) ExecuteInTransaction(fn func(WalletRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&walletRepository{db: tx})
	})
}
