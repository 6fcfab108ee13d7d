package repositories

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sokoni/internal/models"
)

type payoutRepository struct {
	db *gorm.DB
}

func NewPayoutRepository(db *gorm.DB) PayoutRepository {
	return &payoutRepository{db: db}
}

func (r *payoutRepository) Create(payout *models.Payout) error {
	if err := r.db.Create(payout).Error; err != nil {
		return fmt.Errorf("failed to create payout: %w", err)
	}
	return nil
}

func (r *payoutRepository) GetByID(id uint) (*models.Payout, error) {
	var payout models.Payout
	if err := r.db.First(&payout, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPayoutNotFound
		}
		return nil, fmt.Errorf("failed to get payout: %w", err)
	}
	return &payout, nil
}

func (r *payoutRepository) GetForUpdate(id uint) (*models.Payout, error) {
	var payout models.Payout
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&payout, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPayoutNotFound
		}
		return nil, fmt.Errorf("failed to lock payout: %w", err)
	}
	return &payout, nil
}

func (r *payoutRepository) Update(payout *models.Payout) error {
	if err := r.db.Save(payout).Error; err != nil {
		return fmt.Errorf("failed to update payout: %w", err)
	}
	return nil
}

func (r *payoutRepository) ListByUser(userID uint, limit, offset int) ([]models.Payout, error) {
	var payouts []models.Payout
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&payouts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payouts: %w", err)
	}
	return payouts, nil
}

func (r *payoutRepository) ListByStatus(status string, limit, offset int) ([]models.Payout, error) {
	var payouts []models.Payout
	err := r.db.
		Where("status = ?", status).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&payouts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list payouts by status: %w", err)
	}
	return payouts, nil
}

func (r *payoutRepository) ExecuteInTransaction(fn func(PayoutRepository, WalletRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&payoutRepository{db: tx}, &walletRepository{db: tx})
	})
}
