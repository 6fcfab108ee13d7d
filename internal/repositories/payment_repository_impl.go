package repositories

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sokoni/internal/models"
)

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(payment *models.Payment) error {
	if err := r.db.Create(payment).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *paymentRepository) GetByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.First(&payment, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &payment, nil
}

func (r *paymentRepository) GetForUpdate(id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&payment, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to lock payment: %w", err)
	}
	return &payment, nil
}

func (r *paymentRepository) Update(payment *models.Payment) error {
	if err := r.db.Save(payment).Error; err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	return nil
}

func (r *paymentRepository) ExecuteInTransaction(fn func(PaymentRepository, WalletRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&paymentRepository{db: tx}, &walletRepository{db: tx})
	})
}
