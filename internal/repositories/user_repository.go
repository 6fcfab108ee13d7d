package repositories

import (
	"errors"

	"sokoni/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

// UserRepository defines the user lookup operations the auth layer needs.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
}
