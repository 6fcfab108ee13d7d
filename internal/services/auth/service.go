// Package auth issues and verifies the JWT credentials the HTTP surface
// runs on.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"sokoni/internal/models"
	"sokoni/internal/repositories"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("user already exists")
)

type Service interface {
	Register(email, password, name, role string) (*models.User, error)
	Login(email, password string) (string, *models.User, error)
	GenerateToken(user *models.User) (string, error)
}

type service struct {
	users     repositories.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewService(users repositories.UserRepository, jwtSecret string) Service {
	if users == nil {
		panic("user repository is required")
	}
	return &service{
		users:     users,
		jwtSecret: jwtSecret,
		tokenTTL:  24 * time.Hour,
	}
}

func (s *service) Register(email, password, name, role string) (*models.User, error) {
	if _, err := s.users.GetByEmail(email); err == nil {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		Name:     name,
		Role:     role,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) Login(email, password string) (string, *models.User, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *service) GenerateToken(user *models.User) (string, error) {
	claims := &models.UserClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
