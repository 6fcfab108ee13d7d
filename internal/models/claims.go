package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserClaims carries the authenticated identity through the request context.
type UserClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (c *UserClaims) IsAdmin() bool {
	return c.Role == RoleAdmin
}
