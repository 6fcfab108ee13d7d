package models

import (
	"time"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        uint   `gorm:"primarykey"`
	Email     string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null" json:"-"`
	Name      string
	Role      string `gorm:"default:'user'"`
	Status    string `gorm:"default:'active'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
