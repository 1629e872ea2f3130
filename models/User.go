package models

import "gorm.io/gorm"

// User represents an application account that can authenticate with the platform.
type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string
}

// OwnerKey is the identifier stored in created_by for menus owned by this user.
func (u User) OwnerKey() string {
	return OwnerKey(u.ID)
}
