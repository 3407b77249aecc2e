// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered forum user.
// Users are created by seeding and are read-only at runtime.
type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Email        string  `gorm:"unique;not null" json:"email"`
	Name         string  `gorm:"not null" json:"name"`
	PasswordHash string  `gorm:"not null" json:"-"`
	PasswordSalt string  `gorm:"not null" json:"-"`
	// TOTPSecret is the base32-encoded shared secret for the second factor.
	// Nil means the user cannot elevate to admin.
	TOTPSecret *string   `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// CanDoTOTP reports whether the user has a second factor configured.
func (u *User) CanDoTOTP() bool {
	return u.TOTPSecret != nil && *u.TOTPSecret != ""
}

// UserInfo is the safe view of a user returned by the session endpoints.
// It never carries the password hash, salt or raw TOTP secret.
type UserInfo struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	CanDoTOTP bool   `json:"canDoTotp"`
	IsTOTP    bool   `json:"isTotp"`
}
