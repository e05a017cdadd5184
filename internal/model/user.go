// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// Identity is email/password based: the user registers with a unique username
// and a unique email, and the password is stored only as a bcrypt hash.
//
// WHY PasswordHash WITH `json:"-"`?
// The hash must never leave the server. The `json:"-"` tag tells encoding/json
// to skip the field entirely, so even a handler that marshals the whole struct
// cannot leak it. Auth responses expose only id/username/email/createdAt.
type User struct {
	ID           string    `json:"id"        db:"id"`
	Username     string    `json:"username"  db:"username"` // unique across all users
	Email        string    `json:"email"     db:"email"`    // unique across all users
	PasswordHash string    `json:"-"         db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
