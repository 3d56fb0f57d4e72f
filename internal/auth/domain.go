package auth

import "time"

// User is the credential-bearing account record checked during login.
// Role and capability data live on the users module; auth only needs
// enough to verify a password and open a session.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
