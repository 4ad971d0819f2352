// Package models holds the server-side domain records persisted by the
// repositories.
package models

import "time"

// User is a registered account. The password is stored only as a bcrypt
// digest; plaintext never leaves the authentication service.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
