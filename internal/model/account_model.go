package model

import "time"

// Account is one registered email address. AccountID is the opaque
// identifier handed out externally; ID is the store's own primary key and
// never leaves the repository layer.
type Account struct {
	ID        int64  `json:"-"`
	AccountID string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`

	PasswordHash string `json:"-"` // never JSON-encode

	IsVerified bool `json:"is_verified"`

	// Both set while a verification is outstanding, both nil otherwise.
	VerificationToken *string    `json:"-"`
	TokenExpiry       *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
